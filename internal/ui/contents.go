package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// maxListedEntries caps how many names the replacement warning shows.
const maxListedEntries = 5

// confirmationName is what the user types to confirm replacing dir: its
// base name, or the cleaned absolute path when the base name alone says
// nothing (a filesystem root or the current directory).
func confirmationName(dir string) string {
	clean := filepath.Clean(dir)
	name := filepath.Base(clean)
	if name != "." && name != string(filepath.Separator) && name != ".." {
		return name
	}
	if abs, err := filepath.Abs(clean); err == nil {
		return abs
	}
	return clean
}

// describeContents summarizes what replacing dir would delete, for example
// "3 entries: drafts/, index.html, notes.txt". It returns "" when dir is
// empty or unreadable.
func describeContents(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) == 0 {
		return ""
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}
	sort.Strings(names)

	noun := "entries"
	if len(names) == 1 {
		noun = "entry"
	}
	shown := names
	if len(shown) > maxListedEntries {
		shown = shown[:maxListedEntries]
	}
	summary := fmt.Sprintf("%d %s: %s", len(names), noun, strings.Join(shown, ", "))
	if rest := len(names) - len(shown); rest > 0 {
		summary += fmt.Sprintf(", and %d more", rest)
	}
	return summary
}
