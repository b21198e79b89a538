package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents the interaction mode for blogsmith.
type Mode int

const (
	// ModeNonInteractive is used for CI, cron rebuilds, and piped input.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

func (m Mode) String() string {
	if m == ModeInteractive {
		return "interactive"
	}
	return "non-interactive"
}

// DetectMode determines whether blogsmith may prompt: wizards for init and
// confirmation before replacing an unmanaged output directory.
//
// Returns ModeNonInteractive if:
//   - BLOGSMITH_NON_INTERACTIVE=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//   - stdin or stdout is not a terminal
//
// Returns ModeInteractive otherwise.
func DetectMode() Mode {
	return detectMode(os.Getenv, func(f *os.File) bool { return term.IsTerminal(int(f.Fd())) })
}

func detectMode(getenv func(string) string, isTerminal func(*os.File) bool) Mode {
	if getenv("BLOGSMITH_NON_INTERACTIVE") == "1" {
		return ModeNonInteractive
	}
	if getenv("CI") != "" {
		return ModeNonInteractive
	}
	if getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return ModeNonInteractive
	}
	return ModeInteractive
}

// IsInteractive is a convenience function that returns true if running in interactive mode.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}
