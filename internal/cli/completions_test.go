package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestCompleteSiteDir(t *testing.T) {
	cmd := &cobra.Command{}

	if _, directive := completeSiteDir(cmd, nil, ""); directive != cobra.ShellCompDirectiveFilterDirs {
		t.Errorf("first arg: expected ShellCompDirectiveFilterDirs, got %v", directive)
	}
	if _, directive := completeSiteDir(cmd, []string{"./blog"}, ""); directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("after site_dir: expected ShellCompDirectiveNoFileComp, got %v", directive)
	}
}

func TestCompleteTemplateNames(t *testing.T) {
	cmd := &cobra.Command{}

	completions, directive := completeTemplateNames(cmd, nil, "")
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
	}
	if len(completions) != 2 {
		t.Fatalf("expected basic and themed, got %v", completions)
	}
	for _, c := range completions {
		name, desc, ok := strings.Cut(c, "\t")
		if !ok || desc == "" {
			t.Errorf("completion %q should carry a description", c)
		}
		if name != "basic" && name != "themed" {
			t.Errorf("unexpected template %q", name)
		}
	}

	completions, _ = completeTemplateNames(cmd, nil, "th")
	if len(completions) != 1 || !strings.HasPrefix(completions[0], "themed\t") {
		t.Errorf("prefix th: got %v", completions)
	}

	if completions, _ = completeTemplateNames(cmd, []string{"basic"}, ""); completions != nil {
		t.Errorf("second arg should not complete, got %v", completions)
	}
}

func TestCompleteTags(t *testing.T) {
	site := newTestSite(t)
	posts := filepath.Join(site, "posts")
	files := map[string]string{
		"lab.md":    "---\ntitle: Lab\ndate: \"2025-05-02\"\ntags: [Home Lab, go]\nsummary: s\nslug: lab\n---\n",
		"again.md":  "---\ntitle: Again\ndate: \"2025-05-03\"\ntags: [home-lab]\nsummary: s\nslug: again\n---\n",
		"broken.md": "---\ntags: [unclosed\n---\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(posts, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name       string
		site       string
		toComplete string
		want       []string
	}{
		{name: "all tags by slug", site: site, toComplete: "", want: []string{"go", "home-lab", "meta"}},
		{name: "case-insensitive prefix", site: site, toComplete: "H", want: []string{"home-lab"}},
		{name: "after a comma", site: site, toComplete: "go,", want: []string{"go,home-lab", "go,meta"}},
		{name: "typed tags are not offered again", site: site, toComplete: "Home Lab,meta,", want: []string{"Home Lab,meta,go"}},
		{name: "no match", site: site, toComplete: "rust", want: nil},
		{name: "missing site", site: filepath.Join(t.TempDir(), "nope"), toComplete: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetNewFlags(tt.site)
			got, directive := completeTags(newCmd, nil, tt.toComplete)
			if directive != cobra.ShellCompDirectiveNoFileComp {
				t.Errorf("directive = %v", directive)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("completeTags(%q) = %v, want %v", tt.toComplete, got, tt.want)
			}
		})
	}
}
