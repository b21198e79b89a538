package cli

import (
	"strings"
	"testing"

	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
	"github.com/spf13/cobra"
)

func TestRequirePostTitle(t *testing.T) {
	cmd := &cobra.Command{
		Use: "new <title>",
	}

	t.Run("returns error when no args", func(t *testing.T) {
		err := RequirePostTitle(cmd, []string{})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "missing required argument: <title>") {
			t.Errorf("expected error to contain 'missing required argument: <title>', got: %s", err.Error())
		}
		if !strings.Contains(err.Error(), "Example:") {
			t.Errorf("expected error to contain 'Example:', got: %s", err.Error())
		}
		if code := blogsmith.ExitCodeForError(err); code != blogsmith.ExitUsageError {
			t.Errorf("exit code = %d, want %d", code, blogsmith.ExitUsageError)
		}
	})

	t.Run("returns nil when arg provided", func(t *testing.T) {
		err := RequirePostTitle(cmd, []string{"Hello"})
		if err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("returns error when too many args", func(t *testing.T) {
		err := RequirePostTitle(cmd, []string{"Hello", "World"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "accepts 1 arg") {
			t.Errorf("expected error to contain 'accepts 1 arg', got: %s", err.Error())
		}
		if !strings.Contains(err.Error(), "Quote titles") {
			t.Errorf("expected quoting hint, got: %s", err.Error())
		}
	})
}

func TestRequireTemplateName(t *testing.T) {
	cmd := &cobra.Command{
		Use: "describe <template_name>",
	}

	t.Run("returns error when no args", func(t *testing.T) {
		err := RequireTemplateName(cmd, []string{})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "missing required argument: <template_name>") {
			t.Errorf("expected error to contain 'missing required argument: <template_name>', got: %s", err.Error())
		}
		if !strings.Contains(err.Error(), "blogsmith templates list") {
			t.Errorf("expected error to contain 'blogsmith templates list', got: %s", err.Error())
		}
	})

	t.Run("returns nil when arg provided", func(t *testing.T) {
		if err := RequireTemplateName(cmd, []string{"basic"}); err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("returns error when too many args", func(t *testing.T) {
		if err := RequireTemplateName(cmd, []string{"a", "b"}); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestSiteDirArg(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, "."},
		{[]string{""}, "."},
		{[]string{"./blog"}, "./blog"},
	}
	for _, tt := range tests {
		if got := siteDirArg(tt.args); got != tt.want {
			t.Errorf("siteDirArg(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}
