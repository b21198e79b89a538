package tui

import (
	"os"
	"testing"
)

func TestDetectMode_BLOGSMITH_NON_INTERACTIVE(t *testing.T) {
	t.Setenv("BLOGSMITH_NON_INTERACTIVE", "1")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")

	if got := DetectMode(); got != ModeNonInteractive {
		t.Errorf("DetectMode() = %d, want ModeNonInteractive", got)
	}
}

func TestDetectMode_CI(t *testing.T) {
	t.Setenv("BLOGSMITH_NON_INTERACTIVE", "")
	t.Setenv("CI", "true")
	t.Setenv("NO_COLOR", "")

	if got := DetectMode(); got != ModeNonInteractive {
		t.Errorf("DetectMode() = %d, want ModeNonInteractive", got)
	}
}

func TestDetectMode_NO_COLOR(t *testing.T) {
	t.Setenv("BLOGSMITH_NON_INTERACTIVE", "")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "1")

	if got := DetectMode(); got != ModeNonInteractive {
		t.Errorf("DetectMode() = %d, want ModeNonInteractive", got)
	}
}

func TestDetectMode_NoTerminal(t *testing.T) {
	// In test context, stdin/stdout are not terminals
	t.Setenv("BLOGSMITH_NON_INTERACTIVE", "")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")

	if got := DetectMode(); got != ModeNonInteractive {
		t.Errorf("DetectMode() = %d, want ModeNonInteractive (no terminal in test)", got)
	}
}

func TestIsInteractive_ReturnsFalseInTests(t *testing.T) {
	t.Setenv("BLOGSMITH_NON_INTERACTIVE", "")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")

	if IsInteractive() {
		t.Error("IsInteractive() = true in test environment, want false")
	}
}

func TestDetectMode_BLOGSMITH_NON_INTERACTIVE_TakesPrecedence(t *testing.T) {
	// Even if CI and NO_COLOR are unset, BLOGSMITH_NON_INTERACTIVE=1 should trigger non-interactive
	t.Setenv("BLOGSMITH_NON_INTERACTIVE", "1")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")

	if got := DetectMode(); got != ModeNonInteractive {
		t.Errorf("DetectMode() = %d, want ModeNonInteractive", got)
	}
}

func TestDetectMode_BLOGSMITH_NON_INTERACTIVE_WrongValue(t *testing.T) {
	// Only "1" triggers non-interactive, not "true" or "yes"
	t.Setenv("BLOGSMITH_NON_INTERACTIVE", "true")
	t.Setenv("CI", "")
	t.Setenv("NO_COLOR", "")

	// Falls through to terminal check (which returns non-interactive in tests)
	if got := DetectMode(); got != ModeNonInteractive {
		t.Errorf("DetectMode() = %d, want ModeNonInteractive (no terminal)", got)
	}
}

func TestDetectMode_Table(t *testing.T) {
	allTTY := func(*os.File) bool { return true }
	noStdout := func(f *os.File) bool { return f != os.Stdout }

	tests := []struct {
		name     string
		env      map[string]string
		terminal func(*os.File) bool
		want     Mode
	}{
		{"terminal, clean env", nil, allTTY, ModeInteractive},
		{"stdout redirected", nil, noStdout, ModeNonInteractive},
		{"CI set", map[string]string{"CI": "1"}, allTTY, ModeNonInteractive},
		{"explicit opt-out", map[string]string{"BLOGSMITH_NON_INTERACTIVE": "1"}, allTTY, ModeNonInteractive},
		{"opt-out needs 1", map[string]string{"BLOGSMITH_NON_INTERACTIVE": "yes"}, allTTY, ModeInteractive},
		{"NO_COLOR", map[string]string{"NO_COLOR": "1"}, allTTY, ModeNonInteractive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(k string) string { return tt.env[k] }
			if got := detectMode(getenv, tt.terminal); got != tt.want {
				t.Errorf("detectMode() = %s, want %s", got, tt.want)
			}
		})
	}
}
