package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kestrel-lab/blogsmith/internal/logging"
	"github.com/kestrel-lab/blogsmith/internal/scaffold"
	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

func resetSiteFlags() {
	buildFlags = siteFlagValues{timeout: 2 * time.Minute}
	checkFlags = siteFlagValues{timeout: 2 * time.Minute}
	checkStrict = false
}

// isolate keeps the host environment from leaking into flag resolution.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("BLOGSMITH_NON_INTERACTIVE", "1")
	t.Setenv("BLOGSMITH_OUTPUT", "")
	t.Setenv("BLOGSMITH_BASE_URL", "")
	resetSiteFlags()
}

// newTestSite scaffolds the basic template into a fresh directory.
func newTestSite(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "blog")
	_, err := scaffold.NewScaffolder(logging.NewNullLogger()).CreateSite(scaffold.SiteOptions{
		Template:   "basic",
		TargetPath: dir,
		SiteTitle:  "Test Blog",
		Date:       time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateSite() error = %v", err)
	}
	return dir
}

func TestBuildCmd_ArgsValidation_TooMany(t *testing.T) {
	err := buildCmd.Args(buildCmd, []string{"a", "b"})
	if err == nil {
		t.Fatal("Expected error for too many args")
	}
	if code := blogsmith.ExitCodeForError(err); code != blogsmith.ExitUsageError {
		t.Errorf("Expected exit code %d (usage), got %d for: %v", blogsmith.ExitUsageError, code, err)
	}
}

func TestBuildCmd_NonexistentPath(t *testing.T) {
	isolate(t)

	err := runBuild(buildCmd, []string{"/nonexistent/path/abc123"})
	if !errors.Is(err, blogsmith.ErrInvalidConfig) {
		t.Fatalf("Expected ErrInvalidConfig for nonexistent path, got: %v", err)
	}
}

func TestBuildCmd_BuildsScaffoldedSite(t *testing.T) {
	isolate(t)
	site := newTestSite(t)

	if err := runBuild(buildCmd, []string{site}); err != nil {
		t.Fatalf("runBuild() error = %v", err)
	}

	for _, name := range []string{"index.html", "posts/hello-world.html", "rss.xml", "tags/meta.html", "robots.txt", blogsmith.OutputMarkerFile} {
		if _, err := os.Stat(filepath.Join(site, "public", filepath.FromSlash(name))); err != nil {
			t.Errorf("expected %s in output: %v", name, err)
		}
	}
}

func TestBuildCmd_OutputFlag(t *testing.T) {
	isolate(t)
	site := newTestSite(t)
	buildFlags.output = filepath.Join(t.TempDir(), "www")

	if err := runBuild(buildCmd, []string{site}); err != nil {
		t.Fatalf("runBuild() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(buildFlags.output, "index.html")); err != nil {
		t.Errorf("expected index.html in --output dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(site, "public")); !os.IsNotExist(err) {
		t.Errorf("default output should not be written when --output is set")
	}
}

func TestBuildCmd_UnmanagedOutputDeniedWithoutTerminal(t *testing.T) {
	isolate(t)
	site := newTestSite(t)
	keep := filepath.Join(site, "public", "notes.txt")
	if err := os.MkdirAll(filepath.Dir(keep), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(keep, []byte("mine"), 0644); err != nil {
		t.Fatal(err)
	}

	err := runBuild(buildCmd, []string{site})
	if !errors.Is(err, blogsmith.ErrApprovalDenied) {
		t.Fatalf("Expected ErrApprovalDenied, got: %v", err)
	}
	if code := blogsmith.ExitCodeForError(err); code != blogsmith.ExitApprovalDenied {
		t.Errorf("exit code = %d, want %d", code, blogsmith.ExitApprovalDenied)
	}
	if _, err := os.Stat(keep); err != nil {
		t.Errorf("unmanaged file must survive: %v", err)
	}
}

func TestBuildCmd_InvalidPostExitCode(t *testing.T) {
	isolate(t)
	site := newTestSite(t)
	bad := filepath.Join(site, "posts", "bad.md")
	if err := os.WriteFile(bad, []byte("---\ntitle: No summary\ndate: \"2025-01-01\"\nslug: bad\n---\n"), 0644); err != nil {
		t.Fatal(err)
	}

	err := runBuild(buildCmd, []string{site})
	if code := blogsmith.ExitCodeForError(err); code != blogsmith.ExitValidation {
		t.Fatalf("exit code = %d, want %d (err: %v)", code, blogsmith.ExitValidation, err)
	}
	if _, err := os.Stat(filepath.Join(site, "public")); !os.IsNotExist(err) {
		t.Error("no output should be written when a post is invalid")
	}
}

func TestCheckCmd_StrictReportsDrift(t *testing.T) {
	isolate(t)
	site := newTestSite(t)

	var out bytes.Buffer
	checkCmd.SetOut(&out)
	defer checkCmd.SetOut(nil)

	checkStrict = true
	err := runCheck(checkCmd, []string{site})
	if !errors.Is(err, blogsmith.ErrOutputStale) {
		t.Fatalf("Expected ErrOutputStale before the first build, got: %v", err)
	}
	if !strings.Contains(out.String(), "index.html") {
		t.Errorf("drift output should list index.html:\n%s", out.String())
	}

	if err := runBuild(buildCmd, []string{site}); err != nil {
		t.Fatalf("runBuild() error = %v", err)
	}

	out.Reset()
	if err := runCheck(checkCmd, []string{site}); err != nil {
		t.Fatalf("runCheck() after build error = %v", err)
	}
	if !strings.Contains(out.String(), "up to date") {
		t.Errorf("expected up to date, got:\n%s", out.String())
	}
}

func TestCheckCmd_NonStrictIgnoresDrift(t *testing.T) {
	isolate(t)
	site := newTestSite(t)

	checkCmd.SetOut(&bytes.Buffer{})
	defer checkCmd.SetOut(nil)

	if err := runCheck(checkCmd, []string{site}); err != nil {
		t.Fatalf("runCheck() error = %v", err)
	}
}

func TestInitCmd_ArgsValidation_TooMany(t *testing.T) {
	err := initCmd.Args(initCmd, []string{"a", "b"})
	if err == nil {
		t.Fatal("Expected error for too many args")
	}
}

func TestNewCmd_ArgsValidation(t *testing.T) {
	err := newCmd.Args(newCmd, []string{})
	if err == nil {
		t.Fatal("Expected error for missing args")
	}
	if code := blogsmith.ExitCodeForError(err); code != blogsmith.ExitUsageError {
		t.Errorf("Expected exit code %d (usage), got %d for: %v", blogsmith.ExitUsageError, code, err)
	}
}
