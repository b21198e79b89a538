package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

func TestRenderBuildSummary(t *testing.T) {
	out := RenderBuildSummary(blogsmith.BuildReport{
		OutputPath: "/srv/blog/public",
		Posts:      3,
		Tags:       2,
		Pages:      7,
		Assets:     1,
		Bytes:      2048,
		Duration:   1234567 * time.Microsecond,
	})

	for _, want := range []string{"Site published", "/srv/blog/public", "3 (2 tags)", "7 pages, 1 assets", "2.0 KiB", "1.235s"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderDrift(t *testing.T) {
	if out := RenderDrift(blogsmith.Drift{}); !strings.Contains(out, "up to date") {
		t.Errorf("RenderDrift(empty) = %q", out)
	}

	out := RenderDrift(blogsmith.Drift{Added: []string{"posts/new.html"}, Changed: []string{"index.html", "rss.xml"}, Removed: []string{"posts/old.html"}})
	for _, want := range []string{"1 added, 2 changed, 1 removed", "+ posts/new.html", "~ rss.xml", "- posts/old.html"} {
		if !strings.Contains(out, want) {
			t.Errorf("drift missing %q:\n%s", want, out)
		}
	}
}

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := humanBytes(tt.in); got != tt.want {
			t.Errorf("humanBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
