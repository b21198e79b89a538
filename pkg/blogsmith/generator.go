package blogsmith

import (
	"context"
	"time"
)

// Generator is the main interface for building a site.
// Implementations handle the full workflow: loading posts, rendering pages
// and the feed, and publishing the output directory.
type Generator interface {
	// Build renders the site and replaces the output directory with the result.
	// Nothing is written unless every post loads and every page renders.
	Build(ctx context.Context, config BuildConfig) (BuildReport, error)

	// Check renders the site in memory and reports how it differs from the
	// current output directory. The output is never modified.
	Check(ctx context.Context, config BuildConfig) (Drift, error)
}

// BuildReport summarizes a successful build.
type BuildReport struct {
	OutputPath string
	Posts      int
	Tags       int
	Pages      int
	Assets     int
	Bytes      int64
	Duration   time.Duration
}

// Drift lists output paths, relative to the output root, whose content on
// disk differs from a fresh render. Each list is sorted.
type Drift struct {
	Added   []string
	Changed []string
	Removed []string
}

// Empty reports whether the output is up to date.
func (d Drift) Empty() bool {
	return len(d.Added) == 0 && len(d.Changed) == 0 && len(d.Removed) == 0
}
