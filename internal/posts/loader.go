package posts

import (
	"context"
	"fmt"
	"html/template"

	"github.com/kestrel-lab/blogsmith/internal/frontmatter"
	"github.com/kestrel-lab/blogsmith/internal/metadata"
	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

// BodyRenderer converts a markdown body to HTML.
type BodyRenderer interface {
	Render(body []byte, path string) (template.HTML, error)
}

// Loader builds a Collection from a posts directory.
// A Loader holds no state between calls; every Load reads the directory afresh.
type Loader struct {
	scanner       blogsmith.SourceScanner
	renderer      BodyRenderer
	logger        blogsmith.Logger
	includeDrafts bool
}

// NewLoader creates a Loader. Panics if scanner, renderer or logger is nil.
func NewLoader(scanner blogsmith.SourceScanner, renderer BodyRenderer, logger blogsmith.Logger, includeDrafts bool) *Loader {
	if scanner == nil {
		panic("scanner cannot be nil")
	}
	if renderer == nil {
		panic("renderer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Loader{
		scanner:       scanner,
		renderer:      renderer,
		logger:        logger,
		includeDrafts: includeDrafts,
	}
}

// Load reads every post under postsPath, in discovery order, through
// parse, validate and render. The first failing file aborts the load and
// its error names that file. Slugs must be unique, compared without case,
// across all posts including drafts.
func (l *Loader) Load(ctx context.Context, postsPath string) (*Collection, error) {
	result, err := l.scanner.ScanPosts(postsPath)
	if err != nil {
		return nil, err
	}

	l.logger.Verbose("Found %d post source(s) in %s", len(result.Files), postsPath)

	firstBySlug := make(map[string]string, len(result.Files))
	var loaded []*blogsmith.Post
	drafts := 0

	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("loading posts interrupted: %w", err)
		}

		raw, body, err := frontmatter.Split(file.Content, file.Path)
		if err != nil {
			return nil, err
		}

		meta, err := metadata.Validate(raw, file.Path)
		if err != nil {
			return nil, err
		}

		key := metadata.NormalizeSlug(meta.Slug)
		if first, exists := firstBySlug[key]; exists {
			return nil, &blogsmith.DuplicateSlugError{Slug: meta.Slug, FirstPath: first, SecondPath: file.Path}
		}
		firstBySlug[key] = file.Path

		if meta.Draft && !l.includeDrafts {
			drafts++
			l.logger.Verbose("Skipping draft %s", file.Path)
			continue
		}

		html, err := l.renderer.Render(body, file.Path)
		if err != nil {
			return nil, err
		}

		loaded = append(loaded, &blogsmith.Post{
			Metadata: meta,
			Source:   file.RelPath,
			Body:     string(body),
			HTML:     html,
			Checksum: file.Checksum,
		})
		l.logger.Verbose("Loaded %s as %q (%s)", file.RelPath, meta.Slug, meta.Date.Format(blogsmith.DateLayout))
	}

	if drafts > 0 {
		l.logger.Info("Skipped %d draft post(s); use --drafts to include them", drafts)
	}

	return NewCollection(loaded), nil
}
