package blogsmith

import (
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

// PostMetadata is the validated frontmatter of a single post.
type PostMetadata struct {
	// Title is the human-readable post title (required, non-blank)
	Title string `validate:"notblank"`

	// Date is the publication date at midnight UTC (required, YYYY-MM-DD)
	Date time.Time

	// Tags keeps author order; never nil after validation
	Tags []string `validate:"dive,notblank"`

	// Summary is the one-line description used on the index and in the feed (required)
	Summary string `validate:"notblank"`

	// Slug is the URL-safe identifier that names the post page (required, unique)
	Slug string `validate:"slug"`

	// Draft excludes the post from output unless drafts are enabled
	Draft bool
}

// Post is a validated post with its rendered body.
// Posts are immutable once the loader has built them.
type Post struct {
	Metadata PostMetadata

	// Source is the path of the markdown file, relative to the posts directory
	Source string

	// Body is the markdown that followed the frontmatter block
	Body string

	// HTML is the rendered body
	HTML template.HTML

	// Checksum is the SHA-256 of the normalized source content
	Checksum string
}

// URLPath returns the site-relative path of the post page.
func (p *Post) URLPath() string {
	return "posts/" + p.Metadata.Slug + PageExtension
}

// SiteInfo describes the blog as a whole.
type SiteInfo struct {
	Title       string
	Description string
	BaseURL     string
	Language    string
	Author      string

	// Params are free-form values exposed to templates as .Site.Params
	Params map[string]string
}

// BuildConfig contains all parameters needed for a build or check operation.
type BuildConfig struct {
	// SourcePath is the site root containing blogsmith.yaml
	SourcePath string

	// PostsPath is the directory holding markdown sources
	PostsPath string

	// OutputPath is the directory that receives the generated site
	OutputPath string

	// LayoutsPath optionally overrides the embedded templates; may not exist
	LayoutsPath string

	// StaticPath holds assets copied verbatim into the output; may not exist
	StaticPath string

	Site SiteInfo

	// IncludeDrafts publishes posts marked draft: true
	IncludeDrafts bool

	// UnsafeHTML passes raw HTML in markdown through to the output
	UnsafeHTML bool

	// HardWraps renders single newlines inside paragraphs as <br>
	HardWraps bool

	// Force replaces an unmanaged output directory after a countdown
	Force bool

	// Timeout is the global timeout for the entire build
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the BuildConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *BuildConfig) Validate() error {
	var errs []error

	if c.SourcePath == "" {
		errs = append(errs, fmt.Errorf("SourcePath is required: %w", ErrInvalidConfig))
	}

	if c.PostsPath == "" {
		errs = append(errs, fmt.Errorf("PostsPath is required: %w", ErrInvalidConfig))
	}

	if c.OutputPath == "" {
		errs = append(errs, fmt.Errorf("OutputPath is required: %w", ErrInvalidConfig))
	}

	// The output directory is replaced wholesale, so it must never hold sources.
	if c.OutputPath != "" && c.SourcePath != "" && contains(c.OutputPath, c.SourcePath) {
		errs = append(errs, fmt.Errorf("output path %s would replace the source directory %s: %w",
			c.OutputPath, c.SourcePath, ErrInvalidConfig))
	}

	if c.OutputPath != "" && c.PostsPath != "" &&
		(contains(c.OutputPath, c.PostsPath) || contains(c.PostsPath, c.OutputPath)) {
		errs = append(errs, fmt.Errorf("output path %s overlaps the posts directory %s: %w",
			c.OutputPath, c.PostsPath, ErrInvalidConfig))
	}

	for _, dir := range []struct{ label, path string }{
		{"static", c.StaticPath},
		{"layouts", c.LayoutsPath},
	} {
		if c.OutputPath != "" && dir.path != "" &&
			(contains(c.OutputPath, dir.path) || contains(dir.path, c.OutputPath)) {
			errs = append(errs, fmt.Errorf("output path %s overlaps the %s directory %s: %w",
				c.OutputPath, dir.label, dir.path, ErrInvalidConfig))
		}
	}

	if c.Site.BaseURL != "" {
		u, err := url.Parse(c.Site.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("base URL %q must be an absolute http(s) URL: %w", c.Site.BaseURL, ErrInvalidConfig))
		}
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// contains reports whether dir is parent itself or lies beneath it.
func contains(parent, dir string) bool {
	a, errA := filepath.Abs(parent)
	b, errB := filepath.Abs(dir)
	if errA != nil || errB != nil {
		return filepath.Clean(parent) == filepath.Clean(dir)
	}
	if a == b {
		return true
	}
	return strings.HasPrefix(b, a+string(filepath.Separator))
}
