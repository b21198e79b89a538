package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kestrel-lab/blogsmith/internal/frontmatter"
	"github.com/kestrel-lab/blogsmith/internal/metadata"
	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

// PostOptions describes a new post skeleton.
type PostOptions struct {
	Title   string
	Slug    string
	Tags    []string
	Summary string
	Date    time.Time
	Draft   bool
}

// postFrontmatter fixes the key order of generated frontmatter.
type postFrontmatter struct {
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Tags    []string `yaml:"tags,flow"`
	Summary string   `yaml:"summary"`
	Slug    string   `yaml:"slug"`
	Draft   bool     `yaml:"draft,omitempty"`
}

const newPostBody = "Write your post here.\n"

// NewPost writes <postsDir>/<slug>.md with a frontmatter skeleton and returns
// its path. It refuses to overwrite a file or reuse a slug claimed by any
// existing post, drafts included.
func (s *Scaffolder) NewPost(scanner blogsmith.SourceScanner, postsDir string, opts PostOptions) (string, error) {
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		return "", fmt.Errorf("post title is required: %w", blogsmith.ErrInvalidConfig)
	}

	slug := strings.TrimSpace(opts.Slug)
	if slug == "" {
		slug = metadata.Slugify(title)
	}

	summary := strings.TrimSpace(opts.Summary)
	if summary == "" {
		summary = title
	}

	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}

	tags := opts.Tags
	if tags == nil {
		tags = []string{}
	}

	meta := postFrontmatter{
		Title:   title,
		Date:    date.Format(blogsmith.DateLayout),
		Tags:    tags,
		Summary: summary,
		Slug:    slug,
		Draft:   opts.Draft,
	}

	// Validate exactly what the loader will later see.
	raw := map[string]any{
		"title":   meta.Title,
		"date":    meta.Date,
		"tags":    toAnySlice(meta.Tags),
		"summary": meta.Summary,
		"slug":    meta.Slug,
		"draft":   meta.Draft,
	}
	if _, err := metadata.Validate(raw, filepath.Join(postsDir, slug+".md")); err != nil {
		return "", err
	}

	if existing, err := existingSlugs(scanner, postsDir); err != nil {
		return "", err
	} else if owner, ok := existing[metadata.NormalizeSlug(slug)]; ok {
		return "", &blogsmith.DuplicateSlugError{Slug: slug, FirstPath: owner, SecondPath: filepath.Join(postsDir, slug+".md")}
	}

	content, err := frontmatter.Write(meta, []byte(newPostBody))
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(postsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create posts directory: %w", err)
	}

	target := filepath.Join(postsDir, slug+".md")
	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%s already exists", target)
		}
		return "", fmt.Errorf("failed to create post: %w", err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write post: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write post: %w", err)
	}

	s.logger.Verbose("Created %s", target)
	return target, nil
}

// existingSlugs maps normalized slugs to the file declaring them. Files that
// do not parse are skipped; build reports them properly.
func existingSlugs(scanner blogsmith.SourceScanner, postsDir string) (map[string]string, error) {
	result, err := scanner.ScanPosts(postsDir)
	if errors.Is(err, blogsmith.ErrPostsDirNotFound) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	slugs := make(map[string]string, len(result.Files))
	for _, f := range result.Files {
		raw, _, err := frontmatter.Split(f.Content, f.Path)
		if err != nil {
			continue
		}
		if slug, ok := raw["slug"].(string); ok && slug != "" {
			key := metadata.NormalizeSlug(slug)
			if _, seen := slugs[key]; !seen {
				slugs[key] = f.Path
			}
		}
	}
	return slugs, nil
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
