package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kestrel-lab/blogsmith/internal/checksum"
	"github.com/kestrel-lab/blogsmith/internal/files/filesystem"
	"github.com/kestrel-lab/blogsmith/internal/markdown"
	"github.com/kestrel-lab/blogsmith/internal/posts"
	"github.com/kestrel-lab/blogsmith/internal/publish"
	"github.com/kestrel-lab/blogsmith/internal/site"
	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

// GeneratorService implements the Generator interface.
// Thread-Safety: NOT safe for concurrent Build() calls targeting the same
// output directory. Check may run concurrently with anything.
type GeneratorService struct {
	scanner     blogsmith.SourceScanner
	fsProvider  filesystem.FileSystemProvider
	approver    blogsmith.Approver
	logger      blogsmith.Logger
	calculator  checksum.Calculator
	concurrency int
	now         func() time.Time
}

// NewGeneratorService creates a GeneratorService with all dependencies injected.
// fsProvider is used for layouts and for reading the current output in Check.
// Panics on nil dependencies.
func NewGeneratorService(
	scanner blogsmith.SourceScanner,
	fsProvider filesystem.FileSystemProvider,
	approver blogsmith.Approver,
	logger blogsmith.Logger,
) *GeneratorService {
	if scanner == nil {
		panic("scanner cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &GeneratorService{
		scanner:     scanner,
		fsProvider:  fsProvider,
		approver:    approver,
		logger:      logger,
		calculator:  checksum.New(),
		concurrency: blogsmith.DefaultWriteConcurrency,
		now:         time.Now,
	}
}

// renderedSite is a fully rendered site held in memory.
type renderedSite struct {
	collection *posts.Collection
	artifacts  []site.Artifact
	static     []blogsmith.SourceFile
}

// Build renders the site and publishes it to config.OutputPath.
func (s *GeneratorService) Build(ctx context.Context, config blogsmith.BuildConfig) (blogsmith.BuildReport, error) {
	start := s.now()

	ctx, cancel := withTimeout(ctx, config.Timeout)
	defer cancel()

	rendered, err := s.render(ctx, config)
	if err != nil {
		return blogsmith.BuildReport{}, err
	}

	publisher := publish.NewPublisher(s.approver, s.logger, s.concurrency)
	result, err := publisher.Publish(ctx, config.OutputPath, rendered.artifacts, rendered.static)
	if err != nil {
		return blogsmith.BuildReport{}, err
	}

	report := blogsmith.BuildReport{
		OutputPath: result.OutputPath,
		Posts:      rendered.collection.Len(),
		Tags:       len(rendered.collection.Tags()),
		Pages:      result.Pages,
		Assets:     result.Assets,
		Bytes:      result.Bytes,
		Duration:   s.now().Sub(start),
	}
	s.logger.Verbose("Published %d page(s) and %d asset(s) to %s", report.Pages, report.Assets, report.OutputPath)
	return report, nil
}

// Check renders the site and compares it with config.OutputPath by checksum.
func (s *GeneratorService) Check(ctx context.Context, config blogsmith.BuildConfig) (blogsmith.Drift, error) {
	ctx, cancel := withTimeout(ctx, config.Timeout)
	defer cancel()

	rendered, err := s.render(ctx, config)
	if err != nil {
		return blogsmith.Drift{}, err
	}

	files, err := publish.Plan(rendered.artifacts, rendered.static)
	if err != nil {
		return blogsmith.Drift{}, err
	}

	current, err := s.readOutput(config.OutputPath)
	if err != nil {
		return blogsmith.Drift{}, err
	}

	var drift blogsmith.Drift
	for _, f := range files {
		sum, ok := current[f.Path]
		switch {
		case !ok:
			drift.Added = append(drift.Added, f.Path)
		case sum != s.calculator.CalculateRaw(f.Content):
			drift.Changed = append(drift.Changed, f.Path)
		}
		delete(current, f.Path)
	}
	for p := range current {
		drift.Removed = append(drift.Removed, p)
	}

	sort.Strings(drift.Added)
	sort.Strings(drift.Changed)
	sort.Strings(drift.Removed)

	s.logger.Verbose("Check: %d added, %d changed, %d removed", len(drift.Added), len(drift.Changed), len(drift.Removed))
	return drift, nil
}

// render loads posts, layouts and static assets and renders every page.
// Nothing touches the output directory.
func (s *GeneratorService) render(ctx context.Context, config blogsmith.BuildConfig) (*renderedSite, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	md := markdown.New(markdown.Options{Unsafe: config.UnsafeHTML, HardWraps: config.HardWraps})
	loader := posts.NewLoader(s.scanner, md, s.logger, config.IncludeDrafts)

	collection, err := loader.Load(ctx, config.PostsPath)
	if err != nil {
		return nil, err
	}

	layouts, err := site.LoadLayouts(s.fsProvider, config.LayoutsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load layouts: %w", err)
	}

	renderer, err := site.NewRenderer(config.Site, layouts)
	if err != nil {
		return nil, err
	}

	artifacts, err := renderer.Render(collection)
	if err != nil {
		return nil, err
	}

	var static []blogsmith.SourceFile
	if config.StaticPath != "" {
		result, err := s.scanner.ScanStatic(config.StaticPath)
		if err != nil {
			return nil, fmt.Errorf("failed to scan static assets: %w", err)
		}
		static = result.Files
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render interrupted: %w", err)
	}

	s.logger.Verbose("Rendered %d post(s) into %d file(s) with %d static asset(s)",
		collection.Len(), len(artifacts), len(static))
	return &renderedSite{collection: collection, artifacts: artifacts, static: static}, nil
}

// readOutput maps every file under outputPath to its checksum.
// A missing directory yields an empty map.
func (s *GeneratorService) readOutput(outputPath string) (map[string]string, error) {
	current := map[string]string{}
	if !filesystem.Exists(s.fsProvider, outputPath) {
		return current, nil
	}

	dir, err := s.fsProvider.Open(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open output directory: %w", err)
	}

	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return err
		}
		if file.Info().IsDir() {
			return nil
		}
		content, err := file.ReadContent()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file.Path(), err)
		}
		current[file.RelativePath()] = s.calculator.CalculateRaw(content)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}
	return current, nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

var _ blogsmith.Generator = (*GeneratorService)(nil)
