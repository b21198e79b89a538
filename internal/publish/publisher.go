package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kestrel-lab/blogsmith/internal/retry"
	"github.com/kestrel-lab/blogsmith/internal/site"
	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
	"golang.org/x/sync/errgroup"
)

// markerContent is the body of the output marker file.
const markerContent = "This directory is generated by blogsmith and replaced on every build.\n"

// File is one file to place in the output, relative to the output root.
type File struct {
	Path    string
	Content []byte
}

// Result summarizes a publish.
type Result struct {
	OutputPath string
	Pages      int
	Assets     int
	Bytes      int64

	// Replaced is true when an existing output directory was swapped out
	Replaced bool
}

// Publisher stages and swaps generated output into place.
// Thread-Safety: NOT safe for concurrent Publish calls targeting the same output.
type Publisher struct {
	approver    blogsmith.Approver
	logger      blogsmith.Logger
	concurrency int

	// rename is os.Rename outside of tests
	rename func(oldpath, newpath string) error

	// retrier repeats renames that fail because the directory is busy
	retrier *retry.Executor
}

// NewPublisher creates a Publisher writing at most concurrency files at once.
// A concurrency below one uses DefaultWriteConcurrency.
// Panics if approver or logger is nil.
func NewPublisher(approver blogsmith.Approver, logger blogsmith.Logger, concurrency int) *Publisher {
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if concurrency < 1 {
		concurrency = blogsmith.DefaultWriteConcurrency
	}
	retrier := retry.NewExecutor(
		retry.NewFilesystemErrorClassifier(),
		retry.NewExponentialBackoff(blogsmith.DefaultRenameRetries,
			retry.WithInitialDelay(blogsmith.DefaultRenameInitialDelay),
			retry.WithMaxDelay(blogsmith.DefaultRenameMaxDelay),
		),
	).WithOnRetry(func(attempt int, err error, delay time.Duration) {
		logger.Warn("Rename failed (%v), retrying in %v (attempt %d/%d)", err, delay.Round(time.Millisecond), attempt+1, blogsmith.DefaultRenameRetries)
	})

	return &Publisher{
		approver:    approver,
		logger:      logger,
		concurrency: concurrency,
		rename:      os.Rename,
		retrier:     retrier,
	}
}

// Publish replaces outputPath with the rendered artifacts plus the static
// assets. Static assets whose path collides with a generated file are
// rejected with ErrOutputConflict before anything is written.
func (p *Publisher) Publish(ctx context.Context, outputPath string, artifacts []site.Artifact, static []blogsmith.SourceFile) (Result, error) {
	files, err := Plan(artifacts, static)
	if err != nil {
		return Result{}, err
	}

	outputPath, err = filepath.Abs(outputPath)
	if err != nil {
		return Result{}, &blogsmith.PublishError{Op: "resolve", Path: outputPath, Err: err}
	}

	existing, err := p.checkOutput(ctx, outputPath)
	if err != nil {
		return Result{}, err
	}

	parent := filepath.Dir(outputPath)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return Result{}, &blogsmith.PublishError{Op: "create", Path: parent, Err: err}
	}

	staging, err := os.MkdirTemp(parent, "."+filepath.Base(outputPath)+".staging-")
	if err != nil {
		return Result{}, &blogsmith.PublishError{Op: "stage", Path: parent, Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			if err := os.RemoveAll(staging); err != nil {
				p.logger.Warn("Failed to remove staging directory %s: %v", staging, err)
			}
		}
	}()

	if err := os.Chmod(staging, 0755); err != nil {
		return Result{}, &blogsmith.PublishError{Op: "stage", Path: staging, Err: err}
	}

	p.logger.Verbose("Staging %d file(s) in %s", len(files), staging)
	if err := p.writeAll(ctx, staging, files); err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("publish interrupted before swap: %w", err)
	}

	// once the first rename happens the swap must run to completion
	if err := p.swap(context.WithoutCancel(ctx), staging, outputPath, existing); err != nil {
		return Result{}, err
	}
	committed = true

	result := Result{OutputPath: outputPath, Pages: len(artifacts), Assets: len(static), Replaced: existing}
	for _, f := range files {
		result.Bytes += int64(len(f.Content))
	}
	return result, nil
}

// Plan merges artifacts, static assets and the marker into one list sorted
// by path, rejecting collisions.
func Plan(artifacts []site.Artifact, static []blogsmith.SourceFile) ([]File, error) {
	files := make([]File, 0, len(artifacts)+len(static)+1)
	owner := make(map[string]string, cap(files))

	add := func(p string, content []byte, from string) error {
		clean := path.Clean(filepath.ToSlash(p))
		if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
			return fmt.Errorf("%s path %q escapes the output directory: %w", from, p, blogsmith.ErrOutputConflict)
		}
		key := strings.ToLower(clean)
		if prev, ok := owner[key]; ok {
			return fmt.Errorf("%s %s collides with %s: %w", from, clean, prev, blogsmith.ErrOutputConflict)
		}
		owner[key] = from + " " + clean
		files = append(files, File{Path: clean, Content: content})
		return nil
	}

	if err := add(blogsmith.OutputMarkerFile, []byte(markerContent), "marker"); err != nil {
		return nil, err
	}
	for _, a := range artifacts {
		if err := add(a.Path, a.Content, "generated file"); err != nil {
			return nil, err
		}
	}
	for _, s := range static {
		if err := add(s.RelPath, s.Content, "static file"); err != nil {
			return nil, err
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// checkOutput reports whether outputPath already exists and asks for
// approval when it holds files blogsmith did not write.
func (p *Publisher) checkOutput(ctx context.Context, outputPath string) (bool, error) {
	info, err := os.Stat(outputPath)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &blogsmith.PublishError{Op: "inspect", Path: outputPath, Err: err}
	}
	if !info.IsDir() {
		return false, &blogsmith.PublishError{Op: "inspect", Path: outputPath, Err: errors.New("output path exists and is not a directory")}
	}

	managed, err := IsManaged(outputPath)
	if err != nil {
		return false, &blogsmith.PublishError{Op: "inspect", Path: outputPath, Err: err}
	}
	if managed {
		return true, nil
	}

	p.logger.Verbose("Output directory %s exists without a %s marker. Requesting approval.", outputPath, blogsmith.OutputMarkerFile)
	approved, err := p.approver.RequestApproval(ctx, outputPath)
	if err != nil {
		return false, fmt.Errorf("approval request failed: %w", err)
	}
	if !approved {
		return false, blogsmith.ErrApprovalDenied
	}
	return true, nil
}

// IsManaged reports whether dir can be replaced without asking: it is
// empty or carries the output marker.
func IsManaged(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	if len(entries) == 0 {
		return true, nil
	}
	for _, e := range entries {
		if e.Name() == blogsmith.OutputMarkerFile && e.Type().IsRegular() {
			return true, nil
		}
	}
	return false, nil
}

func (p *Publisher) writeAll(ctx context.Context, root string, files []File) error {
	dirs := map[string]bool{}
	for _, f := range files {
		if d := path.Dir(f.Path); d != "." {
			dirs[d] = true
		}
	}
	sorted := make([]string, 0, len(dirs))
	for d := range dirs {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)
	for _, d := range sorted {
		full := filepath.Join(root, filepath.FromSlash(d))
		if err := os.MkdirAll(full, 0755); err != nil {
			return &blogsmith.PublishError{Op: "stage", Path: full, Err: err}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for _, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			full := filepath.Join(root, filepath.FromSlash(f.Path))
			if err := os.WriteFile(full, f.Content, 0644); err != nil {
				return &blogsmith.PublishError{Op: "write", Path: full, Err: err}
			}
			return nil
		})
	}
	return g.Wait()
}

// swap moves staging into place. When existing is set the current output is
// first renamed aside and restored if the second rename fails.
func (p *Publisher) swap(ctx context.Context, staging, outputPath string, existing bool) error {
	if !existing {
		if err := p.move(ctx, staging, outputPath); err != nil {
			return &blogsmith.PublishError{Op: "swap", Path: outputPath, Err: err}
		}
		return nil
	}

	backup := staging + ".previous"
	if err := p.move(ctx, outputPath, backup); err != nil {
		return &blogsmith.PublishError{Op: "swap", Path: outputPath, Err: err}
	}

	if err := p.move(ctx, staging, outputPath); err != nil {
		if rbErr := p.move(ctx, backup, outputPath); rbErr != nil {
			return &blogsmith.PublishError{
				Op:   "swap",
				Path: outputPath,
				Err:  fmt.Errorf("%w; restoring previous output from %s also failed: %v", err, backup, rbErr),
			}
		}
		return &blogsmith.PublishError{Op: "swap", Path: outputPath, Err: err}
	}

	if err := os.RemoveAll(backup); err != nil {
		p.logger.Warn("Published, but failed to remove previous output %s: %v", backup, err)
	}
	return nil
}

func (p *Publisher) move(ctx context.Context, oldpath, newpath string) error {
	return p.retrier.Execute(ctx, func(context.Context) error {
		return p.rename(oldpath, newpath)
	})
}
