package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/kestrel-lab/blogsmith/internal/checksum"
	"github.com/kestrel-lab/blogsmith/internal/files/filesystem"
	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

// Scanner discovers post sources and static assets from a directory tree.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided calculator and fsProvider are also thread-safe.
type Scanner struct {
	calculator checksum.Calculator
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a new scanner with the given checksum calculator.
// Uses OS filesystem by default.
// Panics if calculator is nil.
func NewScanner(calculator checksum.Calculator) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: filesystem.NewOSFileSystem(),
	}
}

// NewScannerWithFS creates a new scanner with a custom filesystem provider.
// Panics if calculator or fsProvider is nil.
func NewScannerWithFS(calculator checksum.Calculator, fsProvider filesystem.FileSystemProvider) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: fsProvider,
	}
}

// IsPostSource reports whether name has a markdown extension.
func IsPostSource(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// ScanPosts recursively lists markdown sources under postsPath in lexical path order.
// Hidden files and directories are skipped, as are files without a markdown extension.
func (s *Scanner) ScanPosts(postsPath string) (blogsmith.ScanResult, error) {
	dir, err := s.fsProvider.Open(postsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return blogsmith.ScanResult{}, fmt.Errorf("%s: %w", postsPath, blogsmith.ErrPostsDirNotFound)
		}
		return blogsmith.ScanResult{}, fmt.Errorf("failed to open posts directory: %w", err)
	}

	var files []blogsmith.SourceFile
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}

		info := file.Info()
		if file.RelativePath() != "." && isHidden(info.Name()) {
			if info.IsDir() {
				return filesystem.SkipDir
			}
			return nil
		}
		if info.IsDir() || !IsPostSource(info.Name()) {
			return nil
		}

		if info.Size() > blogsmith.MaxPostSize {
			return fmt.Errorf("post %s is %d bytes, larger than the %d byte limit",
				file.RelativePath(), info.Size(), blogsmith.MaxPostSize)
		}

		source, err := s.processFile(postsPath, file)
		if err != nil {
			return fmt.Errorf("failed to process file %s: %w", file.RelativePath(), err)
		}
		files = append(files, source)
		return nil
	})
	if err != nil {
		return blogsmith.ScanResult{}, err
	}

	return blogsmith.ScanResult{Files: files}, nil
}

// junkFiles are editor and OS droppings never copied into the output.
var junkFiles = map[string]bool{
	".DS_Store":   true,
	"Thumbs.db":   true,
	"desktop.ini": true,
}

// ScanStatic lists every regular file under staticPath. Dotfiles such as
// .well-known are kept, but VCS directories and OS junk are not.
// A missing directory yields an empty result.
func (s *Scanner) ScanStatic(staticPath string) (blogsmith.ScanResult, error) {
	if staticPath == "" || !filesystem.Exists(s.fsProvider, staticPath) {
		return blogsmith.ScanResult{}, nil
	}

	dir, err := s.fsProvider.Open(staticPath)
	if err != nil {
		return blogsmith.ScanResult{}, fmt.Errorf("failed to open static directory: %w", err)
	}

	var files []blogsmith.SourceFile
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}

		info := file.Info()
		if info.IsDir() {
			switch info.Name() {
			case ".git", ".hg", ".svn":
				return filesystem.SkipDir
			}
			return nil
		}
		if junkFiles[info.Name()] || !info.Mode().IsRegular() {
			return nil
		}

		source, err := s.processFile(staticPath, file)
		if err != nil {
			return fmt.Errorf("failed to process file %s: %w", file.RelativePath(), err)
		}
		files = append(files, source)
		return nil
	})
	if err != nil {
		return blogsmith.ScanResult{}, err
	}

	return blogsmith.ScanResult{Files: files}, nil
}

func (s *Scanner) processFile(root string, file filesystem.File) (blogsmith.SourceFile, error) {
	content, err := file.ReadContent()
	if err != nil {
		return blogsmith.SourceFile{}, fmt.Errorf("failed to read file: %w", err)
	}

	rel := filepath.ToSlash(file.RelativePath())

	return blogsmith.SourceFile{
		Path:     filepath.Join(root, filepath.FromSlash(rel)),
		RelPath:  rel,
		Content:  content,
		Checksum: s.calculator.CalculateNormalized(content),
	}, nil
}

// Verify Scanner implements the interface at compile time
var _ blogsmith.SourceScanner = (*Scanner)(nil)
