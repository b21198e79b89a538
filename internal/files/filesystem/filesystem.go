package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// SkipDir returned from a Walk callback on a directory skips that directory.
var SkipDir = fs.SkipDir

// File represents an individual file or directory discovered during a walk.
type File interface {
	// Path returns the path the provider resolved for the entry
	Path() string

	// RelativePath returns the path relative to the walked directory, using forward slashes
	RelativePath() string

	// Info returns file metadata
	Info() FileInfo

	// ReadContent returns the file's content
	ReadContent() ([]byte, error)
}

// Directory represents a directory that can be traversed to discover files.
type Directory interface {
	// Path returns the path of the directory
	Path() string

	// Walk visits the directory and everything below it in lexical path order.
	// The callback receives each entry, or the error that prevented reading it.
	// Returning SkipDir for a directory skips its contents; any other error stops the walk.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider opens directories and reads files.
// Missing paths produce errors that satisfy errors.Is(err, fs.ErrNotExist).
type FileSystemProvider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}

// Exists reports whether path exists in the provider.
func Exists(p FileSystemProvider, path string) bool {
	_, err := p.Stat(path)
	return err == nil
}
