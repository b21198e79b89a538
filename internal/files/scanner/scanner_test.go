package scanner

import (
	"errors"
	"testing"

	"github.com/kestrel-lab/blogsmith/internal/checksum"
	"github.com/kestrel-lab/blogsmith/internal/files/filesystem"
	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScanner() (*Scanner, *filesystem.MemoryFileSystem) {
	fs := filesystem.NewMemoryFileSystem("/site")
	return NewScannerWithFS(checksum.New(), fs), fs
}

func relPaths(result blogsmith.ScanResult) []string {
	var out []string
	for _, f := range result.Files {
		out = append(out, f.RelPath)
	}
	return out
}

func TestNewScanner_NilCalculator(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for nil calculator")
		}
	}()
	NewScanner(nil)
}

func TestNewScannerWithFS_NilArgs(t *testing.T) {
	calc := checksum.New()
	fs := filesystem.NewMemoryFileSystem("/")

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil calculator", func() { NewScannerWithFS(nil, fs) }},
		{"nil filesystem", func() { NewScannerWithFS(calc, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("Expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestScanPosts(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("posts/b-second.md", "---\n---\nb")
	fs.AddFile("posts/a-first.markdown", "---\n---\na")
	fs.AddFile("posts/2024/old.MD", "---\n---\nold")
	fs.AddFile("posts/notes.txt", "not a post")
	fs.AddFile("posts/.hidden.md", "skip me")
	fs.AddFile("posts/.drafts/wip.md", "skip me too")

	result, err := s.ScanPosts("/site/posts")
	require.NoError(t, err)

	assert.Equal(t, []string{"2024/old.MD", "a-first.markdown", "b-second.md"}, relPaths(result))
	for _, f := range result.Files {
		assert.NotEmpty(t, f.Checksum, f.RelPath)
		assert.NotEmpty(t, f.Content, f.RelPath)
		assert.Contains(t, f.Path, "/site/posts/")
	}
}

func TestScanPosts_MissingDirectory(t *testing.T) {
	s, _ := newTestScanner()

	_, err := s.ScanPosts("/site/posts")
	require.Error(t, err)
	assert.True(t, errors.Is(err, blogsmith.ErrPostsDirNotFound))
}

func TestScanPosts_EmptyDirectory(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("posts/README.txt", "")

	result, err := s.ScanPosts("posts")
	require.NoError(t, err)
	assert.Empty(t, result.Files)
}

func TestScanPosts_ChecksumIgnoresLineEndings(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("posts/unix.md", "---\ntitle: x\n---\nbody\n")
	fs.AddFile("posts/windows.md", "---\r\ntitle: x\r\n---\r\nbody\r\n")

	result, err := s.ScanPosts("posts")
	require.NoError(t, err)
	require.Len(t, result.Files, 2)
	assert.Equal(t, result.Files[0].Checksum, result.Files[1].Checksum)
}

func TestScanStatic(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("static/css/site.css", "body{}")
	fs.AddFile("static/.well-known/security.txt", "Contact: mailto:me@example.com")
	fs.AddFile("static/.DS_Store", "junk")
	fs.AddFile("static/.git/config", "junk")
	fs.AddFile("static/favicon.ico", "\x00\x01")

	result, err := s.ScanStatic("static")
	require.NoError(t, err)
	assert.Equal(t, []string{".well-known/security.txt", "css/site.css", "favicon.ico"}, relPaths(result))
}

func TestScanStatic_MissingDirectory(t *testing.T) {
	s, _ := newTestScanner()

	result, err := s.ScanStatic("static")
	require.NoError(t, err)
	assert.Empty(t, result.Files)

	result, err = s.ScanStatic("")
	require.NoError(t, err)
	assert.Empty(t, result.Files)
}
