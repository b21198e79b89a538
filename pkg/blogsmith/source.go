package blogsmith

// SourceScanner discovers post sources and static assets.
// Implementations must be safe for concurrent use by multiple goroutines.
type SourceScanner interface {
	// ScanPosts recursively lists markdown sources under postsPath in
	// lexical path order. Hidden files and directories are skipped.
	ScanPosts(postsPath string) (ScanResult, error)

	// ScanStatic lists every regular file under staticPath. A missing
	// directory yields an empty result.
	ScanStatic(staticPath string) (ScanResult, error)
}

// ScanResult contains the results of scanning a directory.
type ScanResult struct {
	Files []SourceFile
}

// SourceFile is one file read during a scan.
type SourceFile struct {
	// Path is the absolute or caller-rooted path the file was read from
	Path string

	// RelPath is relative to the scanned directory and uses forward slashes
	RelPath string

	Content  []byte
	Checksum string
}
