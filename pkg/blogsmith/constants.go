package blogsmith

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess        = 0  // Build completed successfully
	ExitGeneralError   = 1  // Unknown or unclassified error
	ExitUsageError     = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic          = 3  // Internal panic (unexpected crash)
	ExitConfigError    = 10 // Invalid configuration or parameters
	ExitApprovalDenied = 12 // User denied replacing an unmanaged output directory
	ExitParseError     = 20 // Frontmatter could not be parsed
	ExitValidation     = 21 // Frontmatter fields failed validation
	ExitDuplicateSlug  = 22 // Two posts share a slug
	ExitRenderError    = 23 // Markdown, template or feed rendering failed
	ExitPublishError   = 24 // Output could not be staged or swapped into place
)

const (
	// DateLayout is the only accepted layout for the frontmatter date field.
	DateLayout = "2006-01-02"

	// ConfigFileName is the site configuration file looked up in the site root.
	ConfigFileName = "blogsmith.yaml"

	// OutputMarkerFile is written into every generated output directory.
	// An existing non-empty directory without it is never replaced silently.
	OutputMarkerFile = ".blogsmith-output"

	DefaultPostsDir   = "posts"
	DefaultOutputDir  = "public"
	DefaultLayoutsDir = "layouts"
	DefaultStaticDir  = "static"
	DefaultLanguage   = "en"

	// DefaultForceApprovalCountdown is the countdown duration before force approval proceeds.
	DefaultForceApprovalCountdown = 5 * time.Second

	// DefaultWriteConcurrency bounds the number of staged files written at once.
	DefaultWriteConcurrency = 8

	// DefaultRenameRetries bounds retries of the output swap renames when the
	// filesystem reports the directory as busy.
	DefaultRenameRetries = 4

	// DefaultRenameInitialDelay is the first backoff delay between rename retries.
	DefaultRenameInitialDelay = 50 * time.Millisecond

	// DefaultRenameMaxDelay caps the backoff delay between rename retries.
	DefaultRenameMaxDelay = 2 * time.Second

	// DefaultWatchDebounce is how long watch waits for the filesystem to settle
	// before rebuilding.
	DefaultWatchDebounce = 300 * time.Millisecond

	// MaxPostSize is the largest source file the reader accepts.
	MaxPostSize = 4 << 20

	// PageExtension is the extension of every generated page.
	PageExtension = ".html"

	// FeedFileName is the RSS feed written at the output root.
	FeedFileName = "rss.xml"
)
