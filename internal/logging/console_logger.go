package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Options configures a ConsoleLogger.
type Options struct {
	// Verbose enables Verbose() output (debug level)
	Verbose bool

	// Output receives log lines; defaults to os.Stderr
	Output io.Writer

	// Format is "console" (human readable, the default) or "json"
	Format string

	// NoColor disables ANSI colors in console format
	NoColor bool

	// Timestamp prefixes each line with the time of day
	Timestamp bool
}

// ConsoleLogger implements blogsmith.Logger on top of zerolog.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	log zerolog.Logger
}

// NewConsoleLogger creates a logger writing human-readable lines to stderr.
// Colors are used only when stderr is a terminal and NO_COLOR is unset.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return New(Options{
		Verbose: verbose,
		Output:  os.Stderr,
		NoColor: !colorSupported(os.Stderr),
	})
}

// New creates a logger from explicit options.
func New(opts Options) *ConsoleLogger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	out = zerolog.SyncWriter(out)

	if !strings.EqualFold(opts.Format, "json") {
		cw := zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "15:04:05",
			NoColor:    opts.NoColor,
		}
		if !opts.Timestamp {
			cw.PartsExclude = []string{zerolog.TimestampFieldName}
		}
		out = cw
	}

	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	ctx := zerolog.New(out).Level(level).With()
	if opts.Timestamp {
		ctx = ctx.Timestamp()
	}

	return &ConsoleLogger{log: ctx.Logger()}
}

func colorSupported(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func message(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	l.log.Debug().Msg(message(format, args))
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.log.Info().Msg(message(format, args))
}

// Warn logs conditions worth attention that do not stop the build.
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	l.log.Warn().Msg(message(format, args))
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.log.Error().Msg(message(format, args))
}
