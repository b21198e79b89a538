package blogsmith

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := generator.Build(ctx, config)
//	if errors.Is(err, blogsmith.ErrApprovalDenied) {
//	    // Output directory was left alone
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrApprovalDenied indicates the user refused to replace an unmanaged output directory.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrOutputConflict indicates two artifacts map to the same output path.
	ErrOutputConflict = errors.New("output path conflict")

	// ErrPostsDirNotFound indicates the posts directory does not exist.
	ErrPostsDirNotFound = errors.New("posts directory not found")

	// ErrOutputStale indicates check --strict found drift between a fresh
	// render and the output directory.
	ErrOutputStale = errors.New("output is out of date")
)

// ParseError reports a source file whose frontmatter block could not be split
// from the body or decoded as a YAML mapping.
type ParseError struct {
	FilePath string
	Line     int // 1-based, 0 when unknown
	Message  string
	Hint     string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse error in ")
	b.WriteString(e.FilePath)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Hint != "" {
		b.WriteString("\n\nHint: ")
		b.WriteString(e.Hint)
	}
	return b.String()
}

// ValidationError reports a single frontmatter field that is missing or malformed.
// Validators return one ValidationError per offending field, joined with errors.Join.
type ValidationError struct {
	FilePath string
	Field    string
	Message  string
	Hint     string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("validation error in %s [field: %s]: %s", e.FilePath, e.Field, e.Message)
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	return msg
}

// ValidationFields returns the field names of every ValidationError found in err,
// in the order they were reported.
func ValidationFields(err error) []string {
	var fields []string
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if ve, ok := e.(*ValidationError); ok {
			fields = append(fields, ve.Field)
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return fields
}

// DuplicateSlugError reports two source files that declare the same slug.
type DuplicateSlugError struct {
	Slug       string
	FirstPath  string
	SecondPath string
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("duplicate slug %q: declared by %s and %s", e.Slug, e.FirstPath, e.SecondPath)
}

// RenderError reports a failure while producing output from valid input.
// Stage is one of "markdown", "template" or "feed".
type RenderError struct {
	Stage    string
	FilePath string // source post, when the failure belongs to one
	Template string // template name, when a template failed
	Line     int
	Err      error
}

func (e *RenderError) Error() string {
	var b strings.Builder
	b.WriteString(e.Stage)
	b.WriteString(" render error")
	if e.FilePath != "" {
		b.WriteString(" in ")
		b.WriteString(e.FilePath)
	}
	if e.Template != "" {
		b.WriteString(" (template ")
		b.WriteString(e.Template)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *RenderError) Unwrap() error { return e.Err }

// PublishError reports a failure to stage or swap the generated output.
// The previous output is left in place whenever a PublishError is returned.
type PublishError struct {
	Op   string
	Path string
	Err  error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// usageErrorPrefixes are the message prefixes cobra and pflag use for
// command-line misuse.
var usageErrorPrefixes = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"requires at most",
	"required flag",
	"invalid argument",
	"flag needs an argument",
	"missing required argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		parseErr     *ParseError
		validErr     *ValidationError
		duplicateErr *DuplicateSlugError
		renderErr    *RenderError
		publishErr   *PublishError
	)

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.As(err, &parseErr):
		return ExitParseError
	case errors.As(err, &validErr):
		return ExitValidation
	case errors.As(err, &duplicateErr):
		return ExitDuplicateSlug
	case errors.As(err, &renderErr), errors.Is(err, ErrOutputConflict):
		return ExitRenderError
	case errors.As(err, &publishErr):
		return ExitPublishError
	}

	errStr := err.Error()
	for _, prefix := range usageErrorPrefixes {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
