package site

import (
	"strconv"
	"strings"

	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

// templateError converts an html/template error of the form
// "template: name:line[:col]: message" into a RenderError.
func templateError(err error, filePath string) *blogsmith.RenderError {
	re := &blogsmith.RenderError{Stage: "template", FilePath: filePath, Err: err}

	sections := strings.SplitN(err.Error(), ":", 4)
	if len(sections) < 4 || strings.TrimSpace(sections[0]) != "template" {
		return re
	}

	re.Template = strings.TrimSpace(sections[1])
	re.Line, _ = strconv.Atoi(strings.TrimSpace(sections[2]))

	message := strings.TrimSpace(sections[3])
	if i := strings.Index(message, ":"); i > 0 {
		if col, _ := strconv.Atoi(strings.TrimSpace(message[:i])); col > 0 {
			message = strings.TrimSpace(message[i+1:])
		}
	}
	re.Err = &templateCause{message: message, err: err}
	return re
}

// templateCause drops the position prefix that RenderError already reports
// while keeping the html/template error reachable through errors.As.
type templateCause struct {
	message string
	err     error
}

func (c *templateCause) Error() string { return c.message }
func (c *templateCause) Unwrap() error { return c.err }
