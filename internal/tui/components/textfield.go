package components

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kestrel-lab/blogsmith/internal/tui"
)

// ErrFieldRequired is returned by Validate when a required field is blank.
var ErrFieldRequired = errors.New("required")

// TextField is a labeled single-line answer to one site setting. The raw
// input is normalized before it is validated or read, so " https://x/ " and
// "https://x" are the same answer.
type TextField struct {
	label     string
	input     textinput.Model
	required  bool
	normalize func(string) string
	validate  func(string) error
	hint      func(string) string
	err       error
}

// NewTextField creates a field whose value is trimmed of surrounding space.
func NewTextField(label, placeholder string) TextField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 200
	in.Width = 48

	return TextField{label: label, input: in, normalize: strings.TrimSpace}
}

// WithRequired rejects a blank value.
func (f TextField) WithRequired(required bool) TextField {
	f.required = required
	return f
}

// WithValidator checks the normalized value.
func (f TextField) WithValidator(fn func(string) error) TextField {
	f.validate = fn
	return f
}

// WithNormalizer replaces the default trim. Value returns fn's result.
func (f TextField) WithNormalizer(fn func(string) string) TextField {
	f.normalize = fn
	return f
}

// WithHint shows fn(value) under the field while the value is non-empty
// and no error is displayed.
func (f TextField) WithHint(fn func(string) string) TextField {
	f.hint = fn
	return f
}

func (f *TextField) Focus() tea.Cmd { return f.input.Focus() }

func (f *TextField) Blur() { f.input.Blur() }

// Update forwards msg to the input. An error from the last Validate is
// cleared once the value changes.
func (f TextField) Update(msg tea.Msg) (TextField, tea.Cmd) {
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() != before {
		f.err = nil
	}
	return f, cmd
}

// Value is the normalized input.
func (f TextField) Value() string {
	return f.normalize(f.input.Value())
}

// Validate records and returns the problem with the current value, if any.
func (f *TextField) Validate() error {
	v := f.Value()
	switch {
	case v == "" && f.required:
		f.err = fmt.Errorf("%w: enter a %s", ErrFieldRequired, strings.ToLower(f.label))
	case f.validate != nil:
		f.err = f.validate(v)
	default:
		f.err = nil
	}
	return f.err
}

func (f TextField) View() string {
	var b strings.Builder

	label := f.label
	if f.required {
		label += tui.ErrorStyle.Render(" *")
	}
	b.WriteString(tui.UnselectedStyle.Render(label))
	b.WriteString("\n")

	inputStyle := tui.UnselectedStyle
	if f.input.Focused() {
		inputStyle = tui.SelectedStyle
	}
	b.WriteString(inputStyle.Render(f.input.View()))

	switch v := f.Value(); {
	case f.err != nil:
		b.WriteString("\n")
		b.WriteString(tui.ErrorStyle.Render(tui.SymbolCross + " " + f.err.Error()))
	case f.hint != nil && v != "":
		if h := f.hint(v); h != "" {
			b.WriteString("\n")
			b.WriteString(tui.DescriptionStyle.Render(h))
		}
	}
	return b.String()
}
