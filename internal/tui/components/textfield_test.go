package components

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// typeInto focuses f, since an unfocused input ignores keys, and types s.
func typeInto(f TextField, s string) TextField {
	f.Focus()
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return f
}

func TestTextField_Validate(t *testing.T) {
	errScheme := errors.New("must be http(s)")
	httpOnly := func(v string) error {
		if v != "" && !strings.HasPrefix(v, "http") {
			return errScheme
		}
		return nil
	}

	tests := []struct {
		name    string
		field   TextField
		input   string
		wantErr error
	}{
		{name: "required and blank", field: NewTextField("Site title", "").WithRequired(true), input: "   ", wantErr: ErrFieldRequired},
		{name: "required and filled", field: NewTextField("Site title", "").WithRequired(true), input: "Rack Notes"},
		{name: "optional and blank skips nothing", field: NewTextField("Base URL", "").WithValidator(httpOnly), input: ""},
		{name: "validator rejects", field: NewTextField("Base URL", "").WithValidator(httpOnly), input: "ftp://x", wantErr: errScheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := typeInto(tt.field, tt.input)
			err := f.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, f.View(), err.Error())
		})
	}
}

func TestTextField_RequiredNamesTheSetting(t *testing.T) {
	f := NewTextField("Site title", "").WithRequired(true)
	err := f.Validate()
	require.Error(t, err)
	assert.Equal(t, "required: enter a site title", err.Error())
}

func TestTextField_NormalizedValue(t *testing.T) {
	f := typeInto(NewTextField("Site title", ""), "  Rack Notes  ")
	assert.Equal(t, "Rack Notes", f.Value())

	f = typeInto(NewTextField("Base URL", "").WithNormalizer(func(v string) string {
		return strings.TrimRight(strings.TrimSpace(v), "/")
	}), "https://blog.example.net//")
	assert.Equal(t, "https://blog.example.net", f.Value())
}

func TestTextField_EditClearsError(t *testing.T) {
	f := NewTextField("Site title", "").WithRequired(true)
	require.Error(t, f.Validate())

	f = typeInto(f, "R")
	assert.NotContains(t, f.View(), "required")
}

func TestTextField_Hint(t *testing.T) {
	f := NewTextField("Base URL", "").WithHint(func(v string) string { return "feed: " + v + "/rss.xml" })
	assert.NotContains(t, f.View(), "feed:", "no hint for an empty value")

	f = typeInto(f, "https://x.net")
	assert.Contains(t, f.View(), "feed: https://x.net/rss.xml")
}
