package wizards

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTemplates() []TemplateInfo {
	return []TemplateInfo{
		{Name: "basic", Description: "One sample post"},
		{Name: "themed", Description: "Custom layouts and a stylesheet"},
	}
}

func send(t *testing.T, w InitWizard, msgs ...tea.Msg) (InitWizard, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var model tea.Model
		model, cmd = w.Update(msg)
		w = model.(InitWizard)
	}
	return w, cmd
}

func keyMsg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func typed(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestInitWizard_HappyPath(t *testing.T) {
	w := NewInitWizard("myblog", testTemplates())
	assert.Contains(t, w.View(), "Select a template")

	w, _ = send(t, w, keyMsg(tea.KeyDown), keyMsg(tea.KeyEnter))
	assert.Equal(t, initStepTitle, w.step)

	w, _ = send(t, w, typed("Rack Notes"), keyMsg(tea.KeyEnter))
	assert.Equal(t, initStepBaseURL, w.step)

	w, _ = send(t, w, typed("https://blog.example.net"), keyMsg(tea.KeyEnter))
	require.Equal(t, initStepConfirm, w.step)
	assert.Contains(t, w.View(), "Base URL:  https://blog.example.net")

	w, cmd := send(t, w, keyMsg(tea.KeyEnter))
	require.NotNil(t, cmd)

	result := w.Result()
	assert.False(t, result.Cancelled)
	assert.Equal(t, "themed", result.Template)
	assert.Equal(t, "Rack Notes", result.SiteTitle)
	assert.Equal(t, "https://blog.example.net", result.BaseURL)
	assert.Equal(t, "myblog", result.TargetDir)
}

func TestInitWizard_TitleRequired(t *testing.T) {
	w := NewInitWizard("", testTemplates())
	w, _ = send(t, w, keyMsg(tea.KeyEnter), keyMsg(tea.KeyEnter))

	assert.Equal(t, initStepTitle, w.step)
	assert.Contains(t, w.View(), "required: enter a site title")
}

func TestInitWizard_BaseURLIsNormalized(t *testing.T) {
	w := NewInitWizard("", testTemplates())
	w, _ = send(t, w, keyMsg(tea.KeyEnter), typed("T"), keyMsg(tea.KeyEnter), typed(" https://blog.example.net/ "))
	assert.Contains(t, w.View(), "feed: https://blog.example.net/rss.xml")

	w, _ = send(t, w, keyMsg(tea.KeyEnter), keyMsg(tea.KeyEnter))
	assert.Equal(t, "https://blog.example.net", w.Result().BaseURL)
}

func TestInitWizard_InvalidBaseURLBlocks(t *testing.T) {
	w := NewInitWizard("", testTemplates())
	w, _ = send(t, w, keyMsg(tea.KeyEnter), typed("T"), keyMsg(tea.KeyEnter), typed("ftp://x"), keyMsg(tea.KeyEnter))

	assert.Equal(t, initStepBaseURL, w.step)
	assert.True(t, strings.Contains(w.View(), "absolute http(s) URL"))
}

func TestInitWizard_QInTextIsTyped(t *testing.T) {
	w := NewInitWizard("", testTemplates())
	w, _ = send(t, w, keyMsg(tea.KeyEnter), typed("q"))

	assert.False(t, w.Result().Cancelled)
	assert.Equal(t, "q", w.title.Value())
}

func TestInitWizard_Cancel(t *testing.T) {
	tests := []struct {
		name string
		msgs []tea.Msg
	}{
		{"q on template list", []tea.Msg{typed("q")}},
		{"esc on template list", []tea.Msg{keyMsg(tea.KeyEsc)}},
		{"ctrl+c while typing", []tea.Msg{keyMsg(tea.KeyEnter), typed("x"), keyMsg(tea.KeyCtrlC)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, cmd := send(t, NewInitWizard("", testTemplates()), tt.msgs...)
			assert.True(t, w.Result().Cancelled)
			assert.NotNil(t, cmd)
		})
	}
}

func TestInitWizard_BackNavigation(t *testing.T) {
	w := NewInitWizard("", testTemplates())
	w, _ = send(t, w, keyMsg(tea.KeyEnter), typed("T"), keyMsg(tea.KeyEnter), keyMsg(tea.KeyEsc))
	assert.Equal(t, initStepTitle, w.step)

	w, _ = send(t, w, keyMsg(tea.KeyEsc))
	assert.Equal(t, initStepTemplate, w.step)
}

func TestValidateBaseURL(t *testing.T) {
	assert.NoError(t, ValidateBaseURL(""))
	assert.NoError(t, ValidateBaseURL("http://localhost:8080/blog"))
	assert.Error(t, ValidateBaseURL("blog.example.net"))
	assert.Error(t, ValidateBaseURL("ftp://example.net"))
}
