package wizards

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kestrel-lab/blogsmith/internal/tui"
	"github.com/kestrel-lab/blogsmith/internal/tui/components"
	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

// TemplateInfo holds template metadata for display.
type TemplateInfo struct {
	Name        string
	Description string
}

// InitResult holds the result of the init wizard.
type InitResult struct {
	Cancelled bool
	TargetDir string
	Template  string
	SiteTitle string
	BaseURL   string
}

type initStep int

const (
	initStepTemplate initStep = iota
	initStepTitle
	initStepBaseURL
	initStepConfirm
)

// InitWizard guides users through creating a new site.
type InitWizard struct {
	step        initStep
	templates   []TemplateInfo
	templateIdx int
	targetDir   string

	title   components.TextField
	baseURL components.TextField

	result InitResult
	keys   tui.KeyMap
}

// NewInitWizard creates a new init wizard.
func NewInitWizard(targetDir string, templates []TemplateInfo) InitWizard {
	if targetDir == "" {
		targetDir = "."
	}
	return InitWizard{
		step:      initStepTemplate,
		targetDir: targetDir,
		templates: templates,
		title: components.NewTextField("Site title", "My Homelab").
			WithRequired(true),
		baseURL: components.NewTextField("Base URL (optional)", "https://blog.example.net").
			WithNormalizer(normalizeBaseURL).
			WithValidator(ValidateBaseURL).
			WithHint(feedHint),
		keys: tui.DefaultKeyMap(),
	}
}

// ValidateBaseURL accepts an empty value or an absolute http(s) URL.
func ValidateBaseURL(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("must be an absolute http(s) URL")
	}
	return nil
}

// normalizeBaseURL trims space and trailing slashes so page and feed links
// join onto the base URL with exactly one slash.
func normalizeBaseURL(v string) string {
	return strings.TrimRight(strings.TrimSpace(v), "/")
}

// feedHint previews where the RSS feed will be published.
func feedHint(baseURL string) string {
	if ValidateBaseURL(baseURL) != nil {
		return ""
	}
	return "feed: " + baseURL + "/" + blogsmith.FeedFileName
}

// Init implements tea.Model.
func (w InitWizard) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (w InitWizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return w.updateInput(msg)
	}

	if key.Matches(keyMsg, w.keys.Quit) {
		w.result.Cancelled = true
		return w, tea.Quit
	}

	switch w.step {
	case initStepTemplate:
		return w.updateTemplate(keyMsg)
	case initStepTitle, initStepBaseURL:
		return w.updateTextStep(keyMsg)
	case initStepConfirm:
		return w.updateConfirm(keyMsg)
	}
	return w, nil
}

func (w InitWizard) updateTemplate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Up):
		if w.templateIdx > 0 {
			w.templateIdx--
		}
	case key.Matches(msg, w.keys.Down):
		if w.templateIdx < len(w.templates)-1 {
			w.templateIdx++
		}
	case key.Matches(msg, w.keys.Select):
		w.result.Template = w.templates[w.templateIdx].Name
		w.step = initStepTitle
		cmd := w.title.Focus()
		return w, cmd
	case key.Matches(msg, w.keys.Back), key.Matches(msg, w.keys.QuitList):
		w.result.Cancelled = true
		return w, tea.Quit
	}
	return w, nil
}

func (w InitWizard) updateTextStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Select):
		if w.step == initStepTitle {
			if w.title.Validate() != nil {
				return w, nil
			}
			w.title.Blur()
			w.step = initStepBaseURL
			cmd := w.baseURL.Focus()
			return w, cmd
		}
		if w.baseURL.Validate() != nil {
			return w, nil
		}
		w.baseURL.Blur()
		w.step = initStepConfirm
		return w, nil
	case key.Matches(msg, w.keys.Back):
		if w.step == initStepTitle {
			w.title.Blur()
			w.step = initStepTemplate
			return w, nil
		}
		w.baseURL.Blur()
		w.step = initStepTitle
		cmd := w.title.Focus()
		return w, cmd
	}
	return w.updateInput(msg)
}

func (w InitWizard) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch w.step {
	case initStepTitle:
		w.title, cmd = w.title.Update(msg)
	case initStepBaseURL:
		w.baseURL, cmd = w.baseURL.Update(msg)
	}
	return w, cmd
}

func (w InitWizard) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, w.keys.Select):
		w.result.TargetDir = w.targetDir
		w.result.SiteTitle = w.title.Value()
		w.result.BaseURL = w.baseURL.Value()
		return w, tea.Quit
	case key.Matches(msg, w.keys.Back):
		w.step = initStepBaseURL
		cmd := w.baseURL.Focus()
		return w, cmd
	case key.Matches(msg, w.keys.QuitList):
		w.result.Cancelled = true
		return w, tea.Quit
	}
	return w, nil
}

// View implements tea.Model.
func (w InitWizard) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("blogsmith init - New Site"))
	b.WriteString("\n")

	switch w.step {
	case initStepTemplate:
		b.WriteString(w.viewTemplate())
	case initStepTitle:
		b.WriteString(w.title.View())
		b.WriteString(tui.HelpStyle.Render("\n" + w.keys.InputHelpText()))
	case initStepBaseURL:
		b.WriteString(w.baseURL.View())
		b.WriteString(tui.HelpStyle.Render("\n" + w.keys.InputHelpText()))
	case initStepConfirm:
		b.WriteString(w.viewConfirm())
	}

	return b.String()
}

func (w InitWizard) viewTemplate() string {
	var b strings.Builder

	b.WriteString(tui.SubtitleStyle.Render("Select a template"))
	b.WriteString("\n\n")

	for i, t := range w.templates {
		cursor := "  "
		style := tui.UnselectedStyle
		symbol := tui.SymbolUnselected

		if i == w.templateIdx {
			cursor = ""
			style = tui.SelectedStyle
			symbol = tui.SymbolSelected
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(symbol + " " + t.Name))
		b.WriteString("\n")
		b.WriteString(tui.DescriptionStyle.Render(t.Description))
		b.WriteString("\n")
	}

	b.WriteString(tui.HelpStyle.Render("\n" + w.keys.HelpText()))
	return b.String()
}

func (w InitWizard) viewConfirm() string {
	var b strings.Builder

	b.WriteString(tui.SuccessStyle.Render(tui.SymbolCheck + " Ready to create site"))
	b.WriteString("\n\n")

	absPath, _ := filepath.Abs(w.targetDir)
	fmt.Fprintf(&b, "Directory: %s\n", absPath)
	fmt.Fprintf(&b, "Template:  %s\n", w.result.Template)
	fmt.Fprintf(&b, "Title:     %s\n", w.title.Value())
	if u := w.baseURL.Value(); u != "" {
		fmt.Fprintf(&b, "Base URL:  %s\n", u)
	}

	b.WriteString(tui.HelpStyle.Render("\nenter create site • esc back • q cancel"))
	return b.String()
}

// Result returns the wizard result.
func (w InitWizard) Result() InitResult {
	return w.result
}

// RunInitWizard executes the init wizard.
func RunInitWizard(targetDir string, templates []TemplateInfo) (InitResult, error) {
	if len(templates) == 0 {
		return InitResult{Cancelled: true}, fmt.Errorf("no templates available")
	}

	p := tea.NewProgram(NewInitWizard(targetDir, templates), tea.WithAltScreen())
	model, err := p.Run()
	if err != nil {
		return InitResult{Cancelled: true}, err
	}
	return model.(InitWizard).Result(), nil
}
