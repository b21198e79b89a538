package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
	"gopkg.in/yaml.v3"
)

//go:embed all:templates
var templatesFS embed.FS

// GetTemplatesFS returns the embedded templates filesystem for testing purposes.
func GetTemplatesFS() embed.FS {
	return templatesFS
}

var descriptions = map[string]string{
	"basic":  "Default layouts, one sample post and a robots.txt",
	"themed": "Custom base layout, stylesheet and template params",
}

// Describe returns a one-line description of a template.
func Describe(name string) string {
	return descriptions[name]
}

// SiteOptions controls CreateSite.
type SiteOptions struct {
	Template   string
	TargetPath string
	SiteTitle  string
	BaseURL    string

	// Date stamps the sample posts; the zero value means today
	Date time.Time
}

// Scaffolder creates new sites and posts.
type Scaffolder struct {
	logger blogsmith.Logger
}

// NewScaffolder creates a new Scaffolder. Panics if logger is nil.
func NewScaffolder(logger blogsmith.Logger) *Scaffolder {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Scaffolder{logger: logger}
}

// CreateSite copies a template into an empty or missing directory and
// returns the created files, sorted.
func (s *Scaffolder) CreateSite(opts SiteOptions) ([]string, error) {
	templatePath := "templates/" + opts.Template
	if _, err := templatesFS.ReadDir(templatePath); err != nil {
		return nil, fmt.Errorf("template '%s' not found: %w", opts.Template, err)
	}

	isEmpty, err := isDirectoryEmpty(opts.TargetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to check target directory: %w", err)
	}
	if !isEmpty {
		return nil, fmt.Errorf("target directory '%s' is not empty\n\nblogsmith init requires an empty directory to avoid overwriting existing files.\n\nOptions:\n• Choose a different location\n• Remove existing files manually\n• Use a new directory name", opts.TargetPath)
	}

	if err := os.MkdirAll(opts.TargetPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create site directory: %w", err)
	}

	vars, err := templateVars(opts)
	if err != nil {
		return nil, err
	}

	s.logger.Verbose("Creating site at %s with template '%s'", opts.TargetPath, opts.Template)

	var created []string
	err = fs.WalkDir(templatesFS, templatePath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == templatePath {
			return nil
		}

		relPath := strings.TrimPrefix(p, templatePath+"/")
		target := filepath.Join(opts.TargetPath, filepath.FromSlash(relPath))

		if d.IsDir() {
			s.logger.Verbose("Creating directory: %s", relPath)
			return os.MkdirAll(target, 0755)
		}

		content, err := templatesFS.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", p, err)
		}

		if isTextFile(relPath) {
			content = []byte(vars.Replace(string(content)))
		}

		s.logger.Verbose("Creating file: %s", relPath)
		if err := os.WriteFile(target, content, 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", target, err)
		}
		created = append(created, target)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to copy template files: %w", err)
	}

	return created, nil
}

// templateVars builds the placeholder replacer. Values land in YAML, so
// they are encoded as YAML scalars.
func templateVars(opts SiteOptions) (*strings.Replacer, error) {
	title := opts.SiteTitle
	if strings.TrimSpace(title) == "" {
		title = filepath.Base(opts.TargetPath)
	}

	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}

	titleScalar, err := yamlScalar(title)
	if err != nil {
		return nil, err
	}
	baseURLScalar, err := yamlScalar(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	return strings.NewReplacer(
		"{{SITE_TITLE}}", titleScalar,
		"{{BASE_URL}}", baseURLScalar,
		"{{DATE}}", date.Format(blogsmith.DateLayout),
	), nil
}

func yamlScalar(v string) (string, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode %q: %w", v, err)
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}

func isTextFile(name string) bool {
	switch path.Ext(name) {
	case ".yaml", ".yml", ".md", ".markdown":
		return true
	}
	return false
}

// ListTemplates returns available template names
func ListTemplates() ([]string, error) {
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return nil, err
	}

	var templates []string
	for _, entry := range entries {
		if entry.IsDir() {
			templates = append(templates, entry.Name())
		}
	}

	return templates, nil
}

// isDirectoryEmpty checks if a directory is empty or doesn't exist.
// Returns (true, nil) if directory doesn't exist or is empty.
// Returns (false, nil) if directory exists and contains files/subdirectories.
// Returns (false, error) if there's an error checking the directory.
func isDirectoryEmpty(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check directory: %w", err)
	}

	if !info.IsDir() {
		return false, fmt.Errorf("path exists but is not a directory")
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return false, fmt.Errorf("failed to read directory: %w", err)
	}

	return len(entries) == 0, nil
}

// BuildFileTree creates a visual tree representation of the directory structure.
func BuildFileTree(rootPath string) (string, error) {
	var sb strings.Builder

	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		absPath = rootPath
	}
	sb.WriteString(absPath + "/\n")

	if err := writeTree(&sb, os.DirFS(rootPath), ".", ""); err != nil {
		return "", fmt.Errorf("failed to build file tree: %w", err)
	}
	return sb.String(), nil
}

// TemplateTree renders the file layout of an embedded template.
func TemplateTree(name string) (string, error) {
	sub, err := fs.Sub(templatesFS, "templates/"+name)
	if err != nil {
		return "", err
	}
	if _, err := fs.Stat(sub, "."); err != nil {
		return "", fmt.Errorf("template '%s' not found: %w", name, err)
	}

	var sb strings.Builder
	if err := writeTree(&sb, sub, ".", ""); err != nil {
		return "", fmt.Errorf("failed to build template tree: %w", err)
	}
	return sb.String(), nil
}

func writeTree(sb *strings.Builder, fsys fs.FS, dir, prefix string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}

	for i, entry := range entries {
		last := i == len(entries)-1
		branch, nextPrefix := "├── ", prefix+"│   "
		if last {
			branch, nextPrefix = "└── ", prefix+"    "
		}

		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		sb.WriteString(prefix + branch + name + "\n")

		if entry.IsDir() {
			if err := writeTree(sb, fsys, path.Join(dir, entry.Name()), nextPrefix); err != nil {
				return err
			}
		}
	}
	return nil
}

// IsValidTemplate reports whether name is an embedded template.
func IsValidTemplate(name string) bool {
	templates, err := ListTemplates()
	if err != nil {
		return false
	}
	for _, t := range templates {
		if t == name {
			return true
		}
	}
	return false
}
