package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kestrel-lab/blogsmith/internal/scaffold"
	"github.com/kestrel-lab/blogsmith/internal/tui"
	"github.com/kestrel-lab/blogsmith/internal/tui/wizards"
	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

var initCmd = &cobra.Command{
	Use:   "init <target_path>",
	Short: "Initialize a new blog",
	Long: `Initialize a blog into the specified directory.

The init command creates:
- blogsmith.yaml with the site title and base URL
- posts/ with a sample post dated today
- static/ with assets copied verbatim into the output

Target directory must be empty or non-existent.

On a terminal, init without --template starts a short wizard asking for the
template, site title and base URL. Flags skip the wizard.

Examples:
  blogsmith init ./blog                              # Interactive wizard
  blogsmith init ./blog --template themed --title "Homelab Notes"
  blogsmith init . --base-url https://blog.example.net

Available templates:
  basic    - Default layouts, one sample post and a robots.txt
  themed   - Custom base layout, stylesheet and template params

Use 'blogsmith templates list' to see all available templates.`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeSiteDir,
	RunE:              runInit,
}

var (
	initTemplate string
	initTitle    string
	initBaseURL  string
	initList     bool
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initTemplate, "template", "t", "basic", "Template to use (basic, themed)")
	initCmd.Flags().StringVar(&initTitle, "title", "", "Site title (default: the directory name)")
	initCmd.Flags().StringVar(&initBaseURL, "base-url", "", "Absolute site URL, e.g. https://blog.example.net")
	initCmd.Flags().BoolVar(&initList, "list", false, "List available templates")

	_ = initCmd.RegisterFlagCompletionFunc("template", completeTemplateNames)
}

func runInit(cmd *cobra.Command, args []string) error {
	if initList {
		return runTemplatesList(cmd, args)
	}

	if len(args) == 0 {
		return fmt.Errorf("missing required argument: <target_path>\n\nUsage: blogsmith init <target_path> [flags]\n\nExamples:\n  blogsmith init .       # Current directory\n  blogsmith init ./blog  # Subdirectory\n\nUse 'blogsmith init --list' to see available templates")
	}

	opts := scaffold.SiteOptions{
		Template:   initTemplate,
		TargetPath: args[0],
		SiteTitle:  initTitle,
		BaseURL:    initBaseURL,
	}

	if shouldRunInitWizard(cmd) {
		result, err := wizards.RunInitWizard(opts.TargetPath, templateInfos())
		if err != nil {
			return fmt.Errorf("init wizard failed: %w", err)
		}
		if result.Cancelled {
			fmt.Fprintln(os.Stderr, "Cancelled.")
			return nil
		}
		opts.Template = result.Template
		opts.SiteTitle = result.SiteTitle
		opts.BaseURL = result.BaseURL
	}

	if !scaffold.IsValidTemplate(opts.Template) {
		templates, _ := scaffold.ListTemplates()
		return fmt.Errorf("invalid template '%s'. Available templates: %v\n\nUse 'blogsmith templates list' for detailed descriptions: %w",
			opts.Template, templates, blogsmith.ErrInvalidConfig)
	}
	if err := wizards.ValidateBaseURL(opts.BaseURL); err != nil {
		return fmt.Errorf("invalid --base-url: %v: %w", err, blogsmith.ErrInvalidConfig)
	}
	if opts.SiteTitle == "" {
		opts.SiteTitle = siteTitleFromPath(opts.TargetPath)
	}

	scaffolder := scaffold.NewScaffolder(newLogger(getVerboseFlag(cmd)))
	if _, err := scaffolder.CreateSite(opts); err != nil {
		return fmt.Errorf("failed to create site: %w", err)
	}

	tree, err := scaffold.BuildFileTree(opts.TargetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\n✓ Site initialized in '%s' using template '%s'\n\n", opts.TargetPath, opts.Template)
	} else {
		fmt.Fprintf(os.Stderr, "\n✓ Site initialized using template '%s'\n\n", opts.Template)
		fmt.Fprintln(os.Stderr, "Created structure:")
		fmt.Fprint(os.Stderr, tree)
	}

	fmt.Fprintln(os.Stderr, "\nNext steps:")
	if filepath.Clean(opts.TargetPath) != "." {
		fmt.Fprintf(os.Stderr, "  cd %s\n", opts.TargetPath)
	}
	fmt.Fprintln(os.Stderr, "  blogsmith new \"My first post\"")
	fmt.Fprintln(os.Stderr, "  blogsmith watch")

	return nil
}

// shouldRunInitWizard is true on a terminal when no site flag was given.
func shouldRunInitWizard(cmd *cobra.Command) bool {
	for _, name := range []string{"template", "title", "base-url"} {
		if cmd.Flags().Changed(name) {
			return false
		}
	}
	return tui.IsInteractive()
}

func templateInfos() []wizards.TemplateInfo {
	names, err := scaffold.ListTemplates()
	if err != nil {
		return nil
	}
	infos := make([]wizards.TemplateInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, wizards.TemplateInfo{Name: name, Description: scaffold.Describe(name)})
	}
	return infos
}
