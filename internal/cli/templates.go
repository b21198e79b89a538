package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kestrel-lab/blogsmith/internal/scaffold"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage site templates",
	Long: `List and describe the site templates available to blogsmith init.

Templates are compiled into the binary; each is a complete site that builds
as soon as it is created.`,
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available templates",
	Long:  `List all available site templates with descriptions.`,
	RunE:  runTemplatesList,
}

var templatesDescribeCmd = &cobra.Command{
	Use:               "describe <template_name>",
	Short:             "Show the files a template creates",
	Long:              `Show the description and file layout of a site template.`,
	Args:              RequireTemplateName,
	ValidArgsFunction: completeTemplateNames,
	RunE:              runTemplatesDescribe,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesDescribeCmd)
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	templates, err := scaffold.ListTemplates()
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	fmt.Fprintln(os.Stderr, "Available templates:")
	fmt.Fprintln(os.Stderr)

	for _, t := range templates {
		desc := scaffold.Describe(t)
		if desc == "" {
			desc = "No description available"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %-12s %s\n", t, desc)
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Use: blogsmith init <target_path> --template <template_name>")
	return nil
}

func runTemplatesDescribe(cmd *cobra.Command, args []string) error {
	templateName := args[0]

	if !scaffold.IsValidTemplate(templateName) {
		templates, _ := scaffold.ListTemplates()
		return fmt.Errorf("template '%s' not found. Available templates: %v\n\nUse 'blogsmith templates list' to see all templates", templateName, templates)
	}

	tree, err := scaffold.TemplateTree(templateName)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Template: %s\n", templateName)
	fmt.Fprintf(out, "Description: %s\n", scaffold.Describe(templateName))
	fmt.Fprintln(out, "\nStructure:")
	fmt.Fprint(out, tree)
	fmt.Fprintf(out, "\nUsage:\n  blogsmith init ./blog --template %s\n", templateName)

	return nil
}
