package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequirePostTitle validates that exactly one title argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequirePostTitle(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <title>

Usage: %s

Example:
  %s "Rebuilding the home lab" --tags homelab,networking`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d\n\nQuote titles that contain spaces", len(args))
	}
	return nil
}

// RequireTemplateName validates that exactly one template_name argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireTemplateName(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <template_name>

Usage: %s

Example:
  %s basic

Use 'blogsmith templates list' to see available templates.`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}

// siteDirArg returns the optional [site_dir] argument, defaulting to ".".
func siteDirArg(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return "."
}
