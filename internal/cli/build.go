package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kestrel-lab/blogsmith/internal/tui"
)

var buildCmd = &cobra.Command{
	Use:   "build [site_dir]",
	Short: "Render the site into the output directory",
	Long: `Build renders every post, the index, tag pages and the RSS feed, then
replaces the output directory with the result.

The build command:
1. Reads blogsmith.yaml (optional) and applies environment and flag overrides
2. Loads and validates every post; the first bad post aborts the build
3. Renders all pages and the feed in memory
4. Stages the output next to the target directory and swaps it into place

An output directory that blogsmith did not create is never replaced
silently: on a terminal you are asked to type its name, with --force a
countdown runs instead, and non-interactive runs without --force fail.

Arguments:
  site_dir    Directory containing blogsmith.yaml and posts/ (default: .)

Examples:
  # Build the site in the current directory
  blogsmith build

  # Build into a custom directory with a production URL
  blogsmith build ./blog -o /srv/www/blog --base-url https://blog.example.net

  # Preview drafts with layered params
  blogsmith build --drafts --params-file theme.env --param accent=teal`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeSiteDir,
	RunE:              runBuild,
}

var buildFlags siteFlagValues

func init() {
	rootCmd.AddCommand(buildCmd)
	addSiteFlags(buildCmd, &buildFlags)
	buildCmd.Flags().BoolVar(&buildFlags.force, "force", false,
		"Replace an output directory not created by blogsmith after a countdown\n"+
			"Use in CI/CD pipelines where no terminal is attached")
}

func runBuild(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	config, err := resolveBuildConfig(cmd, siteDirArg(args), &buildFlags, verbose)
	if err != nil {
		return err
	}

	generator := newGenerator(selectApprover(config.Force, verbose), newLogger(verbose))

	ctx, cancel := withInterrupt(context.Background(), "build")
	defer cancel()

	report, err := generator.Build(ctx, config)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	fmt.Fprintln(os.Stderr, tui.RenderBuildSummary(report))
	return nil
}
