package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestrel-lab/blogsmith/internal/tui"
	"github.com/kestrel-lab/blogsmith/internal/ui"
	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

var checkCmd = &cobra.Command{
	Use:   "check [site_dir]",
	Short: "Report how the output directory differs from a fresh build",
	Long: `Check renders the site in memory and compares it with the current output
directory by checksum. Nothing is written.

Every post is loaded and validated exactly as build would, so check also
works as a lint step: parse, validation and duplicate slug errors fail with
the same exit codes as build.

Drift is printed one path per line:
  + path   would be added
  ~ path   would change
  - path   would be removed

Examples:
  # Validate posts and show pending changes
  blogsmith check

  # Fail CI when the committed output is stale
  blogsmith check --strict -o ./docs`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeSiteDir,
	RunE:              runCheck,
}

var (
	checkFlags  siteFlagValues
	checkStrict bool
)

func init() {
	rootCmd.AddCommand(checkCmd)
	addSiteFlags(checkCmd, &checkFlags)
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false,
		"Exit with an error when the output differs from a fresh build")
}

func runCheck(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	config, err := resolveBuildConfig(cmd, siteDirArg(args), &checkFlags, verbose)
	if err != nil {
		return err
	}

	// Check never replaces anything, so no approval can be needed.
	generator := newGenerator(ui.NewDenyingApprover(), newLogger(verbose))

	ctx, cancel := withInterrupt(context.Background(), "check")
	defer cancel()

	drift, err := generator.Check(ctx, config)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.RenderDrift(drift))

	if checkStrict && !drift.Empty() {
		return blogsmith.ErrOutputStale
	}
	return nil
}
