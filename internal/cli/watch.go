package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/kestrel-lab/blogsmith/internal/tui"
	"github.com/kestrel-lab/blogsmith/internal/watch"
	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

var watchCmd = &cobra.Command{
	Use:   "watch [site_dir]",
	Short: "Build, then rebuild whenever sources change",
	Long: `Watch builds the site once and then rebuilds whenever a post, layout,
static file or blogsmith.yaml changes. Bursts of changes are debounced
into a single rebuild.

A failed rebuild is reported and the previous output stays in place;
watching continues until interrupted.

Flags are resolved once at startup. Changes to blogsmith.yaml are picked
up on the next rebuild.

Examples:
  blogsmith watch
  blogsmith watch ./blog --drafts --debounce 500ms`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeSiteDir,
	RunE:              runWatch,
}

var (
	watchFlags    siteFlagValues
	watchDebounce time.Duration
)

func init() {
	rootCmd.AddCommand(watchCmd)
	addSiteFlags(watchCmd, &watchFlags)
	watchCmd.Flags().BoolVar(&watchFlags.force, "force", false,
		"Replace an output directory not created by blogsmith after a countdown")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", blogsmith.DefaultWatchDebounce,
		"Quiet period before a rebuild starts")
}

func runWatch(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	sourcePath := siteDirArg(args)

	config, err := resolveBuildConfig(cmd, sourcePath, &watchFlags, verbose)
	if err != nil {
		return err
	}

	logger := newLogger(verbose)
	generator := newGenerator(selectApprover(config.Force, verbose), logger)

	w, err := watch.New(watch.Options{
		Dirs:     []string{config.PostsPath, config.LayoutsPath, config.StaticPath},
		Files:    []string{filepath.Join(sourcePath, blogsmith.ConfigFileName)},
		Debounce: watchDebounce,
	}, logger)
	if err != nil {
		return err
	}

	ctx, cancel := withInterrupt(context.Background(), "watch")
	defer cancel()

	rebuild := func(ctx context.Context, _ []string) error {
		current, err := resolveBuildConfig(cmd, sourcePath, &watchFlags, verbose)
		if err != nil {
			return err
		}
		report, err := generator.Build(ctx, current)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, tui.RenderBuildSummary(report))
		return nil
	}

	if err := rebuild(ctx, nil); err != nil {
		logger.Error("Initial build failed: %v", err)
	}

	logger.Info("Watching %s for changes (Ctrl+C to stop)", sourcePath)
	return w.Run(ctx, rebuild)
}
