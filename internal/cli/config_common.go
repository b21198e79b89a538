package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kestrel-lab/blogsmith/internal/checksum"
	"github.com/kestrel-lab/blogsmith/internal/config"
	"github.com/kestrel-lab/blogsmith/internal/files/filesystem"
	"github.com/kestrel-lab/blogsmith/internal/files/scanner"
	"github.com/kestrel-lab/blogsmith/internal/logging"
	"github.com/kestrel-lab/blogsmith/internal/params"
	"github.com/kestrel-lab/blogsmith/internal/services"
	"github.com/kestrel-lab/blogsmith/internal/tui"
	"github.com/kestrel-lab/blogsmith/internal/ui"
	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

// siteFlagValues holds the flags shared by build, check and watch.
type siteFlagValues struct {
	output      string
	baseURL     string
	drafts      bool
	force       bool
	params      []string
	paramsFiles []string
	timeout     time.Duration
}

// addSiteFlags registers the shared flags on cmd.
func addSiteFlags(cmd *cobra.Command, flags *siteFlagValues) {
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output directory, relative to the working directory\n"+
			"Precedence: --output > $"+config.EnvOutput+" > paths.output in blogsmith.yaml > public")
	cmd.Flags().StringVar(&flags.baseURL, "base-url", "",
		"Absolute site URL used in the feed, e.g. https://blog.example.net\n"+
			"Precedence: --base-url > $"+config.EnvBaseURL+" > site.base_url")
	cmd.Flags().BoolVar(&flags.drafts, "drafts", false,
		"Include posts marked draft: true (overrides drafts in blogsmith.yaml)")
	cmd.Flags().StringSliceVar(&flags.params, "param", nil,
		"Template params as key=value pairs (can be specified multiple times)\n"+
			"Available in layouts as {{.Site.Params.key}}")
	cmd.Flags().StringSliceVar(&flags.paramsFiles, "params-file", nil,
		"Load template params from .env files (can be specified multiple times)\n"+
			"Later files override earlier ones, --param overrides all")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 2*time.Minute,
		"Abort the build after this long (overrides timeout in blogsmith.yaml)")
}

// resolveBuildConfig merges blogsmith.yaml, the environment and flags into
// a BuildConfig. Precedence is flag > environment > file > default.
func resolveBuildConfig(cmd *cobra.Command, sourcePath string, flags *siteFlagValues, verbose bool) (blogsmith.BuildConfig, error) {
	_ = godotenv.Load()

	info, err := os.Stat(sourcePath)
	if err != nil || !info.IsDir() {
		return blogsmith.BuildConfig{}, fmt.Errorf("site directory %s not found: %w", sourcePath, blogsmith.ErrInvalidConfig)
	}

	projectCfg, found, err := config.LoadOrDefault(sourcePath)
	if err != nil {
		return blogsmith.BuildConfig{}, fmt.Errorf("failed to load %s: %w", blogsmith.ConfigFileName, err)
	}
	if !found && verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] No %s in %s, using defaults\n", blogsmith.ConfigFileName, sourcePath)
	}
	projectCfg.ApplyEnv(os.Getenv)

	outputPath := config.Resolve(sourcePath, projectCfg.Paths.Output)
	if flags.output != "" {
		outputPath = flags.output
	}

	site := projectCfg.SiteInfo()
	if flags.baseURL != "" {
		site.BaseURL = flags.baseURL
	}
	if site.Title == "" {
		site.Title = siteTitleFromPath(sourcePath)
	}

	fileParams, err := loadParamsFromFiles(flags.paramsFiles, verbose)
	if err != nil {
		return blogsmith.BuildConfig{}, err
	}
	cliParams, err := params.ParseKeyValuePairs(flags.params)
	if err != nil {
		return blogsmith.BuildConfig{}, fmt.Errorf("invalid parameter format: %v: %w", err, blogsmith.ErrInvalidConfig)
	}
	site.Params = params.Merge(site.Params, fileParams, cliParams)

	drafts := projectCfg.Drafts
	if cmd.Flags().Changed("drafts") {
		drafts = flags.drafts
	}

	timeout := flags.timeout
	if !cmd.Flags().Changed("timeout") && projectCfg.Timeout != "" {
		timeout, err = projectCfg.TimeoutDuration()
		if err != nil {
			return blogsmith.BuildConfig{}, fmt.Errorf("%s: %w", blogsmith.ConfigFileName, err)
		}
	}

	cfg := blogsmith.BuildConfig{
		SourcePath:    sourcePath,
		PostsPath:     config.Resolve(sourcePath, projectCfg.Paths.Posts),
		OutputPath:    outputPath,
		LayoutsPath:   config.Resolve(sourcePath, projectCfg.Paths.Layouts),
		StaticPath:    config.Resolve(sourcePath, projectCfg.Paths.Static),
		Site:          site,
		IncludeDrafts: drafts,
		UnsafeHTML:    projectCfg.UnsafeHTML(),
		HardWraps:     projectCfg.Markdown.HardWraps,
		Force:         flags.force,
		Timeout:       timeout,
		Verbose:       verbose,
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Site resolved:\n")
		fmt.Fprintf(os.Stderr, "  Posts: %s\n", cfg.PostsPath)
		fmt.Fprintf(os.Stderr, "  Layouts: %s\n", cfg.LayoutsPath)
		fmt.Fprintf(os.Stderr, "  Static: %s\n", cfg.StaticPath)
		fmt.Fprintf(os.Stderr, "  Output: %s\n", cfg.OutputPath)
		fmt.Fprintf(os.Stderr, "  Base URL: %s\n", cfg.Site.BaseURL)
		fmt.Fprintf(os.Stderr, "  Drafts: %t\n", cfg.IncludeDrafts)
		fmt.Fprintf(os.Stderr, "  Params: %d\n", len(cfg.Site.Params))
	}

	return cfg, nil
}

func siteTitleFromPath(sourcePath string) string {
	abs, err := filepath.Abs(sourcePath)
	if err != nil {
		return filepath.Base(sourcePath)
	}
	return filepath.Base(abs)
}

// loadParamsFromFiles loads params from .env files. Later files override earlier ones.
func loadParamsFromFiles(paramsFiles []string, verbose bool) (map[string]string, error) {
	layers := make([]map[string]string, 0, len(paramsFiles))

	for _, paramsFile := range paramsFiles {
		if verbose {
			fmt.Fprintf(os.Stderr, "[VERBOSE] Loading params from file: %s\n", paramsFile)
		}

		fileParams, err := params.LoadParamsFile(paramsFile)
		if err != nil {
			return nil, fmt.Errorf("%v\n\nTip: Verify the path and the KEY=VALUE format, or use --param key=value: %w", err, blogsmith.ErrInvalidConfig)
		}
		layers = append(layers, fileParams)
	}

	return params.Merge(layers...), nil
}

// selectApprover picks how an unmanaged output directory is confirmed:
// a countdown with --force, a typed prompt on a terminal, otherwise refusal.
func selectApprover(force, verbose bool) blogsmith.Approver {
	switch {
	case force:
		return ui.NewForcedApprover(verbose)
	case tui.IsInteractive():
		return ui.NewInteractiveApprover(verbose)
	default:
		return ui.NewDenyingApprover()
	}
}

// newGenerator wires a GeneratorService for the OS filesystem.
func newGenerator(approver blogsmith.Approver, logger blogsmith.Logger) *services.GeneratorService {
	return services.NewGeneratorService(
		scanner.NewScanner(checksum.New()),
		filesystem.NewOSFileSystem(),
		approver,
		logger,
	)
}

// withInterrupt cancels the returned context on Ctrl+C or SIGTERM.
func withInterrupt(parent context.Context, what string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintf(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling %s...\n", what)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

func newLogger(verbose bool) blogsmith.Logger {
	return logging.NewConsoleLogger(verbose)
}
