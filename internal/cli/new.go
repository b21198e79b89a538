package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kestrel-lab/blogsmith/internal/checksum"
	"github.com/kestrel-lab/blogsmith/internal/config"
	"github.com/kestrel-lab/blogsmith/internal/files/scanner"
	"github.com/kestrel-lab/blogsmith/internal/metadata"
	"github.com/kestrel-lab/blogsmith/internal/scaffold"
	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create a post with a frontmatter skeleton",
	Long: `New writes <posts>/<slug>.md with title, date, tags, summary and slug
already filled in. The slug is derived from the title unless --slug is given.

New refuses to overwrite an existing file or to reuse a slug that any
existing post, draft or not, already declares.

Examples:
  blogsmith new "Rebuilding the home lab"
  blogsmith new "Notes on fsnotify" --tags go,tooling --summary "Watching files portably" --draft
  blogsmith new "Backdated" --date 2024-12-31 --site ./blog`,
	Args: RequirePostTitle,
	RunE: runNew,
}

type newFlagValues struct {
	site    string
	slug    string
	tags    []string
	summary string
	date    string
	draft   bool
}

var newFlags newFlagValues

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().StringVarP(&newFlags.site, "site", "s", ".", "Site directory containing blogsmith.yaml")
	newCmd.Flags().StringVar(&newFlags.slug, "slug", "", "URL slug (default: derived from the title)")
	newCmd.Flags().StringSliceVar(&newFlags.tags, "tags", nil, "Comma-separated tags")
	newCmd.Flags().StringVar(&newFlags.summary, "summary", "", "One-line summary (default: the title)")
	newCmd.Flags().StringVar(&newFlags.date, "date", "", "Publication date as YYYY-MM-DD (default: today)")
	newCmd.Flags().BoolVar(&newFlags.draft, "draft", false, "Mark the post as a draft")

	_ = newCmd.RegisterFlagCompletionFunc("tags", completeTags)
	_ = newCmd.MarkFlagDirname("site")
}

func runNew(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	projectCfg, _, err := config.LoadOrDefault(newFlags.site)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", blogsmith.ConfigFileName, err)
	}
	postsDir := config.Resolve(newFlags.site, projectCfg.Paths.Posts)

	var date time.Time
	if newFlags.date != "" {
		date, err = metadata.ParseDate(newFlags.date)
		if err != nil {
			return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD: %w", newFlags.date, blogsmith.ErrInvalidConfig)
		}
	}

	scaffolder := scaffold.NewScaffolder(newLogger(verbose))
	path, err := scaffolder.NewPost(scanner.NewScanner(checksum.New()), postsDir, scaffold.PostOptions{
		Title:   args[0],
		Slug:    newFlags.slug,
		Tags:    newFlags.tags,
		Summary: newFlags.summary,
		Date:    date,
		Draft:   newFlags.draft,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), path)
	fmt.Fprintf(os.Stderr, "✓ Created %s\n", path)
	return nil
}
