package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

const asciiLogo = `   __    __                       _ __  __
  / /_  / /___  ____ __________ _(_) /_/ /_
 / __ \/ / __ \/ __ '/ ___/ __ '__ \/ / __/ __ \
/ /_/ / / /_/ / /_/ (__  ) / / / / / / /_/ / / /
\_.__/_/\____/\__, /____/_/ /_/ /_/_/\__/_/ /_/
             /____/`

var rootCmd = &cobra.Command{
	Use:   "blogsmith",
	Short: "Static blog generator",
	Long: asciiLogo + `

blogsmith turns a directory of markdown posts with YAML frontmatter into a
static blog: an index page, one page per post, tag pages and an RSS feed.

Every build renders the whole site in memory first. The output directory is
only replaced once everything has rendered, so a broken post never leaves
a half-written site behind.

Exit Codes:
  0  - Success
  1  - General error (including check --strict finding drift)
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  12 - User denied replacing the output directory
  20 - Frontmatter could not be parsed
  21 - Frontmatter failed validation
  22 - Two posts share a slug
  23 - Rendering failed or output paths collide
  24 - Output could not be written`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for blogsmith")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag reads --verbose from the command or any parent. The flag is
// inherited from rootCmd, so it is found even before cobra has merged the
// persistent flags into cmd.Flags(). A command outside the tree is quiet.
func getVerboseFlag(cmd *cobra.Command) bool {
	flag := cmd.Flag("verbose")
	if flag == nil {
		return false
	}
	verbose, err := strconv.ParseBool(flag.Value.String())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
