package cli

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kestrel-lab/blogsmith/internal/checksum"
	"github.com/kestrel-lab/blogsmith/internal/config"
	"github.com/kestrel-lab/blogsmith/internal/files/scanner"
	"github.com/kestrel-lab/blogsmith/internal/frontmatter"
	"github.com/kestrel-lab/blogsmith/internal/metadata"
	"github.com/kestrel-lab/blogsmith/internal/scaffold"
)

// completeTemplateNames completes embedded site templates, each with its
// one-line description.
func completeTemplateNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	templates, err := scaffold.ListTemplates()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var matches []string
	for _, name := range templates {
		if !strings.HasPrefix(name, toComplete) {
			continue
		}
		if desc := scaffold.Describe(name); desc != "" {
			name += "\t" + desc
		}
		matches = append(matches, name)
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeSiteDir leaves the single site_dir argument to the shell's
// directory completion.
func completeSiteDir(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// completeTags offers tags already used by the posts of the --site
// directory for `new --tags`. Tags before the last comma are kept as typed
// and are not offered again.
func completeTags(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	typed, partial := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		typed, partial = toComplete[:i+1], toComplete[i+1:]
	}
	used := make(map[string]bool)
	for _, tag := range strings.Split(typed, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			used[metadata.Slugify(tag)] = true
		}
	}

	var matches []string
	for _, tag := range siteTags(newFlags.site) {
		if used[metadata.Slugify(tag)] {
			continue
		}
		if strings.HasPrefix(strings.ToLower(tag), strings.ToLower(partial)) {
			matches = append(matches, typed+tag)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// siteTags lists the distinct tags of every post under site, sorted by
// slug and spelled as first seen. Posts that fail to parse are skipped so
// a half-written draft does not break completion.
func siteTags(site string) []string {
	projectCfg, _, err := config.LoadOrDefault(site)
	if err != nil {
		return nil
	}
	result, err := scanner.NewScanner(checksum.New()).ScanPosts(config.Resolve(site, projectCfg.Paths.Posts))
	if err != nil {
		return nil
	}

	spelling := make(map[string]string)
	for _, file := range result.Files {
		raw, _, err := frontmatter.Split(file.Content, file.Path)
		if err != nil {
			continue
		}
		list, _ := raw["tags"].([]any)
		for _, v := range list {
			name, ok := v.(string)
			if !ok || strings.TrimSpace(name) == "" {
				continue
			}
			slug := metadata.Slugify(name)
			if _, seen := spelling[slug]; !seen {
				spelling[slug] = name
			}
		}
	}

	slugs := make([]string, 0, len(spelling))
	for slug := range spelling {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	tags := make([]string, len(slugs))
	for i, slug := range slugs {
		tags[i] = spelling[slug]
	}
	return tags
}
