package site

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"path"
	"sort"

	"github.com/kestrel-lab/blogsmith/internal/files/filesystem"
	"github.com/kestrel-lab/blogsmith/internal/posts"
	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

//go:embed layouts/*.html
var defaultLayouts embed.FS

// Page layouts. Every other layout file is shared by all three.
const (
	IndexLayout = "index.html"
	PostLayout  = "post.html"
	TagLayout   = "tag.html"
)

var pageLayouts = []string{IndexLayout, PostLayout, TagLayout}

// Artifact is one generated output file.
type Artifact struct {
	// Path is relative to the output root, forward-slash separated
	Path    string
	Content []byte
}

// Renderer produces the site's pages and feed.
// A Renderer is safe for concurrent use once constructed.
type Renderer struct {
	site  blogsmith.SiteInfo
	pages map[string]*template.Template
}

// Layout is the source of one template file.
type Layout struct {
	Name   string
	Source string
}

// DefaultLayouts returns the embedded layouts sorted by name.
func DefaultLayouts() []Layout {
	layouts, err := readLayouts(filesystem.NewEmbedFileSystem(defaultLayouts, "layouts"), ".")
	if err != nil {
		panic(fmt.Sprintf("embedded layouts are unreadable: %v", err))
	}
	return layouts
}

// LoadLayouts returns the embedded layouts, each replaced by the file of the
// same name in dir when one exists. Extra *.html files in dir are added.
// A missing or empty dir yields the defaults.
func LoadLayouts(provider filesystem.FileSystemProvider, dir string) ([]Layout, error) {
	layouts := DefaultLayouts()
	if dir == "" || provider == nil || !filesystem.Exists(provider, dir) {
		return layouts, nil
	}

	custom, err := readLayouts(provider, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read layouts from %s: %w", dir, err)
	}

	byName := make(map[string]int, len(layouts))
	for i, l := range layouts {
		byName[l.Name] = i
	}
	for _, l := range custom {
		if i, ok := byName[l.Name]; ok {
			layouts[i] = l
			continue
		}
		layouts = append(layouts, l)
	}

	sort.Slice(layouts, func(i, j int) bool { return layouts[i].Name < layouts[j].Name })
	return layouts, nil
}

// readLayouts lists the *.html files directly inside dir.
func readLayouts(provider filesystem.FileSystemProvider, dir string) ([]Layout, error) {
	d, err := provider.Open(dir)
	if err != nil {
		return nil, err
	}

	var layouts []Layout
	err = d.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return err
		}
		rel := file.RelativePath()
		if rel == "." {
			return nil
		}
		if file.Info().IsDir() {
			return filesystem.SkipDir
		}
		if path.Ext(rel) != ".html" {
			return nil
		}
		content, err := file.ReadContent()
		if err != nil {
			return fmt.Errorf("failed to read layout %s: %w", rel, err)
		}
		layouts = append(layouts, Layout{Name: rel, Source: string(content)})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return layouts, nil
}

// NewRenderer parses layouts into one template set per page kind.
// Parse failures are returned as *blogsmith.RenderError.
func NewRenderer(info blogsmith.SiteInfo, layouts []Layout) (*Renderer, error) {
	sources := make(map[string]string, len(layouts))
	var shared []Layout
	for _, l := range layouts {
		sources[l.Name] = l.Source
		if !isPageLayout(l.Name) {
			shared = append(shared, l)
		}
	}

	pages := make(map[string]*template.Template, len(pageLayouts))
	for _, name := range pageLayouts {
		src, ok := sources[name]
		if !ok {
			return nil, &blogsmith.RenderError{Stage: "template", Template: name, Err: errors.New("layout is missing")}
		}

		// The page source is parsed into the root so ExecuteTemplate(name)
		// runs the page and not an empty placeholder.
		t := template.New(name).Funcs(funcs)
		for _, l := range shared {
			if _, err := t.New(l.Name).Parse(l.Source); err != nil {
				return nil, templateError(err, "")
			}
		}
		if _, err := t.Parse(src); err != nil {
			return nil, templateError(err, "")
		}
		pages[name] = t
	}

	return &Renderer{site: info, pages: pages}, nil
}

func isPageLayout(name string) bool {
	for _, p := range pageLayouts {
		if p == name {
			return true
		}
	}
	return false
}

// Render produces every artifact for c, sorted by path. Nothing is returned
// unless every page and the feed render successfully.
func (r *Renderer) Render(c *posts.Collection) ([]Artifact, error) {
	siteView := newSiteView(r.site)
	list := c.Posts()

	var artifacts []Artifact

	index, err := r.execute(IndexLayout, "", Page{
		Site:  siteView,
		Posts: newPostViews(list, ""),
	})
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, Artifact{Path: IndexLayout, Content: index})

	for _, p := range list {
		view := newPostView(p, "../")
		content, err := r.execute(PostLayout, p.Source, Page{
			Site: siteView,
			Root: "../",
			Post: &view,
		})
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, Artifact{Path: p.URLPath(), Content: content})
	}

	for _, group := range c.Tags() {
		tag := TagRef{Name: group.Name, Slug: group.Slug, URL: tagPath(group.Slug)}
		content, err := r.execute(TagLayout, "", Page{
			Site:  siteView,
			Root:  "../",
			Posts: newPostViews(group.Posts, "../"),
			Tag:   &tag,
		})
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, Artifact{Path: tag.URL, Content: content})
	}

	feed, err := RenderFeed(r.site, c)
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, Artifact{Path: blogsmith.FeedFileName, Content: feed})

	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].Path < artifacts[j].Path })
	return artifacts, nil
}

func (r *Renderer) execute(layout, filePath string, page Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.pages[layout].ExecuteTemplate(&buf, layout, page); err != nil {
		return nil, templateError(err, filePath)
	}
	return buf.Bytes(), nil
}
