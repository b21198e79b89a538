package site

import (
	"html/template"
	"time"

	"github.com/kestrel-lab/blogsmith/internal/metadata"
	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

// Page is the data every layout is executed with.
type Page struct {
	Site SiteView

	// Root is the relative prefix from this page back to the site root ("" or "../")
	Root string

	// Posts is set on the index and on tag pages
	Posts []PostView

	// Post is set on post pages
	Post *PostView

	// Tag is set on tag pages
	Tag *TagRef
}

// SiteView exposes site settings to layouts.
type SiteView struct {
	Title       string
	Description string
	BaseURL     string
	Language    string
	Author      string
	Params      map[string]string
}

// PostView is a post as layouts see it. URLs are relative to the page
// being rendered.
type PostView struct {
	Title   string
	Slug    string
	Date    time.Time
	Summary string
	Tags    []TagRef
	URL     string
	HTML    template.HTML
}

// TagRef names a tag and links to its listing page.
type TagRef struct {
	Name string
	Slug string
	URL  string
}

func newSiteView(info blogsmith.SiteInfo) SiteView {
	lang := info.Language
	if lang == "" {
		lang = blogsmith.DefaultLanguage
	}
	params := make(map[string]string, len(info.Params))
	for k, v := range info.Params {
		params[k] = v
	}
	return SiteView{
		Title:       info.Title,
		Description: info.Description,
		BaseURL:     info.BaseURL,
		Language:    lang,
		Author:      info.Author,
		Params:      params,
	}
}

func tagPath(slug string) string {
	return "tags/" + slug + blogsmith.PageExtension
}

func newTagRef(name, root string) TagRef {
	slug := metadata.Slugify(name)
	return TagRef{Name: name, Slug: slug, URL: root + tagPath(slug)}
}

func newPostView(p *blogsmith.Post, root string) PostView {
	tags := make([]TagRef, 0, len(p.Metadata.Tags))
	seen := make(map[string]bool, len(p.Metadata.Tags))
	for _, name := range p.Metadata.Tags {
		ref := newTagRef(name, root)
		if seen[ref.Slug] {
			continue
		}
		seen[ref.Slug] = true
		tags = append(tags, ref)
	}
	return PostView{
		Title:   p.Metadata.Title,
		Slug:    p.Metadata.Slug,
		Date:    p.Metadata.Date,
		Summary: p.Metadata.Summary,
		Tags:    tags,
		URL:     root + p.URLPath(),
		HTML:    p.HTML,
	}
}

func newPostViews(list []*blogsmith.Post, root string) []PostView {
	views := make([]PostView, len(list))
	for i, p := range list {
		views[i] = newPostView(p, root)
	}
	return views
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string { return t.Format("January 2, 2006") },
	"iso":  func(t time.Time) string { return t.Format(blogsmith.DateLayout) },
}
