package site

import (
	"bytes"
	"errors"
	"html/template"
	"strings"
	"testing"
	texttemplate "text/template"
	"time"

	"github.com/kestrel-lab/blogsmith/internal/files/filesystem"
	"github.com/kestrel-lab/blogsmith/internal/posts"
	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPost(slug, title, date string, tags ...string) *blogsmith.Post {
	d, _ := time.Parse(blogsmith.DateLayout, date)
	if tags == nil {
		tags = []string{}
	}
	return &blogsmith.Post{
		Metadata: blogsmith.PostMetadata{
			Title:   title,
			Date:    d,
			Tags:    tags,
			Summary: "Summary of " + title,
			Slug:    slug,
		},
		Source: slug + ".md",
		HTML:   template.HTML("<p>Body of " + slug + "</p>\n"),
	}
}

func testInfo() blogsmith.SiteInfo {
	return blogsmith.SiteInfo{
		Title:       "Homelab Notes",
		Description: "Things I broke",
		BaseURL:     "https://blog.example.net",
		Author:      "Sam",
		Params:      map[string]string{"accent": "teal"},
	}
}

func testCollection() *posts.Collection {
	return posts.NewCollection([]*blogsmith.Post{
		testPost("a", "Post A", "2025-05-01", "Home Lab", "go"),
		testPost("b", "Post B", "2025-05-11", "home-lab"),
	})
}

func newDefaultRenderer(t *testing.T, info blogsmith.SiteInfo) *Renderer {
	t.Helper()
	r, err := NewRenderer(info, DefaultLayouts())
	require.NoError(t, err)
	return r
}

func artifactMap(artifacts []Artifact) map[string]string {
	m := make(map[string]string, len(artifacts))
	for _, a := range artifacts {
		m[a.Path] = string(a.Content)
	}
	return m
}

func TestRender_Artifacts(t *testing.T) {
	artifacts, err := newDefaultRenderer(t, testInfo()).Render(testCollection())
	require.NoError(t, err)

	var paths []string
	for _, a := range artifacts {
		paths = append(paths, a.Path)
	}
	assert.Equal(t, []string{
		"index.html",
		"posts/a.html",
		"posts/b.html",
		"rss.xml",
		"tags/go.html",
		"tags/home-lab.html",
	}, paths)
}

func TestNewRenderer_PageTemplatesExecute(t *testing.T) {
	r := newDefaultRenderer(t, testInfo())
	view := newPostView(testPost("a", "Post A", "2025-05-01", "go"), "../")
	pages := map[string]Page{
		IndexLayout: {Site: newSiteView(testInfo())},
		PostLayout:  {Site: newSiteView(testInfo()), Root: "../", Post: &view},
		TagLayout:   {Site: newSiteView(testInfo()), Root: "../", Tag: &TagRef{Name: "go", Slug: "go", URL: "tags/go.html"}},
	}

	for _, name := range pageLayouts {
		t.Run(name, func(t *testing.T) {
			out, err := r.execute(name, "", pages[name])
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("<!DOCTYPE html>")), "%s starts with the base layout", name)
			assert.Contains(t, string(out), "</html>")
		})
	}
}

func TestRender_IndexOrderNewestFirst(t *testing.T) {
	artifacts, err := newDefaultRenderer(t, testInfo()).Render(testCollection())
	require.NoError(t, err)
	index := artifactMap(artifacts)["index.html"]

	posA := strings.Index(index, `href="posts/a.html"`)
	posB := strings.Index(index, `href="posts/b.html"`)
	require.NotEqual(t, -1, posA)
	require.NotEqual(t, -1, posB)
	assert.Less(t, posB, posA, "b (2025-05-11) must precede a (2025-05-01)")

	assert.Contains(t, index, "Summary of Post A")
	assert.Contains(t, index, `<time datetime="2025-05-11">May 11, 2025</time>`)
	assert.Contains(t, index, `<a href="tags/home-lab.html">Home Lab</a>`)
	assert.Contains(t, index, `<html lang="en">`)
}

func TestRender_PostPage(t *testing.T) {
	artifacts, err := newDefaultRenderer(t, testInfo()).Render(testCollection())
	require.NoError(t, err)
	page := artifactMap(artifacts)["posts/a.html"]

	assert.Contains(t, page, "<title>Post A · Homelab Notes</title>")
	assert.Contains(t, page, "<h1>Post A</h1>")
	assert.Contains(t, page, "<p>Body of a</p>")
	assert.Contains(t, page, `<a href="../tags/go.html">go</a>`)
	assert.Contains(t, page, `href="../index.html"`)
	assert.Equal(t, 1, strings.Count(page, "<p>Body of a</p>"))
}

func TestRender_TagPage(t *testing.T) {
	artifacts, err := newDefaultRenderer(t, testInfo()).Render(testCollection())
	require.NoError(t, err)
	page := artifactMap(artifacts)["tags/home-lab.html"]

	assert.Contains(t, page, "Posts tagged “home-lab”", "named after the newest post's spelling")
	posA := strings.Index(page, `href="../posts/a.html"`)
	posB := strings.Index(page, `href="../posts/b.html"`)
	require.NotEqual(t, -1, posA)
	assert.Less(t, posB, posA)
}

func TestRender_EscapesMetadata(t *testing.T) {
	p := testPost("x", `<script>alert(1)</script>`, "2025-01-01")
	artifacts, err := newDefaultRenderer(t, testInfo()).Render(posts.NewCollection([]*blogsmith.Post{p}))
	require.NoError(t, err)

	index := artifactMap(artifacts)["index.html"]
	assert.NotContains(t, index, "<script>alert(1)</script>")
	assert.Contains(t, index, "&lt;script&gt;")
}

func TestRender_Deterministic(t *testing.T) {
	r := newDefaultRenderer(t, testInfo())

	first, err := r.Render(testCollection())
	require.NoError(t, err)
	second, err := r.Render(testCollection())
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Path, second[i].Path)
		assert.True(t, bytes.Equal(first[i].Content, second[i].Content), "artifact %s differs", first[i].Path)
	}
}

func TestRender_EmptyCollection(t *testing.T) {
	artifacts, err := newDefaultRenderer(t, testInfo()).Render(posts.NewCollection(nil))
	require.NoError(t, err)

	m := artifactMap(artifacts)
	require.Len(t, m, 2)
	assert.Contains(t, m["index.html"], "No posts yet.")
	assert.NotContains(t, m["rss.xml"], "<pubDate>")
}

func TestLoadLayouts_Overrides(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/site")
	mfs.AddFile("layouts/index.html", `{{template "base" .}}{{define "content"}}<p>accent={{index .Site.Params "accent"}}</p>{{template "footer-note"}}{{end}}`)
	mfs.AddFile("layouts/extra.html", `{{define "footer-note"}}<small>custom</small>{{end}}`)
	mfs.AddFile("layouts/notes.txt", "ignored")
	mfs.AddFile("layouts/nested/post.html", "ignored too")

	layouts, err := LoadLayouts(mfs, "layouts")
	require.NoError(t, err)

	var names []string
	for _, l := range layouts {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"base.html", "extra.html", "index.html", "partials.html", "post.html", "tag.html"}, names)

	r, err := NewRenderer(testInfo(), layouts)
	require.NoError(t, err)
	artifacts, err := r.Render(testCollection())
	require.NoError(t, err)

	m := artifactMap(artifacts)
	assert.Contains(t, m["index.html"], "<p>accent=teal</p><small>custom</small>")
	assert.Contains(t, m["posts/a.html"], "<h1>Post A</h1>", "post layout keeps the default")
}

func TestLoadLayouts_MissingDirUsesDefaults(t *testing.T) {
	layouts, err := LoadLayouts(filesystem.NewMemoryFileSystem("/site"), "layouts")
	require.NoError(t, err)
	assert.Equal(t, DefaultLayouts(), layouts)
}

func TestNewRenderer_ParseError(t *testing.T) {
	layouts := DefaultLayouts()
	for i := range layouts {
		if layouts[i].Name == IndexLayout {
			layouts[i].Source = "{{template \"base\" .}}\n{{define \"content\"}}\n{{.Posts | nosuchfunc}}\n{{end}}"
		}
	}

	_, err := NewRenderer(testInfo(), layouts)
	require.Error(t, err)

	var re *blogsmith.RenderError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "template", re.Stage)
	assert.Equal(t, "index.html", re.Template)
	assert.Equal(t, 3, re.Line)
	assert.Contains(t, re.Error(), "nosuchfunc")
	assert.Equal(t, blogsmith.ExitRenderError, blogsmith.ExitCodeForError(err))
}

func TestNewRenderer_MissingPageLayout(t *testing.T) {
	var layouts []Layout
	for _, l := range DefaultLayouts() {
		if l.Name != TagLayout {
			layouts = append(layouts, l)
		}
	}

	_, err := NewRenderer(testInfo(), layouts)
	var re *blogsmith.RenderError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, TagLayout, re.Template)
}

func TestRender_ExecError(t *testing.T) {
	layouts := DefaultLayouts()
	for i := range layouts {
		if layouts[i].Name == PostLayout {
			layouts[i].Source = `{{template "base" .}}{{define "content"}}{{.Post.NoSuchField}}{{end}}`
		}
	}

	r, err := NewRenderer(testInfo(), layouts)
	require.NoError(t, err)

	artifacts, err := r.Render(testCollection())
	require.Error(t, err)
	assert.Nil(t, artifacts)

	var re *blogsmith.RenderError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "post.html", re.Template)
	assert.Equal(t, "b.md", re.FilePath)
	assert.Equal(t, 1, re.Line)
	assert.NotContains(t, re.Err.Error(), "template: post.html")

	var execErr texttemplate.ExecError
	require.True(t, errors.As(err, &execErr), "the html/template error stays in the chain")
	assert.Equal(t, "content", execErr.Name)
}

func TestTemplateError_Unstructured(t *testing.T) {
	re := templateError(errors.New("something else"), "x.md")
	assert.Equal(t, "template", re.Stage)
	assert.Equal(t, "x.md", re.FilePath)
	assert.Empty(t, re.Template)
	assert.Zero(t, re.Line)
}
