// Package markdown renders post bodies to HTML with goldmark.
//
// The dialect is CommonMark plus GitHub extensions (tables, strikethrough,
// autolinks, task lists), generated heading ids and ::: fenced div containers.
// Fenced code blocks become <pre><code class="language-X"> so that a client
// side highlighter can pick up the language hint.
package markdown

import (
	"bytes"
	"html/template"

	fences "github.com/stefanfritsch/goldmark-fences"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

// Options configures a Renderer.
type Options struct {
	// Unsafe passes raw HTML blocks and inline HTML through unchanged.
	// When false goldmark replaces them with an HTML comment.
	Unsafe bool

	// HardWraps turns single newlines inside paragraphs into <br>.
	HardWraps bool
}

// Renderer converts markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New builds a Renderer.
func New(opts Options) *Renderer {
	var htmlOpts []renderer.Option
	if opts.Unsafe {
		htmlOpts = append(htmlOpts, goldmarkhtml.WithUnsafe())
	}
	if opts.HardWraps {
		htmlOpts = append(htmlOpts, goldmarkhtml.WithHardWraps())
	}

	md := goldmark.New(
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithAttribute(),
		),
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			&fences.Extender{},
		),
		goldmark.WithRendererOptions(htmlOpts...),
	)

	return &Renderer{md: md}
}

// Render converts body to HTML. path names the source in a RenderError.
func (r *Renderer) Render(body []byte, path string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(body, &buf); err != nil {
		return "", &blogsmith.RenderError{Stage: "markdown", FilePath: path, Err: err}
	}
	return template.HTML(buf.String()), nil
}
