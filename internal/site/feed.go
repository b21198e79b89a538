package site

import (
	"bytes"
	"encoding/xml"
	"strings"
	"time"

	"github.com/kestrel-lab/blogsmith/internal/metadata"
	"github.com/kestrel-lab/blogsmith/internal/posts"
	"github.com/kestrel-lab/blogsmith/pkg/blogsmith"
)

// RSSFeed is the root of an RSS 2.0 document.
type RSSFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Atom    string     `xml:"xmlns:atom,attr,omitempty"`
	Channel RSSChannel `xml:"channel"`
}

// RSSChannel describes the blog.
type RSSChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	PubDate       string    `xml:"pubDate,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Generator     string    `xml:"generator"`
	Self          *AtomLink `xml:"atom:link,omitempty"`
	Items         []RSSItem `xml:"item"`
}

// AtomLink is the atom:link self reference feed validators expect.
type AtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

// RSSItem represents one post.
type RSSItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        RSSGUID  `xml:"guid"`
	PubDate     string   `xml:"pubDate"`
	Description string   `xml:"description"`
	Categories  []string `xml:"category"`
}

// RSSGUID is an item identifier that is not a URL.
type RSSGUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// absoluteURL joins a site-relative path onto baseURL. Without a base URL the
// path is returned unchanged.
func absoluteURL(baseURL, sitePath string) string {
	if baseURL == "" {
		return sitePath
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(sitePath, "/")
}

func rssDate(t time.Time) string {
	return t.UTC().Format(time.RFC1123Z)
}

// BuildFeed assembles the feed document for c. Item order follows the
// collection. Dates come only from posts, never from the clock.
func BuildFeed(info blogsmith.SiteInfo, c *posts.Collection) RSSFeed {
	channel := RSSChannel{
		Title:       info.Title,
		Link:        absoluteURL(info.BaseURL, "index.html"),
		Description: info.Description,
		Language:    info.Language,
		Generator:   "blogsmith",
	}
	if channel.Language == "" {
		channel.Language = blogsmith.DefaultLanguage
	}
	if info.BaseURL != "" {
		channel.Link = strings.TrimRight(info.BaseURL, "/") + "/"
		channel.Self = &AtomLink{
			Href: absoluteURL(info.BaseURL, blogsmith.FeedFileName),
			Rel:  "self",
			Type: "application/rss+xml",
		}
	}
	if newest := c.Newest(); !newest.IsZero() {
		channel.PubDate = rssDate(newest)
		channel.LastBuildDate = channel.PubDate
	}

	for _, p := range c.Posts() {
		channel.Items = append(channel.Items, RSSItem{
			Title: p.Metadata.Title,
			Link:  absoluteURL(info.BaseURL, p.URLPath()),
			GUID: RSSGUID{
				IsPermaLink: "false",
				Value:       metadata.PostID(p.Metadata.Slug).URN(),
			},
			PubDate:     rssDate(p.Metadata.Date),
			Description: p.Metadata.Summary,
			Categories:  p.Metadata.Tags,
		})
	}

	feed := RSSFeed{Version: "2.0", Channel: channel}
	if channel.Self != nil {
		feed.Atom = "http://www.w3.org/2005/Atom"
	}
	return feed
}

// RenderFeed encodes the feed for c as indented XML.
func RenderFeed(info blogsmith.SiteInfo, c *posts.Collection) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(BuildFeed(info, c)); err != nil {
		return nil, &blogsmith.RenderError{Stage: "feed", FilePath: blogsmith.FeedFileName, Err: err}
	}
	if err := enc.Close(); err != nil {
		return nil, &blogsmith.RenderError{Stage: "feed", FilePath: blogsmith.FeedFileName, Err: err}
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
