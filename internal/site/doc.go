// Package site turns a post collection into the pages and feed of the blog.
//
// Output is produced in memory as a list of Artifacts sorted by path:
//
//	index.html          every post, newest first
//	posts/<slug>.html   one page per post
//	tags/<tag>.html     one listing per tag
//	rss.xml             RSS 2.0 feed
//
// Pages are rendered with html/template from the layouts embedded in the
// binary. A layouts directory in the site root may replace any of them, and
// any extra *.html files found there are parsed alongside every page so
// they can hold shared partials.
//
// Rendering is deterministic: the same collection and site info always yield
// byte-identical artifacts.
package site
