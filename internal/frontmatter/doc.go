// Package frontmatter separates the YAML metadata block at the top of a post
// from its markdown body.
//
// A post looks like:
//
//	---
//	title: "Hello"
//	date: "2025-05-01"
//	slug: "hello"
//	---
//	Markdown body...
//
// The opening marker must be the first line of the file. The block ends at the
// next line consisting of exactly three dashes; everything after that line is
// the body, byte for byte. The block must decode to a YAML mapping.
//
// Split does not interpret any key. Typing and required-field checks belong
// to the metadata package.
package frontmatter
