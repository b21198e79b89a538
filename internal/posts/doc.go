// Package posts loads a directory of markdown sources into an ordered
// Collection.
//
// Each source flows through frontmatter.Split, metadata.Validate and the
// markdown renderer. Loading is all-or-nothing: the first file that fails
// at any stage stops the load, and duplicate slugs stop it with a
// *blogsmith.DuplicateSlugError naming both files.
//
// The resulting Collection is ordered by date, newest first, with a stable
// sort so that posts sharing a date keep the lexical order of their paths.
package posts
