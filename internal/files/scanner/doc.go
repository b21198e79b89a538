// Package scanner discovers the files a build reads.
//
// The scanner package is responsible for:
//   - Recursively discovering markdown post sources in lexical path order
//   - Listing static assets that are copied verbatim into the output
//   - Reading content and computing normalized checksums
//
// The scanner is filesystem-agnostic through the filesystem.FileSystemProvider
// interface, enabling both production use with the OS filesystem and testing
// with in-memory filesystems.
package scanner
