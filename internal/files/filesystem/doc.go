// Package filesystem provides the filesystem abstraction used to read posts,
// layouts, static assets and scaffold templates.
//
// Key interfaces:
//   - FileSystemProvider: opens directories and reads files
//   - Directory: a directory walked in lexical path order
//   - File: an individual entry with metadata and content
//
// Implementations:
//   - OSFileSystem: production implementation over the OS filesystem
//   - MemoryFileSystem: in-memory implementation for tests
//   - EmbedFileSystem: read-only view over an fs.FS such as an embed.FS
//
// All three walk in the same order, so a post collection built from a
// MemoryFileSystem fixture sorts exactly like one read from disk.
package filesystem
