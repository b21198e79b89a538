// Package files groups the file access layers used by the build.
//
//   - filesystem: provider abstraction with OS, in-memory and embed.FS implementations
//   - scanner: discovers post sources and static assets and checksums them
//
// # Usage
//
//	fileScanner := scanner.NewScanner(checksum.New())
//	posts, err := fileScanner.ScanPosts("./posts")
package files
