// Package checksum provides content hashing with normalization support.
//
// Two checksums are offered:
//
//   - Raw checksum: hash of the exact bytes, used to compare generated
//     artifacts against an existing output directory
//   - Normalized checksum: hash after line-ending and trailing-whitespace
//     normalization, recorded on every post so that a source saved by a
//     different editor keeps the same identity
//
// # Example Usage
//
//	calculator := checksum.New()
//	rawChecksum := calculator.CalculateRaw(fileContent)
//	normalizedChecksum := calculator.CalculateNormalized(fileContent)
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
