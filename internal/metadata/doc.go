// Package metadata turns a decoded frontmatter mapping into typed post metadata.
//
// # Fields
//
//	title    required string, not blank
//	date     required calendar date, "YYYY-MM-DD"
//	tags     optional list of strings, defaults to empty, order preserved
//	summary  required string, not blank
//	slug     required string of letters, digits, '.', '_' and '-'
//	draft    optional boolean, defaults to false
//
// Unknown keys are ignored so that posts can carry fields for other tools.
//
// # Errors
//
// Validate reports every offending field at once. Each problem is a
// *blogsmith.ValidationError naming the file and the field, and the problems
// are joined with errors.Join in the order listed above. Type problems
// (a number where a string belongs) are caught during coercion; content rules
// (blank values, slug shape) are declared as struct tags on PostMetadata and
// checked with go-playground/validator.
//
// # Identity
//
// PostID derives a stable UUID v5 from a slug for use as the RSS item guid.
package metadata
