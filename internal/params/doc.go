// Package params collects site parameters, the free-form key/value pairs
// layouts read as {{.Site.Params.key}}.
//
// Parameters come from three layers, later layers winning:
//   - the params section of blogsmith.yaml
//   - a params file in .env format (--params-file)
//   - --param key=value flags
//
// Use Merge to combine the layers in that order.
package params
