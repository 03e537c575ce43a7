// Package output renders shardmap-bench reports as an aligned table, JSON or
// YAML.
//
// Reports implement Tabular to control their table layout; the JSON and YAML
// formatters encode the report value directly.
package output
