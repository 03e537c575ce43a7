// Package config defines the configuration of the shardmap-bench tool.
//
//   - spec.go: BenchConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Validation of map, workload and log settings
//
// Configuration is loaded via internal/infra/confloader and supports
// files, environment variables, and flags.
package config
