// Package command defines the shardmap-bench commands using urfave/cli/v2.
//
//   - root.go: application, global flags, config and logger setup
//   - build.go: map construction from configuration
//   - run.go: concurrent workload against a fresh map
//   - stats.go: populate a map and report the per-shard distribution
//   - version.go: build information
//
// Global flags override the configuration file and SHARDMAP_* environment
// variables and must precede the command name.
package command
