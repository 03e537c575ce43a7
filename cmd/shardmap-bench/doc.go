// Package main provides the entry point for shardmap-bench.
//
// shardmap-bench drives a sharded concurrent map with a configurable
// workload and reports throughput, counter consistency and the per-shard
// distribution of keys:
//
//   - run: mixed lookups, inserts, erases and EraseIf sweeps from several
//     goroutines, optionally rate limited
//   - stats: populate the map and print entries per shard
//   - version: build information
//
// Usage:
//
//	shardmap-bench --shards 32 --hasher xxh3 --workers 16 --duration 10s run
//	shardmap-bench --config bench.yaml --watch run
//	shardmap-bench --keys 1000000 --output json stats
//
// Settings come from defaults, the --config YAML file, SHARDMAP_* environment
// variables (SHARDMAP_MAP_SHARDS, SHARDMAP_WORKLOAD_READ_RATIO, ...) and
// flags, in increasing order of precedence.
package main
