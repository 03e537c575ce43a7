// Package metric provides Prometheus metrics for shardmap.
//
// This package implements metrics collection:
//
//   - collector.go: ShardCollector exporting per-shard entry counts
//   - prometheus.go: Registry with workload operation counters
//
// Metrics include:
//
//   - Approximate total entries and allocated shard count
//   - Entries per shard (load skew)
//   - Workload operations by kind
package metric
