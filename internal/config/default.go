package config

import "time"

// Default configuration values.
const (
	DefaultShards      = 16
	DefaultHasher      = HasherMaphash
	DefaultBacking     = BackingHash
	DefaultBTreeDegree = 32

	DefaultWorkers    = 8
	DefaultKeys       = 100_000
	DefaultDuration   = 5 * time.Second
	DefaultReadRatio  = 0.8
	DefaultEraseRatio = 0.05

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Hasher names accepted by MapSection.Hasher.
const (
	HasherMaphash = "maphash"
	HasherMurmur3 = "murmur3"
	HasherXXHash  = "xxhash"
	HasherXXH3    = "xxh3"
)

// Backing names accepted by MapSection.Backing.
const (
	BackingHash  = "hash"
	BackingBTree = "btree"
)

// Default returns the default bench configuration.
func Default() *BenchConfig {
	return &BenchConfig{
		Map: MapSection{
			Shards:      DefaultShards,
			Hasher:      DefaultHasher,
			Backing:     DefaultBacking,
			BTreeDegree: DefaultBTreeDegree,
		},
		Workload: WorkloadSection{
			Workers:    DefaultWorkers,
			Keys:       DefaultKeys,
			Duration:   DefaultDuration,
			ReadRatio:  DefaultReadRatio,
			EraseRatio: DefaultEraseRatio,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
