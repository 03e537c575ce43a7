package config

import "time"

// BenchConfig is the root configuration for shardmap-bench.
type BenchConfig struct {
	Map      MapSection      `koanf:"map"`
	Workload WorkloadSection `koanf:"workload"`
	Log      LogSection      `koanf:"log"`
}

// MapSection configures the map under test.
type MapSection struct {
	// Shards is the fixed shard count.
	Shards int `koanf:"shards"`

	// Hasher selects the key hash: maphash, murmur3, xxhash or xxh3.
	Hasher string `koanf:"hasher"`

	// Backing selects the per-shard store: hash or btree.
	Backing string `koanf:"backing"`

	// BTreeDegree is the B-tree degree when Backing is btree.
	BTreeDegree int `koanf:"btree_degree"`
}

// WorkloadSection configures the load generator.
type WorkloadSection struct {
	// Workers is the number of concurrent goroutines issuing operations.
	Workers int `koanf:"workers"`

	// Keys is the size of the key space.
	Keys int `koanf:"keys"`

	// Ops is the number of operations per worker. Zero means run until
	// Duration elapses.
	Ops int `koanf:"ops"`

	// Duration bounds the run when Ops is zero.
	Duration time.Duration `koanf:"duration"`

	// ReadRatio is the fraction of operations that are lookups.
	ReadRatio float64 `koanf:"read_ratio"`

	// EraseRatio is the fraction of operations that are single-key erases.
	// The remainder are inserts.
	EraseRatio float64 `koanf:"erase_ratio"`

	// Rate caps total operations per second across workers. Zero disables
	// the limit.
	Rate float64 `koanf:"rate"`

	// SweepEvery runs an EraseIf sweep after this many operations per worker.
	// Zero disables sweeps.
	SweepEvery int `koanf:"sweep_every"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
