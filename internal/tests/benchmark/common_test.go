package benchmark

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/yndnr/shardmap-go/internal/workload"
	"github.com/yndnr/shardmap-go/pkg/shardmap"
)

// EntryCounts defines the map sizes for full benchmark runs.
var EntryCounts = []int{10_000, 100_000, 500_000, 1_000_000}

// SmallEntryCounts for quick benchmarks.
var SmallEntryCounts = []int{1_000, 10_000, 100_000}

// ShardCounts are the shard counts compared by the contention benchmarks.
var ShardCounts = []int{1, 4, 16, 64, 256}

type benchMap = shardmap.Map[string, *workload.Record]

// mapConfig names one hasher/backing combination.
type mapConfig struct {
	name string
	opts []shardmap.Option[string, *workload.Record]
}

func mapConfigs() []mapConfig {
	type rec = *workload.Record
	return []mapConfig{
		{"maphash", nil},
		{"murmur3", []shardmap.Option[string, rec]{shardmap.WithHasher[string, rec](shardmap.Murmur3String)}},
		{"xxhash", []shardmap.Option[string, rec]{shardmap.WithHasher[string, rec](shardmap.XXHashString)}},
		{"xxh3", []shardmap.Option[string, rec]{shardmap.WithHasher[string, rec](shardmap.XXH3String)}},
		{"xxh3_btree", []shardmap.Option[string, rec]{
			shardmap.WithHasher[string, rec](shardmap.XXH3String),
			shardmap.WithBacking(shardmap.OrderedBackingFactory[string, rec](shardmap.DefaultBTreeDegree)),
		}},
	}
}

// newMap creates a map and fails the benchmark on error.
func newMap(b *testing.B, shards int, opts ...shardmap.Option[string, *workload.Record]) *benchMap {
	b.Helper()
	m, err := shardmap.New(shards, opts...)
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}
	return m
}

// prefill inserts count generated keys and returns them.
func prefill(b *testing.B, m *benchMap, count int) []string {
	b.Helper()
	keys, err := workload.GenerateKeys(count)
	if err != nil {
		b.Fatalf("GenerateKeys failed: %v", err)
	}
	for _, k := range keys {
		m.LoadOrStore(k, &workload.Record{Key: k})
	}
	return keys
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithEntryCounts runs a benchmark function with various map sizes.
func runWithEntryCounts(b *testing.B, counts []int, benchFn func(b *testing.B, count int)) {
	for _, count := range counts {
		b.Run(fmt.Sprintf("entries_%d", count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}
