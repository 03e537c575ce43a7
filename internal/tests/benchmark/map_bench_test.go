package benchmark

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yndnr/shardmap-go/internal/workload"
)

// BenchmarkFind compares lookup cost across hasher and backing choices.
func BenchmarkFind(b *testing.B) {
	for _, cfg := range mapConfigs() {
		b.Run(cfg.name, func(b *testing.B) {
			runWithEntryCounts(b, SmallEntryCounts, func(b *testing.B, count int) {
				m := newMap(b, 16, cfg.opts...)
				keys := prefill(b, m, count)

				b.ResetTimer()
				b.ReportAllocs()

				for i := 0; i < b.N; i++ {
					if _, ok := m.Find(keys[i%len(keys)]); !ok {
						b.Fatalf("Find(%s) missed", keys[i%len(keys)])
					}
				}
			})
		})
	}
}

// BenchmarkTryEmplaceParallel measures insert contention as the shard count
// grows.
func BenchmarkTryEmplaceParallel(b *testing.B) {
	keys, err := workload.GenerateKeys(100_000)
	if err != nil {
		b.Fatal(err)
	}

	for _, shards := range ShardCounts {
		b.Run(fmt.Sprintf("shards_%d", shards), func(b *testing.B) {
			m := newMap(b, shards)
			var next atomic.Uint64

			b.ResetTimer()
			b.ReportAllocs()

			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					k := keys[next.Add(1)%uint64(len(keys))]
					m.TryEmplace(k, func() (*workload.Record, error) {
						return &workload.Record{Key: k}, nil
					})
				}
			})

			b.StopTimer()
			reportMemory(b, "mem")
		})
	}
}

// BenchmarkSyncMapLoadOrStore is the sync.Map baseline for
// BenchmarkTryEmplaceParallel.
func BenchmarkSyncMapLoadOrStore(b *testing.B) {
	keys, err := workload.GenerateKeys(100_000)
	if err != nil {
		b.Fatal(err)
	}

	var m sync.Map
	var next atomic.Uint64

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			k := keys[next.Add(1)%uint64(len(keys))]
			m.LoadOrStore(k, &workload.Record{Key: k})
		}
	})
}

// BenchmarkEraseIf measures a full predicate sweep that removes nothing.
func BenchmarkEraseIf(b *testing.B) {
	runWithEntryCounts(b, SmallEntryCounts, func(b *testing.B, count int) {
		m := newMap(b, 16)
		prefill(b, m, count)

		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			m.EraseIf(func(_ string, r *workload.Record) bool {
				return r.Worker < 0
			})
		}
	})
}

// BenchmarkCopy measures copying every value out of the map.
func BenchmarkCopy(b *testing.B) {
	runWithEntryCounts(b, SmallEntryCounts, func(b *testing.B, count int) {
		m := newMap(b, 16)
		prefill(b, m, count)

		b.ResetTimer()
		b.ReportAllocs()

		for i := 0; i < b.N; i++ {
			if got := len(m.CopyAll()); got != count {
				b.Fatalf("CopyAll returned %d values, want %d", got, count)
			}
		}
	})
}

// BenchmarkWorkload runs the mixed read-mostly workload with one worker per
// GOMAXPROCS and reports throughput.
func BenchmarkWorkload(b *testing.B) {
	keys, err := workload.GenerateKeys(50_000)
	if err != nil {
		b.Fatal(err)
	}

	for _, shards := range ShardCounts {
		b.Run(fmt.Sprintf("shards_%d", shards), func(b *testing.B) {
			m := newMap(b, shards)
			r, err := workload.NewRunner(m, keys, workload.Config{
				Workers:    8,
				Ops:        max(1, b.N/8),
				ReadRatio:  0.8,
				EraseRatio: 0.05,
				Seed:       uint64(time.Now().UnixNano()),
			})
			if err != nil {
				b.Fatal(err)
			}

			b.ResetTimer()
			res, err := r.Run(context.Background())
			b.StopTimer()
			if err != nil {
				b.Fatal(err)
			}
			if !res.Consistent(0) {
				b.Fatalf("size %d disagrees with %d counted entries", res.SizeReported, res.SizeCounted)
			}
			b.ReportMetric(float64(res.Ops())/res.Elapsed.Seconds(), "ops/s")
		})
	}
}
