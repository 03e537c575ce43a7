package metric

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yndnr/shardmap-go/pkg/shardmap"
)

func newTestMap(t *testing.T) *shardmap.Map[int, int] {
	t.Helper()
	m, err := shardmap.New[int, int](4, shardmap.WithHasher[int, int](shardmap.IdentityHasher[int]()))
	if err != nil {
		t.Fatalf("shardmap.New() error = %v", err)
	}
	return m
}

func TestShardCollector(t *testing.T) {
	m := newTestMap(t)
	for _, k := range []int{0, 4, 8, 1} {
		m.LoadOrStore(k, k)
	}

	c := NewShardCollector("test", "sessions", m)

	// 4 per-shard gauges + entries_approx + shards_allocated + shards.
	if n := testutil.CollectAndCount(c); n != 7 {
		t.Errorf("CollectAndCount() = %d, want 7", n)
	}

	expected := `
# HELP test_map_entries_approx Approximate number of entries reported by the map counter
# TYPE test_map_entries_approx gauge
test_map_entries_approx{map="sessions"} 4
# HELP test_map_shards_allocated Number of shards whose backing store has been allocated
# TYPE test_map_shards_allocated gauge
test_map_shards_allocated{map="sessions"} 2
# HELP test_shard_entries Number of entries held by each shard
# TYPE test_shard_entries gauge
test_shard_entries{map="sessions",shard="0"} 3
test_shard_entries{map="sessions",shard="1"} 1
test_shard_entries{map="sessions",shard="2"} 0
test_shard_entries{map="sessions",shard="3"} 0
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"test_map_entries_approx", "test_map_shards_allocated", "test_shard_entries")
	if err != nil {
		t.Errorf("CollectAndCompare() error = %v", err)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry("")

	r.OpsTotal.WithLabelValues(OpInsert).Add(3)
	r.OpsTotal.WithLabelValues(OpFind).Inc()
	r.ErasedTotal.Add(2)
	r.OpDuration.WithLabelValues(OpFind).Observe(0.001)

	if got := testutil.ToFloat64(r.OpsTotal.WithLabelValues(OpInsert)); got != 3 {
		t.Errorf("ops_total{op=insert} = %v, want 3", got)
	}

	m := newTestMap(t)
	m.LoadOrStore(1, 1)
	if err := r.Register(NewShardCollector(DefaultNamespace, "bench", m)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	samples, err := r.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	byName := make(map[string]float64)
	for _, s := range samples {
		if s.Labels["op"] == OpInsert || s.Labels["op"] == "" || s.Labels["op"] == OpFind {
			byName[s.Name+"/"+s.Labels["op"]] = s.Value
		}
	}

	tests := []struct {
		key  string
		want float64
	}{
		{"shardmap_workload_ops_total/insert", 3},
		{"shardmap_workload_ops_total/find", 1},
		{"shardmap_workload_erased_entries_total/", 2},
		{"shardmap_workload_op_duration_seconds_count/find", 1},
		{"shardmap_map_entries_approx/", 1},
	}
	for _, tt := range tests {
		if got, ok := byName[tt.key]; !ok || got != tt.want {
			t.Errorf("sample %s = (%v, %v), want %v", tt.key, got, ok, tt.want)
		}
	}

	for i := 1; i < len(samples); i++ {
		if samples[i-1].Name > samples[i].Name {
			t.Fatalf("samples not sorted: %s before %s", samples[i-1].Name, samples[i].Name)
		}
	}
}
