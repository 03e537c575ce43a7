package metric

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/shardmap-go/pkg/shardmap"
)

// StatsSource is implemented by shardmap.Map.
type StatsSource interface {
	Size() int
	Stats() []shardmap.ShardStats
}

// ShardCollector exports the state of a sharded map on every scrape.
type ShardCollector struct {
	source StatsSource

	approxEntries   *prometheus.Desc
	shardEntries    *prometheus.Desc
	shardsAllocated *prometheus.Desc
	shardsTotal     *prometheus.Desc
}

// NewShardCollector creates a collector for source. name is attached as the
// "map" constant label so several maps can share a registry.
func NewShardCollector(namespace, name string, source StatsSource) *ShardCollector {
	labels := prometheus.Labels{"map": name}
	return &ShardCollector{
		source: source,
		approxEntries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "map", "entries_approx"),
			"Approximate number of entries reported by the map counter",
			nil, labels,
		),
		shardEntries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "shard", "entries"),
			"Number of entries held by each shard",
			[]string{"shard"}, labels,
		),
		shardsAllocated: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "map", "shards_allocated"),
			"Number of shards whose backing store has been allocated",
			nil, labels,
		),
		shardsTotal: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "map", "shards"),
			"Configured number of shards",
			nil, labels,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *ShardCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.approxEntries
	ch <- c.shardEntries
	ch <- c.shardsAllocated
	ch <- c.shardsTotal
}

// Collect implements prometheus.Collector.
func (c *ShardCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()

	allocated := 0
	for _, st := range stats {
		if st.Allocated {
			allocated++
		}
		ch <- prometheus.MustNewConstMetric(c.shardEntries, prometheus.GaugeValue,
			float64(st.Count), strconv.Itoa(st.Index))
	}

	ch <- prometheus.MustNewConstMetric(c.approxEntries, prometheus.GaugeValue, float64(c.source.Size()))
	ch <- prometheus.MustNewConstMetric(c.shardsAllocated, prometheus.GaugeValue, float64(allocated))
	ch <- prometheus.MustNewConstMetric(c.shardsTotal, prometheus.GaugeValue, float64(len(stats)))
}
