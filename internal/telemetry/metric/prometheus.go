package metric

import (
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "shardmap"

// Operation labels used with OpsTotal.
const (
	OpFind        = "find"
	OpInsert      = "insert"
	OpErase       = "erase"
	OpEraseIf     = "erase_if"
	OpFreshInsert = "fresh_insert"
)

// Registry holds the workload metrics and the underlying Prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	// OpsTotal counts map operations by kind.
	OpsTotal *prometheus.CounterVec

	// OpDuration samples per-operation latency in seconds.
	OpDuration *prometheus.HistogramVec

	// ErasedTotal counts entries removed by any erase operation.
	ErasedTotal prometheus.Counter
}

// NewRegistry creates a registry with the workload metrics registered.
func NewRegistry(namespace string) *Registry {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	r := &Registry{
		reg: prometheus.NewRegistry(),
		OpsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workload",
			Name:      "ops_total",
			Help:      "Map operations issued by the workload, by kind",
		}, []string{"op"}),
		OpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "workload",
			Name:      "op_duration_seconds",
			Help:      "Latency of map operations issued by the workload",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		}, []string{"op"}),
		ErasedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workload",
			Name:      "erased_entries_total",
			Help:      "Entries removed by erase operations",
		}),
	}

	r.reg.MustRegister(r.OpsTotal, r.OpDuration, r.ErasedTotal)
	return r
}

// Register adds an extra collector, such as a ShardCollector.
func (r *Registry) Register(c prometheus.Collector) error {
	return r.reg.Register(c)
}

// Prometheus returns the underlying registry.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.reg
}

// Sample is one gathered metric value.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// Gather collects every registered metric as flat samples sorted by name.
// Histograms are reported as their sample count and sum.
func (r *Registry) Gather() ([]Sample, error) {
	families, err := r.reg.Gather()
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			samples = append(samples, flatten(mf.GetName(), mf.GetType(), m, labels)...)
		}
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Name < samples[j].Name
	})
	return samples, nil
}

func flatten(name string, typ dto.MetricType, m *dto.Metric, labels map[string]string) []Sample {
	switch typ {
	case dto.MetricType_COUNTER:
		return []Sample{{Name: name, Labels: labels, Value: m.GetCounter().GetValue()}}
	case dto.MetricType_GAUGE:
		return []Sample{{Name: name, Labels: labels, Value: m.GetGauge().GetValue()}}
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		return []Sample{
			{Name: name + "_count", Labels: labels, Value: float64(h.GetSampleCount())},
			{Name: name + "_sum", Labels: labels, Value: h.GetSampleSum()},
		}
	default:
		return []Sample{{Name: name, Labels: labels, Value: m.GetUntyped().GetValue()}}
	}
}
