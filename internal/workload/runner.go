// Package workload drives a sharded map with a configurable concurrent mix
// of lookups, inserts, erases and predicate sweeps, and checks the map's
// counters once the workers have stopped.
package workload

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/yndnr/shardmap-go/internal/telemetry/logger"
	"github.com/yndnr/shardmap-go/internal/telemetry/metric"
	"github.com/yndnr/shardmap-go/pkg/shardmap"
)

// latencySampleEvery controls how often an operation's latency is observed.
const latencySampleEvery = 64

// Record is the value stored for every key.
type Record struct {
	Key     string
	Worker  int
	Created time.Time
	Hits    atomic.Int64
}

// Config configures a Runner.
type Config struct {
	Workers    int
	Ops        int
	Duration   time.Duration
	ReadRatio  float64
	EraseRatio float64
	Rate       float64
	SweepEvery int
	Seed       uint64
}

// Result summarizes a run.
type Result struct {
	Finds        int64
	Hits         int64
	Inserts      int64
	FreshInserts int64
	Erases       int64
	Erased       int64
	Sweeps       int64
	SweptEntries int64
	Elapsed      time.Duration

	// SizeReported is Map.Size() after all workers stopped.
	SizeReported int

	// SizeCounted is the number of entries found by walking every shard.
	SizeCounted int
}

// Ops returns the total number of operations issued.
func (r *Result) Ops() int64 {
	return r.Finds + r.Inserts + r.Erases + r.Sweeps
}

// Consistent reports whether the approximate counter matches the walked
// entry count and the insert/erase balance.
func (r *Result) Consistent(initial int) bool {
	expected := int64(initial) + r.FreshInserts - r.Erased - r.SweptEntries
	return int64(r.SizeReported) == expected && r.SizeCounted == r.SizeReported
}

// Runner issues operations against a map from several goroutines.
type Runner struct {
	cfg     Config
	m       *shardmap.Map[string, *Record]
	keys    []string
	limiter *rate.Limiter
	metrics *metric.Registry
}

// Option configures a Runner.
type Option func(*Runner)

// WithMetrics records operation counts and sampled latencies in reg.
func WithMetrics(reg *metric.Registry) Option {
	return func(r *Runner) {
		r.metrics = reg
	}
}

// NewRunner creates a runner over m using keys as the key space.
func NewRunner(m *shardmap.Map[string, *Record], keys []string, cfg Config, opts ...Option) (*Runner, error) {
	if cfg.Workers < 1 {
		return nil, errors.New("workload: workers must be at least 1")
	}
	if len(keys) == 0 {
		return nil, errors.New("workload: key space is empty")
	}
	if cfg.Ops == 0 && cfg.Duration <= 0 {
		return nil, errors.New("workload: either ops or duration must be set")
	}

	r := &Runner{
		cfg:  cfg,
		m:    m,
		keys: keys,
	}
	if cfg.Rate > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(cfg.Rate), max(1, cfg.Workers))
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Run starts the workers and blocks until every worker has finished its
// operations, the configured duration elapses, or ctx is cancelled. A
// cancelled ctx is reported as an error together with the partial result.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	log := logger.L(ctx)

	runCtx := ctx
	if r.cfg.Ops == 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.cfg.Duration)
		defer cancel()
	}

	log.Info("workload started",
		"workers", r.cfg.Workers,
		"keys", len(r.keys),
		"ops_per_worker", r.cfg.Ops,
		"duration", r.cfg.Duration,
		"shards", r.m.ShardCount())

	results := make([]Result, r.cfg.Workers)
	start := time.Now()

	g, gctx := errgroup.WithContext(runCtx)
	for w := 0; w < r.cfg.Workers; w++ {
		g.Go(func() error {
			return r.work(gctx, w, &results[w])
		})
	}
	err := g.Wait()

	total := &Result{Elapsed: time.Since(start)}
	for i := range results {
		total.merge(&results[i])
	}
	total.SizeReported = r.m.Size()
	total.SizeCounted = len(r.m.Keys())

	if ctx.Err() != nil {
		return total, fmt.Errorf("workload interrupted: %w", ctx.Err())
	}
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return total, err
	}

	log.Info("workload finished",
		"ops", total.Ops(),
		"elapsed", total.Elapsed,
		"fresh_inserts", total.FreshInserts,
		"erased", total.Erased+total.SweptEntries,
		"size", total.SizeReported)

	return total, nil
}

func (r *Runner) work(ctx context.Context, id int, res *Result) error {
	rng := rand.New(rand.NewPCG(r.cfg.Seed, uint64(id)))

	for i := 0; r.cfg.Ops == 0 || i < r.cfg.Ops; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				// Wait fails early when the next token lies past the deadline.
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if _, ok := ctx.Deadline(); ok {
					return context.DeadlineExceeded
				}
				return err
			}
		}

		if r.cfg.SweepEvery > 0 && i > 0 && i%r.cfg.SweepEvery == 0 {
			r.sweep(id, res, i)
			continue
		}

		key := r.keys[rng.IntN(len(r.keys))]
		p := rng.Float64()
		switch {
		case p < r.cfg.ReadRatio:
			r.find(key, res, i)
		case p < r.cfg.ReadRatio+r.cfg.EraseRatio:
			r.erase(key, res, i)
		default:
			r.insert(key, id, res, i)
		}
	}
	return nil
}

func (r *Runner) find(key string, res *Result, i int) {
	defer r.observe(metric.OpFind, i)()

	res.Finds++
	if rec, ok := r.m.Find(key); ok {
		rec.Hits.Add(1)
		res.Hits++
	}
}

func (r *Runner) insert(key string, worker int, res *Result, i int) {
	defer r.observe(metric.OpInsert, i)()

	res.Inserts++
	_, fresh, err := r.m.TryEmplace(key, func() (*Record, error) {
		return &Record{Key: key, Worker: worker, Created: time.Now()}, nil
	})
	if err == nil && fresh {
		res.FreshInserts++
		if r.metrics != nil {
			r.metrics.OpsTotal.WithLabelValues(metric.OpFreshInsert).Inc()
		}
	}
}

func (r *Runner) erase(key string, res *Result, i int) {
	defer r.observe(metric.OpErase, i)()

	res.Erases++
	n := r.m.Erase(key)
	res.Erased += int64(n)
	if r.metrics != nil && n > 0 {
		r.metrics.ErasedTotal.Add(float64(n))
	}
}

// sweep removes every record this worker created that was never read.
func (r *Runner) sweep(worker int, res *Result, i int) {
	defer r.observe(metric.OpEraseIf, i)()

	res.Sweeps++
	n := r.m.EraseIf(func(_ string, rec *Record) bool {
		return rec.Worker == worker && rec.Hits.Load() == 0
	})
	res.SweptEntries += int64(n)
	if r.metrics != nil && n > 0 {
		r.metrics.ErasedTotal.Add(float64(n))
	}
}

// observe counts op and, for every latencySampleEvery-th operation, returns
// a func that records its latency.
func (r *Runner) observe(op string, i int) func() {
	if r.metrics == nil {
		return func() {}
	}
	r.metrics.OpsTotal.WithLabelValues(op).Inc()
	if i%latencySampleEvery != 0 {
		return func() {}
	}
	start := time.Now()
	return func() {
		r.metrics.OpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

func (r *Result) merge(o *Result) {
	r.Finds += o.Finds
	r.Hits += o.Hits
	r.Inserts += o.Inserts
	r.FreshInserts += o.FreshInserts
	r.Erases += o.Erases
	r.Erased += o.Erased
	r.Sweeps += o.Sweeps
	r.SweptEntries += o.SweptEntries
}
