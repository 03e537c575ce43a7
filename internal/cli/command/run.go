package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/shardmap-go/internal/cli/output"
	"github.com/yndnr/shardmap-go/internal/config"
	"github.com/yndnr/shardmap-go/internal/infra/confloader"
	"github.com/yndnr/shardmap-go/internal/infra/shutdown"
	"github.com/yndnr/shardmap-go/internal/telemetry/logger"
	"github.com/yndnr/shardmap-go/internal/telemetry/metric"
	"github.com/yndnr/shardmap-go/internal/workload"
)

// shutdownTimeout bounds the cleanup hooks run after a workload.
const shutdownTimeout = 5 * time.Second

// RunCommand returns the run command.
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:   "run",
		Usage:  "Run a concurrent workload against a fresh map",
		Action: runWorkload,
	}
}

// RunReport summarizes a workload run.
type RunReport struct {
	RunID        string  `json:"run_id" yaml:"run_id"`
	Shards       int     `json:"shards" yaml:"shards"`
	Hasher       string  `json:"hasher" yaml:"hasher"`
	Backing      string  `json:"backing" yaml:"backing"`
	Workers      int     `json:"workers" yaml:"workers"`
	Ops          int64   `json:"ops" yaml:"ops"`
	OpsPerSecond float64 `json:"ops_per_second" yaml:"ops_per_second"`
	Elapsed      string  `json:"elapsed" yaml:"elapsed"`
	Finds        int64   `json:"finds" yaml:"finds"`
	Hits         int64   `json:"hits" yaml:"hits"`
	Inserts      int64   `json:"inserts" yaml:"inserts"`
	FreshInserts int64   `json:"fresh_inserts" yaml:"fresh_inserts"`
	Erases       int64   `json:"erases" yaml:"erases"`
	Erased       int64   `json:"erased" yaml:"erased"`
	Sweeps       int64   `json:"sweeps" yaml:"sweeps"`
	SweptEntries int64   `json:"swept_entries" yaml:"swept_entries"`
	Size         int     `json:"size" yaml:"size"`
	Counted      int     `json:"counted" yaml:"counted"`
	Consistent   bool    `json:"consistent" yaml:"consistent"`
	Interrupted  bool    `json:"interrupted" yaml:"interrupted"`
}

// Table implements output.Tabular.
func (r *RunReport) Table() *output.Table {
	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("run_id", r.RunID)
	t.AddRow("map", fmt.Sprintf("%d shards, %s hasher, %s backing", r.Shards, r.Hasher, r.Backing))
	t.AddRow("workers", output.Count(r.Workers))
	t.AddRow("ops", output.Count(r.Ops))
	t.AddRow("ops/s", output.Float(r.OpsPerSecond, 0))
	t.AddRow("elapsed", r.Elapsed)
	t.AddRow("finds", fmt.Sprintf("%s (%s hits)", output.Count(r.Finds), output.Count(r.Hits)))
	t.AddRow("inserts", fmt.Sprintf("%s (%s fresh)", output.Count(r.Inserts), output.Count(r.FreshInserts)))
	t.AddRow("erases", fmt.Sprintf("%s (%s removed)", output.Count(r.Erases), output.Count(r.Erased)))
	t.AddRow("sweeps", fmt.Sprintf("%s (%s removed)", output.Count(r.Sweeps), output.Count(r.SweptEntries)))
	t.AddRow("size", fmt.Sprintf("%s reported, %s counted", output.Count(r.Size), output.Count(r.Counted)))
	t.AddRow("consistent", fmt.Sprint(r.Consistent))
	if r.Interrupted {
		t.AddRow("interrupted", "true")
	}
	return t
}

func newRunReport(runID string, cfg *config.BenchConfig, res *workload.Result) *RunReport {
	r := &RunReport{
		RunID:        runID,
		Shards:       cfg.Map.Shards,
		Hasher:       cfg.Map.Hasher,
		Backing:      cfg.Map.Backing,
		Workers:      cfg.Workload.Workers,
		Ops:          res.Ops(),
		Elapsed:      res.Elapsed.Round(time.Millisecond).String(),
		Finds:        res.Finds,
		Hits:         res.Hits,
		Inserts:      res.Inserts,
		FreshInserts: res.FreshInserts,
		Erases:       res.Erases,
		Erased:       res.Erased,
		Sweeps:       res.Sweeps,
		SweptEntries: res.SweptEntries,
		Size:         res.SizeReported,
		Counted:      res.SizeCounted,
		Consistent:   res.Consistent(0),
	}
	if secs := res.Elapsed.Seconds(); secs > 0 {
		r.OpsPerSecond = float64(r.Ops) / secs
	}
	return r
}

func workloadConfig(cfg config.WorkloadSection) workload.Config {
	return workload.Config{
		Workers:    cfg.Workers,
		Ops:        cfg.Ops,
		Duration:   cfg.Duration,
		ReadRatio:  cfg.ReadRatio,
		EraseRatio: cfg.EraseRatio,
		Rate:       cfg.Rate,
		SweepEvery: cfg.SweepEvery,
		Seed:       uint64(time.Now().UnixNano()),
	}
}

func runWorkload(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log, err := setupLogger(c, cfg.Log)
	if err != nil {
		return err
	}

	m, err := NewMap(cfg.Map)
	if err != nil {
		return err
	}
	keys, err := workload.GenerateKeys(cfg.Workload.Keys)
	if err != nil {
		return err
	}

	reg := metric.NewRegistry(metric.DefaultNamespace)
	if err := reg.Register(metric.NewShardCollector(metric.DefaultNamespace, "bench", m)); err != nil {
		return fmt.Errorf("register shard collector: %w", err)
	}

	runner, err := workload.NewRunner(m, keys, workloadConfig(cfg.Workload), workload.WithMetrics(reg))
	if err != nil {
		return err
	}

	h := shutdown.NewHandler(shutdownTimeout)
	ctx, stop := h.NotifyContext(c.Context)
	defer stop()

	runID := ulid.Make().String()
	ctx = logger.WithRunID(logger.WithLogger(ctx, log), runID)

	if c.Bool("watch") && c.String("config") != "" {
		w, err := watchLogLevel(ctx, c.String("config"))
		if err != nil {
			return err
		}
		h.OnShutdown(func(context.Context) error {
			return w.Stop()
		})
	}
	h.OnShutdown(func(context.Context) error {
		return logMetrics(ctx, reg)
	})

	res, runErr := runner.Run(ctx)
	if err := h.Shutdown(); err != nil {
		logger.L(ctx).Warn("shutdown hooks failed", "error", err)
	}
	if res == nil {
		return runErr
	}

	report := newRunReport(runID, cfg, res)
	interrupted := errors.Is(runErr, context.Canceled)
	report.Interrupted = interrupted
	if err := render(c, report); err != nil {
		return err
	}

	switch {
	case interrupted:
		return cli.Exit("workload interrupted", 130)
	case runErr != nil:
		return runErr
	case !report.Consistent:
		return cli.Exit(fmt.Sprintf("size counter %d disagrees with %d counted entries", report.Size, report.Counted), 1)
	}
	return nil
}

// watchLogLevel applies log.level from path whenever the file is written.
func watchLogLevel(ctx context.Context, path string) (*confloader.Watcher, error) {
	log := logger.L(ctx)

	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log.Slog()))
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}
	if err := w.Watch(path); err != nil {
		w.Stop()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w.OnChange(func(changed string) {
		l := confloader.NewLoader()
		if err := l.LoadFile(changed); err != nil {
			log.Warn("config reload failed", "path", changed, "error", err)
			return
		}
		level := l.GetString("log.level")
		if level == "" || level == logger.GetLevel() {
			return
		}
		if !logger.ValidLevel(level) {
			log.Warn("ignoring invalid log level", "path", changed, "level", level)
			return
		}
		logger.SetLevel(level)
		log.Info("log level changed", "level", level)
	})
	w.StartAsync()

	return w, nil
}

// logMetrics logs every gathered workload and shard metric at debug level,
// and the operation totals at info level.
func logMetrics(ctx context.Context, reg *metric.Registry) error {
	log := logger.L(ctx)

	samples, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, s := range samples {
		args := []any{"metric", s.Name, "value", s.Value}
		for k, v := range s.Labels {
			args = append(args, k, v)
		}
		log.Debug("metric", args...)
	}

	for _, op := range []string{metric.OpFind, metric.OpInsert, metric.OpFreshInsert, metric.OpErase, metric.OpEraseIf} {
		for _, s := range samples {
			if s.Name == metric.DefaultNamespace+"_workload_ops_total" && s.Labels["op"] == op {
				log.Info("operation total", "op", op, "count", int64(s.Value))
			}
		}
	}
	return nil
}
