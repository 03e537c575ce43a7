package command

import (
	"fmt"
	"math"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/shardmap-go/internal/cli/output"
	"github.com/yndnr/shardmap-go/internal/telemetry/logger"
	"github.com/yndnr/shardmap-go/internal/workload"
	"github.com/yndnr/shardmap-go/pkg/shardmap"
)

// StatsCommand returns the stats command.
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:   "stats",
		Usage:  "Populate a map with --keys entries and report the per-shard distribution",
		Action: showStats,
	}
}

// ShardRow is one shard in a StatsReport.
type ShardRow struct {
	Index     int  `json:"index" yaml:"index"`
	Entries   int  `json:"entries" yaml:"entries"`
	Allocated bool `json:"allocated" yaml:"allocated"`
}

// StatsReport describes how entries are spread over the shards.
type StatsReport struct {
	Hasher    string     `json:"hasher" yaml:"hasher"`
	Backing   string     `json:"backing" yaml:"backing"`
	Size      int        `json:"size" yaml:"size"`
	Min       int        `json:"min" yaml:"min"`
	Max       int        `json:"max" yaml:"max"`
	Mean      float64    `json:"mean" yaml:"mean"`
	StdDev    float64    `json:"stddev" yaml:"stddev"`
	Skew      float64    `json:"skew" yaml:"skew"`
	PerWorker []int      `json:"per_worker" yaml:"per_worker"`
	Shards    []ShardRow `json:"shards" yaml:"shards"`
}

// Table implements output.Tabular.
func (r *StatsReport) Table() *output.Table {
	t := output.NewTable("SHARD", "ENTRIES", "SHARE", "ALLOCATED")
	for _, s := range r.Shards {
		share := 0.0
		if r.Size > 0 {
			share = 100 * float64(s.Entries) / float64(r.Size)
		}
		t.AddRow(strconv.Itoa(s.Index), output.Count(s.Entries), output.Float(share, 2)+"%", strconv.FormatBool(s.Allocated))
	}
	t.AddRow("", "", "", "")
	t.AddRow("total", output.Count(r.Size), "", "")
	t.AddRow("min/max", fmt.Sprintf("%s/%s", output.Count(r.Min), output.Count(r.Max)), "", "")
	t.AddRow("stddev", output.Float(r.StdDev, 2), "", "")
	t.AddRow("skew", output.Float(r.Skew, 3), "", "")
	return t
}

// NewStatsReport summarizes stats. Skew is the largest shard divided by the
// mean shard size; a perfectly even distribution has skew 1.
func NewStatsReport(stats []shardmap.ShardStats) *StatsReport {
	r := &StatsReport{
		Shards: make([]ShardRow, len(stats)),
	}
	if len(stats) == 0 {
		return r
	}

	r.Min = math.MaxInt
	for i, st := range stats {
		r.Shards[i] = ShardRow{Index: st.Index, Entries: st.Count, Allocated: st.Allocated}
		r.Size += st.Count
		r.Min = min(r.Min, st.Count)
		r.Max = max(r.Max, st.Count)
	}

	r.Mean = float64(r.Size) / float64(len(stats))
	var sq float64
	for _, st := range stats {
		d := float64(st.Count) - r.Mean
		sq += d * d
	}
	r.StdDev = math.Sqrt(sq / float64(len(stats)))
	if r.Mean > 0 {
		r.Skew = float64(r.Max) / r.Mean
	}
	return r
}

func showStats(c *cli.Context) error {
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

	ctx := logger.WithLogger(c.Context, log)
	inserted, err := workload.Populate(ctx, m, keys, cfg.Workload.Workers)
	if err != nil {
		return fmt.Errorf("populate map: %w", err)
	}
	log.Debug("map populated", "inserted", inserted, "size", m.Size())

	report := NewStatsReport(m.Stats())
	report.Hasher = cfg.Map.Hasher
	report.Backing = cfg.Map.Backing
	report.PerWorker = make([]int, cfg.Workload.Workers)
	for w := range report.PerWorker {
		report.PerWorker[w] = len(m.Copy(func(r *workload.Record) bool {
			return r.Worker == w
		}))
	}

	log.Info("shard distribution",
		"shards", len(report.Shards),
		"size", report.Size,
		"min", report.Min,
		"max", report.Max,
		"skew", report.Skew)

	return render(c, report)
}
