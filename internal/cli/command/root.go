package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/shardmap-go/internal/cli/output"
	"github.com/yndnr/shardmap-go/internal/config"
	"github.com/yndnr/shardmap-go/internal/infra/buildinfo"
	"github.com/yndnr/shardmap-go/internal/infra/confloader"
	"github.com/yndnr/shardmap-go/internal/telemetry/logger"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "shardmap-bench",
		Usage:   "Exercise a sharded concurrent map and report its shard distribution",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			RunCommand(),
			StatsCommand(),
			VersionCommand(),
		},
		DefaultCommand: "run",
	}
}

// flagKeys maps global flags to the configuration keys they override.
var flagKeys = []struct {
	flag string
	key  string
}{
	{"shards", "map.shards"},
	{"hasher", "map.hasher"},
	{"backing", "map.backing"},
	{"btree-degree", "map.btree_degree"},
	{"workers", "workload.workers"},
	{"keys", "workload.keys"},
	{"ops", "workload.ops"},
	{"duration", "workload.duration"},
	{"rate", "workload.rate"},
	{"read-ratio", "workload.read_ratio"},
	{"erase-ratio", "workload.erase_ratio"},
	{"sweep-every", "workload.sweep_every"},
	{"log-level", "log.level"},
	{"log-format", "log.format"},
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML configuration file",
			EnvVars: []string{"SHARDMAP_CONFIG"},
		},
		&cli.IntFlag{
			Name:    "shards",
			Aliases: []string{"s"},
			Usage:   "Number of shards",
			Value:   config.DefaultShards,
		},
		&cli.StringFlag{
			Name:  "hasher",
			Usage: "Key hasher: maphash, murmur3, xxhash, xxh3",
			Value: config.DefaultHasher,
		},
		&cli.StringFlag{
			Name:  "backing",
			Usage: "Per-shard store: hash, btree",
			Value: config.DefaultBacking,
		},
		&cli.IntFlag{
			Name:  "btree-degree",
			Usage: "B-tree degree for the btree backing",
			Value: config.DefaultBTreeDegree,
		},
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"w"},
			Usage:   "Concurrent workers",
			Value:   config.DefaultWorkers,
		},
		&cli.IntFlag{
			Name:    "keys",
			Aliases: []string{"k"},
			Usage:   "Size of the key space",
			Value:   config.DefaultKeys,
		},
		&cli.IntFlag{
			Name:  "ops",
			Usage: "Operations per worker (0 runs for --duration)",
		},
		&cli.DurationFlag{
			Name:    "duration",
			Aliases: []string{"d"},
			Usage:   "Run length when --ops is 0",
			Value:   config.DefaultDuration,
		},
		&cli.Float64Flag{
			Name:  "rate",
			Usage: "Total operations per second across workers (0 is unlimited)",
		},
		&cli.Float64Flag{
			Name:  "read-ratio",
			Usage: "Fraction of operations that are lookups",
			Value: config.DefaultReadRatio,
		},
		&cli.Float64Flag{
			Name:  "erase-ratio",
			Usage: "Fraction of operations that are single-key erases",
			Value: config.DefaultEraseRatio,
		},
		&cli.IntFlag{
			Name:  "sweep-every",
			Usage: "Run an EraseIf sweep every N operations per worker (0 disables)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
			Value: config.DefaultLogLevel,
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
			Value: config.DefaultLogFormat,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Report format: table, json, yaml",
			Value:   string(output.FormatTable),
		},
		&cli.BoolFlag{
			Name:  "watch",
			Usage: "Reload log.level from --config while running",
		},
	}
}

// overrides returns the configuration values of explicitly set flags.
func overrides(c *cli.Context) map[string]any {
	values := make(map[string]any)
	for _, fk := range flagKeys {
		if c.IsSet(fk.flag) {
			values[fk.key] = c.Value(fk.flag)
		}
	}
	return values
}

// loadConfig merges defaults, the config file, SHARDMAP_* environment
// variables and flags, then verifies the result.
func loadConfig(c *cli.Context) (*config.BenchConfig, error) {
	cfg := config.Default()

	loader := confloader.NewLoader(
		confloader.WithConfigFile(c.String("config")),
		confloader.WithOverrides(overrides(c)),
	)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}
	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setupLogger creates the process logger writing to the app's error stream
// and installs it as the default.
func setupLogger(c *cli.Context, cfg config.LogSection) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Level,
		Format: cfg.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	logger.SetDefault(log)
	return log, nil
}

// render writes report to the app's output stream in the --output format.
func render(c *cli.Context, report any) error {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return err
	}
	return output.NewFormatter(format).Format(c.App.Writer, report)
}
