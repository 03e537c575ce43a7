package config

import (
	"errors"
	"fmt"

	"github.com/yndnr/shardmap-go/internal/telemetry/logger"
)

// Verify validates the configuration.
func Verify(cfg *BenchConfig) error {
	if err := verifyMap(&cfg.Map); err != nil {
		return err
	}
	if err := verifyWorkload(&cfg.Workload); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyMap(cfg *MapSection) error {
	if cfg.Shards < 1 {
		return errors.New("map.shards must be at least 1")
	}

	switch cfg.Hasher {
	case HasherMaphash, HasherMurmur3, HasherXXHash, HasherXXH3:
	default:
		return fmt.Errorf("map.hasher %q is not one of maphash, murmur3, xxhash, xxh3", cfg.Hasher)
	}

	switch cfg.Backing {
	case BackingHash:
	case BackingBTree:
		if cfg.BTreeDegree < 2 {
			return errors.New("map.btree_degree must be at least 2")
		}
	default:
		return fmt.Errorf("map.backing %q is not one of hash, btree", cfg.Backing)
	}

	return nil
}

func verifyWorkload(cfg *WorkloadSection) error {
	if cfg.Workers < 1 {
		return errors.New("workload.workers must be at least 1")
	}
	if cfg.Keys < 1 {
		return errors.New("workload.keys must be at least 1")
	}
	if cfg.Ops < 0 {
		return errors.New("workload.ops must not be negative")
	}
	if cfg.Ops == 0 && cfg.Duration <= 0 {
		return errors.New("workload.duration must be positive when workload.ops is 0")
	}
	if cfg.ReadRatio < 0 || cfg.EraseRatio < 0 || cfg.ReadRatio+cfg.EraseRatio > 1 {
		return errors.New("workload.read_ratio and workload.erase_ratio must be non-negative and sum to at most 1")
	}
	if cfg.Rate < 0 {
		return errors.New("workload.rate must not be negative")
	}
	if cfg.SweepEvery < 0 {
		return errors.New("workload.sweep_every must not be negative")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if !logger.ValidLevel(cfg.Level) {
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}
	switch cfg.Format {
	case "json", "text", "console":
	default:
		return fmt.Errorf("log.format %q is not one of json, text", cfg.Format)
	}
	return nil
}
