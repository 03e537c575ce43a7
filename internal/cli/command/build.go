package command

import (
	"fmt"

	"github.com/yndnr/shardmap-go/internal/config"
	"github.com/yndnr/shardmap-go/internal/workload"
	"github.com/yndnr/shardmap-go/pkg/shardmap"
)

// benchMap is the map type exercised by every command.
type benchMap = shardmap.Map[string, *workload.Record]

// NewMap builds the map under test from cfg.
func NewMap(cfg config.MapSection) (*benchMap, error) {
	opts := []shardmap.Option[string, *workload.Record]{
		shardmap.WithHasher[string, *workload.Record](hasherFor(cfg.Hasher)),
	}
	if cfg.Backing == config.BackingBTree {
		opts = append(opts, shardmap.WithBacking(
			shardmap.OrderedBackingFactory[string, *workload.Record](cfg.BTreeDegree)))
	}

	m, err := shardmap.New(cfg.Shards, opts...)
	if err != nil {
		return nil, fmt.Errorf("create map: %w", err)
	}
	return m, nil
}

func hasherFor(name string) shardmap.Hasher[string] {
	switch name {
	case config.HasherMurmur3:
		return shardmap.Murmur3String
	case config.HasherXXHash:
		return shardmap.XXHashString
	case config.HasherXXH3:
		return shardmap.XXH3String
	default:
		return shardmap.ComparableHasher[string]()
	}
}
