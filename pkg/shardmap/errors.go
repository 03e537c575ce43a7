package shardmap

import "errors"

// ErrInvalidShardCount is returned by New when the shard count is not positive.
var ErrInvalidShardCount = errors.New("shardmap: shard count must be positive")
