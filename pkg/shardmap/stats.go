package shardmap

// ShardStats describes one shard.
type ShardStats struct {
	Index     int
	Count     int
	Allocated bool
}

// Stats returns statistics about all shards, reading one shard at a time.
func (m *Map[K, V]) Stats() []ShardStats {
	stats := make([]ShardStats, len(m.shards))
	for i := range m.shards {
		s := &m.shards[i]
		s.mu.Lock()
		stats[i] = ShardStats{
			Index:     i,
			Allocated: s.backing != nil,
		}
		if s.backing != nil {
			stats[i].Count = s.backing.Len()
		}
		s.mu.Unlock()
	}
	return stats
}
