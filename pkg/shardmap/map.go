package shardmap

import (
	"sync/atomic"
)

// Map is a concurrent map partitioned into a fixed number of shards.
type Map[K comparable, V any] struct {
	shards []Shard[K, V]
	hasher Hasher[K]
	count  uint64

	// size is an approximate entry count. It is adjusted after each
	// successful insert or erase and is not coordinated across shards.
	size atomic.Int64
}

// Option configures a Map.
type Option[K comparable, V any] func(*options[K, V])

type options[K comparable, V any] struct {
	hasher  Hasher[K]
	backing BackingFactory[K, V]
}

// WithHasher sets the key hasher. The default is ComparableHasher.
func WithHasher[K comparable, V any](h Hasher[K]) Option[K, V] {
	return func(o *options[K, V]) {
		o.hasher = h
	}
}

// WithBacking sets the factory used to allocate each shard's backing store.
// The default is HashBackingFactory.
func WithBacking[K comparable, V any](factory BackingFactory[K, V]) Option[K, V] {
	return func(o *options[K, V]) {
		o.backing = factory
	}
}

// New creates a map with shardCount shards. The shard count is fixed for the
// lifetime of the map.
func New[K comparable, V any](shardCount int, opts ...Option[K, V]) (*Map[K, V], error) {
	if shardCount <= 0 {
		return nil, ErrInvalidShardCount
	}

	var o options[K, V]
	for _, opt := range opts {
		opt(&o)
	}
	if o.hasher == nil {
		o.hasher = ComparableHasher[K]()
	}
	if o.backing == nil {
		o.backing = HashBackingFactory[K, V]()
	}

	m := &Map[K, V]{
		shards: make([]Shard[K, V], shardCount),
		hasher: o.hasher,
		count:  uint64(shardCount),
	}
	for i := range m.shards {
		m.shards[i].init(o.backing)
	}

	return m, nil
}

// getShard returns the shard owning key.
func (m *Map[K, V]) getShard(key K) *Shard[K, V] {
	return &m.shards[m.hasher.shardIndex(key, m.count)]
}

// TryEmplace inserts the value built by newValue if key is absent and
// reports whether a fresh insertion happened. The existing value is returned
// otherwise and is never overwritten. newValue runs under the shard lock.
func (m *Map[K, V]) TryEmplace(key K, newValue func() (V, error)) (V, bool, error) {
	v, inserted, err := m.getShard(key).TryEmplace(key, newValue)
	if inserted {
		m.size.Add(1)
	}
	return v, inserted, err
}

// LoadOrStore stores value if key is absent. It returns the value now held
// for key and true if value was freshly stored.
func (m *Map[K, V]) LoadOrStore(key K, value V) (V, bool) {
	v, inserted, _ := m.TryEmplace(key, func() (V, error) {
		return value, nil
	})
	return v, inserted
}

// Find returns the value stored for key.
func (m *Map[K, V]) Find(key K) (V, bool) {
	return m.getShard(key).Find(key)
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.Find(key)
	return ok
}

// Erase removes key and returns the number of entries removed (0 or 1).
func (m *Map[K, V]) Erase(key K) int {
	removed := m.getShard(key).Erase(key)
	if removed > 0 {
		m.size.Add(-int64(removed))
	}
	return removed
}

// EraseIf removes every entry, in every shard, for which pred returns true.
// Shards are processed one after another; entries inserted into an already
// visited shard during the call are not considered.
func (m *Map[K, V]) EraseIf(pred func(K, V) bool) int {
	total := 0
	for i := range m.shards {
		removed := m.shards[i].EraseIf(pred)
		if removed > 0 {
			m.size.Add(-int64(removed))
			total += removed
		}
	}
	return total
}

// EraseOne visits shards in index order and stops at the first shard in
// which pred removes anything. All matching entries of that shard are
// removed, so the result can exceed one when pred matches several keys that
// share a shard. Matches in later shards are left in place.
func (m *Map[K, V]) EraseOne(pred func(K, V) bool) int {
	for i := range m.shards {
		removed := m.shards[i].EraseIf(pred)
		if removed > 0 {
			m.size.Add(-int64(removed))
			return removed
		}
	}
	return 0
}

// Range calls fn for every entry, shard by shard in index order, until fn
// returns false. Within a shard the backing store's order applies.
func (m *Map[K, V]) Range(fn func(K, V) bool) {
	for i := range m.shards {
		if !m.shards[i].Range(fn) {
			return
		}
	}
}

// ForEach calls fn for every entry.
func (m *Map[K, V]) ForEach(fn func(K, V)) {
	for i := range m.shards {
		m.shards[i].ForEach(fn)
	}
}

// Copy returns a copy of every value for which pred returns true. Each shard
// is copied under its own lock; the result is not a point-in-time snapshot of
// the whole map.
func (m *Map[K, V]) Copy(pred func(V) bool) []V {
	out := make([]V, 0, m.Size())
	for i := range m.shards {
		m.shards[i].ForEach(func(_ K, v V) {
			if pred(v) {
				out = append(out, v)
			}
		})
	}
	return out
}

// CopyAll returns a copy of every value.
func (m *Map[K, V]) CopyAll() []V {
	return m.Copy(func(V) bool { return true })
}

// Keys returns every key, visiting shards like Copy.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Size())
	m.ForEach(func(k K, _ V) {
		keys = append(keys, k)
	})
	return keys
}

// Size returns the approximate number of entries. It is read without
// synchronizing with in-flight operations and can lag behind them.
func (m *Map[K, V]) Size() int {
	n := m.size.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}

// ShardCount returns the number of shards.
func (m *Map[K, V]) ShardCount() int {
	return len(m.shards)
}

// ShardIndex returns the index of the shard owning key.
func (m *Map[K, V]) ShardIndex(key K) int {
	return int(m.hasher.shardIndex(key, m.count))
}
