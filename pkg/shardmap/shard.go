package shardmap

import (
	"sync"

	"golang.org/x/sys/cpu"
)

// Shard is one partition of a Map: a mutex and a lazily allocated backing
// store. The mutex is held for the full body of every method.
//
// A zero Shard is not usable; create one with NewShard or through New.
type Shard[K comparable, V any] struct {
	mu         sync.Mutex
	backing    Backing[K, V] // nil until the first insertion
	newBacking BackingFactory[K, V]

	// Keeps neighbouring shards in a Map's slice on separate cache lines.
	_ cpu.CacheLinePad
}

// NewShard creates a shard that allocates its backing store with factory on
// first insertion. A nil factory selects HashBacking.
func NewShard[K comparable, V any](factory BackingFactory[K, V]) *Shard[K, V] {
	s := &Shard[K, V]{}
	s.init(factory)
	return s
}

func (s *Shard[K, V]) init(factory BackingFactory[K, V]) {
	if factory == nil {
		factory = HashBackingFactory[K, V]()
	}
	s.newBacking = factory
}

// Find returns the value stored for key. An unallocated shard and an absent
// key both report (zero, false).
func (s *Shard[K, V]) Find(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backing == nil {
		var zero V
		return zero, false
	}
	return s.backing.Get(key)
}

// TryEmplace inserts the value built by newValue if key is absent, allocating
// the backing store first if needed. It returns the stored value and true on
// a fresh insertion, or the existing value and false otherwise. newValue runs
// under the shard lock and only when an insertion happens; its error is
// returned as is and leaves the shard unchanged.
func (s *Shard[K, V]) TryEmplace(key K, newValue func() (V, error)) (V, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store().TryInsert(key, newValue)
}

// Erase removes key and returns the number of entries removed (0 or 1).
func (s *Shard[K, V]) Erase(key K) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backing == nil {
		return 0
	}
	return s.backing.Delete(key)
}

// EraseIf removes every entry for which pred returns true and returns the
// number removed.
func (s *Shard[K, V]) EraseIf(pred func(K, V) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backing == nil {
		return 0
	}
	return s.backing.DeleteFunc(pred)
}

// Range calls fn for each entry in the backing store's order until fn
// returns false. It returns false if iteration was stopped by fn.
func (s *Shard[K, V]) Range(fn func(K, V) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backing == nil {
		return true
	}
	return s.backing.Range(fn)
}

// ForEach calls fn for every entry.
func (s *Shard[K, V]) ForEach(fn func(K, V)) {
	s.Range(func(k K, v V) bool {
		fn(k, v)
		return true
	})
}

// Len returns the number of entries in the shard.
func (s *Shard[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backing == nil {
		return 0
	}
	return s.backing.Len()
}

// Allocated reports whether the backing store has been created.
func (s *Shard[K, V]) Allocated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backing != nil
}

// store returns the backing store, creating it on first use.
// Caller must hold s.mu.
func (s *Shard[K, V]) store() Backing[K, V] {
	if s.backing == nil {
		s.backing = s.newBacking()
	}
	return s.backing
}
