package shardmap

// Backing is the single-threaded key/value store owned by a Shard.
//
// Implementations need no internal locking; a Shard serializes every call.
type Backing[K comparable, V any] interface {
	// Get returns the value stored for key.
	Get(key K) (V, bool)

	// TryInsert stores the value produced by newValue if key is absent.
	// It reports true on a fresh insertion. An existing value is never
	// replaced and newValue is not called for it. If newValue fails,
	// nothing is stored and the error is returned.
	TryInsert(key K, newValue func() (V, error)) (V, bool, error)

	// Delete removes key and returns the number of entries removed (0 or 1).
	Delete(key K) int

	// DeleteFunc removes every entry for which pred returns true.
	DeleteFunc(pred func(K, V) bool) int

	// Range calls fn for each entry in the store's native order until fn
	// returns false. It returns false if iteration stopped early.
	Range(fn func(K, V) bool) bool

	// Len returns the number of entries.
	Len() int
}

// BackingFactory creates an empty Backing for a shard.
type BackingFactory[K comparable, V any] func() Backing[K, V]

// HashBacking is a Backing over a builtin Go map. Iteration order is
// unspecified and differs between calls.
type HashBacking[K comparable, V any] struct {
	items map[K]V
}

// NewHashBacking creates an empty HashBacking.
func NewHashBacking[K comparable, V any]() *HashBacking[K, V] {
	return &HashBacking[K, V]{items: make(map[K]V)}
}

// HashBackingFactory returns a factory producing HashBacking stores.
func HashBackingFactory[K comparable, V any]() BackingFactory[K, V] {
	return func() Backing[K, V] {
		return NewHashBacking[K, V]()
	}
}

func (b *HashBacking[K, V]) Get(key K) (V, bool) {
	v, ok := b.items[key]
	return v, ok
}

func (b *HashBacking[K, V]) TryInsert(key K, newValue func() (V, error)) (V, bool, error) {
	if existing, ok := b.items[key]; ok {
		return existing, false, nil
	}
	v, err := newValue()
	if err != nil {
		var zero V
		return zero, false, err
	}
	b.items[key] = v
	return v, true, nil
}

func (b *HashBacking[K, V]) Delete(key K) int {
	if _, ok := b.items[key]; !ok {
		return 0
	}
	delete(b.items, key)
	return 1
}

func (b *HashBacking[K, V]) DeleteFunc(pred func(K, V) bool) int {
	removed := 0
	for k, v := range b.items {
		if pred(k, v) {
			delete(b.items, k)
			removed++
		}
	}
	return removed
}

func (b *HashBacking[K, V]) Range(fn func(K, V) bool) bool {
	for k, v := range b.items {
		if !fn(k, v) {
			return false
		}
	}
	return true
}

func (b *HashBacking[K, V]) Len() int {
	return len(b.items)
}
