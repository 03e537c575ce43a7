package shardmap

import (
	"cmp"

	"github.com/google/btree"
)

// DefaultBTreeDegree is the B-tree degree used when none is given.
const DefaultBTreeDegree = 32

type btreeItem[K cmp.Ordered, V any] struct {
	key   K
	value V
}

// OrderedBacking is a Backing over a B-tree. Range visits entries in
// ascending key order.
type OrderedBacking[K cmp.Ordered, V any] struct {
	tree *btree.BTreeG[btreeItem[K, V]]
}

// NewOrderedBacking creates an empty OrderedBacking with the given B-tree
// degree. A degree below 2 falls back to DefaultBTreeDegree.
func NewOrderedBacking[K cmp.Ordered, V any](degree int) *OrderedBacking[K, V] {
	if degree < 2 {
		degree = DefaultBTreeDegree
	}
	less := func(a, b btreeItem[K, V]) bool {
		return cmp.Less(a.key, b.key)
	}
	return &OrderedBacking[K, V]{tree: btree.NewG[btreeItem[K, V]](degree, less)}
}

// OrderedBackingFactory returns a factory producing OrderedBacking stores.
func OrderedBackingFactory[K cmp.Ordered, V any](degree int) BackingFactory[K, V] {
	return func() Backing[K, V] {
		return NewOrderedBacking[K, V](degree)
	}
}

func (b *OrderedBacking[K, V]) Get(key K) (V, bool) {
	item, ok := b.tree.Get(btreeItem[K, V]{key: key})
	return item.value, ok
}

func (b *OrderedBacking[K, V]) TryInsert(key K, newValue func() (V, error)) (V, bool, error) {
	if item, ok := b.tree.Get(btreeItem[K, V]{key: key}); ok {
		return item.value, false, nil
	}
	v, err := newValue()
	if err != nil {
		var zero V
		return zero, false, err
	}
	b.tree.ReplaceOrInsert(btreeItem[K, V]{key: key, value: v})
	return v, true, nil
}

func (b *OrderedBacking[K, V]) Delete(key K) int {
	if _, ok := b.tree.Delete(btreeItem[K, V]{key: key}); ok {
		return 1
	}
	return 0
}

// DeleteFunc collects matching keys first; the tree must not be mutated
// while it is being walked.
func (b *OrderedBacking[K, V]) DeleteFunc(pred func(K, V) bool) int {
	var doomed []K
	b.tree.Ascend(func(item btreeItem[K, V]) bool {
		if pred(item.key, item.value) {
			doomed = append(doomed, item.key)
		}
		return true
	})
	for _, k := range doomed {
		b.tree.Delete(btreeItem[K, V]{key: k})
	}
	return len(doomed)
}

func (b *OrderedBacking[K, V]) Range(fn func(K, V) bool) bool {
	completed := true
	b.tree.Ascend(func(item btreeItem[K, V]) bool {
		if !fn(item.key, item.value) {
			completed = false
			return false
		}
		return true
	})
	return completed
}

func (b *OrderedBacking[K, V]) Len() int {
	return b.tree.Len()
}
