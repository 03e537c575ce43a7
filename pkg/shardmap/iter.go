package shardmap

import "iter"

// All returns an iterator over all entries for use with range-over-func.
// Breaking out of the loop stops the traversal. The loop body runs under
// the current shard's lock and must not call back into the map.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return m.Range
}

// Values returns an iterator over all values.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		m.Range(func(_ K, v V) bool {
			return yield(v)
		})
	}
}
