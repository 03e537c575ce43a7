package shardmap

import (
	"fmt"
	"testing"
)

func TestHashers_Deterministic(t *testing.T) {
	hashers := map[string]Hasher[string]{
		"maphash": ComparableHasher[string](),
		"murmur3": Murmur3String,
		"xxhash":  XXHashString,
		"xxh3":    XXH3String,
	}

	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "a", "session:1234", "10.0.0.1:443"} {
				if h(key) != h(key) {
					t.Errorf("%s(%q) is not deterministic", name, key)
				}
			}
		})
	}
}

func TestHashers_Distribution(t *testing.T) {
	const (
		shards = 16
		keys   = 16000
	)

	hashers := map[string]Hasher[string]{
		"maphash": ComparableHasher[string](),
		"murmur3": Murmur3String,
		"xxhash":  XXHashString,
		"xxh3":    XXH3String,
	}

	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			counts := make([]int, shards)
			for i := 0; i < keys; i++ {
				counts[h.shardIndex(fmt.Sprintf("key-%d", i), shards)]++
			}
			// Expect each shard within 30% of the mean.
			mean := keys / shards
			for i, c := range counts {
				if c < mean*7/10 || c > mean*13/10 {
					t.Errorf("shard %d holds %d keys, mean %d", i, c, mean)
				}
			}
		})
	}
}

func TestIntegerHasher(t *testing.T) {
	h := IntegerHasher[int]()
	counts := make([]int, 8)
	for i := 0; i < 8000; i++ {
		counts[h.shardIndex(i*8, 8)]++
	}
	// Identity hashing would put every multiple of 8 on shard 0.
	for i, c := range counts {
		if c == 0 {
			t.Errorf("shard %d received no keys", i)
		}
	}
}

func TestIdentityHasher(t *testing.T) {
	h := IdentityHasher[uint32]()
	for _, k := range []uint32{0, 1, 7, 100} {
		if got := h.shardIndex(k, 4); got != uint64(k%4) {
			t.Errorf("shardIndex(%d) = %d, want %d", k, got, k%4)
		}
	}
}
