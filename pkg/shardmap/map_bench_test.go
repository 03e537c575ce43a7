package shardmap

import (
	"strconv"
	"testing"
)

func BenchmarkMap_LoadOrStore(b *testing.B) {
	for _, shards := range []int{1, 16, 64} {
		b.Run("shards="+strconv.Itoa(shards), func(b *testing.B) {
			m, err := New[string, int](shards, WithHasher[string, int](XXH3String))
			if err != nil {
				b.Fatalf("New() error = %v", err)
			}
			b.RunParallel(func(pb *testing.PB) {
				i := 0
				for pb.Next() {
					m.LoadOrStore(strconv.Itoa(i%10000), i)
					i++
				}
			})
		})
	}
}

func BenchmarkMap_Find(b *testing.B) {
	m, err := New[string, int](32, WithHasher[string, int](Murmur3String))
	if err != nil {
		b.Fatalf("New() error = %v", err)
	}
	keys := make([]string, 10000)
	for i := range keys {
		keys[i] = "key-" + strconv.Itoa(i)
		m.LoadOrStore(keys[i], i)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			m.Find(keys[i%len(keys)])
			i++
		}
	})
}
