package shardmap

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// Hasher maps a key to an unsigned integer used modulo the shard count.
//
// A Hasher must be deterministic for the lifetime of a Map; the same key
// must always land on the same shard.
type Hasher[K any] func(key K) uint64

// shardIndex maps a key to a shard in [0, shards).
func (fn Hasher[K]) shardIndex(key K, shards uint64) uint64 {
	return fn(key) % shards
}

// ComparableHasher returns a maphash-based hasher for any comparable key.
// Each call draws a new random seed, so two Maps built with separate calls
// distribute keys differently.
func ComparableHasher[K comparable]() Hasher[K] {
	seed := maphash.MakeSeed()
	return func(key K) uint64 {
		return maphash.Comparable(seed, key)
	}
}

// Murmur3String hashes a string key with 64-bit MurmurHash3.
func Murmur3String(key string) uint64 {
	return murmur3.Sum64([]byte(key))
}

// XXHashString hashes a string key with xxHash64.
func XXHashString(key string) uint64 {
	return xxhash.Sum64String(key)
}

// XXH3String hashes a string key with XXH3.
func XXH3String(key string) uint64 {
	return xxh3.HashString(key)
}

// Integer is the set of key types accepted by IntegerHasher.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// IntegerHasher returns a hasher that runs integer keys through the
// MurmurHash3 64-bit finalizer. Sequential keys spread across all shards
// instead of filling them round-robin by residue.
func IntegerHasher[K Integer]() Hasher[K] {
	return func(key K) uint64 {
		return fmix64(uint64(key))
	}
}

func fmix64(h uint64) uint64 {
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

// IdentityHasher returns a hasher that uses the integer key itself.
// Keys are placed on shard key % shardCount, which makes placement
// predictable.
func IdentityHasher[K Integer]() Hasher[K] {
	return func(key K) uint64 {
		return uint64(key)
	}
}
