// Package shardmap provides a generic concurrent map built from a fixed
// number of independently locked shards.
//
// Keys are routed to a shard by hasher(key) % shardCount. Each shard owns a
// single mutex and a backing map that is allocated on the first insertion
// into that shard, so maps with many shards and few keys stay cheap.
//
// Features:
//
//   - Sharding: fixed shard count chosen at construction
//   - Lazy Storage: a shard's backing map exists only after its first insert
//   - Pluggable Backing: builtin hash map or ordered B-tree per shard
//   - Pluggable Hashing: maphash, MurmurHash3, xxHash, XXH3 or integer mixing
//   - Approximate Size: an atomic counter maintained next to inserts/erases
//
// Usage:
//
//	m, err := shardmap.New[string, *Conn](32, shardmap.WithHasher[string, *Conn](shardmap.Murmur3String))
//	if err != nil {
//		return err
//	}
//	conn, fresh := m.LoadOrStore("10.0.0.1:443", newConn())
//	m.EraseIf(func(_ string, c *Conn) bool { return c.Closed() })
//
// Thread Safety:
//
// All methods are safe for concurrent use. Single-key operations lock only the
// owning shard. Bulk operations (EraseIf, EraseOne, Range, Copy, Keys, Stats)
// lock one shard at a time in index order and therefore never observe a
// consistent snapshot of the whole map.
//
// Callbacks passed to any method run while the shard lock is held. They must
// not call back into the same Map, or they may deadlock.
//
// Load Skew:
//
// The shard count never changes and there is no rehashing. A hasher that maps
// many keys to the same residue concentrates them, and their lock traffic, on a
// few shards. Size() is a best-effort counter and must not be used for
// synchronization.
package shardmap
