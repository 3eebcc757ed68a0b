// Package fixedlru provides a fixed-capacity, allocation-free LRU cache.
//
// All storage is allocated once when the cache is constructed. Lookup is a
// binary search over a sorted index of slot numbers, so there is no hashing
// and no rehash pause. The recency list is a doubly linked list encoded as
// two parallel arrays of slot indices.
//
// # Basic Usage
//
//	cache := fixedlru.New[string, []byte, uint16](1024)
//
//	cache.Insert("a", []byte("1"))
//
//	// Get promotes the entry to most-recently-used.
//	value, ok := cache.Get("a")
//
//	// Peek and Contains never touch recency order.
//	value, ok = cache.Peek("a")
//
//	// Insert on a full cache evicts the least-recently-used entry.
//	evicted, outcome := cache.Insert("b", []byte("2"))
//	if outcome == fixedlru.Evicted {
//	    // evicted.Key, evicted.Value
//	}
//
// # Index Type
//
// The third type parameter selects the integer type used for slot indices.
// It must be able to represent the capacity itself (the capacity doubles as
// the "no slot" sentinel), so uint8 allows at most 255 slots and uint16 at
// most 65535. Narrower indices shrink the cache's footprint. Choosing a type
// that is too narrow is a programming error and construction panics with
// [ErrIndexWidth]; use [CheckCapacity] to validate user-supplied capacities.
//
// # Placement
//
// [New] allocates its backing arrays. [Init] and [Cache.InitFunc] initialize a
// caller-owned Cache value in place, and [Cache.InitWithStorage] builds a cache
// directly on caller-supplied [Storage], so large caches can live in a
// package variable or a pre-sized arena. [Cache.CloneInto] copies a cache
// into an existing one without an intermediate full-size copy.
//
// # Complexity
//
//   - Get, Peek, Contains, Update, UpdateQuiet: O(log n)
//   - Insert, Remove: O(log n) search plus O(n) index shift
//   - Newest, Oldest, cursor steps: O(1)
//   - UpdateAll, UpdateAscend: O(1) per visited entry, order untouched
//   - Clear: O(slots ever used), no allocation
//
// # Concurrency
//
// A Cache is not safe for concurrent use. Get mutates recency order, so even
// lookups need exclusive access. Callers that share a cache must hold their
// own lock around every call.
package fixedlru
