package fixedlru

import (
	"cmp"
	"fmt"
)

// Cache is a fixed-capacity LRU cache of K to V using index type I.
//
// Fields are laid out as a struct of arrays: slot i holds keys[i] and
// values[i], and next[i]/prev[i] link it into the recency list. The value
// equal to the capacity (none) marks the end of a list.
//
// The zero Cache is a valid cache with capacity 0: it is always empty and
// always full, and Insert rejects every pair. Use [New], [Init] or one of the
// Init methods to get a cache that stores anything.
type Cache[K, V any, I Index] struct {
	keys   []K
	values []V
	next   []I
	prev   []I
	order  []I

	// none is the capacity, used as the null slot index.
	none I

	n    I
	head I // most recently used, none if empty
	tail I // least recently used, none if empty

	// Slots [highwater, cap) have never been used since the last reset.
	// Slots below highwater are either live or on the free chain.
	highwater I
	freeHead  I

	compare func(a, b K) int
	onEvict func(key K, value V)
}

// New returns an empty cache with the given capacity for ordered keys.
//
// Panics if capacity is negative or I cannot represent it.
func New[K cmp.Ordered, V any, I Index](capacity int) *Cache[K, V, I] {
	return NewFunc[K, V, I](capacity, cmp.Compare[K])
}

// NewFunc is like [New] but orders keys with compare, which must define a
// strict weak ordering and return a negative number, zero or a positive
// number like [cmp.Compare]. Keys that compare equal are the same key.
func NewFunc[K, V any, I Index](capacity int, compare func(a, b K) int) *Cache[K, V, I] {
	c := &Cache[K, V, I]{}
	c.InitFunc(capacity, compare)

	return c
}

// Init initializes c in place as an empty cache for ordered keys.
//
// It is meant for caches that live in a package variable or inside another
// struct. Any previous contents and eviction callback are discarded.
func Init[K cmp.Ordered, V any, I Index](c *Cache[K, V, I], capacity int) {
	c.InitFunc(capacity, cmp.Compare[K])
}

// InitFunc initializes c in place as an empty cache with its own backing
// arrays, ordering keys with compare. Any previous contents and eviction
// callback are discarded.
func (c *Cache[K, V, I]) InitFunc(capacity int, compare func(a, b K) int) {
	c.InitWithStorage(MakeStorage[K, V, I](capacity), compare)
}

// InitWithStorage initializes c in place as an empty cache that uses the
// caller's storage directly. The capacity is storage.Cap(). Keys and values
// in the storage are zeroed.
//
// Panics if compare is nil or the storage is invalid (see [ErrInvalidStorage]
// and [ErrIndexWidth]).
func (c *Cache[K, V, I]) InitWithStorage(storage Storage[K, V, I], compare func(a, b K) int) {
	if compare == nil {
		panic("fixedlru: nil compare function")
	}

	err := storage.validate()
	if err != nil {
		panic(err)
	}

	clear(storage.Keys)
	clear(storage.Values)

	none := I(storage.Cap())

	*c = Cache[K, V, I]{
		keys:      storage.Keys,
		values:    storage.Values,
		next:      storage.Next,
		prev:      storage.Prev,
		order:     storage.Order,
		none:      none,
		head:      none,
		tail:      none,
		freeHead:  none,
		highwater: 0,
		compare:   compare,
	}
}

// NewWithStorage returns an empty cache built on the caller's storage.
// See [Cache.InitWithStorage].
func NewWithStorage[K, V any, I Index](storage Storage[K, V, I], compare func(a, b K) int) *Cache[K, V, I] {
	c := &Cache[K, V, I]{}
	c.InitWithStorage(storage, compare)

	return c
}

// FromEntries builds a cache of ordered keys holding entries. The first entry
// becomes the most recently used and the last one the least recently used.
//
// If two entries share a key, no cache is built and the error is a
// [*DuplicateKeyError] matching [ErrDuplicateKey].
//
// Panics if capacity is negative, I cannot represent it, or
// len(entries) > capacity.
func FromEntries[K cmp.Ordered, V any, I Index](capacity int, entries []Entry[K, V]) (*Cache[K, V, I], error) {
	return FromEntriesFunc[K, V, I](capacity, entries, cmp.Compare[K])
}

// FromEntriesFunc is like [FromEntries] with a custom key ordering.
func FromEntriesFunc[K, V any, I Index](capacity int, entries []Entry[K, V], compare func(a, b K) int) (*Cache[K, V, I], error) {
	mustCheckCapacity[I](capacity)

	if len(entries) > capacity {
		panic(fmt.Sprintf("fixedlru: %d entries exceed capacity %d", len(entries), capacity))
	}

	c := NewFunc[K, V, I](capacity, compare)

	// Insert back to front so entries[0] ends up at the head.
	for idx := len(entries) - 1; idx >= 0; idx-- {
		entry := entries[idx]

		pos, found := c.search(entry.Key)
		if found {
			return nil, &DuplicateKeyError[K]{Key: entry.Key}
		}

		c.insertAt(pos, entry.Key, entry.Value)
	}

	return c, nil
}

// OnEvict registers fn to be called with every pair pushed out by Insert or
// GetOrInsertFunc on a full cache. Remove, RemoveOldest and Clear do not call
// it. Pass nil to unregister.
//
// fn runs after the cache is consistent again, but must not call back into
// the cache.
func (c *Cache[K, V, I]) OnEvict(fn func(key K, value V)) {
	c.onEvict = fn
}

// Len returns the number of resident entries.
func (c *Cache[K, V, I]) Len() int {
	return int(c.n)
}

// Cap returns the fixed capacity.
func (c *Cache[K, V, I]) Cap() int {
	return len(c.keys)
}

// IsEmpty reports whether Len() == 0.
func (c *Cache[K, V, I]) IsEmpty() bool {
	return c.n == 0
}

// IsFull reports whether Len() == Cap(). A zero-capacity cache is always full.
func (c *Cache[K, V, I]) IsFull() bool {
	return c.n == c.none
}

// Get returns the value stored for key and makes it the most recently used
// entry.
func (c *Cache[K, V, I]) Get(key K) (V, bool) {
	pos, found := c.search(key)
	if !found {
		var zero V
		return zero, false
	}

	slot := c.order[pos]
	c.moveToFront(slot)

	return c.values[slot], true
}

// Peek returns the value stored for key without changing recency order.
func (c *Cache[K, V, I]) Peek(key K) (V, bool) {
	pos, found := c.search(key)
	if !found {
		var zero V
		return zero, false
	}

	return c.values[c.order[pos]], true
}

// Contains reports whether key is resident without changing recency order.
func (c *Cache[K, V, I]) Contains(key K) bool {
	_, found := c.search(key)

	return found
}

// Update calls fn with a pointer to the value stored for key and makes the
// entry the most recently used. It reports whether key was resident.
//
// The pointer is only valid during the call.
func (c *Cache[K, V, I]) Update(key K, fn func(value *V)) bool {
	pos, found := c.search(key)
	if !found {
		return false
	}

	slot := c.order[pos]
	fn(&c.values[slot])
	c.moveToFront(slot)

	return true
}

// UpdateQuiet is like [Cache.Update] but leaves recency order untouched.
func (c *Cache[K, V, I]) UpdateQuiet(key K, fn func(value *V)) bool {
	pos, found := c.search(key)
	if !found {
		return false
	}

	fn(&c.values[c.order[pos]])

	return true
}

// Insert stores value under key and makes it the most recently used entry.
//
// The Outcome says what happened:
//   - [Added]: key was new, the returned entry is zero.
//   - [Replaced]: key was resident, the returned entry holds the old value.
//     The stored key is kept; only the value changes.
//   - [Evicted]: key was new and the cache full, the returned entry is the
//     least-recently-used pair that was dropped to make room.
//   - [Rejected]: the cache has zero capacity, the returned entry is the
//     pair passed in.
//
// Insert never fails.
func (c *Cache[K, V, I]) Insert(key K, value V) (Entry[K, V], Outcome) {
	pos, found := c.search(key)
	if found {
		slot := c.order[pos]
		old := c.values[slot]
		c.values[slot] = value
		c.moveToFront(slot)

		return Entry[K, V]{Key: c.keys[slot], Value: old}, Replaced
	}

	if c.none == 0 {
		return Entry[K, V]{Key: key, Value: value}, Rejected
	}

	evicted, didEvict := c.insertAt(pos, key, value)
	if !didEvict {
		return Entry[K, V]{}, Added
	}

	if c.onEvict != nil {
		c.onEvict(evicted.Key, evicted.Value)
	}

	return evicted, Evicted
}

// GetOrInsertFunc returns the value stored for key, making it the most
// recently used entry, and true. If key is absent it stores fn(key), which
// may evict the least-recently-used entry (reported through OnEvict), and
// returns the new value and false.
//
// On a zero-capacity cache the value is computed and returned but not stored.
// fn must not use the cache.
func (c *Cache[K, V, I]) GetOrInsertFunc(key K, fn func(key K) V) (V, bool) {
	pos, found := c.search(key)
	if found {
		slot := c.order[pos]
		c.moveToFront(slot)

		return c.values[slot], true
	}

	value := fn(key)
	if c.none == 0 {
		return value, false
	}

	evicted, didEvict := c.insertAt(pos, key, value)
	if didEvict && c.onEvict != nil {
		c.onEvict(evicted.Key, evicted.Value)
	}

	return value, false
}

// Remove deletes key and returns its value.
func (c *Cache[K, V, I]) Remove(key K) (V, bool) {
	pos, found := c.search(key)
	if !found {
		var zero V
		return zero, false
	}

	return c.removeAt(pos).Value, true
}

// RemoveOldest deletes and returns the least-recently-used entry.
func (c *Cache[K, V, I]) RemoveOldest() (Entry[K, V], bool) {
	if c.n == 0 {
		return Entry[K, V]{}, false
	}

	pos, _ := c.search(c.keys[c.tail])

	return c.removeAt(pos), true
}

// Newest returns the most-recently-used entry without changing order.
func (c *Cache[K, V, I]) Newest() (Entry[K, V], bool) {
	if c.n == 0 {
		return Entry[K, V]{}, false
	}

	return Entry[K, V]{Key: c.keys[c.head], Value: c.values[c.head]}, true
}

// Oldest returns the least-recently-used entry without changing order. It is
// the entry the next Insert of a new key into a full cache would evict.
func (c *Cache[K, V, I]) Oldest() (Entry[K, V], bool) {
	if c.n == 0 {
		return Entry[K, V]{}, false
	}

	return Entry[K, V]{Key: c.keys[c.tail], Value: c.values[c.tail]}, true
}

// Clear removes all entries. Capacity and the eviction callback are kept.
//
// Only slots that were ever used are zeroed, with the clear builtin, so
// Clear costs nothing per entry beyond a memclr and never allocates.
func (c *Cache[K, V, I]) Clear() {
	c.resetSlots()
	c.n = 0
	c.head = c.none
	c.tail = c.none
}

// Stats returns slot usage figures.
func (c *Cache[K, V, I]) Stats() Stats {
	return Stats{
		Len:       int(c.n),
		Cap:       c.Cap(),
		Highwater: int(c.highwater),
		FreeChain: int(c.highwater) - int(c.n),
		Footprint: Footprint[K, V, I](c.Cap()),
	}
}

// insertAt stores a key known to be absent, whose sorted position is pos.
// If the cache is full the tail is evicted first and returned.
//
// Requires Cap() > 0.
func (c *Cache[K, V, I]) insertAt(pos int, key K, value V) (Entry[K, V], bool) {
	var (
		evicted  Entry[K, V]
		didEvict bool
		slot     I
	)

	length := int(c.n)

	if c.n < c.none {
		slot = c.allocSlot()
		c.n++
	} else {
		slot = c.tail
		evicted = Entry[K, V]{Key: c.keys[slot], Value: c.values[slot]}
		didEvict = true

		evictPos, _ := c.search(evicted.Key)
		c.unlink(slot)
		c.indexRemove(evictPos, length)
		length--

		if evictPos < pos {
			pos--
		}
	}

	c.keys[slot] = key
	c.values[slot] = value
	c.indexInsert(pos, slot, length)
	c.pushFront(slot)

	return evicted, didEvict
}

// removeAt deletes the entry at sorted position pos.
func (c *Cache[K, V, I]) removeAt(pos int) Entry[K, V] {
	slot := c.order[pos]
	entry := Entry[K, V]{Key: c.keys[slot], Value: c.values[slot]}

	c.unlink(slot)
	c.indexRemove(pos, int(c.n))
	c.n--
	c.releaseSlot(slot)

	return entry
}
