package fixedlru

// Cursor walks the recency list from both ends at once. Next yields from the
// most-recently-used end, NextBack from the least-recently-used end; the two
// never yield the same entry twice and stop when they meet.
//
// Cursors never change recency order. Mutating the cache while a cursor is
// in use invalidates it.
type Cursor[K, V any, I Index] struct {
	cache     *Cache[K, V, I]
	front     I
	back      I
	remaining int
}

// Iter returns a fresh cursor over the recency list. It does not allocate.
func (c *Cache[K, V, I]) Iter() Cursor[K, V, I] {
	return Cursor[K, V, I]{
		cache:     c,
		front:     c.head,
		back:      c.tail,
		remaining: int(c.n),
	}
}

// Next returns the next entry from the most-recently-used end.
func (it *Cursor[K, V, I]) Next() (K, V, bool) {
	if it.remaining == 0 {
		var (
			key   K
			value V
		)

		return key, value, false
	}

	slot := it.front
	it.front = it.cache.next[slot]
	it.remaining--

	return it.cache.keys[slot], it.cache.values[slot], true
}

// NextBack returns the next entry from the least-recently-used end.
func (it *Cursor[K, V, I]) NextBack() (K, V, bool) {
	if it.remaining == 0 {
		var (
			key   K
			value V
		)

		return key, value, false
	}

	slot := it.back
	it.back = it.cache.prev[slot]
	it.remaining--

	return it.cache.keys[slot], it.cache.values[slot], true
}

// Len returns how many entries the cursor has not yielded yet.
func (it *Cursor[K, V, I]) Len() int {
	return it.remaining
}

// All iterates from most to least recently used.
func (c *Cache[K, V, I]) All() Seq[K, V] {
	return func(yield func(K, V) bool) {
		slot := c.head

		for range int(c.n) {
			if !yield(c.keys[slot], c.values[slot]) {
				return
			}

			slot = c.next[slot]
		}
	}
}

// Backward iterates from least to most recently used.
func (c *Cache[K, V, I]) Backward() Seq[K, V] {
	return func(yield func(K, V) bool) {
		slot := c.tail

		for range int(c.n) {
			if !yield(c.keys[slot], c.values[slot]) {
				return
			}

			slot = c.prev[slot]
		}
	}
}

// Keys iterates over keys from most to least recently used.
func (c *Cache[K, V, I]) Keys() Seq1[K] {
	return func(yield func(K) bool) {
		slot := c.head

		for range int(c.n) {
			if !yield(c.keys[slot]) {
				return
			}

			slot = c.next[slot]
		}
	}
}

// Ascend iterates in ascending key order. Recency order is not touched.
func (c *Cache[K, V, I]) Ascend() Seq[K, V] {
	return func(yield func(K, V) bool) {
		for _, slot := range c.order[:c.n] {
			if !yield(c.keys[slot], c.values[slot]) {
				return
			}
		}
	}
}

// Descend iterates in descending key order. Recency order is not touched.
func (c *Cache[K, V, I]) Descend() Seq[K, V] {
	return func(yield func(K, V) bool) {
		for pos := int(c.n) - 1; pos >= 0; pos-- {
			slot := c.order[pos]
			if !yield(c.keys[slot], c.values[slot]) {
				return
			}
		}
	}
}

// UpdateAll calls fn with each key and a pointer to its value, from most to
// least recently used, until fn returns false. Recency order is not touched.
//
// Pointers are only valid during the call, and fn must not use the cache.
func (c *Cache[K, V, I]) UpdateAll(fn func(key K, value *V) bool) {
	slot := c.head

	for range int(c.n) {
		if !fn(c.keys[slot], &c.values[slot]) {
			return
		}

		slot = c.next[slot]
	}
}

// UpdateAscend is like [Cache.UpdateAll] in ascending key order.
func (c *Cache[K, V, I]) UpdateAscend(fn func(key K, value *V) bool) {
	for _, slot := range c.order[:c.n] {
		if !fn(c.keys[slot], &c.values[slot]) {
			return
		}
	}
}
