package fixedlru

// Clone returns a copy of c with its own backing arrays. Keys and values are
// copied by assignment. Recency order, key order and slot layout are the
// same as in c. The eviction callback is not copied.
func (c *Cache[K, V, I]) Clone() *Cache[K, V, I] {
	dst := &Cache[K, V, I]{}
	c.CloneInto(dst)

	return dst
}

// CloneInto makes dst a copy of c. If dst already has c's capacity its
// backing arrays are reused and written slot by slot, so no temporary copy
// of the whole cache is ever made; otherwise dst gets new arrays. dst keeps
// its own eviction callback.
func (c *Cache[K, V, I]) CloneInto(dst *Cache[K, V, I]) {
	if dst == c {
		return
	}

	capacity := c.Cap()

	if dst.Cap() == capacity {
		// Drop whatever dst held beyond what is about to be overwritten.
		if dst.highwater > c.highwater {
			clear(dst.keys[c.highwater:dst.highwater])
			clear(dst.values[c.highwater:dst.highwater])
		}
	} else {
		storage := MakeStorage[K, V, I](capacity)
		dst.keys = storage.Keys
		dst.values = storage.Values
		dst.next = storage.Next
		dst.prev = storage.Prev
		dst.order = storage.Order
	}

	used := c.highwater

	copy(dst.keys, c.keys[:used])
	copy(dst.values, c.values[:used])
	copy(dst.next, c.next[:used])
	copy(dst.prev, c.prev[:used])
	copy(dst.order, c.order[:c.n])

	dst.none = c.none
	dst.n = c.n
	dst.head = c.head
	dst.tail = c.tail
	dst.highwater = c.highwater
	dst.freeHead = c.freeHead
	dst.compare = c.compare
}
