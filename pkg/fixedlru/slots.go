package fixedlru

// Free-slot tracking.
//
// Slots are handed out from two places: the free chain, a singly linked list
// threaded through next holding slots vacated by Remove, and the high-water
// mark, below which every slot has been used at least once. A fresh or
// cleared cache has an empty chain and highwater 0, so neither construction
// nor Clear has to build a free list.
//
// Eviction does not go through here: the evicted slot is reused directly.

// allocSlot returns an unused slot. Requires n < Cap().
func (c *Cache[K, V, I]) allocSlot() I {
	if c.freeHead != c.none {
		slot := c.freeHead
		c.freeHead = c.next[slot]

		return slot
	}

	slot := c.highwater
	c.highwater++

	return slot
}

// releaseSlot zeroes a slot that was just unlinked and pushes it onto the
// free chain. Zeroing drops references so the garbage collector can reclaim
// whatever the key and value pointed to.
func (c *Cache[K, V, I]) releaseSlot(slot I) {
	var (
		zeroKey   K
		zeroValue V
	)

	c.keys[slot] = zeroKey
	c.values[slot] = zeroValue
	c.next[slot] = c.freeHead
	c.freeHead = slot
}

// resetSlots marks every slot unused.
func (c *Cache[K, V, I]) resetSlots() {
	clear(c.keys[:c.highwater])
	clear(c.values[:c.highwater])

	c.highwater = 0
	c.freeHead = c.none
}
