package fixedlru

// Recency list.
//
// head is the most recently used slot, tail the least recently used.
// next points from head towards tail, prev from tail towards head. Both are
// only meaningful for occupied slots; none terminates the list.

// unlink removes slot from the recency list, patching its neighbours and
// head/tail. slot's own links are left stale.
func (c *Cache[K, V, I]) unlink(slot I) {
	prev, next := c.prev[slot], c.next[slot]

	if prev == c.none {
		c.head = next
	} else {
		c.next[prev] = next
	}

	if next == c.none {
		c.tail = prev
	} else {
		c.prev[next] = prev
	}
}

// pushFront links an unlinked slot in as the new head.
func (c *Cache[K, V, I]) pushFront(slot I) {
	c.prev[slot] = c.none
	c.next[slot] = c.head

	if c.head == c.none {
		c.tail = slot
	} else {
		c.prev[c.head] = slot
	}

	c.head = slot
}

// moveToFront makes an occupied slot the head.
func (c *Cache[K, V, I]) moveToFront(slot I) {
	if c.head == slot {
		return
	}

	c.unlink(slot)
	c.pushFront(slot)
}
