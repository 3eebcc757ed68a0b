package fixedlru

// Sorted key index.
//
// order[0:n] lists occupied slots in strictly ascending key order. Lookups
// binary-search it; inserts and removes shift the tail of it with copy.

// search returns the position of key in order[0:n] and whether it is there.
// When it is not, pos is where it would have to be inserted.
func (c *Cache[K, V, I]) search(key K) (int, bool) {
	lo, hi := 0, int(c.n)

	for lo < hi {
		mid := int(uint(lo+hi) >> 1)

		r := c.compare(c.keys[c.order[mid]], key)

		switch {
		case r < 0:
			lo = mid + 1
		case r > 0:
			hi = mid
		default:
			return mid, true
		}
	}

	return lo, false
}

// indexInsert puts slot at pos, shifting order[pos:length] right by one.
// Requires length < Cap().
func (c *Cache[K, V, I]) indexInsert(pos int, slot I, length int) {
	copy(c.order[pos+1:length+1], c.order[pos:length])
	c.order[pos] = slot
}

// indexRemove drops order[pos], shifting order[pos+1:length] left by one.
func (c *Cache[K, V, I]) indexRemove(pos int, length int) {
	copy(c.order[pos:length-1], c.order[pos+1:length])
}
