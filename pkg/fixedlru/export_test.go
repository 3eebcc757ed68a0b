package fixedlru

// Export internals for corruption tests.
// This file is only compiled during tests.

// SwapOrderForTesting swaps two positions of the sorted index.
func (c *Cache[K, V, I]) SwapOrderForTesting(i, j int) {
	c.order[i], c.order[j] = c.order[j], c.order[i]
}

// SetTailForTesting overwrites the tail pointer.
func (c *Cache[K, V, I]) SetTailForTesting(slot I) {
	c.tail = slot
}

// SetPrevForTesting overwrites the back link of slot.
func (c *Cache[K, V, I]) SetPrevForTesting(slot, prev I) {
	c.prev[slot] = prev
}

// SetFreeHeadForTesting overwrites the head of the free chain.
func (c *Cache[K, V, I]) SetFreeHeadForTesting(slot I) {
	c.freeHead = slot
}

// SetKeyForTesting writes key into slot without touching any index.
func (c *Cache[K, V, I]) SetKeyForTesting(slot I, key K) {
	c.keys[slot] = key
}

// SetLenForTesting overwrites the length.
func (c *Cache[K, V, I]) SetLenForTesting(n I) {
	c.n = n
}
