package fixedlru

import (
	"fmt"
	"reflect"
)

// CheckInvariants walks every internal structure and returns an error
// wrapping [ErrCorrupt] that describes the first broken invariant, or nil.
//
// It checks that:
//   - the length is within capacity and the high-water mark
//   - the sorted index holds each live slot once, in strictly ascending key order
//   - the recency list visits exactly the live slots, with consistent back links
//   - the free chain holds exactly the used-but-vacant slots
//   - vacant slots hold zero keys and values
//
// CheckInvariants allocates and runs in O(Cap()). It is meant for tests and
// debugging tools, not for hot paths.
func (c *Cache[K, V, I]) CheckInvariants() error {
	capacity := c.Cap()
	length := int(c.n)
	highwater := int(c.highwater)

	if int(c.none) != capacity {
		return fmt.Errorf("%w: sentinel %d, capacity %d", ErrCorrupt, c.none, capacity)
	}

	if length > capacity || highwater > capacity || length > highwater {
		return fmt.Errorf("%w: len %d, highwater %d, capacity %d", ErrCorrupt, length, highwater, capacity)
	}

	const (
		slotUnused = iota
		slotLive
		slotFree
	)

	state := make([]uint8, capacity)

	for pos := range length {
		slot := c.order[pos]
		if int(slot) >= highwater {
			return fmt.Errorf("%w: order[%d] = %d is not below highwater %d", ErrCorrupt, pos, slot, highwater)
		}

		if state[slot] != slotUnused {
			return fmt.Errorf("%w: slot %d appears twice in order", ErrCorrupt, slot)
		}

		state[slot] = slotLive

		if pos > 0 && c.compare(c.keys[c.order[pos-1]], c.keys[slot]) >= 0 {
			return fmt.Errorf("%w: order not strictly ascending at %d", ErrCorrupt, pos)
		}
	}

	visited := 0
	prev := c.none

	for slot := c.head; slot != c.none; slot = c.next[slot] {
		if visited == length {
			return fmt.Errorf("%w: recency list longer than len %d", ErrCorrupt, length)
		}

		if int(slot) >= capacity || state[slot] != slotLive {
			return fmt.Errorf("%w: recency list reaches non-live slot %d", ErrCorrupt, slot)
		}

		if c.prev[slot] != prev {
			return fmt.Errorf("%w: slot %d has prev %d, want %d", ErrCorrupt, slot, c.prev[slot], prev)
		}

		prev = slot
		visited++
	}

	if visited != length {
		return fmt.Errorf("%w: recency list has %d entries, len %d", ErrCorrupt, visited, length)
	}

	if c.tail != prev {
		return fmt.Errorf("%w: tail %d, list ends at %d", ErrCorrupt, c.tail, prev)
	}

	free := 0

	for slot := c.freeHead; slot != c.none; slot = c.next[slot] {
		if int(slot) >= highwater || state[slot] != slotUnused {
			return fmt.Errorf("%w: free chain reaches slot %d", ErrCorrupt, slot)
		}

		state[slot] = slotFree
		free++
	}

	if free != highwater-length {
		return fmt.Errorf("%w: free chain has %d slots, want %d", ErrCorrupt, free, highwater-length)
	}

	for slot := range capacity {
		if state[slot] == slotLive {
			continue
		}

		if !isZero(&c.keys[slot]) || !isZero(&c.values[slot]) {
			return fmt.Errorf("%w: vacant slot %d is not zeroed", ErrCorrupt, slot)
		}
	}

	return nil
}

func isZero[T any](v *T) bool {
	return reflect.ValueOf(v).Elem().IsZero()
}
