package fixedlru

import "fmt"

// Storage holds the backing arrays of a cache, one element per slot.
//
// A Storage can be allocated with [MakeStorage] or assembled by the caller
// from memory it already owns (for example sub-slices of one large arena
// shared by many caches). [Cache.InitWithStorage] adopts the arrays without
// copying them; the caller must not touch them afterwards.
//
// All five arrays must have the same length, which becomes the capacity.
type Storage[K, V any, I Index] struct {
	Keys   []K
	Values []V

	// Next and Prev encode the recency list. Next also threads the chain of
	// free slots.
	Next []I
	Prev []I

	// Order holds slot indices in ascending key order.
	Order []I
}

// MakeStorage allocates zeroed storage for capacity slots.
//
// Panics if I cannot index capacity slots (see [CheckCapacity]).
func MakeStorage[K, V any, I Index](capacity int) Storage[K, V, I] {
	mustCheckCapacity[I](capacity)

	return Storage[K, V, I]{
		Keys:   make([]K, capacity),
		Values: make([]V, capacity),
		Next:   make([]I, capacity),
		Prev:   make([]I, capacity),
		Order:  make([]I, capacity),
	}
}

// Cap returns the number of slots.
func (s Storage[K, V, I]) Cap() int {
	return len(s.Keys)
}

func (s Storage[K, V, I]) validate() error {
	capacity := len(s.Keys)

	if len(s.Values) != capacity || len(s.Next) != capacity || len(s.Prev) != capacity || len(s.Order) != capacity {
		return fmt.Errorf("%w: lengths keys=%d values=%d next=%d prev=%d order=%d",
			ErrInvalidStorage, len(s.Keys), len(s.Values), len(s.Next), len(s.Prev), len(s.Order))
	}

	return CheckCapacity[I](capacity)
}
