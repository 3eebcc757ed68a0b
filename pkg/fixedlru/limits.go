package fixedlru

import (
	"fmt"
	"math"
	"unsafe"
)

// Capacity limits.
//
// The capacity doubles as the "no slot" sentinel in the recency list, so the
// index type must be able to represent the capacity itself, not just
// capacity-1. Slices are indexed by int, so capacity is also capped by
// math.MaxInt on 32-bit platforms.
func maxCapacity[I Index]() uint64 {
	maxIndex := uint64(^I(0))
	if maxIndex > math.MaxInt {
		return math.MaxInt
	}

	return maxIndex
}

// CheckCapacity reports whether a cache with the given capacity can be built
// with index type I. It returns nil, or an error wrapping
// [ErrInvalidCapacity] or [ErrIndexWidth].
//
// Constructors panic on the same conditions. CheckCapacity exists for
// callers that take the capacity from configuration.
func CheckCapacity[I Index](capacity int) error {
	if capacity < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	if uint64(capacity) > maxCapacity[I]() {
		return fmt.Errorf("%w: capacity %d exceeds %d", ErrIndexWidth, capacity, maxCapacity[I]())
	}

	return nil
}

func mustCheckCapacity[I Index](capacity int) {
	err := CheckCapacity[I](capacity)
	if err != nil {
		panic(err)
	}
}

// Footprint returns the size in bytes of the backing arrays of a cache with
// the given capacity. It does not include memory that keys or values point
// to, nor the fixed-size Cache header.
func Footprint[K, V any, I Index](capacity int) uintptr {
	if capacity <= 0 {
		return 0
	}

	var (
		key   K
		value V
		index I
	)

	// keys + values + next + prev + order
	perSlot := unsafe.Sizeof(key) + unsafe.Sizeof(value) + 3*unsafe.Sizeof(index)

	return uintptr(capacity) * perSlot
}
