package fixedlru

import (
	"errors"
	"fmt"
)

// Sentinel errors returned (or panicked with) by fixedlru.
//
// Callers should use [errors.Is] to check error types:
//
//	_, err := fixedlru.FromEntries[string, int, uint8](4, entries)
//	if errors.Is(err, fixedlru.ErrDuplicateKey) {
//	    // fix the input
//	}
var (
	// ErrDuplicateKey indicates bulk construction input contained the same
	// key twice. The returned error is a [*DuplicateKeyError].
	//
	// No cache is produced.
	ErrDuplicateKey = errors.New("fixedlru: duplicate key")

	// ErrIndexWidth indicates the index type cannot represent the capacity.
	//
	// This is a programming error. Constructors panic with it; use
	// [CheckCapacity] to validate capacities that come from configuration.
	ErrIndexWidth = errors.New("fixedlru: index type too narrow for capacity")

	// ErrInvalidCapacity indicates a negative capacity.
	//
	// This is a programming error.
	ErrInvalidCapacity = errors.New("fixedlru: invalid capacity")

	// ErrInvalidStorage indicates a [Storage] whose arrays disagree in length.
	//
	// This is a programming error.
	ErrInvalidStorage = errors.New("fixedlru: invalid storage")

	// ErrCorrupt indicates [Cache.CheckInvariants] found a broken invariant.
	//
	// The only way to get here is unsynchronized concurrent use of a cache.
	ErrCorrupt = errors.New("fixedlru: corrupt")
)

// DuplicateKeyError reports the first duplicate key found during bulk
// construction. It matches [ErrDuplicateKey] with [errors.Is].
type DuplicateKeyError[K any] struct {
	Key K
}

func (e *DuplicateKeyError[K]) Error() string {
	return fmt.Sprintf("%v: %v", ErrDuplicateKey, e.Key)
}

func (e *DuplicateKeyError[K]) Unwrap() error {
	return ErrDuplicateKey
}
