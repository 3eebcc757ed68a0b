package main

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/calvinalkan/fixedlru/pkg/fixedlru"
)

// store is the cache as seen by the REPL. The index type is a type
// parameter of fixedlru.Cache, so the REPL talks to whichever instantiation
// the configured width selected through this interface.
type store interface {
	Insert(key, value string) (fixedlru.Entry[string, string], fixedlru.Outcome)
	Get(key string) (string, bool)
	Peek(key string) (string, bool)
	Contains(key string) bool
	Remove(key string) (string, bool)
	RemoveOldest() (fixedlru.Entry[string, string], bool)
	All() fixedlru.Seq[string, string]
	Backward() fixedlru.Seq[string, string]
	Ascend() fixedlru.Seq[string, string]
	Len() int
	Cap() int
	Stats() fixedlru.Stats
	CheckInvariants() error
	Clear()

	// IndexWidth is the slot index width in bits.
	IndexWidth() int
}

type cacheStore[I fixedlru.Index] struct {
	*fixedlru.Cache[string, string, I]

	width int
}

func (s *cacheStore[I]) IndexWidth() int {
	return s.width
}

// narrowestWidth returns the smallest index width that can hold capacity.
func narrowestWidth(capacity int) int {
	switch {
	case capacity <= math.MaxUint8:
		return 8
	case capacity <= math.MaxUint16:
		return 16
	case uint64(capacity) <= math.MaxUint32:
		return 32
	default:
		return 64
	}
}

// newStore builds a cache of the given capacity and index width (0 picks
// the narrowest). Evictions are logged at debug level.
func newStore(capacity, width int, logger *slog.Logger) (store, error) {
	if width == 0 {
		width = narrowestWidth(capacity)
	}

	switch width {
	case 8:
		return makeStore[uint8](capacity, width, logger)
	case 16:
		return makeStore[uint16](capacity, width, logger)
	case 32:
		return makeStore[uint32](capacity, width, logger)
	case 64:
		return makeStore[uint64](capacity, width, logger)
	default:
		return nil, fmt.Errorf("%w: %d (want 8, 16, 32 or 64)", errIndexWidthInvalid, width)
	}
}

func makeStore[I fixedlru.Index](capacity, width int, logger *slog.Logger) (store, error) {
	err := fixedlru.CheckCapacity[I](capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errCapacityInvalid, err)
	}

	cache := fixedlru.New[string, string, I](capacity)
	cache.OnEvict(func(key, value string) {
		logger.Debug("evicted", "key", key, "value", value)
	})

	return &cacheStore[I]{Cache: cache, width: width}, nil
}
