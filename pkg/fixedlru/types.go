package fixedlru

// Index is the set of integer types usable for slot indices.
type Index interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Entry is a key/value pair as observed by callers.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// Outcome tells what [Cache.Insert] did.
type Outcome uint8

const (
	// Added means the key was new and a free slot took it.
	Added Outcome = iota

	// Replaced means the key was resident; the returned entry holds the
	// previous value.
	Replaced

	// Evicted means the key was new, the cache was full, and the returned
	// entry is the least-recently-used pair that made room.
	Evicted

	// Rejected means the cache has zero capacity. Nothing was stored and the
	// returned entry is the pair that was passed in.
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case Replaced:
		return "replaced"
	case Evicted:
		return "evicted"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Seq is the iterator type returned by [Cache.All], [Cache.Backward],
// [Cache.Ascend] and [Cache.Descend].
//
// It matches the shape of iter.Seq2[K, V], so it works with range and with
// maps/slices helpers after a conversion:
//
//	for key, value := range cache.All() { ... }
type Seq[K, V any] func(yield func(K, V) bool)

// Seq1 is the single-value counterpart of [Seq] (shape of iter.Seq[T]).
type Seq1[T any] func(yield func(T) bool)

// Stats is a point-in-time summary of a cache's slot usage.
type Stats struct {
	// Len is the number of resident entries.
	Len int

	// Cap is the fixed capacity.
	Cap int

	// Highwater is the number of slots that have ever held an entry since
	// construction or the last Clear.
	Highwater int

	// FreeChain is the number of previously used slots waiting for reuse.
	FreeChain int

	// Footprint is the size in bytes of the backing arrays.
	Footprint uintptr
}
