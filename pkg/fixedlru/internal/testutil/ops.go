package testutil

import "fmt"

// Operation is a single public-API call we apply to both the model and the
// real cache.
type Operation interface {
	Name() string
	String() string
}

// OpGet represents a Get(key) call.
type OpGet struct {
	Key int
}

// Name returns the operation name.
func (OpGet) Name() string { return "Get" }
func (op OpGet) String() string {
	return fmt.Sprintf("Get(%d)", op.Key)
}

// OpPeek represents a Peek(key) call.
type OpPeek struct {
	Key int
}

// Name returns the operation name.
func (OpPeek) Name() string { return "Peek" }
func (op OpPeek) String() string {
	return fmt.Sprintf("Peek(%d)", op.Key)
}

// OpContains represents a Contains(key) call.
type OpContains struct {
	Key int
}

// Name returns the operation name.
func (OpContains) Name() string { return "Contains" }
func (op OpContains) String() string {
	return fmt.Sprintf("Contains(%d)", op.Key)
}

// OpInsert represents an Insert(key, value) call.
type OpInsert struct {
	Key   int
	Value int64
}

// Name returns the operation name.
func (OpInsert) Name() string { return "Insert" }
func (op OpInsert) String() string {
	return fmt.Sprintf("Insert(%d, %d)", op.Key, op.Value)
}

// OpUpdate represents Update(key, func(v) { *v += Delta }).
type OpUpdate struct {
	Key   int
	Delta int64
}

// Name returns the operation name.
func (OpUpdate) Name() string { return "Update" }
func (op OpUpdate) String() string {
	return fmt.Sprintf("Update(%d, +%d)", op.Key, op.Delta)
}

// OpUpdateQuiet represents UpdateQuiet(key, func(v) { *v += Delta }).
type OpUpdateQuiet struct {
	Key   int
	Delta int64
}

// Name returns the operation name.
func (OpUpdateQuiet) Name() string { return "UpdateQuiet" }
func (op OpUpdateQuiet) String() string {
	return fmt.Sprintf("UpdateQuiet(%d, +%d)", op.Key, op.Delta)
}

// OpUpdateEach walks the cache with UpdateAll (or UpdateAscend when Ascend
// is set), adding Delta to every visited value. The callback stops the walk
// once Limit entries were visited; at least one entry is always visited.
type OpUpdateEach struct {
	Ascend bool
	Limit  int
	Delta  int64
}

// Name returns the operation name.
func (op OpUpdateEach) Name() string {
	if op.Ascend {
		return "UpdateAscend"
	}

	return "UpdateAll"
}

func (op OpUpdateEach) String() string {
	return fmt.Sprintf("%s(limit=%d, +%d)", op.Name(), op.Limit, op.Delta)
}

// OpGetOrInsert represents GetOrInsertFunc(key, func() Value).
type OpGetOrInsert struct {
	Key   int
	Value int64
}

// Name returns the operation name.
func (OpGetOrInsert) Name() string { return "GetOrInsert" }
func (op OpGetOrInsert) String() string {
	return fmt.Sprintf("GetOrInsert(%d, %d)", op.Key, op.Value)
}

// OpRemove represents a Remove(key) call.
type OpRemove struct {
	Key int
}

// Name returns the operation name.
func (OpRemove) Name() string { return "Remove" }
func (op OpRemove) String() string {
	return fmt.Sprintf("Remove(%d)", op.Key)
}

// OpRemoveOldest represents a RemoveOldest() call.
type OpRemoveOldest struct{}

// Name returns the operation name.
func (OpRemoveOldest) Name() string   { return "RemoveOldest" }
func (OpRemoveOldest) String() string { return "RemoveOldest()" }

// OpLen represents a Len() call.
type OpLen struct{}

// Name returns the operation name.
func (OpLen) Name() string   { return "Len" }
func (OpLen) String() string { return "Len()" }

// OpNewest represents a Newest() call.
type OpNewest struct{}

// Name returns the operation name.
func (OpNewest) Name() string   { return "Newest" }
func (OpNewest) String() string { return "Newest()" }

// OpOldest represents an Oldest() call.
type OpOldest struct{}

// Name returns the operation name.
func (OpOldest) Name() string   { return "Oldest" }
func (OpOldest) String() string { return "Oldest()" }

// OpClear represents a Clear() call.
type OpClear struct{}

// Name returns the operation name.
func (OpClear) Name() string   { return "Clear" }
func (OpClear) String() string { return "Clear()" }

// OpClone replaces the real cache with a copy of itself.
//
// ReuseScratch selects CloneInto a cache that already has the same capacity
// (and stale contents) instead of Clone. Either way every later operation
// runs against the copy, so a clone that loses or shares state shows up as
// a mismatch.
type OpClone struct {
	ReuseScratch bool
}

// Name returns the operation name.
func (OpClone) Name() string { return "Clone" }
func (op OpClone) String() string {
	return fmt.Sprintf("Clone(reuse=%v)", op.ReuseScratch)
}
