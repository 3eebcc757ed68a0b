package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/calvinalkan/fixedlru/pkg/fixedlru"
	"github.com/calvinalkan/fixedlru/pkg/fixedlru/model"
)

// Pair is the entry type used by the harness.
type Pair = fixedlru.Entry[int, int64]

// Harness holds both sides of a model-vs-real comparison:
//   - the reference model (a plain MRU-first slice)
//   - the real cache with index type I
//
// We always apply the same operation to both sides, then compare:
//  1. the direct operation result, and
//  2. the observable state (Len, iteration orders, Peek of every key).
//
// IMPORTANT: This harness compares PUBLIC API behavior only. Internal layout
// is covered separately by CheckInvariants after every operation.
type Harness[I fixedlru.Index] struct {
	Capacity int
	Model    *model.Cache[int, int64]
	Real     *fixedlru.Cache[int, int64, I]

	// scratch is the CloneInto target for OpClone{ReuseScratch: true}.
	// It always has the cache's capacity and holds stale state.
	scratch *fixedlru.Cache[int, int64, I]

	// evicted collects OnEvict calls made by the real cache during the
	// current operation.
	evicted []Pair
}

// OpResult is what a single operation returned. Fields that an operation
// does not produce stay zero on both sides.
type OpResult struct {
	Value   int64
	Found   bool
	Entry   Pair
	Outcome fixedlru.Outcome
	Len     int

	// Evicted lists pairs pushed out by the operation, in order.
	Evicted []Pair

	// Visited lists the pairs an UpdateAll or UpdateAscend callback saw,
	// with their updated values, in visiting order.
	Visited []Pair
}

// NewHarness constructs a harness for a cache of the given capacity.
func NewHarness[I fixedlru.Index](tb testing.TB, capacity int) *Harness[I] {
	tb.Helper()

	if err := fixedlru.CheckCapacity[I](capacity); err != nil {
		tb.Fatalf("NewHarness: %v", err)
	}

	h := &Harness[I]{
		Capacity: capacity,
		Model:    model.New[int, int64](capacity),
		Real:     fixedlru.New[int, int64, I](capacity),
		scratch:  fixedlru.New[int, int64, I](capacity),
	}
	h.attachEvictHook(h.Real)

	return h
}

func (h *Harness[I]) attachEvictHook(c *fixedlru.Cache[int, int64, I]) {
	c.OnEvict(func(key int, value int64) {
		h.evicted = append(h.evicted, Pair{Key: key, Value: value})
	})
}

// -----------------------------------------------------------------------------
// Apply operations to model + real
// -----------------------------------------------------------------------------

// ApplyModel applies an operation to the model side.
func (h *Harness[I]) ApplyModel(op Operation) OpResult {
	m := h.Model

	switch o := op.(type) {
	case OpGet:
		v, ok := m.Get(o.Key)
		return OpResult{Value: v, Found: ok}

	case OpPeek:
		v, ok := m.Peek(o.Key)
		return OpResult{Value: v, Found: ok}

	case OpContains:
		return OpResult{Found: m.Contains(o.Key)}

	case OpInsert:
		entry, outcome := m.Insert(o.Key, o.Value)

		res := OpResult{Entry: entry, Outcome: outcome}
		if outcome == fixedlru.Evicted {
			res.Evicted = []Pair{entry}
		}

		return res

	case OpUpdate:
		ok := m.Update(o.Key, func(v *int64) { *v += o.Delta })
		return OpResult{Found: ok}

	case OpUpdateQuiet:
		ok := m.UpdateQuiet(o.Key, func(v *int64) { *v += o.Delta })
		return OpResult{Found: ok}

	case OpUpdateEach:
		var visit visitor

		if o.Ascend {
			m.UpdateAscend(visit.fn(o))
		} else {
			m.UpdateAll(visit.fn(o))
		}

		return OpResult{Visited: visit.pairs}

	case OpGetOrInsert:
		v, found, evicted, didEvict := m.GetOrInsert(o.Key, o.Value)

		res := OpResult{Value: v, Found: found}
		if didEvict {
			res.Evicted = []Pair{evicted}
		}

		return res

	case OpRemove:
		v, ok := m.Remove(o.Key)
		return OpResult{Value: v, Found: ok}

	case OpRemoveOldest:
		entry, ok := m.RemoveOldest()
		return OpResult{Entry: entry, Found: ok}

	case OpLen:
		return OpResult{Len: m.Len()}

	case OpNewest:
		if m.Len() == 0 {
			return OpResult{}
		}

		return OpResult{Entry: m.Entries[0], Found: true}

	case OpOldest:
		if m.Len() == 0 {
			return OpResult{}
		}

		return OpResult{Entry: m.Entries[m.Len()-1], Found: true}

	case OpClear:
		m.Clear()
		return OpResult{}

	case OpClone:
		h.Model = m.Clone()
		return OpResult{Len: h.Model.Len()}

	default:
		panic("test harness bug: unknown operation " + op.Name())
	}
}

// ApplyReal applies an operation to the real cache.
func (h *Harness[I]) ApplyReal(op Operation) OpResult {
	h.evicted = h.evicted[:0]
	res := h.applyReal(op)

	if len(h.evicted) > 0 {
		res.Evicted = append([]Pair(nil), h.evicted...)
	}

	return res
}

func (h *Harness[I]) applyReal(op Operation) OpResult {
	c := h.Real

	switch o := op.(type) {
	case OpGet:
		v, ok := c.Get(o.Key)
		return OpResult{Value: v, Found: ok}

	case OpPeek:
		v, ok := c.Peek(o.Key)
		return OpResult{Value: v, Found: ok}

	case OpContains:
		return OpResult{Found: c.Contains(o.Key)}

	case OpInsert:
		entry, outcome := c.Insert(o.Key, o.Value)
		return OpResult{Entry: entry, Outcome: outcome}

	case OpUpdate:
		ok := c.Update(o.Key, func(v *int64) { *v += o.Delta })
		return OpResult{Found: ok}

	case OpUpdateQuiet:
		ok := c.UpdateQuiet(o.Key, func(v *int64) { *v += o.Delta })
		return OpResult{Found: ok}

	case OpUpdateEach:
		var visit visitor

		if o.Ascend {
			c.UpdateAscend(visit.fn(o))
		} else {
			c.UpdateAll(visit.fn(o))
		}

		return OpResult{Visited: visit.pairs}

	case OpGetOrInsert:
		v, found := c.GetOrInsertFunc(o.Key, func(int) int64 { return o.Value })
		return OpResult{Value: v, Found: found}

	case OpRemove:
		v, ok := c.Remove(o.Key)
		return OpResult{Value: v, Found: ok}

	case OpRemoveOldest:
		entry, ok := c.RemoveOldest()
		return OpResult{Entry: entry, Found: ok}

	case OpLen:
		return OpResult{Len: c.Len()}

	case OpNewest:
		entry, ok := c.Newest()
		return OpResult{Entry: entry, Found: ok}

	case OpOldest:
		entry, ok := c.Oldest()
		return OpResult{Entry: entry, Found: ok}

	case OpClear:
		c.Clear()
		return OpResult{}

	case OpClone:
		var next *fixedlru.Cache[int, int64, I]

		if o.ReuseScratch {
			next = h.scratch
			c.CloneInto(next)
			// The old cache becomes the next scratch target, stale contents
			// included.
			h.scratch = c
		} else {
			next = c.Clone()
		}

		h.attachEvictHook(next)
		h.Real = next

		return OpResult{Len: next.Len()}

	default:
		panic("test harness bug: unknown operation " + op.Name())
	}
}

// -----------------------------------------------------------------------------
// Compare operation results
// -----------------------------------------------------------------------------

// AssertOpMatch compares model and real operation results and fails the test
// if they differ.
func AssertOpMatch(tb testing.TB, op Operation, modelResult, realResult OpResult) {
	tb.Helper()

	if diff := cmp.Diff(modelResult, realResult, cmpopts.EquateEmpty()); diff != "" {
		tb.Fatalf("%s: result mismatch (-model +real):\n%s", op.String(), diff)
	}
}

// visitor records what an OpUpdateEach callback sees.
type visitor struct {
	pairs []Pair
}

func (v *visitor) fn(op OpUpdateEach) func(int, *int64) bool {
	return func(key int, value *int64) bool {
		*value += op.Delta
		v.pairs = append(v.pairs, Pair{Key: key, Value: *value})

		return len(v.pairs) < op.Limit
	}
}
