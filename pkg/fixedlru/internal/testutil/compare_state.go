// compare_state.go provides helpers for comparing model vs real cache state.

package testutil

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/calvinalkan/fixedlru/pkg/fixedlru"
)

// CompareState performs an exhaustive comparison of all observable state.
//
// Checks (intentionally redundant for thoroughness):
//   - Len, IsEmpty and IsFull match
//   - All() matches the model's recency order
//   - Backward() and Cursor.NextBack() are exact reverses of All()
//   - Keys() matches the keys of All()
//   - Ascend() matches the model's key order, Descend() its reverse
//   - a Cursor alternating Next/NextBack yields every entry exactly once
//   - Peek() of every model key returns the model's value
//   - Stats agree with Len and Cap
//
// None of these may change recency order, which the next operation would
// expose.
func CompareState[I fixedlru.Index](tb testing.TB, h *Harness[I]) {
	tb.Helper()

	compareStateLight(tb, h)

	rc := h.Real
	wantRecency := h.Model.Recency()

	var gotBackward []Pair
	for k, v := range rc.Backward() {
		gotBackward = append(gotBackward, Pair{Key: k, Value: v})
	}

	slices.Reverse(gotBackward)
	assertEntries(tb, "Backward() reversed", wantRecency, gotBackward)

	var gotKeys []int
	for k := range rc.Keys() {
		gotKeys = append(gotKeys, k)
	}

	wantKeys := make([]int, 0, len(wantRecency))
	for _, e := range wantRecency {
		wantKeys = append(wantKeys, e.Key)
	}

	if diff := cmp.Diff(wantKeys, gotKeys, cmpopts.EquateEmpty()); diff != "" {
		tb.Fatalf("Keys() mismatch (-model +real):\n%s", diff)
	}

	wantSorted := h.Model.Sorted()

	var gotAscend []Pair
	for k, v := range rc.Ascend() {
		gotAscend = append(gotAscend, Pair{Key: k, Value: v})
	}

	assertEntries(tb, "Ascend()", wantSorted, gotAscend)

	var gotDescend []Pair
	for k, v := range rc.Descend() {
		gotDescend = append(gotDescend, Pair{Key: k, Value: v})
	}

	slices.Reverse(gotDescend)
	assertEntries(tb, "Descend() reversed", wantSorted, gotDescend)

	// Interleave both ends of one cursor; stitch the halves back together.
	cursor := rc.Iter()

	var front, back []Pair

	for step := 0; ; step++ {
		if cursor.Len() != len(wantRecency)-len(front)-len(back) {
			tb.Fatalf("Cursor.Len()=%d after %d front and %d back, total %d",
				cursor.Len(), len(front), len(back), len(wantRecency))
		}

		var (
			k  int
			v  int64
			ok bool
		)

		if step%2 == 0 {
			k, v, ok = cursor.Next()
			if ok {
				front = append(front, Pair{Key: k, Value: v})
			}
		} else {
			k, v, ok = cursor.NextBack()
			if ok {
				back = append(back, Pair{Key: k, Value: v})
			}
		}

		if !ok {
			break
		}
	}

	if _, _, ok := cursor.Next(); ok {
		tb.Fatalf("Cursor.Next() yielded after exhaustion")
	}

	if _, _, ok := cursor.NextBack(); ok {
		tb.Fatalf("Cursor.NextBack() yielded after exhaustion")
	}

	slices.Reverse(back)
	assertEntries(tb, "Cursor Next/NextBack", wantRecency, append(front, back...))

	for _, e := range wantRecency {
		got, ok := rc.Peek(e.Key)
		if !ok || got != e.Value {
			tb.Fatalf("Peek(%d)=(%d, %v), model has %d", e.Key, got, ok, e.Value)
		}
	}

	stats := rc.Stats()
	if stats.Len != len(wantRecency) || stats.Cap != h.Capacity {
		tb.Fatalf("Stats()=%+v, want Len=%d Cap=%d", stats, len(wantRecency), h.Capacity)
	}

	if stats.Highwater < stats.Len || stats.FreeChain != stats.Highwater-stats.Len {
		tb.Fatalf("Stats()=%+v: inconsistent slot counts", stats)
	}
}

// compareStateLight checks length and recency order, plus internal
// invariants.
func compareStateLight[I fixedlru.Index](tb testing.TB, h *Harness[I]) {
	tb.Helper()

	rc := h.Real
	n := h.Model.Len()

	if rc.Len() != n {
		tb.Fatalf("Len() mismatch\nmodel=%d\nreal=%d", n, rc.Len())
	}

	if rc.Cap() != h.Capacity {
		tb.Fatalf("Cap()=%d, want %d", rc.Cap(), h.Capacity)
	}

	if rc.IsEmpty() != (n == 0) {
		tb.Fatalf("IsEmpty()=%v with len %d", rc.IsEmpty(), n)
	}

	if rc.IsFull() != h.Model.IsFull() {
		tb.Fatalf("IsFull() mismatch\nmodel=%v\nreal=%v", h.Model.IsFull(), rc.IsFull())
	}

	var got []Pair
	for k, v := range rc.All() {
		got = append(got, Pair{Key: k, Value: v})
	}

	assertEntries(tb, "All()", h.Model.Recency(), got)

	if err := rc.CheckInvariants(); err != nil {
		tb.Fatalf("CheckInvariants: %v", err)
	}
}

func assertEntries(tb testing.TB, label string, want, got []Pair) {
	tb.Helper()

	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		tb.Fatalf("%s mismatch (-model +real):\n%s", label, diff)
	}
}
