package fixedlru_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/fixedlru/pkg/fixedlru"
)

type entry = fixedlru.Entry[int, string]

func recency[K, V any, I fixedlru.Index](c *fixedlru.Cache[K, V, I]) []fixedlru.Entry[K, V] {
	var out []fixedlru.Entry[K, V]
	for k, v := range c.All() {
		out = append(out, fixedlru.Entry[K, V]{Key: k, Value: v})
	}

	return out
}

func keyOrder[K, V any, I fixedlru.Index](c *fixedlru.Cache[K, V, I]) []K {
	var out []K
	for k := range c.Ascend() {
		out = append(out, k)
	}

	return out
}

func mustCheck[K, V any, I fixedlru.Index](t *testing.T, c *fixedlru.Cache[K, V, I]) {
	t.Helper()

	require.NoError(t, c.CheckInvariants())
}

func Test_Insert_Evicts_Least_Recently_Used_When_Full(t *testing.T) {
	t.Parallel()

	c := fixedlru.New[int, string, uint8](2)

	_, outcome := c.Insert(1, "a")
	require.Equal(t, fixedlru.Added, outcome)

	_, outcome = c.Insert(2, "b")
	require.Equal(t, fixedlru.Added, outcome)

	got, ok := c.Get(1)
	require.True(t, ok)
	require.Equal(t, "a", got)

	evicted, outcome := c.Insert(3, "c")
	require.Equal(t, fixedlru.Evicted, outcome)
	assert.Equal(t, entry{Key: 2, Value: "b"}, evicted)

	diff := cmp.Diff([]entry{{3, "c"}, {1, "a"}}, recency(c))
	assert.Empty(t, diff, "recency order mismatch")
	assert.Equal(t, []int{1, 3}, keyOrder(c))
	assert.False(t, c.Contains(2))
	mustCheck(t, c)
}

func Test_Get_Returns_Value_And_Promotes_When_Inserted(t *testing.T) {
	t.Parallel()

	c := fixedlru.New[int, string, uint16](4)
	c.Insert(10, "x")
	c.Insert(20, "y")
	c.Insert(30, "z")

	c.Insert(15, "k")

	got, ok := c.Get(15)
	require.True(t, ok)
	assert.Equal(t, "k", got)

	first, ok := c.Newest()
	require.True(t, ok)
	assert.Equal(t, entry{Key: 15, Value: "k"}, first)

	_, ok = c.Get(20)
	require.True(t, ok)

	first, _ = c.Newest()
	assert.Equal(t, 20, first.Key, "Get should promote to most recent")
	mustCheck(t, c)
}

func Test_Insert_Returns_Previous_Value_When_Key_Resident(t *testing.T) {
	t.Parallel()

	c := fixedlru.New[int, string, uint8](3)
	c.Insert(1, "a")
	c.Insert(2, "b")
	c.Insert(3, "c")

	old, outcome := c.Insert(1, "A")
	require.Equal(t, fixedlru.Replaced, outcome)
	assert.Equal(t, entry{Key: 1, Value: "a"}, old)
	assert.Equal(t, 3, c.Len(), "overwrite must not change length")

	diff := cmp.Diff([]entry{{1, "A"}, {3, "c"}, {2, "b"}}, recency(c))
	assert.Empty(t, diff, "overwrite should store new value and promote")
	mustCheck(t, c)
}

func Test_Peek_And_Contains_Do_Not_Reorder_When_Called_Repeatedly(t *testing.T) {
	t.Parallel()

	c := fixedlru.New[int, string, uint8](4)
	for i, v := range []string{"a", "b", "c"} {
		c.Insert(i, v)
	}

	before := recency(c)

	for range 3 {
		for key := range 5 {
			c.Peek(key)
			c.Contains(key)
		}
	}

	assert.Empty(t, cmp.Diff(before, recency(c)))

	got, ok := c.Peek(0)
	require.True(t, ok)
	assert.Equal(t, "a", got)

	_, ok = c.Peek(99)
	assert.False(t, ok)
}

func Test_Cache_Refills_To_Capacity_When_Cleared(t *testing.T) {
	t.Parallel()

	const capacity = 8

	c := fixedlru.New[int, string, uint8](capacity)
	for i := range capacity {
		c.Insert(i, "v")
	}

	c.Remove(3)
	c.Clear()

	require.Equal(t, 0, c.Len())
	require.True(t, c.IsEmpty())
	require.Empty(t, recency(c))
	mustCheck(t, c)

	for i := range capacity {
		_, outcome := c.Insert(100+i, "w")
		require.Equal(t, fixedlru.Added, outcome, "slot %d should be reusable after Clear", i)
	}

	require.True(t, c.IsFull())
	assert.Equal(t, capacity, c.Stats().Highwater)

	_, outcome := c.Insert(999, "x")
	assert.Equal(t, fixedlru.Evicted, outcome)
	mustCheck(t, c)
}

func Test_Remove_Returns_Value_And_Frees_Slot_When_Key_Resident(t *testing.T) {
	t.Parallel()

	c := fixedlru.New[int, string, uint8](4)
	c.Insert(1, "a")
	c.Insert(2, "b")
	c.Insert(3, "c")

	value, ok := c.Remove(2)
	require.True(t, ok)
	assert.Equal(t, "b", value)

	_, ok = c.Remove(2)
	assert.False(t, ok, "second remove should miss")

	stats := c.Stats()
	assert.Equal(t, 2, stats.Len)
	assert.Equal(t, 3, stats.Highwater)
	assert.Equal(t, 1, stats.FreeChain)
	mustCheck(t, c)

	// The hole is reused before the untouched tail slot.
	c.Insert(4, "d")

	stats = c.Stats()
	assert.Equal(t, 3, stats.Highwater)
	assert.Equal(t, 0, stats.FreeChain)
	assert.Equal(t, []int{1, 3, 4}, keyOrder(c))
	mustCheck(t, c)
}

func Test_RemoveOldest_Removes_Tail_When_Not_Empty(t *testing.T) {
	t.Parallel()

	c := fixedlru.New[int, string, uint8](3)

	_, ok := c.RemoveOldest()
	require.False(t, ok)

	c.Insert(1, "a")
	c.Insert(2, "b")
	c.Insert(3, "c")
	c.Get(1)

	oldest, ok := c.Oldest()
	require.True(t, ok)
	assert.Equal(t, entry{Key: 2, Value: "b"}, oldest)

	removed, ok := c.RemoveOldest()
	require.True(t, ok)
	assert.Equal(t, oldest, removed)
	assert.Equal(t, []entry{{1, "a"}, {3, "c"}}, recency(c))
	mustCheck(t, c)
}

func Test_Update_Mutates_In_Place_And_Promotes_When_Key_Resident(t *testing.T) {
	t.Parallel()

	c := fixedlru.New[string, int, uint8](3)
	c.Insert("a", 1)
	c.Insert("b", 2)

	ok := c.Update("a", func(v *int) { *v += 10 })
	require.True(t, ok)

	newest, _ := c.Newest()
	assert.Equal(t, fixedlru.Entry[string, int]{Key: "a", Value: 11}, newest)

	called := false
	ok = c.Update("zz", func(*int) { called = true })
	assert.False(t, ok)
	assert.False(t, called, "fn must not run on a miss")
}

func Test_UpdateQuiet_Mutates_In_Place_Without_Promoting_When_Key_Resident(t *testing.T) {
	t.Parallel()

	c := fixedlru.New[string, int, uint8](2)
	c.Insert("a", 1)
	c.Insert("b", 2)

	ok := c.UpdateQuiet("a", func(v *int) { *v *= 7 })
	require.True(t, ok)

	diff := cmp.Diff([]fixedlru.Entry[string, int]{{"b", 2}, {"a", 7}}, recency(c))
	assert.Empty(t, diff, "recency order mismatch")

	// "a" is still the eviction candidate.
	evicted, outcome := c.Insert("c", 3)
	require.Equal(t, fixedlru.Evicted, outcome)
	assert.Equal(t, fixedlru.Entry[string, int]{Key: "a", Value: 7}, evicted)

	called := false
	ok = c.UpdateQuiet("zz", func(*int) { called = true })
	assert.False(t, ok)
	assert.False(t, called, "fn must not run on a miss")
	mustCheck(t, c)
}

func Test_UpdateAll_And_UpdateAscend_Mutate_Values_Without_Reordering(t *testing.T) {
	t.Parallel()

	c := fixedlru.New[int, string, uint8](4)
	c.Insert(3, "c")
	c.Insert(1, "a")
	c.Insert(2, "b")

	var visited []int

	c.UpdateAll(func(k int, v *string) bool {
		visited = append(visited, k)
		*v += "!"

		return true
	})
	assert.Equal(t, []int{2, 1, 3}, visited)

	visited = nil

	c.UpdateAscend(func(k int, v *string) bool {
		visited = append(visited, k)
		*v = strings.ToUpper(*v)

		return true
	})
	assert.Equal(t, []int{1, 2, 3}, visited)

	diff := cmp.Diff([]entry{{2, "B!"}, {1, "A!"}, {3, "C!"}}, recency(c))
	assert.Empty(t, diff, "recency order mismatch")
	assert.Equal(t, []int{1, 2, 3}, keyOrder(c))
	mustCheck(t, c)
}

func Test_UpdateAll_Stops_When_Callback_Returns_False(t *testing.T) {
	t.Parallel()

	c := fixedlru.New[int, int, uint8](4)
	for k := range 4 {
		c.Insert(k, 0)
	}

	calls := 0
	c.UpdateAll(func(_ int, v *int) bool {
		calls++
		*v = 1

		return calls < 2
	})
	assert.Equal(t, 2, calls)

	calls = 0
	c.UpdateAscend(func(int, *int) bool {
		calls++

		return false
	})
	assert.Equal(t, 1, calls)

	// Newest two (3, 2) were touched, the rest not.
	diff := cmp.Diff([]fixedlru.Entry[int, int]{{3, 1}, {2, 1}, {1, 0}, {0, 0}}, recency(c))
	assert.Empty(t, diff)

	var empty fixedlru.Cache[int, int, uint8]
	fail := func(int, *int) bool {
		t.Error("callback ran on an empty cache")

		return true
	}

	empty.UpdateAll(fail)
	empty.UpdateAscend(fail)
}

func Test_GetOrInsertFunc_Computes_Once_When_Key_Absent(t *testing.T) {
	t.Parallel()

	c := fixedlru.New[string, int, uint8](2)

	var evicted []string

	c.OnEvict(func(key string, _ int) { evicted = append(evicted, key) })

	calls := 0
	compute := func(key string) int {
		calls++
		return len(key)
	}

	value, found := c.GetOrInsertFunc("abc", compute)
	require.False(t, found)
	assert.Equal(t, 3, value)

	value, found = c.GetOrInsertFunc("abc", compute)
	require.True(t, found)
	assert.Equal(t, 3, value)
	assert.Equal(t, 1, calls)

	c.GetOrInsertFunc("de", compute)
	c.GetOrInsertFunc("f", compute)

	assert.Equal(t, []string{"abc"}, evicted)
	assert.Equal(t, 3, calls)
	mustCheck(t, c)
}

func Test_OnEvict_Fires_Only_When_Insert_Evicts(t *testing.T) {
	t.Parallel()

	c := fixedlru.New[int, string, uint8](2)

	var evicted []entry

	c.OnEvict(func(key int, value string) {
		evicted = append(evicted, entry{Key: key, Value: value})
	})

	c.Insert(1, "a")
	c.Insert(2, "b")
	c.Insert(2, "B")
	c.Remove(1)
	c.Insert(3, "c")
	c.RemoveOldest()
	c.Insert(4, "d")
	c.Insert(5, "e")
	c.Clear()

	assert.Equal(t, []entry{{3, "c"}}, evicted)

	c.OnEvict(nil)
	c.Insert(6, "f")
	c.Insert(7, "g")
	c.Insert(8, "h")
	assert.Len(t, evicted, 1, "unregistered callback must not fire")
}

func Test_Zero_Capacity_Cache_Rejects_Inserts_When_Constructed(t *testing.T) {
	t.Parallel()

	for name, c := range map[string]*fixedlru.Cache[int, string, uint8]{
		"New":       fixedlru.New[int, string, uint8](0),
		"ZeroValue": {},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.True(t, c.IsEmpty())
			assert.True(t, c.IsFull())
			assert.Equal(t, 0, c.Cap())

			got, outcome := c.Insert(1, "a")
			assert.Equal(t, fixedlru.Rejected, outcome)
			assert.Equal(t, entry{Key: 1, Value: "a"}, got)

			value, found := c.GetOrInsertFunc(2, func(int) string { return "b" })
			assert.Equal(t, "b", value)
			assert.False(t, found)

			assert.Equal(t, 0, c.Len())
			assert.False(t, c.Contains(1))

			_, ok := c.RemoveOldest()
			assert.False(t, ok)

			c.Clear()
			assert.Empty(t, recency(c))

			cursor := c.Iter()
			_, _, ok = cursor.Next()
			assert.False(t, ok)
			mustCheck(t, c)
		})
	}
}

func Test_Insert_Keeps_Key_Order_When_Evicting_Across_Positions(t *testing.T) {
	t.Parallel()

	// The evicted key sorts before, after or next to the new key.
	tests := []struct {
		name   string
		keys   []int
		insert int
		want   []int
	}{
		{"EvictedBeforeInsertPos", []int{1, 5, 9}, 7, []int{5, 7, 9}},
		{"EvictedAfterInsertPos", []int{9, 1, 5}, 3, []int{1, 3, 5}},
		{"EvictedAdjacentToInsertPos", []int{4, 1, 9}, 5, []int{1, 5, 9}},
		{"SmallestIntoSingleSlot", []int{7}, 2, []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := fixedlru.New[int, string, uint8](len(tt.keys))
			for _, key := range tt.keys {
				c.Insert(key, "v")
			}

			evicted, outcome := c.Insert(tt.insert, "new")
			require.Equal(t, fixedlru.Evicted, outcome)
			assert.Equal(t, tt.keys[0], evicted.Key)
			assert.Equal(t, tt.want, keyOrder(c))
			mustCheck(t, c)
		})
	}
}

func Test_NewFunc_Orders_Keys_With_Comparator_When_Provided(t *testing.T) {
	t.Parallel()

	type point struct{ X, Y int }

	byXThenY := func(a, b point) int {
		if a.X != b.X {
			return a.X - b.X
		}

		return a.Y - b.Y
	}

	c := fixedlru.NewFunc[point, string, uint8](4, byXThenY)
	c.Insert(point{2, 1}, "c")
	c.Insert(point{1, 9}, "b")
	c.Insert(point{1, 2}, "a")

	var got []string
	for _, v := range c.Ascend() {
		got = append(got, v)
	}

	assert.Equal(t, []string{"a", "b", "c"}, got)

	value, ok := c.Get(point{1, 9})
	require.True(t, ok)
	assert.Equal(t, "b", value)
	mustCheck(t, c)
}

func Test_Remove_Zeroes_Slot_When_Value_Holds_Pointer(t *testing.T) {
	t.Parallel()

	c := fixedlru.New[int, *[64]byte, uint8](2)
	c.Insert(1, new([64]byte))
	c.Insert(2, new([64]byte))

	c.Remove(1)
	c.Insert(3, new([64]byte))
	c.Insert(4, new([64]byte)) // evicts 2

	// CheckInvariants verifies every vacant slot is zero.
	c.Remove(3)
	mustCheck(t, c)

	c.Clear()
	mustCheck(t, c)
}
