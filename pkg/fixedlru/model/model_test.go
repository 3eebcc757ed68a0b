package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/fixedlru/pkg/fixedlru"
	"github.com/calvinalkan/fixedlru/pkg/fixedlru/model"
)

type pair = fixedlru.Entry[string, int]

func Test_Model_Evicts_Oldest_When_Full(t *testing.T) {
	t.Parallel()

	m := model.New[string, int](2)

	_, outcome := m.Insert("a", 1)
	require.Equal(t, fixedlru.Added, outcome)

	_, outcome = m.Insert("b", 2)
	require.Equal(t, fixedlru.Added, outcome)

	got, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, got)

	evicted, outcome := m.Insert("c", 3)
	require.Equal(t, fixedlru.Evicted, outcome)
	assert.Equal(t, pair{Key: "b", Value: 2}, evicted)

	diff := cmp.Diff([]pair{{Key: "c", Value: 3}, {Key: "a", Value: 1}}, m.Recency())
	assert.Empty(t, diff, "recency mismatch")

	diff = cmp.Diff([]pair{{Key: "a", Value: 1}, {Key: "c", Value: 3}}, m.Sorted())
	assert.Empty(t, diff, "sorted mismatch")
}

func Test_Model_Returns_Old_Value_When_Key_Replaced(t *testing.T) {
	t.Parallel()

	m := model.New[string, int](3)
	m.Insert("a", 1)
	m.Insert("b", 2)

	old, outcome := m.Insert("a", 10)
	require.Equal(t, fixedlru.Replaced, outcome)
	assert.Equal(t, pair{Key: "a", Value: 1}, old)
	assert.Equal(t, "a", m.Entries[0].Key, "replaced key should be most recent")
}

func Test_Model_Rejects_Insert_When_Capacity_Zero(t *testing.T) {
	t.Parallel()

	m := model.New[string, int](0)

	entry, outcome := m.Insert("a", 1)
	require.Equal(t, fixedlru.Rejected, outcome)
	assert.Equal(t, pair{Key: "a", Value: 1}, entry)
	assert.True(t, m.IsFull())
	assert.Zero(t, m.Len())

	value, found, _, didEvict := m.GetOrInsert("a", 5)
	assert.Equal(t, 5, value)
	assert.False(t, found)
	assert.False(t, didEvict)
	assert.Zero(t, m.Len())
}

func Test_Model_Does_Not_Reorder_When_Peeked(t *testing.T) {
	t.Parallel()

	m := model.New[string, int](3)
	m.Insert("a", 1)
	m.Insert("b", 2)

	before := m.Recency()

	_, ok := m.Peek("a")
	require.True(t, ok)
	require.True(t, m.Contains("a"))

	assert.Empty(t, cmp.Diff(before, m.Recency()))
}

func Test_Model_Removes_Least_Recent_When_RemoveOldest_Called(t *testing.T) {
	t.Parallel()

	m := model.New[string, int](3)

	_, ok := m.RemoveOldest()
	require.False(t, ok)

	m.Insert("a", 1)
	m.Insert("b", 2)
	require.True(t, m.Update("a", func(v *int) { *v++ }))

	oldest, ok := m.RemoveOldest()
	require.True(t, ok)
	assert.Equal(t, pair{Key: "b", Value: 2}, oldest)

	value, ok := m.Remove("a")
	require.True(t, ok)
	assert.Equal(t, 2, value)
	assert.Zero(t, m.Len())
}

func Test_Clone_Returns_Nil_When_Model_Is_Nil(t *testing.T) {
	t.Parallel()

	var m *model.Cache[string, int]

	assert.Nil(t, m.Clone(), "clone should be nil for a nil model")
}

func Test_Clone_Preserves_Nil_Entries_When_Empty(t *testing.T) {
	t.Parallel()

	m := model.New[string, int](2)
	require.Nil(t, m.Entries, "precondition: fresh model should have nil Entries")

	clone := m.Clone()
	require.NotNil(t, clone)
	assert.Nil(t, clone.Entries, "clone should preserve nil Entries")
	assert.Equal(t, 2, clone.Capacity)
}

func Test_Clone_Is_Independent_When_Original_Mutated(t *testing.T) {
	t.Parallel()

	m := model.New[string, int](2)
	m.Insert("a", 1)

	clone := m.Clone()
	m.Insert("a", 99)
	m.Clear()

	value, ok := clone.Peek("a")
	require.True(t, ok)
	assert.Equal(t, 1, value, "clone mutation should not follow original")
}

func Test_Model_Mutates_Without_Reordering_When_Updated_Quietly(t *testing.T) {
	t.Parallel()

	m := model.New[string, int](3)
	m.Insert("b", 2)
	m.Insert("c", 3)
	m.Insert("a", 1)

	require.True(t, m.UpdateQuiet("c", func(v *int) { *v = 30 }))
	require.False(t, m.UpdateQuiet("zz", func(*int) { t.Error("called on miss") }))

	var order []string

	m.UpdateAscend(func(k string, v *int) bool {
		order = append(order, k)
		*v++

		return k != "b"
	})
	assert.Equal(t, []string{"a", "b"}, order)

	order = nil

	m.UpdateAll(func(k string, _ *int) bool {
		order = append(order, k)

		return true
	})
	assert.Equal(t, []string{"a", "c", "b"}, order)

	diff := cmp.Diff([]pair{{Key: "a", Value: 2}, {Key: "c", Value: 30}, {Key: "b", Value: 3}}, m.Recency())
	assert.Empty(t, diff, "recency mismatch")
}
