// Package model provides a deliberately simple, in-memory model of
// fixedlru's publicly observable behavior.
//
// The model is intentionally easy to audit: it keeps entries in a plain
// slice ordered from most to least recently used and finds keys with a linear
// scan. It favors clarity over performance and knows nothing about slots,
// sorted indices or free chains.
package model

import (
	"cmp"
	"slices"

	"github.com/calvinalkan/fixedlru/pkg/fixedlru"
)

// Cache is the reference model of a fixedlru.Cache with ordered keys.
type Cache[K cmp.Ordered, V any] struct {
	Capacity int

	// Entries is ordered from most to least recently used.
	Entries []fixedlru.Entry[K, V]
}

// New returns an empty model with the given capacity.
func New[K cmp.Ordered, V any](capacity int) *Cache[K, V] {
	return &Cache[K, V]{Capacity: capacity}
}

// Clone makes a deep copy of the entry list so tests can fork a state.
// It preserves the nil vs empty slice distinction.
func (m *Cache[K, V]) Clone() *Cache[K, V] {
	if m == nil {
		return nil
	}

	var entries []fixedlru.Entry[K, V]
	if m.Entries != nil {
		entries = make([]fixedlru.Entry[K, V], len(m.Entries))
		copy(entries, m.Entries)
	}

	return &Cache[K, V]{Capacity: m.Capacity, Entries: entries}
}

// Len returns the number of entries.
func (m *Cache[K, V]) Len() int {
	return len(m.Entries)
}

// IsFull reports whether the model holds Capacity entries.
func (m *Cache[K, V]) IsFull() bool {
	return len(m.Entries) == m.Capacity
}

// Get returns the value for key and moves it to the front.
func (m *Cache[K, V]) Get(key K) (V, bool) {
	idx := m.find(key)
	if idx < 0 {
		var zero V
		return zero, false
	}

	m.promote(idx)

	return m.Entries[0].Value, true
}

// Peek returns the value for key without reordering.
func (m *Cache[K, V]) Peek(key K) (V, bool) {
	idx := m.find(key)
	if idx < 0 {
		var zero V
		return zero, false
	}

	return m.Entries[idx].Value, true
}

// Contains reports whether key is present.
func (m *Cache[K, V]) Contains(key K) bool {
	return m.find(key) >= 0
}

// Update applies fn to the value for key and moves it to the front.
func (m *Cache[K, V]) Update(key K, fn func(*V)) bool {
	idx := m.find(key)
	if idx < 0 {
		return false
	}

	fn(&m.Entries[idx].Value)
	m.promote(idx)

	return true
}

// UpdateQuiet applies fn to the value for key without reordering.
func (m *Cache[K, V]) UpdateQuiet(key K, fn func(*V)) bool {
	idx := m.find(key)
	if idx < 0 {
		return false
	}

	fn(&m.Entries[idx].Value)

	return true
}

// UpdateAll visits entries from most to least recently used until fn
// returns false.
func (m *Cache[K, V]) UpdateAll(fn func(K, *V) bool) {
	for i := range m.Entries {
		if !fn(m.Entries[i].Key, &m.Entries[i].Value) {
			return
		}
	}
}

// UpdateAscend visits entries in ascending key order until fn returns false.
func (m *Cache[K, V]) UpdateAscend(fn func(K, *V) bool) {
	idxs := make([]int, len(m.Entries))
	for i := range idxs {
		idxs[i] = i
	}

	slices.SortFunc(idxs, func(a, b int) int {
		return cmp.Compare(m.Entries[a].Key, m.Entries[b].Key)
	})

	for _, i := range idxs {
		if !fn(m.Entries[i].Key, &m.Entries[i].Value) {
			return
		}
	}
}

// Insert mirrors fixedlru.Cache.Insert.
func (m *Cache[K, V]) Insert(key K, value V) (fixedlru.Entry[K, V], fixedlru.Outcome) {
	idx := m.find(key)
	if idx >= 0 {
		old := m.Entries[idx]
		m.Entries[idx].Value = value
		m.promote(idx)

		return old, fixedlru.Replaced
	}

	if m.Capacity == 0 {
		return fixedlru.Entry[K, V]{Key: key, Value: value}, fixedlru.Rejected
	}

	var (
		evicted fixedlru.Entry[K, V]
		outcome = fixedlru.Added
	)

	if len(m.Entries) == m.Capacity {
		evicted = m.Entries[len(m.Entries)-1]
		m.Entries = m.Entries[:len(m.Entries)-1]
		outcome = fixedlru.Evicted
	}

	m.Entries = slices.Insert(m.Entries, 0, fixedlru.Entry[K, V]{Key: key, Value: value})

	return evicted, outcome
}

// GetOrInsert mirrors fixedlru.Cache.GetOrInsertFunc with a constant value.
// The evicted entry, if any, is returned for the caller to compare.
func (m *Cache[K, V]) GetOrInsert(key K, value V) (V, bool, fixedlru.Entry[K, V], bool) {
	if got, ok := m.Get(key); ok {
		return got, true, fixedlru.Entry[K, V]{}, false
	}

	evicted, outcome := m.Insert(key, value)

	return value, false, evicted, outcome == fixedlru.Evicted
}

// Remove deletes key.
func (m *Cache[K, V]) Remove(key K) (V, bool) {
	idx := m.find(key)
	if idx < 0 {
		var zero V
		return zero, false
	}

	value := m.Entries[idx].Value
	m.Entries = slices.Delete(m.Entries, idx, idx+1)

	return value, true
}

// RemoveOldest deletes the last entry.
func (m *Cache[K, V]) RemoveOldest() (fixedlru.Entry[K, V], bool) {
	if len(m.Entries) == 0 {
		return fixedlru.Entry[K, V]{}, false
	}

	last := m.Entries[len(m.Entries)-1]
	m.Entries = m.Entries[:len(m.Entries)-1]

	return last, true
}

// Clear removes all entries.
func (m *Cache[K, V]) Clear() {
	m.Entries = nil
}

// Recency returns a copy of the entries from most to least recently used.
func (m *Cache[K, V]) Recency() []fixedlru.Entry[K, V] {
	return slices.Clone(m.Entries)
}

// Sorted returns a copy of the entries in ascending key order.
func (m *Cache[K, V]) Sorted() []fixedlru.Entry[K, V] {
	sorted := slices.Clone(m.Entries)
	slices.SortFunc(sorted, func(a, b fixedlru.Entry[K, V]) int {
		return cmp.Compare(a.Key, b.Key)
	})

	return sorted
}

func (m *Cache[K, V]) find(key K) int {
	return slices.IndexFunc(m.Entries, func(e fixedlru.Entry[K, V]) bool {
		return e.Key == key
	})
}

// promote moves Entries[idx] to the front.
func (m *Cache[K, V]) promote(idx int) {
	entry := m.Entries[idx]
	copy(m.Entries[1:idx+1], m.Entries[:idx])
	m.Entries[0] = entry
}
