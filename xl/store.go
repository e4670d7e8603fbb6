package xl

import (
	"cmp"
	"iter"
	"slices"
)

// sortedMap keeps values ordered by key. Sheets are mostly filled top to
// bottom and left to right, so inserts usually land at the end and take
// the append fast path.
type sortedMap[K cmp.Ordered, V any] struct {
	keys []K
	vals []V
}

func (m *sortedMap[K, V]) find(k K) (int, bool) {
	n := len(m.keys)
	if n > 0 && m.keys[n-1] < k {
		return n, false
	}
	return slices.BinarySearch(m.keys, k)
}

// Get returns the value stored at k.
func (m *sortedMap[K, V]) Get(k K) (V, bool) {
	i, ok := m.find(k)
	if !ok {
		var zero V
		return zero, false
	}
	return m.vals[i], true
}

// Set inserts v at k, replacing any previous value.
func (m *sortedMap[K, V]) Set(k K, v V) {
	i, ok := m.find(k)
	if ok {
		m.vals[i] = v
		return
	}
	m.keys = slices.Insert(m.keys, i, k)
	m.vals = slices.Insert(m.vals, i, v)
}

// Delete removes k if present.
func (m *sortedMap[K, V]) Delete(k K) {
	if i, ok := m.find(k); ok {
		m.keys = slices.Delete(m.keys, i, i+1)
		m.vals = slices.Delete(m.vals, i, i+1)
	}
}

func (m *sortedMap[K, V]) Len() int {
	return len(m.keys)
}

// First returns the smallest key.
func (m *sortedMap[K, V]) First() (K, V, bool) {
	if len(m.keys) == 0 {
		var k K
		var v V
		return k, v, false
	}
	return m.keys[0], m.vals[0], true
}

// Last returns the largest key.
func (m *sortedMap[K, V]) Last() (K, V, bool) {
	n := len(m.keys)
	if n == 0 {
		var k K
		var v V
		return k, v, false
	}
	return m.keys[n-1], m.vals[n-1], true
}

// All walks the map in key order.
func (m *sortedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i, k := range m.keys {
			if !yield(k, m.vals[i]) {
				return
			}
		}
	}
}

// From walks the entries with keys >= k.
func (m *sortedMap[K, V]) From(k K) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		i, _ := m.find(k)
		for ; i < len(m.keys); i++ {
			if !yield(m.keys[i], m.vals[i]) {
				return
			}
		}
	}
}

func (m *sortedMap[K, V]) Clear() {
	m.keys = m.keys[:0]
	m.vals = m.vals[:0]
}

// cellKey orders cells row by row, then by column.
type cellKey int64

func keyOf(row, col int) cellKey {
	return cellKey(int64(row)<<16 | int64(col))
}

func (k cellKey) split() (row, col int) {
	return int(k >> 16), int(k & 0xFFFF)
}
