package observable

import (
	"slices"
)

// Array is a value cell holding a slice, with sequence operations.
//
// Read operations register the cell as a dependency and then delegate to the
// slice. Mutating operations change the stored slice in place, announce it to
// listeners exactly once per call, and return the operation's own result.
// The stored slice is the live value: listeners receive it, not a copy.
type Array[T any] struct {
	*Value[[]T]
	sequence[T]
}

// NewArray creates an array cell whose elements are matched with ==.
// A nil initial slice is replaced by an empty one.
func NewArray[T comparable](initial []T, opts ...Option) *Array[T] {
	return NewArrayFunc(initial, func(a, b T) bool { return a == b }, opts...)
}

// NewArrayFunc creates an array cell whose elements are matched with eq.
func NewArrayFunc[T any](initial []T, eq func(a, b T) bool, opts ...Option) *Array[T] {
	if initial == nil {
		initial = []T{}
	}
	a := &Array[T]{Value: newValue(initial, opts)}
	a.sequence = newSequence(a.Value.Get, eq)
	a.self = a
	return a
}

// Kind reports KindArray.
func (a *Array[T]) Kind() Kind {
	return KindArray
}

// Each is ForEach returning the cell, for chaining.
func (a *Array[T]) Each(fn func(item T, index int)) *Array[T] {
	a.ForEach(fn)
	return a
}

// =============================================================================
// Mutations
// =============================================================================

// Push appends items and returns the new length.
func (a *Array[T]) Push(items ...T) int {
	return len(a.replace(func(cur []T) []T {
		return append(cur, items...)
	}))
}

// Pop removes and returns the last element. An empty array still notifies.
func (a *Array[T]) Pop() (T, bool) {
	var out T
	var ok bool
	a.replace(func(cur []T) []T {
		n := len(cur)
		if n == 0 {
			return cur
		}
		out, ok = cur[n-1], true
		var zero T
		cur[n-1] = zero
		return cur[:n-1]
	})
	return out, ok
}

// Shift removes and returns the first element. An empty array still
// notifies.
func (a *Array[T]) Shift() (T, bool) {
	var out T
	var ok bool
	a.replace(func(cur []T) []T {
		n := len(cur)
		if n == 0 {
			return cur
		}
		out, ok = cur[0], true
		copy(cur, cur[1:])
		var zero T
		cur[n-1] = zero
		return cur[:n-1]
	})
	return out, ok
}

// Unshift inserts items at the front and returns the new length.
func (a *Array[T]) Unshift(items ...T) int {
	return len(a.replace(func(cur []T) []T {
		return slices.Insert(cur, 0, items...)
	}))
}

// Splice removes deleteCount elements starting at start, inserts items in
// their place and returns the removed elements. A negative start counts from
// the end; start and deleteCount are clamped to the array bounds.
func (a *Array[T]) Splice(start, deleteCount int, items ...T) []T {
	var removed []T
	a.replace(func(cur []T) []T {
		s := relativeIndex(start, len(cur))
		dc := min(max(deleteCount, 0), len(cur)-s)
		removed = slices.Clone(cur[s : s+dc])
		if removed == nil {
			removed = []T{}
		}
		return slices.Replace(cur, s, s+dc, items...)
	})
	return removed
}

// Sort sorts the elements with cmp (stable) and returns them. cmp runs on a
// copy taken before sorting, so it may read the array.
func (a *Array[T]) Sort(cmp func(a, b T) int) []T {
	sorted := slices.Clone(a.Peek())
	slices.SortStableFunc(sorted, cmp)
	return a.replace(func(cur []T) []T {
		if len(cur) != len(sorted) {
			return sorted
		}
		copy(cur, sorted)
		return cur
	})
}

// Reverse reverses the elements in place and returns them.
func (a *Array[T]) Reverse() []T {
	return a.replace(func(cur []T) []T {
		slices.Reverse(cur)
		return cur
	})
}

// SetLength truncates the array to n elements or extends it with zero
// values. Negative lengths are treated as zero.
func (a *Array[T]) SetLength(n int) {
	n = max(n, 0)
	a.replace(func(cur []T) []T {
		if n <= len(cur) {
			clear(cur[n:])
			return cur[:n]
		}
		return append(cur, make([]T, n-len(cur))...)
	})
}

// Remove removes the first element matching item and returns it. If no
// element matches, nothing changes and no notification is sent.
func (a *Array[T]) Remove(item T) (T, bool) {
	index := a.indexIn(a.Peek(), item)
	if index < 0 {
		var zero T
		return zero, false
	}
	removed := a.Splice(index, 1)
	if len(removed) == 0 {
		var zero T
		return zero, false
	}
	return removed[0], true
}
