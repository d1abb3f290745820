package observable

import (
	"fmt"
	"slices"
	"strings"
)

// Sequence is any cell whose value is a slice: *Array, *ComputedArray and
// *Concatenation.
type Sequence[T any] interface {
	Get() []T
}

// sequence is the read half shared by Array and ComputedArray. Every read
// goes through get, which registers the owning cell as a dependency.
type sequence[T any] struct {
	get func() []T

	// eq matches elements for IndexOf, Contains and Remove.
	eq func(a, b T) bool
}

func newSequence[T any](get func() []T, eq func(a, b T) bool) sequence[T] {
	if eq == nil {
		eq = defaultEquals[T]
	}
	return sequence[T]{get: get, eq: eq}
}

// Len returns the number of elements.
func (s sequence[T]) Len() int {
	return len(s.get())
}

// Items returns a copy of the elements.
func (s sequence[T]) Items() []T {
	return slices.Clone(s.get())
}

// At returns the element at index, or false if index is out of range.
func (s sequence[T]) At(index int) (T, bool) {
	items := s.get()
	if index < 0 || index >= len(items) {
		var zero T
		return zero, false
	}
	return items[index], true
}

// First returns the first element, or false if the sequence is empty.
func (s sequence[T]) First() (T, bool) {
	return s.At(0)
}

// Last returns the last element, or false if the sequence is empty.
func (s sequence[T]) Last() (T, bool) {
	items := s.get()
	if len(items) == 0 {
		var zero T
		return zero, false
	}
	return items[len(items)-1], true
}

// IndexOf returns the index of the first element matching item, or -1.
func (s sequence[T]) IndexOf(item T) int {
	return s.indexIn(s.get(), item)
}

// LastIndexOf returns the index of the last element matching item, or -1.
func (s sequence[T]) LastIndexOf(item T) int {
	items := s.get()
	for i := len(items) - 1; i >= 0; i-- {
		if s.eq(items[i], item) {
			return i
		}
	}
	return -1
}

// Contains reports whether any element matches item.
func (s sequence[T]) Contains(item T) bool {
	return s.IndexOf(item) >= 0
}

// Find returns the first element satisfying pred.
func (s sequence[T]) Find(pred func(T) bool) (T, bool) {
	for _, item := range s.get() {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Slice returns a copy of the elements in [start, end). Negative indexes
// count from the end; both are clamped to the bounds.
func (s sequence[T]) Slice(start, end int) []T {
	items := s.get()
	from := relativeIndex(start, len(items))
	to := relativeIndex(end, len(items))
	if to < from {
		return []T{}
	}
	return slices.Clone(items[from:to])
}

// Filter returns the elements satisfying pred.
func (s sequence[T]) Filter(pred func(T) bool) []T {
	out := []T{}
	for _, item := range s.get() {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Map returns fn applied to every element. Use MapTo to change the type.
func (s sequence[T]) Map(fn func(T) T) []T {
	items := s.get()
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

// Every reports whether all elements satisfy pred.
func (s sequence[T]) Every(pred func(T) bool) bool {
	for _, item := range s.get() {
		if !pred(item) {
			return false
		}
	}
	return true
}

// Some reports whether any element satisfies pred.
func (s sequence[T]) Some(pred func(T) bool) bool {
	for _, item := range s.get() {
		if pred(item) {
			return true
		}
	}
	return false
}

// ForEach calls fn for every element with its index.
func (s sequence[T]) ForEach(fn func(item T, index int)) {
	for i, item := range s.get() {
		fn(item, i)
	}
}

// Reduce folds the elements left to right starting from initial.
func (s sequence[T]) Reduce(fn func(acc, item T) T, initial T) T {
	acc := initial
	for _, item := range s.get() {
		acc = fn(acc, item)
	}
	return acc
}

// ReduceRight folds the elements right to left starting from initial.
func (s sequence[T]) ReduceRight(fn func(acc, item T) T, initial T) T {
	items := s.get()
	acc := initial
	for i := len(items) - 1; i >= 0; i-- {
		acc = fn(acc, items[i])
	}
	return acc
}

// Concat returns a new slice holding the elements followed by others.
func (s sequence[T]) Concat(others ...[]T) []T {
	out := slices.Clone(s.get())
	for _, other := range others {
		out = append(out, other...)
	}
	return out
}

// Join formats every element with %v and joins them with sep.
func (s sequence[T]) Join(sep string) string {
	items := s.get()
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprint(item)
	}
	return strings.Join(parts, sep)
}

func (s sequence[T]) indexIn(items []T, item T) int {
	for i, candidate := range items {
		if s.eq(candidate, item) {
			return i
		}
	}
	return -1
}

// relativeIndex resolves a possibly negative index against length n and
// clamps it to [0, n].
func relativeIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	return min(max(i, 0), n)
}

// MapTo returns fn applied to every element of s, registering s as a
// dependency.
func MapTo[T, U any](s Sequence[T], fn func(T) U) []U {
	items := s.Get()
	out := make([]U, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

// ReduceTo folds the elements of s left to right, registering s as a
// dependency.
func ReduceTo[T, A any](s Sequence[T], fn func(acc A, item T) A, initial A) A {
	acc := initial
	for _, item := range s.Get() {
		acc = fn(acc, item)
	}
	return acc
}
