package observable

import (
	"slices"
)

// ComputedArray is a computed cell whose value is a slice. It has the read
// operations of Array; every read registers the cell as a dependency. It
// has no mutations: its value only changes when its computation reruns.
type ComputedArray[T any] struct {
	*Computed[[]T]
	sequence[T]
}

// NewComputedArray creates a computed sequence whose elements are matched
// with ==.
func NewComputedArray[T comparable](compute func() []T, opts ...Option) *ComputedArray[T] {
	return NewComputedArrayFunc(compute, func(a, b T) bool { return a == b }, opts...)
}

// NewComputedArrayFunc creates a computed sequence whose elements are matched
// with eq. The computation runs once before it returns.
func NewComputedArrayFunc[T any](compute func() []T, eq func(a, b T) bool, opts ...Option) *ComputedArray[T] {
	c := newComputedArray(compute, eq, opts)
	c.changed()
	return c
}

func newComputedArray[T any](compute func() []T, eq func(a, b T) bool, opts []Option) *ComputedArray[T] {
	c := &ComputedArray[T]{Computed: newComputed(compute, opts)}
	c.sequence = newSequence(c.Computed.Get, eq)
	c.self = c
	return c
}

// Kind reports KindComputedArray.
func (c *ComputedArray[T]) Kind() Kind {
	return KindComputedArray
}

// Each is ForEach returning the cell, for chaining.
func (c *ComputedArray[T]) Each(fn func(item T, index int)) *ComputedArray[T] {
	c.ForEach(fn)
	return c
}

// Concatenation is a computed sequence holding the elements of a growing
// list of arrays, in order. It recomputes when any source array changes or
// when a source is added with Push.
type Concatenation[T any] struct {
	*ComputedArray[T]

	// sources is itself a cell so that Push reruns the computation.
	sources *Value[[]*Array[T]]
}

// ConcatArrays returns a Concatenation of arrays. It is bound to the tracker
// of the first array, or to the default tracker when there is none.
func ConcatArrays[T any](arrays ...*Array[T]) *Concatenation[T] {
	var opts []Option
	if len(arrays) > 0 {
		opts = append(opts, WithTracker(arrays[0].tracker))
	}

	c := &Concatenation[T]{
		sources: NewValue(slices.Clone(arrays), opts...),
	}
	c.ComputedArray = newComputedArray(func() []T {
		out := []T{}
		for _, arr := range c.sources.Get() {
			out = append(out, arr.Get()...)
		}
		return out
	}, defaultEquals[T], opts)
	c.self = c
	c.changed()
	return c
}

// Push appends arrays to the sources and returns the new number of sources.
func (c *Concatenation[T]) Push(arrays ...*Array[T]) int {
	if len(arrays) == 0 {
		return len(c.sources.Peek())
	}
	return len(c.sources.Update(func(cur []*Array[T]) []*Array[T] {
		return slices.Concat(cur, arrays)
	}))
}

// Sources returns a copy of the source arrays.
func (c *Concatenation[T]) Sources() []*Array[T] {
	return slices.Clone(c.sources.Peek())
}

var (
	_ Cell[[]int]   = (*ComputedArray[int])(nil)
	_ Sequence[int] = (*ComputedArray[int])(nil)
	_ Sequence[int] = (*Concatenation[int])(nil)
	_ Sequence[int] = (*Array[int])(nil)
	_ Observable    = (*Concatenation[int])(nil)
)
