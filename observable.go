// Package observable provides the public API for observable value cells.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/observable"
//
// Usage:
//
//	price := observable.NewNumber(10)
//	qty := observable.NewNumber(3)
//	total := observable.NewComputed(func() int {
//	    return price.Get() * qty.Get()
//	})
//	total.Observe(func(v int) { fmt.Println("total:", v) })
//	qty.Increment() // prints "total: 40"
package observable

import (
	coreobs "github.com/vango-dev/observable/pkg/observable"
)

// =============================================================================
// Cells (re-export from pkg/observable)
// =============================================================================

// NewValue creates a value cell holding initial.
//
// Example:
//
//	name := observable.NewValue("Ada")
//	name.Set("Grace")
func NewValue[T any](initial T, opts ...Option) *Value[T] {
	return coreobs.NewValue(initial, opts...)
}

// NewComputed creates a cell derived from compute. It tracks the cells
// compute reads and re-evaluates whenever one of them changes.
//
// Example:
//
//	doubled := observable.NewComputed(func() int {
//	    return count.Get() * 2
//	})
func NewComputed[T any](compute func() T, opts ...Option) *Computed[T] {
	return coreobs.NewComputed(compute, opts...)
}

// NewBoundComputed creates a computed cell whose computation receives recv
// on every run.
func NewBoundComputed[R, T any](recv R, compute func(R) T, opts ...Option) *Computed[T] {
	return coreobs.NewBoundComputed(recv, compute, opts...)
}

// NewArray creates an array cell.
func NewArray[T comparable](initial []T, opts ...Option) *Array[T] {
	return coreobs.NewArray(initial, opts...)
}

// NewArrayFunc creates an array cell that matches elements with eq.
func NewArrayFunc[T any](initial []T, eq func(a, b T) bool, opts ...Option) *Array[T] {
	return coreobs.NewArrayFunc(initial, eq, opts...)
}

// NewBool creates a boolean cell.
var NewBool = coreobs.NewBool

// NewNumber creates a numeric cell.
func NewNumber[N Numeric](initial N, opts ...Option) *Number[N] {
	return coreobs.NewNumber(initial, opts...)
}

// NewComputedArray creates a computed sequence.
func NewComputedArray[T comparable](compute func() []T, opts ...Option) *ComputedArray[T] {
	return coreobs.NewComputedArray(compute, opts...)
}

// NewComputedArrayFunc creates a computed sequence with a custom element
// equality.
func NewComputedArrayFunc[T any](compute func() []T, eq func(a, b T) bool, opts ...Option) *ComputedArray[T] {
	return coreobs.NewComputedArrayFunc(compute, eq, opts...)
}

// ConcatArrays returns a computed sequence holding the elements of every
// array.
func ConcatArrays[T any](arrays ...*Array[T]) *Concatenation[T] {
	return coreobs.ConcatArrays(arrays...)
}

// MapTo returns fn applied to every element of s.
func MapTo[T, U any](s Sequence[T], fn func(T) U) []U {
	return coreobs.MapTo(s, fn)
}

// ReduceTo folds the elements of s left to right.
func ReduceTo[T, A any](s Sequence[T], fn func(acc A, item T) A, initial A) A {
	return coreobs.ReduceTo(s, fn, initial)
}

// PanicStack returns the stack captured when a computation panicked.
var PanicStack = coreobs.PanicStack

// Make wraps any value in the cell variant that fits it.
var Make = coreobs.Make

// MustMake is like Make but panics on error.
var MustMake = coreobs.MustMake

// Cell type aliases
type Value[T any] = coreobs.Value[T]
type Computed[T any] = coreobs.Computed[T]
type Array[T any] = coreobs.Array[T]
type ComputedArray[T any] = coreobs.ComputedArray[T]
type Concatenation[T any] = coreobs.Concatenation[T]
type Sequence[T any] = coreobs.Sequence[T]
type Number[N Numeric] = coreobs.Number[N]
type Bool = coreobs.Bool
type Numeric = coreobs.Numeric
type Cell[T any] = coreobs.Cell[T]
type Observable = coreobs.Observable
type Source = coreobs.Source
type Listener = coreobs.Listener
type Kind = coreobs.Kind
type Option = coreobs.Option

// Kinds
const (
	KindValue    = coreobs.KindValue
	KindComputed = coreobs.KindComputed
	KindBool     = coreobs.KindBool
	KindNumber   = coreobs.KindNumber
	KindArray    = coreobs.KindArray

	KindComputedArray = coreobs.KindComputedArray
)

// Cell options
var (
	WithName     = coreobs.WithName
	WithTracker  = coreobs.WithTracker
	WithReceiver = coreobs.WithReceiver
)

// ListenerFunc adapts a callback into a Listener.
var ListenerFunc = coreobs.ListenerFunc

// =============================================================================
// Tracking (re-export from pkg/observable)
// =============================================================================

type Tracker = coreobs.Tracker
type TrackerOption = coreobs.TrackerOption
type Hooks = coreobs.Hooks

// NewTracker creates an independent dependency-collection context.
var NewTracker = coreobs.NewTracker

// DefaultTracker returns the tracker cells use unless WithTracker is given.
var DefaultTracker = coreobs.DefaultTracker

// Tracker options
var (
	WithHooks  = coreobs.WithHooks
	WithLogger = coreobs.WithLogger
)

// Untracked runs fn on the default tracker without registering dependencies.
func Untracked(fn func()) {
	coreobs.DefaultTracker().Untracked(fn)
}

// =============================================================================
// Errors
// =============================================================================

var (
	ErrComputedWrite       = coreobs.ErrComputedWrite
	ErrTypeMismatch        = coreobs.ErrTypeMismatch
	ErrInvalidComputation  = coreobs.ErrInvalidComputation
	ErrComputationPanicked = coreobs.ErrComputationPanicked
)
