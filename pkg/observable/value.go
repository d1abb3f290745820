package observable

import (
	"fmt"
	"sync"
)

// Value is a cell that owns its value directly.
// Reading it with Get during a computed cell's evaluation makes it a
// dependency of that cell; writing a distinct value with Set notifies every
// listener synchronously, in registration order.
type Value[T any] struct {
	cellBase

	// value is the current value; mu protects it.
	value T
	mu    sync.RWMutex

	// equal decides whether a write is a change. Nil means defaultEquals.
	equal func(T, T) bool
}

// NewValue creates a value cell holding initial.
func NewValue[T any](initial T, opts ...Option) *Value[T] {
	return newValue(initial, opts)
}

// newValue builds a value cell that reports itself to hooks and collectors.
// Wrapping variants replace self with the outer cell.
func newValue[T any](initial T, opts []Option) *Value[T] {
	v := &Value[T]{
		cellBase: newCellBase(applyOptions(opts)),
		value:    initial,
	}
	v.self = v
	return v
}

// Get returns the current value and registers the cell with the active
// collector, if any.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	value := v.value
	v.mu.RUnlock()

	// Track after releasing the value lock.
	v.tracker.record(v.self)
	return value
}

// Peek returns the current value without registering a dependency.
func (v *Value[T]) Peek() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Set stores value and notifies listeners if it differs from the current
// value. Writing an identical value is a no-op. Set returns the cell's value
// after the notification pass, which listeners may have changed again.
//
// The equality function runs without the cell locked and may read the cell.
func (v *Value[T]) Set(value T) T {
	v.mu.RLock()
	current, equal := v.value, v.equal
	v.mu.RUnlock()

	if equals(equal, current, value) {
		return current
	}

	v.mu.Lock()
	v.value = value
	v.mu.Unlock()

	v.notify(value)
	return v.Peek()
}

// Update writes fn applied to the current value.
func (v *Value[T]) Update(fn func(T) T) T {
	if fn == nil {
		return v.Peek()
	}
	return v.Set(fn(v.Peek()))
}

// WithEquals replaces the equality used to detect changes.
func (v *Value[T]) WithEquals(fn func(T, T) bool) *Value[T] {
	v.mu.Lock()
	v.equal = fn
	v.mu.Unlock()
	return v
}

// Observe registers fn to be called with each new value.
func (v *Value[T]) Observe(fn func(T)) Listener {
	l := &funcListener[T]{id: nextID(), fn: fn}
	v.AddListener(l)
	return l
}

// Kind reports KindValue.
func (v *Value[T]) Kind() Kind {
	return KindValue
}

// GetAny returns Get as an untyped value.
func (v *Value[T]) GetAny() any {
	return v.Get()
}

// SetAny writes value after checking its type.
func (v *Value[T]) SetAny(value any) error {
	t, ok := assign[T](value)
	if !ok {
		return typeMismatchError[T](v, value)
	}
	v.Set(t)
	return nil
}

// String returns "Observable(<value>)".
func (v *Value[T]) String() string {
	return fmt.Sprintf("Observable(%v)", v.Peek())
}

func equals[T any](equal func(T, T) bool, a, b T) bool {
	if equal != nil {
		return equal(a, b)
	}
	return defaultEquals(a, b)
}

// replace applies fn to the stored value under the lock and then announces
// the result unconditionally. Sequence mutations use it so every call is
// observed exactly once. fn must not call back into user code.
func (v *Value[T]) replace(fn func(T) T) T {
	v.mu.Lock()
	v.value = fn(v.value)
	value := v.value
	v.mu.Unlock()

	v.notify(value)
	return value
}
