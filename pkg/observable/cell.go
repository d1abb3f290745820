package observable

import (
	"reflect"
	"sync"
)

// Kind is the construction-time variant of a cell. It is fixed when the cell
// is created and does not follow later changes of the stored value.
type Kind int

const (
	// KindValue is a plain value cell without shape operations.
	KindValue Kind = iota
	// KindComputed is a cell derived from a computation.
	KindComputed
	// KindBool is a boolean value cell with Toggle.
	KindBool
	// KindNumber is a numeric value cell with Increment and Decrement.
	KindNumber
	// KindArray is a sequence value cell with the array operations.
	KindArray
	// KindComputedArray is a computed cell holding a sequence, with the
	// array read operations.
	KindComputedArray
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindComputed:
		return "computed"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindArray:
		return "array"
	case KindComputedArray:
		return "computed array"
	default:
		return "unknown"
	}
}

// Source is the type-erased view of a cell that dependency tracking works
// with. Every cell in this package implements it.
type Source interface {
	// ID returns the cell's unique identifier.
	ID() uint64

	// Name returns the label given with WithName, or "".
	Name() string

	// AddListener appends l to the cell's listeners. Duplicates are kept.
	AddListener(l Listener)

	// RemoveListener removes the first listener with l's ID, if any.
	RemoveListener(l Listener)

	// ListenerCount returns the number of registered listeners.
	ListenerCount() int

	// String returns "Observable(<value>)".
	String() string
}

// Observable is a cell of unknown element type, as returned by Make.
type Observable interface {
	Source

	// Kind returns the variant chosen at construction.
	Kind() Kind

	// GetAny reads the cell, registering it as a dependency.
	GetAny() any

	// SetAny writes the cell. It returns ErrComputedWrite for computed
	// cells and ErrTypeMismatch when value has the wrong type.
	SetAny(value any) error

	// ObserveAny registers fn for change notifications.
	ObserveAny(fn func(any)) Listener

	// StopObserving removes a listener returned by Observe or ObserveAny.
	StopObserving(l Listener)
}

// Cell is a typed observable.
type Cell[T any] interface {
	Observable

	// Get returns the value and registers the cell with the active collector.
	Get() T

	// Peek returns the value without registering a dependency.
	Peek() T

	// Observe registers fn for change notifications.
	Observe(fn func(T)) Listener
}

// cellBase provides listener management shared by all cells.
type cellBase struct {
	id      uint64
	name    string
	tracker *Tracker

	// self is the outermost cell wrapping this base. Hooks, collectors and
	// error details see it, so an Array is reported as the *Array and not as
	// its embedded value.
	self Source

	// listeners are kept in registration order; listenersMu protects them.
	listeners   []Listener
	listenersMu sync.RWMutex
}

func newCellBase(o cellOptions) cellBase {
	return cellBase{
		id:      nextID(),
		name:    o.name,
		tracker: o.tracker,
	}
}

// ID returns the unique identifier for this cell.
func (b *cellBase) ID() uint64 {
	return b.id
}

// Name returns the cell's label.
func (b *cellBase) Name() string {
	return b.name
}

// Tracker returns the dependency-collection context the cell is bound to.
func (b *cellBase) Tracker() *Tracker {
	return b.tracker
}

// AddListener appends l. No deduplication is performed.
func (b *cellBase) AddListener(l Listener) {
	if l == nil {
		return
	}
	b.listenersMu.Lock()
	b.listeners = append(b.listeners, l)
	b.listenersMu.Unlock()
}

// RemoveListener removes the first listener with l's ID.
func (b *cellBase) RemoveListener(l Listener) {
	if l == nil {
		return
	}
	b.listenersMu.Lock()
	defer b.listenersMu.Unlock()

	lid := l.ID()
	for i, existing := range b.listeners {
		if existing.ID() == lid {
			// Order matters: shift rather than swap.
			copy(b.listeners[i:], b.listeners[i+1:])
			b.listeners[len(b.listeners)-1] = nil
			b.listeners = b.listeners[:len(b.listeners)-1]
			return
		}
	}
}

// StopObserving removes a listener returned by Observe or ObserveAny.
func (b *cellBase) StopObserving(l Listener) {
	b.RemoveListener(l)
}

// ListenerCount returns the number of registered listeners.
func (b *cellBase) ListenerCount() int {
	b.listenersMu.RLock()
	defer b.listenersMu.RUnlock()
	return len(b.listeners)
}

// ObserveAny registers fn for change notifications.
func (b *cellBase) ObserveAny(fn func(any)) Listener {
	l := ListenerFunc(fn)
	b.AddListener(l)
	return l
}

// notify delivers value to every listener registered when the pass starts.
// The list is copied first so listeners may add or remove listeners,
// including themselves, without disturbing the pass.
func (b *cellBase) notify(value any) {
	b.listenersMu.RLock()
	subs := make([]Listener, len(b.listeners))
	copy(subs, b.listeners)
	b.listenersMu.RUnlock()

	for _, sub := range subs {
		sub.Changed(value)
	}

	if h := b.tracker.Hooks(); h != nil {
		h.OnNotify(b.self, len(subs))
	}
}

// identical reports whether a and b are the same value: == for comparable
// values, identity for slices, maps, pointers and channels. Funcs are never
// identical. Other non-comparable values fall back to reflect.DeepEqual.
func identical(a, b any) (same bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Func:
		return false
	case reflect.Slice:
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	}
	if ra.Type().Comparable() {
		// Interface fields may still hold non-comparable dynamic values.
		defer func() {
			if recover() != nil {
				same = reflect.DeepEqual(a, b)
			}
		}()
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// defaultEquals compares two values of the same static type with identical.
func defaultEquals[T any](a, b T) bool {
	return identical(any(a), any(b))
}

// assign converts an untyped value to T. A nil value is accepted for
// nillable element types.
func assign[T any](value any) (T, bool) {
	if v, ok := value.(T); ok {
		return v, true
	}
	var zero T
	if value != nil {
		return zero, false
	}
	switch reflect.TypeOf(&zero).Elem().Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Chan, reflect.Func:
		return zero, true
	}
	return zero, false
}
