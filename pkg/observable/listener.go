package observable

// Listener is anything that can be notified when a cell changes.
// Computed cells subscribe to their dependencies through a Listener, and
// Observe wraps plain callbacks in one.
type Listener interface {
	// ID identifies the listener. StopObserving and RemoveListener remove
	// the first registration whose ID matches.
	ID() uint64

	// Changed is called synchronously with the cell's new value.
	Changed(value any)
}

// ListenerFunc adapts a callback into a Listener with a fresh ID.
// Each call returns a distinct listener, so registering the same callback
// twice yields two independent registrations.
func ListenerFunc(fn func(value any)) Listener {
	return &funcListener[any]{id: nextID(), fn: fn}
}

// funcListener is the Listener created by Observe.
type funcListener[T any] struct {
	id uint64
	fn func(T)
}

func (l *funcListener[T]) ID() uint64 {
	return l.id
}

func (l *funcListener[T]) Changed(value any) {
	if l.fn == nil {
		return
	}
	v, _ := value.(T)
	l.fn(v)
}
