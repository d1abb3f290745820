package observable

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// Computed is a cell whose value is derived from a computation.
//
// The computation runs once when the cell is created and again every time a
// cell it read during its previous run changes. Dependencies are discovered
// by observing which cells are read, so a branch that is not taken does not
// subscribe to the cells it would have read:
//
//	mode := observable.NewBool(true)
//	a, b := observable.NewValue(1), observable.NewValue(2)
//	pick := observable.NewComputed(func() int {
//	    if mode.Get() {
//	        return a.Get()
//	    }
//	    return b.Get()
//	})
//	// pick depends on mode and a; writes to b are ignored until mode flips.
//
// Reads never recompute. A computed cell keeps its dependencies' listener
// lists pointing at it until ReleaseDependencies is called.
type Computed[T any] struct {
	cellBase

	// compute produces the value.
	compute func() T

	// value caches the last settled result; deps is the set collected while
	// producing it. mu protects both.
	value T
	deps  []Source
	mu    sync.RWMutex

	// listener is what the cell registers on its dependencies.
	listener dependent[T]
}

// dependent is the Listener a computed cell subscribes to its dependencies
// with. It shares the cell's ID so it can be removed by identity.
type dependent[T any] struct {
	c *Computed[T]
}

func (d dependent[T]) ID() uint64 {
	return d.c.id
}

func (d dependent[T]) Changed(any) {
	d.c.changed()
}

// NewComputed creates a computed cell and evaluates compute once before
// returning. A panic from the first evaluation propagates to the caller.
func NewComputed[T any](compute func() T, opts ...Option) *Computed[T] {
	c := newComputed(compute, opts)
	c.self = c
	c.changed()
	return c
}

// newComputed builds an unevaluated computed cell. The caller sets self and
// runs the first evaluation.
func newComputed[T any](compute func() T, opts []Option) *Computed[T] {
	if compute == nil {
		compute = func() T {
			var zero T
			return zero
		}
	}
	c := &Computed[T]{
		cellBase: newCellBase(applyOptions(opts)),
		compute:  compute,
	}
	c.listener = dependent[T]{c: c}
	return c
}

// NewBoundComputed creates a computed cell whose computation receives recv
// as its evaluation context on every run.
func NewBoundComputed[R, T any](recv R, compute func(R) T, opts ...Option) *Computed[T] {
	if compute == nil {
		return NewComputed[T](nil, opts...)
	}
	return NewComputed(func() T { return compute(recv) }, opts...)
}

// Get returns the cached value and registers the cell with the active
// collector, if any.
func (c *Computed[T]) Get() T {
	c.tracker.record(c.self)
	return c.Peek()
}

// Peek returns the cached value without registering a dependency.
func (c *Computed[T]) Peek() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Dependencies returns the cells read during the last settled evaluation.
func (c *Computed[T]) Dependencies() []Source {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Source, len(c.deps))
	copy(out, c.deps)
	return out
}

// ReleaseDependencies unsubscribes the cell from all of its dependencies.
// Afterwards it no longer reacts to anything and can be collected once the
// caller drops it.
func (c *Computed[T]) ReleaseDependencies() {
	c.mu.Lock()
	prev := c.deps
	c.deps = nil
	c.mu.Unlock()

	for _, dep := range prev {
		dep.RemoveListener(c.listener)
	}
}

// Observe registers fn to be called with each recomputed value.
func (c *Computed[T]) Observe(fn func(T)) Listener {
	l := &funcListener[T]{id: nextID(), fn: fn}
	c.AddListener(l)
	return l
}

// Kind reports KindComputed.
func (c *Computed[T]) Kind() Kind {
	return KindComputed
}

// GetAny returns Get as an untyped value.
func (c *Computed[T]) GetAny() any {
	return c.Get()
}

// SetAny always fails with ErrComputedWrite.
func (c *Computed[T]) SetAny(any) error {
	return computedWriteError(c)
}

// String returns "Observable(<value>)".
func (c *Computed[T]) String() string {
	return fmt.Sprintf("Observable(%v)", c.Peek())
}

// changed re-evaluates the computation and swaps the dependency set:
//
//  1. push a fresh collector
//  2. run the computation; every cell read records itself
//  3. pop the collector (also when the computation panics)
//  4. unsubscribe from the previous set, install and subscribe to the new one
//  5. store the value and notify listeners
//
// If the computation panics, steps 4 and 5 are skipped and the panic
// propagates to whoever triggered the evaluation.
func (c *Computed[T]) changed() {
	t := c.tracker

	var done func(int, error)
	if h := t.Hooks(); h != nil {
		done = h.OnEvaluate(c.self)
	}

	value, deps := c.evaluate(done)

	c.mu.Lock()
	prev := c.deps
	c.deps = deps
	c.mu.Unlock()

	for _, dep := range prev {
		dep.RemoveListener(c.listener)
	}
	for _, dep := range deps {
		dep.AddListener(c.listener)
	}

	t.Logger().Debug("observable: dependencies collected",
		"cell", describe(c.self),
		"previous", len(prev),
		"current", len(deps),
	)

	c.mu.Lock()
	c.value = value
	c.mu.Unlock()

	if done != nil {
		done(len(deps), nil)
	}
	c.notify(value)
}

// evaluate runs the computation under a fresh collector. A panic is reported
// with the stack of the panicking goroutine and then re-raised unchanged.
func (c *Computed[T]) evaluate(done func(int, error)) (value T, deps []Source) {
	t := c.tracker
	col := newCollector()

	t.push(col)
	defer func() {
		t.pop()
		if r := recover(); r != nil {
			stack := debug.Stack()
			err := computationPanickedError(c.self, r, stack)
			t.Logger().Error("observable: computation panicked",
				"cell", describe(c.self),
				"error", err,
				"stack", string(stack),
			)
			if done != nil {
				done(0, err)
			}
			panic(r)
		}
	}()

	value = c.compute()
	return value, col.Sources()
}

var (
	_ Cell[int] = (*Computed[int])(nil)
	_ Cell[int] = (*Value[int])(nil)
)
