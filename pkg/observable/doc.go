// Package observable provides reactive value cells.
//
// A cell holds a value and notifies listeners synchronously when it changes.
// A computed cell derives its value from a computation and is re-evaluated
// whenever a cell it read during its last run changes. Dependencies are not
// declared: they are discovered by recording which cells the computation
// reads.
//
// # Core Types
//
// Value[T] is a mutable cell:
//
//	count := observable.NewValue(0)
//	count.Get()   // read (registers a dependency inside a computation)
//	count.Set(5)  // write (notifies listeners if the value changed)
//	count.Observe(func(n int) { fmt.Println("count is", n) })
//
// Computed[T] is a derived cell, evaluated eagerly:
//
//	doubled := observable.NewComputed(func() int { return count.Get() * 2 })
//	doubled.Get() // 10, recomputed as soon as count changes
//	doubled.ReleaseDependencies()
//
// Bool, Number[N] and Array[T] are value cells with shape operations:
// Toggle, Increment/Decrement, and the sequence operations (Push, Splice,
// Remove, Filter, ...). Make picks the variant from a dynamic value:
//
//	o, _ := observable.Make([]any{1, 2, 3})
//	o.(*observable.Array[any]).Push(4)
//
// # Dependency Tracking
//
// A Tracker holds the stack of collectors used while computations run. The
// stack is kept per goroutine, so evaluations on different goroutines do not
// mix their dependencies. Cells use DefaultTracker unless created with
// WithTracker; a computed cell only sees reads of cells on its own tracker.
//
// # Notification
//
// Notification is synchronous and depth-first: Set returns only after every
// listener, and every computed cell depending on the written cell, has run.
// There is no batching. Dependency cycles recurse without bound and are a
// programming error.
//
// # Instrumentation
//
// Hooks installed on a Tracker observe every notification pass and every
// evaluation. See pkg/instrument for Prometheus, OpenTelemetry and slog
// implementations.
package observable
