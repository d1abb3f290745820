package observable

// Hooks receives instrumentation callbacks from every cell bound to a
// Tracker. Implementations live in pkg/instrument. Hooks run synchronously on
// the notifying goroutine and must not write to cells.
type Hooks interface {
	// OnNotify is called after cell has delivered a change to the listeners
	// that were registered when the pass started.
	OnNotify(cell Source, listeners int)

	// OnEvaluate is called before a computed cell runs its computation. The
	// returned func, if non-nil, is called once the evaluation settles with
	// the size of the new dependency set, or with ErrComputationPanicked if
	// the computation panicked.
	OnEvaluate(cell Source) func(deps int, err error)
}
