package observable

import "sync/atomic"

// ids numbers cells and the listeners created by Observe and ObserveAny.
// Both share one sequence: a computed cell subscribes to its dependencies
// under its own ID, so a cell ID must never collide with a listener ID.
var ids atomic.Uint64

func nextID() uint64 {
	return ids.Add(1)
}
