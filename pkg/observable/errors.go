package observable

import (
	stderrors "errors"
	"fmt"
	"reflect"

	"github.com/vango-dev/observable/internal/errors"
)

// Sentinel errors. Errors returned by this package carry the same codes and
// match these values under errors.Is.
var (
	// ErrComputedWrite is returned by SetAny on a computed cell. Computed
	// cells have no externally assignable state.
	ErrComputedWrite error = errors.New("O001")

	// ErrTypeMismatch is returned by SetAny when the value does not have the
	// cell's element type.
	ErrTypeMismatch error = errors.New("O002")

	// ErrInvalidComputation is returned by Make for function values that are
	// neither func() T nor a func(R) T with a matching WithReceiver.
	ErrInvalidComputation error = errors.New("O003")

	// ErrComputationPanicked is reported to Hooks when a computation panics.
	// The panic itself still propagates to the caller that triggered the
	// evaluation.
	ErrComputationPanicked error = errors.New("O020")
)

func computedWriteError(c Source) error {
	return errors.New("O001").
		WithDetailf("cell %s", describe(c)).
		WithSuggestion("Write to one of the cells the computation reads instead")
}

func typeMismatchError[T any](c Source, value any) error {
	var zero T
	return errors.New("O002").
		WithDetailf("cell %s holds %s, got %T", describe(c), reflect.TypeOf(&zero).Elem(), value)
}

func invalidComputationError(t reflect.Type, reason string) error {
	return errors.New("O003").
		WithDetailf("%s: %s", t, reason).
		WithSuggestion("Pass a func() T, or a func(R) T together with WithReceiver(r)")
}

// computationPanickedError records the recovered value in the detail and the
// panicking goroutine's stack in the wrapped error.
func computationPanickedError(c Source, recovered any, stack []byte) error {
	return errors.New("O020").
		WithDetailf("cell %s: %v", describe(c), recovered).
		Wrap(&panicError{value: recovered, stack: stack})
}

// panicError carries a recovered panic value and the stack it was raised on.
type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

// PanicStack returns the stack captured when a computation panicked, or nil
// if err does not come from a panic.
func PanicStack(err error) []byte {
	var pe *panicError
	if stderrors.As(err, &pe) {
		return pe.stack
	}
	return nil
}

// describe formats a cell for error details and logs.
func describe(c Source) string {
	if name := c.Name(); name != "" {
		return fmt.Sprintf("%q (#%d)", name, c.ID())
	}
	return fmt.Sprintf("#%d", c.ID())
}
