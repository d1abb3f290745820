package observable

// Option configures a cell at construction.
type Option func(*cellOptions)

// cellOptions holds construction-time configuration shared by all cells.
type cellOptions struct {
	// name labels the cell in logs and metrics.
	name string

	// tracker is the dependency-collection context; nil means DefaultTracker.
	tracker *Tracker

	// receiver is bound as the single argument of a func(R) T computation
	// passed to Make.
	receiver    any
	hasReceiver bool
}

// WithName labels a cell for logs, metrics and traces.
//
// Example:
//
//	total := observable.NewComputed(sum, observable.WithName("cart.total"))
func WithName(name string) Option {
	return func(o *cellOptions) {
		o.name = name
	}
}

// WithTracker binds a cell to t instead of the default tracker. A computed
// cell only discovers dependencies that share its tracker.
func WithTracker(t *Tracker) Option {
	return func(o *cellOptions) {
		o.tracker = t
	}
}

// WithReceiver binds recv as the evaluation context of a computation passed
// to Make as a one-argument function.
//
// Example:
//
//	o, err := observable.Make(func(c *Cart) int { return c.Count() }, observable.WithReceiver(cart))
func WithReceiver(recv any) Option {
	return func(o *cellOptions) {
		o.receiver = recv
		o.hasReceiver = true
	}
}

// applyOptions applies the given options and returns the resulting config.
func applyOptions(opts []Option) cellOptions {
	var options cellOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.tracker == nil {
		options.tracker = defaultTracker
	}
	return options
}
