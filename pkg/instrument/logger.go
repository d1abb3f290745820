package instrument

import (
	"log/slog"

	"github.com/vango-dev/observable/pkg/observable"
)

// LogHooks writes one Debug record per notification pass and per settled
// evaluation, and an Error record when a computation panics.
type LogHooks struct {
	logger *slog.Logger
}

// Logger creates hooks that log cell activity to logger. A nil logger means
// slog.Default().
func Logger(logger *slog.Logger) *LogHooks {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogHooks{logger: logger}
}

// OnNotify logs the notification pass.
func (h *LogHooks) OnNotify(cell observable.Source, listeners int) {
	h.logger.Debug("observable: notified",
		"cell", cellLabel(cell),
		"id", cell.ID(),
		"listeners", listeners,
	)
}

// OnEvaluate logs the outcome of the evaluation.
func (h *LogHooks) OnEvaluate(cell observable.Source) func(int, error) {
	return func(deps int, err error) {
		if err != nil {
			h.logger.Error("observable: evaluation failed",
				"cell", cellLabel(cell),
				"id", cell.ID(),
				"error", err,
			)
			return
		}
		h.logger.Debug("observable: evaluated",
			"cell", cellLabel(cell),
			"id", cell.ID(),
			"dependencies", deps,
		)
	}
}

var _ observable.Hooks = (*LogHooks)(nil)
