package instrument

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/observable/pkg/observable"
)

// Default tracer name for observable cells.
const defaultTracerName = "observable"

// Span names.
const (
	evaluateSpanName = "observable.evaluate"
	notifySpanName   = "observable.notify"
)

// OTelConfig configures the OpenTelemetry hooks.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "observable").
	TracerName string

	// TracerProvider supplies the tracer.
	// Default: the global provider from otel.GetTracerProvider.
	TracerProvider trace.TracerProvider

	// Parent is the context spans are started from (default:
	// context.Background()). Use it to nest evaluations under a request or
	// job span.
	Parent context.Context

	// TraceNotify records a span for every notification pass.
	// Enabled by default.
	TraceNotify bool

	// Filter determines which cells to trace.
	// Return true to trace the cell, false to skip.
	// If nil, all cells are traced.
	Filter func(cell observable.Source) bool

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry hooks.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithParentContext sets the context spans are started from.
func WithParentContext(ctx context.Context) OTelOption {
	return func(c *OTelConfig) {
		c.Parent = ctx
	}
}

// WithTraceNotify enables/disables notification spans.
func WithTraceNotify(enabled bool) OTelOption {
	return func(c *OTelConfig) {
		c.TraceNotify = enabled
	}
}

// WithCellFilter sets a filter function for cells.
func WithCellFilter(filter func(cell observable.Source) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:  defaultTracerName,
		TraceNotify: true,
	}
}

// Tracer is the OpenTelemetry implementation of observable.Hooks.
type Tracer struct {
	config OTelConfig
}

// OpenTelemetry creates hooks that trace computed cell evaluations.
//
// Each evaluation gets an "observable.evaluate" span carrying the cell name,
// ID and the size of the dependency set it settled on. A computation that
// panics ends its span with an error status. Notification passes are
// recorded as "observable.notify" spans with the number of listeners reached.
func OpenTelemetry(opts ...OTelOption) *Tracer {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Parent == nil {
		config.Parent = context.Background()
	}

	// Resolve tracer from the configured or global provider
	if config.TracerProvider != nil {
		config.tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		config.tracer = otel.Tracer(config.TracerName)
	}

	return &Tracer{config: config}
}

// OnNotify records a notification span.
func (t *Tracer) OnNotify(cell observable.Source, listeners int) {
	if !t.config.TraceNotify || !t.traced(cell) {
		return
	}
	_, span := t.config.tracer.Start(t.config.Parent, notifySpanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(append(cellAttributes(cell),
			attribute.Int("observable.listeners", listeners),
		)...),
	)
	span.End()
}

// OnEvaluate starts an evaluation span and ends it when the evaluation
// settles.
func (t *Tracer) OnEvaluate(cell observable.Source) func(int, error) {
	if !t.traced(cell) {
		return nil
	}
	_, span := t.config.tracer.Start(t.config.Parent, evaluateSpanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(cellAttributes(cell)...),
	)

	return func(deps int, err error) {
		defer span.End()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return
		}
		span.SetAttributes(attribute.Int("observable.dependencies", deps))
		span.SetStatus(codes.Ok, "")
	}
}

func (t *Tracer) traced(cell observable.Source) bool {
	return t.config.Filter == nil || t.config.Filter(cell)
}

func cellAttributes(cell observable.Source) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("observable.cell", cellLabel(cell)),
		attribute.Int64("observable.cell_id", int64(cell.ID())),
	}
}

var _ observable.Hooks = (*Tracer)(nil)
