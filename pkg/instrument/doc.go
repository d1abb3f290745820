// Package instrument provides observable.Hooks implementations for
// production use.
//
// This package includes:
//   - Prometheus metrics for notifications and evaluations
//   - OpenTelemetry spans around computed cell evaluations
//   - Structured logging through log/slog
//   - Chain, to install several hooks on one tracker
//
// # Prometheus Metrics
//
// Prometheus collects counters and histograms labelled by cell name. Unnamed
// cells share the "anonymous" label, so name the cells you want to tell
// apart with observable.WithName.
//
//	tracker := observable.NewTracker(
//	    observable.WithHooks(instrument.Prometheus(
//	        instrument.WithNamespace("myapp"),
//	    )),
//	)
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
//
// Metrics collected:
//   - observable_notifications_total: notification passes by cell
//   - observable_listeners_notified_total: listener calls by cell
//   - observable_evaluations_total: evaluations by cell and status
//   - observable_evaluation_duration_seconds: evaluation duration histogram
//   - observable_dependencies: dependency count after the last evaluation
//
// # OpenTelemetry
//
// OpenTelemetry starts an "observable.evaluate" span for every evaluation
// and records an "observable.notify" span for every notification pass. The
// tracer comes from the global provider unless WithTracerProvider is given:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
//
// # Combining Hooks
//
//	tracker.SetHooks(instrument.Chain(
//	    instrument.Prometheus(),
//	    instrument.OpenTelemetry(),
//	    instrument.Logger(slog.Default()),
//	))
package instrument
