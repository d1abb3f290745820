package instrument

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/observable/pkg/observable"
)

func TestLogger_WritesRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	tr := observable.NewTracker(observable.WithHooks(Logger(logger)))

	a := observable.NewValue(1, observable.WithTracker(tr), observable.WithName("a"))
	observable.NewComputed(func() int { return a.Get() }, observable.WithTracker(tr), observable.WithName("mirror"))
	a.Set(2)

	out := buf.String()
	for _, want := range []string{
		"observable: evaluated",
		"cell=mirror",
		"dependencies=1",
		"observable: notified",
		"cell=a",
		"listeners=1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected log output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestLogger_LogsPanics(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	tr := observable.NewTracker(observable.WithHooks(Logger(logger)), observable.WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))))

	func() {
		defer func() { _ = recover() }()
		observable.NewComputed(func() int { panic("boom") }, observable.WithTracker(tr))
	}()

	out := buf.String()
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "observable: evaluation failed") {
		t.Fatalf("expected an error record, got:\n%s", out)
	}
	if strings.Contains(out, "level=DEBUG") {
		t.Fatalf("expected debug records to be filtered at the default level, got:\n%s", out)
	}
}

func TestLogger_NilUsesDefault(t *testing.T) {
	if Logger(nil).logger != slog.Default() {
		t.Fatal("expected nil logger to fall back to slog.Default()")
	}
}
