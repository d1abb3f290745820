package observable

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
)

// Tracker is the dependency-collection context shared by a family of cells.
//
// It owns one collector stack per goroutine. A computed cell pushes a fresh
// Collector before running its computation and pops it afterwards; every cell
// read in between records itself into the collector on top of the reading
// goroutine's stack. Because it is a stack, a computation that constructs or
// evaluates another computed cell gets its own collector and the outer one is
// left untouched.
//
// Stacks are confined to the goroutine that pushed them, so two goroutines
// evaluating computed cells at the same time never see each other's reads.
// Cascades themselves are synchronous and stay on the writing goroutine.
type Tracker struct {
	// stacks maps goroutine id to *collectorStack.
	stacks sync.Map

	// active counts pushed frames across all goroutines. Reads skip the
	// goroutine lookup entirely while it is zero.
	active atomic.Int64

	mu     sync.RWMutex
	hooks  Hooks
	logger *slog.Logger
}

// collectorStack is the per-goroutine stack. A nil frame suspends tracking
// (see Untracked).
type collectorStack struct {
	frames []*Collector
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithHooks installs instrumentation hooks on the tracker.
func WithHooks(h Hooks) TrackerOption {
	return func(t *Tracker) {
		t.hooks = h
	}
}

// WithLogger sets the logger used for dependency and failure events.
func WithLogger(l *slog.Logger) TrackerOption {
	return func(t *Tracker) {
		t.logger = l
	}
}

// NewTracker creates an independent dependency-collection context.
// Cells only record reads into collectors of their own tracker.
func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

var defaultTracker = NewTracker()

// DefaultTracker returns the tracker used by cells created without
// WithTracker.
func DefaultTracker() *Tracker {
	return defaultTracker
}

// SetHooks replaces the tracker's hooks. A nil value disables them.
func (t *Tracker) SetHooks(h Hooks) {
	t.mu.Lock()
	t.hooks = h
	t.mu.Unlock()
}

// Hooks returns the installed hooks, or nil.
func (t *Tracker) Hooks() Hooks {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.hooks
}

// SetLogger replaces the tracker's logger. A nil value restores slog.Default.
func (t *Tracker) SetLogger(l *slog.Logger) {
	t.mu.Lock()
	t.logger = l
	t.mu.Unlock()
}

// Logger returns the tracker's logger, falling back to slog.Default.
func (t *Tracker) Logger() *slog.Logger {
	t.mu.RLock()
	l := t.logger
	t.mu.RUnlock()
	if l == nil {
		return slog.Default()
	}
	return l
}

// Collect runs fn under a fresh collector and returns the cells read during
// it, in first-read order. The collector is popped even if fn panics.
func (t *Tracker) Collect(fn func()) []Source {
	c := newCollector()
	t.push(c)
	defer t.pop()
	fn()
	return c.Sources()
}

// Untracked runs fn with tracking suspended: reads inside fn do not become
// dependencies of the computation currently being evaluated.
func (t *Tracker) Untracked(fn func()) {
	t.push(nil)
	defer t.pop()
	fn()
}

// Depth returns the number of collectors pushed by the calling goroutine.
// It is zero outside any evaluation.
func (t *Tracker) Depth() int {
	if t.active.Load() == 0 {
		return 0
	}
	st, ok := t.stacks.Load(goroutineID())
	if !ok {
		return 0
	}
	return len(st.(*collectorStack).frames)
}

// push adds c on top of the calling goroutine's stack.
func (t *Tracker) push(c *Collector) {
	gid := goroutineID()
	st, _ := t.stacks.LoadOrStore(gid, &collectorStack{})
	s := st.(*collectorStack)
	s.frames = append(s.frames, c)
	t.active.Add(1)
}

// pop removes the top of the calling goroutine's stack. The stack entry is
// dropped once empty so finished goroutines do not leak.
func (t *Tracker) pop() {
	gid := goroutineID()
	st, ok := t.stacks.Load(gid)
	if !ok {
		return
	}
	s := st.(*collectorStack)
	if n := len(s.frames); n > 0 {
		s.frames[n-1] = nil
		s.frames = s.frames[:n-1]
		t.active.Add(-1)
	}
	if len(s.frames) == 0 {
		t.stacks.Delete(gid)
	}
}

// record adds src to the active collector of the calling goroutine, if any.
func (t *Tracker) record(src Source) {
	if t.active.Load() == 0 {
		return
	}
	st, ok := t.stacks.Load(goroutineID())
	if !ok {
		return
	}
	s := st.(*collectorStack)
	if n := len(s.frames); n > 0 && s.frames[n-1] != nil {
		s.frames[n-1].add(src)
	}
}

// goroutineID returns the current goroutine's id, parsed from the header
// line of runtime.Stack ("goroutine <id> [...").
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		c := buf[i]
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}

// Collector is the set of cells read during one evaluation. Cells are kept
// once each, in the order they were first read.
type Collector struct {
	seen    map[uint64]struct{}
	sources []Source
}

func newCollector() *Collector {
	return &Collector{seen: make(map[uint64]struct{})}
}

func (c *Collector) add(src Source) {
	id := src.ID()
	if _, ok := c.seen[id]; ok {
		return
	}
	c.seen[id] = struct{}{}
	c.sources = append(c.sources, src)
}

// Len returns the number of distinct cells collected.
func (c *Collector) Len() int {
	return len(c.sources)
}

// Sources returns a copy of the collected cells.
func (c *Collector) Sources() []Source {
	out := make([]Source, len(c.sources))
	copy(out, c.sources)
	return out
}
