package instrument

import "github.com/vango-dev/observable/pkg/observable"

// chain calls each hook in order.
type chain []observable.Hooks

// Chain combines hooks into one. Nil entries are skipped. Hooks are called in
// the order given, and evaluation callbacks settle in the same order.
func Chain(hooks ...observable.Hooks) observable.Hooks {
	c := make(chain, 0, len(hooks))
	for _, h := range hooks {
		if h != nil {
			c = append(c, h)
		}
	}
	if len(c) == 1 {
		return c[0]
	}
	return c
}

func (c chain) OnNotify(cell observable.Source, listeners int) {
	for _, h := range c {
		h.OnNotify(cell, listeners)
	}
}

func (c chain) OnEvaluate(cell observable.Source) func(int, error) {
	var dones []func(int, error)
	for _, h := range c {
		if done := h.OnEvaluate(cell); done != nil {
			dones = append(dones, done)
		}
	}
	if len(dones) == 0 {
		return nil
	}
	return func(deps int, err error) {
		for _, done := range dones {
			done(deps, err)
		}
	}
}
