package observable

import (
	"errors"
	"strings"
	"testing"

	coreobs "github.com/vango-dev/observable/pkg/observable"
)

func TestFacadeTypesAreCoreTypes(t *testing.T) {
	var v *Value[int] = coreobs.NewValue(1)
	var c *Computed[int] = NewComputed(func() int { return v.Get() + 1 })

	v.Set(2)
	if c.Get() != 3 {
		t.Fatalf("expected 3, got %d", c.Get())
	}
}

func TestFacadeConstructors(t *testing.T) {
	price := NewNumber(10)
	qty := NewNumber(3)
	total := NewComputed(func() int { return price.Get() * qty.Get() })

	var seen []int
	total.Observe(func(v int) { seen = append(seen, v) })
	qty.Increment()

	if len(seen) != 1 || seen[0] != 40 {
		t.Fatalf("expected [40], got %v", seen)
	}

	flag := NewBool(false)
	if !flag.Toggle() {
		t.Fatal("expected Toggle to return true")
	}

	items := NewArray([]string{"a"})
	all := ConcatArrays(items, NewArrayFunc([]string{"b"}, nil))
	items.Push("c")
	if got := all.Get(); len(got) != 3 || got[2] != "b" {
		t.Fatalf("unexpected concat: %v", got)
	}
	if last, _ := all.Last(); last != "b" {
		t.Fatalf("expected Last b, got %q", last)
	}

	upper := NewComputedArray(func() []string {
		return MapTo(all, strings.ToUpper)
	})
	if upper.Kind() != KindComputedArray || upper.Join("") != "ACB" {
		t.Fatalf("unexpected computed sequence: %v %v", upper.Kind(), upper.Get())
	}

	type box struct{ n int }
	bound := NewBoundComputed(&box{n: 7}, func(b *box) int { return b.n })
	if bound.Get() != 7 {
		t.Fatalf("expected 7, got %d", bound.Get())
	}
}

func TestFacadeMakeAndErrors(t *testing.T) {
	o := MustMake(1.5, WithName("ratio"))
	if o.Kind() != KindNumber || o.Name() != "ratio" {
		t.Fatalf("unexpected cell: %v %q", o.Kind(), o.Name())
	}

	c, err := Make(func() int { return 1 })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !errors.Is(c.SetAny(2), ErrComputedWrite) {
		t.Fatal("expected ErrComputedWrite")
	}
	if _, err := Make(func(int) int { return 0 }); !errors.Is(err, ErrInvalidComputation) {
		t.Fatalf("expected ErrInvalidComputation, got %v", err)
	}
	if !errors.Is(o.SetAny("x"), ErrTypeMismatch) {
		t.Fatal("expected ErrTypeMismatch")
	}
}

func TestFacadeUntracked(t *testing.T) {
	a := NewValue(1)
	b := NewValue(10)
	c := NewComputed(func() int {
		var peeked int
		Untracked(func() { peeked = b.Get() })
		return a.Get() + peeked
	})

	if len(c.Dependencies()) != 1 {
		t.Fatalf("expected only a to be tracked, got %d deps", len(c.Dependencies()))
	}
	b.Set(20)
	if c.Get() != 11 {
		t.Fatalf("expected untracked read not to trigger, got %d", c.Get())
	}
}

func TestFacadeTracker(t *testing.T) {
	tr := NewTracker(WithLogger(nil))
	v := NewValue(1, WithTracker(tr))
	if v.Tracker() != tr {
		t.Fatal("expected cell to be bound to tracker")
	}
	if DefaultTracker() == tr {
		t.Fatal("expected a distinct tracker")
	}
	var l Listener = ListenerFunc(func(any) {})
	v.AddListener(l)
	if v.ListenerCount() != 1 {
		t.Fatal("expected listener to be added")
	}
}
