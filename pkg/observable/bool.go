package observable

// Bool is a value cell holding a bool.
type Bool struct {
	*Value[bool]
}

// NewBool creates a Bool with the given initial value.
func NewBool(initial bool, opts ...Option) *Bool {
	b := &Bool{newValue(initial, opts)}
	b.self = b
	return b
}

// Toggle inverts the value and returns the result.
func (b *Bool) Toggle() bool {
	return b.Set(!b.Peek())
}

// SetTrue sets the value to true.
func (b *Bool) SetTrue() {
	b.Set(true)
}

// SetFalse sets the value to false.
func (b *Bool) SetFalse() {
	b.Set(false)
}

// Kind reports KindBool.
func (b *Bool) Kind() Kind {
	return KindBool
}
