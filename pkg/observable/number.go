package observable

// Numeric is the set of element types a Number cell accepts.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Number is a value cell holding a number.
type Number[N Numeric] struct {
	*Value[N]
}

// NewNumber creates a Number with the given initial value.
func NewNumber[N Numeric](initial N, opts ...Option) *Number[N] {
	n := &Number[N]{newValue(initial, opts)}
	n.self = n
	return n
}

// Increment adds step (default 1) and returns the result.
func (n *Number[N]) Increment(step ...N) N {
	return n.Set(n.Peek() + stepOf(step))
}

// Decrement subtracts step (default 1) and returns the result.
func (n *Number[N]) Decrement(step ...N) N {
	return n.Set(n.Peek() - stepOf(step))
}

// Kind reports KindNumber.
func (n *Number[N]) Kind() Kind {
	return KindNumber
}

func stepOf[N Numeric](step []N) N {
	if len(step) > 0 {
		return step[0]
	}
	return 1
}
