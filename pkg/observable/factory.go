package observable

import (
	"reflect"
)

// Make wraps initial in the cell variant that fits it:
//
//   - an Observable is returned unchanged
//   - a func() T becomes a *Computed[any]; a func(R) T does too when a
//     receiver is bound with WithReceiver
//   - a func() []E (or func(R) []E) becomes a *ComputedArray[any] whose
//     value is each result's elements as a []any
//   - a bool becomes a *Bool
//   - a built-in numeric value becomes a *Number of that type
//   - a []any becomes a *Array[any] over the same slice
//   - any other slice becomes a *Array[any] over a copy of its elements,
//     so the caller's slice is not the cell's live value: mutations
//     through the cell do not show up in it, and writes to it are not seen
//     by the cell. Pass a []any, or use NewArray, to share the slice.
//   - anything else becomes a *Value[any]
//
// A computation's shape is taken from its declared result type. A func()
// any returning a slice is a plain computed cell.
//
// The variant, and with it the set of shape operations, is chosen once here
// and does not change if a different kind of value is written later.
//
// Make returns ErrInvalidComputation for other function shapes.
func Make(initial any, opts ...Option) (Observable, error) {
	switch v := initial.(type) {
	case Observable:
		return v, nil
	case nil:
		return NewValue[any](nil, opts...), nil
	case bool:
		return NewBool(v, opts...), nil
	case int:
		return NewNumber(v, opts...), nil
	case int8:
		return NewNumber(v, opts...), nil
	case int16:
		return NewNumber(v, opts...), nil
	case int32:
		return NewNumber(v, opts...), nil
	case int64:
		return NewNumber(v, opts...), nil
	case uint:
		return NewNumber(v, opts...), nil
	case uint8:
		return NewNumber(v, opts...), nil
	case uint16:
		return NewNumber(v, opts...), nil
	case uint32:
		return NewNumber(v, opts...), nil
	case uint64:
		return NewNumber(v, opts...), nil
	case float32:
		return NewNumber(v, opts...), nil
	case float64:
		return NewNumber(v, opts...), nil
	case []any:
		return NewArrayFunc(v, identical, opts...), nil
	}

	rv := reflect.ValueOf(initial)
	switch rv.Kind() {
	case reflect.Func:
		compute, err := computation(rv, applyOptions(opts))
		if err != nil {
			return nil, err
		}
		if rv.Type().Out(0).Kind() == reflect.Slice {
			return NewComputedArrayFunc(func() []any {
				return anySlice(compute())
			}, identical, opts...), nil
		}
		return NewComputed(compute, opts...), nil
	case reflect.Slice:
		return NewArrayFunc(anySlice(initial), identical, opts...), nil
	}

	return NewValue(initial, opts...), nil
}

// MustMake is like Make but panics on error.
func MustMake(initial any, opts ...Option) Observable {
	o, err := Make(initial, opts...)
	if err != nil {
		panic(err)
	}
	return o
}

// anySlice returns the elements of a slice value as a []any. A []any is
// returned as is.
func anySlice(v any) []any {
	if items, ok := v.([]any); ok {
		if items == nil {
			return []any{}
		}
		return items
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return []any{}
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items
}

// computation adapts a reflected function into a func() any.
func computation(fn reflect.Value, o cellOptions) (func() any, error) {
	ft := fn.Type()
	if fn.IsNil() {
		return nil, invalidComputationError(ft, "nil function")
	}
	if ft.NumOut() != 1 {
		return nil, invalidComputationError(ft, "must return exactly one value")
	}
	if ft.IsVariadic() {
		return nil, invalidComputationError(ft, "variadic functions are not supported")
	}

	switch ft.NumIn() {
	case 0:
		return func() any {
			return fn.Call(nil)[0].Interface()
		}, nil
	case 1:
		if !o.hasReceiver {
			return nil, invalidComputationError(ft, "takes an argument but no receiver was bound")
		}
		recv := reflect.ValueOf(o.receiver)
		if !recv.IsValid() {
			recv = reflect.Zero(ft.In(0))
		}
		if !recv.Type().AssignableTo(ft.In(0)) {
			return nil, invalidComputationError(ft, "receiver of type "+recv.Type().String()+" is not assignable")
		}
		args := []reflect.Value{recv}
		return func() any {
			return fn.Call(args)[0].Interface()
		}, nil
	default:
		return nil, invalidComputationError(ft, "takes more than one argument")
	}
}
