// Package binding holds named references to Go functions that expressions can
// call by name once they are registered with an engine.
package binding

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
)

var (
	// ErrInvalidBinding is returned when a binding is declared without a name,
	// method or instance supplier, or when the method has an unusable signature
	ErrInvalidBinding = errors.New("invalid method binding")

	// ErrInvocation is returned when a bound method cannot be called or fails
	ErrInvocation = errors.New("method invocation failed")
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// MethodBinding is a named, callable reference registered with an engine
type MethodBinding interface {
	// Name is the lookup key expressions use to call the method
	Name() string

	// Method returns the function the binding was declared with
	Method() any

	// Invoke calls the method with args and returns its first result
	Invoke(args ...any) (any, error)

	// NumIn returns the number of arguments a caller passes, receiver excluded
	NumIn() int

	// IsVariadic reports whether the last argument is variadic
	IsVariadic() bool
}

// Static binds a plain function
type Static struct {
	name   string
	method any
	fn     reflect.Value
}

// NewStatic creates a binding for a plain function
func NewStatic(name string, method any) (*Static, error) {
	fn, err := funcValue(name, method)
	if err != nil {
		return nil, err
	}
	return &Static{name: name, method: method, fn: fn}, nil
}

func (s *Static) Name() string     { return s.name }
func (s *Static) Method() any      { return s.method }
func (s *Static) NumIn() int       { return s.fn.Type().NumIn() }
func (s *Static) IsVariadic() bool { return s.fn.Type().IsVariadic() }

// Invoke calls the function with args converted to its parameter types
func (s *Static) Invoke(args ...any) (any, error) {
	in, err := convertArgs(s.name, s.fn.Type(), 0, args)
	if err != nil {
		return nil, err
	}
	return call(s.name, s.fn, in)
}

// Instance binds a method expression such as (*Calculator).Add. The receiver
// is obtained from the supplier each time the binding is invoked, never when
// the binding is declared.
type Instance struct {
	name     string
	method   any
	fn       reflect.Value
	instance func() any
}

// NewInstance creates a binding for a method expression whose first parameter
// is the receiver. The instance supplier is stored and not called.
func NewInstance(name string, method any, instance func() any) (*Instance, error) {
	fn, err := funcValue(name, method)
	if err != nil {
		return nil, err
	}
	if fn.Type().NumIn() == 0 {
		return nil, fmt.Errorf("binding %s: method must take its receiver as the first parameter: %w", name, ErrInvalidBinding)
	}
	if instance == nil {
		return nil, fmt.Errorf("binding %s: instance supplier is required: %w", name, ErrInvalidBinding)
	}
	return &Instance{name: name, method: method, fn: fn, instance: instance}, nil
}

func (b *Instance) Name() string     { return b.name }
func (b *Instance) Method() any      { return b.method }
func (b *Instance) NumIn() int       { return b.fn.Type().NumIn() - 1 }
func (b *Instance) IsVariadic() bool { return b.fn.Type().IsVariadic() }

// Invoke resolves the receiver through the supplier and calls the method on it
func (b *Instance) Invoke(args ...any) (any, error) {
	receiver := b.instance()
	if receiver == nil {
		return nil, fmt.Errorf("binding %s: instance supplier returned nil: %w", b.name, ErrInvocation)
	}

	recvType := b.fn.Type().In(0)
	recv := reflect.ValueOf(receiver)
	if !recv.Type().AssignableTo(recvType) {
		return nil, fmt.Errorf("binding %s: instance of type %s cannot be used as %s: %w",
			b.name, recv.Type(), recvType, ErrInvocation)
	}

	in, err := convertArgs(b.name, b.fn.Type(), 1, args)
	if err != nil {
		return nil, err
	}
	return call(b.name, b.fn, append([]reflect.Value{recv}, in...))
}

func funcValue(name string, method any) (reflect.Value, error) {
	if strings.TrimSpace(name) == "" {
		return reflect.Value{}, fmt.Errorf("name is required: %w", ErrInvalidBinding)
	}
	if method == nil {
		return reflect.Value{}, fmt.Errorf("binding %s: method is required: %w", name, ErrInvalidBinding)
	}
	fn := reflect.ValueOf(method)
	if fn.Kind() != reflect.Func {
		return reflect.Value{}, fmt.Errorf("binding %s: method must be a func, got %T: %w", name, method, ErrInvalidBinding)
	}
	if fn.IsNil() {
		return reflect.Value{}, fmt.Errorf("binding %s: method is nil: %w", name, ErrInvalidBinding)
	}
	return fn, nil
}

// convertArgs matches args against the parameters of fnType starting at skip
func convertArgs(name string, fnType reflect.Type, skip int, args []any) ([]reflect.Value, error) {
	params := fnType.NumIn() - skip
	variadic := fnType.IsVariadic()

	if variadic && len(args) < params-1 {
		return nil, fmt.Errorf("binding %s: expected at least %d arguments, got %d: %w", name, params-1, len(args), ErrInvocation)
	}
	if !variadic && len(args) != params {
		return nil, fmt.Errorf("binding %s: expected %d arguments, got %d: %w", name, params, len(args), ErrInvocation)
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var target reflect.Type
		if variadic && i >= params-1 {
			target = fnType.In(fnType.NumIn() - 1).Elem()
		} else {
			target = fnType.In(i + skip)
		}

		v, err := convert(arg, target)
		if err != nil {
			return nil, fmt.Errorf("binding %s: argument %d: %v: %w", name, i, err, ErrInvocation)
		}
		in[i] = v
	}
	return in, nil
}

func convert(arg any, target reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(target), nil
	}

	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(target) {
		return v, nil
	}
	if isNumeric(v.Kind()) && isNumeric(target.Kind()) {
		if err := checkRepresentable(v, target); err != nil {
			return reflect.Value{}, err
		}
		return v.Convert(target), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, target)
}

// checkRepresentable rejects numeric conversions that would truncate a
// fraction, change sign or overflow the target type
func checkRepresentable(v reflect.Value, target reflect.Type) error {
	z := reflect.New(target).Elem()

	switch {
	case isFloat(v.Kind()):
		f := v.Float()
		if isFloat(target.Kind()) {
			if z.OverflowFloat(f) {
				return fmt.Errorf("%v overflows %s", f, target)
			}
			return nil
		}
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return fmt.Errorf("%v is not a whole number, cannot use as %s", f, target)
		}
		if isUnsigned(target.Kind()) {
			if f < 0 || f >= math.Exp2(64) || z.OverflowUint(uint64(f)) {
				return fmt.Errorf("%v overflows %s", f, target)
			}
			return nil
		}
		if f < math.MinInt64 || f >= math.Exp2(63) || z.OverflowInt(int64(f)) {
			return fmt.Errorf("%v overflows %s", f, target)
		}

	case isUnsigned(v.Kind()):
		u := v.Uint()
		switch {
		case isFloat(target.Kind()):
		case isUnsigned(target.Kind()):
			if z.OverflowUint(u) {
				return fmt.Errorf("%d overflows %s", u, target)
			}
		default:
			if u > math.MaxInt64 || z.OverflowInt(int64(u)) {
				return fmt.Errorf("%d overflows %s", u, target)
			}
		}

	default:
		i := v.Int()
		switch {
		case isFloat(target.Kind()):
		case isUnsigned(target.Kind()):
			if i < 0 || z.OverflowUint(uint64(i)) {
				return fmt.Errorf("%d overflows %s", i, target)
			}
		default:
			if z.OverflowInt(i) {
				return fmt.Errorf("%d overflows %s", i, target)
			}
		}
	}
	return nil
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func call(name string, fn reflect.Value, in []reflect.Value) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("binding %s: panic: %v: %w", name, r, ErrInvocation)
		}
	}()

	out := fn.Call(in)

	fnType := fn.Type()
	if n := fnType.NumOut(); n > 0 && fnType.Out(n-1) == errorType {
		if e := out[n-1]; !e.IsNil() {
			return nil, fmt.Errorf("binding %s: %w: %w", name, ErrInvocation, e.Interface().(error))
		}
		out = out[:n-1]
	}

	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}
