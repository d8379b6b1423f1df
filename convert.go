package mapper

import (
	"fmt"
	"math"
	"reflect"
)

// assigner writes src into the settable dst, converting as needed.
type assigner func(dst, src reflect.Value) error

// Compatibility classifies how a source type reaches a destination type.
type Compatibility int

const (
	// Incompatible means no conversion exists.
	Incompatible Compatibility = iota
	// Convertible means a value conversion is applied on every copy.
	Convertible
	// Assignable means the value is assigned without conversion.
	Assignable
	// Identical means the types are the same.
	Identical
)

func (c Compatibility) String() string {
	switch c {
	case Identical:
		return "identical"
	case Assignable:
		return "assignable"
	case Convertible:
		return "convertible"
	case Incompatible:
		return "incompatible"
	default:
		return "unknown"
	}
}

// Classify reports how values of type from can be copied into type to.
func Classify(from, to reflect.Type) Compatibility {
	switch {
	case from == to:
		return Identical
	case from.AssignableTo(to):
		return Assignable
	}
	if _, err := assignerFor(from, to); err == nil {
		return Convertible
	}
	return Incompatible
}

// assignerFor builds the assignment used by default and custom rules.
// Conversions are resolved once here, never on the hot path.
func assignerFor(from, to reflect.Type) (assigner, error) {
	if from == to || from.AssignableTo(to) {
		return assignDirect, nil
	}

	switch {
	case isNumeric(from) && isNumeric(to):
		return numericAssigner(from, to), nil

	case to.Kind() == reflect.Pointer && from.Kind() != reflect.Pointer:
		inner, err := assignerFor(from, to.Elem())
		if err != nil {
			return nil, err
		}
		return func(dst, src reflect.Value) error {
			p := reflect.New(to.Elem())
			if err := inner(p.Elem(), src); err != nil {
				return err
			}
			dst.Set(p)
			return nil
		}, nil

	case from.Kind() == reflect.Pointer && to.Kind() != reflect.Pointer:
		inner, err := assignerFor(from.Elem(), to)
		if err != nil {
			return nil, err
		}
		return func(dst, src reflect.Value) error {
			if src.IsNil() {
				dst.SetZero()
				return nil
			}
			return inner(dst, src.Elem())
		}, nil

	case from.Kind() == reflect.Pointer && to.Kind() == reflect.Pointer:
		inner, err := assignerFor(from.Elem(), to.Elem())
		if err != nil {
			return nil, err
		}
		return func(dst, src reflect.Value) error {
			if src.IsNil() {
				dst.SetZero()
				return nil
			}
			p := reflect.New(to.Elem())
			if err := inner(p.Elem(), src.Elem()); err != nil {
				return err
			}
			dst.Set(p)
			return nil
		}, nil

	case (isInt(from) || isUint(from)) && to.Kind() == reflect.String:
		// Go converts integers to strings as runes; never a field copy.
		return nil, fmt.Errorf("no conversion from %s to %s", from, to)

	case from.Kind() == reflect.Slice && (to.Kind() == reflect.Array || to.Kind() == reflect.Pointer):
		return nil, fmt.Errorf("no conversion from %s to %s", from, to)

	case from.ConvertibleTo(to):
		return func(dst, src reflect.Value) error {
			dst.Set(src.Convert(to))
			return nil
		}, nil
	}

	return nil, fmt.Errorf("no conversion from %s to %s", from, to)
}

func assignDirect(dst, src reflect.Value) error {
	dst.Set(src)
	return nil
}

// numericAssigner converts between integer, unsigned and float kinds.
// Narrowing is checked; values that do not fit fail with ErrOverflow.
func numericAssigner(from, to reflect.Type) assigner {
	switch {
	case isInt(from):
		return func(dst, src reflect.Value) error {
			i := src.Int()
			switch {
			case isInt(to):
				if dst.OverflowInt(i) {
					return overflow(i, to)
				}
				dst.SetInt(i)
			case isUint(to):
				if i < 0 || dst.OverflowUint(uint64(i)) {
					return overflow(i, to)
				}
				dst.SetUint(uint64(i))
			default:
				dst.SetFloat(float64(i))
			}
			return nil
		}
	case isUint(from):
		return func(dst, src reflect.Value) error {
			u := src.Uint()
			switch {
			case isInt(to):
				if u > math.MaxInt64 || dst.OverflowInt(int64(u)) {
					return overflow(u, to)
				}
				dst.SetInt(int64(u))
			case isUint(to):
				if dst.OverflowUint(u) {
					return overflow(u, to)
				}
				dst.SetUint(u)
			default:
				dst.SetFloat(float64(u))
			}
			return nil
		}
	default:
		return func(dst, src reflect.Value) error {
			f := src.Float()
			switch {
			case isInt(to):
				if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 || dst.OverflowInt(int64(f)) {
					return overflow(f, to)
				}
				dst.SetInt(int64(f))
			case isUint(to):
				if math.IsNaN(f) || f < 0 || f >= math.MaxUint64 || dst.OverflowUint(uint64(f)) {
					return overflow(f, to)
				}
				dst.SetUint(uint64(f))
			default:
				if dst.OverflowFloat(f) {
					return overflow(f, to)
				}
				dst.SetFloat(f)
			}
			return nil
		}
	}
}

func overflow(v any, to reflect.Type) error {
	return fmt.Errorf("%w: %v into %s", ErrOverflow, v, to)
}

func isInt(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(t reflect.Type) bool {
	return t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64
}

func isNumeric(t reflect.Type) bool {
	return isInt(t) || isUint(t) || isFloat(t)
}
