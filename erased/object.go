// SPDX-License-Identifier: MIT

package erased

import (
	"fmt"
	"reflect"

	"github.com/katalvlaran/dpchain/core"
	"github.com/katalvlaran/dpchain/dtype"
	"github.com/katalvlaran/dpchain/errs"
)

// Object is a value of a type known only at run time.
type Object struct {
	typ   dtype.Type
	value any
}

// New erases v.
func New[T any](v T) *Object {
	return &Object{typ: dtype.Of[T](), value: v}
}

// Downcast returns the value of o as T, failing with errs.FailedCast when the
// descriptors differ.
func Downcast[T any](o *Object) (T, error) {
	var zero T
	if o == nil {
		return zero, errs.Errorf(errs.FailedCast, "nil object, expected %s", dtype.Of[T]())
	}
	v, ok := o.value.(T)
	if !ok || !o.typ.Equal(dtype.Of[T]()) {
		return zero, errs.Errorf(errs.FailedCast, "object is %s, expected %s", o.typ, dtype.Of[T]())
	}
	return v, nil
}

// Type returns the descriptor of the held value.
func (o *Object) Type() dtype.Type { return o.typ }

// DynamicType implements dtype.Dynamic.
func (o *Object) DynamicType() dtype.Type { return o.typ }

// Value returns the held value.
func (o *Object) Value() any { return o.value }

func (o *Object) String() string {
	if o == nil {
		return "<nil>"
	}
	return fmt.Sprint(o.value)
}

// Validate implements core.Validator when o is used as a distance.
func (o *Object) Validate() error {
	if o == nil {
		return errs.New(errs.InvalidDistance, "distance is nil")
	}
	return core.ValidateDistance(o.value)
}

// DominatedBy implements core.Dominator when o is used as a distance.
func (o *Object) DominatedBy(other any) (bool, error) {
	b, ok := other.(*Object)
	if !ok || b == nil {
		return false, errs.Errorf(errs.FailedRelation, "cannot compare %s with %T", o.typ, other)
	}
	if !o.typ.Equal(b.typ) {
		return false, errs.Errorf(errs.FailedCast, "cannot compare %s with %s", o.typ, b.typ)
	}
	return core.LessEqual(o.value, b.value)
}

// Coerce erases v as type t, converting element-wise between numeric kinds
// where no information is lost. Float to float conversions round as usual.
// Values that cannot be represented fail with errs.FailedCast.
func Coerce(t dtype.Type, v any) (*Object, error) {
	want := t.Reflect()
	if want == nil {
		return nil, errs.Errorf(errs.FailedCast, "descriptor %q has no run-time type", t)
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, errs.Errorf(errs.FailedCast, "nil value for %s", t)
	}
	if rv.Type() == want {
		return &Object{typ: t, value: v}, nil
	}
	out, err := convert(rv, want)
	if err != nil {
		return nil, errs.Wrap(errs.FailedCast, "coerce to "+t.Descriptor, err)
	}
	return &Object{typ: t, value: out.Interface()}, nil
}

func convert(rv reflect.Value, want reflect.Type) (reflect.Value, error) {
	for rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}
	if !rv.IsValid() || (rv.Kind() == reflect.Interface && rv.IsNil()) {
		return reflect.Value{}, errs.Errorf(errs.FailedCast, "nil element for %s", want)
	}
	switch {
	case rv.Type() == want:
		return rv, nil
	case want.Kind() == reflect.Interface:
		out := reflect.New(want).Elem()
		out.Set(rv)
		return out, nil
	case want.Kind() == reflect.Slice && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array):
		out := reflect.MakeSlice(want, rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			e, err := convert(rv.Index(i), want.Elem())
			if err != nil {
				return reflect.Value{}, errs.Wrap(errs.FailedCast, fmt.Sprintf("element %d", i), err)
			}
			out.Index(i).Set(e)
		}
		return out, nil
	case isNumeric(rv.Kind()) && isNumeric(want.Kind()):
		c := rv.Convert(want)
		if isFloat(rv.Kind()) && isFloat(want.Kind()) {
			// narrowing must be exact, or a distance could round down
			if f := rv.Float(); f != f || c.Float() == f {
				return c, nil
			}
			return reflect.Value{}, errs.Errorf(errs.FailedCast, "%v is not exactly representable as %s", rv.Interface(), want)
		}
		if negative(c) != negative(rv) || c.Convert(rv.Type()).Interface() != rv.Interface() {
			return reflect.Value{}, errs.Errorf(errs.FailedCast, "%v does not fit in %s", rv.Interface(), want)
		}
		return c, nil
	}
	return reflect.Value{}, errs.Errorf(errs.FailedCast, "cannot convert %s to %s", rv.Type(), want)
}

func negative(v reflect.Value) bool {
	switch {
	case v.CanInt():
		return v.Int() < 0
	case v.CanFloat():
		return v.Float() < 0
	}
	return false
}

func isFloat(k reflect.Kind) bool { return k == reflect.Float32 || k == reflect.Float64 }

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
