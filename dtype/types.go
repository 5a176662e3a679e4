// SPDX-License-Identifier: MIT

package dtype

import (
	"reflect"
	"strings"

	"github.com/katalvlaran/dpchain/errs"
)

// Type is a runtime type descriptor.
type Type struct {
	// Descriptor is the registry name, e.g. "[]float64".
	Descriptor string

	rt reflect.Type
}

// Of returns the descriptor of T. Types outside the registry still get a
// descriptor (reflect's spelling) but will not Parse.
func Of[T any]() Type {
	rt := reflect.TypeFor[T]()
	return Type{Descriptor: describe(rt), rt: rt}
}

// Reflect returns the underlying reflect.Type.
func (t Type) Reflect() reflect.Type { return t.rt }

// String implements fmt.Stringer.
func (t Type) String() string { return t.Descriptor }

// Equal compares descriptors.
func (t Type) Equal(o Type) bool { return t.Descriptor == o.Descriptor }

// IsZero reports an unset descriptor.
func (t Type) IsZero() bool { return t.Descriptor == "" }

// Elem returns the element descriptor of a slice descriptor.
func (t Type) Elem() (Type, bool) {
	if t.rt == nil || t.rt.Kind() != reflect.Slice {
		return Type{}, false
	}
	e := t.rt.Elem()
	return Type{Descriptor: describe(e), rt: e}, true
}

var anyType = reflect.TypeFor[any]()

func describe(rt reflect.Type) string {
	if rt == nil {
		return "any"
	}
	if rt == anyType {
		return "any"
	}
	if rt.Kind() == reflect.Slice && rt.Name() == "" {
		return "[]" + describe(rt.Elem())
	}
	return rt.String()
}

var scalars = map[string]reflect.Type{
	"bool":    reflect.TypeFor[bool](),
	"int":     reflect.TypeFor[int](),
	"int8":    reflect.TypeFor[int8](),
	"int16":   reflect.TypeFor[int16](),
	"int32":   reflect.TypeFor[int32](),
	"int64":   reflect.TypeFor[int64](),
	"uint":    reflect.TypeFor[uint](),
	"uint8":   reflect.TypeFor[uint8](),
	"uint16":  reflect.TypeFor[uint16](),
	"uint32":  reflect.TypeFor[uint32](),
	"uint64":  reflect.TypeFor[uint64](),
	"float32": reflect.TypeFor[float32](),
	"float64": reflect.TypeFor[float64](),
	"string":  reflect.TypeFor[string](),
}

// Parse resolves a descriptor against the closed registry. Accepted shapes
// are the scalars, "[]S" for every scalar S, and "[]any".
func Parse(desc string) (Type, error) {
	d := strings.TrimSpace(desc)
	if rt, ok := scalars[d]; ok {
		return Type{Descriptor: d, rt: rt}, nil
	}
	if elem, ok := strings.CutPrefix(d, "[]"); ok {
		if elem == "any" {
			rt := reflect.TypeFor[[]any]()
			return Type{Descriptor: d, rt: rt}, nil
		}
		if rt, ok := scalars[elem]; ok {
			return Type{Descriptor: d, rt: reflect.SliceOf(rt)}, nil
		}
	}
	return Type{}, errs.Errorf(errs.TypeParse, "unsupported type descriptor %q", desc)
}

// MustParse is Parse for descriptors known at compile time.
func MustParse(desc string) Type {
	t, err := Parse(desc)
	if err != nil {
		panic(err)
	}
	return t
}

// Scalars lists the scalar descriptors in the registry.
func Scalars() []string {
	return []string{
		"bool", "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64",
		"float32", "float64", "string",
	}
}

// Dynamic is implemented by type-erased values that carry their descriptor at
// run time. Static descriptor checks are skipped for such carriers.
type Dynamic interface {
	DynamicType() Type
}
