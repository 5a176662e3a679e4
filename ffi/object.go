// SPDX-License-Identifier: MIT

package ffi

import (
	"github.com/katalvlaran/dpchain/dtype"
	"github.com/katalvlaran/dpchain/erased"
)

// ObjectNew erases value as the descriptor desc, converting numeric
// elements where nothing is lost.
func ObjectNew(desc string, value any) Result[Handle] {
	t, err := dtype.Parse(desc)
	if err != nil {
		return fail[Handle]("object_new", err)
	}
	o, err := erased.Coerce(t, value)
	return result("object_new", o, err)
}

// ObjectNewEpsDelta builds an (ε, δ) distance with components of type desc.
func ObjectNewEpsDelta(desc string, eps, delta float64) Result[Handle] {
	s, err := lookup(desc, "(ε, δ) distance", func(s shape) bool { return s.epsDelta != nil })
	if err != nil {
		return fail[Handle]("object_new_eps_delta", err)
	}
	o, err := s.epsDelta(eps, delta)
	return result("object_new_eps_delta", o, err)
}

// ObjectType returns the descriptor of the object behind h.
func ObjectType(h Handle) Result[string] {
	o, err := get[*erased.Object](h)
	if err != nil {
		return fail[string]("object_type", err)
	}
	return okay(o.Type().Descriptor)
}

// ObjectValue returns the Go value of the object behind h.
func ObjectValue(h Handle) Result[any] {
	o, err := get[*erased.Object](h)
	if err != nil {
		return fail[any]("object_value", err)
	}
	return okay(o.Value())
}

// ObjectFloat64 returns a float64 object's value.
func ObjectFloat64(h Handle) Result[float64] {
	o, err := get[*erased.Object](h)
	if err != nil {
		return fail[float64]("object_float64", err)
	}
	v, err := erased.Downcast[float64](o)
	return value("object_float64", v, err)
}

// ObjectFree releases an object handle.
func ObjectFree(h Handle) *ErrorRecord { return release[*erased.Object](h) }
