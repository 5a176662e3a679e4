// SPDX-License-Identifier: MIT

package ffi

import (
	"github.com/katalvlaran/dpchain/erased"
	"github.com/katalvlaran/dpchain/mechanisms"
)

// MakeClamp clamps vectors of numeric carrier desc into [lower, upper]. A
// negative size leaves the length unconstrained.
func MakeClamp(desc string, lower, upper any, size int) Result[Handle] {
	s, err := lookup(desc, "clamp", func(s shape) bool { return s.clamp != nil })
	if err != nil {
		return fail[Handle]("make_clamp", err)
	}
	t, err := s.clamp(lower, upper, sizeOptions(size))
	return result("make_clamp", t, err)
}

// MakeBoundedSum sums integers of carrier desc in [lower, upper].
func MakeBoundedSum(desc string, lower, upper any) Result[Handle] {
	s, err := lookup(desc, "bounded sum", func(s shape) bool { return s.sum != nil })
	if err != nil {
		return fail[Handle]("make_bounded_sum", err)
	}
	t, err := s.sum(lower, upper)
	return result("make_bounded_sum", t, err)
}

// MakeSizedBoundedSum sums size floats of carrier desc in [lower, upper].
func MakeSizedBoundedSum(desc string, size int, lower, upper any) Result[Handle] {
	s, err := lookup(desc, "sized bounded sum", func(s shape) bool { return s.sizedSum != nil })
	if err != nil {
		return fail[Handle]("make_sized_bounded_sum", err)
	}
	t, err := s.sizedSum(size, lower, upper)
	return result("make_sized_bounded_sum", t, err)
}

// MakeLaplace adds Laplace(scale) noise to a scalar of float carrier desc.
func MakeLaplace(desc string, scale float64) Result[Handle] {
	s, err := lookup(desc, "laplace", func(s shape) bool { return s.laplace != nil })
	if err != nil {
		return fail[Handle]("make_laplace", err)
	}
	m, err := s.laplace(scale)
	return result("make_laplace", m, err)
}

// MakeVectorLaplace adds Laplace(scale) noise to every element. A negative
// size leaves the length unconstrained.
func MakeVectorLaplace(desc string, scale float64, size int) Result[Handle] {
	s, err := lookup(desc, "vector laplace", func(s shape) bool { return s.vecLap != nil })
	if err != nil {
		return fail[Handle]("make_vector_laplace", err)
	}
	m, err := s.vecLap(scale, sizeOptions(size))
	return result("make_vector_laplace", m, err)
}

// MakeRandomizedResponseBool reports a boolean truthfully with probability
// prob.
func MakeRandomizedResponseBool(prob float64, constantTime bool) Result[Handle] {
	m, err := mechanisms.MakeRandomizedResponseBool(prob, constantTime)
	if err != nil {
		return fail[Handle]("make_randomized_response_bool", err)
	}
	e, err := erased.EraseMeasurement(m)
	return result("make_randomized_response_bool", e, err)
}
