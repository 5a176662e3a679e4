// SPDX-License-Identifier: MIT

// Package erased wraps the generic algebra behind one dynamically typed
// shape, for callers that pick carrier and distance types at run time.
//
// An Object is a value paired with its dtype.Type descriptor. Domain, Metric
// and Measure wrap concrete instances; their Equal compares descriptors
// first and falls back to the wrapped values. The erased Transformation,
// Measurement and Postprocessor are the core generic types instantiated at
// *Object, so every combinator applies to them unchanged:
//
//	t, _ := erased.EraseTransformation(clamp)
//	m, _ := erased.EraseMeasurement(laplace)
//	out, err := erased.Start(t, nil).Then(sum, nil).Then(m, nil).Measurement()
//
// Invoking an erased object with an argument of the wrong descriptor fails
// with errs.FailedCast.
package erased
