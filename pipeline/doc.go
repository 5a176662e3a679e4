// SPDX-License-Identifier: MIT

// Package pipeline reads YAML pipeline documents and builds them through
// the ffi dispatch layer, the same path a foreign caller takes.
//
// A document lists constructor steps in pipeline order, the distances to
// check and optionally an input to release on:
//
//	name: clamped-sum
//	input: {type: "[]float64", value: [0.2, 0.9, 1.5, -0.3]}
//	steps:
//	  - {op: clamp, type: float64, lower: 0, upper: 1, size: 4}
//	  - {op: sized_bounded_sum, type: float64, size: 4, lower: 0, upper: 1}
//	  - {op: laplace, type: float64, scale: 1.0}
//	d_in: {type: uint32, value: 1}
//	d_out: {type: float64, value: 1.0}
//
// Cast steps (pure_dp_to_zcdp, zcdp_to_approx_dp, fix_delta, ...) rewrite the
// measurement built so far instead of chaining a new constructor.
package pipeline
