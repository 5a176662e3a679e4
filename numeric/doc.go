// SPDX-License-Identifier: MIT

// Package numeric provides directionally rounded arithmetic for stability and
// privacy maps.
//
// A map bounds a worst case, so every intermediate result is rounded toward
// the more conservative side: Inf* functions round toward +∞ (never
// understate an upper bound), NegInf* functions round toward −∞ (never
// overstate a lower bound). Nearest rounding is never used inside a map.
//
// Floats are computed at their native precision by math/big with an explicit
// rounding mode, so each result is rounded exactly once in the requested
// direction. Integers are computed exactly and rejected on overflow; integer
// division rounds to the ceiling (Inf) or the floor (NegInf). Logarithm and
// exponential are not correctly rounded by the math package, so their results
// are stepped one ulp outward.
//
// Every failure is an errs.FailedFunction: overflow past the carrier's range,
// NaN operands, division by zero, or an operation without a defined result
// (∞ − ∞).
package numeric
