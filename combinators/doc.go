// SPDX-License-Identifier: MIT

// Package combinators builds new Transformations and Measurements from
// existing ones, re-deriving their maps.
//
// Chaining:
//
//	MakeChainTT(outer, inner) - outer∘inner; stability maps compose.
//	MakeChainMT(meas, trans)  - privacy map ∘ stability map.
//	MakeChainPM(post, meas)   - privacy map unchanged (postprocessing).
//
// Adjoining domains and metrics must be structurally equal; a mismatch fails
// with errs.DomainMismatch or errs.MetricMismatch and prints both sides.
//
// Composition and casts:
//
//	MakeBasicComposition         - run a fixed list of measurements on the same input.
//	MakePopulationAmplification  - privacy amplification by subsampling.
//	MakePureDPToFixedApproxDP    - ε ↦ (ε, 0).
//	MakePureDPToZCDP             - ε ↦ ε²/2.
//	MakeZCDPToApproxDP           - ρ ↦ curve δ ↦ ρ + 2√(ρ·ln(1/δ)).
//	MakeFixDelta                 - curve ↦ (ε(δ), δ) at a fixed δ.
//
// Adaptive composition with a running budget lives in package accountant.
// Every combinator shares the closures of its arguments and never swallows
// a child's error.
package combinators
