// SPDX-License-Identifier: MIT

// Package dpchain is a toolkit for building differentially private
// computations whose end-to-end guarantee holds by construction.
//
// Pipelines are assembled from deterministic transformations and randomized
// measurements. Each carries its input and output domains, the metric or
// measure distances are taken in, and a map bounding how input distances
// translate to output distances. Chaining and composing only succeeds when
// the pieces fit, so a finished pipeline already knows its privacy loss.
//
// Layout:
//
//	errs/        error taxonomy shared by every package and the C boundary
//	numeric/     arithmetic rounded toward the conservative side
//	dtype/       runtime type descriptors
//	core/        Domain, Metric, Measure, Transformation, Measurement, Postprocessor
//	domains/     atom and vector domains
//	metrics/     dataset and sensitivity metrics
//	measures/    pure, approximate and zero-concentrated privacy measures
//	combinators/ chaining, composition, amplification, measure casts
//	accountant/  privacy filters and odometers for adaptive composition
//	ledger/      SQLite record of admitted measurements
//	mechanisms/  clamp, sums, Laplace, randomized response
//	erased/      the same algebra over runtime-typed values
//	ffi/         handle-based entry points for foreign callers
//	pipeline/    YAML pipeline documents
//	cmd/dpchain  command-line tool
//
// Quick start:
//
//	clamp, _ := mechanisms.MakeClamp(0.0, 1.0, domains.WithSize(4))
//	sum, _ := mechanisms.MakeSizedBoundedSum(4, 0.0, 1.0)
//	lap, _ := mechanisms.MakeLaplace(1.0)
//	t, _ := combinators.MakeChainTT(sum, clamp)
//	m, _ := combinators.MakeChainMT(lap, t)
//	eps, _ := m.Map(2) // privacy loss when one record is swapped
package dpchain
