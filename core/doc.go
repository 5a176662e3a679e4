// SPDX-License-Identifier: MIT

// Package core defines the metric-space algebra and the three pipeline units
// built on it: Transformation, Measurement and Postprocessor.
//
// A Domain describes the admissible values of a carrier type. A Metric is a
// distance between two such values; a Measure is a distance between two
// output distributions (privacy loss). A (Domain, Metric) pair is a metric
// space only when the metric declares the domain valid, via SpaceChecker.
//
// Transformations are deterministic and carry a StabilityMap; Measurements
// are randomized and carry a PrivacyMap; Postprocessors carry neither. All
// three are immutable values: constructors validate once, copies share the
// underlying Function and map closures, and every method is safe for
// concurrent use.
//
// Maps are monotone upper bounds. They must be built from the directionally
// rounded arithmetic in package numeric; NewStabilityMapFromConstant and
// NewPrivacyMapFromConstant already are.
//
// Errors:
//
//	errs.InvalidMetricSpace - the metric does not declare the domain valid.
//	errs.MakeTransformation - distance type disagrees with the metric.
//	errs.MakeMeasurement    - distance type disagrees with the metric or measure.
//	errs.FailedFunction     - invocation failed, or argument outside the input domain.
//	errs.InvalidDistance    - negative, NaN or otherwise malformed distance.
package core
