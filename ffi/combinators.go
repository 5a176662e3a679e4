// SPDX-License-Identifier: MIT

package ffi

import (
	"github.com/katalvlaran/dpchain/erased"
	"github.com/katalvlaran/dpchain/errs"
)

// BasicComposition composes the measurements behind ms into one that
// releases a "[]any" of their outputs.
func BasicComposition(ms []Handle) Result[Handle] {
	list := make([]erased.Measurement, len(ms))
	for i, h := range ms {
		m, err := get[erased.Measurement](h)
		if err != nil {
			return fail[Handle]("basic_composition", err)
		}
		list[i] = m
	}
	out, err := erased.MakeBasicComposition(list)
	return result("basic_composition", out, err)
}

// PopulationAmplification tightens m for a sample drawn from populationSize
// records.
func PopulationAmplification(m Handle, populationSize int) Result[Handle] {
	me, err := get[erased.Measurement](m)
	if err != nil {
		return fail[Handle]("population_amplification", err)
	}
	out, err := erased.MakePopulationAmplification(me, populationSize)
	return result("population_amplification", out, err)
}

// PureDPToFixedApproxDP restates an ε-DP measurement as (ε, 0)-DP.
func PureDPToFixedApproxDP(m Handle) Result[Handle] {
	return cast("pure_dp_to_fixed_approx_dp", m, func(s shape) func(erased.Measurement) (erased.Measurement, error) {
		return s.pureToApprox
	})
}

// PureDPToZCDP restates an ε-DP measurement as ρ-zCDP.
func PureDPToZCDP(m Handle) Result[Handle] {
	return cast("pure_dp_to_zcdp", m, func(s shape) func(erased.Measurement) (erased.Measurement, error) {
		return s.pureToZCDP
	})
}

// ZCDPToApproxDP restates a ρ-zCDP measurement as a privacy curve.
func ZCDPToApproxDP(m Handle) Result[Handle] {
	return cast("zcdp_to_approx_dp", m, func(s shape) func(erased.Measurement) (erased.Measurement, error) {
		return s.zcdpToApprox
	})
}

// FixDelta fixes δ of a privacy-curve measurement.
func FixDelta(m Handle, delta float64) Result[Handle] {
	me, err := get[erased.Measurement](m)
	if err != nil {
		return fail[Handle]("fix_delta", err)
	}
	dt := me.OutputMeasure().DistanceType()
	for _, desc := range []string{"float32", "float64"} {
		if s := shapes[desc]; s.curveType.Equal(dt) {
			out, err := s.fixDelta(me, delta)
			return result("fix_delta", out, err)
		}
	}
	return fail[Handle]("fix_delta", errs.Errorf(errs.MeasureMismatch, "%s does not measure privacy curves", me.OutputMeasure()))
}

// cast dispatches on the distance descriptor of m's output measure.
func cast(op string, m Handle, pick func(shape) func(erased.Measurement) (erased.Measurement, error)) Result[Handle] {
	me, err := get[erased.Measurement](m)
	if err != nil {
		return fail[Handle](op, err)
	}
	desc := me.OutputMeasure().DistanceType().Descriptor
	s, err := lookup(desc, op, func(s shape) bool { return pick(s) != nil })
	if err != nil {
		return fail[Handle](op, errs.Errorf(errs.MeasureMismatch, "%s: %w", me.OutputMeasure(), err))
	}
	out, err := pick(s)(me)
	return result(op, out, err)
}
