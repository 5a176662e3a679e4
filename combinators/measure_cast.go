// SPDX-License-Identifier: MIT

package combinators

import (
	"math"

	"github.com/katalvlaran/dpchain/core"
	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/measures"
	"github.com/katalvlaran/dpchain/numeric"
)

// MakePureDPToFixedApproxDP restates an ε-DP measurement as (ε, 0)-DP.
func MakePureDPToFixedApproxDP[TI, TO, QI any, Q numeric.Float](
	m core.Measurement[TI, TO, QI, Q],
) (core.Measurement[TI, TO, QI, measures.EpsDelta[Q]], error) {
	if err := requireMeasure[measures.MaxDivergence[Q]](m.OutputMeasure()); err != nil {
		return core.Measurement[TI, TO, QI, measures.EpsDelta[Q]]{}, err
	}
	inner := m.PrivacyMap()
	return core.NewMeasurement(
		m.InputDomain(), m.OutputDomain(), m.Function(), m.InputMetric(),
		measures.FixedSmoothedMaxDivergence[Q]{},
		core.NewPrivacyMap(func(dIn QI) (measures.EpsDelta[Q], error) {
			eps, err := inner.Eval(dIn)
			if err != nil {
				return measures.EpsDelta[Q]{}, err
			}
			return measures.EpsDelta[Q]{Epsilon: eps}, nil
		}),
	)
}

// MakePureDPToZCDP restates an ε-DP measurement as ρ-zCDP with ρ = ε²/2.
func MakePureDPToZCDP[TI, TO, QI any, Q numeric.Float](
	m core.Measurement[TI, TO, QI, Q],
) (core.Measurement[TI, TO, QI, Q], error) {
	if err := requireMeasure[measures.MaxDivergence[Q]](m.OutputMeasure()); err != nil {
		return core.Measurement[TI, TO, QI, Q]{}, err
	}
	inner := m.PrivacyMap()
	return core.NewMeasurement(
		m.InputDomain(), m.OutputDomain(), m.Function(), m.InputMetric(),
		measures.ZeroConcentratedDivergence[Q]{},
		core.NewPrivacyMap(func(dIn QI) (Q, error) {
			eps, err := inner.Eval(dIn)
			if err != nil {
				return 0, err
			}
			sq, err := numeric.InfMul(eps, eps)
			if err != nil {
				return 0, err
			}
			return numeric.InfDiv(sq, 2)
		}),
	)
}

// MakeZCDPToApproxDP restates a ρ-zCDP measurement as the privacy curve
// ε(δ) = ρ + 2·√(ρ·ln(1/δ)).
func MakeZCDPToApproxDP[TI, TO, QI any, Q numeric.Float](
	m core.Measurement[TI, TO, QI, Q],
) (core.Measurement[TI, TO, QI, measures.PrivacyCurve[Q]], error) {
	if err := requireMeasure[measures.ZeroConcentratedDivergence[Q]](m.OutputMeasure()); err != nil {
		return core.Measurement[TI, TO, QI, measures.PrivacyCurve[Q]]{}, err
	}
	inner := m.PrivacyMap()
	return core.NewMeasurement(
		m.InputDomain(), m.OutputDomain(), m.Function(), m.InputMetric(),
		measures.SmoothedMaxDivergence[Q]{},
		core.NewPrivacyMap(func(dIn QI) (measures.PrivacyCurve[Q], error) {
			rho, err := inner.Eval(dIn)
			if err != nil {
				return measures.PrivacyCurve[Q]{}, err
			}
			if r := float64(rho); math.IsNaN(r) || r < 0 {
				return measures.PrivacyCurve[Q]{}, errs.Errorf(errs.FailedRelation, "rho must be non-negative, got %v", rho)
			}
			return measures.NewPrivacyCurve(func(delta Q) (Q, error) {
				return zcdpEpsilon(rho, delta)
			}), nil
		}),
	)
}

func zcdpEpsilon[Q numeric.Float](rho, delta Q) (Q, error) {
	if rho == 0 {
		return 0, nil
	}
	inv, err := numeric.InfDiv(1, delta)
	if err != nil {
		return 0, err
	}
	logInv, err := numeric.InfLn(inv)
	if err != nil {
		return 0, err
	}
	prod, err := numeric.InfMul(rho, logInv)
	if err != nil {
		return 0, err
	}
	root, err := numeric.InfSqrt(prod)
	if err != nil {
		return 0, err
	}
	twice, err := numeric.InfMul(root, 2)
	if err != nil {
		return 0, err
	}
	return numeric.InfAdd(rho, twice)
}

// MakeFixDelta fixes the free δ of a privacy-curve measurement, yielding an
// (ε, δ) measurement whose map depends on d_in only. delta must lie in (0, 1].
func MakeFixDelta[TI, TO, QI any, Q numeric.Float](
	m core.Measurement[TI, TO, QI, measures.PrivacyCurve[Q]],
	delta Q,
) (core.Measurement[TI, TO, QI, measures.EpsDelta[Q]], error) {
	var zero core.Measurement[TI, TO, QI, measures.EpsDelta[Q]]
	if err := requireMeasure[measures.SmoothedMaxDivergence[Q]](m.OutputMeasure()); err != nil {
		return zero, err
	}
	if d := float64(delta); math.IsNaN(d) || d <= 0 || d > 1 {
		return zero, errs.Errorf(errs.MakeMeasurement, "delta must lie in (0, 1], got %v", delta)
	}
	inner := m.PrivacyMap()
	return core.NewMeasurement(
		m.InputDomain(), m.OutputDomain(), m.Function(), m.InputMetric(),
		measures.FixedSmoothedMaxDivergence[Q]{},
		core.NewPrivacyMap(func(dIn QI) (measures.EpsDelta[Q], error) {
			curve, err := inner.Eval(dIn)
			if err != nil {
				return measures.EpsDelta[Q]{}, err
			}
			eps, err := curve.Epsilon(delta)
			if err != nil {
				return measures.EpsDelta[Q]{}, err
			}
			return measures.EpsDelta[Q]{Epsilon: eps, Delta: delta}, nil
		}),
	)
}

func requireMeasure[M core.Measure](got core.Measure) error {
	var want M
	if !want.Equal(got) {
		return errs.New(errs.MeasureMismatch, core.MismatchMessage("measure", want, got))
	}
	return nil
}
