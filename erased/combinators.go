// SPDX-License-Identifier: MIT

package erased

import (
	"github.com/katalvlaran/dpchain/combinators"
	"github.com/katalvlaran/dpchain/core"
	"github.com/katalvlaran/dpchain/domains"
	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/measures"
	"github.com/katalvlaran/dpchain/numeric"
)

// MakeBasicComposition composes ms and releases their outputs as one "[]any"
// object, in order.
func MakeBasicComposition(ms []Measurement) (Measurement, error) {
	for _, m := range ms {
		em, err := erasedMeasure(m)
		if err != nil {
			return Measurement{}, err
		}
		if em.compose == nil {
			return Measurement{}, errs.Errorf(errs.MakeMeasurement, "%s has no composition rule", em.inner)
		}
	}
	composed, err := combinators.MakeBasicComposition(ms)
	if err != nil {
		return Measurement{}, err
	}
	out := domains.NewVectorDomain[any](domains.NewAtomDomain[any](), domains.WithSize(len(ms)))
	return core.NewMeasurement(
		composed.InputDomain(),
		EraseDomain[[]any](out),
		core.NewFallibleFunction(func(arg *Object) (*Object, error) {
			objs, err := composed.Invoke(arg)
			if err != nil {
				return nil, err
			}
			vals := make([]any, len(objs))
			for i, o := range objs {
				vals[i] = o.value
			}
			return New(vals), nil
		}),
		composed.InputMetric(),
		composed.OutputMeasure(),
		composed.PrivacyMap(),
	)
}

// MakePopulationAmplification is combinators.MakePopulationAmplification for
// erased measurements.
func MakePopulationAmplification(m Measurement, populationSize int) (Measurement, error) {
	em, err := erasedMeasure(m)
	if err != nil {
		return Measurement{}, err
	}
	if em.amplify == nil {
		return Measurement{}, errs.Errorf(errs.MakeMeasurement, "%s has no amplification bound", em.inner)
	}
	return combinators.MakePopulationAmplification(m, populationSize)
}

// MakePureDPToFixedApproxDP casts an erased ε-DP measurement with ε of type Q.
func MakePureDPToFixedApproxDP[Q numeric.Float](m Measurement) (Measurement, error) {
	v, err := view[Q](m)
	if err != nil {
		return Measurement{}, err
	}
	cast, err := combinators.MakePureDPToFixedApproxDP(v)
	if err != nil {
		return Measurement{}, err
	}
	return reerase(cast)
}

// MakePureDPToZCDP casts an erased ε-DP measurement to ρ-zCDP.
func MakePureDPToZCDP[Q numeric.Float](m Measurement) (Measurement, error) {
	v, err := view[Q](m)
	if err != nil {
		return Measurement{}, err
	}
	cast, err := combinators.MakePureDPToZCDP(v)
	if err != nil {
		return Measurement{}, err
	}
	return reerase(cast)
}

// MakeZCDPToApproxDP casts an erased ρ-zCDP measurement to a privacy curve.
func MakeZCDPToApproxDP[Q numeric.Float](m Measurement) (Measurement, error) {
	v, err := view[Q](m)
	if err != nil {
		return Measurement{}, err
	}
	cast, err := combinators.MakeZCDPToApproxDP(v)
	if err != nil {
		return Measurement{}, err
	}
	return reerase(cast)
}

// MakeFixDelta fixes δ of an erased privacy-curve measurement.
func MakeFixDelta[Q numeric.Float](m Measurement, delta Q) (Measurement, error) {
	v, err := view[measures.PrivacyCurve[Q]](m)
	if err != nil {
		return Measurement{}, err
	}
	fixed, err := combinators.MakeFixDelta(v, delta)
	if err != nil {
		return Measurement{}, err
	}
	return reerase(fixed)
}

func erasedMeasure(m Measurement) (*Measure, error) {
	em, ok := m.OutputMeasure().(*Measure)
	if !ok {
		return nil, errs.Errorf(errs.MeasureMismatch, "measure %s is not erased", m.OutputMeasure())
	}
	return em, nil
}
