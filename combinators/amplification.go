// SPDX-License-Identifier: MIT

package combinators

import (
	"github.com/katalvlaran/dpchain/core"
	"github.com/katalvlaran/dpchain/domains"
	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/numeric"
)

// MakePopulationAmplification tightens the privacy map of m, whose input is a
// simple random sample of known size drawn from a population of
// populationSize records. The sampling fraction must lie strictly inside
// (0, 1) and the measure must implement core.Amplifier.
func MakePopulationAmplification[TI, TO, QI, QO any](
	m core.Measurement[TI, TO, QI, QO],
	populationSize int,
) (core.Measurement[TI, TO, QI, QO], error) {
	var zero core.Measurement[TI, TO, QI, QO]
	sized, ok := m.InputDomain().(domains.Sized)
	if !ok {
		return zero, errs.Errorf(errs.MakeMeasurement, "input domain %s must be sized", m.InputDomain())
	}
	sampleSize, known := sized.Size()
	if !known {
		return zero, errs.Errorf(errs.MakeMeasurement, "input domain %s must have a known size", m.InputDomain())
	}
	if populationSize <= 0 || sampleSize <= 0 || sampleSize >= populationSize {
		return zero, errs.Errorf(errs.MakeMeasurement,
			"sampling fraction %d/%d must lie strictly between 0 and 1", sampleSize, populationSize)
	}
	amplifier, ok := m.OutputMeasure().(core.Amplifier[QO])
	if !ok {
		return zero, errs.Errorf(errs.MakeMeasurement, "%s has no amplification bound", m.OutputMeasure())
	}
	fraction, err := numeric.InfDiv(float64(sampleSize), float64(populationSize))
	if err != nil {
		return zero, errs.Reclassify(errs.MakeMeasurement, "sampling fraction", err)
	}

	inner := m.PrivacyMap()
	return core.NewMeasurement(
		m.InputDomain(),
		m.OutputDomain(),
		m.Function(),
		m.InputMetric(),
		m.OutputMeasure(),
		core.NewPrivacyMap(func(dIn QI) (QO, error) {
			loss, err := inner.Eval(dIn)
			if err != nil {
				return loss, err
			}
			return amplifier.Amplify(loss, fraction)
		}),
	)
}
