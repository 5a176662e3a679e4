// SPDX-License-Identifier: MIT

package mechanisms

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dpchain/core"
	"github.com/katalvlaran/dpchain/domains"
	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/measures"
	"github.com/katalvlaran/dpchain/metrics"
	"github.com/katalvlaran/dpchain/numeric"
)

// MakeRandomizedResponseBool releases its boolean input with probability
// prob and its negation otherwise. prob must lie in [0.5, 1); the privacy
// loss at any d_in ≥ 1 is ln(prob/(1−prob)).
//
// With constantTime the Bernoulli sampler reads and scans a fixed amount of
// entropy on every call.
func MakeRandomizedResponseBool(prob float64, constantTime bool) (core.Measurement[bool, bool, uint32, float64], error) {
	if math.IsNaN(prob) || prob < 0.5 || prob >= 1 {
		return core.Measurement[bool, bool, uint32, float64]{}, errs.Wrap(errs.MakeMeasurement, fmt.Sprintf("prob %v", prob), ErrProbability)
	}
	eps, err := randomizedResponseEpsilon(prob)
	if err != nil {
		return core.Measurement[bool, bool, uint32, float64]{}, errs.Reclassify(errs.MakeMeasurement, "randomized response", err)
	}
	return core.NewMeasurement(
		domains.NewAtomDomain[bool](),
		domains.NewAtomDomain[bool](),
		core.NewFallibleFunction(func(truth bool) (bool, error) {
			keep, err := sampleBernoulli(prob, constantTime, nil)
			if err != nil {
				return false, err
			}
			return truth == keep, nil
		}),
		metrics.DiscreteDistance{},
		measures.MaxDivergence[float64]{},
		core.NewPrivacyMap(func(dIn uint32) (float64, error) {
			if dIn == 0 {
				return 0, nil
			}
			return eps, nil
		}),
	)
}

func randomizedResponseEpsilon(prob float64) (float64, error) {
	q, err := numeric.NegInfSub(1.0, prob)
	if err != nil {
		return 0, err
	}
	ratio, err := numeric.InfDiv(prob, q)
	if err != nil {
		return 0, err
	}
	return numeric.InfLn(ratio)
}
