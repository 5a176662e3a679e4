// SPDX-License-Identifier: MIT

package mechanisms

import (
	"fmt"
	"math"

	"github.com/google/differential-privacy/go/v3/checks"
	"github.com/google/differential-privacy/go/v3/noise"

	"github.com/katalvlaran/dpchain/core"
	"github.com/katalvlaran/dpchain/domains"
	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/measures"
	"github.com/katalvlaran/dpchain/metrics"
	"github.com/katalvlaran/dpchain/numeric"
)

// laplaceParams converts a noise scale into the (sensitivity, ε) pair the
// noise library is calibrated with: Laplace(b) is (1/b)-DP at sensitivity 1.
func laplaceParams(scale float64) (float64, error) {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return 0, errs.Wrap(errs.MakeMeasurement, fmt.Sprintf("scale %v", scale), ErrScale)
	}
	eps, err := numeric.NegInfDiv(1.0, scale)
	if err != nil {
		return 0, errs.Reclassify(errs.MakeMeasurement, "laplace epsilon", err)
	}
	if err := checks.CheckEpsilonStrict(eps, "Laplace epsilon"); err != nil {
		return 0, errs.Reclassify(errs.MakeMeasurement, "laplace", err)
	}
	return eps, nil
}

func laplaceMap[Q numeric.Float](scale Q) core.PrivacyMap[Q, Q] {
	return core.NewPrivacyMap(func(dIn Q) (Q, error) {
		return numeric.InfDiv(dIn, scale)
	})
}

// MakeLaplace adds Laplace(scale) noise to a scalar. Under absolute distance
// the privacy loss is d_in/scale.
func MakeLaplace[T numeric.Float](scale T) (core.Measurement[T, T, T, T], error) {
	eps, err := laplaceParams(float64(scale))
	if err != nil {
		return core.Measurement[T, T, T, T]{}, err
	}
	lap := noise.Laplace()
	return core.NewMeasurement(
		domains.NewAtomDomain[T](),
		domains.NewAtomDomain[T](),
		core.NewFallibleFunction(func(x T) (T, error) {
			y, err := lap.AddNoiseFloat64(float64(x), 1, 1, eps, 0)
			if err != nil {
				return 0, errs.Errorf(errs.FailedFunction, "laplace: %w", err)
			}
			return T(y), nil
		}),
		metrics.AbsoluteDistance[T]{},
		measures.MaxDivergence[T]{},
		laplaceMap(scale),
	)
}

// MakeVectorLaplace adds independent Laplace(scale) noise to every element.
// Under L1 distance the privacy loss is d_in/scale.
func MakeVectorLaplace[T numeric.Float](scale T, opts ...domains.VectorOption) (core.Measurement[[]T, []T, T, T], error) {
	eps, err := laplaceParams(float64(scale))
	if err != nil {
		return core.Measurement[[]T, []T, T, T]{}, err
	}
	lap := noise.Laplace()
	vec := domains.NewVectorDomain[T](domains.NewAtomDomain[T](), opts...)
	return core.NewMeasurement(
		vec,
		vec,
		core.NewFallibleFunction(func(xs []T) ([]T, error) {
			out := make([]T, len(xs))
			for i, x := range xs {
				y, err := lap.AddNoiseFloat64(float64(x), 1, 1, eps, 0)
				if err != nil {
					return nil, errs.Errorf(errs.FailedFunction, "laplace[%d]: %w", i, err)
				}
				out[i] = T(y)
			}
			return out, nil
		}),
		metrics.L1Distance[T]{},
		measures.MaxDivergence[T]{},
		laplaceMap(scale),
	)
}
