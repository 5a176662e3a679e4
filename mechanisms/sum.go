// SPDX-License-Identifier: MIT

package mechanisms

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dpchain/core"
	"github.com/katalvlaran/dpchain/domains"
	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/metrics"
	"github.com/katalvlaran/dpchain/numeric"
)

// MakeBoundedSum sums integers in [lower, upper] with saturation. Both
// bounds must share a sign so that saturation stays monotone; the
// sensitivity under symmetric distance is d_in·max(|lower|, |upper|).
func MakeBoundedSum[T numeric.Integer](lower, upper T) (core.Transformation[[]T, T, uint32, T], error) {
	var zero core.Transformation[[]T, T, uint32, T]
	bounded, err := domains.NewBoundedAtomDomain(lower, upper)
	if err != nil {
		return zero, errs.Reclassify(errs.MakeTransformation, "bounded sum", err)
	}
	if lower < 0 && upper > 0 {
		return zero, errs.Wrap(errs.MakeTransformation, fmt.Sprintf("bounds [%v, %v]", lower, upper), ErrBoundsSign)
	}
	ideal := upper
	if lower < 0 {
		// upper ≤ 0 here, so |lower| dominates
		if ideal, err = numeric.InfSub(T(0), lower); err != nil {
			return zero, errs.Reclassify(errs.MakeTransformation, "bounded sum", err)
		}
	}

	return core.NewTransformation(
		domains.NewVectorDomain[T](bounded),
		domains.NewAtomDomain[T](),
		core.NewFunction(func(xs []T) T {
			var acc T
			for _, x := range xs {
				acc = saturatingAdd(acc, x)
			}
			return acc
		}),
		metrics.SymmetricDistance{},
		metrics.AbsoluteDistance[T]{},
		core.NewStabilityMap(func(dIn uint32) (T, error) {
			d, err := numeric.InfCast[T](dIn)
			if err != nil {
				return 0, err
			}
			return numeric.InfMul(d, ideal)
		}),
	)
}

// MakeSizedBoundedSum sums exactly size floats in [lower, upper]. Under
// symmetric distance on sized data, neighbours differ by ⌊d_in/2⌋ changed
// records; the bound adds the worst-case float accumulation error
// 2·size²·max(|lower|, |upper|)·ulp.
func MakeSizedBoundedSum[T numeric.Float](size int, lower, upper T) (core.Transformation[[]T, T, uint32, T], error) {
	var zero core.Transformation[[]T, T, uint32, T]
	if size < 0 {
		return zero, errs.Errorf(errs.MakeTransformation, "size must be non-negative, got %d", size)
	}
	bounded, err := domains.NewBoundedAtomDomain(lower, upper)
	if err != nil {
		return zero, errs.Reclassify(errs.MakeTransformation, "sized bounded sum", err)
	}
	if math.IsInf(float64(lower), 0) || math.IsInf(float64(upper), 0) {
		return zero, errs.Errorf(errs.MakeTransformation, "bounds [%v, %v] must be finite", lower, upper)
	}
	rangeWidth, err := numeric.InfSub(upper, lower)
	if err != nil {
		return zero, errs.Reclassify(errs.MakeTransformation, "bound range", err)
	}
	relaxation, err := sumRelaxation(size, max(abs(lower), abs(upper)))
	if err != nil {
		return zero, errs.Reclassify(errs.MakeTransformation, "float relaxation", err)
	}

	return core.NewTransformation(
		domains.NewVectorDomain[T](bounded, domains.WithSize(size)),
		domains.NewAtomDomain[T](),
		core.NewFunction(func(xs []T) T {
			var acc T
			for _, x := range xs {
				acc += x
			}
			return acc
		}),
		metrics.SymmetricDistance{},
		metrics.AbsoluteDistance[T]{},
		core.NewStabilityMap(func(dIn uint32) (T, error) {
			changed, err := numeric.InfCast[T](dIn / 2)
			if err != nil {
				return 0, err
			}
			ideal, err := numeric.InfMul(changed, rangeWidth)
			if err != nil {
				return 0, err
			}
			return numeric.InfAdd(ideal, relaxation)
		}),
	)
}

// sumRelaxation bounds the rounding error of a sequential float sum of size
// terms of magnitude at most m: 2·size²·m·2^-p.
func sumRelaxation[T numeric.Float](size int, m T) (T, error) {
	n, err := numeric.InfCast[T](size)
	if err != nil {
		return 0, err
	}
	n2, err := numeric.InfMul(n, n)
	if err != nil {
		return 0, err
	}
	scaled, err := numeric.InfMul(n2, m)
	if err != nil {
		return 0, err
	}
	twice, err := numeric.InfMul(scaled, 2)
	if err != nil {
		return 0, err
	}
	return numeric.InfMul(twice, unitRoundoff[T]())
}

func unitRoundoff[T numeric.Float]() T {
	var zero T
	if _, ok := any(zero).(float32); ok {
		return T(math.Ldexp(1, -24))
	}
	return T(math.Ldexp(1, -53))
}

func abs[T numeric.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func saturatingAdd[T numeric.Integer](a, b T) T {
	s := a + b
	switch {
	case b > 0 && s < a:
		return maxOf[T]()
	case b < 0 && s > a:
		return minOf[T]()
	}
	return s
}

func maxOf[T numeric.Integer]() T {
	var zero T
	m := ^zero
	if m < 0 {
		// signed: clear the sign bit
		return T(uint64(1)<<(bitSize(zero)-1) - 1)
	}
	return m
}

func minOf[T numeric.Integer]() T {
	var zero T
	if ^zero > 0 {
		return 0
	}
	return -maxOf[T]() - 1
}

func bitSize[T numeric.Integer](x T) uint {
	switch any(x).(type) {
	case int8, uint8:
		return 8
	case int16, uint16:
		return 16
	case int32, uint32:
		return 32
	case int, uint:
		return 32 << (^uint(0) >> 63)
	}
	return 64
}
