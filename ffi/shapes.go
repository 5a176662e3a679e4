// SPDX-License-Identifier: MIT

package ffi

import (
	"github.com/katalvlaran/dpchain/core"
	"github.com/katalvlaran/dpchain/domains"
	"github.com/katalvlaran/dpchain/dtype"
	"github.com/katalvlaran/dpchain/erased"
	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/measures"
	"github.com/katalvlaran/dpchain/mechanisms"
	"github.com/katalvlaran/dpchain/metrics"
	"github.com/katalvlaran/dpchain/numeric"
)

// shape holds the instantiations of every generic constructor for one
// carrier descriptor. Nil fields are not defined for that carrier.
type shape struct {
	atom   func() *erased.Domain
	vector func(elem *erased.Domain, opts []domains.VectorOption) (*erased.Domain, error)

	bounded   func(lower, upper any) (*erased.Domain, error)
	absolute  core.Metric
	l1, l2    core.Metric
	clamp     func(lower, upper any, opts []domains.VectorOption) (erased.Transformation, error)
	sum       func(lower, upper any) (erased.Transformation, error)
	sizedSum  func(size int, lower, upper any) (erased.Transformation, error)
	nullable  func() *erased.Domain
	laplace   func(scale float64) (erased.Measurement, error)
	vecLap    func(scale float64, opts []domains.VectorOption) (erased.Measurement, error)
	measures  map[string]func() *erased.Measure
	epsDelta  func(eps, delta float64) (*erased.Object, error)
	curveType dtype.Type

	pureToApprox func(erased.Measurement) (erased.Measurement, error)
	pureToZCDP   func(erased.Measurement) (erased.Measurement, error)
	zcdpToApprox func(erased.Measurement) (erased.Measurement, error)
	fixDelta     func(m erased.Measurement, delta float64) (erased.Measurement, error)
}

var shapes = map[string]shape{
	"bool":    anyShape[bool](),
	"string":  anyShape[string](),
	"int":     integerShape[int](),
	"int8":    integerShape[int8](),
	"int16":   integerShape[int16](),
	"int32":   integerShape[int32](),
	"int64":   integerShape[int64](),
	"uint":    integerShape[uint](),
	"uint8":   integerShape[uint8](),
	"uint16":  integerShape[uint16](),
	"uint32":  integerShape[uint32](),
	"uint64":  integerShape[uint64](),
	"float32": floatShape[float32](),
	"float64": floatShape[float64](),
}

// lookup parses desc and returns its shape. what names the constructor
// family for the error message when the shape lacks it.
func lookup(desc, what string, has func(shape) bool) (shape, error) {
	t, err := dtype.Parse(desc)
	if err != nil {
		return shape{}, err
	}
	s, ok := shapes[t.Descriptor]
	if !ok || !has(s) {
		return shape{}, errs.Errorf(errs.TypeParse, "%s is not defined for %s", what, t)
	}
	return s, nil
}

func anyShape[T any]() shape {
	return shape{
		atom: func() *erased.Domain {
			return erased.EraseDomain[T](domains.NewAtomDomain[T]())
		},
		vector: func(elem *erased.Domain, opts []domains.VectorOption) (*erased.Domain, error) {
			d, ok := elem.Inner().(core.Domain[T])
			if !ok {
				return nil, errs.Errorf(errs.FailedCast, "element domain %s is not a domain of %s", elem, dtype.Of[T]())
			}
			return erased.EraseDomain[[]T](domains.NewVectorDomain(d, opts...)), nil
		},
	}
}

func numberShape[T numeric.Number]() shape {
	s := anyShape[T]()
	s.bounded = func(lower, upper any) (*erased.Domain, error) {
		lo, hi, err := bounds[T](lower, upper)
		if err != nil {
			return nil, err
		}
		d, err := domains.NewBoundedAtomDomain(lo, hi)
		if err != nil {
			return nil, err
		}
		return erased.EraseDomain[T](d), nil
	}
	s.absolute = metrics.AbsoluteDistance[T]{}
	s.l1 = metrics.L1Distance[T]{}
	s.l2 = metrics.L2Distance[T]{}
	s.clamp = func(lower, upper any, opts []domains.VectorOption) (erased.Transformation, error) {
		lo, hi, err := bounds[T](lower, upper)
		if err != nil {
			return erased.Transformation{}, err
		}
		return erasedT(mechanisms.MakeClamp(lo, hi, opts...))
	}
	return s
}

func integerShape[T numeric.Integer]() shape {
	s := numberShape[T]()
	s.sum = func(lower, upper any) (erased.Transformation, error) {
		lo, hi, err := bounds[T](lower, upper)
		if err != nil {
			return erased.Transformation{}, err
		}
		return erasedT(mechanisms.MakeBoundedSum(lo, hi))
	}
	return s
}

func floatShape[T numeric.Float]() shape {
	s := numberShape[T]()
	s.nullable = func() *erased.Domain {
		return erased.EraseDomain[T](domains.NewNullableAtomDomain[T]())
	}
	s.sizedSum = func(size int, lower, upper any) (erased.Transformation, error) {
		lo, hi, err := bounds[T](lower, upper)
		if err != nil {
			return erased.Transformation{}, err
		}
		return erasedT(mechanisms.MakeSizedBoundedSum(size, lo, hi))
	}
	s.laplace = func(scale float64) (erased.Measurement, error) {
		sc, err := coerce[T](scale)
		if err != nil {
			return erased.Measurement{}, err
		}
		return erasedM(mechanisms.MakeLaplace(sc))
	}
	s.vecLap = func(scale float64, opts []domains.VectorOption) (erased.Measurement, error) {
		sc, err := coerce[T](scale)
		if err != nil {
			return erased.Measurement{}, err
		}
		return erasedM(mechanisms.MakeVectorLaplace(sc, opts...))
	}
	s.measures = map[string]func() *erased.Measure{
		"MaxDivergence": func() *erased.Measure {
			return erased.EraseMeasure[T](measures.MaxDivergence[T]{})
		},
		"ZeroConcentratedDivergence": func() *erased.Measure {
			return erased.EraseMeasure[T](measures.ZeroConcentratedDivergence[T]{})
		},
		"FixedSmoothedMaxDivergence": func() *erased.Measure {
			return erased.EraseMeasure[measures.EpsDelta[T]](measures.FixedSmoothedMaxDivergence[T]{})
		},
		"SmoothedMaxDivergence": func() *erased.Measure {
			return erased.EraseMeasure[measures.PrivacyCurve[T]](measures.SmoothedMaxDivergence[T]{})
		},
	}
	s.epsDelta = func(eps, delta float64) (*erased.Object, error) {
		e, err := coerce[T](eps)
		if err != nil {
			return nil, err
		}
		dl, err := coerce[T](delta)
		if err != nil {
			return nil, err
		}
		d := measures.EpsDelta[T]{Epsilon: e, Delta: dl}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		return erased.New(d), nil
	}
	s.curveType = dtype.Of[measures.PrivacyCurve[T]]()
	s.pureToApprox = erased.MakePureDPToFixedApproxDP[T]
	s.pureToZCDP = erased.MakePureDPToZCDP[T]
	s.zcdpToApprox = erased.MakeZCDPToApproxDP[T]
	s.fixDelta = func(m erased.Measurement, delta float64) (erased.Measurement, error) {
		dl, err := coerce[T](delta)
		if err != nil {
			return erased.Measurement{}, err
		}
		return erased.MakeFixDelta(m, dl)
	}
	return s
}

func bounds[T any](lower, upper any) (T, T, error) {
	var zero T
	lo, err := coerce[T](lower)
	if err != nil {
		return zero, zero, errs.Wrap(errs.FailedCast, "lower bound", err)
	}
	hi, err := coerce[T](upper)
	if err != nil {
		return zero, zero, errs.Wrap(errs.FailedCast, "upper bound", err)
	}
	return lo, hi, nil
}

func coerce[T any](v any) (T, error) {
	o, err := erased.Coerce(dtype.Of[T](), v)
	if err != nil {
		var zero T
		return zero, err
	}
	return erased.Downcast[T](o)
}

func erasedT[TI, TO, QI, QO any](t core.Transformation[TI, TO, QI, QO], err error) (erased.Transformation, error) {
	if err != nil {
		return erased.Transformation{}, err
	}
	return erased.EraseTransformation(t)
}

func erasedM[TI, TO, QI, QO any](m core.Measurement[TI, TO, QI, QO], err error) (erased.Measurement, error) {
	if err != nil {
		return erased.Measurement{}, err
	}
	return erased.EraseMeasurement(m)
}

func sizeOptions(size int) []domains.VectorOption {
	if size < 0 {
		return nil
	}
	return []domains.VectorOption{domains.WithSize(size)}
}
