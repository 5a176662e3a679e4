// SPDX-License-Identifier: MIT

package erased

import (
	"github.com/katalvlaran/dpchain/core"
)

// Transformation is a transformation whose carriers and distances are erased.
type Transformation = core.Transformation[*Object, *Object, *Object, *Object]

// Measurement is a measurement whose carriers and distances are erased.
type Measurement = core.Measurement[*Object, *Object, *Object, *Object]

// Postprocessor is a postprocessor whose carriers are erased.
type Postprocessor = core.Postprocessor[*Object, *Object]

// EraseTransformation wraps t. Invoking or mapping the result with an object
// of the wrong descriptor fails with errs.FailedCast.
func EraseTransformation[TI, TO, QI, QO any](t core.Transformation[TI, TO, QI, QO]) (Transformation, error) {
	return core.NewTransformation(
		EraseDomain(t.InputDomain()),
		EraseDomain(t.OutputDomain()),
		eraseFunction(t.Function()),
		EraseMetric(t.InputMetric()),
		EraseMetric(t.OutputMetric()),
		core.NewStabilityMap(eraseRelation(t.StabilityMap().Eval)),
	)
}

// EraseMeasurement wraps m. See EraseTransformation.
func EraseMeasurement[TI, TO, QI, QO any](m core.Measurement[TI, TO, QI, QO]) (Measurement, error) {
	return core.NewMeasurement(
		EraseDomain(m.InputDomain()),
		EraseDomain(m.OutputDomain()),
		eraseFunction(m.Function()),
		EraseMetric(m.InputMetric()),
		EraseMeasure[QO](m.OutputMeasure()),
		core.NewPrivacyMap(eraseRelation(m.PrivacyMap().Eval)),
	)
}

// ErasePostprocessor wraps p.
func ErasePostprocessor[TI, TO any](p core.Postprocessor[TI, TO]) (Postprocessor, error) {
	return core.NewPostprocessor(
		EraseDomain(p.InputDomain()),
		EraseDomain(p.OutputDomain()),
		eraseFunction(p.Function()),
	)
}

func eraseFunction[TI, TO any](f core.Function[TI, TO]) core.Function[*Object, *Object] {
	return core.NewFallibleFunction(func(arg *Object) (*Object, error) {
		x, err := Downcast[TI](arg)
		if err != nil {
			return nil, err
		}
		y, err := f.Eval(x)
		if err != nil {
			return nil, err
		}
		return New(y), nil
	})
}

func eraseRelation[QI, QO any](eval func(QI) (QO, error)) func(*Object) (*Object, error) {
	return func(dIn *Object) (*Object, error) {
		d, err := Downcast[QI](dIn)
		if err != nil {
			return nil, err
		}
		out, err := eval(d)
		if err != nil {
			return nil, err
		}
		return New(out), nil
	}
}

// view restates the erased measurement m with its concrete measure and
// distances of type Q, so combinators that inspect the measure apply.
func view[Q any](m Measurement) (core.Measurement[*Object, *Object, *Object, Q], error) {
	var zero core.Measurement[*Object, *Object, *Object, Q]
	em, err := erasedMeasure(m)
	if err != nil {
		return zero, err
	}
	pm := m.PrivacyMap()
	return core.NewMeasurement(
		m.InputDomain(), m.OutputDomain(), m.Function(), m.InputMetric(),
		em.inner,
		core.NewPrivacyMap(func(dIn *Object) (Q, error) {
			out, err := pm.Eval(dIn)
			if err != nil {
				var none Q
				return none, err
			}
			return Downcast[Q](out)
		}),
	)
}

// reerase is the inverse of view.
func reerase[Q any](v core.Measurement[*Object, *Object, *Object, Q]) (Measurement, error) {
	pm := v.PrivacyMap()
	return core.NewMeasurement(
		v.InputDomain(), v.OutputDomain(), v.Function(), v.InputMetric(),
		EraseMeasure[Q](v.OutputMeasure()),
		core.NewPrivacyMap(func(dIn *Object) (*Object, error) {
			out, err := pm.Eval(dIn)
			if err != nil {
				return nil, err
			}
			return New(out), nil
		}),
	)
}
