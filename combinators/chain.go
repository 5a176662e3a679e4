// SPDX-License-Identifier: MIT

package combinators

import (
	"github.com/katalvlaran/dpchain/core"
	"github.com/katalvlaran/dpchain/errs"
)

// MakeChainTT returns the transformation outer∘inner.
func MakeChainTT[TI, TX, TO, QI, QX, QO any](
	outer core.Transformation[TX, TO, QX, QO],
	inner core.Transformation[TI, TX, QI, QX],
) (core.Transformation[TI, TO, QI, QO], error) {
	if err := checkAdjoining(inner.OutputDomain(), outer.InputDomain(), inner.OutputMetric(), outer.InputMetric()); err != nil {
		return core.Transformation[TI, TO, QI, QO]{}, err
	}
	return core.NewTransformation(
		inner.InputDomain(),
		outer.OutputDomain(),
		core.ChainFunctions(outer.Function(), inner.Function()),
		inner.InputMetric(),
		outer.OutputMetric(),
		core.ChainStabilityMaps(outer.StabilityMap(), inner.StabilityMap()),
	)
}

// MakeChainMT returns the measurement m run on the output of t.
func MakeChainMT[TI, TX, TO, QI, QX, QO any](
	m core.Measurement[TX, TO, QX, QO],
	t core.Transformation[TI, TX, QI, QX],
) (core.Measurement[TI, TO, QI, QO], error) {
	if err := checkAdjoining(t.OutputDomain(), m.InputDomain(), t.OutputMetric(), m.InputMetric()); err != nil {
		return core.Measurement[TI, TO, QI, QO]{}, err
	}
	return core.NewMeasurement(
		t.InputDomain(),
		m.OutputDomain(),
		core.ChainFunctions(m.Function(), t.Function()),
		t.InputMetric(),
		m.OutputMeasure(),
		core.ChainPrivacyStability(m.PrivacyMap(), t.StabilityMap()),
	)
}

// MakeChainPM returns the measurement m whose release is passed through p.
// The privacy map is m's, unchanged.
func MakeChainPM[TI, TX, TO, QI, QO any](
	p core.Postprocessor[TX, TO],
	m core.Measurement[TI, TX, QI, QO],
) (core.Measurement[TI, TO, QI, QO], error) {
	if !m.OutputDomain().Equal(p.InputDomain()) {
		return core.Measurement[TI, TO, QI, QO]{}, errs.New(errs.DomainMismatch, core.MismatchMessage("domain", m.OutputDomain(), p.InputDomain()))
	}
	return core.NewMeasurement(
		m.InputDomain(),
		p.OutputDomain(),
		core.ChainFunctions(p.Function(), m.Function()),
		m.InputMetric(),
		m.OutputMeasure(),
		m.PrivacyMap(),
	)
}

// MakeChainTM returns the measurement m whose release is passed through the
// transformation t. t only postprocesses, so its metrics and stability map
// play no part and the privacy map is m's, unchanged.
func MakeChainTM[TI, TX, TO, QI, QO, QTI, QTO any](
	t core.Transformation[TX, TO, QTI, QTO],
	m core.Measurement[TI, TX, QI, QO],
) (core.Measurement[TI, TO, QI, QO], error) {
	if !m.OutputDomain().Equal(t.InputDomain()) {
		return core.Measurement[TI, TO, QI, QO]{}, errs.New(errs.DomainMismatch, core.MismatchMessage("domain", m.OutputDomain(), t.InputDomain()))
	}
	return core.NewMeasurement(
		m.InputDomain(),
		t.OutputDomain(),
		core.ChainFunctions(t.Function(), m.Function()),
		m.InputMetric(),
		m.OutputMeasure(),
		m.PrivacyMap(),
	)
}

// MakeChainTP returns the postprocessor p run on the output of t. No relation
// is carried, so metrics are not compared.
func MakeChainTP[TI, TX, TO, QI, QX any](
	p core.Postprocessor[TX, TO],
	t core.Transformation[TI, TX, QI, QX],
) (core.Postprocessor[TI, TO], error) {
	if !t.OutputDomain().Equal(p.InputDomain()) {
		return core.Postprocessor[TI, TO]{}, errs.New(errs.DomainMismatch, core.MismatchMessage("domain", t.OutputDomain(), p.InputDomain()))
	}
	return core.NewPostprocessor(t.InputDomain(), p.OutputDomain(), core.ChainFunctions(p.Function(), t.Function()))
}

type describable interface {
	String() string
	Equal(other any) bool
}

func checkAdjoining(outDomain, inDomain, outMetric, inMetric describable) error {
	if !outDomain.Equal(inDomain) {
		return errs.New(errs.DomainMismatch, core.MismatchMessage("domain", outDomain, inDomain))
	}
	if !outMetric.Equal(inMetric) {
		return errs.New(errs.MetricMismatch, core.MismatchMessage("metric", outMetric, inMetric))
	}
	return nil
}
