// SPDX-License-Identifier: MIT

package combinators

import (
	"github.com/katalvlaran/dpchain/core"
	"github.com/katalvlaran/dpchain/domains"
	"github.com/katalvlaran/dpchain/errs"
)

// MakeBasicComposition returns one measurement that invokes every element of
// ms on the same input, in order, with independent randomness, and releases
// the ordered list of results. Its privacy map composes the children's losses
// with the measure's rule, or with the WithComposer override.
//
// All measurements must share the input domain, input metric and output
// measure. An empty list fails with errs.MakeMeasurement.
func MakeBasicComposition[TI, TO, QI, QO any](
	ms []core.Measurement[TI, TO, QI, QO],
	opts ...CompositionOption[QO],
) (core.Measurement[TI, []TO, QI, QO], error) {
	var zero core.Measurement[TI, []TO, QI, QO]
	if len(ms) == 0 {
		return zero, errs.New(errs.MakeMeasurement, "must have at least one measurement")
	}
	first := ms[0]
	for _, m := range ms[1:] {
		if !first.InputDomain().Equal(m.InputDomain()) {
			return zero, errs.New(errs.DomainMismatch, core.MismatchMessage("input domain", first.InputDomain(), m.InputDomain()))
		}
		if !first.InputMetric().Equal(m.InputMetric()) {
			return zero, errs.New(errs.MetricMismatch, core.MismatchMessage("input metric", first.InputMetric(), m.InputMetric()))
		}
		if !first.OutputMeasure().Equal(m.OutputMeasure()) {
			return zero, errs.New(errs.MeasureMismatch, core.MismatchMessage("output measure", first.OutputMeasure(), m.OutputMeasure()))
		}
	}

	compose, err := composerFor(first.OutputMeasure(), opts)
	if err != nil {
		return zero, err
	}

	children := append([]core.Measurement[TI, TO, QI, QO](nil), ms...)
	function := core.NewFallibleFunction(func(arg TI) ([]TO, error) {
		out := make([]TO, 0, len(children))
		for _, m := range children {
			v, err := m.Invoke(arg)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	})
	privacyMap := core.NewPrivacyMap(func(dIn QI) (QO, error) {
		losses := make([]QO, len(children))
		for i, m := range children {
			l, err := m.Map(dIn)
			if err != nil {
				var none QO
				return none, err
			}
			losses[i] = l
		}
		return compose(losses)
	})

	return core.NewMeasurement(
		first.InputDomain(),
		outputDomain(children),
		function,
		first.InputMetric(),
		first.OutputMeasure(),
		privacyMap,
	)
}

func composerFor[Q any](measure core.Measure, opts []CompositionOption[Q]) (func([]Q) (Q, error), error) {
	var cfg compositionConfig[Q]
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.compose != nil {
		return cfg.compose, nil
	}
	c, ok := measure.(core.Composer[Q])
	if !ok {
		return nil, errs.Errorf(errs.MakeMeasurement, "%s has no composition rule", measure)
	}
	return c.Compose, nil
}

// outputDomain is a vector of the children's shared output domain, or of the
// unconstrained atom domain when they differ.
func outputDomain[TI, TO, QI, QO any](ms []core.Measurement[TI, TO, QI, QO]) core.Domain[[]TO] {
	elem := ms[0].OutputDomain()
	for _, m := range ms[1:] {
		if !elem.Equal(m.OutputDomain()) {
			return domains.NewVectorDomain[TO](domains.NewAtomDomain[TO](), domains.WithSize(len(ms)))
		}
	}
	return domains.NewVectorDomain(elem, domains.WithSize(len(ms)))
}
