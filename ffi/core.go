// SPDX-License-Identifier: MIT

package ffi

import (
	"github.com/katalvlaran/dpchain/combinators"
	"github.com/katalvlaran/dpchain/erased"
)

// TransformationInvoke runs a transformation on the object behind arg.
func TransformationInvoke(t, arg Handle) Result[Handle] {
	tr, err := get[erased.Transformation](t)
	if err != nil {
		return fail[Handle]("transformation_invoke", err)
	}
	a, err := get[*erased.Object](arg)
	if err != nil {
		return fail[Handle]("transformation_invoke", err)
	}
	out, err := tr.Invoke(a)
	return result("transformation_invoke", out, err)
}

// TransformationMap evaluates a stability map at dIn.
func TransformationMap(t, dIn Handle) Result[Handle] {
	tr, err := get[erased.Transformation](t)
	if err != nil {
		return fail[Handle]("transformation_map", err)
	}
	d, err := get[*erased.Object](dIn)
	if err != nil {
		return fail[Handle]("transformation_map", err)
	}
	out, err := tr.Map(d)
	return result("transformation_map", out, err)
}

// TransformationCheck reports whether inputs within dIn map to outputs
// within dOut.
func TransformationCheck(t, dIn, dOut Handle) Result[bool] {
	tr, err := get[erased.Transformation](t)
	if err != nil {
		return fail[bool]("transformation_check", err)
	}
	in, out, err := distances(dIn, dOut)
	if err != nil {
		return fail[bool]("transformation_check", err)
	}
	ok, err := tr.Check(in, out)
	return value("transformation_check", ok, err)
}

// TransformationInputDomain returns a new handle to the input domain.
func TransformationInputDomain(t Handle) Result[Handle] {
	tr, err := get[erased.Transformation](t)
	if err != nil {
		return fail[Handle]("transformation_input_domain", err)
	}
	return result("transformation_input_domain", tr.InputDomain(), nil)
}

// TransformationOutputDomain returns a new handle to the output domain.
func TransformationOutputDomain(t Handle) Result[Handle] {
	tr, err := get[erased.Transformation](t)
	if err != nil {
		return fail[Handle]("transformation_output_domain", err)
	}
	return result("transformation_output_domain", tr.OutputDomain(), nil)
}

// TransformationInputMetric returns a new handle to the input metric.
func TransformationInputMetric(t Handle) Result[Handle] {
	tr, err := get[erased.Transformation](t)
	if err != nil {
		return fail[Handle]("transformation_input_metric", err)
	}
	return result("transformation_input_metric", tr.InputMetric(), nil)
}

// TransformationOutputMetric returns a new handle to the output metric.
func TransformationOutputMetric(t Handle) Result[Handle] {
	tr, err := get[erased.Transformation](t)
	if err != nil {
		return fail[Handle]("transformation_output_metric", err)
	}
	return result("transformation_output_metric", tr.OutputMetric(), nil)
}

// TransformationFree releases a transformation handle.
func TransformationFree(h Handle) *ErrorRecord { return release[erased.Transformation](h) }

// MeasurementInvoke releases a measurement on the object behind arg. Every
// call draws fresh randomness.
func MeasurementInvoke(m, arg Handle) Result[Handle] {
	me, err := get[erased.Measurement](m)
	if err != nil {
		return fail[Handle]("measurement_invoke", err)
	}
	a, err := get[*erased.Object](arg)
	if err != nil {
		return fail[Handle]("measurement_invoke", err)
	}
	out, err := me.Invoke(a)
	return result("measurement_invoke", out, err)
}

// MeasurementMap evaluates a privacy map at dIn.
func MeasurementMap(m, dIn Handle) Result[Handle] {
	me, err := get[erased.Measurement](m)
	if err != nil {
		return fail[Handle]("measurement_map", err)
	}
	d, err := get[*erased.Object](dIn)
	if err != nil {
		return fail[Handle]("measurement_map", err)
	}
	out, err := me.Map(d)
	return result("measurement_map", out, err)
}

// MeasurementCheck reports whether releases on inputs within dIn are
// dOut-indistinguishable.
func MeasurementCheck(m, dIn, dOut Handle) Result[bool] {
	me, err := get[erased.Measurement](m)
	if err != nil {
		return fail[bool]("measurement_check", err)
	}
	in, out, err := distances(dIn, dOut)
	if err != nil {
		return fail[bool]("measurement_check", err)
	}
	ok, err := me.Check(in, out)
	return value("measurement_check", ok, err)
}

// MeasurementInputDomain returns a new handle to the input domain.
func MeasurementInputDomain(m Handle) Result[Handle] {
	me, err := get[erased.Measurement](m)
	if err != nil {
		return fail[Handle]("measurement_input_domain", err)
	}
	return result("measurement_input_domain", me.InputDomain(), nil)
}

// MeasurementOutputDomain returns a new handle to the output domain.
func MeasurementOutputDomain(m Handle) Result[Handle] {
	me, err := get[erased.Measurement](m)
	if err != nil {
		return fail[Handle]("measurement_output_domain", err)
	}
	return result("measurement_output_domain", me.OutputDomain(), nil)
}

// MeasurementInputMetric returns a new handle to the input metric.
func MeasurementInputMetric(m Handle) Result[Handle] {
	me, err := get[erased.Measurement](m)
	if err != nil {
		return fail[Handle]("measurement_input_metric", err)
	}
	return result("measurement_input_metric", me.InputMetric(), nil)
}

// MeasurementOutputMeasure returns a new handle to the output measure.
func MeasurementOutputMeasure(m Handle) Result[Handle] {
	me, err := get[erased.Measurement](m)
	if err != nil {
		return fail[Handle]("measurement_output_measure", err)
	}
	return result("measurement_output_measure", me.OutputMeasure(), nil)
}

// MeasurementFree releases a measurement handle.
func MeasurementFree(h Handle) *ErrorRecord { return release[erased.Measurement](h) }

// PostprocessorInvoke runs a postprocessor on the object behind arg.
func PostprocessorInvoke(p, arg Handle) Result[Handle] {
	pp, err := get[erased.Postprocessor](p)
	if err != nil {
		return fail[Handle]("postprocessor_invoke", err)
	}
	a, err := get[*erased.Object](arg)
	if err != nil {
		return fail[Handle]("postprocessor_invoke", err)
	}
	out, err := pp.Invoke(a)
	return result("postprocessor_invoke", out, err)
}

// PostprocessorFree releases a postprocessor handle.
func PostprocessorFree(h Handle) *ErrorRecord { return release[erased.Postprocessor](h) }

// ChainTT returns outer∘inner.
func ChainTT(outer, inner Handle) Result[Handle] {
	o, err := get[erased.Transformation](outer)
	if err != nil {
		return fail[Handle]("chain_tt", err)
	}
	i, err := get[erased.Transformation](inner)
	if err != nil {
		return fail[Handle]("chain_tt", err)
	}
	out, err := combinators.MakeChainTT(o, i)
	return result("chain_tt", out, err)
}

// ChainMT returns the measurement m run on the output of t.
func ChainMT(m, t Handle) Result[Handle] {
	me, err := get[erased.Measurement](m)
	if err != nil {
		return fail[Handle]("chain_mt", err)
	}
	tr, err := get[erased.Transformation](t)
	if err != nil {
		return fail[Handle]("chain_mt", err)
	}
	out, err := combinators.MakeChainMT(me, tr)
	return result("chain_mt", out, err)
}

// ChainTM returns the measurement m whose release is passed through t.
func ChainTM(t, m Handle) Result[Handle] {
	tr, err := get[erased.Transformation](t)
	if err != nil {
		return fail[Handle]("chain_tm", err)
	}
	me, err := get[erased.Measurement](m)
	if err != nil {
		return fail[Handle]("chain_tm", err)
	}
	out, err := combinators.MakeChainTM(tr, me)
	return result("chain_tm", out, err)
}

// ChainPM returns the measurement m postprocessed by p.
func ChainPM(p, m Handle) Result[Handle] {
	pp, err := get[erased.Postprocessor](p)
	if err != nil {
		return fail[Handle]("chain_pm", err)
	}
	me, err := get[erased.Measurement](m)
	if err != nil {
		return fail[Handle]("chain_pm", err)
	}
	out, err := combinators.MakeChainPM(pp, me)
	return result("chain_pm", out, err)
}

// Then chains left into right in pipeline order; see erased.Then.
func Then(left, right Handle) Result[Handle] {
	l, ok := handles.get(left)
	if !ok {
		return fail[Handle]("then", unknown(left))
	}
	r, ok := handles.get(right)
	if !ok {
		return fail[Handle]("then", unknown(right))
	}
	out, err := erased.Then(l, r)
	return result("then", out, err)
}

func distances(dIn, dOut Handle) (*erased.Object, *erased.Object, error) {
	in, err := get[*erased.Object](dIn)
	if err != nil {
		return nil, nil, err
	}
	out, err := get[*erased.Object](dOut)
	if err != nil {
		return nil, nil, err
	}
	return in, out, nil
}
