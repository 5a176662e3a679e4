// SPDX-License-Identifier: MIT

package core

import (
	"github.com/katalvlaran/dpchain/errs"
)

// Transformation is a deterministic, stable mapping from TI to TO.
// QI and QO are the input and output distance types.
type Transformation[TI, TO, QI, QO any] struct {
	inputDomain  Domain[TI]
	outputDomain Domain[TO]
	function     Function[TI, TO]
	inputMetric  Metric
	outputMetric Metric
	stabilityMap StabilityMap[QI, QO]
}

// NewTransformation validates both metric spaces and the distance types.
func NewTransformation[TI, TO, QI, QO any](
	inputDomain Domain[TI],
	outputDomain Domain[TO],
	function Function[TI, TO],
	inputMetric Metric,
	outputMetric Metric,
	stabilityMap StabilityMap[QI, QO],
) (Transformation[TI, TO, QI, QO], error) {
	var zero Transformation[TI, TO, QI, QO]
	if inputDomain == nil || outputDomain == nil || inputMetric == nil || outputMetric == nil {
		return zero, errs.New(errs.MakeTransformation, "domains and metrics must be non-nil")
	}
	if err := CheckMetricSpace(inputDomain, inputMetric); err != nil {
		return zero, err
	}
	if err := CheckMetricSpace(outputDomain, outputMetric); err != nil {
		return zero, err
	}
	if err := checkDistanceType[QI](errs.MakeTransformation, "input metric", inputMetric.DistanceType()); err != nil {
		return zero, err
	}
	if err := checkDistanceType[QO](errs.MakeTransformation, "output metric", outputMetric.DistanceType()); err != nil {
		return zero, err
	}
	return Transformation[TI, TO, QI, QO]{
		inputDomain:  inputDomain,
		outputDomain: outputDomain,
		function:     function,
		inputMetric:  inputMetric,
		outputMetric: outputMetric,
		stabilityMap: stabilityMap,
	}, nil
}

func (t Transformation[TI, TO, QI, QO]) InputDomain() Domain[TI]            { return t.inputDomain }
func (t Transformation[TI, TO, QI, QO]) OutputDomain() Domain[TO]           { return t.outputDomain }
func (t Transformation[TI, TO, QI, QO]) Function() Function[TI, TO]         { return t.function }
func (t Transformation[TI, TO, QI, QO]) InputMetric() Metric                { return t.inputMetric }
func (t Transformation[TI, TO, QI, QO]) OutputMetric() Metric               { return t.outputMetric }
func (t Transformation[TI, TO, QI, QO]) StabilityMap() StabilityMap[QI, QO] { return t.stabilityMap }

// Invoke applies the function without a membership check.
func (t Transformation[TI, TO, QI, QO]) Invoke(arg TI) (TO, error) {
	return t.function.Eval(arg)
}

// InvokeChecked rejects arguments outside the input domain before invoking.
func (t Transformation[TI, TO, QI, QO]) InvokeChecked(arg TI) (TO, error) {
	if err := checkMember(t.inputDomain, arg); err != nil {
		var zero TO
		return zero, err
	}
	return t.function.Eval(arg)
}

// Map returns the output distance bound for input distance dIn.
func (t Transformation[TI, TO, QI, QO]) Map(dIn QI) (QO, error) {
	return t.stabilityMap.Eval(dIn)
}

// Check reports whether inputs within dIn are guaranteed to map within dOut.
func (t Transformation[TI, TO, QI, QO]) Check(dIn QI, dOut QO) (bool, error) {
	return check(t.stabilityMap.Eval, dIn, dOut)
}

func checkMember[T any](domain Domain[T], arg T) error {
	ok, err := domain.Member(arg)
	if err != nil {
		return classify(errs.FailedFunction, err)
	}
	if !ok {
		return errs.Errorf(errs.FailedFunction, "input is not a member of %s", domain)
	}
	return nil
}

func check[QI, QO any](eval func(QI) (QO, error), dIn QI, dOut QO) (bool, error) {
	if err := ValidateDistance(dIn); err != nil {
		return false, errs.Wrap(errs.InvalidDistance, "d_in", err)
	}
	if err := ValidateDistance(dOut); err != nil {
		return false, errs.Wrap(errs.InvalidDistance, "d_out", err)
	}
	bound, err := eval(dIn)
	if err != nil {
		return false, err
	}
	return LessEqual(bound, dOut)
}
