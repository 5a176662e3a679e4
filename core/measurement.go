// SPDX-License-Identifier: MIT

package core

import (
	"github.com/katalvlaran/dpchain/errs"
)

// Measurement is a randomized mapping from TI to TO whose privacy loss,
// under outputMeasure, is bounded by its PrivacyMap.
type Measurement[TI, TO, QI, QO any] struct {
	inputDomain   Domain[TI]
	outputDomain  Domain[TO]
	function      Function[TI, TO]
	inputMetric   Metric
	outputMeasure Measure
	privacyMap    PrivacyMap[QI, QO]
}

// NewMeasurement validates the input metric space and the distance types.
func NewMeasurement[TI, TO, QI, QO any](
	inputDomain Domain[TI],
	outputDomain Domain[TO],
	function Function[TI, TO],
	inputMetric Metric,
	outputMeasure Measure,
	privacyMap PrivacyMap[QI, QO],
) (Measurement[TI, TO, QI, QO], error) {
	var zero Measurement[TI, TO, QI, QO]
	if inputDomain == nil || outputDomain == nil || inputMetric == nil || outputMeasure == nil {
		return zero, errs.New(errs.MakeMeasurement, "domains, metric and measure must be non-nil")
	}
	if err := CheckMetricSpace(inputDomain, inputMetric); err != nil {
		return zero, err
	}
	if err := checkDistanceType[QI](errs.MakeMeasurement, "input metric", inputMetric.DistanceType()); err != nil {
		return zero, err
	}
	if err := checkDistanceType[QO](errs.MakeMeasurement, "output measure", outputMeasure.DistanceType()); err != nil {
		return zero, err
	}
	return Measurement[TI, TO, QI, QO]{
		inputDomain:   inputDomain,
		outputDomain:  outputDomain,
		function:      function,
		inputMetric:   inputMetric,
		outputMeasure: outputMeasure,
		privacyMap:    privacyMap,
	}, nil
}

func (m Measurement[TI, TO, QI, QO]) InputDomain() Domain[TI]        { return m.inputDomain }
func (m Measurement[TI, TO, QI, QO]) OutputDomain() Domain[TO]       { return m.outputDomain }
func (m Measurement[TI, TO, QI, QO]) Function() Function[TI, TO]     { return m.function }
func (m Measurement[TI, TO, QI, QO]) InputMetric() Metric            { return m.inputMetric }
func (m Measurement[TI, TO, QI, QO]) OutputMeasure() Measure         { return m.outputMeasure }
func (m Measurement[TI, TO, QI, QO]) PrivacyMap() PrivacyMap[QI, QO] { return m.privacyMap }

// Invoke runs the mechanism once. Every call draws fresh randomness.
func (m Measurement[TI, TO, QI, QO]) Invoke(arg TI) (TO, error) {
	return m.function.Eval(arg)
}

// InvokeChecked rejects arguments outside the input domain before invoking.
func (m Measurement[TI, TO, QI, QO]) InvokeChecked(arg TI) (TO, error) {
	if err := checkMember(m.inputDomain, arg); err != nil {
		var zero TO
		return zero, err
	}
	return m.function.Eval(arg)
}

// Map returns the privacy loss bound at input distance dIn.
func (m Measurement[TI, TO, QI, QO]) Map(dIn QI) (QO, error) {
	return m.privacyMap.Eval(dIn)
}

// Check reports whether neighbours within dIn are indistinguishable up to dOut.
func (m Measurement[TI, TO, QI, QO]) Check(dIn QI, dOut QO) (bool, error) {
	return check(m.privacyMap.Eval, dIn, dOut)
}
