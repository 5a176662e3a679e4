// SPDX-License-Identifier: MIT

package pipeline

import (
	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/ffi"
)

// Release invokes a measurement pipeline on the document's input through a
// privacy filter capped at d_out. The filter charges Map(d_in) before the
// mechanism runs, so a release that would exceed d_out never happens.
func (p *Pipeline) Release() (any, error) {
	if p.kind != "Measurement" {
		return nil, errs.Errorf(errs.MakeMeasurement, "release needs a measurement, got a %s", p.kind)
	}
	if p.doc.Input == nil || p.doc.DIn == nil || p.doc.DOut == nil {
		return nil, errs.New(errs.InvalidDistance, "release: input, d_in and d_out are required")
	}

	var owned []ffi.Handle
	defer func() {
		for _, h := range owned {
			ffi.Free(h)
		}
	}()
	keep := func(r ffi.Result[ffi.Handle]) (ffi.Handle, error) {
		h, err := r.Unwrap()
		if err == nil {
			owned = append(owned, h)
		}
		return h, err
	}

	data, err := keep(objectResult(p.doc.Input))
	if err != nil {
		return nil, err
	}
	dIn, err := keep(objectResult(p.doc.DIn))
	if err != nil {
		return nil, err
	}
	dOut, err := keep(objectResult(p.doc.DOut))
	if err != nil {
		return nil, err
	}
	domain, err := keep(ffi.MeasurementInputDomain(p.handle))
	if err != nil {
		return nil, err
	}
	metric, err := keep(ffi.MeasurementInputMetric(p.handle))
	if err != nil {
		return nil, err
	}
	measure, err := keep(ffi.MeasurementOutputMeasure(p.handle))
	if err != nil {
		return nil, err
	}
	filter, err := keep(ffi.AccountantFilter(data, domain, metric, measure, dIn, dOut))
	if err != nil {
		return nil, err
	}
	return take(ffi.AccountantAdmit(filter, p.handle))
}

func objectResult(v *Value) ffi.Result[ffi.Handle] {
	h, err := object(v)
	if err != nil {
		return ffi.Result[ffi.Handle]{Tag: ffi.TagErr, Err: ffi.NewErrorRecord(err)}
	}
	return ffi.Result[ffi.Handle]{Tag: ffi.TagOk, Ok: h}
}
