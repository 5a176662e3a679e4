// SPDX-License-Identifier: MIT

// Command libdpchain builds the C shared library over package ffi:
//
//	go build -buildmode=c-shared -o libdpchain.so ./cmd/libdpchain
//
// Values cross the boundary as YAML (or JSON) text. Every returned error and
// string is owned by the caller and released with dpchain_error_free or
// dpchain_string_free.
package main

/*
#include <stdbool.h>
#include <stdint.h>
#include <stdlib.h>

typedef struct {
	char *variant;
	char *message;
	char *backtrace;
} dpchain_error;

typedef struct {
	uint32_t tag;
	uint64_t ok;
	dpchain_error *err;
} dpchain_handle_result;

typedef struct {
	uint32_t tag;
	bool ok;
	dpchain_error *err;
} dpchain_bool_result;

typedef struct {
	uint32_t tag;
	char *ok;
	dpchain_error *err;
} dpchain_string_result;

typedef struct {
	uint32_t tag;
	double ok;
	dpchain_error *err;
} dpchain_float_result;
*/
import "C"

import (
	"unsafe"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/ffi"
	"github.com/katalvlaran/dpchain/pipeline"
)

func main() {}

func cError(rec *ffi.ErrorRecord) *C.dpchain_error {
	if rec == nil {
		return nil
	}
	e := (*C.dpchain_error)(C.calloc(1, C.size_t(unsafe.Sizeof(C.dpchain_error{}))))
	e.variant = C.CString(rec.Variant)
	if rec.Message != nil {
		e.message = C.CString(*rec.Message)
	}
	e.backtrace = C.CString(rec.Backtrace)
	return e
}

func handleResult(r ffi.Result[ffi.Handle]) C.dpchain_handle_result {
	return C.dpchain_handle_result{tag: C.uint32_t(r.Tag), ok: C.uint64_t(r.Ok), err: cError(r.Err)}
}

func boolResult(r ffi.Result[bool]) C.dpchain_bool_result {
	return C.dpchain_bool_result{tag: C.uint32_t(r.Tag), ok: C.bool(r.Ok), err: cError(r.Err)}
}

func stringResult(r ffi.Result[string]) C.dpchain_string_result {
	out := C.dpchain_string_result{tag: C.uint32_t(r.Tag), err: cError(r.Err)}
	if r.Tag == ffi.TagOk {
		out.ok = C.CString(r.Ok)
	}
	return out
}

func failHandle(err error) C.dpchain_handle_result {
	return handleResult(ffi.Result[ffi.Handle]{Tag: ffi.TagErr, Err: ffi.NewErrorRecord(err)})
}

// decode reads a YAML/JSON scalar or sequence.
func decode(text *C.char) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(C.GoString(text)), &v); err != nil {
		return nil, errs.Errorf(errs.TypeParse, "decode value: %w", err)
	}
	return v, nil
}

//export dpchain_error_free
func dpchain_error_free(e *C.dpchain_error) {
	if e == nil {
		return
	}
	C.free(unsafe.Pointer(e.variant))
	C.free(unsafe.Pointer(e.message))
	C.free(unsafe.Pointer(e.backtrace))
	C.free(unsafe.Pointer(e))
}

//export dpchain_string_free
func dpchain_string_free(s *C.char) { C.free(unsafe.Pointer(s)) }

//export dpchain_free
func dpchain_free(h C.uint64_t) *C.dpchain_error { return cError(ffi.Free(ffi.Handle(h))) }

//export dpchain_kind
func dpchain_kind(h C.uint64_t) C.dpchain_string_result {
	return stringResult(ffi.Kind(ffi.Handle(h)))
}

//export dpchain_object_new
func dpchain_object_new(desc, value *C.char) C.dpchain_handle_result {
	v, err := decode(value)
	if err != nil {
		return failHandle(err)
	}
	return handleResult(ffi.ObjectNew(C.GoString(desc), v))
}

//export dpchain_object_new_eps_delta
func dpchain_object_new_eps_delta(desc *C.char, eps, delta C.double) C.dpchain_handle_result {
	return handleResult(ffi.ObjectNewEpsDelta(C.GoString(desc), float64(eps), float64(delta)))
}

//export dpchain_object_type
func dpchain_object_type(h C.uint64_t) C.dpchain_string_result {
	return stringResult(ffi.ObjectType(ffi.Handle(h)))
}

// dpchain_object_value renders the object as YAML text.
//
//export dpchain_object_value
func dpchain_object_value(h C.uint64_t) C.dpchain_string_result {
	v, err := ffi.ObjectValue(ffi.Handle(h)).Unwrap()
	if err != nil {
		return stringResult(ffi.Result[string]{Tag: ffi.TagErr, Err: ffi.NewErrorRecord(err)})
	}
	b, err := yaml.Marshal(v)
	if err != nil {
		return stringResult(ffi.Result[string]{Tag: ffi.TagErr, Err: ffi.NewErrorRecord(errs.Errorf(errs.FFI, "encode value: %w", err))})
	}
	return stringResult(ffi.Result[string]{Tag: ffi.TagOk, Ok: string(b)})
}

//export dpchain_transformation_invoke
func dpchain_transformation_invoke(t, arg C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.TransformationInvoke(ffi.Handle(t), ffi.Handle(arg)))
}

//export dpchain_transformation_map
func dpchain_transformation_map(t, dIn C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.TransformationMap(ffi.Handle(t), ffi.Handle(dIn)))
}

//export dpchain_transformation_check
func dpchain_transformation_check(t, dIn, dOut C.uint64_t) C.dpchain_bool_result {
	return boolResult(ffi.TransformationCheck(ffi.Handle(t), ffi.Handle(dIn), ffi.Handle(dOut)))
}

//export dpchain_measurement_invoke
func dpchain_measurement_invoke(m, arg C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.MeasurementInvoke(ffi.Handle(m), ffi.Handle(arg)))
}

//export dpchain_measurement_map
func dpchain_measurement_map(m, dIn C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.MeasurementMap(ffi.Handle(m), ffi.Handle(dIn)))
}

//export dpchain_measurement_check
func dpchain_measurement_check(m, dIn, dOut C.uint64_t) C.dpchain_bool_result {
	return boolResult(ffi.MeasurementCheck(ffi.Handle(m), ffi.Handle(dIn), ffi.Handle(dOut)))
}

//export dpchain_postprocessor_invoke
func dpchain_postprocessor_invoke(p, arg C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.PostprocessorInvoke(ffi.Handle(p), ffi.Handle(arg)))
}

//export dpchain_then
func dpchain_then(left, right C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.Then(ffi.Handle(left), ffi.Handle(right)))
}

//export dpchain_object_float64
func dpchain_object_float64(h C.uint64_t) C.dpchain_float_result {
	r := ffi.ObjectFloat64(ffi.Handle(h))
	return C.dpchain_float_result{tag: C.uint32_t(r.Tag), ok: C.double(r.Ok), err: cError(r.Err)}
}

//export dpchain_atom_domain
func dpchain_atom_domain(desc *C.char) C.dpchain_handle_result {
	return handleResult(ffi.AtomDomain(C.GoString(desc)))
}

//export dpchain_nullable_atom_domain
func dpchain_nullable_atom_domain(desc *C.char) C.dpchain_handle_result {
	return handleResult(ffi.NullableAtomDomain(C.GoString(desc)))
}

//export dpchain_bounded_atom_domain
func dpchain_bounded_atom_domain(desc, lower, upper *C.char) C.dpchain_handle_result {
	lo, err := decode(lower)
	if err != nil {
		return failHandle(err)
	}
	hi, err := decode(upper)
	if err != nil {
		return failHandle(err)
	}
	return handleResult(ffi.BoundedAtomDomain(C.GoString(desc), lo, hi))
}

// dpchain_vector_domain builds a vector of elem; a negative size means unsized.
//
//export dpchain_vector_domain
func dpchain_vector_domain(elem C.uint64_t, size C.int64_t) C.dpchain_handle_result {
	return handleResult(ffi.VectorDomain(ffi.Handle(elem), int(size)))
}

//export dpchain_domain_carrier
func dpchain_domain_carrier(h C.uint64_t) C.dpchain_string_result {
	return stringResult(ffi.DomainCarrier(ffi.Handle(h)))
}

//export dpchain_domain_string
func dpchain_domain_string(h C.uint64_t) C.dpchain_string_result {
	return stringResult(ffi.DomainString(ffi.Handle(h)))
}

//export dpchain_domain_member
func dpchain_domain_member(h, obj C.uint64_t) C.dpchain_bool_result {
	return boolResult(ffi.DomainMember(ffi.Handle(h), ffi.Handle(obj)))
}

//export dpchain_metric
func dpchain_metric(name, desc *C.char) C.dpchain_handle_result {
	return handleResult(ffi.Metric(C.GoString(name), C.GoString(desc)))
}

//export dpchain_metric_distance_type
func dpchain_metric_distance_type(h C.uint64_t) C.dpchain_string_result {
	return stringResult(ffi.MetricDistanceType(ffi.Handle(h)))
}

//export dpchain_measure
func dpchain_measure(name, desc *C.char) C.dpchain_handle_result {
	return handleResult(ffi.Measure(C.GoString(name), C.GoString(desc)))
}

//export dpchain_measure_distance_type
func dpchain_measure_distance_type(h C.uint64_t) C.dpchain_string_result {
	return stringResult(ffi.MeasureDistanceType(ffi.Handle(h)))
}

//export dpchain_transformation_input_domain
func dpchain_transformation_input_domain(t C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.TransformationInputDomain(ffi.Handle(t)))
}

//export dpchain_transformation_output_domain
func dpchain_transformation_output_domain(t C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.TransformationOutputDomain(ffi.Handle(t)))
}

//export dpchain_transformation_input_metric
func dpchain_transformation_input_metric(t C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.TransformationInputMetric(ffi.Handle(t)))
}

//export dpchain_transformation_output_metric
func dpchain_transformation_output_metric(t C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.TransformationOutputMetric(ffi.Handle(t)))
}

//export dpchain_measurement_input_domain
func dpchain_measurement_input_domain(m C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.MeasurementInputDomain(ffi.Handle(m)))
}

//export dpchain_measurement_output_domain
func dpchain_measurement_output_domain(m C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.MeasurementOutputDomain(ffi.Handle(m)))
}

//export dpchain_measurement_input_metric
func dpchain_measurement_input_metric(m C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.MeasurementInputMetric(ffi.Handle(m)))
}

//export dpchain_measurement_output_measure
func dpchain_measurement_output_measure(m C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.MeasurementOutputMeasure(ffi.Handle(m)))
}

//export dpchain_chain_tt
func dpchain_chain_tt(outer, inner C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.ChainTT(ffi.Handle(outer), ffi.Handle(inner)))
}

//export dpchain_chain_mt
func dpchain_chain_mt(m, t C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.ChainMT(ffi.Handle(m), ffi.Handle(t)))
}

//export dpchain_chain_tm
func dpchain_chain_tm(t, m C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.ChainTM(ffi.Handle(t), ffi.Handle(m)))
}

//export dpchain_chain_pm
func dpchain_chain_pm(p, m C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.ChainPM(ffi.Handle(p), ffi.Handle(m)))
}

//export dpchain_accountant_filter
func dpchain_accountant_filter(data, domain, metric, measure, dIn, dOut C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.AccountantFilter(ffi.Handle(data), ffi.Handle(domain), ffi.Handle(metric),
		ffi.Handle(measure), ffi.Handle(dIn), ffi.Handle(dOut)))
}

//export dpchain_accountant_odometer
func dpchain_accountant_odometer(data, domain, metric, measure, dIn C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.AccountantOdometer(ffi.Handle(data), ffi.Handle(domain), ffi.Handle(metric),
		ffi.Handle(measure), ffi.Handle(dIn)))
}

//export dpchain_accountant_spawn_filter
func dpchain_accountant_spawn_filter(acc, dOut C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.AccountantSpawnFilter(ffi.Handle(acc), ffi.Handle(dOut)))
}

//export dpchain_accountant_spawn_odometer
func dpchain_accountant_spawn_odometer(acc C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.AccountantSpawnOdometer(ffi.Handle(acc)))
}

//export dpchain_accountant_admit
func dpchain_accountant_admit(acc, m C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.AccountantAdmit(ffi.Handle(acc), ffi.Handle(m)))
}

//export dpchain_accountant_check
func dpchain_accountant_check(acc, m C.uint64_t) C.dpchain_bool_result {
	return boolResult(ffi.AccountantCheck(ffi.Handle(acc), ffi.Handle(m)))
}

//export dpchain_accountant_consumed
func dpchain_accountant_consumed(acc C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.AccountantConsumed(ffi.Handle(acc)))
}

//export dpchain_accountant_limit
func dpchain_accountant_limit(acc, dOut C.uint64_t) *C.dpchain_error {
	return cError(ffi.AccountantLimit(ffi.Handle(acc), ffi.Handle(dOut)))
}

//export dpchain_make_bounded_sum
func dpchain_make_bounded_sum(desc, lower, upper *C.char) C.dpchain_handle_result {
	lo, err := decode(lower)
	if err != nil {
		return failHandle(err)
	}
	hi, err := decode(upper)
	if err != nil {
		return failHandle(err)
	}
	return handleResult(ffi.MakeBoundedSum(C.GoString(desc), lo, hi))
}

//export dpchain_make_vector_laplace
func dpchain_make_vector_laplace(desc *C.char, scale C.double, size C.int64_t) C.dpchain_handle_result {
	return handleResult(ffi.MakeVectorLaplace(C.GoString(desc), float64(scale), int(size)))
}

//export dpchain_make_clamp
func dpchain_make_clamp(desc, lower, upper *C.char, size C.int64_t) C.dpchain_handle_result {
	lo, err := decode(lower)
	if err != nil {
		return failHandle(err)
	}
	hi, err := decode(upper)
	if err != nil {
		return failHandle(err)
	}
	return handleResult(ffi.MakeClamp(C.GoString(desc), lo, hi, int(size)))
}

//export dpchain_make_sized_bounded_sum
func dpchain_make_sized_bounded_sum(desc *C.char, size C.int64_t, lower, upper *C.char) C.dpchain_handle_result {
	lo, err := decode(lower)
	if err != nil {
		return failHandle(err)
	}
	hi, err := decode(upper)
	if err != nil {
		return failHandle(err)
	}
	return handleResult(ffi.MakeSizedBoundedSum(C.GoString(desc), int(size), lo, hi))
}

//export dpchain_make_laplace
func dpchain_make_laplace(desc *C.char, scale C.double) C.dpchain_handle_result {
	return handleResult(ffi.MakeLaplace(C.GoString(desc), float64(scale)))
}

//export dpchain_make_randomized_response_bool
func dpchain_make_randomized_response_bool(prob C.double, constantTime C.bool) C.dpchain_handle_result {
	return handleResult(ffi.MakeRandomizedResponseBool(float64(prob), bool(constantTime)))
}

//export dpchain_make_basic_composition
func dpchain_make_basic_composition(ms *C.uint64_t, n C.size_t) C.dpchain_handle_result {
	hs := make([]ffi.Handle, int(n))
	for i, h := range unsafe.Slice(ms, int(n)) {
		hs[i] = ffi.Handle(h)
	}
	return handleResult(ffi.BasicComposition(hs))
}

//export dpchain_make_population_amplification
func dpchain_make_population_amplification(m C.uint64_t, population C.int64_t) C.dpchain_handle_result {
	return handleResult(ffi.PopulationAmplification(ffi.Handle(m), int(population)))
}

//export dpchain_make_pureDP_to_zCDP
func dpchain_make_pureDP_to_zCDP(m C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.PureDPToZCDP(ffi.Handle(m)))
}

//export dpchain_make_zCDP_to_approxDP
func dpchain_make_zCDP_to_approxDP(m C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.ZCDPToApproxDP(ffi.Handle(m)))
}

//export dpchain_make_pureDP_to_fixed_approxDP
func dpchain_make_pureDP_to_fixed_approxDP(m C.uint64_t) C.dpchain_handle_result {
	return handleResult(ffi.PureDPToFixedApproxDP(ffi.Handle(m)))
}

//export dpchain_make_fix_delta
func dpchain_make_fix_delta(m C.uint64_t, delta C.double) C.dpchain_handle_result {
	return handleResult(ffi.FixDelta(ffi.Handle(m), float64(delta)))
}

// dpchain_pipeline_build builds a YAML pipeline document and returns the
// handle of the resulting transformation, measurement or postprocessor.
//
//export dpchain_pipeline_build
func dpchain_pipeline_build(doc *C.char) C.dpchain_handle_result {
	d, err := pipeline.ParseBytes([]byte(C.GoString(doc)))
	if err != nil {
		return failHandle(err)
	}
	p, err := pipeline.Build(d)
	if err != nil {
		return failHandle(err)
	}
	return handleResult(ffi.Result[ffi.Handle]{Tag: ffi.TagOk, Ok: p.Handle()})
}
