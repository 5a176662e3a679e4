// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/ffi"
)

// Option configures Build.
type Option func(*config)

type config struct {
	constantTime bool
}

// WithConstantTime sets the default constant-time sampling flag for steps
// that do not set constant_time themselves.
func WithConstantTime(on bool) Option {
	return func(c *config) { c.constantTime = on }
}

type op struct {
	build func(s Step, c config) ffi.Result[ffi.Handle]
	cast  func(m ffi.Handle, s Step) ffi.Result[ffi.Handle]
}

var ops = map[string]op{
	"clamp": {build: func(s Step, _ config) ffi.Result[ffi.Handle] {
		return ffi.MakeClamp(s.Type, s.Lower, s.Upper, size(s))
	}},
	"bounded_sum": {build: func(s Step, _ config) ffi.Result[ffi.Handle] {
		return ffi.MakeBoundedSum(s.Type, s.Lower, s.Upper)
	}},
	"sized_bounded_sum": {build: func(s Step, _ config) ffi.Result[ffi.Handle] {
		return ffi.MakeSizedBoundedSum(s.Type, size(s), s.Lower, s.Upper)
	}},
	"laplace": {build: func(s Step, _ config) ffi.Result[ffi.Handle] {
		return ffi.MakeLaplace(s.Type, s.Scale)
	}},
	"vector_laplace": {build: func(s Step, _ config) ffi.Result[ffi.Handle] {
		return ffi.MakeVectorLaplace(s.Type, s.Scale, size(s))
	}},
	"randomized_response_bool": {build: func(s Step, c config) ffi.Result[ffi.Handle] {
		ct := c.constantTime
		if s.ConstantTime != nil {
			ct = *s.ConstantTime
		}
		return ffi.MakeRandomizedResponseBool(s.Prob, ct)
	}},
	"pure_dp_to_fixed_approx_dp": {cast: func(m ffi.Handle, _ Step) ffi.Result[ffi.Handle] {
		return ffi.PureDPToFixedApproxDP(m)
	}},
	"pure_dp_to_zcdp": {cast: func(m ffi.Handle, _ Step) ffi.Result[ffi.Handle] {
		return ffi.PureDPToZCDP(m)
	}},
	"zcdp_to_approx_dp": {cast: func(m ffi.Handle, _ Step) ffi.Result[ffi.Handle] {
		return ffi.ZCDPToApproxDP(m)
	}},
	"fix_delta": {cast: func(m ffi.Handle, s Step) ffi.Result[ffi.Handle] {
		return ffi.FixDelta(m, s.Delta)
	}},
	"amplify": {cast: func(m ffi.Handle, s Step) ffi.Result[ffi.Handle] {
		return ffi.PopulationAmplification(m, s.Population)
	}},
}

// Ops lists the step operations a document may use.
func Ops() []string {
	out := make([]string, 0, len(ops))
	for name := range ops {
		out = append(out, name)
	}
	return out
}

func size(s Step) int {
	if s.Size == nil {
		return -1
	}
	return *s.Size
}

// Pipeline is a built document. It owns one ffi handle until Close.
type Pipeline struct {
	doc    *Document
	handle ffi.Handle
	kind   string
}

// Build constructs doc step by step. A failing step releases everything
// built so far and reports its index.
func Build(doc *Document, opts ...Option) (*Pipeline, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	if doc == nil || len(doc.Steps) == 0 {
		return nil, ErrEmpty
	}

	var cur ffi.Handle
	for i, s := range doc.Steps {
		next, err := apply(cur, s, cfg)
		if err != nil {
			if cur != 0 {
				ffi.Free(cur)
			}
			return nil, errs.Wrap(errs.MakeTransformation, fmt.Sprintf("step %d (%s)", i, s.Op), err)
		}
		cur = next
	}
	kind, err := ffi.Kind(cur).Unwrap()
	if err != nil {
		ffi.Free(cur)
		return nil, err
	}
	return &Pipeline{doc: doc, handle: cur, kind: kind}, nil
}

// apply builds step s onto cur and releases what it replaces.
func apply(cur ffi.Handle, s Step, cfg config) (ffi.Handle, error) {
	o, ok := ops[s.Op]
	if !ok {
		return 0, errs.Errorf(errs.TypeParse, "unknown op %q", s.Op)
	}
	if o.cast != nil {
		if cur == 0 {
			return 0, errs.New(errs.MakeMeasurement, "cast has no measurement to apply to")
		}
		next, err := o.cast(cur, s).Unwrap()
		if err != nil {
			return 0, err
		}
		ffi.Free(cur)
		return next, nil
	}
	h, err := o.build(s, cfg).Unwrap()
	if err != nil {
		return 0, err
	}
	if cur == 0 {
		return h, nil
	}
	next, err := ffi.Then(cur, h).Unwrap()
	ffi.Free(h)
	if err != nil {
		return 0, err
	}
	ffi.Free(cur)
	return next, nil
}

// Document returns the document p was built from.
func (p *Pipeline) Document() *Document { return p.doc }

// Handle returns the ffi handle of the built object.
func (p *Pipeline) Handle() ffi.Handle { return p.handle }

// Kind is "Transformation", "Measurement" or "Postprocessor".
func (p *Pipeline) Kind() string { return p.kind }

// Invoke runs the pipeline on in, or on the document's input when in is nil.
func (p *Pipeline) Invoke(in *Value) (any, error) {
	if in == nil {
		in = p.doc.Input
	}
	if in == nil {
		return nil, errs.New(errs.FailedFunction, "pipeline: no input")
	}
	arg, err := object(in)
	if err != nil {
		return nil, err
	}
	defer ffi.Free(arg)

	var r ffi.Result[ffi.Handle]
	switch p.kind {
	case "Transformation":
		r = ffi.TransformationInvoke(p.handle, arg)
	case "Measurement":
		r = ffi.MeasurementInvoke(p.handle, arg)
	default:
		r = ffi.PostprocessorInvoke(p.handle, arg)
	}
	return take(r)
}

// Map evaluates the pipeline's map at dIn, or at the document's d_in.
func (p *Pipeline) Map(dIn *Value) (any, error) {
	if dIn == nil {
		dIn = p.doc.DIn
	}
	if dIn == nil {
		return nil, errs.New(errs.InvalidDistance, "pipeline: no d_in")
	}
	d, err := object(dIn)
	if err != nil {
		return nil, err
	}
	defer ffi.Free(d)

	switch p.kind {
	case "Transformation":
		return take(ffi.TransformationMap(p.handle, d))
	case "Measurement":
		return take(ffi.MeasurementMap(p.handle, d))
	}
	return nil, errs.Errorf(errs.NotImplemented, "a %s has no map", p.kind)
}

// Check verifies the pipeline against (dIn, dOut), defaulting to the
// document's distances.
func (p *Pipeline) Check(dIn, dOut *Value) (bool, error) {
	if dIn == nil {
		dIn = p.doc.DIn
	}
	if dOut == nil {
		dOut = p.doc.DOut
	}
	if dIn == nil || dOut == nil {
		return false, errs.New(errs.InvalidDistance, "pipeline: d_in and d_out are required")
	}
	in, err := object(dIn)
	if err != nil {
		return false, err
	}
	defer ffi.Free(in)
	out, err := object(dOut)
	if err != nil {
		return false, err
	}
	defer ffi.Free(out)

	switch p.kind {
	case "Transformation":
		return ffi.TransformationCheck(p.handle, in, out).Unwrap()
	case "Measurement":
		return ffi.MeasurementCheck(p.handle, in, out).Unwrap()
	}
	return false, errs.Errorf(errs.NotImplemented, "a %s has no relation", p.kind)
}

// Close releases the pipeline's handle.
func (p *Pipeline) Close() error {
	if p.handle == 0 {
		return nil
	}
	h := p.handle
	p.handle = 0
	if rec := ffi.Free(h); rec != nil {
		return rec.ToError()
	}
	return nil
}

// object erases v. Types of the form "eps_delta[F]" take a two-element
// [ε, δ] value.
func object(v *Value) (ffi.Handle, error) {
	if q, ok := strings.CutPrefix(v.Type, "eps_delta["); ok {
		q = strings.TrimSuffix(q, "]")
		pair, ok := v.Value.([]any)
		if !ok || len(pair) != 2 {
			return 0, errs.Errorf(errs.TypeParse, "%s value must be [epsilon, delta]", v.Type)
		}
		eps, err1 := number(pair[0])
		delta, err2 := number(pair[1])
		if err1 != nil || err2 != nil {
			return 0, errs.Errorf(errs.TypeParse, "%s value must be numeric, got %v", v.Type, pair)
		}
		return ffi.ObjectNewEpsDelta(q, eps, delta).Unwrap()
	}
	return ffi.ObjectNew(v.Type, v.Value).Unwrap()
}

func number(v any) (float64, error) {
	switch x := v.(type) {
	case int:
		return float64(x), nil
	case float64:
		return x, nil
	}
	return 0, errs.Errorf(errs.FailedCast, "%v is not a number", v)
}

// take reads the object behind r and releases it.
func take(r ffi.Result[ffi.Handle]) (any, error) {
	h, err := r.Unwrap()
	if err != nil {
		return nil, err
	}
	defer ffi.Free(h)
	return ffi.ObjectValue(h).Unwrap()
}
