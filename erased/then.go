// SPDX-License-Identifier: MIT

package erased

import (
	"github.com/katalvlaran/dpchain/combinators"
	"github.com/katalvlaran/dpchain/errs"
)

// Then chains left into right, in pipeline order:
//
//	Transformation then Transformation -> Transformation
//	Transformation then Measurement    -> Measurement
//	Transformation then Postprocessor  -> Postprocessor
//	Measurement    then Transformation -> Measurement
//	Measurement    then Postprocessor  -> Measurement
//
// Any other pairing fails with errs.NotImplemented.
func Then(left, right any) (any, error) {
	switch l := left.(type) {
	case Transformation:
		switch r := right.(type) {
		case Transformation:
			return lift(combinators.MakeChainTT(r, l))
		case Measurement:
			return lift(combinators.MakeChainMT(r, l))
		case Postprocessor:
			return lift(combinators.MakeChainTP(r, l))
		}
	case Measurement:
		switch r := right.(type) {
		case Transformation:
			return lift(combinators.MakeChainTM(r, l))
		case Postprocessor:
			return lift(combinators.MakeChainPM(r, l))
		}
	}
	return nil, errs.Errorf(errs.NotImplemented, "cannot chain %s then %s", Kind(left), Kind(right))
}

func lift[T any](v T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Kind names the erased object kind of v.
func Kind(v any) string {
	switch v.(type) {
	case Transformation:
		return "Transformation"
	case Measurement:
		return "Measurement"
	case Postprocessor:
		return "Postprocessor"
	case *Object:
		return "Object"
	case *Domain:
		return "Domain"
	case *Metric:
		return "Metric"
	case *Measure:
		return "Measure"
	case nil:
		return "nil"
	}
	return "unknown"
}

// Pipeline folds constructor results left to right with Then. The first
// failure is kept and every later step is skipped.
type Pipeline struct {
	cur any
	err error
}

// Start begins a pipeline at the result of a constructor.
func Start(obj any, err error) *Pipeline {
	if err == nil && !chainable(obj) {
		err = errs.Errorf(errs.FailedCast, "cannot start a pipeline with %s", Kind(obj))
	}
	return &Pipeline{cur: obj, err: err}
}

// Then appends the result of a constructor.
func (p *Pipeline) Then(obj any, err error) *Pipeline {
	if p.err != nil {
		return p
	}
	if err != nil {
		return &Pipeline{err: err}
	}
	next, err := Then(p.cur, obj)
	return &Pipeline{cur: next, err: err}
}

// Result returns the chained object.
func (p *Pipeline) Result() (any, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.cur, nil
}

// Transformation returns the result, failing with errs.FailedCast when the
// pipeline did not end in a transformation.
func (p *Pipeline) Transformation() (Transformation, error) {
	return as[Transformation](p)
}

// Measurement is Transformation for measurements.
func (p *Pipeline) Measurement() (Measurement, error) {
	return as[Measurement](p)
}

// Postprocessor is Transformation for postprocessors.
func (p *Pipeline) Postprocessor() (Postprocessor, error) {
	return as[Postprocessor](p)
}

func as[T any](p *Pipeline) (T, error) {
	var zero T
	if p.err != nil {
		return zero, p.err
	}
	v, ok := p.cur.(T)
	if !ok {
		return zero, errs.Errorf(errs.FailedCast, "pipeline ends in a %s", Kind(p.cur))
	}
	return v, nil
}

func chainable(v any) bool {
	switch v.(type) {
	case Transformation, Measurement, Postprocessor:
		return true
	}
	return false
}
