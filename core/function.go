// SPDX-License-Identifier: MIT

package core

import (
	"errors"

	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/numeric"
)

// Function maps TI to TO and may fail. The zero Function is not invocable.
type Function[TI, TO any] struct {
	eval func(TI) (TO, error)
}

// NewFunction wraps an infallible mapping.
func NewFunction[TI, TO any](f func(TI) TO) Function[TI, TO] {
	return Function[TI, TO]{eval: func(x TI) (TO, error) { return f(x), nil }}
}

// NewFallibleFunction wraps a mapping that may fail. Errors outside the
// errs taxonomy are reported as errs.FailedFunction.
func NewFallibleFunction[TI, TO any](f func(TI) (TO, error)) Function[TI, TO] {
	return Function[TI, TO]{eval: f}
}

// Eval applies f to x.
func (f Function[TI, TO]) Eval(x TI) (TO, error) {
	if f.eval == nil {
		var zero TO
		return zero, errs.New(errs.FailedFunction, "function is not set")
	}
	out, err := f.eval(x)
	if err != nil {
		return out, classify(errs.FailedFunction, err)
	}
	return out, nil
}

// ChainFunctions returns outer∘inner. Neither closure is copied.
func ChainFunctions[TI, TX, TO any](outer Function[TX, TO], inner Function[TI, TX]) Function[TI, TO] {
	return Function[TI, TO]{eval: func(x TI) (TO, error) {
		mid, err := inner.Eval(x)
		if err != nil {
			var zero TO
			return zero, err
		}
		return outer.Eval(mid)
	}}
}

// StabilityMap bounds the output distance of a transformation in terms of its
// input distance.
type StabilityMap[QI, QO any] struct {
	eval func(QI) (QO, error)
}

// NewStabilityMap wraps a fallible, monotone map.
func NewStabilityMap[QI, QO any](f func(QI) (QO, error)) StabilityMap[QI, QO] {
	return StabilityMap[QI, QO]{eval: f}
}

// NewStabilityMapFromConstant returns d ↦ c·d, cast and multiplied with
// rounding toward +∞.
func NewStabilityMapFromConstant[QI, QO numeric.Number](c QO) StabilityMap[QI, QO] {
	return StabilityMap[QI, QO]{eval: constantMap[QI](c)}
}

// Eval evaluates the map at dIn.
func (m StabilityMap[QI, QO]) Eval(dIn QI) (QO, error) {
	if m.eval == nil {
		var zero QO
		return zero, errs.New(errs.FailedRelation, "stability map is not set")
	}
	out, err := m.eval(dIn)
	if err != nil {
		return out, classify(errs.FailedRelation, err)
	}
	return out, nil
}

// ChainStabilityMaps returns outer∘inner.
func ChainStabilityMaps[QI, QX, QO any](outer StabilityMap[QX, QO], inner StabilityMap[QI, QX]) StabilityMap[QI, QO] {
	return StabilityMap[QI, QO]{eval: func(d QI) (QO, error) {
		mid, err := inner.Eval(d)
		if err != nil {
			var zero QO
			return zero, err
		}
		return outer.Eval(mid)
	}}
}

// PrivacyMap bounds the privacy loss of a measurement in terms of its input
// distance.
type PrivacyMap[QI, QO any] struct {
	eval func(QI) (QO, error)
}

// NewPrivacyMap wraps a fallible, monotone map.
func NewPrivacyMap[QI, QO any](f func(QI) (QO, error)) PrivacyMap[QI, QO] {
	return PrivacyMap[QI, QO]{eval: f}
}

// NewPrivacyMapFromConstant returns d ↦ c·d, rounded toward +∞.
func NewPrivacyMapFromConstant[QI, QO numeric.Number](c QO) PrivacyMap[QI, QO] {
	return PrivacyMap[QI, QO]{eval: constantMap[QI](c)}
}

// Eval evaluates the map at dIn.
func (m PrivacyMap[QI, QO]) Eval(dIn QI) (QO, error) {
	if m.eval == nil {
		var zero QO
		return zero, errs.New(errs.FailedRelation, "privacy map is not set")
	}
	out, err := m.eval(dIn)
	if err != nil {
		return out, classify(errs.FailedRelation, err)
	}
	return out, nil
}

// ChainPrivacyStability returns privacy∘stability: the loss of a measurement
// run after a transformation.
func ChainPrivacyStability[QI, QX, QO any](privacy PrivacyMap[QX, QO], stability StabilityMap[QI, QX]) PrivacyMap[QI, QO] {
	return PrivacyMap[QI, QO]{eval: func(d QI) (QO, error) {
		mid, err := stability.Eval(d)
		if err != nil {
			var zero QO
			return zero, err
		}
		return privacy.Eval(mid)
	}}
}

func constantMap[QI, QO numeric.Number](c QO) func(QI) (QO, error) {
	return func(d QI) (QO, error) {
		dc, err := numeric.InfCast[QO](d)
		if err != nil {
			return dc, err
		}
		return numeric.InfMul(dc, c)
	}
}

func classify(v errs.Variant, err error) error {
	var e *errs.Error
	if errors.As(err, &e) {
		return err
	}
	return errs.Errorf(v, "%w", err)
}
