// SPDX-License-Identifier: MIT

package core

import (
	"math"

	"github.com/katalvlaran/dpchain/errs"
)

// Validator is implemented by composite distances that can be malformed.
type Validator interface {
	Validate() error
}

// Dominator is implemented by distances without a built-in order.
// DominatedBy reports whether the receiver is at most other.
type Dominator interface {
	DominatedBy(other any) (bool, error)
}

// ValidateDistance rejects negative or NaN numeric distances and delegates to
// Validator for composite ones.
func ValidateDistance(d any) error {
	if v, ok := d.(Validator); ok {
		return v.Validate()
	}
	var f float64
	switch x := d.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	default:
		return nil
	}
	if math.IsNaN(f) {
		return errs.New(errs.InvalidDistance, "distance must not be NaN")
	}
	if f < 0 {
		return errs.Errorf(errs.InvalidDistance, "distance must be non-negative, got %v", d)
	}
	return nil
}

// LessEqual reports a ≤ b for two distances of the same type.
func LessEqual(a, b any) (bool, error) {
	if d, ok := a.(Dominator); ok {
		return d.DominatedBy(b)
	}
	switch x := a.(type) {
	case float64:
		return leq(x, b)
	case float32:
		return leq(x, b)
	case int:
		return leq(x, b)
	case int8:
		return leq(x, b)
	case int16:
		return leq(x, b)
	case int32:
		return leq(x, b)
	case int64:
		return leq(x, b)
	case uint:
		return leq(x, b)
	case uint8:
		return leq(x, b)
	case uint16:
		return leq(x, b)
	case uint32:
		return leq(x, b)
	case uint64:
		return leq(x, b)
	}
	return false, errs.Errorf(errs.FailedRelation, "distances of type %T are not ordered", a)
}

func leq[T interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}](a T, b any) (bool, error) {
	y, ok := b.(T)
	if !ok {
		return false, errs.Errorf(errs.FailedRelation, "cannot compare %T with %T", a, b)
	}
	return a <= y, nil
}
