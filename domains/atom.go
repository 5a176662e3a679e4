// SPDX-License-Identifier: MIT

package domains

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dpchain/dtype"
	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/numeric"
)

// Atom is the accessor shape of a scalar domain.
type Atom interface {
	Carrier() dtype.Type
	IsNullable() bool
	HasBounds() bool
}

// Bounds is a closed interval [Lower, Upper].
type Bounds[T numeric.Number] struct {
	Lower, Upper T
}

// AtomDomain is the set of values of a scalar type T, optionally restricted
// to closed bounds. Float domains exclude NaN unless nullable.
type AtomDomain[T any] struct {
	lower, upper T
	bounded      bool
	nullable     bool
	contains     func(T) bool
}

// NewAtomDomain returns the unbounded, non-nullable domain of T.
func NewAtomDomain[T any]() AtomDomain[T] {
	return AtomDomain[T]{}
}

// NewNullableAtomDomain returns the unbounded domain of T including NaN.
func NewNullableAtomDomain[T numeric.Float]() AtomDomain[T] {
	return AtomDomain[T]{nullable: true}
}

// NewBoundedAtomDomain returns the domain of T restricted to [lower, upper].
func NewBoundedAtomDomain[T numeric.Number](lower, upper T) (AtomDomain[T], error) {
	if isNaN(lower) || isNaN(upper) || lower > upper {
		return AtomDomain[T]{}, errs.Wrap(errs.MakeDomain, fmt.Sprintf("bounds [%v, %v]", lower, upper), ErrBounds)
	}
	return AtomDomain[T]{
		lower:    lower,
		upper:    upper,
		bounded:  true,
		contains: func(v T) bool { return lower <= v && v <= upper },
	}, nil
}

// Bounds returns the closed bounds, if any.
func (d AtomDomain[T]) Bounds() (lower, upper T, ok bool) {
	return d.lower, d.upper, d.bounded
}

func (d AtomDomain[T]) HasBounds() bool  { return d.bounded }
func (d AtomDomain[T]) IsNullable() bool { return d.nullable }

// Carrier implements core.Domain.
func (d AtomDomain[T]) Carrier() dtype.Type { return dtype.Of[T]() }

// Member implements core.Domain.
func (d AtomDomain[T]) Member(v T) (bool, error) {
	if isNaN(v) {
		return d.nullable, nil
	}
	if d.bounded {
		return d.contains(v), nil
	}
	return true, nil
}

// Equal implements core.Domain.
func (d AtomDomain[T]) Equal(other any) bool {
	o, ok := other.(AtomDomain[T])
	if !ok {
		return false
	}
	if d.bounded != o.bounded || d.nullable != o.nullable {
		return false
	}
	return !d.bounded || (any(d.lower) == any(o.lower) && any(d.upper) == any(o.upper))
}

// String implements fmt.Stringer.
func (d AtomDomain[T]) String() string {
	s := "AtomDomain("
	if d.bounded {
		s += fmt.Sprintf("bounds=[%v, %v], ", d.lower, d.upper)
	}
	if d.nullable {
		s += "nullable=true, "
	}
	return s + "T=" + d.Carrier().Descriptor + ")"
}

func isNaN(v any) bool {
	switch x := v.(type) {
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}
