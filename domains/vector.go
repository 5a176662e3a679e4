// SPDX-License-Identifier: MIT

package domains

import (
	"fmt"

	"github.com/katalvlaran/dpchain/core"
	"github.com/katalvlaran/dpchain/dtype"
)

// Vector is the accessor shape of a sequence domain.
type Vector interface {
	ElementDomain() any
	Size() (int, bool)
}

// Sized is implemented by domains of known cardinality.
type Sized interface {
	Size() (int, bool)
}

// VectorOption configures a VectorDomain.
type VectorOption func(*vectorConfig)

type vectorConfig struct {
	size  int
	sized bool
}

// WithSize fixes the vector length. Panics on negative n.
func WithSize(n int) VectorOption {
	if n < 0 {
		panic(fmt.Sprintf("domains: WithSize(%d): size must be non-negative", n))
	}
	return func(c *vectorConfig) {
		c.size = n
		c.sized = true
	}
}

// VectorDomain is the set of []T whose elements all belong to the element
// domain, optionally of a fixed length.
type VectorDomain[T any] struct {
	element core.Domain[T]
	size    int
	sized   bool
}

// NewVectorDomain builds a VectorDomain over element.
func NewVectorDomain[T any](element core.Domain[T], opts ...VectorOption) VectorDomain[T] {
	var cfg vectorConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return VectorDomain[T]{element: element, size: cfg.size, sized: cfg.sized}
}

// Element returns the element domain.
func (d VectorDomain[T]) Element() core.Domain[T] { return d.element }

// ElementDomain implements Vector.
func (d VectorDomain[T]) ElementDomain() any { return d.element }

// Size returns the fixed length, if any.
func (d VectorDomain[T]) Size() (int, bool) { return d.size, d.sized }

// WithSize returns a copy of d with a fixed length.
func (d VectorDomain[T]) WithSize(n int) VectorDomain[T] {
	if n < 0 {
		panic(fmt.Sprintf("domains: WithSize(%d): size must be non-negative", n))
	}
	d.size, d.sized = n, true
	return d
}

// Carrier implements core.Domain.
func (d VectorDomain[T]) Carrier() dtype.Type { return dtype.Of[[]T]() }

// Member implements core.Domain.
func (d VectorDomain[T]) Member(v []T) (bool, error) {
	if d.sized && len(v) != d.size {
		return false, nil
	}
	for _, x := range v {
		ok, err := d.element.Member(x)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// Equal implements core.Domain.
func (d VectorDomain[T]) Equal(other any) bool {
	o, ok := other.(VectorDomain[T])
	if !ok {
		return false
	}
	return d.sized == o.sized && d.size == o.size && d.element.Equal(o.element)
}

// String implements fmt.Stringer.
func (d VectorDomain[T]) String() string {
	if d.sized {
		return fmt.Sprintf("VectorDomain(%s, size=%d)", d.element, d.size)
	}
	return fmt.Sprintf("VectorDomain(%s)", d.element)
}
