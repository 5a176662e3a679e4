// SPDX-License-Identifier: MIT
// Package domains_test verifies atom, nullable and vector domains.
//
// Purpose:
//   - Anchor membership, bounds validation and structural equality.

package domains_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/dpchain/domains"
	"github.com/katalvlaran/dpchain/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomDomain_Bounds(t *testing.T) {
	d, err := domains.NewBoundedAtomDomain(0.0, 1.0)
	require.NoError(t, err)

	for v, want := range map[float64]bool{0: true, 0.5: true, 1: true, 1.5: false, -0.1: false} {
		got, err := d.Member(v)
		require.NoError(t, err)
		assert.Equal(t, want, got, "member(%v)", v)
	}
	ok, _ := d.Member(math.NaN())
	assert.False(t, ok, "NaN excluded from non-nullable domain")
	assert.Equal(t, "AtomDomain(bounds=[0, 1], T=float64)", d.String())
}

// TestAtomDomain_BadBounds rejects inverted or NaN bounds.
func TestAtomDomain_BadBounds(t *testing.T) {
	_, err := domains.NewBoundedAtomDomain(2, 1)
	assert.ErrorIs(t, err, errs.ErrMakeDomain)

	_, err = domains.NewBoundedAtomDomain(math.NaN(), 1)
	assert.ErrorIs(t, err, errs.ErrMakeDomain)
}

// TestAtomDomain_Equal is structural.
func TestAtomDomain_Equal(t *testing.T) {
	a, _ := domains.NewBoundedAtomDomain(0.0, 1.0)
	b, _ := domains.NewBoundedAtomDomain(0.0, 1.0)
	c, _ := domains.NewBoundedAtomDomain(0.0, 2.0)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "different bounds")
	assert.False(t, a.Equal(domains.NewAtomDomain[float64]()), "bounded vs unbounded")
	assert.False(t, domains.NewAtomDomain[float64]().Equal(domains.NewNullableAtomDomain[float64]()))
	assert.False(t, domains.NewAtomDomain[float64]().Equal(domains.NewAtomDomain[float32]()), "carrier differs")
}

func TestNullableAtomDomain(t *testing.T) {
	d := domains.NewNullableAtomDomain[float64]()
	ok, err := d.Member(math.NaN())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, d.IsNullable())
}

func TestVectorDomain(t *testing.T) {
	atom, _ := domains.NewBoundedAtomDomain(0, 10)
	v := domains.NewVectorDomain[int](atom, domains.WithSize(3))

	ok, err := v.Member([]int{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = v.Member([]int{1, 2})
	assert.False(t, ok, "wrong length")
	ok, _ = v.Member([]int{1, 2, 11})
	assert.False(t, ok, "element out of bounds")

	n, sized := v.Size()
	assert.True(t, sized)
	assert.Equal(t, 3, n)
	assert.Equal(t, "VectorDomain(AtomDomain(bounds=[0, 10], T=int), size=3)", v.String())
	assert.Equal(t, "[]int", v.Carrier().Descriptor)
}

func TestVectorDomain_Equal(t *testing.T) {
	a := domains.NewVectorDomain[float64](domains.NewAtomDomain[float64]())
	b := domains.NewVectorDomain[float64](domains.NewAtomDomain[float64]())
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(b.WithSize(2)))
	assert.Panics(t, func() { domains.WithSize(-1) })
}
