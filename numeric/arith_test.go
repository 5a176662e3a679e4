// SPDX-License-Identifier: MIT
// Package numeric_test verifies directional arithmetic.
//
// Purpose:
//   - Check that Inf results never fall below the exact value and NegInf never above.
//   - Lock in the overflow errors for integers and floats.

package numeric_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/numeric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInfAdd_RoundsOutward checks 0.1+0.2, whose exact sum lies strictly
// between two float64 neighbours.
func TestInfAdd_RoundsOutward(t *testing.T) {
	hi, err := numeric.InfAdd(0.1, 0.2)
	require.NoError(t, err)
	lo, err := numeric.NegInfAdd(0.1, 0.2)
	require.NoError(t, err)

	assert.Less(t, lo, hi, "inexact sum must straddle")
	assert.Equal(t, math.Nextafter(lo, math.Inf(1)), hi, "bounds are adjacent floats")
}

// TestInfAdd_Exact leaves exactly representable results untouched.
func TestInfAdd_Exact(t *testing.T) {
	got, err := numeric.InfAdd(1.5, 2.25)
	require.NoError(t, err)
	assert.Equal(t, 3.75, got)
}

func TestInfDiv_Float(t *testing.T) {
	hi, err := numeric.InfDiv(1.0, 3.0)
	require.NoError(t, err)
	lo, err := numeric.NegInfDiv(1.0, 3.0)
	require.NoError(t, err)
	assert.Greater(t, hi, lo)
	assert.GreaterOrEqual(t, hi*3, 1.0)

	_, err = numeric.InfDiv(1.0, 0.0)
	assert.ErrorIs(t, err, errs.ErrFailedFunction, "division by zero")
}

func TestInfDiv_Integer(t *testing.T) {
	cases := []struct {
		a, b, ceil, floor int64
	}{
		{7, 2, 4, 3},
		{-7, 2, -3, -4},
		{6, 3, 2, 2},
		{7, -2, -3, -4},
	}
	for _, c := range cases {
		hi, err := numeric.InfDiv(c.a, c.b)
		require.NoError(t, err)
		lo, err := numeric.NegInfDiv(c.a, c.b)
		require.NoError(t, err)
		assert.Equal(t, c.ceil, hi, "ceil(%d/%d)", c.a, c.b)
		assert.Equal(t, c.floor, lo, "floor(%d/%d)", c.a, c.b)
	}
}

// TestIntegerOverflow rejects results past the carrier's range.
func TestIntegerOverflow(t *testing.T) {
	_, err := numeric.InfAdd(uint32(math.MaxUint32), uint32(1))
	assert.ErrorIs(t, err, errs.ErrFailedFunction)

	_, err = numeric.InfMul(int8(100), int8(2))
	assert.ErrorIs(t, err, errs.ErrFailedFunction)

	_, err = numeric.InfSub(uint8(0), uint8(1))
	assert.ErrorIs(t, err, errs.ErrFailedFunction, "unsigned underflow")
}

func TestFloatOverflow(t *testing.T) {
	_, err := numeric.InfMul(math.MaxFloat64, 2.0)
	assert.ErrorIs(t, err, errs.ErrFailedFunction)

	_, err = numeric.InfSub(math.Inf(1), math.Inf(1))
	assert.ErrorIs(t, err, errs.ErrFailedFunction, "inf - inf is undefined")

	got, err := numeric.InfAdd(math.Inf(1), 1.0)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1), "infinite operands pass through")
}

// TestFloat32 rounds at float32 precision, not float64.
func TestFloat32(t *testing.T) {
	hi, err := numeric.InfDiv(float32(1), float32(3))
	require.NoError(t, err)
	lo, err := numeric.NegInfDiv(float32(1), float32(3))
	require.NoError(t, err)
	assert.Equal(t, math.Nextafter32(lo, float32(math.Inf(1))), hi)
}

func TestInfCast(t *testing.T) {
	// 2^53+1 is not representable as float64
	v := int64(1<<53 + 1)
	hi, err := numeric.InfCast[float64](v)
	require.NoError(t, err)
	lo, err := numeric.NegInfCast[float64](v)
	require.NoError(t, err)
	assert.Equal(t, float64(1<<53+2), hi)
	assert.Equal(t, float64(1<<53), lo)

	c, err := numeric.InfCast[uint32](2.1)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), c)

	f, err := numeric.InfCast[float32](0.1)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, float64(f), 0.1)

	_, err = numeric.InfCast[uint8](-1.0)
	assert.ErrorIs(t, err, errs.ErrFailedFunction)
}

func TestTranscendental(t *testing.T) {
	hi, err := numeric.InfLn(2.0)
	require.NoError(t, err)
	lo, err := numeric.NegInfLn(2.0)
	require.NoError(t, err)
	assert.Less(t, lo, math.Ln2)
	assert.Greater(t, hi, math.Ln2)

	zero, err := numeric.InfLn(1.0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, zero, "ln(1) is exact")

	e, err := numeric.InfExp(1.0)
	require.NoError(t, err)
	assert.Greater(t, e, math.E)

	s, err := numeric.InfSqrt(2.0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, s*s, 2.0)

	_, err = numeric.InfLn(-1.0)
	assert.ErrorIs(t, err, errs.ErrFailedFunction)
	_, err = numeric.InfExp(1000.0)
	assert.ErrorIs(t, err, errs.ErrFailedFunction)
}
