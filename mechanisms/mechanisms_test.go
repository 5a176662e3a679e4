// SPDX-License-Identifier: MIT
// Package mechanisms_test verifies the built-in constructors.
//
// Purpose:
//   - Check stability maps, privacy maps and invocation of each constructor.
//   - Lock in MakeTransformation for invalid bounds and the saturating sum.

package mechanisms_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/dpchain/domains"
	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/mechanisms"
	"github.com/katalvlaran/dpchain/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeClamp(t *testing.T) {
	clamp, err := mechanisms.MakeClamp(0.0, 1.0)
	require.NoError(t, err)

	out, err := clamp.Invoke([]float64{0.2, 0.9, 1.5, -0.3})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.2, 0.9, 1.0, 0.0}, out)

	d, err := clamp.Map(3)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), d, "clamping is 1-stable")

	_, err = mechanisms.MakeClamp(1.0, 0.0)
	assert.ErrorIs(t, err, errs.ErrMakeTransformation)
}

func TestMakeClamp_Sized(t *testing.T) {
	clamp, err := mechanisms.MakeClamp(0, 10, domains.WithSize(2))
	require.NoError(t, err)
	n, ok := clamp.OutputDomain().(domains.Sized).Size()
	assert.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestMakeBoundedSum(t *testing.T) {
	sum, err := mechanisms.MakeBoundedSum[int64](0, 10)
	require.NoError(t, err)

	got, err := sum.Invoke([]int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, int64(6), got)

	d, err := sum.Map(2)
	require.NoError(t, err)
	assert.Equal(t, int64(20), d)

	neg, err := mechanisms.MakeBoundedSum[int32](-5, -1)
	require.NoError(t, err)
	d32, err := neg.Map(1)
	require.NoError(t, err)
	assert.Equal(t, int32(5), d32)
}

// TestMakeSums_BadBounds reports inverted bounds as a transformation failure,
// not as the domain failure underneath.
func TestMakeSums_BadBounds(t *testing.T) {
	_, err := mechanisms.MakeBoundedSum[int](5, 1)
	require.Error(t, err)
	assert.Equal(t, errs.MakeTransformation, errs.VariantOf(err))
	assert.ErrorIs(t, err, domains.ErrBounds, "cause is kept")

	_, err = mechanisms.MakeSizedBoundedSum(3, 2.0, 1.0)
	require.Error(t, err)
	assert.Equal(t, errs.MakeTransformation, errs.VariantOf(err))

	_, err = mechanisms.MakeClamp(1, 0)
	require.Error(t, err)
	assert.Equal(t, errs.MakeTransformation, errs.VariantOf(err))
}

// TestMakeBoundedSum_MixedSign rejects bounds that straddle zero.
func TestMakeBoundedSum_MixedSign(t *testing.T) {
	_, err := mechanisms.MakeBoundedSum[int64](-1, 1)
	assert.ErrorIs(t, err, errs.ErrMakeTransformation)
	assert.ErrorIs(t, err, mechanisms.ErrBoundsSign)
}

// TestMakeBoundedSum_Saturates clamps at the carrier's range.
func TestMakeBoundedSum_Saturates(t *testing.T) {
	sum, err := mechanisms.MakeBoundedSum[int8](0, 100)
	require.NoError(t, err)
	got, err := sum.Invoke([]int8{100, 100})
	require.NoError(t, err)
	assert.Equal(t, int8(math.MaxInt8), got)
}

func TestMakeSizedBoundedSum(t *testing.T) {
	sum, err := mechanisms.MakeSizedBoundedSum(4, 0.0, 1.0)
	require.NoError(t, err)

	got, err := sum.Invoke([]float64{0.2, 0.9, 1.0, 0.0})
	require.NoError(t, err)
	assert.InDelta(t, 2.1, got, 1e-12)

	d, err := sum.Map(2)
	require.NoError(t, err)
	assert.Greater(t, d, 1.0, "one changed record plus relaxation")
	assert.Less(t, d, 1.0+1e-12)

	d0, err := sum.Map(1)
	require.NoError(t, err)
	assert.Less(t, d0, 1e-12, "odd d_in rounds down to whole changes")
}

func TestMakeLaplace(t *testing.T) {
	lap, err := mechanisms.MakeLaplace(2.0)
	require.NoError(t, err)

	eps, err := lap.Map(1)
	require.NoError(t, err)
	assert.Equal(t, 0.5, eps)

	_, err = lap.Invoke(10)
	assert.NoError(t, err)

	for _, bad := range []float64{0, -1, math.Inf(1), math.NaN()} {
		_, err := mechanisms.MakeLaplace(bad)
		assert.ErrorIs(t, err, errs.ErrMakeMeasurement, "scale %v", bad)
	}
}

func TestMakeVectorLaplace(t *testing.T) {
	lap, err := mechanisms.MakeVectorLaplace(1.0)
	require.NoError(t, err)
	out, err := lap.Invoke([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

func TestMakeRandomizedResponseBool(t *testing.T) {
	rr, err := mechanisms.MakeRandomizedResponseBool(0.75, true)
	require.NoError(t, err)

	eps, err := rr.Map(1)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, eps, math.Log(3))
	assert.InDelta(t, math.Log(3), eps, 1e-12)

	zero, err := rr.Map(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, zero)

	_, err = rr.Invoke(true)
	assert.NoError(t, err)

	for _, bad := range []float64{0.4, 1, math.NaN()} {
		_, err := mechanisms.MakeRandomizedResponseBool(bad, false)
		assert.ErrorIs(t, err, mechanisms.ErrProbability, "prob %v", bad)
	}
}

func TestMakeIdentity(t *testing.T) {
	vec := domains.NewVectorDomain[float64](domains.NewAtomDomain[float64]())
	id, err := mechanisms.MakeIdentity[[]float64, float64](vec, metrics.L1Distance[float64]{})
	require.NoError(t, err)

	out, err := id.Invoke([]float64{1, -2})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -2}, out)

	d, err := id.Map(0.75)
	require.NoError(t, err)
	assert.Equal(t, 0.75, d)

	_, err = mechanisms.MakeIdentity[[]float64, uint32](vec, metrics.L1Distance[float64]{})
	assert.ErrorIs(t, err, errs.ErrMakeTransformation, "distance type must match the metric")
}
