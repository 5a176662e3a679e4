// SPDX-License-Identifier: MIT
// Package erased_test verifies the type-erased layer.
//
// Purpose:
//   - Check exact coercion of dynamic values into carriers.
//   - Replay the clamp, sum and Laplace scenario through erased values.
//   - Lock in the variants Then reports for each kind pairing.

package erased_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dpchain/domains"
	"github.com/katalvlaran/dpchain/dtype"
	"github.com/katalvlaran/dpchain/erased"
	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/measures"
	"github.com/katalvlaran/dpchain/mechanisms"
)

var input = []float64{0.2, 0.9, 1.5, -0.3}

// scenario erases clamp([0,1]) -> sum -> Laplace(1).
func scenario(t *testing.T) (clamp, sum erased.Transformation, lap erased.Measurement) {
	t.Helper()
	c, err := mechanisms.MakeClamp(0.0, 1.0, domains.WithSize(4))
	require.NoError(t, err)
	s, err := mechanisms.MakeSizedBoundedSum(4, 0.0, 1.0)
	require.NoError(t, err)
	l, err := mechanisms.MakeLaplace(1.0)
	require.NoError(t, err)

	clamp, err = erased.EraseTransformation(c)
	require.NoError(t, err)
	sum, err = erased.EraseTransformation(s)
	require.NoError(t, err)
	lap, err = erased.EraseMeasurement(l)
	require.NoError(t, err)
	return clamp, sum, lap
}

func TestDowncast(t *testing.T) {
	o := erased.New([]float64{1, 2})
	assert.Equal(t, "[]float64", o.Type().Descriptor)

	xs, err := erased.Downcast[[]float64](o)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, xs)

	_, err = erased.Downcast[[]float32](o)
	assert.ErrorIs(t, err, errs.ErrFailedCast)
	_, err = erased.Downcast[int](nil)
	assert.ErrorIs(t, err, errs.ErrFailedCast)
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		desc string
		in   any
		want any
	}{
		{"exact", "float64", 1.5, 1.5},
		{"int to float", "[]float64", []any{1, 2.5}, []float64{1, 2.5}},
		{"float to int", "[]int64", []any{1.0, 2.0}, []int64{1, 2}},
		{"narrow float", "float32", 0.5, float32(0.5)},
		{"any slice", "[]any", []int{1, 2}, []any{1, 2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o, err := erased.Coerce(dtype.MustParse(tc.desc), tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.desc, o.Type().Descriptor)
			assert.Equal(t, tc.want, o.Value())
		})
	}

	bad := []struct {
		desc string
		in   any
	}{
		{"[]int64", []any{0.5}},
		{"uint8", -1},
		{"uint8", 300},
		{"int64", uint64(1) << 63},
		{"bool", 1},
		{"[]float64", []any{nil}},
		{"string", nil},
		{"float32", 1 + 0x1p-25},
		{"[]float32", []any{0.1}},
	}
	for _, tc := range bad {
		_, err := erased.Coerce(dtype.MustParse(tc.desc), tc.in)
		assert.ErrorIs(t, err, errs.ErrFailedCast, "%s <- %#v", tc.desc, tc.in)
	}
}

func TestDomain_Equal(t *testing.T) {
	a := erased.EraseDomain[float64](domains.NewAtomDomain[float64]())
	b := erased.EraseDomain[float64](domains.NewAtomDomain[float64]())
	c := erased.EraseDomain[float32](domains.NewAtomDomain[float32]())
	bounded, err := domains.NewBoundedAtomDomain(0.0, 1.0)
	require.NoError(t, err)
	d := erased.EraseDomain[float64](bounded)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "carrier descriptors differ")
	assert.False(t, a.Equal(d), "same carrier, bounds differ")
	assert.False(t, a.Equal(domains.NewAtomDomain[float64]()), "erased never equals concrete")

	ok, err := d.Member(erased.New(0.5))
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = d.Member(erased.New(float32(0.5)))
	assert.ErrorIs(t, err, errs.ErrFailedCast)
}

func TestScenario_Erased(t *testing.T) {
	clamp, sum, lap := scenario(t)

	meas, err := erased.Start(clamp, nil).Then(sum, nil).Then(lap, nil).Measurement()
	require.NoError(t, err)
	assert.Equal(t, "[]float64", meas.InputDomain().Carrier().Descriptor)

	out, err := meas.Invoke(erased.New(input))
	require.NoError(t, err)
	_, err = erased.Downcast[float64](out)
	require.NoError(t, err)

	eps, err := meas.Map(erased.New(uint32(1)))
	require.NoError(t, err)
	v, err := erased.Downcast[float64](eps)
	require.NoError(t, err)
	assert.LessOrEqual(t, v, 1.0)

	ok, err := meas.Check(erased.New(uint32(2)), erased.New(1.0+1e-9))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInvoke_WrongDescriptor(t *testing.T) {
	clamp, _, _ := scenario(t)

	_, err := clamp.Invoke(erased.New([]float32{0.5}))
	assert.ErrorIs(t, err, errs.ErrFailedCast)
	_, err = clamp.Map(erased.New(1.0))
	assert.ErrorIs(t, err, errs.ErrFailedCast)
}

func TestThen_Errors(t *testing.T) {
	clamp, sum, lap := scenario(t)

	_, err := erased.Then(clamp, lap)
	assert.ErrorIs(t, err, errs.ErrDomainMismatch)

	_, err = erased.Then(lap, sum)
	assert.ErrorIs(t, err, errs.ErrDomainMismatch, "a scalar release cannot feed a vector sum")

	_, err = erased.Then(lap, lap)
	assert.ErrorIs(t, err, errs.ErrNotImplemented)

	boom := errors.New("constructor failed")
	_, err = erased.Start(clamp, nil).Then(nil, boom).Then(lap, nil).Result()
	assert.ErrorIs(t, err, boom, "first failure is kept")

	_, err = erased.Start(erased.New(1), nil).Result()
	assert.ErrorIs(t, err, errs.ErrFailedCast)

	_, err = erased.Start(clamp, nil).Then(sum, nil).Measurement()
	assert.ErrorIs(t, err, errs.ErrFailedCast, "pipeline ends in a transformation")
}

func TestMakeBasicComposition(t *testing.T) {
	clamp, sum, lap := scenario(t)
	meas, err := erased.Start(clamp, nil).Then(sum, nil).Then(lap, nil).Measurement()
	require.NoError(t, err)

	composed, err := erased.MakeBasicComposition([]erased.Measurement{meas, meas, meas})
	require.NoError(t, err)

	out, err := composed.Invoke(erased.New(input))
	require.NoError(t, err)
	vals, err := erased.Downcast[[]any](out)
	require.NoError(t, err)
	assert.Len(t, vals, 3)

	single, err := meas.Map(erased.New(uint32(2)))
	require.NoError(t, err)
	total, err := composed.Map(erased.New(uint32(2)))
	require.NoError(t, err)
	s, _ := erased.Downcast[float64](single)
	tot, _ := erased.Downcast[float64](total)
	assert.GreaterOrEqual(t, tot, 3*s)
	assert.InDelta(t, 3*s, tot, 1e-9)

	_, err = erased.MakeBasicComposition(nil)
	assert.ErrorIs(t, err, errs.ErrMakeMeasurement)
}

func TestMeasureCasts(t *testing.T) {
	_, _, lap := scenario(t)
	one := erased.New(1.0)

	approx, err := erased.MakePureDPToFixedApproxDP[float64](lap)
	require.NoError(t, err)
	d, err := approx.Map(one)
	require.NoError(t, err)
	ed, err := erased.Downcast[measures.EpsDelta[float64]](d)
	require.NoError(t, err)
	assert.Equal(t, measures.EpsDelta[float64]{Epsilon: 1}, ed)

	zcdp, err := erased.MakePureDPToZCDP[float64](lap)
	require.NoError(t, err)
	rho, err := zcdp.Map(one)
	require.NoError(t, err)
	r, err := erased.Downcast[float64](rho)
	require.NoError(t, err)
	assert.Equal(t, 0.5, r)

	curve, err := erased.MakeZCDPToApproxDP[float64](zcdp)
	require.NoError(t, err)
	fixed, err := erased.MakeFixDelta[float64](curve, 1e-6)
	require.NoError(t, err)
	d, err = fixed.Map(one)
	require.NoError(t, err)
	ed, err = erased.Downcast[measures.EpsDelta[float64]](d)
	require.NoError(t, err)
	assert.InDelta(t, 5.7566, ed.Epsilon, 1e-3)
	assert.Equal(t, 1e-6, ed.Delta)

	_, err = erased.MakePureDPToZCDP[float32](lap)
	assert.ErrorIs(t, err, errs.ErrMakeMeasurement, "distance type differs")
	_, err = erased.MakeZCDPToApproxDP[float64](lap)
	assert.ErrorIs(t, err, errs.ErrMeasureMismatch)
	_, err = erased.MakeFixDelta[float64](curve, 0)
	assert.ErrorIs(t, err, errs.ErrMakeMeasurement)
}

func TestMakePopulationAmplification(t *testing.T) {
	vec, err := mechanisms.MakeVectorLaplace(1.0, domains.WithSize(10))
	require.NoError(t, err)
	m, err := erased.EraseMeasurement(vec)
	require.NoError(t, err)

	amp, err := erased.MakePopulationAmplification(m, 100)
	require.NoError(t, err)
	eps, err := amp.Map(erased.New(1.0))
	require.NoError(t, err)
	v, _ := erased.Downcast[float64](eps)
	assert.Less(t, v, 1.0)
	assert.Greater(t, v, 0.0)

	_, err = erased.MakePopulationAmplification(m, 10)
	assert.ErrorIs(t, err, errs.ErrMakeMeasurement)
}
