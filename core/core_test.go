// SPDX-License-Identifier: MIT
// Package core_test verifies construction, invocation and map contracts of the core types.
//
// Purpose:
//   - Reject invalid metric spaces and mismatched distance types at construction.
//   - Lock in the error variants raised from user functions and from Check.

package core_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/dpchain/core"
	"github.com/katalvlaran/dpchain/domains"
	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/measures"
	"github.com/katalvlaran/dpchain/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vecDomain() domains.VectorDomain[float64] {
	atom, _ := domains.NewBoundedAtomDomain(0.0, 1.0)
	return domains.NewVectorDomain[float64](atom)
}

// doubling is a vector→vector transformation with stability 2.
func doubling(t *testing.T) core.Transformation[[]float64, []float64, uint32, uint32] {
	t.Helper()
	d := domains.NewVectorDomain[float64](domains.NewAtomDomain[float64]())
	tr, err := core.NewTransformation(
		d, d,
		core.NewFunction(func(xs []float64) []float64 { return append(xs, xs...) }),
		metrics.SymmetricDistance{}, metrics.SymmetricDistance{},
		core.NewStabilityMapFromConstant[uint32](uint32(2)),
	)
	require.NoError(t, err)
	return tr
}

func TestNewTransformation_InvalidMetricSpace(t *testing.T) {
	atom := domains.NewAtomDomain[float64]()
	_, err := core.NewTransformation(
		atom, atom,
		core.NewFunction(func(x float64) float64 { return x }),
		metrics.SymmetricDistance{}, metrics.SymmetricDistance{},
		core.NewStabilityMapFromConstant[uint32](uint32(1)),
	)
	assert.ErrorIs(t, err, errs.ErrInvalidMetricSpace, "symmetric distance is not valid over atoms")
}

// TestNewTransformation_DistanceType rejects maps whose types disagree with the metrics.
func TestNewTransformation_DistanceType(t *testing.T) {
	d := vecDomain()
	_, err := core.NewTransformation(
		d, d,
		core.NewFunction(func(xs []float64) []float64 { return xs }),
		metrics.SymmetricDistance{}, metrics.SymmetricDistance{},
		core.NewStabilityMapFromConstant[float64](1.0),
	)
	assert.ErrorIs(t, err, errs.ErrMakeTransformation)
}

func TestTransformation_InvokeAndMap(t *testing.T) {
	tr := doubling(t)
	out, err := tr.Invoke([]float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 1, 2}, out)

	d, err := tr.Map(3)
	require.NoError(t, err)
	assert.Equal(t, uint32(6), d)

	ok, err := tr.Check(3, 6)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = tr.Check(3, 5)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInvokeChecked(t *testing.T) {
	d := vecDomain()
	tr, err := core.NewTransformation(
		d, d,
		core.NewFunction(func(xs []float64) []float64 { return xs }),
		metrics.SymmetricDistance{}, metrics.SymmetricDistance{},
		core.NewStabilityMapFromConstant[uint32](uint32(1)),
	)
	require.NoError(t, err)

	_, err = tr.InvokeChecked([]float64{0.5, 2})
	assert.ErrorIs(t, err, errs.ErrFailedFunction, "2 is outside [0, 1]")
	_, err = tr.Invoke([]float64{0.5, 2})
	assert.NoError(t, err, "unchecked invocation skips membership")
}

func TestMeasurement_Check(t *testing.T) {
	atom := domains.NewAtomDomain[float64]()
	m, err := core.NewMeasurement(
		atom, atom,
		core.NewFunction(func(x float64) float64 { return x }),
		metrics.AbsoluteDistance[float64]{}, measures.MaxDivergence[float64]{},
		core.NewPrivacyMapFromConstant[float64](0.5),
	)
	require.NoError(t, err)

	ok, err := m.Check(2, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = m.Check(-1, 1)
	assert.ErrorIs(t, err, errs.ErrInvalidDistance, "negative d_in")
	_, err = m.Check(1, math.NaN())
	assert.ErrorIs(t, err, errs.ErrInvalidDistance, "NaN d_out")
}

// TestMeasurement_DistanceType rejects a privacy map typed against the wrong measure.
func TestMeasurement_DistanceType(t *testing.T) {
	atom := domains.NewAtomDomain[float64]()
	_, err := core.NewMeasurement(
		atom, atom,
		core.NewFunction(func(x float64) float64 { return x }),
		metrics.AbsoluteDistance[float64]{}, measures.FixedSmoothedMaxDivergence[float64]{},
		core.NewPrivacyMapFromConstant[float64](0.5),
	)
	assert.ErrorIs(t, err, errs.ErrMakeMeasurement)
}

// TestFunction_ErrorsClassified maps foreign errors onto FailedFunction.
func TestFunction_ErrorsClassified(t *testing.T) {
	f := core.NewFallibleFunction(func(x int) (int, error) { return 0, assert.AnError })
	_, err := f.Eval(1)
	assert.ErrorIs(t, err, errs.ErrFailedFunction)
	assert.ErrorIs(t, err, assert.AnError)

	var zero core.Function[int, int]
	_, err = zero.Eval(1)
	assert.ErrorIs(t, err, errs.ErrFailedFunction)
}

func TestMismatchMessage(t *testing.T) {
	a, _ := domains.NewBoundedAtomDomain(0.0, 1.0)
	b, _ := domains.NewBoundedAtomDomain(0.0, 2.0)
	assert.Contains(t, core.MismatchMessage("domain", a, b), "bounds=[0, 2]")
	assert.Contains(t, core.MismatchMessage("domain", a, a), "not shown by String")
}

func TestLessEqual_TypeMismatch(t *testing.T) {
	_, err := core.LessEqual(1.0, uint32(1))
	assert.ErrorIs(t, err, errs.ErrFailedRelation)
}
