// SPDX-License-Identifier: MIT
// Package accountant_test verifies accountant filter and odometer contracts.
//
// Purpose:
//   - Lock in cap enforcement under every admission order and under concurrency.
//   - Cover nested accountants, sequential access and Limit.
//   - Check that ledger records and log lines follow each charge.

package accountant_test

import (
	"context"
	"errors"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/dpchain/accountant"
	"github.com/katalvlaran/dpchain/core"
	"github.com/katalvlaran/dpchain/domains"
	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/ledger"
	"github.com/katalvlaran/dpchain/measures"
	"github.com/katalvlaran/dpchain/mechanisms"
	"github.com/katalvlaran/dpchain/metrics"
)

type meas = core.Measurement[[]float64, []float64, float64, float64]

var data = []float64{1, 2, 3}

func vector() domains.VectorDomain[float64] {
	return domains.NewVectorDomain[float64](domains.NewAtomDomain[float64]())
}

// laplace costs 1/scale at d_in=1.
func laplace(t *testing.T, scale float64) meas {
	t.Helper()
	m, err := mechanisms.MakeVectorLaplace(scale)
	require.NoError(t, err)
	return m
}

func newFilter(t *testing.T, dOut float64, opts ...accountant.Option) *accountant.Accountant[[]float64, float64, float64] {
	t.Helper()
	acc, err := accountant.NewFilter(data, core.Domain[[]float64](vector()), metrics.L1Distance[float64]{}, measures.MaxDivergence[float64]{}, 1.0, dOut, opts...)
	require.NoError(t, err)
	return acc
}

func TestFilter_EnforcesCap(t *testing.T) {
	acc := newFilter(t, 1.0)

	for i := 0; i < 4; i++ {
		out, err := accountant.Admit(acc, laplace(t, 4)) // 0.25 each
		require.NoError(t, err, "admission %d", i)
		assert.Len(t, out, 3)
	}
	assert.Equal(t, 1.0, acc.Consumed())

	_, err := accountant.Admit(acc, laplace(t, 100))
	assert.ErrorIs(t, err, errs.ErrInvalidDistance)
	assert.ErrorIs(t, err, accountant.ErrBudgetExceeded)
	assert.Equal(t, 1.0, acc.Consumed(), "rejected admission commits nothing")
	assert.Equal(t, 4, acc.Len())
}

// TestFilter_EveryOrder admits the same costs in random orders; the cap
// holds regardless.
func TestFilter_EveryOrder(t *testing.T) {
	scales := []float64{2, 4, 4, 8, 1, 10, 5}
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		acc := newFilter(t, 1.0)
		rng.Shuffle(len(scales), func(i, j int) { scales[i], scales[j] = scales[j], scales[i] })
		for _, s := range scales {
			before := acc.Consumed()
			_, err := accountant.Admit(acc, laplace(t, s))
			if err != nil {
				assert.ErrorIs(t, err, accountant.ErrBudgetExceeded)
				assert.Equal(t, before, acc.Consumed())
			}
			assert.LessOrEqual(t, acc.Consumed(), 1.0)
		}
	}
}

// TestFilter_Concurrent drives one filter from many goroutines.
func TestFilter_Concurrent(t *testing.T) {
	acc := newFilter(t, 2.0)
	m := laplace(t, 10) // 0.1 each

	var admitted atomic.Int64
	var g errgroup.Group
	for i := 0; i < 64; i++ {
		g.Go(func() error {
			_, err := accountant.Admit(acc, m)
			switch {
			case err == nil:
				admitted.Add(1)
				return nil
			case errors.Is(err, accountant.ErrBudgetExceeded):
				return nil
			default:
				return err
			}
		})
	}
	require.NoError(t, g.Wait())

	assert.LessOrEqual(t, acc.Consumed(), 2.0)
	assert.Equal(t, int(admitted.Load()), acc.Len())
	assert.GreaterOrEqual(t, admitted.Load(), int64(19), "0.1 steps are rounded up, so 19 or 20 fit")
}

func TestAdmit_Mismatch(t *testing.T) {
	acc := newFilter(t, 1.0)

	atom := domains.NewAtomDomain[float64]()
	bounded, _ := domains.NewBoundedAtomDomain(0.0, 1.0)
	other, err := core.NewMeasurement[[]float64, []float64, float64, float64](
		domains.NewVectorDomain[float64](bounded), domains.NewVectorDomain[float64](atom),
		core.NewFunction(func(xs []float64) []float64 { return xs }),
		metrics.L1Distance[float64]{}, measures.MaxDivergence[float64]{},
		core.NewPrivacyMapFromConstant[float64](0.1),
	)
	require.NoError(t, err)
	_, err = accountant.Admit(acc, other)
	assert.ErrorIs(t, err, errs.ErrDomainMismatch)

	zc, err := core.NewMeasurement[[]float64, []float64, float64, float64](
		vector(), vector(),
		core.NewFunction(func(xs []float64) []float64 { return xs }),
		metrics.L1Distance[float64]{}, measures.ZeroConcentratedDivergence[float64]{},
		core.NewPrivacyMapFromConstant[float64](0.1),
	)
	require.NoError(t, err)
	_, err = accountant.Admit(acc, zc)
	assert.ErrorIs(t, err, errs.ErrMeasureMismatch)
}

// TestAdmit_FailureStillCharged keeps the cost of a measurement that failed.
func TestAdmit_FailureStillCharged(t *testing.T) {
	acc := newFilter(t, 1.0)
	failing, err := core.NewMeasurement[[]float64, []float64, float64, float64](
		vector(), vector(),
		core.NewFallibleFunction(func([]float64) ([]float64, error) { return nil, errs.New(errs.FailedFunction, "boom") }),
		metrics.L1Distance[float64]{}, measures.MaxDivergence[float64]{},
		core.NewPrivacyMapFromConstant[float64](0.5),
	)
	require.NoError(t, err)

	_, err = accountant.Admit(acc, failing)
	assert.ErrorIs(t, err, errs.ErrFailedFunction)
	assert.Equal(t, 0.5, acc.Consumed())
}

func TestOdometer(t *testing.T) {
	odo, err := accountant.NewOdometer[[]float64, float64, float64](data, vector(), metrics.L1Distance[float64]{}, measures.MaxDivergence[float64]{}, 1.0)
	require.NoError(t, err)
	_, capped := odo.Cap()
	assert.False(t, capped)

	for i := 0; i < 10; i++ {
		_, err := accountant.Admit(odo, laplace(t, 1))
		require.NoError(t, err)
	}
	assert.Equal(t, 10.0, odo.Consumed())

	assert.ErrorIs(t, odo.Limit(5), accountant.ErrBudgetExceeded)
	require.NoError(t, odo.Limit(11))
	_, err = accountant.Admit(odo, laplace(t, 0.5))
	assert.ErrorIs(t, err, accountant.ErrBudgetExceeded, "odometer became a filter")
	assert.ErrorIs(t, odo.Limit(12), errs.ErrFailedRelation, "caps never loosen")
}

// TestNested charges children to their parent and enforces ancestor caps.
func TestNested(t *testing.T) {
	root := newFilter(t, 1.0)
	child, err := root.SpawnOdometer()
	require.NoError(t, err)
	grandchild, err := child.SpawnFilter(0.75)
	require.NoError(t, err)

	_, err = accountant.Admit(grandchild, laplace(t, 2)) // 0.5
	require.NoError(t, err)
	assert.Equal(t, 0.5, grandchild.Consumed())
	assert.Equal(t, 0.5, child.Consumed())
	assert.Equal(t, 0.5, root.Consumed())

	_, err = accountant.Admit(grandchild, laplace(t, 2))
	assert.ErrorIs(t, err, accountant.ErrBudgetExceeded, "grandchild cap 0.75")

	_, err = accountant.Admit(child, laplace(t, 2))
	require.NoError(t, err)
	assert.Equal(t, 1.0, root.Consumed())

	_, err = accountant.Admit(grandchild, laplace(t, 10))
	assert.ErrorIs(t, err, accountant.ErrBudgetExceeded, "root cap 1.0")
	assert.Equal(t, 0.5, grandchild.Consumed(), "nothing committed at any level")

	ok, err := accountant.Check(child, laplace(t, 10))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSequentialAccess(t *testing.T) {
	root := newFilter(t, 10, accountant.WithSequentialAccess())
	first, err := root.SpawnOdometer()
	require.NoError(t, err)
	_, err = accountant.Admit(first, laplace(t, 1))
	require.NoError(t, err)

	second, err := root.SpawnOdometer()
	require.NoError(t, err)
	_, err = accountant.Admit(second, laplace(t, 1))
	require.NoError(t, err)

	ok, err := accountant.Check(first, laplace(t, 1))
	require.NoError(t, err)
	assert.False(t, ok, "a superseded child cannot be admitted")
	ok, err = accountant.Check(second, laplace(t, 1))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = accountant.Admit(first, laplace(t, 1))
	assert.ErrorIs(t, err, errs.ErrFailedRelation, "first child was superseded")
	assert.Equal(t, 2.0, root.Consumed())
}

func TestWithComposer(t *testing.T) {
	maxRule := accountant.WithComposer(func(ls []float64) (float64, error) {
		m := 0.0
		for _, l := range ls {
			m = max(m, l)
		}
		return m, nil
	})
	acc := newFilter(t, 1.0, maxRule)
	for i := 0; i < 5; i++ {
		_, err := accountant.Admit(acc, laplace(t, 1))
		require.NoError(t, err)
	}
	assert.Equal(t, 1.0, acc.Consumed())

	_, err := accountant.NewFilter(data, core.Domain[[]float64](vector()), metrics.L1Distance[float64]{}, measures.MaxDivergence[float64]{}, 1.0, 1.0,
		accountant.WithComposer(func(ls []int) (int, error) { return 0, nil }))
	assert.ErrorIs(t, err, errs.ErrMakeMeasurement, "composer of the wrong loss type")
}

func TestNewFilter_Validation(t *testing.T) {
	_, err := accountant.NewFilter(data, core.Domain[[]float64](vector()), metrics.AbsoluteDistance[float64]{}, measures.MaxDivergence[float64]{}, 1.0, 1.0)
	assert.ErrorIs(t, err, errs.ErrInvalidMetricSpace)

	_, err = accountant.NewFilter(data, core.Domain[[]float64](vector()), metrics.L1Distance[float64]{}, measures.MaxDivergence[float64]{}, -1.0, 1.0)
	assert.ErrorIs(t, err, errs.ErrInvalidDistance)

	bounded, _ := domains.NewBoundedAtomDomain(0.0, 1.0)
	_, err = accountant.NewFilter(data, core.Domain[[]float64](domains.NewVectorDomain[float64](bounded)), metrics.L1Distance[float64]{}, measures.MaxDivergence[float64]{}, 1.0, 1.0)
	assert.ErrorIs(t, err, errs.ErrFailedFunction, "dataset outside the domain")
}

func TestLedgerAndLogging(t *testing.T) {
	ctx := context.Background()
	store, err := ledger.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	obsCore, logs := observer.New(zap.DebugLevel)
	acc := newFilter(t, 0.5, accountant.WithLedger(store), accountant.WithLogger(zap.New(obsCore)))

	_, err = accountant.AdmitContext(ctx, acc, laplace(t, 4))
	require.NoError(t, err)
	_, err = accountant.AdmitContext(ctx, acc, laplace(t, 1))
	require.ErrorIs(t, err, accountant.ErrBudgetExceeded)

	entries, err := store.Entries(ctx, acc.ID().String())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "0.25", entries[0].Cost)
	assert.Equal(t, 0, entries[0].Sequence)

	assert.Equal(t, 1, logs.FilterMessage("admitted measurement").Len())
	assert.Equal(t, 1, logs.FilterMessage("admission rejected").Len())
}
