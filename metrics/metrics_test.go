// SPDX-License-Identifier: MIT
// Package metrics_test verifies metrics and their valid domains.
//
// Purpose:
//   - Anchor which metric spaces are accepted and metric equality.

package metrics_test

import (
	"testing"

	"github.com/katalvlaran/dpchain/core"
	"github.com/katalvlaran/dpchain/domains"
	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/metrics"
	"github.com/stretchr/testify/assert"
)

// TestMetricSpaces enumerates the declared (domain, metric) pairs.
func TestMetricSpaces(t *testing.T) {
	atom := domains.NewAtomDomain[float64]()
	nullable := domains.NewNullableAtomDomain[float64]()
	strs := domains.NewAtomDomain[string]()
	vec := domains.NewVectorDomain[float64](atom)
	sized := vec.WithSize(4)
	strVec := domains.NewVectorDomain[string](strs)

	cases := []struct {
		name   string
		domain any
		metric core.Metric
		valid  bool
	}{
		{"symmetric/vector", vec, metrics.SymmetricDistance{}, true},
		{"symmetric/atom", atom, metrics.SymmetricDistance{}, false},
		{"insert-delete/strings", strVec, metrics.InsertDeleteDistance{}, true},
		{"change-one/unsized", vec, metrics.ChangeOneDistance{}, false},
		{"change-one/sized", sized, metrics.ChangeOneDistance{}, true},
		{"hamming/sized", sized, metrics.HammingDistance{}, true},
		{"absolute/atom", atom, metrics.AbsoluteDistance[float64]{}, true},
		{"absolute/nullable", nullable, metrics.AbsoluteDistance[float64]{}, false},
		{"absolute/string", strs, metrics.AbsoluteDistance[float64]{}, false},
		{"l1/vector", vec, metrics.L1Distance[float64]{}, true},
		{"l1/strings", strVec, metrics.L1Distance[float64]{}, false},
		{"l2/vector", vec, metrics.L2Distance[float64]{}, true},
		{"discrete/string", strs, metrics.DiscreteDistance{}, true},
		{"discrete/vector", vec, metrics.DiscreteDistance{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := core.CheckMetricSpace(c.domain, c.metric)
			if c.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, errs.ErrInvalidMetricSpace)
			}
			assert.Equal(t, c.valid, core.IsValidMetricSpace(c.domain, c.metric))
		})
	}
}

func TestMetric_Equal(t *testing.T) {
	assert.True(t, metrics.SymmetricDistance{}.Equal(metrics.SymmetricDistance{}))
	assert.False(t, metrics.SymmetricDistance{}.Equal(metrics.InsertDeleteDistance{}))
	assert.False(t, metrics.AbsoluteDistance[float64]{}.Equal(metrics.AbsoluteDistance[float32]{}))
	assert.Equal(t, "uint32", metrics.SymmetricDistance{}.DistanceType().Descriptor)
	assert.Equal(t, "L1Distance(Q=int64)", metrics.L1Distance[int64]{}.String())
}
