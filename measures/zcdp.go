// SPDX-License-Identifier: MIT

package measures

import (
	"github.com/katalvlaran/dpchain/dtype"
	"github.com/katalvlaran/dpchain/numeric"
)

// ZeroConcentratedDivergence is ρ-zero-concentrated differential privacy.
type ZeroConcentratedDivergence[Q numeric.Float] struct{}

func (ZeroConcentratedDivergence[Q]) String() string {
	return "ZeroConcentratedDivergence(Q=" + dtype.Of[Q]().Descriptor + ")"
}
func (ZeroConcentratedDivergence[Q]) DistanceType() dtype.Type { return dtype.Of[Q]() }
func (ZeroConcentratedDivergence[Q]) Equal(other any) bool {
	_, ok := other.(ZeroConcentratedDivergence[Q])
	return ok
}

// Compose sums ρ.
func (ZeroConcentratedDivergence[Q]) Compose(losses []Q) (Q, error) {
	return sum(losses)
}
