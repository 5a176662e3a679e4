// SPDX-License-Identifier: MIT

package measures

import (
	"github.com/katalvlaran/dpchain/dtype"
	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/numeric"
)

// MaxDivergence is pure differential privacy with ε of type Q.
type MaxDivergence[Q numeric.Float] struct{}

func (MaxDivergence[Q]) String() string {
	return "MaxDivergence(Q=" + dtype.Of[Q]().Descriptor + ")"
}
func (MaxDivergence[Q]) DistanceType() dtype.Type { return dtype.Of[Q]() }
func (MaxDivergence[Q]) Equal(other any) bool {
	_, ok := other.(MaxDivergence[Q])
	return ok
}

// Compose sums the ε of each release.
func (MaxDivergence[Q]) Compose(losses []Q) (Q, error) {
	return sum(losses)
}

// Amplify returns ln(1 + fraction·(e^ε − 1)).
func (MaxDivergence[Q]) Amplify(eps Q, fraction float64) (Q, error) {
	return amplifyEpsilon(eps, fraction)
}

func sum[Q numeric.Float](xs []Q) (Q, error) {
	var total Q
	for _, x := range xs {
		next, err := numeric.InfAdd(total, x)
		if err != nil {
			return 0, errs.Wrap(errs.FailedRelation, "compose", err)
		}
		total = next
	}
	return total, nil
}

func amplifyEpsilon[Q numeric.Float](eps Q, fraction float64) (Q, error) {
	if !(fraction > 0 && fraction < 1) {
		return 0, errs.Errorf(errs.FailedRelation, "sampling fraction %v must lie in (0, 1)", fraction)
	}
	f, err := numeric.InfCast[Q](fraction)
	if err != nil {
		return 0, err
	}
	e, err := numeric.InfExp(eps)
	if err != nil {
		return 0, err
	}
	em1, err := numeric.InfSub(e, 1)
	if err != nil {
		return 0, err
	}
	scaled, err := numeric.InfMul(f, em1)
	if err != nil {
		return 0, err
	}
	inner, err := numeric.InfAdd(scaled, 1)
	if err != nil {
		return 0, err
	}
	return numeric.InfLn(inner)
}
