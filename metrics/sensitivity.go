// SPDX-License-Identifier: MIT

package metrics

import (
	"github.com/katalvlaran/dpchain/domains"
	"github.com/katalvlaran/dpchain/dtype"
	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/numeric"
)

// AbsoluteDistance is |a − b| between two scalars, with distance type Q.
type AbsoluteDistance[Q numeric.Number] struct{}

func (AbsoluteDistance[Q]) String() string {
	return "AbsoluteDistance(Q=" + dtype.Of[Q]().Descriptor + ")"
}
func (AbsoluteDistance[Q]) DistanceType() dtype.Type { return dtype.Of[Q]() }
func (AbsoluteDistance[Q]) Equal(other any) bool {
	_, ok := other.(AbsoluteDistance[Q])
	return ok
}

// CheckSpace accepts non-nullable numeric atom domains.
func (AbsoluteDistance[Q]) CheckSpace(domain any) error {
	return requireNumericAtom(domain)
}

// L1Distance is the sum of absolute element differences, with distance type Q.
type L1Distance[Q numeric.Number] struct{}

func (L1Distance[Q]) String() string {
	return "L1Distance(Q=" + dtype.Of[Q]().Descriptor + ")"
}
func (L1Distance[Q]) DistanceType() dtype.Type { return dtype.Of[Q]() }
func (L1Distance[Q]) Equal(other any) bool {
	_, ok := other.(L1Distance[Q])
	return ok
}

// CheckSpace accepts vectors of non-nullable numeric atoms.
func (L1Distance[Q]) CheckSpace(domain any) error {
	return requireNumericVector(domain)
}

// L2Distance is the Euclidean distance between vectors, with distance type Q.
type L2Distance[Q numeric.Number] struct{}

func (L2Distance[Q]) String() string {
	return "L2Distance(Q=" + dtype.Of[Q]().Descriptor + ")"
}
func (L2Distance[Q]) DistanceType() dtype.Type { return dtype.Of[Q]() }
func (L2Distance[Q]) Equal(other any) bool {
	_, ok := other.(L2Distance[Q])
	return ok
}

// CheckSpace accepts vectors of non-nullable numeric atoms.
func (L2Distance[Q]) CheckSpace(domain any) error {
	return requireNumericVector(domain)
}

func requireNumericVector(domain any) error {
	v, err := requireVector(domain, false)
	if err != nil {
		return err
	}
	if err := requireNumericAtom(v.ElementDomain()); err != nil {
		return errs.Wrap(errs.InvalidMetricSpace, "element domain", err)
	}
	return nil
}

var _ domains.Vector = domains.VectorDomain[float64]{}
