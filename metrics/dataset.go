// SPDX-License-Identifier: MIT

package metrics

import (
	"github.com/katalvlaran/dpchain/domains"
	"github.com/katalvlaran/dpchain/dtype"
	"github.com/katalvlaran/dpchain/errs"
)

// SymmetricDistance counts added plus removed records, ignoring order.
type SymmetricDistance struct{}

func (SymmetricDistance) String() string           { return "SymmetricDistance()" }
func (SymmetricDistance) DistanceType() dtype.Type { return dtype.Of[uint32]() }
func (SymmetricDistance) Equal(other any) bool {
	_, ok := other.(SymmetricDistance)
	return ok
}

// CheckSpace accepts any vector domain.
func (SymmetricDistance) CheckSpace(domain any) error {
	_, err := requireVector(domain, false)
	return err
}

// InsertDeleteDistance counts insertions and deletions on ordered data.
type InsertDeleteDistance struct{}

func (InsertDeleteDistance) String() string           { return "InsertDeleteDistance()" }
func (InsertDeleteDistance) DistanceType() dtype.Type { return dtype.Of[uint32]() }
func (InsertDeleteDistance) Equal(other any) bool {
	_, ok := other.(InsertDeleteDistance)
	return ok
}

// CheckSpace accepts any vector domain.
func (InsertDeleteDistance) CheckSpace(domain any) error {
	_, err := requireVector(domain, false)
	return err
}

// ChangeOneDistance counts substituted records, ignoring order.
type ChangeOneDistance struct{}

func (ChangeOneDistance) String() string           { return "ChangeOneDistance()" }
func (ChangeOneDistance) DistanceType() dtype.Type { return dtype.Of[uint32]() }
func (ChangeOneDistance) Equal(other any) bool {
	_, ok := other.(ChangeOneDistance)
	return ok
}

// CheckSpace accepts sized vector domains only.
func (ChangeOneDistance) CheckSpace(domain any) error {
	_, err := requireVector(domain, true)
	return err
}

// HammingDistance counts positions at which two equal-length vectors differ.
type HammingDistance struct{}

func (HammingDistance) String() string           { return "HammingDistance()" }
func (HammingDistance) DistanceType() dtype.Type { return dtype.Of[uint32]() }
func (HammingDistance) Equal(other any) bool {
	_, ok := other.(HammingDistance)
	return ok
}

// CheckSpace accepts sized vector domains only.
func (HammingDistance) CheckSpace(domain any) error {
	_, err := requireVector(domain, true)
	return err
}

// DiscreteDistance is 0 between equal scalars and 1 otherwise.
type DiscreteDistance struct{}

func (DiscreteDistance) String() string           { return "DiscreteDistance()" }
func (DiscreteDistance) DistanceType() dtype.Type { return dtype.Of[uint32]() }
func (DiscreteDistance) Equal(other any) bool {
	_, ok := other.(DiscreteDistance)
	return ok
}

// CheckSpace accepts any atom domain.
func (DiscreteDistance) CheckSpace(domain any) error {
	if _, ok := domain.(domains.Atom); !ok {
		return errs.Errorf(errs.InvalidMetricSpace, "%v is not an atom domain", domain)
	}
	return nil
}
