// SPDX-License-Identifier: MIT

package core

import (
	"fmt"

	"github.com/katalvlaran/dpchain/dtype"
	"github.com/katalvlaran/dpchain/errs"
)

// Domain is the set of admissible values of carrier type T.
// Equal is structural: two domains are equal iff their descriptive parameters match.
type Domain[T any] interface {
	fmt.Stringer
	Carrier() dtype.Type
	Member(v T) (bool, error)
	Equal(other any) bool
}

// Metric is a distance between two values of a domain.
type Metric interface {
	fmt.Stringer
	DistanceType() dtype.Type
	Equal(other any) bool
}

// Measure is a distance between two output distributions.
type Measure interface {
	fmt.Stringer
	DistanceType() dtype.Type
	Equal(other any) bool
}

// SpaceChecker is implemented by metrics to declare the domains they are
// valid over. A nil error means (domain, metric) is a valid metric space.
type SpaceChecker interface {
	CheckSpace(domain any) error
}

// CheckMetricSpace fails with errs.InvalidMetricSpace unless metric declares domain valid.
func CheckMetricSpace(domain any, metric Metric) error {
	sc, ok := metric.(SpaceChecker)
	if !ok {
		return errs.Errorf(errs.InvalidMetricSpace, "%s declares no valid domains", metric)
	}
	if err := sc.CheckSpace(domain); err != nil {
		return errs.Wrap(errs.InvalidMetricSpace, fmt.Sprintf("(%v, %s)", domain, metric), err)
	}
	return nil
}

// IsValidMetricSpace is the predicate form of CheckMetricSpace.
func IsValidMetricSpace(domain any, metric Metric) bool {
	return CheckMetricSpace(domain, metric) == nil
}

// MismatchMessage renders both sides of a failed structural comparison. When
// the two sides print identically the difference is in state String does not
// show, and the message says so.
func MismatchMessage(kind string, left, right fmt.Stringer) string {
	l, r := left.String(), right.String()
	if l == r {
		return fmt.Sprintf("intermediate %ss don't match: both print as %s, but they differ in parameters not shown by String", kind, l)
	}
	return fmt.Sprintf("intermediate %ss don't match\n    output %s: %s\n     input %s: %s", kind, kind, l, kind, r)
}

// checkDistanceType verifies that a metric or measure reports Q as its
// distance type. Dynamically typed carriers are checked at invocation.
func checkDistanceType[Q any](variant errs.Variant, role string, got dtype.Type) error {
	var zero Q
	if _, ok := any(zero).(dtype.Dynamic); ok {
		return nil
	}
	want := dtype.Of[Q]()
	if !got.Equal(want) {
		return errs.Errorf(variant, "%s distance type is %s, expected %s", role, got, want)
	}
	return nil
}
