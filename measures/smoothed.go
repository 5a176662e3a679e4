// SPDX-License-Identifier: MIT

package measures

import (
	"fmt"
	"math"

	"github.com/katalvlaran/dpchain/dtype"
	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/numeric"
)

// EpsDelta is an (ε, δ) privacy loss.
type EpsDelta[Q numeric.Float] struct {
	Epsilon Q
	Delta   Q
}

// Validate requires ε ≥ 0 and δ ∈ [0, 1], neither NaN.
func (d EpsDelta[Q]) Validate() error {
	e, dl := float64(d.Epsilon), float64(d.Delta)
	if math.IsNaN(e) || e < 0 {
		return errs.Errorf(errs.InvalidDistance, "epsilon must be non-negative, got %v", d.Epsilon)
	}
	if math.IsNaN(dl) || dl < 0 || dl > 1 {
		return errs.Errorf(errs.InvalidDistance, "delta must lie in [0, 1], got %v", d.Delta)
	}
	return nil
}

// DominatedBy reports ε ≤ other.ε and δ ≤ other.δ.
func (d EpsDelta[Q]) DominatedBy(other any) (bool, error) {
	o, ok := other.(EpsDelta[Q])
	if !ok {
		return false, errs.Errorf(errs.FailedRelation, "cannot compare EpsDelta with %T", other)
	}
	return d.Epsilon <= o.Epsilon && d.Delta <= o.Delta, nil
}

func (d EpsDelta[Q]) String() string {
	return fmt.Sprintf("(%v, %v)", d.Epsilon, d.Delta)
}

// FixedSmoothedMaxDivergence is (ε, δ)-differential privacy at a fixed δ.
type FixedSmoothedMaxDivergence[Q numeric.Float] struct{}

func (FixedSmoothedMaxDivergence[Q]) String() string {
	return "FixedSmoothedMaxDivergence(Q=" + dtype.Of[Q]().Descriptor + ")"
}
func (FixedSmoothedMaxDivergence[Q]) DistanceType() dtype.Type { return dtype.Of[EpsDelta[Q]]() }
func (FixedSmoothedMaxDivergence[Q]) Equal(other any) bool {
	_, ok := other.(FixedSmoothedMaxDivergence[Q])
	return ok
}

// Compose sums ε and δ independently.
func (FixedSmoothedMaxDivergence[Q]) Compose(losses []EpsDelta[Q]) (EpsDelta[Q], error) {
	eps := make([]Q, len(losses))
	deltas := make([]Q, len(losses))
	for i, l := range losses {
		eps[i], deltas[i] = l.Epsilon, l.Delta
	}
	e, err := sum(eps)
	if err != nil {
		return EpsDelta[Q]{}, err
	}
	d, err := sum(deltas)
	if err != nil {
		return EpsDelta[Q]{}, err
	}
	return EpsDelta[Q]{Epsilon: e, Delta: d}, nil
}

// Amplify returns (ln(1 + fraction·(e^ε − 1)), fraction·δ).
func (FixedSmoothedMaxDivergence[Q]) Amplify(loss EpsDelta[Q], fraction float64) (EpsDelta[Q], error) {
	e, err := amplifyEpsilon(loss.Epsilon, fraction)
	if err != nil {
		return EpsDelta[Q]{}, err
	}
	f, err := numeric.InfCast[Q](fraction)
	if err != nil {
		return EpsDelta[Q]{}, err
	}
	d, err := numeric.InfMul(f, loss.Delta)
	if err != nil {
		return EpsDelta[Q]{}, err
	}
	return EpsDelta[Q]{Epsilon: e, Delta: d}, nil
}

// PrivacyCurve is a family of (ε, δ) guarantees: for each δ ∈ (0, 1] the
// smallest ε known to hold.
type PrivacyCurve[Q numeric.Float] struct {
	epsilon func(delta Q) (Q, error)
}

// NewPrivacyCurve wraps δ ↦ ε. f must be non-increasing in δ.
func NewPrivacyCurve[Q numeric.Float](f func(delta Q) (Q, error)) PrivacyCurve[Q] {
	return PrivacyCurve[Q]{epsilon: f}
}

// Epsilon evaluates the curve at delta.
func (c PrivacyCurve[Q]) Epsilon(delta Q) (Q, error) {
	if c.epsilon == nil {
		return 0, errs.New(errs.FailedRelation, "privacy curve is not set")
	}
	if d := float64(delta); math.IsNaN(d) || d <= 0 || d > 1 {
		return 0, errs.Errorf(errs.InvalidDistance, "delta must lie in (0, 1], got %v", delta)
	}
	return c.epsilon(delta)
}

// DominatedBy always fails: curves are not totally ordered. Fix δ first.
func (c PrivacyCurve[Q]) DominatedBy(any) (bool, error) {
	return false, errs.New(errs.NotImplemented, "privacy curves cannot be compared; fix delta first")
}

func (c PrivacyCurve[Q]) String() string { return "PrivacyCurve(" + dtype.Of[Q]().Descriptor + ")" }

// SmoothedMaxDivergence is approximate differential privacy expressed as a
// privacy curve.
type SmoothedMaxDivergence[Q numeric.Float] struct{}

func (SmoothedMaxDivergence[Q]) String() string {
	return "SmoothedMaxDivergence(Q=" + dtype.Of[Q]().Descriptor + ")"
}
func (SmoothedMaxDivergence[Q]) DistanceType() dtype.Type { return dtype.Of[PrivacyCurve[Q]]() }
func (SmoothedMaxDivergence[Q]) Equal(other any) bool {
	_, ok := other.(SmoothedMaxDivergence[Q])
	return ok
}

// Compose splits δ evenly: the composed curve at δ is Σ εᵢ(δ/k), with δ/k
// rounded down so the spent δ never exceeds the requested one.
func (SmoothedMaxDivergence[Q]) Compose(curves []PrivacyCurve[Q]) (PrivacyCurve[Q], error) {
	if len(curves) == 0 {
		return PrivacyCurve[Q]{}, errs.New(errs.FailedRelation, "no curves to compose")
	}
	k, err := numeric.InfCast[Q](len(curves))
	if err != nil {
		return PrivacyCurve[Q]{}, err
	}
	return NewPrivacyCurve(func(delta Q) (Q, error) {
		share, err := numeric.NegInfDiv(delta, k)
		if err != nil {
			return 0, err
		}
		eps := make([]Q, len(curves))
		for i, c := range curves {
			if eps[i], err = c.Epsilon(share); err != nil {
				return 0, err
			}
		}
		return sum(eps)
	}), nil
}
