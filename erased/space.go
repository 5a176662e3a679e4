// SPDX-License-Identifier: MIT

package erased

import (
	"github.com/katalvlaran/dpchain/core"
	"github.com/katalvlaran/dpchain/domains"
	"github.com/katalvlaran/dpchain/dtype"
	"github.com/katalvlaran/dpchain/errs"
)

type concreteDomain interface {
	String() string
	Carrier() dtype.Type
	Equal(other any) bool
}

// Domain is a core.Domain[*Object] wrapping a concrete domain.
type Domain struct {
	inner  concreteDomain
	member func(v any) (bool, error)
}

// EraseDomain wraps d. Members must carry d's carrier descriptor.
func EraseDomain[T any](d core.Domain[T]) *Domain {
	return &Domain{
		inner: d,
		member: func(v any) (bool, error) {
			x, ok := v.(T)
			if !ok {
				return false, errs.Errorf(errs.FailedCast, "member of %s must be %s, got %T", d, dtype.Of[T](), v)
			}
			return d.Member(x)
		},
	}
}

// Inner returns the wrapped domain.
func (d *Domain) Inner() any { return d.inner }

func (d *Domain) String() string { return d.inner.String() }

// Carrier is the descriptor of the wrapped domain's carrier, not *Object.
func (d *Domain) Carrier() dtype.Type { return d.inner.Carrier() }

// Member fails with errs.FailedCast when o carries another descriptor.
func (d *Domain) Member(o *Object) (bool, error) {
	if o == nil {
		return false, errs.New(errs.FailedCast, "nil object")
	}
	if !o.typ.Equal(d.Carrier()) {
		return false, errs.Errorf(errs.FailedCast, "object is %s, domain carrier is %s", o.typ, d.Carrier())
	}
	return d.member(o.value)
}

// Equal compares carriers first, then the wrapped domains.
func (d *Domain) Equal(other any) bool {
	o, ok := other.(*Domain)
	if !ok || o == nil {
		return false
	}
	if !d.Carrier().Equal(o.Carrier()) {
		return false
	}
	return d.inner.Equal(o.inner)
}

// Size reports the wrapped domain's size when it has one.
func (d *Domain) Size() (int, bool) {
	if s, ok := d.inner.(domains.Sized); ok {
		return s.Size()
	}
	return 0, false
}

// Metric is a core.Metric wrapping a concrete metric. Its valid domains are
// the erased forms of the wrapped metric's.
type Metric struct {
	inner core.Metric
}

// EraseMetric wraps m.
func EraseMetric(m core.Metric) *Metric { return &Metric{inner: m} }

// Inner returns the wrapped metric.
func (m *Metric) Inner() core.Metric { return m.inner }

func (m *Metric) String() string { return m.inner.String() }

// DistanceType is the descriptor of the wrapped metric's distance.
func (m *Metric) DistanceType() dtype.Type { return m.inner.DistanceType() }

func (m *Metric) Equal(other any) bool {
	o, ok := other.(*Metric)
	if !ok || o == nil {
		return false
	}
	return m.DistanceType().Equal(o.DistanceType()) && m.inner.Equal(o.inner)
}

// CheckSpace implements core.SpaceChecker.
func (m *Metric) CheckSpace(domain any) error {
	if d, ok := domain.(*Domain); ok {
		domain = d.inner
	}
	sc, ok := m.inner.(core.SpaceChecker)
	if !ok {
		return errs.Errorf(errs.InvalidMetricSpace, "%s declares no valid domains", m.inner)
	}
	return sc.CheckSpace(domain)
}

// Measure is a core.Measure wrapping a concrete measure. It carries the
// wrapped measure's composition and amplification rules in erased form.
type Measure struct {
	inner   core.Measure
	compose func([]*Object) (*Object, error)
	amplify func(*Object, float64) (*Object, error)
}

// EraseMeasure wraps m, whose distances are of type Q.
func EraseMeasure[Q any](m core.Measure) *Measure {
	em := &Measure{inner: m}
	if c, ok := m.(core.Composer[Q]); ok {
		em.compose = func(losses []*Object) (*Object, error) {
			qs := make([]Q, len(losses))
			for i, l := range losses {
				q, err := Downcast[Q](l)
				if err != nil {
					return nil, err
				}
				qs[i] = q
			}
			total, err := c.Compose(qs)
			if err != nil {
				return nil, err
			}
			return New(total), nil
		}
	}
	if a, ok := m.(core.Amplifier[Q]); ok {
		em.amplify = func(loss *Object, fraction float64) (*Object, error) {
			q, err := Downcast[Q](loss)
			if err != nil {
				return nil, err
			}
			out, err := a.Amplify(q, fraction)
			if err != nil {
				return nil, err
			}
			return New(out), nil
		}
	}
	return em
}

// Inner returns the wrapped measure.
func (m *Measure) Inner() core.Measure { return m.inner }

func (m *Measure) String() string { return m.inner.String() }

// DistanceType is the descriptor of the wrapped measure's distance.
func (m *Measure) DistanceType() dtype.Type { return m.inner.DistanceType() }

func (m *Measure) Equal(other any) bool {
	o, ok := other.(*Measure)
	if !ok || o == nil {
		return false
	}
	return m.DistanceType().Equal(o.DistanceType()) && m.inner.Equal(o.inner)
}

// Compose implements core.Composer with the wrapped measure's rule.
func (m *Measure) Compose(losses []*Object) (*Object, error) {
	if m.compose == nil {
		return nil, errs.Errorf(errs.MakeMeasurement, "%s has no composition rule", m.inner)
	}
	return m.compose(losses)
}

// Amplify implements core.Amplifier with the wrapped measure's bound.
func (m *Measure) Amplify(loss *Object, fraction float64) (*Object, error) {
	if m.amplify == nil {
		return nil, errs.Errorf(errs.MakeMeasurement, "%s has no amplification bound", m.inner)
	}
	return m.amplify(loss, fraction)
}
