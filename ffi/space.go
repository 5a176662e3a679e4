// SPDX-License-Identifier: MIT

package ffi

import (
	"github.com/katalvlaran/dpchain/core"
	"github.com/katalvlaran/dpchain/erased"
	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/metrics"
)

// AtomDomain returns the unconstrained domain of carrier desc.
func AtomDomain(desc string) Result[Handle] {
	s, err := lookup(desc, "atom domain", func(s shape) bool { return s.atom != nil })
	if err != nil {
		return fail[Handle]("atom_domain", err)
	}
	return result("atom_domain", s.atom(), nil)
}

// NullableAtomDomain returns the float domain that admits NaN.
func NullableAtomDomain(desc string) Result[Handle] {
	s, err := lookup(desc, "nullable atom domain", func(s shape) bool { return s.nullable != nil })
	if err != nil {
		return fail[Handle]("nullable_atom_domain", err)
	}
	return result("nullable_atom_domain", s.nullable(), nil)
}

// BoundedAtomDomain returns [lower, upper] over numeric carrier desc.
func BoundedAtomDomain(desc string, lower, upper any) Result[Handle] {
	s, err := lookup(desc, "bounded atom domain", func(s shape) bool { return s.bounded != nil })
	if err != nil {
		return fail[Handle]("bounded_atom_domain", err)
	}
	d, err := s.bounded(lower, upper)
	return result("bounded_atom_domain", d, err)
}

// VectorDomain returns vectors over the element domain behind elem. A
// negative size leaves the length unconstrained.
func VectorDomain(elem Handle, size int) Result[Handle] {
	e, err := get[*erased.Domain](elem)
	if err != nil {
		return fail[Handle]("vector_domain", err)
	}
	s, err := lookup(e.Carrier().Descriptor, "vector domain", func(s shape) bool { return s.vector != nil })
	if err != nil {
		return fail[Handle]("vector_domain", err)
	}
	d, err := s.vector(e, sizeOptions(size))
	return result("vector_domain", d, err)
}

// DomainCarrier returns the carrier descriptor of a domain.
func DomainCarrier(h Handle) Result[string] {
	d, err := get[*erased.Domain](h)
	if err != nil {
		return fail[string]("domain_carrier", err)
	}
	return okay(d.Carrier().Descriptor)
}

// DomainString describes a domain.
func DomainString(h Handle) Result[string] {
	d, err := get[*erased.Domain](h)
	if err != nil {
		return fail[string]("domain_string", err)
	}
	return okay(d.String())
}

// DomainMember reports whether the object behind obj belongs to the domain.
func DomainMember(h, obj Handle) Result[bool] {
	d, err := get[*erased.Domain](h)
	if err != nil {
		return fail[bool]("domain_member", err)
	}
	o, err := get[*erased.Object](obj)
	if err != nil {
		return fail[bool]("domain_member", err)
	}
	ok, err := d.Member(o)
	return value("domain_member", ok, err)
}

// DomainFree releases a domain handle.
func DomainFree(h Handle) *ErrorRecord { return release[*erased.Domain](h) }

var datasetMetrics = map[string]core.Metric{
	"SymmetricDistance":    metrics.SymmetricDistance{},
	"InsertDeleteDistance": metrics.InsertDeleteDistance{},
	"ChangeOneDistance":    metrics.ChangeOneDistance{},
	"HammingDistance":      metrics.HammingDistance{},
	"DiscreteDistance":     metrics.DiscreteDistance{},
}

// Metric returns the metric called name. Dataset metrics measure in uint32
// and accept desc "" or "uint32"; sensitivity metrics (AbsoluteDistance,
// L1Distance, L2Distance) take the distance descriptor desc.
func Metric(name, desc string) Result[Handle] {
	if m, ok := datasetMetrics[name]; ok {
		if desc != "" && desc != "uint32" {
			return fail[Handle]("metric", errs.Errorf(errs.TypeParse, "%s measures in uint32, not %q", name, desc))
		}
		return result("metric", erased.EraseMetric(m), nil)
	}
	s, err := lookup(desc, name, func(s shape) bool { return s.absolute != nil })
	if err != nil {
		return fail[Handle]("metric", err)
	}
	var m core.Metric
	switch name {
	case "AbsoluteDistance":
		m = s.absolute
	case "L1Distance":
		m = s.l1
	case "L2Distance":
		m = s.l2
	default:
		return fail[Handle]("metric", errs.Errorf(errs.TypeParse, "unknown metric %q", name))
	}
	return result("metric", erased.EraseMetric(m), nil)
}

// MetricDistanceType returns the distance descriptor of a metric.
func MetricDistanceType(h Handle) Result[string] {
	m, err := get[*erased.Metric](h)
	if err != nil {
		return fail[string]("metric_distance_type", err)
	}
	return okay(m.DistanceType().Descriptor)
}

// MetricFree releases a metric handle.
func MetricFree(h Handle) *ErrorRecord { return release[*erased.Metric](h) }

// Measure returns the measure called name over float descriptor desc:
// MaxDivergence, ZeroConcentratedDivergence, FixedSmoothedMaxDivergence or
// SmoothedMaxDivergence.
func Measure(name, desc string) Result[Handle] {
	s, err := lookup(desc, name, func(s shape) bool { return s.measures != nil })
	if err != nil {
		return fail[Handle]("measure", err)
	}
	mk, ok := s.measures[name]
	if !ok {
		return fail[Handle]("measure", errs.Errorf(errs.TypeParse, "unknown measure %q", name))
	}
	return result("measure", mk(), nil)
}

// MeasureDistanceType returns the distance descriptor of a measure.
func MeasureDistanceType(h Handle) Result[string] {
	m, err := get[*erased.Measure](h)
	if err != nil {
		return fail[string]("measure_distance_type", err)
	}
	return okay(m.DistanceType().Descriptor)
}

// MeasureFree releases a measure handle.
func MeasureFree(h Handle) *ErrorRecord { return release[*erased.Measure](h) }
