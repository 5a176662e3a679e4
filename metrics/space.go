// SPDX-License-Identifier: MIT

package metrics

import (
	"github.com/katalvlaran/dpchain/domains"
	"github.com/katalvlaran/dpchain/errs"
)

var numericCarriers = map[string]bool{
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"float32": true, "float64": true,
}

func requireVector(domain any, sized bool) (domains.Vector, error) {
	v, ok := domain.(domains.Vector)
	if !ok {
		return nil, errs.Errorf(errs.InvalidMetricSpace, "%v is not a vector domain", domain)
	}
	if _, has := v.Size(); sized && !has {
		return nil, errs.Errorf(errs.InvalidMetricSpace, "%v must have a known size", domain)
	}
	return v, nil
}

func requireNumericAtom(domain any) error {
	a, ok := domain.(domains.Atom)
	if !ok {
		return errs.Errorf(errs.InvalidMetricSpace, "%v is not an atom domain", domain)
	}
	if !numericCarriers[a.Carrier().Descriptor] {
		return errs.Errorf(errs.InvalidMetricSpace, "carrier %s is not numeric", a.Carrier())
	}
	if a.IsNullable() {
		return errs.Errorf(errs.InvalidMetricSpace, "%v must not be nullable", domain)
	}
	return nil
}
