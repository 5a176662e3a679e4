// SPDX-License-Identifier: MIT

// Package errs defines the closed error taxonomy shared by every dpchain package.
//
// Every failure produced by the library is an *Error carrying a Variant, an
// optional message and a lazily captured call trace. The set of variants is
// closed and survives the C boundary unchanged (see package ffi), so callers on
// either side branch on the same names.
//
// Branch with errors.Is against the package sentinels:
//
//	if errors.Is(err, errs.ErrDomainMismatch) { /* adjoining domains differ */ }
//
// Matching is by variant only; the message is diagnostic text.
//
// Variants:
//
//	FFI                - boundary misuse (nil handle, wrong handle kind).
//	TypeParse          - unsupported or malformed type descriptor.
//	FailedFunction     - a function failed while being invoked.
//	FailedRelation     - a stability or privacy map could not be evaluated.
//	RelationDebug      - verbose comparison dump; carries no trace.
//	FailedCast         - erased value does not hold the requested type.
//	DomainMismatch     - adjoining domains are not structurally equal.
//	MetricMismatch     - adjoining metrics are not structurally equal.
//	MeasureMismatch    - composed measures are not structurally equal.
//	InvalidMetricSpace - metric is not declared valid over the domain.
//	MakeDomain         - invalid domain parameters.
//	MakeTransformation - invalid transformation parameters.
//	MakeMeasurement    - invalid measurement parameters.
//	InvalidDistance    - malformed distance, or privacy budget exceeded.
//	NotImplemented     - feature absent, or unknown variant received over the boundary.
package errs
