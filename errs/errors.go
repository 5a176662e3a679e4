// SPDX-License-Identifier: MIT
// Package: dpchain/errs
//
// errors.go: the single structured error type shared by every package.
//
// Contract:
//   - Every *Error carries a Variant, a message and a captured backtrace.
//   - Wrap keeps the Variant of an inner *Error; Reclassify replaces it.
//   - errors.Is against a bare sentinel matches by Variant.
//
// Complexity:
//   - Construction captures at most 32 stack frames.
//
// Errors:
//   - None; this file only builds errors.

package errs

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Variant classifies an *Error. The zero value is FFI.
type Variant uint8

const (
	FFI Variant = iota
	TypeParse
	FailedFunction
	FailedRelation
	RelationDebug
	FailedCast
	DomainMismatch
	MetricMismatch
	MeasureMismatch
	InvalidMetricSpace
	MakeDomain
	MakeTransformation
	MakeMeasurement
	InvalidDistance
	NotImplemented
)

var variantNames = [...]string{
	FFI:                "FFI",
	TypeParse:          "TypeParse",
	FailedFunction:     "FailedFunction",
	FailedRelation:     "FailedRelation",
	RelationDebug:      "RelationDebug",
	FailedCast:         "FailedCast",
	DomainMismatch:     "DomainMismatch",
	MetricMismatch:     "MetricMismatch",
	MeasureMismatch:    "MeasureMismatch",
	InvalidMetricSpace: "InvalidMetricSpace",
	MakeDomain:         "MakeDomain",
	MakeTransformation: "MakeTransformation",
	MakeMeasurement:    "MakeMeasurement",
	InvalidDistance:    "InvalidDistance",
	NotImplemented:     "NotImplemented",
}

// String returns the wire name of v.
func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// ParseVariant maps a wire name back to its Variant.
// Unknown names decode to NotImplemented with ok=false.
func ParseVariant(name string) (v Variant, ok bool) {
	for i, n := range variantNames {
		if n == name {
			return Variant(i), true
		}
	}
	return NotImplemented, false
}

// Variants lists every variant in declaration order.
func Variants() []Variant {
	out := make([]Variant, len(variantNames))
	for i := range variantNames {
		out[i] = Variant(i)
	}
	return out
}

// Sentinels, one per variant. Use with errors.Is.
var (
	ErrFFI                = &Error{Variant: FFI}
	ErrTypeParse          = &Error{Variant: TypeParse}
	ErrFailedFunction     = &Error{Variant: FailedFunction}
	ErrFailedRelation     = &Error{Variant: FailedRelation}
	ErrRelationDebug      = &Error{Variant: RelationDebug}
	ErrFailedCast         = &Error{Variant: FailedCast}
	ErrDomainMismatch     = &Error{Variant: DomainMismatch}
	ErrMetricMismatch     = &Error{Variant: MetricMismatch}
	ErrMeasureMismatch    = &Error{Variant: MeasureMismatch}
	ErrInvalidMetricSpace = &Error{Variant: InvalidMetricSpace}
	ErrMakeDomain         = &Error{Variant: MakeDomain}
	ErrMakeTransformation = &Error{Variant: MakeTransformation}
	ErrMakeMeasurement    = &Error{Variant: MakeMeasurement}
	ErrInvalidDistance    = &Error{Variant: InvalidDistance}
	ErrNotImplemented     = &Error{Variant: NotImplemented}
)

// Error is the single error type of the library.
type Error struct {
	Variant Variant
	Message string

	cause error
	pcs   []uintptr
}

// New returns an *Error of the given variant and records the caller's stack.
func New(v Variant, msg string) *Error {
	return newError(v, msg, nil)
}

// Errorf formats a message for variant v. A %w verb is kept as the cause.
func Errorf(v Variant, format string, args ...any) *Error {
	wrapped := fmt.Errorf(format, args...)
	return newError(v, wrapped.Error(), errors.Unwrap(wrapped))
}

// Wrap attaches variant v and context to err. An *Error already carrying a
// variant keeps it; only the message gains the context prefix.
func Wrap(v Variant, context string, err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return newError(e.Variant, context+": "+e.Message, err)
	}
	return newError(v, context+": "+err.Error(), err)
}

// Reclassify wraps err under variant v whatever err's own variant is. Use it
// where a failure of a collaborator means v to the caller, such as an invalid
// domain while constructing a transformation.
func Reclassify(v Variant, context string, err error) *Error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	var e *Error
	if errors.As(err, &e) {
		msg = e.Message
	}
	return newError(v, context+": "+msg, err)
}

func newError(v Variant, msg string, cause error) *Error {
	e := &Error{Variant: v, Message: msg, cause: cause}
	if v != RelationDebug {
		pcs := make([]uintptr, 32)
		n := runtime.Callers(3, pcs)
		e.pcs = pcs[:n]
	}
	return e
}

// Error implements error.
func (e *Error) Error() string {
	if e.Message == "" {
		return e.Variant.String()
	}
	return e.Variant.String() + ": " + e.Message
}

// Is reports whether target is a bare sentinel of e's variant, such as
// ErrFailedFunction. Sentinels carrying a message match only themselves.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Message == "" && t.Variant == e.Variant
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// Trace formats the captured call stack. RelationDebug errors have none.
func (e *Error) Trace() string {
	if len(e.pcs) == 0 {
		return ""
	}
	var b strings.Builder
	frames := runtime.CallersFrames(e.pcs)
	for {
		f, more := frames.Next()
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		if !more {
			break
		}
	}
	return b.String()
}

// Equal reports whether a and b agree on variant and message. Traces are ignored.
func Equal(a, b *Error) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Variant == b.Variant && a.Message == b.Message
}

// VariantOf extracts the variant of err. Errors from outside the taxonomy
// report FailedFunction.
func VariantOf(err error) Variant {
	var e *Error
	if errors.As(err, &e) {
		return e.Variant
	}
	return FailedFunction
}
