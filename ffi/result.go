// SPDX-License-Identifier: MIT

package ffi

import (
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/katalvlaran/dpchain/errs"
)

// Tag discriminates a Result.
type Tag uint8

const (
	TagOk Tag = iota
	TagErr
)

// Result is the return value of every entry point: Ok when Tag is TagOk,
// Err when Tag is TagErr.
type Result[T any] struct {
	Tag Tag
	Ok  T
	Err *ErrorRecord
}

// Unwrap converts r back to Go's (value, error) form.
func (r Result[T]) Unwrap() (T, error) {
	if r.Tag == TagErr {
		return r.Ok, r.Err.ToError()
	}
	return r.Ok, nil
}

// ErrorRecord is the boundary form of an error.
type ErrorRecord struct {
	Variant   string
	Message   *string
	Backtrace string
}

// NewErrorRecord encodes err. Errors outside the taxonomy are recorded as
// FailedFunction. RelationDebug records carry no backtrace.
func NewErrorRecord(err error) *ErrorRecord {
	if err == nil {
		return nil
	}
	var e *errs.Error
	if !errors.As(err, &e) {
		msg := err.Error()
		return &ErrorRecord{Variant: errs.FailedFunction.String(), Message: &msg}
	}
	rec := &ErrorRecord{Variant: e.Variant.String()}
	if e.Message != "" {
		msg := e.Message
		rec.Message = &msg
	}
	if e.Variant != errs.RelationDebug {
		rec.Backtrace = e.Trace()
	}
	return rec
}

// ToError decodes r. Unknown variants decode to errs.NotImplemented.
func (r *ErrorRecord) ToError() *errs.Error {
	if r == nil {
		return nil
	}
	v, _ := errs.ParseVariant(r.Variant)
	msg := ""
	if r.Message != nil {
		msg = *r.Message
	}
	return errs.New(v, msg)
}

func (r *ErrorRecord) Error() string { return r.ToError().Error() }

var logger atomic.Pointer[zap.Logger]

// SetLogger sets the logger used for failed calls and handle churn. nil
// restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

func log() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

func okay[T any](v T) Result[T] {
	return Result[T]{Tag: TagOk, Ok: v}
}

func fail[T any](op string, err error) Result[T] {
	return Result[T]{Tag: TagErr, Err: record(op, err)}
}

func record(op string, err error) *ErrorRecord {
	rec := NewErrorRecord(err)
	log().Debug("ffi call failed",
		zap.String("op", op),
		zap.String("variant", rec.Variant),
		zap.Error(err))
	return rec
}

// result stores v in the handle table on success.
func result[T any](op string, v T, err error) Result[Handle] {
	if err != nil {
		return fail[Handle](op, err)
	}
	h := handles.put(v)
	log().Debug("handle issued", zap.String("op", op), zap.Uint64("handle", uint64(h)))
	return okay(h)
}

func value[T any](op string, v T, err error) Result[T] {
	if err != nil {
		return fail[T](op, err)
	}
	return okay(v)
}
