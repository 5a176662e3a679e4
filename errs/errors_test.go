// SPDX-License-Identifier: MIT
// Package errs_test verifies the structured error type.
//
// Purpose:
//   - Anchor variant names, errors.Is matching and cause chains.
//   - Distinguish Wrap, which keeps the inner variant, from Reclassify.

package errs_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/dpchain/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestVariant_RoundTrip verifies every variant survives String/ParseVariant.
func TestVariant_RoundTrip(t *testing.T) {
	for _, v := range errs.Variants() {
		got, ok := errs.ParseVariant(v.String())
		require.True(t, ok, "variant %s must parse", v)
		assert.Equal(t, v, got)
	}
}

// TestParseVariant_Unknown checks forward compatibility of the wire names.
func TestParseVariant_Unknown(t *testing.T) {
	v, ok := errs.ParseVariant("SomethingNew")
	assert.False(t, ok)
	assert.Equal(t, errs.NotImplemented, v, "unknown names decode to NotImplemented")
}

// TestError_Is matches by variant and ignores the message.
func TestError_Is(t *testing.T) {
	err := errs.New(errs.DomainMismatch, "lhs != rhs")
	assert.ErrorIs(t, err, errs.ErrDomainMismatch)
	assert.NotErrorIs(t, err, errs.ErrMetricMismatch)
	assert.Equal(t, "DomainMismatch: lhs != rhs", err.Error())

	specific := errs.New(errs.DomainMismatch, "specific")
	assert.NotErrorIs(t, err, specific, "sentinels with a message match by identity")
	assert.ErrorIs(t, errs.Wrap(errs.FailedFunction, "ctx", specific), specific)
}

// TestErrorf_KeepsCause checks %w wrapping.
func TestErrorf_KeepsCause(t *testing.T) {
	base := errors.New("overflow")
	err := errs.Errorf(errs.FailedFunction, "sum: %w", base)
	assert.ErrorIs(t, err, base)
	assert.ErrorIs(t, err, errs.ErrFailedFunction)
	assert.Equal(t, "sum: overflow", err.Message)
}

// TestWrap_PreservesVariant keeps the inner classification.
func TestWrap_PreservesVariant(t *testing.T) {
	inner := errs.New(errs.FailedCast, "want float64")
	err := errs.Wrap(errs.FailedFunction, "invoke", inner)
	assert.Equal(t, errs.FailedCast, err.Variant)
	assert.Equal(t, "invoke: want float64", err.Message)
	assert.Nil(t, errs.Wrap(errs.FFI, "noop", nil))
}

// TestReclassify overrides the inner variant and keeps the cause.
func TestReclassify(t *testing.T) {
	inner := errs.New(errs.MakeDomain, "lower > upper")
	err := errs.Reclassify(errs.MakeTransformation, "clamp", inner)
	assert.Equal(t, errs.MakeTransformation, err.Variant)
	assert.Equal(t, "clamp: lower > upper", err.Message)
	assert.ErrorIs(t, err, inner)
	assert.Nil(t, errs.Reclassify(errs.FFI, "noop", nil))
}

// TestTrace_RelationDebug verifies the trace convention.
func TestTrace_RelationDebug(t *testing.T) {
	assert.NotEmpty(t, errs.New(errs.FailedRelation, "x").Trace())
	assert.Empty(t, errs.New(errs.RelationDebug, "dump").Trace())
}

func TestEqual(t *testing.T) {
	a := errs.New(errs.InvalidDistance, "negative")
	b := errs.New(errs.InvalidDistance, "negative")
	assert.True(t, errs.Equal(a, b))
	assert.False(t, errs.Equal(a, errs.New(errs.InvalidDistance, "nan")))
	assert.Equal(t, errs.FailedFunction, errs.VariantOf(errors.New("plain")))
}
