// SPDX-License-Identifier: MIT
// Package mechanisms verifies the bit-level samplers.
//
// Purpose:
//   - Check determinism of the Bernoulli sampler over a fixed byte stream.

package mechanisms

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitOf(t *testing.T) {
	// 0.625 = 0.101b
	assert.True(t, bitOf(0.625, 1))
	assert.False(t, bitOf(0.625, 2))
	assert.True(t, bitOf(0.625, 3))
	assert.False(t, bitOf(0.625, 4))
	assert.True(t, bitOf(0.25, 2))
}

// TestSampleBernoulli_Deterministic drives the sampler from a fixed stream.
func TestSampleBernoulli_Deterministic(t *testing.T) {
	stream := func(first byte) *bytes.Reader {
		buf := make([]byte, 256)
		buf[0] = first
		return bytes.NewReader(buf)
	}
	for _, constantTime := range []bool{false, true} {
		// first heads at bit 1 → bit 1 of 0.625 is set
		got, err := sampleBernoulli(0.625, constantTime, stream(0x80))
		require.NoError(t, err)
		assert.True(t, got)

		// first heads at bit 2 → bit 2 of 0.625 is clear
		got, err = sampleBernoulli(0.625, constantTime, stream(0x40))
		require.NoError(t, err)
		assert.False(t, got)
	}

	_, err := sampleBernoulli(0.5, false, bytes.NewReader(nil))
	assert.Error(t, err, "exhausted entropy")
}
