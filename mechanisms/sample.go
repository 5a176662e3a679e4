// SPDX-License-Identifier: MIT

package mechanisms

import (
	"crypto/rand"
	"io"
	"math"
	"math/bits"

	"github.com/katalvlaran/dpchain/errs"
)

// maxGeometricBits covers every bit position of a float64 in [0, 1]:
// 1074 subnormal positions plus the 53-bit mantissa.
const maxGeometricBits = 1074 + 53

// sampleBernoulli returns true with probability exactly prob.
//
// It draws the index i of the first set bit in a stream of fair bits
// (P(i) = 2^-i) and returns bit i of prob's binary expansion. With
// constantTime the full stream is always read and scanned, so run time does
// not depend on the outcome.
func sampleBernoulli(prob float64, constantTime bool, src io.Reader) (bool, error) {
	if math.IsNaN(prob) || prob < 0 || prob > 1 {
		return false, errs.Errorf(errs.FailedFunction, "bernoulli probability %v outside [0, 1]", prob)
	}
	if prob == 1 {
		return true, nil
	}
	i, err := firstHeads(constantTime, src)
	if err != nil {
		return false, err
	}
	if i == 0 {
		// no heads within the representable range: the remaining bits of prob are zero
		return false, nil
	}
	return bitOf(prob, i), nil
}

func firstHeads(constantTime bool, src io.Reader) (int, error) {
	if src == nil {
		src = rand.Reader
	}
	const chunk = 8
	nBytes := (maxGeometricBits + 7) / 8
	buf := make([]byte, chunk)
	found := 0
	for read := 0; read < nBytes; read += chunk {
		if _, err := io.ReadFull(src, buf); err != nil {
			return 0, errs.Errorf(errs.FailedFunction, "read entropy: %w", err)
		}
		for j, b := range buf {
			pos := (read+j)*8 + bits.LeadingZeros8(b) + 1
			hit := b != 0 && found == 0 && pos <= maxGeometricBits
			if hit {
				found = pos
			}
		}
		if found != 0 && !constantTime {
			return found, nil
		}
	}
	return found, nil
}

// bitOf returns the coefficient of 2^-i in the binary expansion of p ∈ [0, 1).
func bitOf(p float64, i int) bool {
	frac, exp := math.Frexp(p)
	mant := uint64(math.Ldexp(frac, 53))
	k := 53 - i - exp
	if k < 0 || k > 52 {
		return false
	}
	return mant>>uint(k)&1 == 1
}
