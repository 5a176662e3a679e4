// SPDX-License-Identifier: MIT

// Package mechanisms holds the concrete transformations and measurements the
// rest of dpchain is exercised with. The algebra in packages core and
// combinators treats them as opaque, already validated values.
//
// Transformations:
//
//	MakeClamp           - clamp every element of a vector into [lower, upper].
//	MakeBoundedSum      - monotonic saturating sum of bounded integers.
//	MakeSizedBoundedSum - sum of a known number of bounded floats.
//
// Measurements:
//
//	MakeLaplace                 - scalar Laplace noise, ε = d_in/scale.
//	MakeVectorLaplace           - element-wise Laplace noise under L1 distance.
//	MakeRandomizedResponseBool  - keep a boolean with probability p, else flip it.
//
// Laplace sampling is delegated to github.com/google/differential-privacy.
// Randomized response draws from crypto/rand and supports a constant-time mode.
package mechanisms
