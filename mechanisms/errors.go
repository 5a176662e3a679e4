// SPDX-License-Identifier: MIT

package mechanisms

import "github.com/katalvlaran/dpchain/errs"

var (
	// ErrBoundsSign indicates bounds of mixed sign where a monotonic sum is required.
	ErrBoundsSign = errs.New(errs.MakeTransformation, "mechanisms: bounds must share the same sign")

	// ErrScale indicates a noise scale that is not finite and positive.
	ErrScale = errs.New(errs.MakeMeasurement, "mechanisms: scale must be finite and positive")

	// ErrProbability indicates a randomized-response probability outside [0.5, 1).
	ErrProbability = errs.New(errs.MakeMeasurement, "mechanisms: probability must lie in [0.5, 1)")
)
