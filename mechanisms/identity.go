// SPDX-License-Identifier: MIT

package mechanisms

import (
	"github.com/katalvlaran/dpchain/core"
)

// MakeIdentity returns the 1-stable transformation that passes its input
// through unchanged on domain under metric.
func MakeIdentity[T, Q any](domain core.Domain[T], metric core.Metric) (core.Transformation[T, T, Q, Q], error) {
	return core.NewTransformation(
		domain,
		domain,
		core.NewFunction(func(x T) T { return x }),
		metric,
		metric,
		core.NewStabilityMap(func(d Q) (Q, error) { return d, nil }),
	)
}
