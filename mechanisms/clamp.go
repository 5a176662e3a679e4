// SPDX-License-Identifier: MIT

package mechanisms

import (
	"fmt"

	"github.com/katalvlaran/dpchain/core"
	"github.com/katalvlaran/dpchain/domains"
	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/metrics"
	"github.com/katalvlaran/dpchain/numeric"
)

// MakeClamp returns a transformation that clamps each element into
// [lower, upper]. The row count is preserved, so the symmetric distance is
// unchanged. opts (e.g. domains.WithSize) apply to both vector domains.
func MakeClamp[T numeric.Number](lower, upper T, opts ...domains.VectorOption) (core.Transformation[[]T, []T, uint32, uint32], error) {
	bounded, err := domains.NewBoundedAtomDomain(lower, upper)
	if err != nil {
		return core.Transformation[[]T, []T, uint32, uint32]{}, errs.Reclassify(errs.MakeTransformation, fmt.Sprintf("clamp(%v, %v)", lower, upper), err)
	}
	return core.NewTransformation(
		domains.NewVectorDomain[T](domains.NewAtomDomain[T](), opts...),
		domains.NewVectorDomain[T](bounded, opts...),
		core.NewFunction(func(xs []T) []T {
			out := make([]T, len(xs))
			for i, x := range xs {
				out[i] = min(max(x, lower), upper)
			}
			return out
		}),
		metrics.SymmetricDistance{},
		metrics.SymmetricDistance{},
		core.NewStabilityMapFromConstant[uint32](uint32(1)),
	)
}
