// SPDX-License-Identifier: MIT

package domains

import "github.com/katalvlaran/dpchain/errs"

// ErrBounds indicates lower > upper, or a NaN bound.
var ErrBounds = errs.New(errs.MakeDomain, "domains: lower bound must not exceed upper bound")
