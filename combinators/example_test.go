// SPDX-License-Identifier: MIT
// Package combinators_test shows how pieces are chained into a mechanism.
//
// Purpose:
//   - Runnable documentation for MakeChainMT and for a mismatched chain.

package combinators_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/dpchain/combinators"
	"github.com/katalvlaran/dpchain/domains"
	"github.com/katalvlaran/dpchain/errs"
	"github.com/katalvlaran/dpchain/mechanisms"
)

// ExampleMakeChainMT builds clamp -> sum -> Laplace and reads its privacy loss.
func ExampleMakeChainMT() {
	// 1) Clamp every record of a 4-element dataset into [0, 1].
	clamp, _ := mechanisms.MakeClamp(0.0, 1.0, domains.WithSize(4))
	// 2) Sum the clamped records; the size is public.
	sum, _ := mechanisms.MakeSizedBoundedSum(4, 0.0, 1.0)
	// 3) Release the sum with Laplace(1) noise.
	lap, _ := mechanisms.MakeLaplace(1.0)

	exact, err := combinators.MakeChainTT(sum, clamp)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	m, err := combinators.MakeChainMT(lap, exact)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 4) Swapping one record is a symmetric distance of 2.
	eps, _ := m.Map(2)
	ok, _ := m.Check(2, 1.01)
	fmt.Printf("epsilon=%.3f within 1.01: %v\n", eps, ok)
	// Output: epsilon=1.000 within 1.01: true
}

// ExampleMakeChainTT_mismatch shows the error when the pieces do not fit.
func ExampleMakeChainTT_mismatch() {
	clamp, _ := mechanisms.MakeClamp(0.0, 1.0)
	sum, _ := mechanisms.MakeSizedBoundedSum(4, 0.0, 1.0)

	// The clamp is unsized but the sum expects exactly 4 records.
	_, err := combinators.MakeChainTT(sum, clamp)
	fmt.Println(errors.Is(err, errs.ErrDomainMismatch))
	// Output: true
}
