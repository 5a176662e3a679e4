// SPDX-License-Identifier: MIT

package numeric

import (
	"errors"
	"math"
	"math/big"

	"github.com/katalvlaran/dpchain/errs"
)

var errOverflow = errors.New("result overflows the carrier type")

// InfSqrt returns √x rounded toward +∞.
func InfSqrt[T Float](x T) (T, error) { return sqrt(x, up) }

// NegInfSqrt returns √x rounded toward −∞.
func NegInfSqrt[T Float](x T) (T, error) { return sqrt(x, down) }

// InfLn returns ln(x) stepped toward +∞.
func InfLn[T Float](x T) (T, error) { return ln(x, up) }

// NegInfLn returns ln(x) stepped toward −∞.
func NegInfLn[T Float](x T) (T, error) { return ln(x, down) }

// InfExp returns eˣ stepped toward +∞.
func InfExp[T Float](x T) (T, error) { return exp(x, up) }

// NegInfExp returns eˣ stepped toward −∞.
func NegInfExp[T Float](x T) (T, error) { return exp(x, down) }

func sqrt[T Float](x T, dir direction) (T, error) {
	f := float64(x)
	if math.IsNaN(f) || f < 0 {
		return 0, errs.Errorf(errs.FailedFunction, "sqrt(%v): domain is [0, +inf]", x)
	}
	if math.IsInf(f, 1) {
		return x, nil
	}
	z := new(big.Float).SetPrec(precision[T]()).SetMode(dir.mode())
	z.Sqrt(new(big.Float).SetFloat64(f))
	return fromBigFloat[T](z, dir)
}

func ln[T Float](x T, dir direction) (T, error) {
	f := float64(x)
	if math.IsNaN(f) || f < 0 {
		return 0, errs.Errorf(errs.FailedFunction, "ln(%v): domain is [0, +inf]", x)
	}
	if f == 1 {
		return 0, nil
	}
	return outward[T](math.Log(f), dir)
}

func exp[T Float](x T, dir direction) (T, error) {
	f := float64(x)
	if math.IsNaN(f) {
		return 0, errs.Errorf(errs.FailedFunction, "exp: NaN operand")
	}
	if f == 0 {
		return 1, nil
	}
	r := math.Exp(f)
	if math.IsInf(r, 1) && !math.IsInf(f, 1) {
		return 0, errs.Errorf(errs.FailedFunction, "exp(%v): %w", x, errOverflow)
	}
	res, err := outward[T](r, dir)
	if err != nil {
		return 0, err
	}
	if res < 0 {
		return 0, nil
	}
	return res, nil
}

// outward steps an approximately rounded float64 one ulp in dir, then narrows
// it to T in the same direction.
func outward[T Float](r float64, dir direction) (T, error) {
	if !math.IsInf(r, 0) {
		if dir == up {
			r = math.Nextafter(r, math.Inf(1))
		} else {
			r = math.Nextafter(r, math.Inf(-1))
		}
	}
	return cast[T](r, dir)
}
