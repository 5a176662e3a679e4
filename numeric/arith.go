// SPDX-License-Identifier: MIT
// Package: dpchain/numeric
//
// arith.go: arithmetic with an explicit rounding direction.
//
// Contract:
//   - Inf* results are never below the exact value, NegInf* never above.
//   - Floats round through math/big at the operand precision with
//     ToPositiveInf or ToNegativeInf.
//   - Integers are computed exactly through big.Int and rounded only on
//     division.
//
// Complexity:
//   - O(1) per call for the supported widths.
//
// Errors:
//   - FailedFunction on NaN operands and on division by zero.
//   - FailedFunction wrapping an overflow error when the rounded result
//     leaves the range of T.

package numeric

import (
	"math"
	"math/big"

	"github.com/katalvlaran/dpchain/errs"
)

type op uint8

const (
	opAdd op = iota
	opSub
	opMul
	opDiv
)

func (o op) String() string {
	return [...]string{"add", "sub", "mul", "div"}[o]
}

// InfAdd returns a+b rounded toward +∞.
func InfAdd[T Number](a, b T) (T, error) { return binary(opAdd, a, b, up) }

// NegInfAdd returns a+b rounded toward −∞.
func NegInfAdd[T Number](a, b T) (T, error) { return binary(opAdd, a, b, down) }

// InfSub returns a−b rounded toward +∞.
func InfSub[T Number](a, b T) (T, error) { return binary(opSub, a, b, up) }

// NegInfSub returns a−b rounded toward −∞.
func NegInfSub[T Number](a, b T) (T, error) { return binary(opSub, a, b, down) }

// InfMul returns a·b rounded toward +∞.
func InfMul[T Number](a, b T) (T, error) { return binary(opMul, a, b, up) }

// NegInfMul returns a·b rounded toward −∞.
func NegInfMul[T Number](a, b T) (T, error) { return binary(opMul, a, b, down) }

// InfDiv returns a/b rounded toward +∞. Integer division takes the ceiling.
func InfDiv[T Number](a, b T) (T, error) { return binary(opDiv, a, b, up) }

// NegInfDiv returns a/b rounded toward −∞. Integer division takes the floor.
func NegInfDiv[T Number](a, b T) (T, error) { return binary(opDiv, a, b, down) }

// InfCast converts v to TO, rounding toward +∞ when TO cannot hold v exactly.
func InfCast[TO, TI Number](v TI) (TO, error) { return cast[TO](v, up) }

// NegInfCast converts v to TO, rounding toward −∞ when TO cannot hold v exactly.
func NegInfCast[TO, TI Number](v TI) (TO, error) { return cast[TO](v, down) }

func binary[T Number](o op, a, b T, dir direction) (T, error) {
	if IsFloat[T]() {
		return floatBinary(o, a, b, dir)
	}
	return intBinary(o, a, b, dir)
}

func floatBinary[T Number](o op, a, b T, dir direction) (res T, err error) {
	x, y := float64(a), float64(b)
	if math.IsNaN(x) || math.IsNaN(y) {
		return res, errs.Errorf(errs.FailedFunction, "%s: NaN operand", o)
	}
	if o == opDiv && y == 0 {
		return res, errs.Errorf(errs.FailedFunction, "div: division by zero")
	}
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(big.ErrNaN); !ok {
				panic(r)
			}
			err = errs.Errorf(errs.FailedFunction, "%s(%v, %v) is undefined", o, a, b)
		}
	}()

	z := new(big.Float).SetPrec(precision[T]()).SetMode(dir.mode())
	bx, by := new(big.Float).SetFloat64(x), new(big.Float).SetFloat64(y)
	switch o {
	case opAdd:
		z.Add(bx, by)
	case opSub:
		z.Sub(bx, by)
	case opMul:
		z.Mul(bx, by)
	case opDiv:
		z.Quo(bx, by)
	}
	res, err = fromBigFloat[T](z, dir)
	if err != nil {
		return res, errs.Errorf(errs.FailedFunction, "%s(%v, %v): %w", o, a, b, err)
	}
	return res, nil
}

func intBinary[T Number](o op, a, b T, dir direction) (T, error) {
	var zero T
	x, y := bigInt(a), bigInt(b)
	z := new(big.Int)
	switch o {
	case opAdd:
		z.Add(x, y)
	case opSub:
		z.Sub(x, y)
	case opMul:
		z.Mul(x, y)
	case opDiv:
		if y.Sign() == 0 {
			return zero, errs.Errorf(errs.FailedFunction, "div: division by zero")
		}
		r := new(big.Int)
		z.QuoRem(x, y, r)
		// the discarded fraction is positive iff r and y share a sign
		if r.Sign() != 0 {
			positive := r.Sign() == y.Sign()
			if positive && dir == up {
				z.Add(z, big.NewInt(1))
			} else if !positive && dir == down {
				z.Sub(z, big.NewInt(1))
			}
		}
	}
	res, err := fromBigInt[T](z)
	if err != nil {
		return zero, errs.Errorf(errs.FailedFunction, "%s(%v, %v): %w", o, a, b, err)
	}
	return res, nil
}

func cast[TO, TI Number](v TI, dir direction) (TO, error) {
	var zero TO
	var x *big.Float
	if IsFloat[TI]() {
		f := float64(v)
		if math.IsNaN(f) {
			return zero, errs.Errorf(errs.FailedFunction, "cast: NaN")
		}
		x = new(big.Float).SetFloat64(f)
	} else {
		x = new(big.Float).SetInt(bigInt(v))
	}

	if IsFloat[TO]() {
		z := new(big.Float).SetPrec(precision[TO]()).SetMode(dir.mode()).Set(x)
		res, err := fromBigFloat[TO](z, dir)
		if err != nil {
			return zero, errs.Errorf(errs.FailedFunction, "cast %v: %w", v, err)
		}
		return res, nil
	}

	if x.IsInf() {
		return zero, errs.Errorf(errs.FailedFunction, "cast %v: not finite", v)
	}
	i, acc := x.Int(nil)
	if dir == up && acc == big.Below {
		i.Add(i, big.NewInt(1))
	} else if dir == down && acc == big.Above {
		i.Sub(i, big.NewInt(1))
	}
	res, err := fromBigInt[TO](i)
	if err != nil {
		return zero, errs.Errorf(errs.FailedFunction, "cast %v: %w", v, err)
	}
	return res, nil
}

func bigInt[T Number](v T) *big.Int {
	switch x := any(v).(type) {
	case uint:
		return new(big.Int).SetUint64(uint64(x))
	case uint8:
		return new(big.Int).SetUint64(uint64(x))
	case uint16:
		return new(big.Int).SetUint64(uint64(x))
	case uint32:
		return new(big.Int).SetUint64(uint64(x))
	case uint64:
		return new(big.Int).SetUint64(x)
	case int:
		return big.NewInt(int64(x))
	case int8:
		return big.NewInt(int64(x))
	case int16:
		return big.NewInt(int64(x))
	case int32:
		return big.NewInt(int64(x))
	case int64:
		return big.NewInt(x)
	}
	return new(big.Int)
}

func fromBigInt[T Number](z *big.Int) (T, error) {
	var zero T
	lo, hi := integerRange[T]()
	if z.Cmp(lo) < 0 || z.Cmp(hi) > 0 {
		return zero, errOverflow
	}
	if z.Sign() < 0 {
		return T(z.Int64()), nil
	}
	return T(z.Uint64()), nil
}

// fromBigFloat reads z (already rounded to T's precision) into T, stepping
// one ulp when the exponent range forces a second rounding.
func fromBigFloat[T Number](z *big.Float, dir direction) (T, error) {
	var zero T
	if precision[T]() == 24 {
		f, acc := z.Float32()
		if math.IsInf(float64(f), 0) && !z.IsInf() {
			return zero, errOverflow
		}
		if dir == up && acc == big.Below {
			f = math.Nextafter32(f, float32(math.Inf(1)))
		} else if dir == down && acc == big.Above {
			f = math.Nextafter32(f, float32(math.Inf(-1)))
		}
		return T(f), nil
	}
	f, acc := z.Float64()
	if math.IsInf(f, 0) && !z.IsInf() {
		return zero, errOverflow
	}
	if dir == up && acc == big.Below {
		f = math.Nextafter(f, math.Inf(1))
	} else if dir == down && acc == big.Above {
		f = math.Nextafter(f, math.Inf(-1))
	}
	return T(f), nil
}
