// SPDX-License-Identifier: MIT

package numeric

import (
	"math"
	"math/big"
)

// Integer is the set of built-in integer carriers.
type Integer interface {
	int | int8 | int16 | int32 | int64 | uint | uint8 | uint16 | uint32 | uint64
}

// Float is the set of built-in float carriers.
type Float interface {
	float32 | float64
}

// Number is any numeric carrier usable as a distance.
type Number interface {
	Integer | Float
}

// direction selects the rounding side.
type direction bool

const (
	up   direction = true
	down direction = false
)

func (d direction) mode() big.RoundingMode {
	if d == up {
		return big.ToPositiveInf
	}
	return big.ToNegativeInf
}

// IsFloat reports whether T is a float carrier.
func IsFloat[T Number]() bool {
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		return true
	}
	return false
}

// precision returns the mantissa width of float carrier T.
func precision[T Number]() uint {
	var zero T
	if _, ok := any(zero).(float32); ok {
		return 24
	}
	return 53
}

// integerRange returns the inclusive bounds of integer carrier T.
func integerRange[T Number]() (lo, hi *big.Int) {
	var zero T
	switch any(zero).(type) {
	case int8:
		return big.NewInt(-1 << 7), big.NewInt(1<<7 - 1)
	case int16:
		return big.NewInt(-1 << 15), big.NewInt(1<<15 - 1)
	case int32:
		return big.NewInt(-1 << 31), big.NewInt(1<<31 - 1)
	case int:
		return big.NewInt(math.MinInt), big.NewInt(math.MaxInt)
	case int64:
		return big.NewInt(math.MinInt64), big.NewInt(math.MaxInt64)
	case uint8:
		return big.NewInt(0), big.NewInt(1<<8 - 1)
	case uint16:
		return big.NewInt(0), big.NewInt(1<<16 - 1)
	case uint32:
		return big.NewInt(0), big.NewInt(1<<32 - 1)
	case uint:
		return big.NewInt(0), new(big.Int).SetUint64(math.MaxUint)
	default:
		return big.NewInt(0), new(big.Int).SetUint64(math.MaxUint64)
	}
}
