package util

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Round rounds x to the given number of decimal places, half away from zero.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// Fixed rounds x to places decimals using the exact binary value of x,
// ties away from zero. Round can disagree when x*10^places is inexact:
// Round(5.05, 1) is 5.1 while Fixed(5.05, 1) is 5 because the stored value
// is just below 5.05.
func Fixed(x float64, places int) float64 {
	if places < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	v := new(big.Float).SetPrec(2048).SetFloat64(math.Abs(x))
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)
	v.Mul(v, new(big.Float).SetInt(scale))
	v.Add(v, big.NewFloat(0.5))
	n, _ := v.Int(nil)

	digits := n.String()
	if places > 0 {
		if len(digits) <= places {
			digits = strings.Repeat("0", places-len(digits)+1) + digits
		}
		digits = digits[:len(digits)-places] + "." + digits[len(digits)-places:]
	}
	r, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return Round(x, places)
	}
	if x < 0 {
		r = -r
	}
	return r
}

// Clamp bounds x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
