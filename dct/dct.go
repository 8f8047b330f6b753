// Package dct implements the fast recursive discrete cosine transform
// (Nayuki's algorithm) used for image content hashing.
//
// See https://www.nayuki.io/page/fast-discrete-cosine-transform-algorithms
package dct

import (
	"fmt"
	"math"

	"github.com/iscc/iscc-lib/errs"
)

// Transform computes the 1-D DCT of v. The input length must be a power of
// 2 (1 included); the recursion halves the length at every level. All
// arithmetic is IEEE-754 double precision; results match the reference
// implementation bit for bit.
func Transform(v []float64) ([]float64, error) {
	n := len(v)
	if n == 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("%w: DCT input length must be a power of 2 (or 1)", errs.ErrInvalidInput)
	}

	return transform(v), nil
}

func transform(v []float64) []float64 {
	n := len(v)
	if n == 1 {
		out := make([]float64, 1)
		out[0] = v[0]

		return out
	}

	half := n / 2
	alpha := make([]float64, half)
	beta := make([]float64, half)
	for i := 0; i < half; i++ {
		alpha[i] = v[i] + v[n-1-i]
		beta[i] = (v[i] - v[n-1-i]) / math.Cos((float64(i)+0.5)*math.Pi/float64(n)) / 2.0
	}

	alpha = transform(alpha)
	beta = transform(beta)

	result := make([]float64, 0, n)
	for i := 0; i < half-1; i++ {
		result = append(result, alpha[i], beta[i]+beta[i+1])
	}
	result = append(result, alpha[half-1], beta[half-1])

	return result
}
