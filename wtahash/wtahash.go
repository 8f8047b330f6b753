// Package wtahash implements the Winner-Take-All hash used for video
// content fingerprinting over MPEG-7 frame signature sums.
package wtahash

import (
	"fmt"

	"github.com/iscc/iscc-lib/errs"
)

// VectorSize is the feature vector length the permutation table indexes
// into.
const VectorSize = 380

// WtaHash computes a bits-wide hash by comparing fixed position pairs of
// the feature vector: output bit k is 1 iff vec[i_k] < vec[j_k]. Bits are
// packed MSB-first. The vector uses int64 so that summing many frames
// cannot overflow.
func WtaHash(vec []int64, bits uint32) ([]byte, error) {
	if bits == 0 || bits > 256 || bits%8 != 0 {
		return nil, fmt.Errorf("%w: invalid wta-hash bit length: %d", errs.ErrInvalidInput, bits)
	}
	if len(vec) < VectorSize {
		return nil, fmt.Errorf("%w: feature vector too short: %d < %d", errs.ErrInvalidInput, len(vec), VectorSize)
	}

	result := make([]byte, bits/8)
	for k := 0; k < int(bits); k++ {
		pair := permutations[k]
		if vec[pair[0]] < vec[pair[1]] {
			result[k/8] |= 1 << (7 - k%8)
		}
	}

	return result, nil
}
