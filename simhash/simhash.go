// Package simhash implements the bit-majority SimHash and the sliding
// window n-gram generators used by the Meta, Text, Audio and Mixed codes.
package simhash

import (
	"fmt"

	"github.com/iscc/iscc-lib/errs"
)

// SimHash computes a similarity-preserving hash over equal-length digests.
//
// For each bit position the number of input digests with that bit set is
// counted; the output bit is 1 when count*2 >= len(digests). Ties are set
// to one, so two complementary inputs hash to all-ones. Empty input yields
// 32 zero bytes. Digests of unequal length are rejected.
func SimHash(digests [][]byte) ([]byte, error) {
	if len(digests) == 0 {
		return make([]byte, 32), nil
	}

	nbytes := len(digests[0])
	nbits := nbytes * 8
	counts := make([]uint32, nbits)
	for _, digest := range digests {
		if len(digest) != nbytes {
			return nil, fmt.Errorf("%w: unequal digest lengths: %d != %d",
				errs.ErrInvalidInput, len(digest), nbytes)
		}
		for i := 0; i < nbits; i++ {
			if (digest[i/8]>>(7-i%8))&1 == 1 {
				counts[i]++
			}
		}
	}

	n := uint32(len(digests))
	result := make([]byte, nbytes)
	for i, count := range counts {
		if count*2 >= n {
			result[i/8] |= 1 << (7 - i%8)
		}
	}

	return result, nil
}
