// Package minhash implements the 64-dimensional MinHash with bit-interleaved
// compression used by the Text and Data codes.
package minhash

const (
	mprime uint64 = (1 << 61) - 1 // Mersenne prime 2^61 - 1
	maxh   uint64 = (1 << 32) - 1
)

// minHash computes the 64-dimensional MinHash of the features.
//
// Dimension i applies the universal hash
// h_i(x) = (((mpa[i]*x + mpb[i]) mod 2^64) mod (2^61 - 1)) mod 2^32 and
// keeps the minimum over all features. Empty input yields 2^32 - 1 in every
// dimension.
func minHash(features []uint32) [64]uint64 {
	var mhash [64]uint64
	for i := range mpa {
		minVal := maxh
		for _, f := range features {
			h := ((mpa[i]*uint64(f) + mpb[i]) % mprime) & maxh
			if h < minVal {
				minVal = h
			}
		}
		mhash[i] = minVal
	}

	return mhash
}

// compress packs the low lsb bits of each dimension, iterating bit position
// as the outer loop and dimensions as the inner loop, MSB-first into bytes.
func compress(mhash [64]uint64, lsb int) []byte {
	totalBits := len(mhash) * lsb
	out := make([]byte, (totalBits+7)/8)
	bitIndex := 0
	for bitpos := 0; bitpos < lsb; bitpos++ {
		for _, h := range mhash {
			if (h>>uint(bitpos))&1 == 1 {
				out[bitIndex/8] |= 1 << (7 - bitIndex%8)
			}
			bitIndex++
		}
	}

	return out
}

// MinHash256 computes the 256-bit MinHash digest of 32-bit integer features:
// the 64-dimensional MinHash compressed with lsb=4 into 32 bytes.
func MinHash256(features []uint32) []byte {
	return compress(minHash(features), 4)
}
