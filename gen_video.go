package iscc

import (
	"encoding/binary"
	"fmt"

	"github.com/iscc/iscc-lib/codec"
	"github.com/iscc/iscc-lib/errs"
	"github.com/iscc/iscc-lib/wtahash"
)

// GenVideoCodeV0 generates a Content-Code Video from a sequence of MPEG-7
// frame signatures (380 integers per frame).
func GenVideoCodeV0(frameSigs [][]int32, bits uint32) (*VideoCodeResult, error) {
	digest, err := SoftHashVideoV0(frameSigs, bits)
	if err != nil {
		return nil, err
	}

	component, err := codec.EncodeComponent(codec.MTContent, codec.STVideo, codec.V0, bits, digest)
	if err != nil {
		return nil, err
	}

	return &VideoCodeResult{Iscc: "ISCC:" + component}, nil
}

// SoftHashVideoV0 computes the similarity digest over frame signatures:
// duplicate frames are removed, the remaining signatures are summed
// column-wise into int64 and the sums are WTA-hashed to bits bits.
func SoftHashVideoV0(frameSigs [][]int32, bits uint32) ([]byte, error) {
	if len(frameSigs) == 0 {
		return nil, fmt.Errorf("%w: no frame signatures", errs.ErrInvalidInput)
	}
	length := len(frameSigs[0])

	// Deduplicate by value; summation is commutative, so only the set of
	// distinct frames matters.
	seen := make(map[string]bool, len(frameSigs))
	sums := make([]int64, length)
	key := make([]byte, length*4)
	for _, frame := range frameSigs {
		if len(frame) != length {
			return nil, fmt.Errorf("%w: frame signature length mismatch: %d != %d",
				errs.ErrInvalidInput, len(frame), length)
		}
		for i, v := range frame {
			binary.LittleEndian.PutUint32(key[i*4:], uint32(v))
		}
		if seen[string(key)] {
			continue
		}
		seen[string(key)] = true
		for i, v := range frame {
			sums[i] += int64(v)
		}
	}

	return wtahash.WtaHash(sums, bits)
}
