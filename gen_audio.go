package iscc

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/iscc/iscc-lib/codec"
	"github.com/iscc/iscc-lib/errs"
	"github.com/iscc/iscc-lib/simhash"
)

// GenAudioCodeV0 generates a Content-Code Audio from a Chromaprint feature
// vector.
//
// Each feature is treated as a 4-byte big-endian digest. The 32-byte
// similarity digest concatenates three SimHash stages: the whole vector
// (4 bytes), four quarters (16 bytes) and three thirds of the ascending
// sorted vector (12 bytes). Empty quarters or thirds contribute zero bytes.
func GenAudioCodeV0(cv []int32, bits uint32) (*AudioCodeResult, error) {
	if bits > 256 {
		return nil, fmt.Errorf("%w: invalid bit length %d for audio code (max 256)", errs.ErrInvalidInput, bits)
	}

	digest, err := softHashAudioV0(cv)
	if err != nil {
		return nil, err
	}

	component, err := codec.EncodeComponent(codec.MTContent, codec.STAudio, codec.V0, bits, digest)
	if err != nil {
		return nil, err
	}

	return &AudioCodeResult{Iscc: "ISCC:" + component}, nil
}

// softHashAudioV0 computes the three-stage 32-byte audio digest.
func softHashAudioV0(cv []int32) ([]byte, error) {
	digests := featureDigests(cv)

	digest := make([]byte, 0, 32)

	// Stage 1: the whole vector.
	whole, err := simhash.SimHash(digests)
	if err != nil {
		return nil, err
	}
	digest = append(digest, normalizeStage(whole)...)

	// Stage 2: four quarters.
	for _, quarter := range splitEven(digests, 4) {
		part, err := simhash.SimHash(quarter)
		if err != nil {
			return nil, err
		}
		digest = append(digest, normalizeStage(part)...)
	}

	// Stage 3: three thirds of the ascending sorted vector.
	sortedCv := slices.Clone(cv)
	slices.Sort(sortedCv)
	for _, third := range splitEven(featureDigests(sortedCv), 3) {
		part, err := simhash.SimHash(third)
		if err != nil {
			return nil, err
		}
		digest = append(digest, normalizeStage(part)...)
	}

	return digest, nil
}

// featureDigests renders each feature as a 4-byte big-endian digest.
func featureDigests(cv []int32) [][]byte {
	digests := make([][]byte, len(cv))
	for i, v := range cv {
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, uint32(v))
		digests[i] = buf
	}

	return digests
}

// normalizeStage truncates a stage digest to 4 bytes. A SimHash over an
// empty partition returns its 32-byte zero default; the stage contributes
// 4 zero bytes in that case.
func normalizeStage(digest []byte) []byte {
	return digest[:4]
}

// splitEven partitions digests into the given number of parts, the first
// len(digests) mod parts of which receive one extra element.
func splitEven(digests [][]byte, parts int) [][][]byte {
	base := len(digests) / parts
	extra := len(digests) % parts
	out := make([][][]byte, 0, parts)
	pos := 0
	for i := 0; i < parts; i++ {
		size := base
		if i < extra {
			size++
		}
		out = append(out, digests[pos:pos+size])
		pos += size
	}

	return out
}
