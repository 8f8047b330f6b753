package iscc

import (
	"github.com/pierrec/xxHash/xxHash32"

	"github.com/iscc/iscc-lib/cdc"
	"github.com/iscc/iscc-lib/codec"
	"github.com/iscc/iscc-lib/minhash"
)

// GenDataCodeV0 generates a Data-Code from raw bytes.
//
// The data is split with content-defined chunking (average chunk size 1024),
// each chunk is hashed with 32-bit xxHash, and the MinHash of the chunk
// features becomes the digest. Empty input yields a single empty chunk and
// hence one feature.
func GenDataCodeV0(data []byte, bits uint32) (*DataCodeResult, error) {
	chunks, err := cdc.Chunks(data, false, cdc.DataAvgChunkSize)
	if err != nil {
		return nil, err
	}
	features := make([]uint32, len(chunks))
	for i, chunk := range chunks {
		features[i] = xxHash32.Checksum(chunk, 0)
	}

	digest := minhash.MinHash256(features)
	component, err := codec.EncodeComponent(codec.MTData, codec.STNone, codec.V0, bits, digest)
	if err != nil {
		return nil, err
	}

	return &DataCodeResult{Iscc: "ISCC:" + component}, nil
}
