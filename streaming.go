package iscc

import (
	"fmt"

	"github.com/pierrec/xxHash/xxHash32"
	"lukechampine.com/blake3"

	"github.com/iscc/iscc-lib/cdc"
	"github.com/iscc/iscc-lib/codec"
	"github.com/iscc/iscc-lib/errs"
	"github.com/iscc/iscc-lib/internal/pool"
	"github.com/iscc/iscc-lib/minhash"
)

// InstanceHasher incrementally computes an Instance-Code over a byte
// stream. Finalize produces the same result as GenInstanceCodeV0 over the
// concatenation of all updates.
//
// An instance is exclusively owned by its caller and must not be updated
// concurrently. Finalize consumes the hasher; further calls fail with
// errs.ErrAlreadyFinalized.
type InstanceHasher struct {
	hasher    *blake3.Hasher
	filesize  uint64
	finalized bool
}

// NewInstanceHasher creates a fresh InstanceHasher.
func NewInstanceHasher() *InstanceHasher {
	return &InstanceHasher{hasher: blake3.New(32, nil)}
}

// Update feeds data into the hasher.
func (h *InstanceHasher) Update(data []byte) error {
	if h.finalized {
		return errs.ErrAlreadyFinalized
	}
	h.filesize += uint64(len(data))
	_, _ = h.hasher.Write(data)

	return nil
}

// Finalize consumes the hasher and produces the Instance-Code result.
func (h *InstanceHasher) Finalize(bits uint32) (*InstanceCodeResult, error) {
	if h.finalized {
		return nil, errs.ErrAlreadyFinalized
	}
	h.finalized = true

	digest := h.hasher.Sum(nil)
	component, err := codec.EncodeComponent(codec.MTInstance, codec.STNone, codec.V0, bits, digest)
	if err != nil {
		return nil, err
	}

	return &InstanceCodeResult{
		Iscc:     "ISCC:" + component,
		Datahash: fmt.Sprintf("1e20%x", digest),
		Filesize: h.filesize,
	}, nil
}

// DataHasher incrementally computes a Data-Code over a byte stream.
// Finalize produces the same result as GenDataCodeV0 over the concatenation
// of all updates.
//
// The hasher retains the trailing chunk candidate between updates: every
// Update appends to the buffer, chunks it, hashes all complete chunks into
// the feature vector and keeps the final chunk as the prefix of the next
// round. An instance is exclusively owned by its caller; Finalize consumes
// it.
type DataHasher struct {
	features  []uint32
	buf       []byte
	putFeats  func([]uint32)
	putBuf    func([]byte)
	finalized bool
}

// NewDataHasher creates a fresh DataHasher.
func NewDataHasher() *DataHasher {
	features, putFeats := pool.GetUint32Slice(64)
	buf, putBuf := pool.GetByteSlice(2 * cdc.DataAvgChunkSize * 8)

	return &DataHasher{features: features, buf: buf, putFeats: putFeats, putBuf: putBuf}
}

// Update feeds data into the hasher.
func (h *DataHasher) Update(data []byte) error {
	if h.finalized {
		return errs.ErrAlreadyFinalized
	}

	h.buf = append(h.buf, data...)
	chunks, err := cdc.Chunks(h.buf, false, cdc.DataAvgChunkSize)
	if err != nil {
		return err
	}

	// Hash every chunk except the last, which becomes the retained tail.
	tailLen := 0
	for i, chunk := range chunks {
		if i == len(chunks)-1 {
			tailLen = len(chunk)

			break
		}
		h.features = append(h.features, xxHash32.Checksum(chunk, 0))
	}

	// Shift the tail to the front of the buffer, reusing its capacity.
	copy(h.buf, h.buf[len(h.buf)-tailLen:])
	h.buf = h.buf[:tailLen]

	return nil
}

// Finalize consumes the hasher and produces the Data-Code result.
func (h *DataHasher) Finalize(bits uint32) (*DataCodeResult, error) {
	if h.finalized {
		return nil, errs.ErrAlreadyFinalized
	}
	h.finalized = true

	if len(h.buf) > 0 || len(h.features) == 0 {
		h.features = append(h.features, xxHash32.Checksum(h.buf, 0))
	}

	digest := minhash.MinHash256(h.features)
	h.putBuf(h.buf)
	h.putFeats(h.features)
	h.buf, h.features = nil, nil

	component, err := codec.EncodeComponent(codec.MTData, codec.STNone, codec.V0, bits, digest)
	if err != nil {
		return nil, err
	}

	return &DataCodeResult{Iscc: "ISCC:" + component}, nil
}
