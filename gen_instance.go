package iscc

import (
	"fmt"

	"lukechampine.com/blake3"

	"github.com/iscc/iscc-lib/codec"
)

// GenInstanceCodeV0 generates an Instance-Code from raw bytes.
//
// The digest is the BLAKE3 hash of the complete data, capturing exact
// binary identity. The result also carries the hex multihash of the digest
// and the byte length of the input.
func GenInstanceCodeV0(data []byte, bits uint32) (*InstanceCodeResult, error) {
	sum := blake3.Sum256(data)
	component, err := codec.EncodeComponent(codec.MTInstance, codec.STNone, codec.V0, bits, sum[:])
	if err != nil {
		return nil, err
	}

	return &InstanceCodeResult{
		Iscc:     "ISCC:" + component,
		Datahash: fmt.Sprintf("1e20%x", sum[:]),
		Filesize: uint64(len(data)),
	}, nil
}
