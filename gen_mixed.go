package iscc

import (
	"fmt"
	"strings"

	"github.com/iscc/iscc-lib/codec"
	"github.com/iscc/iscc-lib/errs"
	"github.com/iscc/iscc-lib/simhash"
)

// GenMixedCodeV0 generates a Content-Code Mixed from two or more
// Content-Code strings.
//
// Each code is decoded and reduced to a bits/8-byte canonical form: the
// first raw header byte (which preserves the content type) followed by up
// to bits/8 - 1 body bytes, zero-padded when shorter. The SimHash of these
// equal-length digests becomes the Mixed-Code body.
func GenMixedCodeV0(codes []string, bits uint32) (*MixedCodeResult, error) {
	if len(codes) < 2 {
		return nil, fmt.Errorf("%w: at least 2 codes required, got %d", errs.ErrInvalidInput, len(codes))
	}
	if bits < 32 || bits > 256 || bits%32 != 0 {
		return nil, fmt.Errorf("%w: invalid bit length %d for mixed code", errs.ErrInvalidInput, bits)
	}

	nbytes := int(bits / 8)
	digests := make([][]byte, len(codes))
	for i, code := range codes {
		clean := strings.TrimPrefix(code, "ISCC:")
		raw, err := codec.DecodeBase32(clean)
		if err != nil {
			return nil, err
		}
		header, body, err := codec.DecodeHeader(raw)
		if err != nil {
			return nil, err
		}
		if header.MType != codec.MTContent {
			return nil, fmt.Errorf("%w: %s is not a Content-Code (MainType %s)",
				errs.ErrInvalidInput, code, header.MType)
		}

		digest := make([]byte, nbytes)
		digest[0] = raw[0]
		copy(digest[1:], body)
		digests[i] = digest
	}

	digest, err := simhash.SimHash(digests)
	if err != nil {
		return nil, err
	}

	component, err := codec.EncodeComponent(codec.MTContent, codec.STMixed, codec.V0, bits, digest)
	if err != nil {
		return nil, err
	}

	parts := make([]string, len(codes))
	copy(parts, codes)

	return &MixedCodeResult{Iscc: "ISCC:" + component, Parts: parts}, nil
}
