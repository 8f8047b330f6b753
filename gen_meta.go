package iscc

import (
	"encoding/base64"
	"fmt"
	"strings"

	"lukechampine.com/blake3"

	"github.com/iscc/iscc-lib/codec"
	"github.com/iscc/iscc-lib/errs"
	"github.com/iscc/iscc-lib/simhash"
	"github.com/iscc/iscc-lib/textutil"
)

// metaNgramWidth is the sliding window width for name and description
// n-grams; metaNgramWidthBytes is the width for raw metadata payloads.
const (
	metaNgramWidth      = 3
	metaNgramWidthBytes = 4
)

// GenMetaCodeV0 generates a Meta-Code from a name with optional description
// and metadata.
//
// The name is normalized (clean, newline removal, trim to MetaTrimName
// bytes) and must not be empty afterwards. The description is cleaned and
// trimmed to MetaTrimDescription bytes. Meta may be a Data-URL (its base64
// payload is decoded) or a JSON document (canonicalized and wrapped as a
// Data-URL); pass "" for absent description or meta.
//
// The similarity digest is a SimHash over BLAKE3-hashed character n-grams
// of the collapsed name, interleaved in 4-byte stripes with the digest of
// the metadata payload (byte n-grams) or of the collapsed description when
// present.
func GenMetaCodeV0(name, description, meta string, bits uint32) (*MetaCodeResult, error) {
	name = textutil.Trim(textutil.RemoveNewlines(textutil.Clean(name)), MetaTrimName)
	if name == "" {
		return nil, fmt.Errorf("%w: name is empty after normalization", errs.ErrInvalidInput)
	}

	desc := textutil.Trim(textutil.Clean(description), MetaTrimDescription)

	var payload []byte
	var metaURL string
	if meta != "" {
		var err error
		payload, metaURL, err = decodeMetaInput(meta)
		if err != nil {
			return nil, err
		}
		if len(payload) > MetaTrimMeta {
			return nil, fmt.Errorf("%w: metadata payload exceeds %d bytes", errs.ErrInvalidInput, MetaTrimMeta)
		}
	}

	nameDigest, err := softHashText(textutil.Collapse(name))
	if err != nil {
		return nil, err
	}

	var digest []byte
	var metahash string
	switch {
	case payload != nil:
		metaDigest, err := softHashBytes(payload)
		if err != nil {
			return nil, err
		}
		digest = interleaveStripes(nameDigest, metaDigest)
		metahash = multiHashBlake3(payload)
	case desc != "":
		descDigest, err := softHashText(textutil.Collapse(desc))
		if err != nil {
			return nil, err
		}
		digest = interleaveStripes(nameDigest, descDigest)
		metahash = multiHashBlake3([]byte(strings.TrimSpace(name + " " + desc)))
	default:
		digest = nameDigest
		metahash = multiHashBlake3([]byte(name))
	}

	component, err := codec.EncodeComponent(codec.MTMeta, codec.STNone, codec.V0, bits, digest)
	if err != nil {
		return nil, err
	}

	return &MetaCodeResult{
		Iscc:        "ISCC:" + component,
		Name:        name,
		Description: desc,
		Meta:        metaURL,
		Metahash:    metahash,
	}, nil
}

// decodeMetaInput resolves the meta argument into payload bytes and the
// Data-URL representation carried in the result.
func decodeMetaInput(meta string) (payload []byte, metaURL string, err error) {
	if strings.HasPrefix(meta, "data:") {
		_, b64, found := strings.Cut(meta, ",")
		if !found {
			return nil, "", fmt.Errorf("%w: malformed Data-URL: missing comma", errs.ErrInvalidInput)
		}
		payload, err = base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return nil, "", fmt.Errorf("%w: malformed Data-URL payload: %v", errs.ErrInvalidInput, err)
		}

		return payload, meta, nil
	}

	metaURL, err = JSONToDataURL(meta)
	if err != nil {
		return nil, "", err
	}
	_, b64, _ := strings.Cut(metaURL, ",")
	payload, err = base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, "", fmt.Errorf("%w: malformed Data-URL payload: %v", errs.ErrInvalidInput, err)
	}

	return payload, metaURL, nil
}

// softHashText computes the SimHash over BLAKE3 digests of character
// n-grams of already-collapsed text.
func softHashText(collapsed string) ([]byte, error) {
	ngrams, err := simhash.SlidingWindow(collapsed, metaNgramWidth)
	if err != nil {
		return nil, err
	}
	digests := make([][]byte, len(ngrams))
	for i, ngram := range ngrams {
		sum := blake3.Sum256([]byte(ngram))
		digests[i] = sum[:]
	}

	return simhash.SimHash(digests)
}

// softHashBytes computes the SimHash over BLAKE3 digests of byte n-grams of
// a raw metadata payload.
func softHashBytes(payload []byte) ([]byte, error) {
	ngrams, err := simhash.SlidingWindowBytes(payload, metaNgramWidthBytes)
	if err != nil {
		return nil, err
	}
	digests := make([][]byte, len(ngrams))
	for i, ngram := range ngrams {
		sum := blake3.Sum256(ngram)
		digests[i] = sum[:]
	}

	return simhash.SimHash(digests)
}

// interleaveStripes combines the first 16 bytes of two digests in 4-byte
// stripes (a-stripe, b-stripe, ...) into a 32-byte digest.
func interleaveStripes(a, b []byte) []byte {
	out := make([]byte, 32)
	for chunk := 0; chunk < 4; chunk++ {
		copy(out[chunk*8:], a[chunk*4:chunk*4+4])
		copy(out[chunk*8+4:], b[chunk*4:chunk*4+4])
	}

	return out
}

// multiHashBlake3 returns the hex BLAKE3 multihash: the "1e20" prefix
// (BLAKE3 multicodec, 32-byte length) followed by the hex digest.
func multiHashBlake3(data []byte) string {
	sum := blake3.Sum256(data)

	return fmt.Sprintf("1e20%x", sum[:])
}
