package codec

import (
	"encoding/base32"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/iscc/iscc-lib/errs"
)

var base32NoPad = base32.StdEncoding.WithPadding(base32.NoPadding)

// EncodeBase32 encodes data as RFC 4648 base32, uppercase, without padding.
// This is the canonical rendering of ISCC header+body bytes.
func EncodeBase32(data []byte) string {
	return base32NoPad.EncodeToString(data)
}

// DecodeBase32 decodes a base32 string. Lowercase and mixed-case input is
// accepted; padding is not expected.
func DecodeBase32(code string) ([]byte, error) {
	decoded, err := base32NoPad.DecodeString(strings.ToUpper(code))
	if err != nil {
		return nil, fmt.Errorf("%w: base32 decode error: %v", errs.ErrInvalidInput, err)
	}

	return decoded, nil
}

// EncodeBase64 encodes data as RFC 4648 section 5 base64url without padding.
func EncodeBase64(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}
