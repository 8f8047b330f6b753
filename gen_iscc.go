package iscc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iscc/iscc-lib/codec"
	"github.com/iscc/iscc-lib/errs"
)

// decodedUnit is one input unit of a composite ISCC-CODE after base32 and
// header decoding.
type decodedUnit struct {
	header codec.Header
	body   []byte
}

// GenIsccCodeV0 combines two or more ISCC-UNITs into a composite ISCC-CODE.
//
// Units are stable-sorted by MainType; the last two must be a Data-Code and
// an Instance-Code. With wide true and exactly those two units, both at
// least 128 bits, the composite uses the Wide SubType and carries 16-byte
// tails; otherwise every unit contributes an 8-byte tail and the SubType is
// taken from the Semantic/Content units (which must agree), or Sum when
// only Data and Instance are present, or IsccNone otherwise.
func GenIsccCodeV0(codes []string, wide bool) (*IsccCodeResult, error) {
	if len(codes) < 2 {
		return nil, fmt.Errorf("%w: at least 2 codes required, got %d", errs.ErrInvalidInput, len(codes))
	}

	units := make([]decodedUnit, 0, len(codes))
	for _, code := range codes {
		clean := strings.TrimPrefix(code, "ISCC:")
		if len(clean) < 16 {
			return nil, fmt.Errorf("%w: code %q is too short (min 16 base32 chars)", errs.ErrInvalidInput, clean)
		}
		raw, err := codec.DecodeBase32(clean)
		if err != nil {
			return nil, err
		}
		header, body, err := codec.DecodeHeader(raw)
		if err != nil {
			return nil, err
		}
		units = append(units, decodedUnit{header: header, body: body})
	}

	sort.SliceStable(units, func(i, j int) bool {
		return units[i].header.MType < units[j].header.MType
	})

	last, prev := units[len(units)-1], units[len(units)-2]
	if prev.header.MType != codec.MTData || last.header.MType != codec.MTInstance {
		return nil, fmt.Errorf("%w: ISCC-CODE requires Data-Code and Instance-Code units", errs.ErrInvalidInput)
	}
	optional := units[:len(units)-2]

	for i := 1; i < len(optional); i++ {
		if optional[i].header.MType == optional[i-1].header.MType {
			return nil, fmt.Errorf("%w: duplicate %s unit", errs.ErrInvalidInput, optional[i].header.MType)
		}
	}

	dataBits := codec.DecodeLength(prev.header.MType, prev.header.Length, prev.header.SType)
	instanceBits := codec.DecodeLength(last.header.MType, last.header.Length, last.header.SType)

	// Wide mode: exactly Data+Instance, both at least 128 bits.
	if wide && len(optional) == 0 && dataBits >= 128 && instanceBits >= 128 {
		if len(prev.body) < 16 || len(last.body) < 16 {
			return nil, fmt.Errorf("%w: truncated ISCC body", errs.ErrInvalidInput)
		}
		header, err := codec.EncodeHeader(codec.MTIscc, codec.STWide, codec.V0, 0)
		if err != nil {
			return nil, err
		}
		body := make([]byte, 0, 32)
		body = append(body, prev.body[:16]...)
		body = append(body, last.body[:16]...)

		return &IsccCodeResult{Iscc: "ISCC:" + codec.EncodeBase32(append(header, body...))}, nil
	}

	// SubType: Semantic/Content units must agree; Sum with only the two
	// mandatory units; IsccNone otherwise.
	stype := codec.STIsccNone
	if len(optional) == 0 {
		stype = codec.STSum
	}
	seenSubType := false
	for _, unit := range optional {
		mt := unit.header.MType
		if mt != codec.MTSemantic && mt != codec.MTContent {
			continue
		}
		if seenSubType && unit.header.SType != stype {
			return nil, fmt.Errorf("%w: mixed SubTypes across Semantic/Content units", errs.ErrInvalidInput)
		}
		stype = unit.header.SType
		seenSubType = true
	}

	optionalTypes := make([]codec.MainType, len(optional))
	for i, unit := range optional {
		optionalTypes[i] = unit.header.MType
	}
	lengthRaw, err := codec.EncodeUnits(optionalTypes)
	if err != nil {
		return nil, err
	}

	header, err := codec.EncodeHeader(codec.MTIscc, stype, codec.V0, lengthRaw)
	if err != nil {
		return nil, err
	}
	body := make([]byte, 0, len(units)*8)
	for _, unit := range units {
		if len(unit.body) < 8 {
			return nil, fmt.Errorf("%w: truncated ISCC body", errs.ErrInvalidInput)
		}
		body = append(body, unit.body[:8]...)
	}

	return &IsccCodeResult{Iscc: "ISCC:" + codec.EncodeBase32(append(header, body...))}, nil
}

// Decompose splits a composite ISCC-CODE (or a concatenation of unit codes)
// into its constituent unit strings. See codec.Decompose.
func Decompose(isccCode string) ([]string, error) {
	return codec.Decompose(isccCode)
}
