// Package codec implements the ISCC header and component encoding defined by
// ISO 24138:2024.
//
// An ISCC-UNIT is a self-describing header (MainType, SubType, Version and a
// length field, each encoded as a variable-length nibble sequence) followed
// by a similarity or integrity digest body. Units and composite ISCC-CODEs
// are rendered as uppercase RFC 4648 base32 without padding.
//
// The package provides the header codec (EncodeHeader/DecodeHeader), the
// per-MainType length mapping (EncodeLength/DecodeLength), the optional-unit
// bitfield used by composite codes (EncodeUnits/DecodeUnits), the unit
// envelope (EncodeComponent) and the composite splitter (Decompose).
package codec

import (
	"fmt"
	"strings"

	"github.com/iscc/iscc-lib/errs"
)

// MainType identifies the ISCC unit class. Integer values are fixed by the
// standard and stable across versions.
type MainType uint8

// MainType values.
const (
	MTMeta     MainType = 0
	MTSemantic MainType = 1
	MTContent  MainType = 2
	MTData     MainType = 3
	MTInstance MainType = 4
	MTIscc     MainType = 5
	MTID       MainType = 6
	MTFlake    MainType = 7
)

// ParseMainType validates and converts a raw integer to a MainType.
func ParseMainType(v uint32) (MainType, error) {
	if v > 7 {
		return 0, fmt.Errorf("%w: invalid MainType: %d", errs.ErrInvalidInput, v)
	}

	return MainType(v), nil
}

// String returns the canonical name of the MainType.
func (mt MainType) String() string {
	switch mt {
	case MTMeta:
		return "META"
	case MTSemantic:
		return "SEMANTIC"
	case MTContent:
		return "CONTENT"
	case MTData:
		return "DATA"
	case MTInstance:
		return "INSTANCE"
	case MTIscc:
		return "ISCC"
	case MTID:
		return "ID"
	case MTFlake:
		return "FLAKE"
	default:
		return fmt.Sprintf("MainType(%d)", uint8(mt))
	}
}

// SubType qualifies a MainType. The interpretation is context dependent:
// value 0 means "no subtype" in general and "Text" in Content/Semantic
// context; values 5-7 are only meaningful on composite ISCC-CODEs.
type SubType uint8

// SubType values.
const (
	STNone     SubType = 0
	STImage    SubType = 1
	STAudio    SubType = 2
	STVideo    SubType = 3
	STMixed    SubType = 4
	STSum      SubType = 5
	STIsccNone SubType = 6
	STWide     SubType = 7

	// STText aliases STNone in Content-Code and Semantic-Code context.
	STText = STNone
)

// ParseSubType validates and converts a raw integer to a SubType.
func ParseSubType(v uint32) (SubType, error) {
	if v > 7 {
		return 0, fmt.Errorf("%w: invalid SubType: %d", errs.ErrInvalidInput, v)
	}

	return SubType(v), nil
}

// Version identifies the ISCC algorithm generation.
type Version uint8

// V0 is the only version currently defined.
const V0 Version = 0

// ParseVersion validates and converts a raw integer to a Version.
func ParseVersion(v uint32) (Version, error) {
	if v != 0 {
		return 0, fmt.Errorf("%w: invalid Version: %d", errs.ErrInvalidInput, v)
	}

	return V0, nil
}

// Header holds the four decoded ISCC header fields. Length carries the raw
// header length field; use DecodeLength to map it to a bit count.
type Header struct {
	MType   MainType
	SType   SubType
	Version Version
	Length  uint32
}

// EncodeHeader encodes the four ISCC header fields into bytes.
//
// Each field is written as a varnibble, the concatenation is right-padded
// with zero bits to a byte boundary. The result is 2 bytes in the common
// case where every field fits a single nibble.
func EncodeHeader(mtype MainType, stype SubType, version Version, length uint32) ([]byte, error) {
	var w bitWriter
	for _, v := range [4]uint32{uint32(mtype), uint32(stype), uint32(version), length} {
		if err := writeVarnibble(&w, v); err != nil {
			return nil, err
		}
	}

	return w.bytes(), nil
}

// DecodeHeader decodes an ISCC header from data.
//
// Consumes four varnibbles, strips the 4-bit zero pad when the running bit
// offset is not byte-aligned, and returns the header together with the tail
// bytes that follow it.
func DecodeHeader(data []byte) (Header, []byte, error) {
	bitPos := 0
	var fields [4]uint32
	for i := range fields {
		v, consumed, err := readVarnibble(data, bitPos)
		if err != nil {
			return Header{}, nil, err
		}
		fields[i] = v
		bitPos += consumed
	}

	// Each varnibble is a multiple of 4 bits, so misalignment is always
	// exactly one zero nibble.
	if bitPos%8 != 0 && bitPos+4 <= len(data)*8 && extractBits(data, bitPos, 4) == 0 {
		bitPos += 4
	}

	tailStart := (bitPos + 7) / 8
	var tail []byte
	if tailStart < len(data) {
		tail = data[tailStart:]
	}

	mtype, err := ParseMainType(fields[0])
	if err != nil {
		return Header{}, nil, err
	}
	stype, err := ParseSubType(fields[1])
	if err != nil {
		return Header{}, nil, err
	}
	version, err := ParseVersion(fields[2])
	if err != nil {
		return Header{}, nil, err
	}

	return Header{MType: mtype, SType: stype, Version: version, Length: fields[3]}, tail, nil
}

// EncodeLength maps a digest bit length to the raw header length field.
//
// Semantics depend on the MainType:
//   - META/SEMANTIC/CONTENT/DATA/INSTANCE/FLAKE: bits/32 - 1
//   - ISCC: pass-through 0-7 (unit composition bitfield)
//   - ID: (bits - 64) / 8
func EncodeLength(mtype MainType, bits uint32) (uint32, error) {
	switch mtype {
	case MTMeta, MTSemantic, MTContent, MTData, MTInstance, MTFlake:
		if bits >= 32 && bits%32 == 0 {
			return bits/32 - 1, nil
		}

		return 0, fmt.Errorf("%w: invalid length %d for %s (must be multiple of 32, >= 32)",
			errs.ErrInvalidInput, bits, mtype)
	case MTIscc:
		if bits <= 7 {
			return bits, nil
		}

		return 0, fmt.Errorf("%w: invalid length %d for ISCC (must be 0-7)", errs.ErrInvalidInput, bits)
	case MTID:
		if bits >= 64 && bits <= 96 && (bits-64)%8 == 0 {
			return (bits - 64) / 8, nil
		}

		return 0, fmt.Errorf("%w: invalid length %d for ID (must be 64-96, step 8)", errs.ErrInvalidInput, bits)
	default:
		return 0, fmt.Errorf("%w: invalid MainType: %d", errs.ErrInvalidInput, mtype)
	}
}

// DecodeLength maps a raw header length field back to the digest bit length.
// Inverse of EncodeLength; for composite ISCC-CODEs the SubType decides
// between Wide (256) and the popcount-based mapping.
func DecodeLength(mtype MainType, length uint32, stype SubType) uint32 {
	switch mtype {
	case MTIscc:
		if stype == STWide {
			return 256
		}
		popcount := uint32(0)
		for v := length; v != 0; v >>= 1 {
			popcount += v & 1
		}

		return popcount*64 + 128
	case MTID:
		return length*8 + 64
	default:
		return (length + 1) * 32
	}
}

// EncodeUnits encodes the optional unit MainTypes of a composite ISCC-CODE
// as a 3-bit combination index: bit 0 = Content, bit 1 = Semantic,
// bit 2 = Meta. Data and Instance are mandatory units and are rejected.
func EncodeUnits(mainTypes []MainType) (uint32, error) {
	var result uint32
	for _, mt := range mainTypes {
		switch mt {
		case MTContent:
			result |= 1
		case MTSemantic:
			result |= 2
		case MTMeta:
			result |= 4
		default:
			return 0, fmt.Errorf("%w: %s is not a valid optional unit type", errs.ErrInvalidInput, mt)
		}
	}

	return result, nil
}

// DecodeUnits decodes a unit combination index (0-7) into the optional
// MainTypes it represents, in MainType discriminant order.
func DecodeUnits(unitID uint32) ([]MainType, error) {
	if unitID > 7 {
		return nil, fmt.Errorf("%w: invalid unit_id: %d (must be 0-7)", errs.ErrInvalidInput, unitID)
	}

	result := make([]MainType, 0, 3)
	if unitID&4 != 0 {
		result = append(result, MTMeta)
	}
	if unitID&2 != 0 {
		result = append(result, MTSemantic)
	}
	if unitID&1 != 0 {
		result = append(result, MTContent)
	}

	return result, nil
}

// EncodeComponent encodes an ISCC-UNIT header and digest body as a base32
// string without the "ISCC:" prefix.
//
// The leading bits/8 digest bytes become the body; shorter digests are
// truncated to what is available. Composite ISCC-CODEs are not units and
// are rejected.
func EncodeComponent(mtype MainType, stype SubType, version Version, bits uint32, digest []byte) (string, error) {
	if mtype == MTIscc {
		return "", fmt.Errorf("%w: ISCC MainType is not a unit; use GenIsccCodeV0 instead", errs.ErrInvalidInput)
	}

	encodedLength, err := EncodeLength(mtype, bits)
	if err != nil {
		return "", err
	}
	header, err := EncodeHeader(mtype, stype, version, encodedLength)
	if err != nil {
		return "", err
	}

	nbytes := int(bits / 8)
	if nbytes > len(digest) {
		nbytes = len(digest)
	}
	component := make([]byte, 0, len(header)+nbytes)
	component = append(component, header...)
	component = append(component, digest[:nbytes]...)

	return EncodeBase32(component), nil
}

// Decompose splits a composite ISCC-CODE or a concatenated sequence of
// ISCC-UNITs into individual base32 unit strings (without "ISCC:" prefix).
//
// An optional "ISCC:" prefix on the input is stripped. For a composite code
// the optional-unit tails are re-encoded as standalone 64-bit units (the
// Meta unit's SubType is reset to None, Semantic/Content units inherit the
// composite's SubType) followed by the Data and Instance units.
func Decompose(isccCode string) ([]string, error) {
	clean := strings.TrimPrefix(isccCode, "ISCC:")
	raw, err := DecodeBase32(clean)
	if err != nil {
		return nil, err
	}

	var components []string
	for len(raw) > 0 {
		header, body, err := DecodeHeader(raw)
		if err != nil {
			return nil, err
		}

		// Standard ISCC-UNIT with tail continuation.
		if header.MType != MTIscc {
			bits := DecodeLength(header.MType, header.Length, header.SType)
			nbytes := int(bits / 8)
			if len(body) < nbytes {
				return nil, fmt.Errorf("%w: truncated ISCC body: expected %d bytes, got %d",
					errs.ErrInvalidInput, nbytes, len(body))
			}
			code, err := EncodeComponent(header.MType, header.SType, header.Version, bits, body[:nbytes])
			if err != nil {
				return nil, err
			}
			components = append(components, code)
			raw = body[nbytes:]

			continue
		}

		// Wide composite: 128-bit Data-Code + 128-bit Instance-Code.
		if header.SType == STWide {
			if len(body) < 32 {
				return nil, fmt.Errorf("%w: truncated ISCC body: expected 32 bytes, got %d",
					errs.ErrInvalidInput, len(body))
			}
			dataCode, err := EncodeComponent(MTData, STNone, header.Version, 128, body[:16])
			if err != nil {
				return nil, err
			}
			instanceCode, err := EncodeComponent(MTInstance, STNone, header.Version, 128, body[16:32])
			if err != nil {
				return nil, err
			}
			components = append(components, dataCode, instanceCode)

			break
		}

		mainTypes, err := DecodeUnits(header.Length)
		if err != nil {
			return nil, err
		}
		expectedBody := len(mainTypes)*8 + 16
		if len(body) < expectedBody {
			return nil, fmt.Errorf("%w: truncated ISCC body: expected %d bytes, got %d",
				errs.ErrInvalidInput, expectedBody, len(body))
		}

		// Rebuild the dynamic units (Meta, Semantic, Content).
		for idx, mtype := range mainTypes {
			stype := header.SType
			if mtype == MTMeta {
				stype = STNone
			}
			code, err := EncodeComponent(mtype, stype, header.Version, 64, body[idx*8:])
			if err != nil {
				return nil, err
			}
			components = append(components, code)
		}

		// Rebuild the static units (Data-Code, Instance-Code).
		dataCode, err := EncodeComponent(MTData, STNone, header.Version, 64, body[len(body)-16:len(body)-8])
		if err != nil {
			return nil, err
		}
		instanceCode, err := EncodeComponent(MTInstance, STNone, header.Version, 64, body[len(body)-8:])
		if err != nil {
			return nil, err
		}
		components = append(components, dataCode, instanceCode)

		break
	}

	return components, nil
}
