package iscc

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/iscc/iscc-lib/errs"
)

// JSONToDataURL canonicalizes a JSON document and wraps it as a Data-URL.
//
// Canonicalization sorts object keys recursively and serializes with
// compact separators; numbers are preserved verbatim. The media type is
// application/ld+json when the document has a top-level "@context" key,
// application/json otherwise. The payload uses standard base64 (RFC 4648
// section 4) with padding, matching the data: URL convention.
func JSONToDataURL(input string) (string, error) {
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return "", fmt.Errorf("%w: invalid JSON metadata: %v", errs.ErrInvalidInput, err)
	}
	if dec.More() {
		return "", fmt.Errorf("%w: invalid JSON metadata: trailing data", errs.ErrInvalidInput)
	}

	var b strings.Builder
	if err := writeCanonicalJSON(&b, doc); err != nil {
		return "", err
	}

	mediaType := "application/json"
	if obj, ok := doc.(map[string]any); ok {
		if _, found := obj["@context"]; found {
			mediaType = "application/ld+json"
		}
	}

	payload := base64.StdEncoding.EncodeToString([]byte(b.String()))

	return "data:" + mediaType + ";base64," + payload, nil
}

// writeCanonicalJSON serializes a decoded JSON value with recursively
// sorted keys and compact separators. This matches the reference
// serialization, which is a sort-by-key rendering rather than strict
// RFC 8785 JCS.
func writeCanonicalJSON(b *strings.Builder, v any) error {
	switch val := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		if val {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case json.Number:
		b.WriteString(string(val))
	case string:
		writeJSONString(b, val)
	case []any:
		b.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeCanonicalJSON(b, item); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			writeJSONString(b, k)
			b.WriteByte(':')
			if err := writeCanonicalJSON(b, val[k]); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	default:
		return fmt.Errorf("%w: unsupported JSON value type %T", errs.ErrInvalidInput, v)
	}

	return nil
}

// writeJSONString writes a JSON string literal without HTML escaping:
// backslash, double quote and the short control escapes, all other control
// characters as \u00xx, everything else verbatim UTF-8.
func writeJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}
