// Package textutil provides the Unicode text normalization used by the Meta
// and Text codes.
//
// Category classification is table-driven from the Go Unicode database
// (golang.org/x/text supplies the normalization forms, the standard library
// unicode package supplies the general categories and White_Space).
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// newlines are the characters normalized to '\n' by Clean. CRLF pairs
// collapse to a single newline.
var newlines = map[rune]bool{
	'\n':     true, // LINE FEED
	'\v':     true, // VERTICAL TAB
	'\f':     true, // FORM FEED
	'\r':     true, // CARRIAGE RETURN
	'\u0085': true, // NEXT LINE
	'\u2028': true, // LINE SEPARATOR
	'\u2029': true, // PARAGRAPH SEPARATOR
}

var assignedCategories = []*unicode.RangeTable{
	unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Z, unicode.C,
}

// isCategoryC reports whether r is in Unicode category C. Unassigned code
// points (Cn) count as C; the stdlib unicode.C table covers only Cc, Cf,
// Co and Cs.
func isCategoryC(r rune) bool {
	if unicode.In(r, unicode.C) {
		return true
	}

	return !unicode.In(r, assignedCategories...)
}

// isCategoryCMP reports whether r is in Unicode category C, M or P.
func isCategoryCMP(r rune) bool {
	if unicode.In(r, unicode.M, unicode.P) {
		return true
	}

	return isCategoryC(r)
}

// Clean normalizes text for display.
//
// Applies NFKC, replaces every newline variant (including CRLF pairs) with a
// single '\n', drops all other category-C characters, collapses runs of
// consecutive empty lines to at most one, and trims surrounding whitespace.
func Clean(text string) string {
	text = norm.NFKC.String(text)

	var b strings.Builder
	b.Grow(len(text))
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case newlines[r]:
			if r == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			b.WriteByte('\n')
		case isCategoryC(r):
			// drop control characters
		default:
			b.WriteRune(r)
		}
	}

	lines := strings.Split(b.String(), "\n")
	result := make([]string, 0, len(lines))
	prevEmpty := false
	for _, line := range lines {
		empty := strings.TrimSpace(line) == ""
		if empty {
			if prevEmpty {
				continue
			}
			prevEmpty = true
		} else {
			prevEmpty = false
		}
		result = append(result, line)
	}

	return strings.TrimSpace(strings.Join(result, "\n"))
}

// RemoveNewlines collapses all whitespace runs (including newlines) into
// single spaces, producing a single normalized line.
func RemoveNewlines(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Trim shortens text so its UTF-8 encoding does not exceed nbytes, then
// strips surrounding whitespace. A multi-byte character that would be split
// by the byte limit is dropped entirely.
func Trim(text string, nbytes int) string {
	if len(text) <= nbytes {
		return strings.TrimSpace(text)
	}

	trimmed := text[:nbytes]
	for len(trimmed) > 0 {
		r, size := utf8.DecodeLastRuneInString(trimmed)
		if r != utf8.RuneError || size != 1 {
			break
		}
		trimmed = trimmed[:len(trimmed)-1]
	}

	return strings.TrimSpace(trimmed)
}

var lowercaser = cases.Lower(language.Und)

// Collapse normalizes and simplifies text for similarity hashing.
//
// Applies NFD, lowercases, removes whitespace and every character in
// Unicode categories C, M and P, then recombines with NFKC.
func Collapse(text string) string {
	decomposed := lowercaser.String(norm.NFD.String(text))

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.IsSpace(r) || isCategoryCMP(r) {
			continue
		}
		b.WriteRune(r)
	}

	return norm.NFKC.String(b.String())
}
