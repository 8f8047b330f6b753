package simhash

import (
	"fmt"

	"github.com/iscc/iscc-lib/errs"
)

// SlidingWindow yields overlapping substrings of width Unicode code points,
// advancing one code point at a time. Input shorter than the width yields a
// single element equal to the input. Width must be at least 2.
func SlidingWindow(seq string, width int) ([]string, error) {
	if width < 2 {
		return nil, fmt.Errorf("%w: sliding window width must be 2 or bigger", errs.ErrInvalidInput)
	}

	chars := []rune(seq)
	n := len(chars)
	count := n - width + 1
	if count < 1 {
		count = 1
	}
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		end := min(i+width, n)
		out = append(out, string(chars[i:end]))
	}

	return out, nil
}

// SlidingWindowBytes yields overlapping byte subslices of the given width,
// advancing one byte at a time. The returned slices alias seq. Input shorter
// than the width yields a single element equal to the input. Width must be
// at least 2.
func SlidingWindowBytes(seq []byte, width int) ([][]byte, error) {
	if width < 2 {
		return nil, fmt.Errorf("%w: sliding window width must be 2 or bigger", errs.ErrInvalidInput)
	}

	n := len(seq)
	count := n - width + 1
	if count < 1 {
		count = 1
	}
	out := make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		end := min(i+width, n)
		out = append(out, seq[i:end])
	}

	return out, nil
}
