package simhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iscc/iscc-lib/errs"
)

func repeated(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}

	return out
}

func TestSimHashEmpty(t *testing.T) {
	digest, err := SimHash(nil)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 32), digest)
}

func TestSimHashSingleDigest(t *testing.T) {
	input := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	digest, err := SimHash([][]byte{input})
	require.NoError(t, err)
	assert.Equal(t, input, digest)
}

func TestSimHashIdenticalDigests(t *testing.T) {
	d := repeated(0xFF, 32)
	digest, err := SimHash([][]byte{d, d, d})
	require.NoError(t, err)
	assert.Equal(t, repeated(0xFF, 32), digest)
}

func TestSimHashComplementaryDigests(t *testing.T) {
	// Ties are set to one: all-ones and all-zeros hash to all-ones.
	digest, err := SimHash([][]byte{repeated(0xFF, 32), repeated(0x00, 32)})
	require.NoError(t, err)
	assert.Equal(t, repeated(0xFF, 32), digest)
}

func TestSimHashMajority(t *testing.T) {
	digest, err := SimHash([][]byte{{0b11110000}, {0b11000000}, {0b10000000}})
	require.NoError(t, err)
	// Bit counts: 3, 2, 1, 1, 0, 0, 0, 0. Threshold: count*2 >= 3.
	assert.Equal(t, []byte{0b11000000}, digest)
}

func TestSimHashUnequalLengths(t *testing.T) {
	_, err := SimHash([][]byte{repeated(0x00, 32), repeated(0x00, 16)})
	require.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestSlidingWindow(t *testing.T) {
	tests := []struct {
		name     string
		seq      string
		width    int
		expected []string
	}{
		{"basic", "Hello", 4, []string{"Hell", "ello"}},
		{"shorter than width", "ab", 3, []string{"ab"}},
		{"exact width", "abc", 3, []string{"abc"}},
		{"empty", "", 3, []string{""}},
		{"unicode", "äöü", 2, []string{"äö", "öü"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SlidingWindow(tt.seq, tt.width)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSlidingWindowWidthTooSmall(t *testing.T) {
	_, err := SlidingWindow("test", 1)
	require.ErrorIs(t, err, errs.ErrInvalidInput)
	_, err = SlidingWindowBytes([]byte("test"), 0)
	require.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestSlidingWindowBytes(t *testing.T) {
	got, err := SlidingWindowBytes([]byte{1, 2, 3, 4}, 3)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{1, 2, 3}, {2, 3, 4}}, got)

	short, err := SlidingWindowBytes([]byte{1, 2}, 4)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{1, 2}}, short)
}

func BenchmarkSimHash(b *testing.B) {
	digests := make([][]byte, 256)
	for i := range digests {
		d := make([]byte, 32)
		for j := range d {
			d[j] = byte(i * j)
		}
		digests[i] = d
	}
	b.ResetTimer()
	for b.Loop() {
		_, _ = SimHash(digests)
	}
}
