package wtahash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iscc/iscc-lib/errs"
)

func TestWtaHashAllZeros(t *testing.T) {
	// All comparisons are >=, so every output bit is 0.
	out, err := WtaHash(make([]int64, VectorSize), 64)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 8), out)
}

func TestWtaHashRange(t *testing.T) {
	vec := make([]int64, VectorSize)
	for i := range vec {
		vec[i] = int64(i)
	}
	out, err := WtaHash(vec, 64)
	require.NoError(t, err)
	require.Len(t, out, 8)
	assert.NotEqual(t, make([]byte, 8), out)

	// First pair is (292, 16): 292 >= 16, so the first bit is 0.
	assert.Zero(t, out[0]&0x80)
}

func TestWtaHash256Bits(t *testing.T) {
	vec := make([]int64, VectorSize)
	for i := range vec {
		vec[i] = int64(VectorSize - i)
	}
	out, err := WtaHash(vec, 256)
	require.NoError(t, err)
	assert.Len(t, out, 32)
}

func TestWtaHashShortVector(t *testing.T) {
	_, err := WtaHash(make([]int64, 100), 64)
	require.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestWtaHashInvalidBits(t *testing.T) {
	vec := make([]int64, VectorSize)
	for _, bits := range []uint32{0, 3, 512} {
		_, err := WtaHash(vec, bits)
		require.ErrorIs(t, err, errs.ErrInvalidInput, "bits=%d", bits)
	}
}

func TestPermutationTable(t *testing.T) {
	assert.Len(t, permutations, 256)
	for i, pair := range permutations {
		assert.Less(t, pair[0], VectorSize, "pair %d index i", i)
		assert.Less(t, pair[1], VectorSize, "pair %d index j", i)
	}
	assert.Equal(t, [2]int{292, 16}, permutations[0])
	assert.Equal(t, [2]int{28, 351}, permutations[255])
}
