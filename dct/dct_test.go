package dct

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iscc/iscc-lib/errs"
)

func TestTransformErrors(t *testing.T) {
	_, err := Transform(nil)
	require.ErrorIs(t, err, errs.ErrInvalidInput)
	_, err = Transform([]float64{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestTransformSingle(t *testing.T) {
	out, err := Transform([]float64{42})
	require.NoError(t, err)
	assert.Equal(t, []float64{42}, out)
}

func TestTransformAllZeros(t *testing.T) {
	out, err := Transform(make([]float64, 64))
	require.NoError(t, err)
	for _, v := range out {
		assert.Zero(t, v)
	}
}

func TestTransformAllOnes(t *testing.T) {
	input := make([]float64, 64)
	for i := range input {
		input[i] = 1
	}
	out, err := Transform(input)
	require.NoError(t, err)
	assert.InDelta(t, 64.0, out[0], 1e-10)
	for _, v := range out[1:] {
		assert.InDelta(t, 0.0, v, 1e-10)
	}
}

func TestTransformUniformExactZeros(t *testing.T) {
	// Uniform input cancels exactly: v[i] - v[n-1-i] == 0.
	input := make([]float64, 32)
	for i := range input {
		input[i] = 255
	}
	out, err := Transform(input)
	require.NoError(t, err)
	assert.Equal(t, 255.0*32, out[0])
	for _, v := range out[1:] {
		assert.Equal(t, 0.0, v)
	}
}

func TestTransformKnownValues(t *testing.T) {
	out, err := Transform([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, out[0], 1e-10)
	assert.InDelta(t, -3.15432202989895, out[1], 1e-10)
	assert.InDelta(t, 0.0, out[2], 1e-10)
	assert.InDelta(t, -0.22417076458398263, out[3], 1e-10)
}

func TestTransformRange(t *testing.T) {
	input := make([]float64, 64)
	for i := range input {
		input[i] = float64(i)
	}
	out, err := Transform(input)
	require.NoError(t, err)
	assert.InDelta(t, 2016.0, out[0], 1e-10)
	assert.False(t, math.IsNaN(out[63]))
}

func BenchmarkTransform(b *testing.B) {
	input := make([]float64, 32)
	for i := range input {
		input[i] = float64(i * 7 % 256)
	}
	b.ResetTimer()
	for b.Loop() {
		_, _ = Transform(input)
	}
}
