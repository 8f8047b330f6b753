package iscc

import (
	"fmt"
	"sort"

	"github.com/iscc/iscc-lib/codec"
	"github.com/iscc/iscc-lib/dct"
	"github.com/iscc/iscc-lib/errs"
	"github.com/iscc/iscc-lib/internal/pool"
)

const imageSide = 32

// GenImageCodeV0 generates a Content-Code Image from a 32x32 grayscale
// pixel array (1024 values, row-major).
//
// The pixel matrix is transformed with a 2-D DCT; four overlapping 8x8
// low-frequency blocks (upper-left corners at (0,0), (1,0), (0,1), (1,1))
// are thresholded against their own median to produce up to 256 bits.
func GenImageCodeV0(pixels []uint8, bits uint32) (*ImageCodeResult, error) {
	if len(pixels) != imageSide*imageSide {
		return nil, fmt.Errorf("%w: expected %d pixels, got %d",
			errs.ErrInvalidInput, imageSide*imageSide, len(pixels))
	}
	if bits > 256 {
		return nil, fmt.Errorf("%w: invalid bit length %d for image code (max 256)", errs.ErrInvalidInput, bits)
	}

	digest, err := softHashImageV0(pixels)
	if err != nil {
		return nil, err
	}

	component, err := codec.EncodeComponent(codec.MTContent, codec.STImage, codec.V0, bits, digest)
	if err != nil {
		return nil, err
	}

	return &ImageCodeResult{Iscc: "ISCC:" + component}, nil
}

// softHashImageV0 computes the 256-bit perceptual image digest.
func softHashImageV0(pixels []uint8) ([]byte, error) {
	matrix, cleanup := pool.GetFloat64Slice(imageSide * imageSide)
	defer cleanup()

	// Row-wise DCT.
	row := make([]float64, imageSide)
	for r := 0; r < imageSide; r++ {
		for c := 0; c < imageSide; c++ {
			row[c] = float64(pixels[r*imageSide+c])
		}
		transformed, err := dct.Transform(row)
		if err != nil {
			return nil, err
		}
		copy(matrix[r*imageSide:], transformed)
	}

	// Column-wise DCT on the transposed rows.
	col := make([]float64, imageSide)
	for c := 0; c < imageSide; c++ {
		for r := 0; r < imageSide; r++ {
			col[r] = matrix[r*imageSide+c]
		}
		transformed, err := dct.Transform(col)
		if err != nil {
			return nil, err
		}
		for r := 0; r < imageSide; r++ {
			matrix[r*imageSide+c] = transformed[r]
		}
	}

	// Threshold four overlapping 8x8 low-frequency blocks against their
	// median. Block corners (x, y) follow the reference slice order.
	corners := [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	digest := make([]byte, 32)
	bitIndex := 0
	flat := make([]float64, 64)
	sorted := make([]float64, 64)
	for _, corner := range corners {
		x, y := corner[0], corner[1]
		i := 0
		for r := y; r < y+8; r++ {
			for c := x; c < x+8; c++ {
				flat[i] = matrix[r*imageSide+c]
				i++
			}
		}
		copy(sorted, flat)
		sort.Float64s(sorted)
		median := (sorted[31] + sorted[32]) / 2.0
		for _, v := range flat {
			if v > median {
				digest[bitIndex/8] |= 1 << (7 - bitIndex%8)
			}
			bitIndex++
		}
	}

	return digest, nil
}
