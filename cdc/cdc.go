// Package cdc implements gear-hash content-defined chunking.
//
// Chunk boundaries depend only on content, so shifted or locally edited data
// still produces mostly identical chunks. The algorithm is a two-phase
// variant of FastCDC: a strict mask between the minimum size and the center
// point makes early cuts hard, a relaxed mask between the center point and
// the maximum size makes late cuts easy. Cut points are byte-exact functions
// of the fixed gear table and must not change.
package cdc

import (
	"fmt"
	"math"

	"github.com/iscc/iscc-lib/errs"
)

// DataAvgChunkSize is the average chunk size used for Data-Code generation.
const DataAvgChunkSize = 1024

// Params derives the chunking parameters from the target average chunk size.
//
// Returns the minimum chunk size (avg/4), maximum chunk size (avg*8), the
// center threshold between the strict and relaxed phases, and the two bit
// masks used for boundary detection.
func Params(avgSize uint32) (minSize, maxSize, centerSize int, maskS, maskL uint32) {
	minSize = int(avgSize / 4)
	maxSize = int(avgSize * 8)
	offset := minSize + (minSize+1)/2
	centerSize = int(avgSize) - offset
	bits := uint32(math.Round(math.Log2(float64(avgSize))))
	maskS = (1 << (bits + 1)) - 1
	maskL = (1 << (bits - 1)) - 1

	return minSize, maxSize, centerSize, maskS, maskL
}

// Offset finds the cut point within a single buffer.
//
// The rolling pattern is updated as pattern = (pattern >> 1) + gear[byte].
// Phase 1 scans [mi, min(cs, size)) with the strict mask, phase 2 scans
// up to min(ma, size) with the relaxed mask; either phase returns the byte
// index + 1 on the first zero masked pattern. Buffers shorter than mi yield
// the buffer length.
func Offset(buffer []byte, mi, ma, cs int, maskS, maskL uint32) int {
	var pattern uint32
	size := len(buffer)
	i := min(mi, size)

	barrier := min(cs, size)
	for i < barrier {
		pattern = (pattern >> 1) + gearTable[buffer[i]]
		if pattern&maskS == 0 {
			return i + 1
		}
		i++
	}

	barrier = min(ma, size)
	for i < barrier {
		pattern = (pattern >> 1) + gearTable[buffer[i]]
		if pattern&maskL == 0 {
			return i + 1
		}
		i++
	}

	return i
}

// Chunks splits data into content-defined chunks.
//
// The returned chunks are subslices of data and reassemble to it exactly.
// At least one chunk is returned; empty input yields a single empty chunk.
// When utf32 is true, cut points are floored to 4-byte boundaries so that
// UTF-32 code units are never split; a flooring that would produce an empty
// chunk is extended to min(remaining, 4) instead.
func Chunks(data []byte, utf32 bool, avgChunkSize uint32) ([][]byte, error) {
	if avgChunkSize == 0 {
		return nil, fmt.Errorf("%w: avg_chunk_size must be positive", errs.ErrInvalidInput)
	}
	if len(data) == 0 {
		return [][]byte{data[0:0]}, nil
	}

	mi, ma, cs, maskS, maskL := Params(avgChunkSize)
	var chunks [][]byte
	pos := 0
	for pos < len(data) {
		remaining := data[pos:]
		cutPoint := Offset(remaining, mi, ma, cs, maskS, maskL)

		if utf32 {
			cutPoint -= cutPoint % 4
			if cutPoint == 0 {
				cutPoint = min(len(remaining), 4)
			}
		}

		chunks = append(chunks, data[pos:pos+cutPoint])
		pos += cutPoint
	}

	return chunks, nil
}
