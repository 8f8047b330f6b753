package pool

import "sync"

// Slice pools for efficient reuse of typed slices. These reduce allocations
// in the streaming hashers and the image transform, which are the only hot
// paths that repeatedly need large scratch buffers.
var (
	byteSlicePool = sync.Pool{
		New: func() any { return &[]byte{} },
	}
	uint32SlicePool = sync.Pool{
		New: func() any { return &[]uint32{} },
	}
	float64SlicePool = sync.Pool{
		New: func() any { return &[]float64{} },
	}
)

// GetByteSlice retrieves an empty byte slice with at least the given
// capacity from the pool.
//
// The caller must call the returned cleanup function to return the slice to
// the pool once the final value of the slice is no longer referenced.
func GetByteSlice(capacity int) ([]byte, func([]byte)) {
	ptr, _ := byteSlicePool.Get().(*[]byte)
	slice := (*ptr)[:0]
	if cap(slice) < capacity {
		slice = make([]byte, 0, capacity)
	}

	return slice, func(final []byte) {
		final = final[:0]
		*ptr = final
		byteSlicePool.Put(ptr)
	}
}

// GetUint32Slice retrieves an empty uint32 slice with at least the given
// capacity from the pool. See GetByteSlice for the cleanup contract.
func GetUint32Slice(capacity int) ([]uint32, func([]uint32)) {
	ptr, _ := uint32SlicePool.Get().(*[]uint32)
	slice := (*ptr)[:0]
	if cap(slice) < capacity {
		slice = make([]uint32, 0, capacity)
	}

	return slice, func(final []uint32) {
		final = final[:0]
		*ptr = final
		uint32SlicePool.Put(ptr)
	}
}

// GetFloat64Slice retrieves and resizes a float64 slice from the pool.
//
// The returned slice has exactly the requested length. The caller must call
// the cleanup function (typically with defer) to return the slice.
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]float64, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { float64SlicePool.Put(ptr) }
}
