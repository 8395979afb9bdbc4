//go:build !linux

package mem

// Map falls back to a heap region on platforms without the mmap provider.
func Map(size int) (*Region, error) { return Heap(size), nil }

// MapHuge falls back to a heap region on platforms without hugepage support.
func MapHuge(size int) (*Region, error) { return Heap(size), nil }
