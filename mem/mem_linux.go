//go:build linux

package mem

import "golang.org/x/sys/unix"

// Map returns an anonymous private mapping of size bytes. Mapped regions
// live outside the GC heap, which suits large rings and pages handed to
// external transfer engines.
func Map(size int) (*Region, error) {
	b, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}
	return &Region{
		b:       b,
		release: func() error { return unix.Munmap(b) },
	}, nil
}

// MapHuge attempts a hugepage-backed mapping and falls back to Map when the
// kernel has no hugepages available. size should be a multiple of the
// hugepage size for the fast path to succeed.
func MapHuge(size int) (*Region, error) {
	b, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON|unix.MAP_HUGETLB)
	if err != nil {
		return Map(size)
	}
	return &Region{
		b:       b,
		release: func() error { return unix.Munmap(b) },
	}, nil
}
