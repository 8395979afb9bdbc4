// Package mem supplies backing storage for kfifo buffers. The FIFO itself
// never allocates or frees its storage; these providers cover the common
// sources of a contiguous byte region and tie release to an explicit handle.
package mem

// A Region is a contiguous byte range plus the way to give it back. Any Fifo
// referencing the region must be discarded before Release is called.
type Region struct {
	b       []byte
	release func() error
}

// Bytes returns the backing bytes. Nil after Release.
func (r *Region) Bytes() []byte { return r.b }

// Release returns the region to its provider. Heap regions are left to the
// GC; mapped regions are unmapped. A second Release is a no-op.
func (r *Region) Release() error {
	rel := r.release
	r.release = nil
	r.b = nil
	if rel == nil {
		return nil
	}
	return rel()
}

// Heap returns a GC-managed region of exactly size bytes.
func Heap(size int) *Region {
	return &Region{b: make([]byte, size)}
}
