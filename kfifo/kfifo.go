// kfifo/kfifo.go

// Package kfifo implements a fixed-capacity circular byte buffer for exactly
// one producer and one consumer running on different execution contexts, for
// example an interrupt or DMA-completion handler feeding a foreground task.
// No operation blocks, allocates, or takes a lock: the producer owns the
// write cursor, the consumer owns the read cursor, and each side only reads
// the other's cursor with acquire/release ordering, so a byte stored before a
// cursor is published is visible once the other side observes the new cursor.
//
// Storage is supplied by the caller at construction, must be a power of two
// in length, and must outlive the Fifo; the Fifo references it and never
// allocates, grows, or frees it. Cursors are 32-bit unsigned counters that
// wrap at the integer width. Only their difference is ever interpreted, so
// occupancy arithmetic stays correct across counter overflow; the physical
// offset of a cursor is cursor AND (size-1).
//
// Beside the copying operations, WriteRegion/CommitWrite and
// ReadRegion/CommitRead expose a two-phase zero-copy path for external byte
// movers (DMA engines, file descriptors): request a contiguous extent, let
// the engine fill or drain it in place, then commit the transferred count.
// A returned region never crosses the physical wrap boundary and is valid
// only until the next mutating call on the same side.
package kfifo

import (
	"errors"
	"sync/atomic"
)

var (
	// ErrNoStorage is returned by New when no backing storage is supplied.
	ErrNoStorage = errors.New("kfifo: nil storage")
	// ErrBadSize is returned by New when the storage length is zero or not a
	// power of two.
	ErrBadSize = errors.New("kfifo: storage length must be a power of two")
)

// Fifo is a single-producer single-consumer byte FIFO over caller-supplied
// storage. The zero value is not usable; construct with New.
//
// Reset is the one method that is not safe while either side may be mid
// operation; call it only before the producer and consumer start or after
// both have quiesced.
type Fifo struct {
	in      uint32 // stored only by the producer side
	out     uint32 // stored only by the consumer side
	mask    uint32
	storage []byte
	dbg     dbgState
}

// New binds a Fifo to storage. The storage length is the buffer capacity and
// must be a power of two (>= 1). The caller keeps ownership of storage and
// must keep it alive for the Fifo's lifetime.
func New(storage []byte) (*Fifo, error) {
	if storage == nil {
		return nil, ErrNoStorage
	}
	size := uint32(len(storage))
	if size == 0 || size&(size-1) != 0 {
		return nil, ErrBadSize
	}
	return &Fifo{mask: size - 1, storage: storage}, nil
}

// Size returns the fixed capacity in bytes.
func (f *Fifo) Size() int { return len(f.storage) }

// Used returns how many bytes are currently buffered. Callable from either
// side.
func (f *Fifo) Used() int {
	// Wrapping subtraction; the cursors themselves are never reduced modulo
	// capacity, so this holds across uint32 overflow.
	return int(atomic.LoadUint32(&f.in) - atomic.LoadUint32(&f.out))
}

// Free returns how many bytes can still be written.
func (f *Fifo) Free() int { return len(f.storage) - f.Used() }

// IsFull reports whether no free space remains.
func (f *Fifo) IsFull() bool { return f.Free() == 0 }

// IsEmpty reports whether no data is buffered.
func (f *Fifo) IsEmpty() bool { return f.Used() == 0 }

// Put stores one byte. It returns false, without mutating anything, if the
// buffer is full.
func (f *Fifo) Put(b byte) bool {
	in := atomic.LoadUint32(&f.in)
	if in-atomic.LoadUint32(&f.out) == uint32(len(f.storage)) { // full
		f.dbgPut(false)
		return false
	}
	f.storage[in&f.mask] = b           // 1) write data
	atomic.StoreUint32(&f.in, in+1)    // 2) publish
	f.dbgPut(true)
	return true
}

// Get removes and returns the oldest byte. It returns (0, false) if the
// buffer is empty.
func (f *Fifo) Get() (byte, bool) {
	out := atomic.LoadUint32(&f.out)
	if atomic.LoadUint32(&f.in) == out { // empty
		return 0, false
	}
	b := f.storage[out&f.mask]          // 1) read current element
	atomic.StoreUint32(&f.out, out+1)   // 2) publish consumption
	return b, true
}

// Peek returns the oldest byte without consuming it. It returns (0, false)
// if the buffer is empty.
func (f *Fifo) Peek() (byte, bool) {
	out := atomic.LoadUint32(&f.out)
	if atomic.LoadUint32(&f.in) == out {
		return 0, false
	}
	return f.storage[out&f.mask], true
}

// Write copies all of p into the buffer, or nothing at all: if fewer than
// len(p) bytes are free it returns false with no state or storage touched.
// A write that reaches the physical end of storage splits into two copies,
// never more, since len(p) cannot exceed the capacity.
func (f *Fifo) Write(p []byte) bool {
	in := atomic.LoadUint32(&f.in)
	free := len(f.storage) - int(in-atomic.LoadUint32(&f.out))
	if free < len(p) {
		return false
	}
	f.copyIn(in, p)
	atomic.StoreUint32(&f.in, in+uint32(len(p))) // publish
	f.dbgBulkWrite(len(p), false)
	return true
}

// WriteSome copies as much of p as fits and returns the number of bytes
// written, 0 when the buffer is already full. With len(p) <= Free() it is
// equivalent to Write. It exists so a producer facing a nearly full buffer
// can flush what fits instead of failing outright.
func (f *Fifo) WriteSome(p []byte) int {
	in := atomic.LoadUint32(&f.in)
	free := len(f.storage) - int(in-atomic.LoadUint32(&f.out))
	n := len(p)
	if n > free {
		n = free
	}
	if n == 0 {
		return 0
	}
	f.copyIn(in, p[:n])
	atomic.StoreUint32(&f.in, in+uint32(n))
	f.dbgBulkWrite(n, n < len(p))
	return n
}

// Read fills all of p from the buffer, or nothing at all: if fewer than
// len(p) bytes are buffered it returns false with no state touched. The copy
// splits at the physical end of storage exactly as Write does.
func (f *Fifo) Read(p []byte) bool {
	out := atomic.LoadUint32(&f.out)
	used := int(atomic.LoadUint32(&f.in) - out)
	if used < len(p) {
		return false
	}
	f.copyOut(out, p)
	atomic.StoreUint32(&f.out, out+uint32(len(p)))
	return true
}

// ReadSome fills p with up to len(p) buffered bytes and returns the count,
// 0 when the buffer is empty.
func (f *Fifo) ReadSome(p []byte) int {
	out := atomic.LoadUint32(&f.out)
	used := int(atomic.LoadUint32(&f.in) - out)
	n := len(p)
	if n > used {
		n = used
	}
	if n == 0 {
		return 0
	}
	f.copyOut(out, p[:n])
	atomic.StoreUint32(&f.out, out+uint32(n))
	return n
}

// WriteRegion returns the contiguous span an external engine may fill
// directly, starting at the current write offset. The span ends at the
// physical end of storage or after Free() bytes, whichever comes first; it
// never covers the wrapped-around remainder, so a full drain of the free
// space may take two region/commit rounds. The span is valid until the next
// producer-side call.
func (f *Fifo) WriteRegion() []byte {
	in := atomic.LoadUint32(&f.in)
	off := int(in & f.mask)
	n := len(f.storage) - off
	if free := len(f.storage) - int(in-atomic.LoadUint32(&f.out)); n > free {
		n = free
	}
	f.dbgGrantWrite(n)
	return f.storage[off : off+n]
}

// CommitWrite publishes n bytes an external engine wrote into the span last
// returned by WriteRegion. n must not exceed that span's length; this is a
// documented precondition, not a runtime check (the kfifodebug build tag
// adds an assertion).
func (f *Fifo) CommitWrite(n int) {
	f.dbgCommitWrite(n)
	atomic.StoreUint32(&f.in, atomic.LoadUint32(&f.in)+uint32(n))
}

// ReadRegion returns the contiguous span an external engine may drain
// directly, starting at the current read offset. The span ends at the
// physical end of storage or after Used() bytes, whichever comes first.
// The span is valid until the next consumer-side call.
func (f *Fifo) ReadRegion() []byte {
	out := atomic.LoadUint32(&f.out)
	off := int(out & f.mask)
	n := len(f.storage) - off
	if used := int(atomic.LoadUint32(&f.in) - out); n > used {
		n = used
	}
	f.dbgGrantRead(n)
	return f.storage[off : off+n]
}

// CommitRead consumes n bytes an external engine drained from the span last
// returned by ReadRegion. Same caller-trusted contract as CommitWrite.
func (f *Fifo) CommitRead(n int) {
	f.dbgCommitRead(n)
	atomic.StoreUint32(&f.out, atomic.LoadUint32(&f.out)+uint32(n))
}

// Reset discards all buffered data by zeroing both cursors. Storage contents
// are left untouched. Requires exclusive access: no producer or consumer
// operation may be in flight.
func (f *Fifo) Reset() {
	atomic.StoreUint32(&f.in, 0)
	atomic.StoreUint32(&f.out, 0)
}

// copyIn copies p into storage starting at the physical offset of cursor in,
// wrapping past the physical end when needed.
func (f *Fifo) copyIn(in uint32, p []byte) {
	n := copy(f.storage[in&f.mask:], p)
	copy(f.storage, p[n:])
}

// copyOut is the consumption mirror of copyIn.
func (f *Fifo) copyOut(out uint32, p []byte) {
	n := copy(p, f.storage[out&f.mask:])
	copy(p[n:], f.storage)
}
