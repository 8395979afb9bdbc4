//go:build kfifodebug

package kfifo

import "sync/atomic"

// Stats holds counters since the last reset. Only meaningful when built with
// the kfifodebug tag; the default build compiles no-op stubs.
type Stats struct {
	Puts       uint32 // successful Put()s
	Drops      uint32 // failed Put()s (buffer full)
	BulkWrites uint32 // Write/WriteSome calls that moved bytes
	Truncated  uint32 // WriteSome calls that clamped the request
	MaxUsed    uint32 // high-water mark of occupancy
}

type dbgState struct {
	stats Stats

	// Remaining lengths of the most recently granted regions, consumed by
	// the commit assertions.
	wGrant uint32
	rGrant uint32
}

func (f *Fifo) dbgPut(ok bool) {
	if !ok {
		atomic.AddUint32(&f.dbg.stats.Drops, 1)
		return
	}
	atomic.AddUint32(&f.dbg.stats.Puts, 1)
	f.dbgHighWater()
}

func (f *Fifo) dbgBulkWrite(n int, truncated bool) {
	if n > 0 {
		atomic.AddUint32(&f.dbg.stats.BulkWrites, 1)
	}
	if truncated {
		atomic.AddUint32(&f.dbg.stats.Truncated, 1)
	}
	f.dbgHighWater()
}

func (f *Fifo) dbgHighWater() {
	used := uint32(f.Used())
	for {
		max := atomic.LoadUint32(&f.dbg.stats.MaxUsed)
		if used <= max {
			return
		}
		if atomic.CompareAndSwapUint32(&f.dbg.stats.MaxUsed, max, used) {
			return
		}
	}
}

func (f *Fifo) dbgGrantWrite(n int) { atomic.StoreUint32(&f.dbg.wGrant, uint32(n)) }
func (f *Fifo) dbgGrantRead(n int)  { atomic.StoreUint32(&f.dbg.rGrant, uint32(n)) }

// Commit past the granted region is a caller bug; in debug builds it panics
// rather than being clamped, so the bug surfaces instead of corrupting data.
func (f *Fifo) dbgCommitWrite(n int) {
	g := atomic.LoadUint32(&f.dbg.wGrant)
	if uint32(n) > g {
		panic("kfifo: CommitWrite exceeds granted write region")
	}
	atomic.StoreUint32(&f.dbg.wGrant, g-uint32(n))
}

func (f *Fifo) dbgCommitRead(n int) {
	g := atomic.LoadUint32(&f.dbg.rGrant)
	if uint32(n) > g {
		panic("kfifo: CommitRead exceeds granted read region")
	}
	atomic.StoreUint32(&f.dbg.rGrant, g-uint32(n))
}

// DebugStats returns a copy of the counters.
func (f *Fifo) DebugStats() Stats {
	return Stats{
		Puts:       atomic.LoadUint32(&f.dbg.stats.Puts),
		Drops:      atomic.LoadUint32(&f.dbg.stats.Drops),
		BulkWrites: atomic.LoadUint32(&f.dbg.stats.BulkWrites),
		Truncated:  atomic.LoadUint32(&f.dbg.stats.Truncated),
		MaxUsed:    atomic.LoadUint32(&f.dbg.stats.MaxUsed),
	}
}

// DebugReset zeroes the counters.
func (f *Fifo) DebugReset() {
	f.dbg.stats = Stats{}
}
