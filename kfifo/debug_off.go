//go:build !kfifodebug

package kfifo

// Stats is empty unless the kfifodebug build tag is set.
type Stats struct{}

type dbgState struct{}

func (f *Fifo) dbgPut(bool)            {}
func (f *Fifo) dbgBulkWrite(int, bool) {}
func (f *Fifo) dbgGrantWrite(int)      {}
func (f *Fifo) dbgGrantRead(int)       {}
func (f *Fifo) dbgCommitWrite(int)     {}
func (f *Fifo) dbgCommitRead(int)      {}

func (f *Fifo) DebugStats() Stats { return Stats{} }
func (f *Fifo) DebugReset()       {}
