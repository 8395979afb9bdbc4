// property_test.go — randomized invariant tests for the byte FIFO.
package kfifo

import (
	"bytes"
	"math/rand"
	"runtime"
	"sync"
	"testing"
)

// TestFifoPropertyBased performs randomized operations against a plain-slice
// reference model and checks FIFO order plus occupancy invariants after
// every step.
func TestFifoPropertyBased(t *testing.T) {
	const size = 64
	for seed := int64(0); seed < 10; seed++ {
		rnd := rand.New(rand.NewSource(seed))
		f := newTestFifo(t, size)
		var model []byte
		next := byte(0)

		for i := 0; i < 5000; i++ {
			switch rnd.Intn(6) {
			case 0: // Put
				if f.Put(next) {
					model = append(model, next)
					next++
				} else if len(model) != size {
					t.Fatalf("seed %d op %d: Put failed with model len %d", seed, i, len(model))
				}
			case 1: // Get
				b, ok := f.Get()
				if ok {
					if len(model) == 0 || b != model[0] {
						t.Fatalf("seed %d op %d: Get = %d, model head %v", seed, i, b, model)
					}
					model = model[1:]
				} else if len(model) != 0 {
					t.Fatalf("seed %d op %d: Get failed with model len %d", seed, i, len(model))
				}
			case 2: // Write (all-or-nothing)
				n := rnd.Intn(size + 1)
				src := make([]byte, n)
				for j := range src {
					src[j] = next + byte(j)
				}
				if f.Write(src) {
					if size-len(model) < n {
						t.Fatalf("seed %d op %d: Write(%d) succeeded with %d free",
							seed, i, n, size-len(model))
					}
					model = append(model, src...)
					next += byte(n)
				} else if size-len(model) >= n {
					t.Fatalf("seed %d op %d: Write(%d) failed with %d free",
						seed, i, n, size-len(model))
				}
			case 3: // Read (all-or-nothing)
				n := rnd.Intn(size + 1)
				dst := make([]byte, n)
				if f.Read(dst) {
					if len(model) < n || !bytes.Equal(dst, model[:n]) {
						t.Fatalf("seed %d op %d: Read(%d) = %v, model %v", seed, i, n, dst, model)
					}
					model = model[n:]
				} else if len(model) >= n {
					t.Fatalf("seed %d op %d: Read(%d) failed with %d used", seed, i, n, len(model))
				}
			case 4: // WriteSome
				n := rnd.Intn(size + 8)
				src := make([]byte, n)
				for j := range src {
					src[j] = next + byte(j)
				}
				wrote := f.WriteSome(src)
				wantN := n
				if free := size - len(model); wantN > free {
					wantN = free
				}
				if wrote != wantN {
					t.Fatalf("seed %d op %d: WriteSome(%d) = %d; want %d", seed, i, n, wrote, wantN)
				}
				model = append(model, src[:wrote]...)
				next += byte(wrote)
			case 5: // region round-trip on the read side
				r := f.ReadRegion()
				if len(r) > 0 {
					if !bytes.Equal(r, model[:len(r)]) {
						t.Fatalf("seed %d op %d: ReadRegion = %v, model %v", seed, i, r, model)
					}
					f.CommitRead(len(r))
					model = model[len(r):]
				}
			}

			if f.Used() != len(model) {
				t.Fatalf("seed %d op %d: Used = %d, model len %d", seed, i, f.Used(), len(model))
			}
			if f.Used()+f.Free() != size {
				t.Fatalf("seed %d op %d: Used+Free = %d", seed, i, f.Used()+f.Free())
			}
		}
	}
}

// TestFifo_ConcurrentSPSC runs one producer and one consumer flat out and
// verifies every byte arrives exactly once, in order.
func TestFifo_ConcurrentSPSC(t *testing.T) {
	const (
		size  = 64
		total = 1 << 18
	)
	f := newTestFifo(t, size)
	pattern := func(i int) byte { return byte((i*31 + 0x55) & 0xFF) }

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		chunk := make([]byte, 24)
		sent := 0
		for sent < total {
			n := len(chunk)
			if n > total-sent {
				n = total - sent
			}
			for j := 0; j < n; j++ {
				chunk[j] = pattern(sent + j)
			}
			w := f.WriteSome(chunk[:n])
			if w == 0 {
				runtime.Gosched()
				continue
			}
			sent += w
		}
	}()

	var mismatch int
	go func() {
		defer wg.Done()
		buf := make([]byte, 40)
		recvd := 0
		for recvd < total {
			n := f.ReadSome(buf)
			if n == 0 {
				runtime.Gosched()
				continue
			}
			for j := 0; j < n; j++ {
				if buf[j] != pattern(recvd+j) {
					mismatch++
				}
			}
			recvd += n
		}
	}()

	wg.Wait()
	if mismatch != 0 {
		t.Fatalf("%d bytes arrived out of order or corrupted", mismatch)
	}
	if !f.IsEmpty() {
		t.Fatalf("residual bytes after drain: %d", f.Used())
	}
}

// TestFifo_ConcurrentRegions exercises the zero-copy path from both sides at
// once: the producer publishes via WriteRegion/CommitWrite, the consumer
// drains via ReadRegion/CommitRead.
func TestFifo_ConcurrentRegions(t *testing.T) {
	const (
		size  = 128
		total = 1 << 17
	)
	f := newTestFifo(t, size)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		sent := 0
		for sent < total {
			r := f.WriteRegion()
			if len(r) == 0 {
				runtime.Gosched()
				continue
			}
			n := len(r)
			if n > total-sent {
				n = total - sent
			}
			for j := 0; j < n; j++ {
				r[j] = byte(sent + j)
			}
			f.CommitWrite(n)
			sent += n
		}
	}()

	var mismatch int
	go func() {
		defer wg.Done()
		recvd := 0
		for recvd < total {
			r := f.ReadRegion()
			if len(r) == 0 {
				runtime.Gosched()
				continue
			}
			for j, b := range r {
				if b != byte(recvd+j) {
					mismatch++
				}
			}
			f.CommitRead(len(r))
			recvd += len(r)
		}
	}()

	wg.Wait()
	if mismatch != 0 {
		t.Fatalf("%d bytes corrupted across the zero-copy path", mismatch)
	}
}
