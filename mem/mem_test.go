package mem

import "testing"

func TestHeap(t *testing.T) {
	r := Heap(256)
	if got := len(r.Bytes()); got != 256 {
		t.Fatalf("Heap(256) length = %d", got)
	}
	r.Bytes()[0] = 0xAA
	r.Bytes()[255] = 0x55
	if err := r.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if r.Bytes() != nil {
		t.Fatal("Bytes non-nil after Release")
	}
	// Second release must be a no-op.
	if err := r.Release(); err != nil {
		t.Fatalf("second Release: %v", err)
	}
}

func TestMap(t *testing.T) {
	r, err := Map(4096)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if got := len(r.Bytes()); got != 4096 {
		t.Fatalf("Map(4096) length = %d", got)
	}
	// The mapping must be writable end to end.
	b := r.Bytes()
	for i := range b {
		b[i] = byte(i)
	}
	if b[4095] != byte(4095%256) {
		t.Fatalf("mapped page not writable: %#x", b[4095])
	}
	if err := r.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestMapHuge_FallsBack(t *testing.T) {
	// With or without hugepages configured, MapHuge must hand back a usable
	// region of the requested size.
	r, err := MapHuge(4096)
	if err != nil {
		t.Fatalf("MapHuge: %v", err)
	}
	defer r.Release()
	if got := len(r.Bytes()); got != 4096 {
		t.Fatalf("MapHuge(4096) length = %d", got)
	}
	r.Bytes()[0] = 1
}
