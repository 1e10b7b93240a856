// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

package ringbuf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math/rand"
	"runtime"
	"sync"
	"testing"

	"github.com/momentics/hioload-blockpool/api"
)

// TestRingBuffer_Correctness checks the basic write/read contract.
func TestRingBuffer_Correctness(t *testing.T) {
	rb, err := New(make([]byte, 16))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if rb.Cap() != 16 {
		t.Fatalf("Cap = %d, want 16", rb.Cap())
	}
	for i := 0; i < 4; i++ {
		item := []byte{byte(i), byte(i + 1), byte(i + 2), byte(i + 3)}
		if n := rb.Write(item); n != 4 {
			t.Fatalf("Write wrote %d at item %d", n, i)
		}
	}
	if !rb.IsFull() {
		t.Error("Expected buffer full")
	}
	if n := rb.Write([]byte{0xff}); n != 0 {
		t.Errorf("Write into full buffer wrote %d", n)
	}
	for i := 0; i < 4; i++ {
		item := make([]byte, 4)
		if n := rb.Read(item); n != 4 {
			t.Fatalf("Read returned %d at item %d", n, i)
		}
		want := []byte{byte(i), byte(i + 1), byte(i + 2), byte(i + 3)}
		if !bytes.Equal(item, want) {
			t.Fatalf("Read got %v, want %v", item, want)
		}
	}
	if !rb.IsEmpty() {
		t.Error("Expected buffer empty after full cycle")
	}
	if n := rb.Read(make([]byte, 4)); n != 0 {
		t.Errorf("Read from empty buffer returned %d", n)
	}
}

// TestRingBuffer_InvalidStorage rejects non-power-of-two storage.
func TestRingBuffer_InvalidStorage(t *testing.T) {
	for _, size := range []int{0, 1, 3, 6, 24, 100} {
		if _, err := New(make([]byte, size)); !errors.Is(err, api.ErrQueueCapacity) {
			t.Errorf("size %d: got %v, want ErrQueueCapacity", size, err)
		}
	}
	for _, size := range []int{2, 4, 8, 64, 4096} {
		if _, err := New(make([]byte, size)); err != nil {
			t.Errorf("size %d: unexpected error %v", size, err)
		}
	}
}

// TestRingBuffer_ShortWrite verifies partial writes when nearly full.
func TestRingBuffer_ShortWrite(t *testing.T) {
	rb, _ := New(make([]byte, 8))
	if n := rb.Write([]byte{1, 2, 3, 4, 5, 6}); n != 6 {
		t.Fatalf("Write wrote %d, want 6", n)
	}
	if n := rb.Write([]byte{7, 8, 9, 10}); n != 2 {
		t.Fatalf("Write into near-full buffer wrote %d, want 2", n)
	}
	got := make([]byte, 8)
	if n := rb.Read(got); n != 8 {
		t.Fatalf("Read returned %d, want 8", n)
	}
	if !bytes.Equal(got, []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Fatalf("Read got %v", got)
	}
}

// TestRingBuffer_WrapAround exercises copies across the storage boundary.
func TestRingBuffer_WrapAround(t *testing.T) {
	rb, _ := New(make([]byte, 16))
	// Advance cursors so the next 8-byte item straddles the end.
	rb.Write(make([]byte, 12))
	rb.Read(make([]byte, 12))

	item := []byte{10, 11, 12, 13, 14, 15, 16, 17}
	if n := rb.Write(item); n != 8 {
		t.Fatalf("Write wrote %d", n)
	}
	got := make([]byte, 8)
	if n := rb.Read(got); n != 8 {
		t.Fatalf("Read returned %d", n)
	}
	if !bytes.Equal(got, item) {
		t.Fatalf("wrapped Read got %v, want %v", got, item)
	}
}

// TestRingBuffer_PeekScan verifies the scan is non-consuming and ordered.
func TestRingBuffer_PeekScan(t *testing.T) {
	rb, _ := New(make([]byte, 32))
	var item [4]byte
	for i := uint32(0); i < 5; i++ {
		binary.LittleEndian.PutUint32(item[:], i*100)
		rb.Write(item[:])
	}

	cursor := rb.Out()
	seen := []uint32{}
	for rb.PeekScan(&cursor, item[:]) == 4 {
		seen = append(seen, binary.LittleEndian.Uint32(item[:]))
	}
	if len(seen) != 5 {
		t.Fatalf("scan saw %d entries, want 5", len(seen))
	}
	for i, v := range seen {
		if v != uint32(i)*100 {
			t.Errorf("scan[%d] = %d, want %d", i, v, i*100)
		}
	}
	if rb.UsedBytes() != 20 {
		t.Errorf("UsedBytes = %d after scan, want 20", rb.UsedBytes())
	}
	// Entries must still be consumable after the scan.
	if n := rb.Read(item[:]); n != 4 || binary.LittleEndian.Uint32(item[:]) != 0 {
		t.Errorf("Read after scan: n=%d val=%d", n, binary.LittleEndian.Uint32(item[:]))
	}
}

// TestRingBuffer_Reset empties the queue without touching storage validity.
func TestRingBuffer_Reset(t *testing.T) {
	rb, _ := New(make([]byte, 16))
	rb.Write([]byte{1, 2, 3, 4})
	rb.Reset()
	if !rb.IsEmpty() {
		t.Error("Expected empty after Reset")
	}
	if n := rb.Write([]byte{5, 6, 7, 8}); n != 4 {
		t.Errorf("Write after Reset wrote %d", n)
	}
	got := make([]byte, 4)
	rb.Read(got)
	if !bytes.Equal(got, []byte{5, 6, 7, 8}) {
		t.Errorf("Read after Reset got %v", got)
	}
}

// TestRingBuffer_SPSC exercises one producer and one consumer without locks.
func TestRingBuffer_SPSC(t *testing.T) {
	rb, _ := New(make([]byte, 256))
	const items = 100000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		var item [4]byte
		for i := uint32(0); i < items; i++ {
			binary.LittleEndian.PutUint32(item[:], i)
			for rb.Write(item[:]) != 4 {
				runtime.Gosched()
			}
		}
	}()

	var sum, want uint64
	var item [4]byte
	for i := uint32(0); i < items; i++ {
		for rb.Read(item[:]) != 4 {
			runtime.Gosched()
		}
		v := binary.LittleEndian.Uint32(item[:])
		if v != i {
			t.Fatalf("out of order: got %d, want %d", v, i)
		}
		sum += uint64(v)
		want += uint64(i)
	}
	wg.Wait()
	if sum != want {
		t.Errorf("Checksum mismatch: got %d, want %d", sum, want)
	}
}

// TestRingBufferPropertyBased performs randomized operations against a
// model queue to check ordering and accounting invariants.
func TestRingBufferPropertyBased(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		rb, _ := New(make([]byte, 64))
		model := []byte{}

		for i := 0; i < 5000; i++ {
			switch rng.Intn(2) {
			case 0: // write
				p := make([]byte, rng.Intn(9))
				rng.Read(p)
				n := rb.Write(p)
				model = append(model, p[:n]...)
			case 1: // read
				p := make([]byte, rng.Intn(9))
				n := rb.Read(p)
				if n > len(model) {
					t.Fatalf("Read returned %d with %d queued", n, len(model))
				}
				if !bytes.Equal(p[:n], model[:n]) {
					t.Fatalf("Read got %v, want %v", p[:n], model[:n])
				}
				model = model[n:]
			}
			if int(rb.UsedBytes()) != len(model) {
				t.Fatalf("Invariant failed: UsedBytes %d, model %d", rb.UsedBytes(), len(model))
			}
			if rb.UsedBytes() > 64 {
				t.Fatalf("Used bytes out of bounds: %d", rb.UsedBytes())
			}
		}
	}
}
