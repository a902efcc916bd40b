package gpio

import (
	"errors"
	"testing"
)

func TestFakeReaderRead(t *testing.T) {
	samples := []Sample{
		{A: true, B: false},
		{A: false, B: true},
		{A: true, B: true},
	}

	f := NewFakeReader(samples)

	// Read first sample
	a, b, err := f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != true || b != false {
		t.Errorf("sample 0: expected (true, false), got (%v, %v)", a, b)
	}

	// Read second sample
	a, b, err = f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != false || b != true {
		t.Errorf("sample 1: expected (false, true), got (%v, %v)", a, b)
	}

	// Read third sample
	a, b, err = f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != true || b != true {
		t.Errorf("sample 2: expected (true, true), got (%v, %v)", a, b)
	}

	// Fourth read should repeat last sample
	a, b, err = f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != true || b != true {
		t.Errorf("sample 3 (repeat): expected (true, true), got (%v, %v)", a, b)
	}
}

func TestFakeReaderNoSamples(t *testing.T) {
	f := NewFakeReader(nil)

	_, _, err := f.Read()
	if err == nil {
		t.Error("expected error with no samples")
	}
}

func TestFakeReaderError(t *testing.T) {
	f := NewFakeReader([]Sample{{A: true, B: true}})
	f.ReadError = errors.New("simulated error")

	_, _, err := f.Read()
	if err == nil {
		t.Error("expected error to be returned")
	}
	if err.Error() != "simulated error" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFakeReaderClose(t *testing.T) {
	f := NewFakeReader([]Sample{{A: true, B: true}})

	if f.Closed {
		t.Error("should not be closed initially")
	}

	err := f.Close()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if !f.Closed {
		t.Error("should be closed after Close()")
	}
}

func TestFakeReaderReset(t *testing.T) {
	samples := []Sample{
		{A: true, B: false},
		{A: false, B: true},
	}

	f := NewFakeReader(samples)

	// Consume first sample
	f.Read()

	// Reset
	f.Reset()

	// Should read first sample again
	a, b, _ := f.Read()
	if a != true || b != false {
		t.Errorf("after reset: expected (true, false), got (%v, %v)", a, b)
	}
}

func TestFakeLEDRecordsWrites(t *testing.T) {
	f := NewFakeLED()

	if _, ok := f.Last(); ok {
		t.Error("expected no writes initially")
	}

	if err := f.Set(true, false, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Set(false, true, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.Writes) != 2 {
		t.Fatalf("expected 2 writes, got %d", len(f.Writes))
	}
	if f.Writes[0] != (Color{R: true}) {
		t.Errorf("write 0: got %+v", f.Writes[0])
	}

	last, ok := f.Last()
	if !ok {
		t.Fatal("expected a last write")
	}
	if last != (Color{G: true, B: true}) {
		t.Errorf("last write: got %+v", last)
	}
}

func TestFakeLEDError(t *testing.T) {
	f := NewFakeLED()
	f.SetError = errors.New("simulated error")

	if err := f.Set(true, true, true); err == nil {
		t.Error("expected error to be returned")
	}
	if len(f.Writes) != 0 {
		t.Errorf("failed Set must not record a write, got %d", len(f.Writes))
	}
}

func TestFakeLEDClose(t *testing.T) {
	f := NewFakeLED()

	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}
}
