package gpio

import "errors"

// FakeReader is a test double that returns scripted channel levels.
type FakeReader struct {
	// Samples contains scripted (A, B) levels to return.
	// Each call to Read() consumes the next sample.
	Samples []Sample

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// Sample represents a single reading of the two encoder channels.
type Sample struct {
	A bool // true = logic high
	B bool
}

// NewFakeReader creates a FakeReader with the given samples.
func NewFakeReader(samples []Sample) *FakeReader {
	return &FakeReader{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeReader) Read() (bool, bool, error) {
	if f.ReadError != nil {
		return false, false, f.ReadError
	}

	if len(f.Samples) == 0 {
		return false, false, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample.A, sample.B, nil
}

// Close marks the reader as closed.
func (f *FakeReader) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the reader to the beginning of samples.
func (f *FakeReader) Reset() {
	f.index = 0
	f.Closed = false
}

// FakeLED records LED writes for test assertions.
type FakeLED struct {
	// Writes contains every color set on the LED, in order.
	Writes []Color

	// Closed tracks if Close was called
	Closed bool

	// SetError, if set, will be returned by Set()
	SetError error
}

// NewFakeLED creates a FakeLED for testing.
func NewFakeLED() *FakeLED {
	return &FakeLED{}
}

// Set records the color write.
func (f *FakeLED) Set(r, g, b bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Writes = append(f.Writes, Color{R: r, G: g, B: b})
	return nil
}

// Close marks the LED as closed.
func (f *FakeLED) Close() error {
	f.Closed = true
	return nil
}

// Last returns the most recent color written, or false if none.
func (f *FakeLED) Last() (Color, bool) {
	if len(f.Writes) == 0 {
		return Color{}, false
	}
	return f.Writes[len(f.Writes)-1], true
}
