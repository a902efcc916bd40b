package logic

import "time"

// DefaultSampleInterval is the decoder's default sampling cadence (200 Hz).
// Mechanical contact bounce on common encoders settles well inside 5ms.
const DefaultSampleInterval = 5 * time.Millisecond

// Decoder converts raw two-channel encoder samples into rotation events.
// Direction is read from channel B at the moment channel A falls; samples
// arriving faster than the sample interval are ignored, which doubles as
// the debounce filter.
type Decoder struct {
	sampleInterval time.Duration
	prevA          bool
	lastB          bool
	lastSample     time.Time
	sampled        bool
	position       int
	eventCounts    EventCounts
	startTime      time.Time
	lastHeartbeat  time.Time
}

// NewDecoder creates a decoder with the given sample interval.
// The startTime is used for calculating uptime in heartbeat events.
func NewDecoder(sampleInterval time.Duration, startTime time.Time) *Decoder {
	if sampleInterval <= 0 {
		sampleInterval = DefaultSampleInterval
	}
	return &Decoder{
		sampleInterval: sampleInterval,
		startTime:      startTime,
		lastHeartbeat:  startTime,
	}
}

// Poll takes a raw sample and returns a rotation event, or nil if none.
// Calls arriving less than the sample interval after the previous taken
// sample are dropped without mutating any state; a call at exactly the
// interval boundary is taken. Callers need not throttle their call rate.
func (d *Decoder) Poll(input Input) *Event {
	if d.sampled && input.Time.Sub(d.lastSample) < d.sampleInterval {
		return nil
	}

	rotation := RotationNone
	if d.prevA && !input.A {
		// Falling edge on A: B's level now tells the direction.
		if input.B {
			rotation = RotationCCW
		} else {
			rotation = RotationCW
		}
	}

	d.prevA = input.A
	d.lastB = input.B
	d.lastSample = input.Time
	d.sampled = true

	if rotation == RotationNone {
		return nil
	}

	d.position += rotation.Steps()
	switch rotation {
	case RotationCW:
		d.eventCounts.CW++
	case RotationCCW:
		d.eventCounts.CCW++
	}

	return &Event{
		Timestamp: input.Time,
		Rotation:  rotation,
		Position:  d.position,
	}
}

// Sampled returns whether at least one sample has been taken.
func (d *Decoder) Sampled() bool {
	return d.sampled
}

// Position returns the signed detent count since startup (CW positive).
func (d *Decoder) Position() int {
	return d.position
}

// Levels returns the channel levels as of the last taken sample.
func (d *Decoder) Levels() (a, b bool) {
	return d.prevA, d.lastB
}

// Counts returns the per-direction event counts since startup.
func (d *Decoder) Counts() EventCounts {
	return d.eventCounts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if no sample has been taken yet,
// if the interval has not elapsed, or if interval is <= 0 (disabled).
func (d *Decoder) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if !d.sampled {
		return nil
	}

	if now.Sub(d.lastHeartbeat) < interval {
		return nil
	}

	d.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(d.startTime),
		Position:  d.position,
		Counts:    d.eventCounts,
	}
}
