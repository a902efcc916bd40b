// Package logic contains pure decoding logic for quadrature rotary input.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import "time"

// Rotation is the outcome of a single decoder poll.
type Rotation string

const (
	RotationNone Rotation = ""
	RotationCW   Rotation = "CW"
	RotationCCW  Rotation = "CCW"
)

// String returns a human-readable name for the rotation.
func (r Rotation) String() string {
	switch r {
	case RotationCW:
		return "Clockwise"
	case RotationCCW:
		return "Counter Clockwise"
	default:
		return "None"
	}
}

// Steps returns the signed position delta for one detent of this rotation.
func (r Rotation) Steps() int {
	switch r {
	case RotationCW:
		return 1
	case RotationCCW:
		return -1
	default:
		return 0
	}
}

// Input represents a single raw sample of the two encoder channels.
// true = logic high (pulled up, idle), false = logic low (contact made).
type Input struct {
	A    bool
	B    bool
	Time time.Time
}

// Event represents a decoded rotation to be published.
type Event struct {
	Timestamp time.Time
	Rotation  Rotation
	// Position is the signed detent count after this event was applied.
	Position int
	// StepsInWindow is the number of recent same-direction detents,
	// filled in by the caller from a RateTracker (0 if untracked).
	StepsInWindow int
}

// EventCounts tracks the number of detents seen in each direction since startup.
type EventCounts struct {
	CW  int
	CCW int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Position  int
	Counts    EventCounts
}
