// Package status provides a thread-safe status tracker for the rotary-sensor daemon.
// It is read by HTTP handlers while the run loop writes to it.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/rotary-sensor/internal/logic"
)

// NetworkInfo contains network state. This is a local copy to avoid
// importing internal/mqtt from status.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	PollMs           int64
	SampleIntervalMs int64
	HeartbeatMs      int64
	RateWindowMs     int64
	Broker           string
	HTTPAddr         string
	PinA             int
	PinB             int
	LEDEnabled       bool
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Position      int
	LastDirection logic.Rotation
	Ready         bool
	Counts        logic.EventCounts
	StepsInWindow int
	LEDColor      string
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets decoder-derived state. Called from the run loop on every tick.
func (t *Tracker) Update(position int, ready bool, counts logic.EventCounts, stepsInWindow int) {
	t.mu.Lock()
	t.snap.Position = position
	t.snap.Ready = ready
	t.snap.Counts = counts
	t.snap.StepsInWindow = stepsInWindow
	t.mu.Unlock()
}

// SetLastDirection records the direction of the most recent rotation event.
func (t *Tracker) SetLastDirection(r logic.Rotation) {
	t.mu.Lock()
	t.snap.LastDirection = r
	t.mu.Unlock()
}

// SetLEDColor records the name of the color currently shown on the LED.
func (t *Tracker) SetLEDColor(name string) {
	t.mu.Lock()
	t.snap.LEDColor = name
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
