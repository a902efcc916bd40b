package status

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/sweeney/rotary-sensor/internal/logic"
)

func TestNewTracker(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := Config{PollMs: 1, SampleIntervalMs: 5, Broker: "tcp://localhost:1883", HTTPAddr: ":80"}
	tr := NewTracker(start, cfg)

	snap := tr.Snapshot()
	if !snap.StartTime.Equal(start) {
		t.Errorf("StartTime: got %v, want %v", snap.StartTime, start)
	}
	if snap.Config.SampleIntervalMs != 5 {
		t.Errorf("Config.SampleIntervalMs: got %d, want 5", snap.Config.SampleIntervalMs)
	}
	if snap.Config.HTTPAddr != ":80" {
		t.Errorf("Config.HTTPAddr: got %q, want %q", snap.Config.HTTPAddr, ":80")
	}
	if snap.Ready {
		t.Error("expected Ready=false initially")
	}
	if snap.MQTTConnected {
		t.Error("expected MQTTConnected=false initially")
	}
	if snap.Position != 0 {
		t.Errorf("Position: got %d, want 0", snap.Position)
	}
}

func TestUpdateAndSnapshot(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.Update(4, true, logic.EventCounts{CW: 7, CCW: 3}, 2)

	snap := tr.Snapshot()
	if snap.Position != 4 {
		t.Errorf("Position: got %d, want 4", snap.Position)
	}
	if !snap.Ready {
		t.Error("expected Ready=true")
	}
	if snap.Counts.CW != 7 {
		t.Errorf("Counts.CW: got %d, want 7", snap.Counts.CW)
	}
	if snap.Counts.CCW != 3 {
		t.Errorf("Counts.CCW: got %d, want 3", snap.Counts.CCW)
	}
	if snap.StepsInWindow != 2 {
		t.Errorf("StepsInWindow: got %d, want 2", snap.StepsInWindow)
	}
}

func TestSetLastDirection(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.SetLastDirection(logic.RotationCCW)
	if got := tr.Snapshot().LastDirection; got != logic.RotationCCW {
		t.Errorf("LastDirection: got %q, want CCW", got)
	}
}

func TestSetLEDColor(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.SetLEDColor("magenta")
	if got := tr.Snapshot().LEDColor; got != "magenta" {
		t.Errorf("LEDColor: got %q, want magenta", got)
	}
}

func TestSetMQTTConnected(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.SetMQTTConnected(true)
	if !tr.Snapshot().MQTTConnected {
		t.Error("expected MQTTConnected=true")
	}

	tr.SetMQTTConnected(false)
	if tr.Snapshot().MQTTConnected {
		t.Error("expected MQTTConnected=false")
	}
}

func TestSetNetwork(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	if tr.Snapshot().Network != nil {
		t.Error("expected nil Network initially")
	}

	net := &NetworkInfo{Type: "wifi", IP: "192.168.1.42", Status: "connected"}
	tr.SetNetwork(net)

	snap := tr.Snapshot()
	if snap.Network == nil {
		t.Fatal("expected non-nil Network")
	}
	if snap.Network.IP != "192.168.1.42" {
		t.Errorf("Network.IP: got %q, want %q", snap.Network.IP, "192.168.1.42")
	}
}

func TestSnapshotUptime(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		StartTime: start,
		Now:       start.Add(15 * time.Minute),
	}

	if snap.Uptime() != 15*time.Minute {
		t.Errorf("Uptime: got %v, want 15m", snap.Uptime())
	}
}

func TestSnapshotNowIsSet(t *testing.T) {
	tr := NewTracker(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Config{})

	before := time.Now()
	snap := tr.Snapshot()
	after := time.Now()

	if snap.Now.Before(before) || snap.Now.After(after) {
		t.Errorf("Now (%v) not between %v and %v", snap.Now, before, after)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	tr.Update(1, true, logic.EventCounts{CW: 1}, 0)

	snap1 := tr.Snapshot()
	tr.Update(2, true, logic.EventCounts{CW: 2}, 0)

	if snap1.Position != 1 {
		t.Errorf("snapshot mutated by later update: Position=%d", snap1.Position)
	}
}

func TestFormatJSON(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Position:      -2,
		LastDirection: logic.RotationCCW,
		LEDColor:      "cyan",
		Ready:         true,
		StepsInWindow: 3,
		Counts:        logic.EventCounts{CW: 5, CCW: 7},
		StartTime:     start,
		Now:           start.Add(90 * time.Second),
		MQTTConnected: true,
		Config: Config{
			PollMs:           1,
			SampleIntervalMs: 5,
			HeartbeatMs:      900000,
			Broker:           "tcp://broker:1883",
			HTTPAddr:         ":8080",
			PinA:             17,
			PinB:             18,
			LEDEnabled:       true,
		},
	}

	data := FormatJSON(snap)

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	inner := parsed.Status
	if inner.Position != -2 {
		t.Errorf("position: got %d, want -2", inner.Position)
	}
	if inner.LastDirection != "CCW" {
		t.Errorf("last_direction: got %q, want CCW", inner.LastDirection)
	}
	if inner.LEDColor != "cyan" {
		t.Errorf("led_color: got %q, want cyan", inner.LEDColor)
	}
	if !inner.Ready {
		t.Error("ready: got false, want true")
	}
	if inner.UptimeSeconds != 90 {
		t.Errorf("uptime_seconds: got %d, want 90", inner.UptimeSeconds)
	}
	if inner.Counts.CW != 5 || inner.Counts.CCW != 7 {
		t.Errorf("event_counts: got %+v", inner.Counts)
	}
	if !inner.MQTT.Connected {
		t.Error("mqtt.connected: got false, want true")
	}
	if inner.MQTT.Broker != "tcp://broker:1883" {
		t.Errorf("mqtt.broker: got %q", inner.MQTT.Broker)
	}
	if inner.Config.PinA != 17 || inner.Config.PinB != 18 {
		t.Errorf("config pins: got A=%d B=%d", inner.Config.PinA, inner.Config.PinB)
	}
	if inner.Event != "" {
		t.Errorf("web JSON must not carry an event field, got %q", inner.Event)
	}
}

func TestFormatStatusEvent(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Position:  1,
		Ready:     true,
		StartTime: start,
		Now:       start.Add(time.Minute),
	}

	data := FormatStatusEvent(snap, "STARTUP", "")

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.Event != "STARTUP" {
		t.Errorf("event: got %q, want STARTUP", parsed.Status.Event)
	}

	var raw map[string]map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := raw["status"]["reason"]; ok {
		t.Error("reason should be omitted when empty")
	}
}

func TestFormatStatusEventShutdown(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{StartTime: start, Now: start}

	data := FormatStatusEvent(snap, "SHUTDOWN", "SIGTERM")

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.Event != "SHUTDOWN" {
		t.Errorf("event: got %q, want SHUTDOWN", parsed.Status.Event)
	}
	if parsed.Status.Reason != "SIGTERM" {
		t.Errorf("reason: got %q, want SIGTERM", parsed.Status.Reason)
	}
}

func TestFormatJSONWithNetwork(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := Snapshot{
		StartTime: start,
		Now:       start,
		Network:   &NetworkInfo{Type: "ethernet", IP: "10.0.0.5", Status: "connected"},
	}

	data := FormatJSON(snap)

	var parsed StatusJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Status.Network == nil {
		t.Fatal("expected network in JSON")
	}
	if parsed.Status.Network.IP != "10.0.0.5" {
		t.Errorf("network.ip: got %q", parsed.Status.Network.IP)
	}
}

func TestConcurrentAccess(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			tr.Update(n, true, logic.EventCounts{CW: n}, 0)
		}(i)
		go func() {
			defer wg.Done()
			_ = tr.Snapshot()
		}()
	}
	wg.Wait()
}
