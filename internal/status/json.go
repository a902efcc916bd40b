package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Position      int          `json:"position"`
	LastDirection string       `json:"last_direction,omitempty"`
	LEDColor      string       `json:"led_color,omitempty"`
	Ready         bool         `json:"ready"`
	StepsInWindow int          `json:"steps_in_window"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Counts        CountsJSON   `json:"event_counts"`
	Network       *NetworkJSON `json:"network,omitempty"`
	Config        ConfigJSON   `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	CW  int `json:"cw"`
	CCW int `json:"ccw"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs           int64  `json:"poll_ms"`
	SampleIntervalMs int64  `json:"sample_interval_ms"`
	HeartbeatMs      int64  `json:"heartbeat_ms"`
	RateWindowMs     int64  `json:"rate_window_ms"`
	Broker           string `json:"broker"`
	HTTPAddr         string `json:"http_addr"`
	PinA             int    `json:"pin_a"`
	PinB             int    `json:"pin_b"`
	LEDEnabled       bool   `json:"led_enabled"`
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		Position:      snap.Position,
		LastDirection: string(snap.LastDirection),
		LEDColor:      snap.LEDColor,
		Ready:         snap.Ready,
		StepsInWindow: snap.StepsInWindow,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			CW:  snap.Counts.CW,
			CCW: snap.Counts.CCW,
		},
		Config: ConfigJSON{
			PollMs:           snap.Config.PollMs,
			SampleIntervalMs: snap.Config.SampleIntervalMs,
			HeartbeatMs:      snap.Config.HeartbeatMs,
			RateWindowMs:     snap.Config.RateWindowMs,
			Broker:           snap.Config.Broker,
			HTTPAddr:         snap.Config.HTTPAddr,
			PinA:             snap.Config.PinA,
			PinB:             snap.Config.PinB,
			LEDEnabled:       snap.Config.LEDEnabled,
		},
	}
}

func buildNetwork(snap Snapshot, inner *StatusInner) {
	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       snap.Network.Type,
			IP:         snap.Network.IP,
			Status:     snap.Network.Status,
			Gateway:    snap.Network.Gateway,
			WifiStatus: snap.Network.WifiStatus,
			SSID:       snap.Network.SSID,
		}
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)
	buildNetwork(snap, &inner)

	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	buildNetwork(snap, &inner)

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
