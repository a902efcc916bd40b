package logic

import "time"

// RateTracker counts recent detents in a sliding time window so the daemon
// can tell a slow click from a fast spin. Owned by the single run loop, so
// no locking; time comes from the caller like everything else in this package.
type RateTracker struct {
	window      time.Duration
	recentSteps []rateStep
}

type rateStep struct {
	timestamp time.Time
	rotation  Rotation
}

// NewRateTracker creates a tracker with the given window.
// A window <= 0 disables tracking; AddStep then always returns 1.
func NewRateTracker(window time.Duration) *RateTracker {
	return &RateTracker{
		window:      window,
		recentSteps: make([]rateStep, 0, 16),
	}
}

// AddStep records one detent and returns the count of steps in the same
// direction within the window, including the one just added.
func (r *RateTracker) AddStep(rotation Rotation, now time.Time) int {
	if r.window <= 0 {
		return 1
	}

	cutoff := now.Add(-r.window)

	// Drop steps that fell out of the window, reusing the backing array.
	filtered := r.recentSteps[:0]
	for _, s := range r.recentSteps {
		if s.timestamp.After(cutoff) {
			filtered = append(filtered, s)
		}
	}

	filtered = append(filtered, rateStep{timestamp: now, rotation: rotation})
	r.recentSteps = filtered

	sameDir := 0
	for _, s := range filtered {
		if s.rotation == rotation {
			sameDir++
		}
	}
	return sameDir
}

// StepsInWindow returns how many detents of either direction are still
// inside the window as of now.
func (r *RateTracker) StepsInWindow(now time.Time) int {
	if r.window <= 0 {
		return 0
	}
	cutoff := now.Add(-r.window)
	n := 0
	for _, s := range r.recentSteps {
		if s.timestamp.After(cutoff) {
			n++
		}
	}
	return n
}
