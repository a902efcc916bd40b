// Package led maps encoder position onto an RGB indicator color.
// Turning the knob clockwise steps forward through the wheel, counter-
// clockwise steps back; hardware access goes through the gpio package.
package led

import "github.com/sweeney/rotary-sensor/internal/gpio"

// Wheel is the color cycle, one entry per detent.
// Order: off, red, green, blue, yellow, cyan, magenta, white.
var Wheel = []gpio.Color{
	{},
	{R: true},
	{G: true},
	{B: true},
	{R: true, G: true},
	{G: true, B: true},
	{R: true, B: true},
	{R: true, G: true, B: true},
}

// Name returns a display name for a wheel color.
func Name(c gpio.Color) string {
	switch c {
	case gpio.Color{}:
		return "off"
	case gpio.Color{R: true}:
		return "red"
	case gpio.Color{G: true}:
		return "green"
	case gpio.Color{B: true}:
		return "blue"
	case gpio.Color{R: true, G: true}:
		return "yellow"
	case gpio.Color{G: true, B: true}:
		return "cyan"
	case gpio.Color{R: true, B: true}:
		return "magenta"
	default:
		return "white"
	}
}

// ColorFor returns the wheel color for a signed detent position.
// Negative positions wrap backwards through the wheel.
func ColorFor(position int) gpio.Color {
	n := len(Wheel)
	i := ((position % n) + n) % n
	return Wheel[i]
}

// Driver writes wheel colors to an LED, skipping writes that would not
// change the displayed color.
type Driver struct {
	led     gpio.LED
	current gpio.Color
	written bool
}

// NewDriver creates a Driver over the given LED.
func NewDriver(led gpio.LED) *Driver {
	return &Driver{led: led}
}

// Show sets the LED to the color for the given position.
func (d *Driver) Show(position int) error {
	c := ColorFor(position)
	if d.written && c == d.current {
		return nil
	}
	if err := d.led.Set(c.R, c.G, c.B); err != nil {
		return err
	}
	d.current = c
	d.written = true
	return nil
}

// Current returns the color last written, and whether any write happened.
func (d *Driver) Current() (gpio.Color, bool) {
	return d.current, d.written
}
