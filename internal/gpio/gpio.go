// Package gpio provides GPIO access with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementations allow testing without hardware.
package gpio

// Reader reads the two encoder channel inputs.
type Reader interface {
	// Read returns the raw logic levels of channel A and channel B.
	// true = logic high (pulled up, idle), false = logic low (contact made).
	// Returns (a, b, error).
	Read() (bool, bool, error)

	// Close releases GPIO resources.
	Close() error
}

// Color is the on/off state of the three RGB LED channels.
type Color struct {
	R, G, B bool
}

// LED drives a common-cathode RGB LED over three output lines.
type LED interface {
	// Set turns each color channel fully on or off.
	Set(r, g, b bool) error

	// Close turns the LED off and releases GPIO resources.
	Close() error
}

// Default pin assignments (BCM numbering).
const (
	DefaultPinA = 17 // encoder channel A
	DefaultPinB = 18 // encoder channel B

	DefaultPinRed   = 22
	DefaultPinGreen = 23
	DefaultPinBlue  = 24
)
