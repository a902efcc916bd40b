//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealReader reads the encoder channels from actual hardware using the
// Linux GPIO character device.
type RealReader struct {
	chip *gpiocdev.Chip
	aPin *gpiocdev.Line
	bPin *gpiocdev.Line
}

// NewRealReader creates a GPIO reader for actual Raspberry Pi hardware.
// Mechanical encoders switch each channel to ground, so both lines are
// requested as inputs with internal pull-ups (idle = high).
func NewRealReader(pinA, pinB int) (*RealReader, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	aLine, err := chip.RequestLine(pinA, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request channel A pin %d: %w", pinA, err)
	}

	bLine, err := chip.RequestLine(pinB, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		aLine.Close()
		chip.Close()
		return nil, fmt.Errorf("request channel B pin %d: %w", pinB, err)
	}

	return &RealReader{
		chip: chip,
		aPin: aLine,
		bPin: bLine,
	}, nil
}

// Read returns the raw logic levels of channels A and B.
func (r *RealReader) Read() (bool, bool, error) {
	aRaw, err := r.aPin.Value()
	if err != nil {
		return false, false, fmt.Errorf("read channel A: %w", err)
	}

	bRaw, err := r.bPin.Value()
	if err != nil {
		return false, false, fmt.Errorf("read channel B: %w", err)
	}

	return aRaw != 0, bRaw != 0, nil
}

// Close releases GPIO resources.
// Reconfigures pins to input with pull-down (matching Pi boot defaults)
// before closing to ensure clean state for system shutdown/reboot.
func (r *RealReader) Close() error {
	var errs []error

	if r.aPin != nil {
		if err := r.aPin.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure channel A pin: %w", err))
		}
		if err := r.aPin.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close channel A pin: %w", err))
		}
	}
	if r.bPin != nil {
		if err := r.bPin.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure channel B pin: %w", err))
		}
		if err := r.bPin.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close channel B pin: %w", err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealLED drives a common-cathode RGB LED over three GPIO output lines.
type RealLED struct {
	chip     *gpiocdev.Chip
	channels [3]*gpiocdev.Line
}

// NewRealLED requests the three LED lines as outputs, initially off.
func NewRealLED(pinRed, pinGreen, pinBlue int) (*RealLED, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	led := &RealLED{chip: chip}
	for i, pin := range []int{pinRed, pinGreen, pinBlue} {
		line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
		if err != nil {
			led.closeLines()
			chip.Close()
			return nil, fmt.Errorf("request led pin %d: %w", pin, err)
		}
		led.channels[i] = line
	}
	return led, nil
}

// Set turns each color channel fully on or off.
func (l *RealLED) Set(r, g, b bool) error {
	for i, on := range []bool{r, g, b} {
		v := 0
		if on {
			v = 1
		}
		if err := l.channels[i].SetValue(v); err != nil {
			return fmt.Errorf("set led channel %d: %w", i, err)
		}
	}
	return nil
}

// Close turns the LED off and releases GPIO resources.
func (l *RealLED) Close() error {
	var errs []error

	for i, line := range l.channels {
		if line == nil {
			continue
		}
		if err := line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear led channel %d: %w", i, err))
		}
	}
	l.closeLines()

	if l.chip != nil {
		if err := l.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func (l *RealLED) closeLines() {
	for i, line := range l.channels {
		if line != nil {
			line.Close()
			l.channels[i] = nil
		}
	}
}
