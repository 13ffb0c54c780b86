// Package lcd renders the watch face on the segmented display. The segment
// and digit tables are static data describing the display glass; the display
// controller itself only ever sees a finished Frame.
package lcd

import (
	"quartz/hal/rtc"
	"quartz/hal/system"
)

// Hardware is the register surface of the display controller.
type Hardware interface {
	// EnablePins assigns the common and segment pins to the controller's
	// alternate function.
	EnablePins()
	// Enable configures and starts the controller.
	Enable()
	// WriteFrame stores the segment words into display RAM and requests an
	// update.
	WriteFrame(f Frame)
}

// Display is the configured watch face.
type Display struct {
	hw Hardware
}

// Configure performs the one-time display setup.
func Configure(hw Hardware, sys *system.System) *Display {
	sys.EnableLCDClock()

	hw.EnablePins()
	hw.Enable()

	return &Display{hw: hw}
}

// ShowTime renders a time on the six digit positions.
func (d *Display) ShowTime(t rtc.Time) {
	f := DigitFrame(0, t.HourTens).
		Or(DigitFrame(1, t.HourUnits)).
		Or(DigitFrame(2, t.MinuteTens)).
		Or(DigitFrame(3, t.MinuteUnits)).
		Or(DigitFrame(4, t.SecondTens)).
		Or(DigitFrame(5, t.SecondUnits))

	d.hw.WriteFrame(f)
}

// Clear blanks the display.
func (d *Display) Clear() {
	d.hw.WriteFrame(Blank)
}
