package sim

import "quartz/hal/lcd"

// lcdHW is the display controller facet.
type lcdHW struct {
	d *Device
}

// LCD returns the display controller's register surface.
func (d *Device) LCD() lcd.Hardware {
	return lcdHW{d: d}
}

func (h lcdHW) EnablePins() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.lcdPinsOn = true
}

func (h lcdHW) Enable() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.lcdOn = true
}

func (h lcdHW) WriteFrame(f lcd.Frame) {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	if !h.d.lcdOn {
		panic("sim: lcd frame written while controller disabled")
	}
	h.d.frame = f
}
