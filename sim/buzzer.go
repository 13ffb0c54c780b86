package sim

import "quartz/hal/buzzer"

// buzzerHW is the buzzer timer facet.
type buzzerHW struct {
	d *Device
}

// Buzzer returns the buzzer timer's register surface.
func (d *Device) Buzzer() buzzer.Hardware {
	return buzzerHW{d: d}
}

func (h buzzerHW) EnableOutput() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.outputOn = true
	h.d.record("tim:output")
}

func (h buzzerHW) SetPrescaler(psc uint16) {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.psc = psc
}

func (h buzzerHW) SetAutoReload(arr uint16) {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.arr = arr
}

func (h buzzerHW) SetCompare(ccr uint16) {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.ccr = ccr
}

func (h buzzerHW) EnableCounter() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.counterOn = true
	h.d.record("tim:cen-on")
}

func (h buzzerHW) DisableCounter() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.counterOn = false
	h.d.record("tim:cen-off")
}
