package sim

import "quartz/hal/button"

// buttonHW is the button input facet.
type buttonHW struct {
	d *Device
}

// Buttons returns the button interrupt surface.
func (d *Device) Buttons() button.Lines {
	return buttonHW{d: d}
}

func (h buttonHW) Bind(handler func(button.Button)) {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.btnHandler = handler
}

func (h buttonHW) ClearPending(b button.Button) {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.btnPending[b] = false
}

// Pending reports a button's interrupt flag. Test inspection surface.
func (d *Device) Pending(b button.Button) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.btnPending[b]
}
