package sim

import "quartz/hal/system"

// systemHW is the clock/power controller facet.
type systemHW struct {
	d *Device
}

// System returns the clock/power register surface.
func (d *Device) System() system.Hardware {
	return systemHW{d: d}
}

func (h systemHW) SetDeepSleep() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.deepSleep = true
	h.d.record("sys:sleepdeep")
}

func (h systemHW) SetClockRange() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.record("sys:msirange0")
}

func (h systemHW) EnablePowerInterface() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.record("sys:pwren")
}

func (h systemHW) ConfigureRegulator() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.record("sys:regulator")
}

func (h systemHW) EnableSyscfgClock() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.record("sys:syscfgen")
}

func (h systemHW) EnableGPIOClocks() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.record("sys:iopen")
}

func (h systemHW) SelectLSEForRTC() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.record("sys:rtcsel-lse")
}

// EnableLSE turns the oscillator on; it stabilises immediately in
// simulation.
func (h systemHW) EnableLSE() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.lseOn = true
	h.d.record("sys:lseon")
}

func (h systemHW) LSEReady() bool {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	return h.d.lseOn
}

func (h systemHW) EnableADCClock() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.record("sys:adcen")
}

func (h systemHW) EnableRTCClock() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.record("sys:rtcen")
}

func (h systemHW) EnableTimerClock() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.record("sys:tim2en")
}

func (h systemHW) EnableLCDClock() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.record("sys:lcden")
}

// EnterStop parks the "core" until the next simulated interrupt: a clock
// tick or a button edge. All other activity is frozen, exactly like stop
// mode with every clock but the wake sources halted.
func (h systemHW) EnterStop() {
	h.d.mu.Lock()
	h.d.stopCount++
	h.d.mu.Unlock()

	<-h.d.wakeCh
}
