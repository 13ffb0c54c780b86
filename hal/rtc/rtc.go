// Package rtc drives the real-time clock, which measures wall time from the
// low-speed external oscillator and raises the 1 Hz wakeup interrupt that
// paces the whole watch.
//
// The clock has two variants: Run, where time advances and the time register
// is read-only, and Init, where the clock is stopped and the time may be
// set. Transitions spin on the INITF status flag, so holding a handle is
// proof of the mode it names.
package rtc

import "quartz/hal/system"

// Hardware is the register surface of the clock. The target implements it
// over the RTC and EXTI blocks; the simulator models a ticking clock with an
// always-powered domain.
type Hardware interface {
	// Unlock disables write protection (the 0xCA/0x53 key sequence).
	Unlock()
	// SetBypassShadow bypasses the shadow registers; required because the
	// APB clock is far slower than the RTC's own clock.
	SetBypassShadow()
	// SetWakeupClock selects ck_spre (1 Hz) as the wakeup timer clock.
	SetWakeupClock()
	// EnableWakeup enables the wakeup timer and its interrupt, with the
	// matching EXTI line configured for rising-edge events.
	EnableWakeup()
	// BindWakeup installs the handler invoked in interrupt context on every
	// wakeup tick.
	BindWakeup(handler func())

	// ReadTime performs one read of the time register.
	ReadTime() Time
	// WriteTime sets the time register. Only legal in init mode.
	WriteTime(t Time)

	// PendingWakeup reports the wakeup timer interrupt flag (WUTF).
	PendingWakeup() bool
	// ClearWakeup clears the wakeup timer interrupt flag.
	ClearWakeup()

	// EnterInit requests initialisation mode; InitActive reflects INITF.
	EnterInit()
	InitActive() bool
	ExitInit()
}

// Run is the free-running clock. Time is read-only.
type Run struct {
	hw Hardware
}

// Init is the stopped clock. The time registers are writable.
type Init struct {
	hw Hardware
}

// Configure performs the one-time clock setup and returns the Run handle.
// The watch face updates once per second, so the wakeup timer is driven by
// the 1 Hz ck_spre clock.
func Configure(hw Hardware, sys *system.System) Run {
	hw.Unlock()
	hw.SetBypassShadow()
	hw.SetWakeupClock()
	hw.EnableWakeup()

	sys.EnableRTCClock()

	return Run{hw: hw}
}

// Time returns the current time.
//
// The read bus runs far slower than the clock itself, so the register is
// read twice; if the seconds field differs, a tick occurred mid-read and a
// third read is authoritative.
func (r Run) Time() Time {
	first := r.hw.ReadTime()
	second := r.hw.ReadTime()

	if first.SecondUnits != second.SecondUnits {
		return r.hw.ReadTime()
	}

	return second
}

// PendingWakeup reports whether the wakeup timer fired, clearing the flag if
// it did.
func (r Run) PendingWakeup() bool {
	if !r.hw.PendingWakeup() {
		return false
	}
	r.hw.ClearWakeup()
	return true
}

// Init stops the clock for time setting. Spins until the hardware reports
// initialisation mode is active.
func (r Run) Init() Init {
	r.hw.EnterInit()

	for !r.hw.InitActive() {
	}

	return Init{hw: r.hw}
}

// SetTime writes the time registers. Only reachable while stopped.
func (i Init) SetTime(t Time) {
	i.hw.WriteTime(t)
}

// Run restarts the clock. Spins until initialisation mode has been left.
func (i Init) Run() Run {
	i.hw.ExitInit()

	for i.hw.InitActive() {
	}

	return Run{hw: i.hw}
}
