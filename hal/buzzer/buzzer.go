// Package buzzer drives the piezo buzzer from the PWM output of a hardware
// timer (TIM2 channel 1 on PA0).
//
// The driver has two variants, Stopped and Running, toggled by the timer's
// counter-enable bit. Frequency and duty cycle are settable in either state
// by writing the auto-reload and compare registers; the values are derived
// once, ahead of time, from the closed-form helpers below.
package buzzer

import "quartz/hal/system"

// Prescaler divides the system clock so the timer's base tick is 1 Hz.
const Prescaler = system.ClockFreq - 1

// Hardware is the register surface of the buzzer timer.
type Hardware interface {
	// EnableOutput routes the timer's channel 1 to the buzzer pin
	// (alternate function), selects PWM mode 1 and enables the channel
	// output.
	EnableOutput()
	// SetPrescaler writes the prescaler register.
	SetPrescaler(psc uint16)
	// SetAutoReload writes the auto-reload register.
	SetAutoReload(arr uint16)
	// SetCompare writes the channel 1 capture/compare register.
	SetCompare(ccr uint16)
	// EnableCounter and DisableCounter toggle the counter-enable bit.
	EnableCounter()
	DisableCounter()
}

// AutoReloadForFrequency computes the auto-reload value for a buzzer
// frequency in Hz: clock / (freq * (prescaler+1)) - 1, saturating at zero.
// Intended to be evaluated once at boot, not per beep.
func AutoReloadForFrequency(freq uint32) uint16 {
	ticks := uint32(system.ClockFreq) / (freq * (Prescaler + 1))
	if ticks == 0 {
		return 0
	}
	return uint16(ticks - 1)
}

// CompareForDuty computes the capture/compare value for a duty cycle in
// percent against a given auto-reload value.
func CompareForDuty(dutyPercent uint32, arr uint16) uint16 {
	return uint16(dutyPercent * uint32(arr) / 100)
}

// regs carries the operations legal in every state: frequency and duty may
// be reprogrammed whether or not the counter is running.
type regs struct {
	hw Hardware
}

// SetAutoReload sets the buzzer frequency via the auto-reload register.
func (r regs) SetAutoReload(arr uint16) { r.hw.SetAutoReload(arr) }

// SetCompare sets the duty cycle via the capture/compare register.
func (r regs) SetCompare(ccr uint16) { r.hw.SetCompare(ccr) }

// Stopped is the silent buzzer.
type Stopped struct {
	regs
}

// Running is the sounding buzzer.
type Running struct {
	regs
}

// Configure performs the one-time timer setup and returns the Stopped
// handle.
func Configure(hw Hardware, sys *system.System) Stopped {
	sys.EnableTimerClock()

	hw.EnableOutput()
	hw.SetPrescaler(Prescaler)

	return Stopped{regs{hw: hw}}
}

// Start enables the counter, consuming the Stopped handle.
func (s Stopped) Start() Running {
	s.hw.EnableCounter()
	return Running{s.regs}
}

// Stop disables the counter, consuming the Running handle.
func (r Running) Stop() Stopped {
	r.hw.DisableCounter()
	return Stopped{r.regs}
}
