// Package system owns the one-time clock and power configuration: MSI clock
// range, voltage regulator, LSE oscillator, and per-peripheral clock gating.
// Other drivers receive their clock-enable capability through *System rather
// than touching RCC themselves.
package system

// ClockFreq is the system clock frequency in Hz (MSI range 0). Every timing
// constant in the firmware is derived from it.
const ClockFreq = 65536

// Hardware is the register surface of the clock/power controller. The target
// implements it over RCC/PWR/SCB; the simulator records the configuration.
type Hardware interface {
	// SetDeepSleep configures the core to enter stop mode on WFI.
	SetDeepSleep()
	// SetClockRange selects MSI range 0 (~65.536 kHz).
	SetClockRange()
	// EnablePowerInterface enables the PWR peripheral clock.
	EnablePowerInterface()
	// ConfigureRegulator selects regulator range 3 (1.2 V), low-power
	// regulator mode during sleep, stop mode on deepsleep, and unlocks
	// backup-domain write access.
	ConfigureRegulator()
	// EnableSyscfgClock enables the SYSCFG peripheral clock.
	EnableSyscfgClock()
	// EnableGPIOClocks enables the GPIO port clocks (A, B, C).
	EnableGPIOClocks()
	// SelectLSEForRTC routes the LSE to the RTC/LCD and sets its drive
	// strength to medium-high.
	SelectLSEForRTC()
	// EnableLSE turns the low-speed external oscillator on.
	EnableLSE()
	// LSEReady reports whether the LSE has stabilised.
	LSEReady() bool

	// Peripheral clock gates. Each also configures whether the peripheral
	// clock keeps running during sleep.
	EnableADCClock()
	EnableRTCClock()
	EnableTimerClock()
	EnableLCDClock()

	// EnterStop commits the core to stop mode. Returns only after a wake
	// interrupt has fired.
	EnterStop()
}

// System is the configured clock/power manager.
type System struct {
	hw Hardware
}

// Configure performs the one-time clock tree and regulator setup and blocks
// until the LSE has stabilised. A stuck oscillator is an unrecoverable
// hardware fault, so the wait has no timeout.
func Configure(hw Hardware) *System {
	hw.SetDeepSleep()
	hw.SetClockRange()
	hw.EnablePowerInterface()
	hw.ConfigureRegulator()
	hw.EnableSyscfgClock()
	hw.EnableGPIOClocks()
	hw.SelectLSEForRTC()
	hw.EnableLSE()

	for !hw.LSEReady() {
	}

	return &System{hw: hw}
}

// EnableADCClock enables the ADC peripheral clock. The ADC clock is gated
// off during sleep.
func (s *System) EnableADCClock() { s.hw.EnableADCClock() }

// EnableRTCClock enables the RTC.
func (s *System) EnableRTCClock() { s.hw.EnableRTCClock() }

// EnableTimerClock enables the buzzer timer clock. Gated off during sleep.
func (s *System) EnableTimerClock() { s.hw.EnableTimerClock() }

// EnableLCDClock enables the LCD controller clock. The LCD keeps its clock
// during sleep so the face stays visible in stop mode.
func (s *System) EnableLCDClock() { s.hw.EnableLCDClock() }

// Stop enters stop mode and returns after the next wake interrupt. All
// clocks except the wake sources are halted while stopped.
func (s *System) Stop() { s.hw.EnterStop() }
