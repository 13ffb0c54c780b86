// Package sim is the host-side model of the watch hardware. It implements
// every peripheral's register surface with realistic flag behavior, an
// always-powered backup domain, stop-mode blocking and wake events, so the
// drivers, the scheduler and the application run unmodified on a
// workstation, both under test and inside the desktop simulator.
package sim

import (
	"sync"

	"quartz/hal/adc"
	"quartz/hal/button"
	"quartz/hal/lcd"
	"quartz/hal/rtc"
)

// Config sets the factory calibration points, the factor produced by ADC
// self-calibration and the raw samples conversions return.
type Config struct {
	VrefintCal uint16
	TsCal1     uint16
	TsCal2     uint16

	Factor  uint8
	Vrefint uint16
	Tsense  uint16
}

// DefaultConfig returns values typical of a real part: VREFINT_CAL near
// 1.67 k and temperature sensor points 180 counts apart.
func DefaultConfig() Config {
	return Config{
		VrefintCal: 1671,
		TsCal1:     670,
		TsCal2:     850,
		Factor:     0x42,
		Vrefint:    1650,
		Tsense:     700,
	}
}

// Device is the simulated watch hardware. One instance models the whole
// chip; per-peripheral facets implement the hal interfaces.
type Device struct {
	mu  sync.Mutex
	cfg Config

	trace   []string
	tracing bool

	wakeCh    chan struct{}
	stopCount int

	// ADC registers and flags.
	adcClockOn   bool
	refBufsOn    bool
	channelsSel  bool
	refsOn       bool
	powered      bool
	ready        bool
	calDone      bool
	calFactor    uint8 // CALFACT; cleared when the converter powers down
	calFactorSet bool
	seq          []uint16
	seqActive    bool

	// RTC.
	time         rtc.Time
	wutf         bool
	initMode     bool
	wakeupOn     bool
	wakeHandler  func()
	tearNextRead bool

	// Backup domain. Survives PowerCycle.
	backup uint8

	// Buzzer timer.
	timClockOn bool
	outputOn   bool
	psc        uint16
	arr        uint16
	ccr        uint16
	counterOn  bool

	// LCD.
	lcdClockOn bool
	lcdPinsOn  bool
	lcdOn      bool
	frame      lcd.Frame

	// System.
	deepSleep bool
	lseOn     bool

	// Buttons.
	btnHandler func(button.Button)
	btnPending [2]bool
}

// New creates a powered-up device.
func New(cfg Config) *Device {
	return &Device{
		cfg:    cfg,
		wakeCh: make(chan struct{}, 1),
	}
}

// TickSecond advances the clock by one second and raises the wakeup
// interrupt, unless the clock is stopped in init mode.
func (d *Device) TickSecond() {
	d.mu.Lock()
	if d.initMode {
		d.mu.Unlock()
		return
	}
	d.advanceSecond()
	d.wutf = true
	handler := d.wakeHandler
	d.mu.Unlock()

	if handler != nil {
		handler()
	}
	d.wakeEvent()
}

// Press raises a button's edge interrupt.
func (d *Device) Press(b button.Button) {
	d.mu.Lock()
	d.btnPending[b] = true
	handler := d.btnHandler
	d.mu.Unlock()

	if handler != nil {
		handler(b)
	}
	d.wakeEvent()
}

// TearNextRead makes a clock tick land between the next two reads of the
// time register, so consecutive reads disagree.
func (d *Device) TearNextRead() {
	d.mu.Lock()
	d.tearNextRead = true
	d.mu.Unlock()
}

// PowerCycle models a full power-down of everything except the backup
// domain: peripheral registers and flags are lost, the backup register and
// the clock's time survive on battery.
func (d *Device) PowerCycle() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.adcClockOn, d.refBufsOn, d.channelsSel = false, false, false
	d.refsOn, d.powered, d.ready = false, false, false
	d.calDone, d.calFactorSet = false, false
	d.calFactor = 0
	d.seq, d.seqActive = nil, false

	d.wutf, d.initMode, d.wakeupOn = false, false, false

	d.timClockOn, d.outputOn, d.counterOn = false, false, false
	d.psc, d.arr, d.ccr = 0, 0, 0

	d.lcdClockOn, d.lcdPinsOn, d.lcdOn = false, false, false
	d.frame = lcd.Blank

	d.deepSleep, d.lseOn = false, false
}

// SetSamples changes the raw values the next conversion sequence produces.
func (d *Device) SetSamples(vrefint, tsense uint16) {
	d.mu.Lock()
	d.cfg.Vrefint = vrefint
	d.cfg.Tsense = tsense
	d.mu.Unlock()
}

// SetTime overwrites the clock directly, bypassing the init-mode gate.
// Simulation setup only.
func (d *Device) SetTime(t rtc.Time) {
	d.mu.Lock()
	d.time = t
	d.mu.Unlock()
}

// Time returns the clock's current value.
func (d *Device) Time() rtc.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.time
}

// Frame returns the segment words last written to display RAM.
func (d *Device) Frame() lcd.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frame
}

// BuzzerOn reports whether the buzzer counter is running.
func (d *Device) BuzzerOn() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.counterOn
}

// BuzzerRegisters returns the prescaler, auto-reload and compare values.
func (d *Device) BuzzerRegisters() (psc, arr, ccr uint16) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.psc, d.arr, d.ccr
}

// BackupValue reads the backup register without going through a driver.
func (d *Device) BackupValue() uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.backup
}

// StopEntries reports how many times the core entered stop mode.
func (d *Device) StopEntries() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopCount
}

// EnableTrace starts recording the register operation sequence.
func (d *Device) EnableTrace() {
	d.mu.Lock()
	d.tracing = true
	d.trace = nil
	d.mu.Unlock()
}

// Trace returns the recorded register operations.
func (d *Device) Trace() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.trace))
	copy(out, d.trace)
	return out
}

// Factory returns the simulated ROM calibration points.
func (d *Device) Factory() adc.FactoryCalibration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return adc.FactoryCalibration{
		VrefintCal: d.cfg.VrefintCal,
		TsCal1:     d.cfg.TsCal1,
		TsCal2:     d.cfg.TsCal2,
	}
}

func (d *Device) record(op string) {
	if d.tracing {
		d.trace = append(d.trace, op)
	}
}

// advanceSecond increments the BCD time with rollover at 23:59:59. Callers
// hold d.mu.
func (d *Device) advanceSecond() {
	t := &d.time
	t.SecondUnits++
	if t.SecondUnits < 10 {
		return
	}
	t.SecondUnits = 0
	t.SecondTens++
	if t.SecondTens < 6 {
		return
	}
	t.SecondTens = 0
	t.MinuteUnits++
	if t.MinuteUnits < 10 {
		return
	}
	t.MinuteUnits = 0
	t.MinuteTens++
	if t.MinuteTens < 6 {
		return
	}
	t.MinuteTens = 0
	hour := t.HourTens*10 + t.HourUnits
	hour++
	if hour >= 24 {
		hour = 0
	}
	t.HourTens = hour / 10
	t.HourUnits = hour % 10
}

// wakeEvent signals stop mode that an interrupt fired.
func (d *Device) wakeEvent() {
	select {
	case d.wakeCh <- struct{}{}:
	default:
	}
}
