// Package adc drives the analog-to-digital converter used for battery
// voltage and temperature readings.
//
// The driver has two variants, Disabled and Enabled; each operation is
// defined only on the variant where it is hardware-safe, and a transition
// consumes its receiver and returns the next variant after spinning on the
// hardware status flag. Returning from a transition is proof the converter
// has reached the new state.
//
// The self-calibration factor is not retained across a disable/enable cycle
// of the converter itself, so it is persisted in the backup domain and
// written back into the calibration register before every measurement.
package adc

import (
	"quartz/core"
	"quartz/hal/backup"
	"quartz/hal/system"
)

// FactoryCalibration holds the factory-programmed calibration points read
// from system ROM: the VREFINT reading at 3.0 V and the temperature sensor
// readings at 30 °C and 130 °C.
type FactoryCalibration struct {
	VrefintCal uint16
	TsCal1     uint16
	TsCal2     uint16
}

// Hardware is the register surface of the converter. Method names follow the
// register sequence they drive (ADEN/ADRDY, ADCAL/EOCAL/CALFACT,
// ADSTART/EOC/DR).
type Hardware interface {
	// One-time configuration.
	SetClockMode()           // PCLK/2, low-frequency mode
	EnableReferenceBuffers() // SYSCFG buffers for VREFINT and the temperature sensor
	SelectChannels()         // channel 17 (VREFINT) and 18 (temperature)

	// Power sequencing.
	EnableReferences() // CCR VREFEN + TSEN
	DisableReferences()
	PowerOn()  // ADEN
	PowerOff() // ADDIS
	Ready() bool
	ClearReady()

	// Self-calibration.
	StartCalibration() // ADCAL
	Calibrating() bool
	CalibrationDone() bool // EOCAL
	ClearCalibrationDone()
	CalibrationFactor() uint8
	SetCalibrationFactor(factor uint8)

	// Conversion sequencing.
	StartSequence() // ADSTART
	SequenceActive() bool
	ConversionDone() bool // EOC
	Data() uint16         // reading clears EOC

	// Factory returns the ROM calibration points.
	Factory() FactoryCalibration
}

// Disabled is the converter with its references and conversion block powered
// down. The only reachable operations are Enable and Calibrate.
type Disabled struct {
	hw Hardware
}

// Enabled is the powered converter, ready to run conversion sequences.
type Enabled struct {
	hw Hardware
}

// Configure performs the one-time converter setup and returns the Disabled
// handle. Called exactly once at boot with raw hardware ownership.
func Configure(hw Hardware, sys *system.System) Disabled {
	sys.EnableADCClock()

	hw.SetClockMode()
	hw.EnableReferenceBuffers()
	hw.SelectChannels()

	return Disabled{hw: hw}
}

// Enable powers the references and the conversion block. Spins until the
// hardware reports ready; there is no partially-enabled state observable to
// the caller.
//
// The references have a maximum start time of 10 µs; at 65.536 kHz a single
// clock cycle is ~15 µs, so they are stable by the time the converter
// reports ready.
func (a Disabled) Enable() Enabled {
	a.hw.EnableReferences()
	a.hw.PowerOn()

	for !a.hw.Ready() {
	}
	a.hw.ClearReady()

	return Enabled{hw: a.hw}
}

// Calibrate runs the converter's self-calibration and persists the resulting
// factor. Idempotent; must complete before any subsequent Enable or Measure.
// A calibration that never completes is an unrecoverable hardware fault, so
// the spin has no timeout.
func (a Disabled) Calibrate(store *backup.Store) {
	a.hw.StartCalibration()

	for !a.hw.CalibrationDone() {
	}
	a.hw.ClearCalibrationDone()

	store.Store(a.hw.CalibrationFactor())

	// ADCAL must read back as zero before any other operation.
	for a.hw.Calibrating() {
	}
}

// Disable powers down the references and the conversion block, consuming the
// Enabled handle.
func (e Enabled) Disable() Disabled {
	e.hw.DisableReferences()
	e.hw.PowerOff()

	return Disabled{hw: e.hw}
}

// Measure runs one conversion sequence and returns the raw sample pair.
//
// The persisted calibration factor is written back first, because the
// converter's own calibration register is cleared across a power cycle while
// the backup copy is not. The two reads happen inside an interrupt-masked
// critical section so the VREFINT/temperature pair can never interleave with
// another conversion start.
func (e Enabled) Measure(store *backup.Store) Measurement {
	e.hw.SetCalibrationFactor(store.Load())

	var m Measurement

	state := core.DisableInterrupts()
	e.hw.StartSequence()
	m.Vrefint = e.read()
	m.Tsense = e.read()
	core.RestoreInterrupts(state)

	// ADSTART must read back as zero before the sequence counts as done.
	for e.hw.SequenceActive() {
	}

	return m
}

// read waits for the current conversion to finish and returns its data.
func (e Enabled) read() uint16 {
	for !e.hw.ConversionDone() {
	}
	return e.hw.Data()
}

// Factory exposes the ROM calibration points for converting measurements.
func (e Enabled) Factory() FactoryCalibration { return e.hw.Factory() }
