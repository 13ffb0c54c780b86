package sim

import "quartz/hal/adc"

// adcHW is the converter facet of the device.
type adcHW struct {
	d *Device
}

// ADC returns the converter's register surface.
func (d *Device) ADC() adc.Hardware {
	return adcHW{d: d}
}

func (h adcHW) SetClockMode() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.adcClockOn = true
	h.d.record("adc:clockmode")
}

func (h adcHW) EnableReferenceBuffers() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.refBufsOn = true
	h.d.record("adc:refbufs")
}

func (h adcHW) SelectChannels() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.channelsSel = true
	h.d.record("adc:chselr")
}

func (h adcHW) EnableReferences() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.refsOn = true
	h.d.record("adc:refs-on")
}

func (h adcHW) DisableReferences() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.refsOn = false
	h.d.record("adc:refs-off")
}

// PowerOn models ADEN: the converter reports ready once powered.
func (h adcHW) PowerOn() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.powered = true
	h.d.ready = true
	h.d.record("adc:aden")
}

// PowerOff models ADDIS. The calibration register does not survive the
// power cycle; the backup domain copy does.
func (h adcHW) PowerOff() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.powered = false
	h.d.ready = false
	h.d.calFactor = 0
	h.d.calFactorSet = false
	h.d.record("adc:addis")
}

func (h adcHW) Ready() bool {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	return h.d.ready
}

func (h adcHW) ClearReady() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.ready = false
}

// StartCalibration models ADCAL. Self-calibration is only legal while the
// converter is disabled; the real part ignores the start otherwise, which
// would hang the completion spin, so the model faults loudly instead.
func (h adcHW) StartCalibration() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	if h.d.powered {
		panic("sim: adc calibration started while enabled")
	}
	h.d.calDone = true
	h.d.calFactor = h.d.cfg.Factor
	h.d.record("adc:adcal")
}

func (h adcHW) Calibrating() bool {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	return false
}

func (h adcHW) CalibrationDone() bool {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	return h.d.calDone
}

func (h adcHW) ClearCalibrationDone() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.calDone = false
}

func (h adcHW) CalibrationFactor() uint8 {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	return h.d.calFactor
}

func (h adcHW) SetCalibrationFactor(factor uint8) {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	h.d.calFactor = factor
	h.d.calFactorSet = true
	h.d.record("adc:calfact")
}

// StartSequence models ADSTART: the sequence produces the reference-voltage
// conversion followed by the temperature conversion.
func (h adcHW) StartSequence() {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	if !h.d.powered {
		panic("sim: adc conversion started while disabled")
	}
	h.d.seq = []uint16{h.d.cfg.Vrefint, h.d.cfg.Tsense}
	h.d.seqActive = true
	h.d.record("adc:adstart")
}

func (h adcHW) SequenceActive() bool {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	return h.d.seqActive
}

func (h adcHW) ConversionDone() bool {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	return len(h.d.seq) > 0
}

// Data models a DR read: it pops the finished conversion and, after the
// last one, drops the sequence-active flag.
func (h adcHW) Data() uint16 {
	h.d.mu.Lock()
	defer h.d.mu.Unlock()
	if len(h.d.seq) == 0 {
		panic("sim: adc data read with no conversion done")
	}
	v := h.d.seq[0]
	h.d.seq = h.d.seq[1:]
	if len(h.d.seq) == 0 {
		h.d.seqActive = false
	}
	h.d.record("adc:dr")
	return v
}

func (h adcHW) Factory() adc.FactoryCalibration {
	return h.d.Factory()
}
