//go:build stm32l0

package main

import (
	"device/stm32"
	"runtime/volatile"
	"unsafe"

	"quartz/hal/adc"
)

// Factory calibration words in system ROM.
var (
	romVrefintCal = (*volatile.Register16)(unsafe.Pointer(uintptr(0x1FF80078)))
	romTsCal1     = (*volatile.Register16)(unsafe.Pointer(uintptr(0x1FF8007A)))
	romTsCal2     = (*volatile.Register16)(unsafe.Pointer(uintptr(0x1FF8007E)))
)

// Internal channels: 17 is VREFINT, 18 the temperature sensor.
const adcChannels = 1<<17 | 1<<18

// adcHW drives the converter's register block.
type adcHW struct{}

func (adcHW) SetClockMode() {
	// PCLK/2 plus low-frequency mode; the bus clock is far below the
	// converter's 3.5 MHz threshold.
	stm32.ADC.CFGR2.ReplaceBits(1<<stm32.ADC_CFGR2_CKMODE_Pos,
		stm32.ADC_CFGR2_CKMODE_Msk, 0)
	stm32.ADC.CCR.SetBits(stm32.ADC_CCR_LFMEN)
}

func (adcHW) EnableReferenceBuffers() {
	stm32.SYSCFG.CFGR3.SetBits(stm32.SYSCFG_CFGR3_EN_VREFINT |
		stm32.SYSCFG_CFGR3_ENBUF_VREFINT_ADC |
		stm32.SYSCFG_CFGR3_ENBUF_SENSOR_ADC)
}

func (adcHW) SelectChannels() {
	stm32.ADC.CHSELR.Set(adcChannels)
}

func (adcHW) EnableReferences() {
	stm32.ADC.CCR.SetBits(stm32.ADC_CCR_VREFEN | stm32.ADC_CCR_TSEN)
}

func (adcHW) DisableReferences() {
	stm32.ADC.CCR.ClearBits(stm32.ADC_CCR_VREFEN | stm32.ADC_CCR_TSEN)
}

func (adcHW) PowerOn() {
	stm32.ADC.CR.SetBits(stm32.ADC_CR_ADEN)
}

func (adcHW) PowerOff() {
	stm32.ADC.CR.SetBits(stm32.ADC_CR_ADDIS)
}

func (adcHW) Ready() bool {
	return stm32.ADC.ISR.HasBits(stm32.ADC_ISR_ADRDY)
}

func (adcHW) ClearReady() {
	stm32.ADC.ISR.Set(stm32.ADC_ISR_ADRDY)
}

func (adcHW) StartCalibration() {
	stm32.ADC.CR.SetBits(stm32.ADC_CR_ADCAL)
}

func (adcHW) Calibrating() bool {
	return stm32.ADC.CR.HasBits(stm32.ADC_CR_ADCAL)
}

func (adcHW) CalibrationDone() bool {
	return stm32.ADC.ISR.HasBits(stm32.ADC_ISR_EOCAL)
}

func (adcHW) ClearCalibrationDone() {
	stm32.ADC.ISR.Set(stm32.ADC_ISR_EOCAL)
}

func (adcHW) CalibrationFactor() uint8 {
	return uint8(stm32.ADC.CALFACT.Get())
}

func (adcHW) SetCalibrationFactor(factor uint8) {
	stm32.ADC.CALFACT.Set(uint32(factor))
}

func (adcHW) StartSequence() {
	stm32.ADC.CR.SetBits(stm32.ADC_CR_ADSTART)
}

func (adcHW) SequenceActive() bool {
	return stm32.ADC.CR.HasBits(stm32.ADC_CR_ADSTART)
}

func (adcHW) ConversionDone() bool {
	return stm32.ADC.ISR.HasBits(stm32.ADC_ISR_EOC)
}

func (adcHW) Data() uint16 {
	return uint16(stm32.ADC.DR.Get())
}

func (adcHW) Factory() adc.FactoryCalibration {
	return adc.FactoryCalibration{
		VrefintCal: romVrefintCal.Get(),
		TsCal1:     romTsCal1.Get(),
		TsCal2:     romTsCal2.Get(),
	}
}
