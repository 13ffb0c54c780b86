//go:build stm32l0

package main

import (
	"device/arm"
	"device/stm32"
)

// systemHW drives RCC, PWR and the Cortex-M system control block.
type systemHW struct{}

func (systemHW) SetDeepSleep() {
	arm.SCB.SCR.SetBits(arm.SCB_SCR_SLEEPDEEP_Msk)
}

func (systemHW) SetClockRange() {
	// MSI range 0: 65.536 kHz.
	stm32.RCC.ICSCR.ReplaceBits(0, stm32.RCC_ICSCR_MSIRANGE_Msk, 0)
}

func (systemHW) EnablePowerInterface() {
	stm32.RCC.APB1ENR.SetBits(stm32.RCC_APB1ENR_PWREN)
}

func (systemHW) ConfigureRegulator() {
	// Range 3 (1.2 V), low-power regulator while sleeping, stop rather
	// than standby on deepsleep, backup domain writable.
	stm32.PWR.CR.ReplaceBits(3<<stm32.PWR_CR_VOS_Pos, stm32.PWR_CR_VOS_Msk, 0)
	stm32.PWR.CR.SetBits(stm32.PWR_CR_LPSDSR | stm32.PWR_CR_ULP | stm32.PWR_CR_DBP)
	stm32.PWR.CR.ClearBits(stm32.PWR_CR_PDDS)
}

func (systemHW) EnableSyscfgClock() {
	stm32.RCC.APB2ENR.SetBits(stm32.RCC_APB2ENR_SYSCFGEN)
}

func (systemHW) EnableGPIOClocks() {
	stm32.RCC.IOPENR.SetBits(stm32.RCC_IOPENR_IOPAEN |
		stm32.RCC_IOPENR_IOPBEN | stm32.RCC_IOPENR_IOPCEN)
}

func (systemHW) SelectLSEForRTC() {
	stm32.RCC.CSR.ReplaceBits(1<<stm32.RCC_CSR_RTCSEL_Pos,
		stm32.RCC_CSR_RTCSEL_Msk, 0)
	// Medium-high drive for the 32.768 kHz crystal.
	stm32.RCC.CSR.ReplaceBits(2<<stm32.RCC_CSR_LSEDRV_Pos,
		stm32.RCC_CSR_LSEDRV_Msk, 0)
}

func (systemHW) EnableLSE() {
	stm32.RCC.CSR.SetBits(stm32.RCC_CSR_LSEON)
}

func (systemHW) LSEReady() bool {
	return stm32.RCC.CSR.HasBits(stm32.RCC_CSR_LSERDY)
}

func (systemHW) EnableADCClock() {
	stm32.RCC.APB2ENR.SetBits(stm32.RCC_APB2ENR_ADCEN)
}

func (systemHW) EnableRTCClock() {
	stm32.RCC.CSR.SetBits(stm32.RCC_CSR_RTCEN)
}

func (systemHW) EnableTimerClock() {
	stm32.RCC.APB1ENR.SetBits(stm32.RCC_APB1ENR_TIM2EN)
}

func (systemHW) EnableLCDClock() {
	stm32.RCC.APB1ENR.SetBits(stm32.RCC_APB1ENR_LCDEN)
}

func (systemHW) EnterStop() {
	// Clear the standing wakeup flag, then halt until an interrupt.
	stm32.PWR.CR.SetBits(stm32.PWR_CR_CWUF)
	arm.Asm("wfi")
}
