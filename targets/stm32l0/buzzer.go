//go:build stm32l0

package main

import "device/stm32"

// buzzerHW drives TIM2 channel 1, routed to the piezo on PA0 (AF2).
type buzzerHW struct{}

func (buzzerHW) EnableOutput() {
	// PA0 to alternate function 2.
	stm32.GPIOA.MODER.ReplaceBits(2<<(0*2), 0x3<<(0*2), 0)
	stm32.GPIOA.AFRL.ReplaceBits(2<<(0*4), 0xF<<(0*4), 0)

	// PWM mode 1 with preloaded compare, channel output on.
	stm32.TIM2.CCMR1_Output.ReplaceBits(6<<stm32.TIM_CCMR1_Output_OC1M_Pos,
		stm32.TIM_CCMR1_Output_OC1M_Msk, 0)
	stm32.TIM2.CCMR1_Output.SetBits(stm32.TIM_CCMR1_Output_OC1PE)
	stm32.TIM2.CCER.SetBits(stm32.TIM_CCER_CC1E)
	stm32.TIM2.CR1.SetBits(stm32.TIM_CR1_ARPE)
}

func (buzzerHW) SetPrescaler(psc uint16) {
	stm32.TIM2.PSC.Set(uint32(psc))
}

func (buzzerHW) SetAutoReload(arr uint16) {
	stm32.TIM2.ARR.Set(uint32(arr))
}

func (buzzerHW) SetCompare(ccr uint16) {
	stm32.TIM2.CCR1.Set(uint32(ccr))
}

func (buzzerHW) EnableCounter() {
	stm32.TIM2.CR1.SetBits(stm32.TIM_CR1_CEN)
}

func (buzzerHW) DisableCounter() {
	stm32.TIM2.CR1.ClearBits(stm32.TIM_CR1_CEN)
}
