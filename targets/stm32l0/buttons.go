//go:build stm32l0

package main

import (
	"device/stm32"
	"runtime/interrupt"

	"quartz/hal/button"
)

// Buttons: alarm on PB4, mode on PB5, active low with internal pull-ups,
// falling-edge EXTI.
const (
	alarmPin = 4
	modePin  = 5
)

var buttonHandler func(button.Button)

// buttonsHW owns the two EXTI lines.
type buttonsHW struct{}

func (*buttonsHW) Bind(handler func(button.Button)) {
	buttonHandler = handler

	for _, pin := range []uint32{alarmPin, modePin} {
		// Input with pull-up.
		stm32.GPIOB.MODER.ReplaceBits(0, 0x3<<(pin*2), 0)
		stm32.GPIOB.PUPDR.ReplaceBits(1<<(pin*2), 0x3<<(pin*2), 0)
	}

	// Route lines 4 and 5 to port B, unmask, falling edge.
	stm32.SYSCFG.EXTICR2.ReplaceBits(1<<0, 0xF<<0, 0)
	stm32.SYSCFG.EXTICR2.ReplaceBits(1<<4, 0xF<<4, 0)
	stm32.EXTI.IMR.SetBits(1<<alarmPin | 1<<modePin)
	stm32.EXTI.FTSR.SetBits(1<<alarmPin | 1<<modePin)

	intr := interrupt.New(stm32.IRQ_EXTI4_15, handleButtons)
	intr.Enable()
}

func handleButtons(interrupt.Interrupt) {
	if buttonHandler == nil {
		return
	}
	pending := stm32.EXTI.PR.Get()
	if pending&(1<<alarmPin) != 0 {
		buttonHandler(button.Alarm)
	}
	if pending&(1<<modePin) != 0 {
		buttonHandler(button.Mode)
	}
}

func (*buttonsHW) ClearPending(b button.Button) {
	switch b {
	case button.Alarm:
		stm32.EXTI.PR.Set(1 << alarmPin)
	case button.Mode:
		stm32.EXTI.PR.Set(1 << modePin)
	}
}
