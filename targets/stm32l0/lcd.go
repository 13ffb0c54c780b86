//go:build stm32l0

package main

import (
	"device/stm32"

	"quartz/hal/lcd"
)

// glassPin is one LCD common or segment line on a GPIO port.
type glassPin struct {
	port *stm32.GPIO_Type
	pin  uint32
}

// The glass uses commons 0-2 and the segment lines named in the segment
// table. All route through alternate function 11.
var glassPins = []glassPin{
	{stm32.GPIOA, 8},  // COM0
	{stm32.GPIOA, 9},  // COM1
	{stm32.GPIOA, 10}, // COM2
	{stm32.GPIOA, 1},  // SEG0
	{stm32.GPIOA, 2},  // SEG1
	{stm32.GPIOA, 3},  // SEG2
	{stm32.GPIOA, 6},  // SEG3
	{stm32.GPIOA, 7},  // SEG4
	{stm32.GPIOB, 0},  // SEG5
	{stm32.GPIOB, 1},  // SEG6
	{stm32.GPIOB, 3},  // SEG7
	{stm32.GPIOB, 4},  // SEG8
	{stm32.GPIOB, 5},  // SEG9
	{stm32.GPIOB, 10}, // SEG10
	{stm32.GPIOB, 11}, // SEG11
	{stm32.GPIOB, 12}, // SEG12
	{stm32.GPIOB, 13}, // SEG13
	{stm32.GPIOB, 14}, // SEG14
	{stm32.GPIOB, 15}, // SEG15
	{stm32.GPIOB, 8},  // SEG16
	{stm32.GPIOA, 15}, // SEG17
}

const lcdAF = 11

// lcdHW drives the display controller.
type lcdHW struct{}

func (lcdHW) EnablePins() {
	for _, p := range glassPins {
		p.port.MODER.ReplaceBits(2<<(p.pin*2), 0x3<<(p.pin*2), 0)
		if p.pin < 8 {
			p.port.AFRL.ReplaceBits(lcdAF<<(p.pin*4), 0xF<<(p.pin*4), 0)
		} else {
			p.port.AFRH.ReplaceBits(lcdAF<<((p.pin-8)*4), 0xF<<((p.pin-8)*4), 0)
		}
	}
}

func (lcdHW) Enable() {
	// 1/3 duty, 1/3 bias for the three commons; mid contrast; frame rate
	// divider against the 32.768 kHz LCD clock.
	stm32.LCD.CR.ReplaceBits(2<<stm32.LCD_CR_DUTY_Pos, stm32.LCD_CR_DUTY_Msk, 0)
	stm32.LCD.CR.ReplaceBits(2<<stm32.LCD_CR_BIAS_Pos, stm32.LCD_CR_BIAS_Msk, 0)

	stm32.LCD.FCR.ReplaceBits(1<<stm32.LCD_FCR_PS_Pos, stm32.LCD_FCR_PS_Msk, 0)
	stm32.LCD.FCR.ReplaceBits(1<<stm32.LCD_FCR_DIV_Pos, stm32.LCD_FCR_DIV_Msk, 0)
	stm32.LCD.FCR.ReplaceBits(4<<stm32.LCD_FCR_CC_Pos, stm32.LCD_FCR_CC_Msk, 0)
	for !stm32.LCD.SR.HasBits(stm32.LCD_SR_FCRSF) {
	}

	stm32.LCD.CR.SetBits(stm32.LCD_CR_LCDEN)
	for !stm32.LCD.SR.HasBits(stm32.LCD_SR_ENS) {
	}
	for !stm32.LCD.SR.HasBits(stm32.LCD_SR_RDY) {
	}
}

func (lcdHW) WriteFrame(f lcd.Frame) {
	for stm32.LCD.SR.HasBits(stm32.LCD_SR_UDR) {
	}
	stm32.LCD.RAM_COM0.Set(f[0])
	stm32.LCD.RAM_COM1.Set(f[1])
	stm32.LCD.RAM_COM2.Set(f[2])
	stm32.LCD.SR.SetBits(stm32.LCD_SR_UDR)
}
