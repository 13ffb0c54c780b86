//go:build stm32l0

package main

import (
	"device/stm32"
	"runtime/interrupt"

	"quartz/hal/rtc"
)

// EXTI line 20 latches the RTC wakeup event for stop-mode exit.
const extiLineRTCWakeup = 1 << 20

var rtcWakeHandler func()

// rtcHW drives the clock's register block and its interrupt.
type rtcHW struct{}

func (*rtcHW) Unlock() {
	stm32.RTC.WPR.Set(0xCA)
	stm32.RTC.WPR.Set(0x53)
}

func (*rtcHW) SetBypassShadow() {
	stm32.RTC.CR.SetBits(stm32.RTC_CR_BYPSHAD)
}

func (*rtcHW) SetWakeupClock() {
	// The wakeup timer clock may only change while the timer is off.
	stm32.RTC.CR.ClearBits(stm32.RTC_CR_WUTE)
	for !stm32.RTC.ISR.HasBits(stm32.RTC_ISR_WUTWF) {
	}
	// ck_spre (1 Hz) with a zero reload: one interrupt per second.
	stm32.RTC.CR.ReplaceBits(4<<stm32.RTC_CR_WUCKSEL_Pos,
		stm32.RTC_CR_WUCKSEL_Msk, 0)
	stm32.RTC.WUTR.Set(0)
}

func (*rtcHW) EnableWakeup() {
	stm32.EXTI.IMR.SetBits(extiLineRTCWakeup)
	stm32.EXTI.RTSR.SetBits(extiLineRTCWakeup)
	stm32.RTC.CR.SetBits(stm32.RTC_CR_WUTE | stm32.RTC_CR_WUTIE)
}

func (*rtcHW) BindWakeup(handler func()) {
	rtcWakeHandler = handler
	intr := interrupt.New(stm32.IRQ_RTC, handleRTCWakeup)
	intr.Enable()
}

func handleRTCWakeup(interrupt.Interrupt) {
	stm32.EXTI.PR.Set(extiLineRTCWakeup)
	if rtcWakeHandler != nil {
		rtcWakeHandler()
	}
}

func (*rtcHW) ReadTime() rtc.Time {
	tr := stm32.RTC.TR.Get()
	return rtc.Time{
		HourTens:    uint8(tr >> stm32.RTC_TR_HT_Pos & 0x3),
		HourUnits:   uint8(tr >> stm32.RTC_TR_HU_Pos & 0xF),
		MinuteTens:  uint8(tr >> stm32.RTC_TR_MNT_Pos & 0x7),
		MinuteUnits: uint8(tr >> stm32.RTC_TR_MNU_Pos & 0xF),
		SecondTens:  uint8(tr >> stm32.RTC_TR_ST_Pos & 0x7),
		SecondUnits: uint8(tr >> stm32.RTC_TR_SU_Pos & 0xF),
	}
}

func (*rtcHW) WriteTime(t rtc.Time) {
	stm32.RTC.TR.Set(uint32(t.HourTens)<<stm32.RTC_TR_HT_Pos |
		uint32(t.HourUnits)<<stm32.RTC_TR_HU_Pos |
		uint32(t.MinuteTens)<<stm32.RTC_TR_MNT_Pos |
		uint32(t.MinuteUnits)<<stm32.RTC_TR_MNU_Pos |
		uint32(t.SecondTens)<<stm32.RTC_TR_ST_Pos |
		uint32(t.SecondUnits)<<stm32.RTC_TR_SU_Pos)
}

func (*rtcHW) PendingWakeup() bool {
	return stm32.RTC.ISR.HasBits(stm32.RTC_ISR_WUTF)
}

func (*rtcHW) ClearWakeup() {
	stm32.RTC.ISR.ClearBits(stm32.RTC_ISR_WUTF)
}

func (*rtcHW) EnterInit() {
	stm32.RTC.ISR.SetBits(stm32.RTC_ISR_INIT)
}

func (*rtcHW) InitActive() bool {
	return stm32.RTC.ISR.HasBits(stm32.RTC_ISR_INITF)
}

func (*rtcHW) ExitInit() {
	stm32.RTC.ISR.ClearBits(stm32.RTC_ISR_INIT)
}
