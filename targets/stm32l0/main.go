//go:build stm32l0

// Hardware target: STM32L0 with the LSE crystal, segment glass on the LCD
// controller, piezo on TIM2 channel 1 and two buttons on EXTI lines. Logs
// leave the board as framed records on the debug UART; pair with the
// watchlog command on the host side.
package main

import (
	"machine"

	"quartz/core"
	"quartz/hal/rtc"
	"quartz/logwire"
	"quartz/watch"
)

func main() {
	machine.Serial.Configure(machine.UARTConfig{BaudRate: 115200})

	clock := newTickClock()
	enc := logwire.NewEncoder(func(frame []byte) {
		machine.Serial.Write(frame)
	})
	core.SetLogWriter(logwire.DeviceWriter(enc, clock))
	core.InitAsyncLog()

	app := watch.Boot(watch.Board{
		System:  systemHW{},
		ADC:     adcHW{},
		RTC:     &rtcHW{},
		Buzzer:  buzzerHW{},
		LCD:     lcdHW{},
		Backup:  backupHW{},
		Buttons: &buttonsHW{},
		Clock:   clock,
	}, watch.Config{
		// No time-setting UI yet; the watch boots at noon.
		Time:          rtc.NewTime(12, 0, 0),
		BuzzerEnabled: true,
	})

	app.Run()
}
