// Command watchsim runs the watch firmware against the simulated hardware
// in a desktop window: the segment display is rendered at 60 fps, the A and
// M keys press the alarm and mode buttons, and an optional audio stream
// plays the buzzer.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"quartz/core"
	"quartz/sim"
	"quartz/watch"
)

var (
	scenarioPath = flag.String("scenario", "", "Scenario YAML file (defaults built in)")
	withAudio    = flag.Bool("audio", false, "Play the buzzer through the sound card")
)

func main() {
	flag.Parse()

	scenario := DefaultScenario()
	if *scenarioPath != "" {
		var err error
		scenario, err = LoadScenario(*scenarioPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "watchsim: %v\n", err)
			os.Exit(1)
		}
	}

	bootTime, err := scenario.BootTime()
	if err != nil {
		fmt.Fprintf(os.Stderr, "watchsim: %v\n", err)
		os.Exit(1)
	}

	simCfg := sim.DefaultConfig()
	if c := scenario.Calibration; c.VrefintCal != 0 {
		simCfg.VrefintCal = c.VrefintCal
		simCfg.TsCal1 = c.TsCal1
		simCfg.TsCal2 = c.TsCal2
		simCfg.Vrefint = c.Vrefint
		simCfg.Tsense = c.Tsense
	}

	dev := sim.New(simCfg)
	clock := sim.NewWallClock()

	core.SetLogWriter(func(level core.LogLevel, msg string) {
		fmt.Printf("%8d ms  %-5s %s\n", clock.Now(), levelName(level), msg)
	})
	core.InitAsyncLog()

	app := watch.Boot(watch.Board{
		System:  dev.System(),
		ADC:     dev.ADC(),
		RTC:     dev.RTC(),
		Buzzer:  dev.Buzzer(),
		LCD:     dev.LCD(),
		Backup:  dev.Backup(),
		Buttons: dev.Buttons(),
		Clock:   clock,
	}, watch.Config{
		Time:            bootTime,
		BeepFrequencyHz: scenario.Beep.FrequencyHz,
		BeepDutyPercent: scenario.Beep.DutyPercent,
		BuzzerEnabled:   scenario.Beep.Enabled,
	})

	go app.Run()

	// The 1 Hz clock tick the crystal provides on hardware.
	go func() {
		for range time.Tick(time.Second) {
			dev.TickSecond()
		}
	}()

	if *withAudio {
		if err := startAudio(dev); err != nil {
			fmt.Fprintf(os.Stderr, "watchsim: audio disabled: %v\n", err)
		}
	}

	ebiten.SetWindowTitle("watchsim  [A] alarm  [M] mode")
	ebiten.SetWindowSize(faceW*scenario.Window.Scale, faceH*scenario.Window.Scale)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(&game{dev: dev, scale: scenario.Window.Scale}); err != nil {
		fmt.Fprintf(os.Stderr, "watchsim: %v\n", err)
		os.Exit(1)
	}
}

func levelName(level core.LogLevel) string {
	switch level {
	case core.LevelWarn:
		return "warn"
	case core.LevelError:
		return "error"
	}
	return "info"
}
