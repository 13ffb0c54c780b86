// Package watch is the wristwatch application: the boot sequence, the fixed
// task graph and the shared state those tasks coordinate through.
//
// Task graph, highest priority first:
//
//	wakeup       RTC 1 Hz tick     updates the face, requests the hourly beep
//	alarm/mode   button edges      toggle the beep flag
//	beep         software          buzzer on, 1 s suspension, buzzer off
//	calibrate    software, forever ADC recalibration + diagnostic reading
//
// Peripheral handles are moved into exactly one task's closure at boot, so
// register access needs no locking; only the small value-typed fields below
// live in the ceiling-locked shared region.
package watch

import (
	"sync/atomic"

	"quartz/core"
	"quartz/hal/adc"
	"quartz/hal/backup"
	"quartz/hal/button"
	"quartz/hal/buzzer"
	"quartz/hal/lcd"
	"quartz/hal/rtc"
	"quartz/hal/system"
)

// Task priorities. Zero is idle.
const (
	prioCalibrate core.Priority = 1
	prioBeep      core.Priority = 2
	prioButton    core.Priority = 3
	prioWakeup    core.Priority = 4
)

// sharedCeiling is the highest priority of any task touching Shared.
const sharedCeiling = prioWakeup

const (
	beepDurationMS      = 1000
	calibrateIntervalMS = 15 * 60 * 1000

	defaultBeepFrequencyHz = 1
	defaultBeepDutyPercent = 50
)

// Board collects the hardware surfaces the application is built on. The
// simulator and the target each populate one.
type Board struct {
	System  system.Hardware
	ADC     adc.Hardware
	RTC     rtc.Hardware
	Buzzer  buzzer.Hardware
	LCD     lcd.Hardware
	Backup  backup.Hardware
	Buttons button.Lines
	Clock   core.Clock
}

// Config sets the boot-time state of the watch.
type Config struct {
	Time            rtc.Time
	BeepFrequencyHz uint32
	BeepDutyPercent uint32
	BuzzerEnabled   bool
}

// Shared is the ceiling-locked shared state: fields touched by more than
// one task.
type Shared struct {
	BuzzerEnabled bool
}

// App is the booted watch.
type App struct {
	sched  *core.Scheduler
	sys    *system.System
	shared *core.Resource[Shared]

	// lastMeasurement packs millivolts<<16 | uint16(°C). Written by the
	// lowest-priority task and read without a ceiling; a single
	// hardware-atomic word needs none. Zero means no measurement yet.
	lastMeasurement atomic.Uint32

	beepDiscards atomic.Uint32

	wakeupID    core.TaskID
	alarmBtnID  core.TaskID
	modeBtnID   core.TaskID
	beepID      core.TaskID
	calibrateID core.TaskID
}

// Boot configures the clock tree, constructs every peripheral driver, sets
// the time, registers the task set, binds the interrupt sources and starts
// the 1 Hz wakeup. The returned App is ready for Run.
func Boot(b Board, cfg Config) *App {
	if cfg.BeepFrequencyHz == 0 {
		cfg.BeepFrequencyHz = defaultBeepFrequencyHz
	}
	if cfg.BeepDutyPercent == 0 {
		cfg.BeepDutyPercent = defaultBeepDutyPercent
	}

	sys := system.Configure(b.System)
	store := backup.NewStore(b.Backup)

	// RTC: configure, set the boot time through init mode, return to run.
	rtcRun := rtc.Configure(b.RTC, sys)
	rtcInit := rtcRun.Init()
	rtcInit.SetTime(cfg.Time)
	rtcRun = rtcInit.Run()

	adcDis := adc.Configure(b.ADC, sys)
	display := lcd.Configure(b.LCD, sys)

	// Buzzer tone is fixed at boot; only the enable bit moves at runtime.
	buz := buzzer.Configure(b.Buzzer, sys)
	arr := buzzer.AutoReloadForFrequency(cfg.BeepFrequencyHz)
	buz.SetAutoReload(arr)
	buz.SetCompare(buzzer.CompareForDuty(cfg.BeepDutyPercent, arr))

	sched := core.NewScheduler(b.Clock)

	app := &App{
		sched: sched,
		sys:   sys,
	}
	app.shared = core.NewResource(sched, sharedCeiling, Shared{
		BuzzerEnabled: cfg.BuzzerEnabled,
	})

	// wakeup owns the RTC handle and the display.
	app.wakeupID = sched.AddTask("wakeup", prioWakeup, func() {
		if !rtcRun.PendingWakeup() {
			// The static configuration guarantees the flag is set whenever
			// this task runs; anything else is a non-recoverable fault.
			panic("watch: wakeup dispatched without pending flag")
		}

		t := rtcRun.Time()
		display.ShowTime(t)

		var buzzerEnabled bool
		app.shared.With(func(s *Shared) {
			buzzerEnabled = s.BuzzerEnabled
		})

		if buzzerEnabled && t.TopOfHour() {
			if err := sched.Pend(app.beepID); err != nil {
				app.beepDiscards.Add(1)
				core.Warn("beep request discarded: already active")
			}
		}
	})

	app.alarmBtnID = sched.AddTask("alarm-button", prioButton, func() {
		b.Buttons.ClearPending(button.Alarm)

		var enabled bool
		app.shared.With(func(s *Shared) {
			s.BuzzerEnabled = !s.BuzzerEnabled
			enabled = s.BuzzerEnabled
		})

		if enabled {
			core.Info("hourly beep armed")
		} else {
			core.Info("hourly beep disarmed")
		}
	})

	app.modeBtnID = sched.AddTask("mode-button", prioButton, func() {
		b.Buttons.ClearPending(button.Mode)
		core.Info("mode button pressed (unassigned)")
	})

	// beep owns the buzzer handle. The handle alternates between variants
	// across the suspension point; once spawned it always runs to
	// completion.
	stopped := buz
	app.beepID = sched.AddSoftwareTask("beep", prioBeep, func() {
		running := stopped.Start()
		sched.Sleep(beepDurationMS)
		stopped = running.Stop()
	})

	// calibrate owns the ADC handle and the backup store, and loops
	// forever at the lowest priority.
	app.calibrateID = sched.AddSoftwareTask("calibrate", prioCalibrate, func() {
		for {
			adcDis.Calibrate(store)

			enabled := adcDis.Enable()
			m := enabled.Measure(store)
			cal := enabled.Factory()
			adcDis = enabled.Disable()

			tempC := m.TemperatureC(cal)
			mv := m.VoltageMV(cal)
			app.publishMeasurement(tempC, mv)

			core.Info("calibration cycle: " +
				core.Itoa(tempC) + " C, " + core.Utoa(mv) + " mV")

			sched.Sleep(calibrateIntervalMS)
		}
	})

	// Interrupt sources. Handlers run in interrupt context: pend and
	// return within bounded latency, never block on the log sink.
	b.RTC.BindWakeup(func() {
		if err := sched.Pend(app.wakeupID); err != nil {
			core.LogAsync(core.LevelWarn, "wakeup tick overrun")
		}
	})
	b.Buttons.Bind(func(btn button.Button) {
		var err error
		switch btn {
		case button.Alarm:
			err = sched.Pend(app.alarmBtnID)
		case button.Mode:
			err = sched.Pend(app.modeBtnID)
		}
		if err != nil {
			core.LogAsync(core.LevelWarn, btn.String()+" button press discarded")
		}
	})

	// Idle commits the core to stop mode until the next wake interrupt.
	// The wake sources (1 Hz tick, buttons) bound delay-timer latency.
	sched.SetIdle(func(deadline uint32, valid bool) {
		sys.Stop()
	})

	// First calibration pass runs as soon as the scheduler starts.
	if err := sched.Pend(app.calibrateID); err != nil {
		panic("watch: calibrate task not idle at boot")
	}

	core.Info("boot complete, time " + cfg.Time.String())
	return app
}

// Run enters the dispatch/idle loop. Never returns.
func (a *App) Run() {
	core.Info("entering idle loop")
	a.sched.Run()
}

// Scheduler exposes the scheduler for simulation drivers and tests.
func (a *App) Scheduler() *core.Scheduler {
	return a.sched
}

// BuzzerEnabled reports the hourly beep flag.
func (a *App) BuzzerEnabled() bool {
	var enabled bool
	a.shared.With(func(s *Shared) {
		enabled = s.BuzzerEnabled
	})
	return enabled
}

// BeepDiscards counts beep requests rejected because a beep was already
// active.
func (a *App) BeepDiscards() uint32 {
	return a.beepDiscards.Load()
}

// LastMeasurement returns the most recent diagnostic reading.
func (a *App) LastMeasurement() (tempC int, millivolts uint32, ok bool) {
	v := a.lastMeasurement.Load()
	if v == 0 {
		return 0, 0, false
	}
	return int(int16(v & 0xFFFF)), v >> 16, true
}

func (a *App) publishMeasurement(tempC int, mv uint32) {
	a.lastMeasurement.Store(mv<<16 | uint32(uint16(int16(tempC))))
}
