package watch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quartz/hal/button"
	"quartz/hal/lcd"
	"quartz/hal/rtc"
	"quartz/sim"
	"quartz/watch"
)

func bootWatch(t *testing.T, bootTime rtc.Time) (*watch.App, *sim.Device, *sim.ManualClock) {
	t.Helper()

	dev := sim.New(sim.DefaultConfig())
	clock := sim.NewManualClock()

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
		Time:          bootTime,
		BuzzerEnabled: true,
	})

	return app, dev, clock
}

func TestBootRunsInitialCalibration(t *testing.T) {
	app, dev, _ := bootWatch(t, rtc.NewTime(12, 0, 0))

	app.Scheduler().RunPending()

	assert.Equal(t, uint8(0x42), dev.BackupValue(),
		"self-calibration factor must land in the backup register")

	temp, mv, ok := app.LastMeasurement()
	require.True(t, ok)
	// Defaults: raw 700 between points 670/850 -> 46 C; 3000*1671/1650.
	assert.Equal(t, 46, temp)
	assert.Equal(t, uint32(3038), mv)
}

func TestFaceUpdatesEveryTick(t *testing.T) {
	app, dev, _ := bootWatch(t, rtc.NewTime(12, 0, 0))
	s := app.Scheduler()
	s.RunPending()

	dev.TickSecond()
	s.RunPending()

	want := lcd.DigitFrame(0, 1).
		Or(lcd.DigitFrame(1, 2)).
		Or(lcd.DigitFrame(2, 0)).
		Or(lcd.DigitFrame(3, 0)).
		Or(lcd.DigitFrame(4, 0)).
		Or(lcd.DigitFrame(5, 1))
	assert.Equal(t, want, dev.Frame())
}

func TestTopOfHourBeepsForOneSecond(t *testing.T) {
	app, dev, clock := bootWatch(t, rtc.NewTime(0, 59, 58))
	s := app.Scheduler()
	s.RunPending()

	dev.TickSecond() // 00:59:59
	s.RunPending()
	assert.False(t, dev.BuzzerOn(), "no beep before the hour")

	dev.TickSecond() // 01:00:00
	s.RunPending()
	assert.True(t, dev.BuzzerOn(), "beep starts at the top of the hour")

	clock.Advance(999)
	s.RunPending()
	assert.True(t, dev.BuzzerOn())

	clock.Advance(1)
	s.RunPending()
	assert.False(t, dev.BuzzerOn(), "beep ends after one second")
}

func TestSecondBeepRequestDiscarded(t *testing.T) {
	app, dev, clock := bootWatch(t, rtc.NewTime(0, 59, 59))
	s := app.Scheduler()
	s.RunPending()

	dev.TickSecond() // 01:00:00, beep starts and suspends
	s.RunPending()
	require.True(t, dev.BuzzerOn())

	// A second top-of-hour wakeup lands while the beep is still active.
	dev.SetTime(rtc.NewTime(0, 59, 59))
	dev.TickSecond()
	s.RunPending()

	assert.True(t, dev.BuzzerOn(), "active beep keeps running")
	assert.Equal(t, uint32(1), app.BeepDiscards(),
		"the overlapping request is discarded, not queued")

	clock.Advance(1000)
	s.RunPending()
	assert.False(t, dev.BuzzerOn(), "exactly one beep, no replay")
}

func TestAlarmButtonTogglesHourlyBeep(t *testing.T) {
	app, dev, _ := bootWatch(t, rtc.NewTime(0, 59, 58))
	s := app.Scheduler()
	s.RunPending()

	require.True(t, app.BuzzerEnabled())

	dev.Press(button.Alarm)
	s.RunPending()

	assert.False(t, app.BuzzerEnabled())
	assert.False(t, dev.Pending(button.Alarm), "handler clears its edge flag")

	dev.TickSecond() // 00:59:59
	dev.TickSecond() // 01:00:00
	s.RunPending()
	assert.False(t, dev.BuzzerOn(), "disarmed watch passes the hour silently")

	dev.Press(button.Alarm)
	s.RunPending()
	assert.True(t, app.BuzzerEnabled())
}

func TestButtonHandledWhileBeepSuspended(t *testing.T) {
	app, dev, clock := bootWatch(t, rtc.NewTime(0, 59, 59))
	s := app.Scheduler()
	s.RunPending()

	dev.TickSecond() // beep starts, suspends for its one-second tone
	s.RunPending()
	require.True(t, dev.BuzzerOn())

	// The button interrupt is served at the suspension point without
	// disturbing the in-flight beep.
	dev.Press(button.Alarm)
	s.RunPending()
	assert.False(t, app.BuzzerEnabled())
	assert.True(t, dev.BuzzerOn(), "the running beep completes regardless")

	clock.Advance(1000)
	s.RunPending()
	assert.False(t, dev.BuzzerOn())
}

func TestModeButtonClearsItsFlag(t *testing.T) {
	app, dev, _ := bootWatch(t, rtc.NewTime(12, 0, 0))
	s := app.Scheduler()
	s.RunPending()

	dev.Press(button.Mode)
	s.RunPending()

	assert.False(t, dev.Pending(button.Mode))
}

func TestCalibrationRerunsOnSchedule(t *testing.T) {
	app, dev, clock := bootWatch(t, rtc.NewTime(12, 0, 0))
	s := app.Scheduler()
	s.RunPending()

	_, _, ok := app.LastMeasurement()
	require.True(t, ok)

	// Conditions change before the next 15-minute pass.
	dev.SetSamples(1671, 850)

	clock.Advance(15 * 60 * 1000)
	s.RunPending()

	temp, mv, ok := app.LastMeasurement()
	require.True(t, ok)
	assert.Equal(t, 130, temp)
	assert.Equal(t, uint32(3000), mv)
}

func TestBootTimeShownThroughInitSequence(t *testing.T) {
	app, dev, _ := bootWatch(t, rtc.NewTime(7, 30, 0))
	_ = app

	assert.Equal(t, rtc.NewTime(7, 30, 0), dev.Time(),
		"boot time is written through init mode")
}
