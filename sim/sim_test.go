package sim_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"quartz/hal/button"
	"quartz/hal/rtc"
	"quartz/sim"
)

func TestEnterStopBlocksUntilTick(t *testing.T) {
	dev := sim.New(sim.DefaultConfig())
	sys := dev.System()

	woke := make(chan struct{})
	go func() {
		sys.EnterStop()
		close(woke)
	}()

	select {
	case <-woke:
		t.Fatal("stop mode returned without a wake event")
	case <-time.After(20 * time.Millisecond):
	}

	dev.TickSecond()

	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatal("clock tick did not wake the core")
	}

	assert.Equal(t, 1, dev.StopEntries())
}

func TestButtonWakesStoppedCore(t *testing.T) {
	dev := sim.New(sim.DefaultConfig())
	sys := dev.System()

	woke := make(chan struct{})
	go func() {
		sys.EnterStop()
		close(woke)
	}()

	time.Sleep(10 * time.Millisecond)
	dev.Press(button.Alarm)

	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatal("button press did not wake the core")
	}
}

func TestPowerCycleKeepsBackupAndTime(t *testing.T) {
	dev := sim.New(sim.DefaultConfig())

	dev.Backup().WriteRegister(0x77)
	dev.SetTime(rtc.NewTime(6, 30, 0))
	dev.Buzzer().EnableCounter()

	dev.PowerCycle()

	assert.Equal(t, uint8(0x77), dev.BackupValue())
	assert.Equal(t, rtc.NewTime(6, 30, 0), dev.Time())
	assert.False(t, dev.BuzzerOn(), "peripheral state is lost on power cycle")
}
