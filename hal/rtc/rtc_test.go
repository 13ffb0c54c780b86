package rtc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quartz/hal/rtc"
	"quartz/hal/system"
	"quartz/sim"
)

func newClock(t *testing.T, dev *sim.Device) rtc.Run {
	t.Helper()
	sys := system.Configure(dev.System())
	return rtc.Configure(dev.RTC(), sys)
}

func TestTimeReadsConsistently(t *testing.T) {
	dev := sim.New(sim.DefaultConfig())
	clock := newClock(t, dev)

	dev.SetTime(rtc.NewTime(12, 34, 56))
	assert.Equal(t, rtc.NewTime(12, 34, 56), clock.Time())
}

func TestTornReadResolvedByThirdRead(t *testing.T) {
	dev := sim.New(sim.DefaultConfig())
	clock := newClock(t, dev)

	dev.SetTime(rtc.NewTime(10, 0, 0))

	// A tick lands between the first and second register reads, so the
	// double read disagrees and the third read is authoritative.
	dev.TearNextRead()
	got := clock.Time()

	assert.Equal(t, rtc.NewTime(10, 0, 1), got,
		"the resolved time must be the post-tick value")
}

func TestSetTimeThroughInitMode(t *testing.T) {
	dev := sim.New(sim.DefaultConfig())
	clock := newClock(t, dev)

	initClock := clock.Init()
	initClock.SetTime(rtc.NewTime(23, 59, 59))
	clock = initClock.Run()

	assert.Equal(t, rtc.NewTime(23, 59, 59), clock.Time())
}

func TestClockStoppedInInitMode(t *testing.T) {
	dev := sim.New(sim.DefaultConfig())
	clock := newClock(t, dev)

	initClock := clock.Init()
	dev.TickSecond()
	initClock.SetTime(rtc.NewTime(8, 0, 0))
	clock = initClock.Run()

	assert.Equal(t, rtc.NewTime(8, 0, 0), clock.Time(),
		"ticks must not advance a stopped clock")
}

func TestPendingWakeupClearsFlag(t *testing.T) {
	dev := sim.New(sim.DefaultConfig())
	clock := newClock(t, dev)

	assert.False(t, clock.PendingWakeup())

	dev.TickSecond()
	assert.True(t, clock.PendingWakeup())
	assert.False(t, clock.PendingWakeup(), "the check consumes the flag")
}

func TestMidnightRollover(t *testing.T) {
	dev := sim.New(sim.DefaultConfig())
	clock := newClock(t, dev)

	dev.SetTime(rtc.NewTime(23, 59, 59))
	dev.TickSecond()

	got := clock.Time()
	require.Equal(t, rtc.NewTime(0, 0, 0), got)
	assert.True(t, got.TopOfHour())
}

func TestTimeString(t *testing.T) {
	assert.Equal(t, "07:05:09", rtc.NewTime(7, 5, 9).String())
	assert.Equal(t, "23:59:59", rtc.NewTime(23, 59, 59).String())
}
