package buzzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quartz/hal/buzzer"
	"quartz/hal/system"
	"quartz/sim"
)

func newBuzzer(t *testing.T, dev *sim.Device) buzzer.Stopped {
	t.Helper()
	sys := system.Configure(dev.System())
	return buzzer.Configure(dev.Buzzer(), sys)
}

func TestConfigureSetsPrescaler(t *testing.T) {
	dev := sim.New(sim.DefaultConfig())
	newBuzzer(t, dev)

	psc, _, _ := dev.BuzzerRegisters()
	assert.Equal(t, uint16(system.ClockFreq-1), psc)
}

func TestAutoReloadForFrequency(t *testing.T) {
	// With the prescaler dividing down to a 1 Hz base tick, only 1 Hz is
	// representable; faster requests saturate at zero.
	assert.Equal(t, uint16(0), buzzer.AutoReloadForFrequency(1))
	assert.Equal(t, uint16(0), buzzer.AutoReloadForFrequency(2048))
}

func TestCompareForDuty(t *testing.T) {
	assert.Equal(t, uint16(50), buzzer.CompareForDuty(50, 100))
	assert.Equal(t, uint16(0), buzzer.CompareForDuty(0, 100))
	assert.Equal(t, uint16(100), buzzer.CompareForDuty(100, 100))
	assert.Equal(t, uint16(0), buzzer.CompareForDuty(50, 0))
}

func TestStartStopTogglesCounter(t *testing.T) {
	dev := sim.New(sim.DefaultConfig())
	stopped := newBuzzer(t, dev)

	assert.False(t, dev.BuzzerOn())

	running := stopped.Start()
	assert.True(t, dev.BuzzerOn())

	stopped = running.Stop()
	assert.False(t, dev.BuzzerOn())

	stopped.Start()
	assert.True(t, dev.BuzzerOn())
}

func TestToneSettableInEitherState(t *testing.T) {
	dev := sim.New(sim.DefaultConfig())
	stopped := newBuzzer(t, dev)

	stopped.SetAutoReload(100)
	stopped.SetCompare(50)
	_, arr, ccr := dev.BuzzerRegisters()
	assert.Equal(t, uint16(100), arr)
	assert.Equal(t, uint16(50), ccr)

	running := stopped.Start()
	running.SetAutoReload(200)
	running.SetCompare(25)
	_, arr, ccr = dev.BuzzerRegisters()
	assert.Equal(t, uint16(200), arr)
	assert.Equal(t, uint16(25), ccr)
}
