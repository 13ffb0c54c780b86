package adc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quartz/hal/adc"
)

var cal = adc.FactoryCalibration{
	VrefintCal: 1671,
	TsCal1:     670,
	TsCal2:     850,
}

func TestTemperatureExactAtCalibrationPoints(t *testing.T) {
	low := adc.Measurement{Tsense: cal.TsCal1}
	high := adc.Measurement{Tsense: cal.TsCal2}

	assert.Equal(t, 30, low.TemperatureC(cal))
	assert.Equal(t, 130, high.TemperatureC(cal))
}

func TestTemperatureMonotonic(t *testing.T) {
	prev := adc.Measurement{Tsense: cal.TsCal1 - 100}.TemperatureC(cal)
	for raw := cal.TsCal1 - 99; raw <= cal.TsCal2+100; raw++ {
		cur := adc.Measurement{Tsense: raw}.TemperatureC(cal)
		assert.GreaterOrEqual(t, cur, prev, "raw=%d", raw)
		prev = cur
	}
}

func TestTemperatureMidpoint(t *testing.T) {
	mid := adc.Measurement{Tsense: (cal.TsCal1 + cal.TsCal2) / 2}
	assert.Equal(t, 80, mid.TemperatureC(cal))
}

func TestTemperatureBelowFirstPoint(t *testing.T) {
	// Raw below the 30 °C point gives readings below 30, still exact
	// integer math.
	m := adc.Measurement{Tsense: cal.TsCal1 - 18}
	assert.Equal(t, 20, m.TemperatureC(cal))
}

func TestVoltageAtCalibrationPoint(t *testing.T) {
	// A raw reading equal to VREFINT_CAL means the supply is exactly the
	// 3000 mV the calibration was taken at.
	m := adc.Measurement{Vrefint: cal.VrefintCal}
	assert.Equal(t, uint32(3000), m.VoltageMV(cal))
}

func TestVoltageFloorDivision(t *testing.T) {
	m := adc.Measurement{Vrefint: 1650}
	// 3000 * 1671 / 1650 = 3038.18..., floor.
	assert.Equal(t, uint32(3038), m.VoltageMV(cal))
}

func TestVoltageInverseToRawReading(t *testing.T) {
	lowSupply := adc.Measurement{Vrefint: 2000}.VoltageMV(cal)
	highSupply := adc.Measurement{Vrefint: 1400}.VoltageMV(cal)
	assert.Less(t, lowSupply, highSupply,
		"a higher raw VREFINT reading means a lower supply")
}
