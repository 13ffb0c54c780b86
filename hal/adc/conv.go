package adc

// Fixed calibration-point constants: VREFINT_CAL is measured at 3000 mV, the
// temperature sensor at 30 °C and 130 °C.
const (
	vrefCalMilliVolts = 3000

	tsCal1Temp = 30
	tsCal2Temp = 130
)

// Measurement is one raw sample pair from a single conversion sequence:
// the reference-voltage channel followed by the temperature channel.
type Measurement struct {
	Vrefint uint16
	Tsense  uint16
}

// TemperatureC converts the raw temperature sample to degrees Celsius using
// the two factory calibration points. Integer arithmetic with the division
// performed last, so both calibration points convert exactly:
// TemperatureC at TsCal1 is 30 and at TsCal2 is 130.
func (m Measurement) TemperatureC(cal FactoryCalibration) int {
	num := int32(tsCal2Temp-tsCal1Temp) * (int32(m.Tsense) - int32(cal.TsCal1))
	den := int32(cal.TsCal2) - int32(cal.TsCal1)

	return int(num/den) + tsCal1Temp
}

// VoltageMV converts the raw VREFINT sample to the battery voltage in
// millivolts: (3000 * VREFINT_CAL) / raw, floor division.
func (m Measurement) VoltageMV(cal FactoryCalibration) uint32 {
	return (vrefCalMilliVolts * uint32(cal.VrefintCal)) / uint32(m.Vrefint)
}
