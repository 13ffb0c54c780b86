package rtc

// Time is the binary-coded-decimal representation of wall time, 24-hour
// notation: six independent decimal digits, exactly as the time register
// stores them. This is the time representation at every boundary; there is
// no binary timestamp.
type Time struct {
	HourTens  uint8 // 0-2
	HourUnits uint8 // 0-9

	MinuteTens  uint8 // 0-5
	MinuteUnits uint8 // 0-9

	SecondTens  uint8 // 0-5
	SecondUnits uint8 // 0-9
}

// NewTime builds a Time from whole hours, minutes and seconds.
func NewTime(hour, minute, second uint8) Time {
	return Time{
		HourTens:    hour / 10,
		HourUnits:   hour % 10,
		MinuteTens:  minute / 10,
		MinuteUnits: minute % 10,
		SecondTens:  second / 10,
		SecondUnits: second % 10,
	}
}

// TopOfHour reports whether the time is exactly hh:00:00.
func (t Time) TopOfHour() bool {
	return t.MinuteTens == 0 && t.MinuteUnits == 0 &&
		t.SecondTens == 0 && t.SecondUnits == 0
}

// String renders hh:mm:ss for the diagnostic log.
func (t Time) String() string {
	b := [8]byte{
		'0' + t.HourTens, '0' + t.HourUnits, ':',
		'0' + t.MinuteTens, '0' + t.MinuteUnits, ':',
		'0' + t.SecondTens, '0' + t.SecondUnits,
	}
	return string(b[:])
}
