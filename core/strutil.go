package core

// Itoa converts an integer to a string without pulling fmt into the firmware
// image.
func Itoa(n int) string {
	if n == 0 {
		return "0"
	}

	negative := n < 0
	if negative {
		n = -n
	}

	temp := n
	digits := 0
	for temp > 0 {
		digits++
		temp /= 10
	}
	if negative {
		digits++
	}

	buf := make([]byte, digits)
	pos := digits - 1
	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}
	if negative {
		buf[0] = '-'
	}

	return string(buf)
}

// Utoa converts an unsigned integer to a string.
func Utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	temp := n
	digits := 0
	for temp > 0 {
		digits++
		temp /= 10
	}

	buf := make([]byte, digits)
	pos := digits - 1
	for n > 0 {
		buf[pos] = byte('0' + n%10)
		n /= 10
		pos--
	}

	return string(buf)
}
