package lcd

// glyphs holds the seven-segment patterns for the decimal digits, one bit
// per segment in A B C D E F G order (bit 0 = A).
var glyphs = [10]uint8{
	0b0111111, // 0
	0b0000110, // 1
	0b1011011, // 2
	0b1001111, // 3
	0b1100110, // 4
	0b1101101, // 5
	0b1111101, // 6
	0b0000111, // 7
	0b1111111, // 8
	0b1101111, // 9
}

// DigitFrame builds the frame lighting one decimal digit at one of the six
// positions (0 = hours tens on the left, 5 = seconds units on the right).
func DigitFrame(position int, digit uint8) Frame {
	if position < 0 || position > 5 {
		panic("lcd: invalid digit position")
	}
	if digit > 9 {
		panic("lcd: invalid digit value")
	}

	f := Blank
	pattern := glyphs[digit]
	for s := 0; s < 7; s++ {
		if pattern&(1<<s) != 0 {
			f = f.Or(segmentFrame(position, s))
		}
	}
	return f
}
