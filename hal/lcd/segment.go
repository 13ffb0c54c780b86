package lcd

// Frame is the physical segment bitmask written to the display controller:
// one 32-bit word per common line.
type Frame [3]uint32

// Or merges another frame's segments into this one.
func (f Frame) Or(other Frame) Frame {
	return Frame{f[0] | other[0], f[1] | other[1], f[2] | other[2]}
}

// Blank is the frame with every segment off.
var Blank = Frame{}

// lcdToMCU translates a display glass segment pin to the MCU LCD segment
// line it is wired to.
func lcdToMCU(seg int) int {
	switch seg {
	case 0:
		return 16
	case 1:
		return 9
	case 2:
		return 8
	case 3:
		return 7
	case 4:
		return 17
	case 5:
		return 2
	case 6:
		return 15
	case 7:
		return 14
	case 13:
		return 13
	case 17:
		return 12
	case 18:
		return 11
	case 19:
		return 10
	case 20:
		return 6
	case 21:
		return 5
	case 22:
		return 4
	case 23:
		return 3
	default:
		panic("lcd: invalid segment number")
	}
}

// seg builds the frame for a single segment on a common/segment line pair.
func seg(com, segPin int) Frame {
	var f Frame
	f[com] = 1 << lcdToMCU(segPin)
	return f
}

// segline is a glass common/segment line pair.
type segline struct {
	com, seg int
}

// digitSegments maps each of the six digit positions (hours tens, left, to
// seconds units, right) to the glass lines of its seven segments, in
// A B C D E F G order. On this glass, digit 0 shares one line between
// segments A and D.
var digitSegments = [6][7]segline{
	{{1, 5}, {0, 4}, {2, 4}, {1, 5}, {2, 5}, {0, 5}, {1, 4}},
	{{0, 3}, {0, 2}, {1, 2}, {2, 2}, {2, 3}, {1, 6}, {1, 3}},
	{{2, 1}, {0, 0}, {2, 0}, {2, 1}, {1, 1}, {0, 1}, {1, 0}},
	{{0, 22}, {0, 13}, {2, 22}, {2, 23}, {1, 23}, {0, 23}, {1, 22}},
	{{0, 21}, {0, 20}, {2, 19}, {2, 20}, {2, 21}, {1, 21}, {1, 20}},
	{{0, 19}, {0, 18}, {1, 17}, {2, 17}, {2, 18}, {1, 19}, {1, 18}},
}

// segmentFrame returns the frame for one segment (0=A .. 6=G) of one digit
// position.
func segmentFrame(position, segment int) Frame {
	line := digitSegments[position][segment]
	return seg(line.com, line.seg)
}

// SegmentLit reports whether a frame drives one segment (0=A .. 6=G) of a
// digit position. Host-side renderers use it to reconstruct the glass image
// from the raw frame words.
func SegmentLit(f Frame, position, segment int) bool {
	s := segmentFrame(position, segment)
	return f[0]&s[0] != 0 || f[1]&s[1] != 0 || f[2]&s[2] != 0
}
