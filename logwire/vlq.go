package logwire

import "errors"

var (
	// ErrTruncated means the buffer ended inside a value.
	ErrTruncated = errors.New("logwire: truncated value")
)

// EncodeVLQInt writes a signed integer in variable-length form, most
// significant group first, 7 bits per byte with a continuation flag.
func EncodeVLQInt(output OutputBuffer, v int32) {
	if !(-(1<<26) <= v && v < (3<<26)) {
		output.Output([]byte{byte((v>>28)&0x7F) | 0x80})
	}
	if !(-(1<<19) <= v && v < (3<<19)) {
		output.Output([]byte{byte((v>>21)&0x7F) | 0x80})
	}
	if !(-(1<<12) <= v && v < (3<<12)) {
		output.Output([]byte{byte((v>>14)&0x7F) | 0x80})
	}
	if !(-(1<<5) <= v && v < (3<<5)) {
		output.Output([]byte{byte((v>>7)&0x7F) | 0x80})
	}
	output.Output([]byte{byte(v & 0x7F)})
}

// EncodeVLQUint writes an unsigned integer in variable-length form.
func EncodeVLQUint(output OutputBuffer, v uint32) {
	EncodeVLQInt(output, int32(v))
}

// DecodeVLQInt reads a signed variable-length integer, advancing data
// past the consumed bytes.
func DecodeVLQInt(data *[]byte) (int32, error) {
	if len(*data) == 0 {
		return 0, ErrTruncated
	}

	c := uint32((*data)[0])
	*data = (*data)[1:]

	v := c & 0x7F
	if (c & 0x60) == 0x60 {
		// First byte carries the sign.
		v |= ^uint32(0x1F)
	}

	for c&0x80 != 0 {
		if len(*data) == 0 {
			return 0, ErrTruncated
		}
		c = uint32((*data)[0])
		*data = (*data)[1:]
		v = (v << 7) | (c & 0x7F)
	}

	return int32(v), nil
}

// DecodeVLQUint reads an unsigned variable-length integer.
func DecodeVLQUint(data *[]byte) (uint32, error) {
	val, err := DecodeVLQInt(data)
	return uint32(val), err
}

// EncodeVLQString writes a length-prefixed string.
func EncodeVLQString(output OutputBuffer, s string) {
	EncodeVLQUint(output, uint32(len(s)))
	output.Output([]byte(s))
}

// DecodeVLQString reads a length-prefixed string, advancing data.
func DecodeVLQString(data *[]byte) (string, error) {
	length, err := DecodeVLQUint(data)
	if err != nil {
		return "", err
	}
	if uint32(len(*data)) < length {
		return "", ErrTruncated
	}
	s := string((*data)[:length])
	*data = (*data)[length:]
	return s, nil
}
