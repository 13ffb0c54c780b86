package logwire

import "testing"

func TestCRC16EmptyIsSeed(t *testing.T) {
	if got := CRC16(nil); got != 0xFFFF {
		t.Errorf("CRC16(nil) = %#04x, want 0xffff", got)
	}
}

func TestCRC16Consistency(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	if CRC16(data) != CRC16(data) {
		t.Error("CRC16 not deterministic")
	}
}

func TestCRC16DetectsSingleByteChange(t *testing.T) {
	a := []byte{0x01, 0x02, 0x03}
	b := []byte{0x01, 0x02, 0x04}
	if CRC16(a) == CRC16(b) {
		t.Errorf("collision on adjacent inputs: %#04x", CRC16(a))
	}
}
