package protocol

import "testing"

func TestCRC16(t *testing.T) {
	testCases := []struct {
		data     []byte
		expected uint16
	}{
		{data: []byte("123456789"), expected: 0x4B37},
		{data: []byte{}, expected: 0xFFFF},
		{data: []byte{0x01, 0x03, 0x00, 0x00, 0x00, 0x01}, expected: 0x0A84},
	}

	for i, tc := range testCases {
		if got := CRC16(tc.data); got != tc.expected {
			t.Errorf("Test case %d: CRC16(% x) = 0x%04X, expected 0x%04X", i, tc.data, got, tc.expected)
		}
	}
}

func TestAppendCRCLowByteFirst(t *testing.T) {
	out := appendCRC(nil, []byte("123456789"))
	if len(out) != 2 || out[0] != 0x37 || out[1] != 0x4B {
		t.Errorf("Expected [37 4b], got % x", out)
	}
}
