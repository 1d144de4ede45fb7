package protocol

import (
	"math"
	"testing"

	"github.com/matryer/is"
)

func TestDecodeBigEndian(t *testing.T) {
	is := is.New(t)

	is.Equal(DecodeUint([]byte{0x12}, Width8), uint32(0x12))
	is.Equal(DecodeUint([]byte{0x12, 0x34}, Width16), uint32(0x1234))
	is.Equal(DecodeUint([]byte{0x12, 0x34, 0x56, 0x78}, Width32), uint32(0x12345678))

	// extra bytes are ignored, short input is zero-extended
	is.Equal(DecodeUint([]byte{0x00, 0x05, 0xFF}, Width16), uint32(5))
	is.Equal(DecodeUint([]byte{0x05}, Width16), uint32(5))
}

func TestDecodeIntSignExtends(t *testing.T) {
	is := is.New(t)

	is.Equal(DecodeInt([]byte{0xFF}, Width8), int32(-1))
	is.Equal(DecodeInt([]byte{0xFF, 0xFE}, Width16), int32(-2))
	is.Equal(DecodeInt([]byte{0x80, 0x00, 0x00, 0x00}, Width32), int32(math.MinInt32))
	is.Equal(DecodeInt([]byte{0x7F, 0xFF}, Width16), int32(0x7FFF))
}

func TestEncodeIntegers(t *testing.T) {
	is := is.New(t)

	is.Equal(EncodeUint(0x1234, Width16), []byte{0x12, 0x34})
	is.Equal(EncodeUint(0xABCDEF01, Width32), []byte{0xAB, 0xCD, 0xEF, 0x01})
	is.Equal(EncodeInt(-1, Width16), []byte{0xFF, 0xFF})
	// only the low bytes survive
	is.Equal(EncodeUint(0x1FF, Width8), []byte{0xFF})
}

func TestFixedPoint(t *testing.T) {
	is := is.New(t)

	// 1.25 with one decimal rounds half away from zero
	is.Equal(EncodeFixed(1.25, Width16, 1), []byte{0x00, 0x0D})
	is.Equal(EncodeFixed(-1.25, Width16, 1), []byte{0xFF, 0xF3})
	is.Equal(EncodeFixed(80.0, Width32, 2), []byte{0x00, 0x00, 0x1F, 0x40})

	is.Equal(DecodeFixed([]byte{0xFF, 0x9C}, Width16, 2, true), -1.0)
	is.Equal(DecodeFixed([]byte{0x03, 0xE8}, Width16, 1, false), 100.0)

	// whole range of a 32 bit VP survives a round trip
	for _, v := range []int32{math.MaxInt32, math.MinInt32, 0, -400, 8000} {
		is.Equal(DecodeInt(EncodeInt(v, Width32), Width32), v)
	}
}

func TestInvalidWidthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for width 3")
		}
	}()
	EncodeUint(1, Width(3))
}

func TestTooManyDecimalsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for 10 decimals")
		}
	}()
	ToFixed(1, 10)
}

func TestSwap16(t *testing.T) {
	is := is.New(t)
	is.Equal(Swap16(0x1234), uint16(0x3412))
}
