package protocol

import (
	"encoding/binary"
	"math"
	"strconv"
)

// Width is the wire width of a scalar VP value in bytes.
type Width uint8

const (
	Width8  Width = 1
	Width16 Width = 2
	Width32 Width = 4
)

// MaxDecimals is the largest decimal place count the fixed-point codec accepts.
const MaxDecimals = 9

var pow10 = [MaxDecimals + 1]float64{1, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9}

// Valid reports whether w is one of the supported wire widths.
func (w Width) Valid() bool {
	return w == Width8 || w == Width16 || w == Width32
}

// mustValid panics on a width that no VP definition may declare.
func (w Width) mustValid() {
	if !w.Valid() {
		panic("protocol: invalid width " + strconv.Itoa(int(w)))
	}
}

// DecodeUint reads a big-endian unsigned integer of width w from b.
// b shorter than w is treated as zero-extended on the left.
func DecodeUint(b []byte, w Width) uint32 {
	w.mustValid()
	var buf [4]byte
	n := int(w)
	if len(b) >= n {
		copy(buf[4-n:], b[:n])
	} else {
		copy(buf[4-len(b):], b)
	}
	return binary.BigEndian.Uint32(buf[:])
}

// DecodeInt reads a big-endian two's complement integer of width w from b
// and sign-extends it.
func DecodeInt(b []byte, w Width) int32 {
	v := DecodeUint(b, w)
	switch w {
	case Width8:
		return int32(int8(v))
	case Width16:
		return int32(int16(v))
	}
	return int32(v)
}

// EncodeUint writes the low w bytes of v in big-endian order.
func EncodeUint(v uint32, w Width) []byte {
	w.mustValid()
	out := make([]byte, w)
	switch w {
	case Width8:
		out[0] = byte(v)
	case Width16:
		binary.BigEndian.PutUint16(out, uint16(v))
	case Width32:
		binary.BigEndian.PutUint32(out, v)
	}
	return out
}

// EncodeInt writes v as a w-byte two's complement big-endian integer.
func EncodeInt(v int32, w Width) []byte {
	return EncodeUint(uint32(v), w)
}

// DecodeFixed decodes a scaled integer: the stored value divided by
// 10^decimals. The integer is read signed when signed is set.
func DecodeFixed(b []byte, w Width, decimals uint8, signed bool) float64 {
	scale := scaleFor(decimals)
	if signed {
		return float64(DecodeInt(b, w)) / scale
	}
	return float64(DecodeUint(b, w)) / scale
}

// EncodeFixed rounds v*10^decimals to the nearest integer (halves away
// from zero) and stores the low w bytes big-endian.
func EncodeFixed(v float64, w Width, decimals uint8) []byte {
	return EncodeInt(ToFixed(v, decimals), w)
}

// ToFixed is the scaling half of EncodeFixed.
func ToFixed(v float64, decimals uint8) int32 {
	return int32(int64(math.Round(v * scaleFor(decimals))))
}

func scaleFor(decimals uint8) float64 {
	if decimals > MaxDecimals {
		panic("protocol: too many decimals " + strconv.Itoa(int(decimals)))
	}
	return pow10[decimals]
}

// Swap16 swaps the bytes of a 16 bit value.
func Swap16(v uint16) uint16 {
	return v>>8 | v<<8
}
