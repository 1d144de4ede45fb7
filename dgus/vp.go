package dgus

import "dgusbridge/protocol"

// RxHandler applies a value the display wrote to vp.
type RxHandler func(env *Env, vp *VP, data []byte) error

// TxHandler encodes the current value of vp for the display.
type TxHandler func(env *Env, vp *VP) ([]byte, error)

// SelectorHandler runs one action of a command VP.
type SelectorHandler func(env *Env, vp *VP) error

// Flags modify how a VP is dispatched.
type Flags uint8

const (
	// FlagAutoUpdate refreshes the VP every cycle while its screen is shown
	FlagAutoUpdate Flags = 1 << iota
	// FlagRxString cuts received text at the first 0x00 or 0xFF
	FlagRxString
	// FlagSelector dispatches on byte 1 of the payload
	FlagSelector
)

// Direction is the data flow of a VP as seen by the controller.
type Direction uint8

const (
	DirRead      Direction = 1 << iota // display -> controller
	DirWrite                           // controller -> display
	DirReadWrite = DirRead | DirWrite
)

func (d Direction) String() string {
	switch d {
	case DirRead:
		return "read"
	case DirWrite:
		return "write"
	case DirReadWrite:
		return "read-write"
	}
	return "none"
}

// VP describes one variable pointer of the display.
type VP struct {
	Addr  Addr
	Name  string
	Size  uint8 // bytes
	Flags Flags
	Rx    RxHandler
	Tx    TxHandler
}

// Words is the number of address words the VP occupies.
func (vp *VP) Words() uint16 {
	return (uint16(vp.Size) + 1) / 2
}

// End is the first address past the VP.
func (vp *VP) End() uint32 {
	return uint32(vp.Addr) + uint32(vp.Words())
}

func (vp *VP) Direction() Direction {
	var d Direction
	if vp.Rx != nil || vp.Flags&FlagSelector != 0 {
		d |= DirRead
	}
	if vp.Tx != nil {
		d |= DirWrite
	}
	return d
}

// Width is the scalar width of the VP. It panics for VPs that are not
// 1, 2 or 4 bytes wide.
func (vp *VP) Width() protocol.Width {
	w := protocol.Width(vp.Size)
	if !w.Valid() {
		panic("dgus: VP " + vp.Addr.String() + " is not a scalar")
	}
	return w
}

// trimString cuts a display string at its terminator. DGUS pads unused
// text bytes with 0xFF.
func trimString(data []byte) []byte {
	for i, b := range data {
		if b == 0x00 || b == 0xFF {
			return data[:i]
		}
	}
	return data
}

// padString encodes s as a fixed-width, zero padded field.
func padString(s string, size int) []byte {
	out := make([]byte, size)
	copy(out, s)
	return out
}
