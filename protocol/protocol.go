// Package protocol implements the DWIN DGUS II serial protocol: the
// big-endian value codec, frame encoding and the receive path.
package protocol

// Version represents the bridge version
const Version = "0.2.0"

// Frame constants
const (
	HeaderHi = 0x5A
	HeaderLo = 0xA5

	FrameHeaderSize = 3 // 5A A5 LEN
	FrameCRCSize    = 2

	// LEN is a single byte, so nothing after it can exceed 255 bytes.
	FrameLengthMax = 0xFF
	FrameMax       = FrameHeaderSize + FrameLengthMax

	// Largest VP payload of a single write frame (CMD + address take 3 bytes).
	WriteDataMax = FrameLengthMax - 3 - FrameCRCSize
)

// Commands
const (
	CmdWriteVar = 0x82 // write VP words
	CmdReadVar  = 0x83 // read VP words / display-initiated VP report
)

// Display system registers
const (
	RegVersion    = 0x000F
	RegBrightness = 0x0082
	RegPicSet     = 0x0084
	RegVolume     = 0x00A1
)

// ackPayload is what the display answers to every 0x82 write.
var ackPayload = [2]byte{'O', 'K'}
