package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrFrameTooLong   = errors.New("frame too long")
	ErrShortFrame     = errors.New("short frame")
	ErrBadCRC         = errors.New("crc mismatch")
	ErrUnknownCommand = errors.New("unknown command")
)

// Frame is one decoded DGUS frame, without header, length and CRC.
type Frame struct {
	Command byte
	Addr    uint16
	Words   uint8 // word count of a 0x83 frame
	Data    []byte
	Ack     bool // "OK" answer to a 0x82 write
}

func (f Frame) String() string {
	if f.Ack {
		return "ack"
	}
	return fmt.Sprintf("cmd=%#02x addr=%#04x words=%d data=% x", f.Command, f.Addr, f.Words, f.Data)
}

// EncodeWrite builds a 0x82 frame writing data at addr.
func EncodeWrite(addr uint16, data []byte, crc bool) ([]byte, error) {
	if len(data) > WriteDataMax {
		return nil, fmt.Errorf("%w: %d data bytes (max %d)", ErrFrameTooLong, len(data), WriteDataMax)
	}
	body := make([]byte, 0, 3+len(data))
	body = append(body, CmdWriteVar, byte(addr>>8), byte(addr))
	body = append(body, data...)
	return wrap(body, crc), nil
}

// EncodeRead builds a 0x83 request for words starting at addr.
func EncodeRead(addr uint16, words uint8, crc bool) []byte {
	return wrap([]byte{CmdReadVar, byte(addr >> 8), byte(addr), words}, crc)
}

// EncodeReport builds the frame the display sends when a touch control
// writes a VP. Odd data is padded to whole words.
func EncodeReport(addr uint16, data []byte, crc bool) ([]byte, error) {
	padded := data
	if len(data)%2 != 0 {
		padded = append(append([]byte{}, data...), 0)
	}
	if len(padded) > WriteDataMax-1 {
		return nil, fmt.Errorf("%w: %d data bytes", ErrFrameTooLong, len(padded))
	}
	body := make([]byte, 0, 4+len(padded))
	body = append(body, CmdReadVar, byte(addr>>8), byte(addr), byte(len(padded)/2))
	body = append(body, padded...)
	return wrap(body, crc), nil
}

// EncodeAck builds the display's answer to a write.
func EncodeAck(crc bool) []byte {
	return wrap([]byte{CmdWriteVar, ackPayload[0], ackPayload[1]}, crc)
}

func wrap(body []byte, crc bool) []byte {
	length := len(body)
	if crc {
		length += FrameCRCSize
	}
	out := make([]byte, 0, FrameHeaderSize+length)
	out = append(out, HeaderHi, HeaderLo, byte(length))
	out = append(out, body...)
	if crc {
		out = appendCRC(out, body)
	}
	return out
}

// ParseFrame decodes a frame body (everything after LEN, CRC removed).
// The returned Data aliases body.
func ParseFrame(body []byte) (Frame, error) {
	if len(body) < 3 {
		return Frame{}, ErrShortFrame
	}
	f := Frame{Command: body[0], Addr: uint16(body[1])<<8 | uint16(body[2])}

	switch f.Command {
	case CmdWriteVar:
		if len(body) == 3 && body[1] == ackPayload[0] && body[2] == ackPayload[1] {
			return Frame{Command: CmdWriteVar, Ack: true}, nil
		}
		f.Data = body[3:]
		return f, nil

	case CmdReadVar:
		if len(body) < 4 {
			return Frame{}, ErrShortFrame
		}
		f.Words = body[3]
		n := int(f.Words) * 2
		if len(body)-4 < n {
			return Frame{}, fmt.Errorf("%w: %d words announced, %d bytes present", ErrShortFrame, f.Words, len(body)-4)
		}
		f.Data = body[4 : 4+n]
		return f, nil
	}

	return Frame{}, fmt.Errorf("%w %#02x", ErrUnknownCommand, f.Command)
}
