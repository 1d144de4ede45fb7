package protocol

// FrameHandler receives every well-formed frame. Data is only valid for
// the duration of the call.
type FrameHandler func(f Frame)

// Receiver splits a byte stream into DGUS frames. It tolerates frames
// split across reads and resynchronises on the next 5A A5 after garbage,
// a bad length or a CRC failure.
type Receiver struct {
	crc     bool
	handler FrameHandler

	// Stats
	Frames  uint32
	Errors  uint32
	Skipped uint32
}

// NewReceiver creates a receiver. crc selects CRC mode framing.
func NewReceiver(crc bool, handler FrameHandler) *Receiver {
	return &Receiver{crc: crc, handler: handler}
}

func (r *Receiver) minLength() int {
	// CMD + two bytes is the smallest body (the write ack)
	if r.crc {
		return 3 + FrameCRCSize
	}
	return 3
}

// Receive consumes every complete frame from input. An incomplete frame
// stays buffered for the next call.
func (r *Receiver) Receive(input InputBuffer) {
	data := input.Data()
	total := len(data)

	for len(data) > 0 {
		if data[0] != HeaderHi {
			data = r.skip(data, 1)
			continue
		}
		if len(data) < 2 {
			break
		}
		if data[1] != HeaderLo {
			data = r.skip(data, 1)
			continue
		}
		if len(data) < FrameHeaderSize {
			break
		}

		length := int(data[2])
		if length < r.minLength() {
			r.Errors++
			data = r.skip(data, 1)
			continue
		}
		if len(data) < FrameHeaderSize+length {
			break
		}

		body := data[FrameHeaderSize : FrameHeaderSize+length]
		if r.crc {
			payload := body[:length-FrameCRCSize]
			want := uint16(body[length-2]) | uint16(body[length-1])<<8
			if CRC16(payload) != want {
				r.Errors++
				data = r.skip(data, 1)
				continue
			}
			body = payload
		}

		f, err := ParseFrame(body)
		data = data[FrameHeaderSize+length:]
		if err != nil {
			r.Errors++
			continue
		}

		r.Frames++
		if r.handler != nil {
			r.handler(f)
		}
	}

	input.Pop(total - len(data))
}

func (r *Receiver) skip(data []byte, n int) []byte {
	r.Skipped += uint32(n)
	return data[n:]
}
