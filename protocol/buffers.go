package protocol

// InputBuffer provides an abstraction for reading incoming protocol data
type InputBuffer interface {
	// Data returns the buffered bytes as one contiguous slice
	Data() []byte

	// Available returns the number of bytes buffered
	Available() int

	// Pop removes n bytes from the front of the buffer
	Pop(n int)
}

// SliceInputBuffer implements InputBuffer over a fixed byte slice
type SliceInputBuffer struct {
	data []byte
}

// NewSliceInputBuffer creates a new SliceInputBuffer
func NewSliceInputBuffer(data []byte) *SliceInputBuffer {
	return &SliceInputBuffer{data: data}
}

func (s *SliceInputBuffer) Data() []byte {
	return s.data
}

func (s *SliceInputBuffer) Available() int {
	return len(s.data)
}

func (s *SliceInputBuffer) Pop(n int) {
	if n > len(s.data) {
		n = len(s.data)
	}
	s.data = s.data[n:]
}

// RingBuffer accumulates bytes read from the serial port until whole
// frames can be parsed out of it. When full, the oldest bytes are
// overwritten: a stalled parser loses stale input, never fresh input.
type RingBuffer struct {
	buf   []byte
	start int
	count int

	dropped int
}

// NewRingBuffer creates a RingBuffer holding at most capacity bytes
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = FrameMax * 2
	}
	return &RingBuffer{buf: make([]byte, capacity)}
}

// Write appends data, evicting the oldest bytes when the buffer is full.
func (r *RingBuffer) Write(data []byte) (int, error) {
	size := len(r.buf)
	for _, b := range data {
		if r.count == size {
			r.start = (r.start + 1) % size
			r.count--
			r.dropped++
		}
		r.buf[(r.start+r.count)%size] = b
		r.count++
	}
	return len(data), nil
}

// Available returns the number of buffered bytes
func (r *RingBuffer) Available() int {
	return r.count
}

// Capacity returns the fixed buffer size
func (r *RingBuffer) Capacity() int {
	return len(r.buf)
}

// Dropped returns how many bytes were evicted by overflow so far
func (r *RingBuffer) Dropped() int {
	return r.dropped
}

// Data returns the buffered bytes in order. When the content wraps the
// end of the backing array it is copied into a fresh slice.
func (r *RingBuffer) Data() []byte {
	end := r.start + r.count
	if end <= len(r.buf) {
		return r.buf[r.start:end]
	}
	out := make([]byte, 0, r.count)
	out = append(out, r.buf[r.start:]...)
	return append(out, r.buf[:end-len(r.buf)]...)
}

// Pop removes n bytes from the front
func (r *RingBuffer) Pop(n int) {
	if n > r.count {
		n = r.count
	}
	r.start = (r.start + n) % len(r.buf)
	r.count -= n
}

// Reset discards everything buffered
func (r *RingBuffer) Reset() {
	r.start = 0
	r.count = 0
}
