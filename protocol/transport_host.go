package protocol

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// ErrClosed is returned by writes after Close.
var ErrClosed = errors.New("transport closed")

// maxReadErrors consecutive failed reads stop the reader. A port that
// went away fails every read.
const maxReadErrors = 10

// HostTransport drives a DGUS display over a serial port. A background
// goroutine parses the incoming stream; VP reports are delivered on
// Frames(), write acks are counted and optionally awaited.
type HostTransport struct {
	port io.ReadWriteCloser
	crc  bool

	// Ack wait per write; zero writes without waiting
	ackTimeout time.Duration

	input    *RingBuffer
	receiver *Receiver

	frames  chan Frame
	ackChan chan struct{}
	acks    uint32 // atomic

	writeMutex sync.Mutex
	closeOnce  sync.Once
	readErr    atomic.Value // error

	stopChan chan struct{}
	doneChan chan struct{}
}

// NewHostTransport creates a transport and starts its reader
func NewHostTransport(port io.ReadWriteCloser, crc bool, ackTimeout time.Duration) *HostTransport {
	t := &HostTransport{
		port:       port,
		crc:        crc,
		ackTimeout: ackTimeout,
		input:      NewRingBuffer(FrameMax * 4),
		frames:     make(chan Frame, 16),
		ackChan:    make(chan struct{}, 1),
		stopChan:   make(chan struct{}),
		doneChan:   make(chan struct{}),
	}
	t.receiver = NewReceiver(crc, t.dispatchFrame)

	go t.readLoop()

	return t
}

// Frames delivers VP reports sent by the display. The channel is closed
// when the reader stops.
func (t *HostTransport) Frames() <-chan Frame {
	return t.frames
}

// Acks returns the number of write acks received
func (t *HostTransport) Acks() uint32 {
	return atomic.LoadUint32(&t.acks)
}

// Err returns the error that stopped the reader, if any
func (t *HostTransport) Err() error {
	if err, ok := t.readErr.Load().(error); ok {
		return err
	}
	return nil
}

// WriteVP writes data to the VP at addr. With an ack timeout the write
// lock is held until the display acks, so an ack belongs to the last
// write sent.
func (t *HostTransport) WriteVP(addr uint16, data []byte) error {
	msg, err := EncodeWrite(addr, data, t.crc)
	if err != nil {
		return err
	}

	t.writeMutex.Lock()
	defer t.writeMutex.Unlock()

	// a late ack of a timed out write
	t.drainAck()

	if err := t.write(msg); err != nil {
		return fmt.Errorf("failed to write VP %#04x: %w", addr, err)
	}
	if t.ackTimeout > 0 {
		if err := t.waitForAck(t.ackTimeout); err != nil {
			return fmt.Errorf("VP %#04x: %w", addr, err)
		}
	}
	return nil
}

// RequestVP asks the display to report words starting at addr. The
// answer arrives on Frames().
func (t *HostTransport) RequestVP(addr uint16, words uint8) error {
	return t.writeMessage(EncodeRead(addr, words, t.crc))
}

func (t *HostTransport) writeMessage(msg []byte) error {
	t.writeMutex.Lock()
	defer t.writeMutex.Unlock()
	return t.write(msg)
}

// write sends msg; the caller holds writeMutex
func (t *HostTransport) write(msg []byte) error {
	select {
	case <-t.stopChan:
		return ErrClosed
	default:
	}

	n, err := t.port.Write(msg)
	if err != nil {
		return err
	}
	if n != len(msg) {
		return fmt.Errorf("incomplete write: %d/%d bytes", n, len(msg))
	}
	return nil
}

func (t *HostTransport) drainAck() {
	select {
	case <-t.ackChan:
	default:
	}
}

func (t *HostTransport) waitForAck(timeout time.Duration) error {
	select {
	case <-t.ackChan:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("ack timeout after %v", timeout)
	case <-t.stopChan:
		return ErrClosed
	}
}

// readLoop continuously reads from the serial port and parses frames
func (t *HostTransport) readLoop() {
	defer close(t.doneChan)
	defer close(t.frames)

	buffer := make([]byte, 256)
	failures := 0

	for {
		select {
		case <-t.stopChan:
			return
		default:
		}

		n, err := t.port.Read(buffer)
		if n > 0 {
			t.input.Write(buffer[:n])
			t.receiver.Receive(t.input)
		}
		if err == nil {
			failures = 0
			continue
		}
		if errors.Is(err, os.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
			t.readErr.Store(err)
			return
		}
		// Serial read timeouts surface as io.EOF
		if err == io.EOF {
			failures = 0
			time.Sleep(10 * time.Millisecond)
			continue
		}
		failures++
		if failures >= maxReadErrors {
			t.readErr.Store(fmt.Errorf("read: %w", err))
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func (t *HostTransport) dispatchFrame(f Frame) {
	if f.Ack {
		atomic.AddUint32(&t.acks, 1)
		select {
		case t.ackChan <- struct{}{}:
		default:
		}
		return
	}

	// Data aliases the receive buffer
	f.Data = append([]byte(nil), f.Data...)

	select {
	case t.frames <- f:
	case <-t.stopChan:
	}
}

// Close stops the reader and closes the port
func (t *HostTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.stopChan)
		// Closing the port unblocks a pending Read
		if t.port != nil {
			err = t.port.Close()
		}
		<-t.doneChan
	})
	return err
}
