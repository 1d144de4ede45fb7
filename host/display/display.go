// Package display is the connection to a DWIN DGUS touchscreen: it
// implements dgus.Display over the serial transport and delivers the
// VP reports the screen sends.
package display

import (
	"fmt"
	"io"
	"time"

	"dgusbridge/dgus"
	"dgusbridge/host/serial"
	"dgusbridge/protocol"
)

// picSetMagic prefixes a page switch written to RegPicSet
var picSetMagic = [2]byte{0x5A, 0x01}

// Display represents a connection to a DGUS display
type Display struct {
	// Transport layer
	transport *protocol.HostTransport

	// Serial port, nil when built over an arbitrary stream
	port serial.Port

	// Connection state
	connected bool
}

var _ dgus.Display = (*Display)(nil)

// Connect opens the serial port and starts reading reports. With
// ackTimeout set, every write waits for the display's acknowledgement.
func Connect(cfg *serial.Config, crc bool, ackTimeout time.Duration) (*Display, error) {
	port, err := serial.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port: %w", err)
	}
	// Start on a frame boundary
	if err := port.Flush(); err != nil {
		port.Close()
		return nil, fmt.Errorf("failed to flush %s: %w", cfg.Device, err)
	}

	d := New(port, crc, ackTimeout)
	d.port = port
	return d, nil
}

// New runs the display protocol over an already open stream.
func New(rw io.ReadWriteCloser, crc bool, ackTimeout time.Duration) *Display {
	return &Display{
		transport: protocol.NewHostTransport(rw, crc, ackTimeout),
		connected: true,
	}
}

// Reports delivers VP reports sent by the display; closed when the
// connection drops.
func (d *Display) Reports() <-chan protocol.Frame {
	return d.transport.Frames()
}

// Err returns the error that stopped the reader, if any
func (d *Display) Err() error {
	return d.transport.Err()
}

// Close closes the connection to the display
func (d *Display) Close() error {
	if !d.connected {
		return nil
	}
	d.connected = false
	return d.transport.Close()
}

func (d *Display) Write(addr dgus.Addr, data []byte) error {
	return d.transport.WriteVP(uint16(addr), data)
}

// SwitchScreen shows page s
func (d *Display) SwitchScreen(s dgus.Screen) error {
	data := []byte{picSetMagic[0], picSetMagic[1], 0x00, byte(s)}
	if err := d.transport.WriteVP(protocol.RegPicSet, data); err != nil {
		return fmt.Errorf("switch to %s: %w", s, err)
	}
	return nil
}

// SetVolume sets the touch and alarm volume, 0-100 %
func (d *Display) SetVolume(percent uint8) error {
	if percent > 100 {
		percent = 100
	}
	level := uint8(uint16(percent) * 255 / 100)
	return d.transport.WriteVP(protocol.RegVolume, []byte{level, 0x00})
}

// SetBrightness sets the backlight for the active and standby states, 0-100 %
func (d *Display) SetBrightness(percent uint8) error {
	if percent > 100 {
		percent = 100
	}
	return d.transport.WriteVP(protocol.RegBrightness, []byte{percent, percent})
}

// RequestVersion asks for the firmware version word; the answer arrives
// on Reports() as a report of RegVersion.
func (d *Display) RequestVersion() error {
	return d.transport.RequestVP(protocol.RegVersion, 1)
}

// IsVersionReport reports whether f answers RequestVersion
func IsVersionReport(f protocol.Frame) bool {
	return f.Command == protocol.CmdReadVar && f.Addr == protocol.RegVersion
}

// Version formats a version report the way the info page shows it:
// GUI and OS versions, "x.y" each.
func Version(f protocol.Frame) string {
	if len(f.Data) < 2 {
		return ""
	}
	gui, os := f.Data[0], f.Data[1]
	return fmt.Sprintf("GUI %d.%d OS %d.%d", gui/10, gui%10, os/10, os%10)
}
