// Package serial opens the UART link to a DWIN T5L display.
package serial

import "io"

// Port carries DGUS frames. NativePort is the hardware one; tests use
// an in-memory pipe.
type Port interface {
	io.ReadWriteCloser

	// Flush drops bytes the display sent before we were listening.
	Flush() error
}

// Config selects the display's UART.
type Config struct {
	Device string // /dev/ttyUSB0, COM3
	Baud   int    // must match the T5L firmware setting

	// Milliseconds a Read waits for the display; the transport polls on
	// timeout. Zero blocks.
	ReadTimeout int
}

// DefaultConfig returns the stock DGUS link settings
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200, // DWIN factory default
		ReadTimeout: 100,
	}
}
