package display

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"dgusbridge/dgus"
	"dgusbridge/protocol"
)

// LogDisplay is a dgus.Display without hardware: it prints what a real
// display would be sent, VPs by name.
type LogDisplay struct {
	out   io.Writer
	table *dgus.Table

	// Quiet suppresses VP writes and keeps page switches
	Quiet bool

	screen dgus.Screen
	values map[dgus.Addr][]byte
}

var _ dgus.Display = (*LogDisplay)(nil)

func NewLogDisplay(out io.Writer, table *dgus.Table) *LogDisplay {
	return &LogDisplay{
		out:    out,
		table:  table,
		screen: dgus.ScreenBoot,
		values: make(map[dgus.Addr][]byte),
	}
}

// SetTable names VPs once the dispatcher has built its table
func (l *LogDisplay) SetTable(table *dgus.Table) {
	l.table = table
}

func (l *LogDisplay) Write(addr dgus.Addr, data []byte) error {
	prev, seen := l.values[addr]
	l.values[addr] = append([]byte(nil), data...)
	if l.Quiet || (seen && string(prev) == string(data)) {
		return nil
	}
	_, err := fmt.Fprintf(l.out, "  %-28s %s\n", l.name(addr), formatValue(data))
	return err
}

func (l *LogDisplay) SwitchScreen(s dgus.Screen) error {
	l.screen = s
	_, err := fmt.Fprintf(l.out, "[screen] %s\n", s)
	return err
}

func (l *LogDisplay) SetVolume(percent uint8) error {
	_, err := fmt.Fprintf(l.out, "[volume] %d%%\n", percent)
	return err
}

func (l *LogDisplay) SetBrightness(percent uint8) error {
	_, err := fmt.Fprintf(l.out, "[brightness] %d%%\n", percent)
	return err
}

// Screen returns the page last switched to
func (l *LogDisplay) Screen() dgus.Screen {
	return l.screen
}

// Value returns the last data written to addr
func (l *LogDisplay) Value(addr dgus.Addr) ([]byte, bool) {
	v, ok := l.values[addr]
	return v, ok
}

func (l *LogDisplay) name(addr dgus.Addr) string {
	if l.table != nil {
		if vp, ok := l.table.Resolve(addr); ok {
			return vp.Name
		}
	}
	return addr.String()
}

// formatValue shows text fields as text and everything else as words
func formatValue(data []byte) string {
	if text, ok := printable(data); ok {
		return fmt.Sprintf("%q", text)
	}
	if len(data) == 2 {
		return fmt.Sprintf("%d", int16(protocol.DecodeInt(data, protocol.Width16)))
	}
	if len(data) == 4 {
		return fmt.Sprintf("%d", protocol.DecodeInt(data, protocol.Width32))
	}
	return fmt.Sprintf("% X", data)
}

func printable(data []byte) (string, bool) {
	if len(data) <= 4 {
		return "", false
	}
	end := len(data)
	for i, b := range data {
		if b == 0x00 || b == 0xFF {
			end = i
			break
		}
	}
	text := string(data[:end])
	if !strings.ContainsFunc(text, func(r rune) bool { return !unicode.IsPrint(r) }) {
		return text, true
	}
	return "", false
}
