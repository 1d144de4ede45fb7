package display

import (
	"bytes"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"

	"dgusbridge/dgus"
	"dgusbridge/protocol"
)

func TestDisplaySystemRegisters(t *testing.T) {
	is := is.New(t)

	host, screen := net.Pipe()
	d := New(host, false, 0)
	defer d.Close()

	got := make(chan []byte, 4)
	go func() {
		for _, n := range []int{10, 8, 8, 8} {
			buf := make([]byte, n)
			if _, err := io.ReadFull(screen, buf); err != nil {
				return
			}
			got <- buf
		}
	}()

	is.NoErr(d.SwitchScreen(dgus.ScreenMove))
	is.NoErr(d.SetVolume(50))
	is.NoErr(d.SetBrightness(80))
	is.NoErr(d.Write(dgus.AddrTempCurrentH0, []byte{0x00, 0xC8}))

	want := func(addr uint16, data []byte) []byte {
		msg, err := protocol.EncodeWrite(addr, data, false)
		is.NoErr(err)
		return msg
	}
	is.Equal(<-got, want(protocol.RegPicSet, []byte{0x5A, 0x01, 0x00, byte(dgus.ScreenMove)}))
	is.Equal(<-got, want(protocol.RegVolume, []byte{127, 0x00}))
	is.Equal(<-got, want(protocol.RegBrightness, []byte{80, 80}))
	is.Equal(<-got, want(uint16(dgus.AddrTempCurrentH0), []byte{0x00, 0xC8}))
}

func TestDisplayReports(t *testing.T) {
	is := is.New(t)

	host, screen := net.Pipe()
	d := New(host, false, 0)

	go func() {
		report, _ := protocol.EncodeReport(uint16(dgus.AddrScreenChange), []byte{0x00, byte(dgus.ScreenTempMenu)}, false)
		screen.Write(report)
		version, _ := protocol.EncodeReport(protocol.RegVersion, []byte{42, 21}, false)
		screen.Write(version)
	}()

	select {
	case f := <-d.Reports():
		is.Equal(dgus.Addr(f.Addr), dgus.AddrScreenChange)
		is.True(!IsVersionReport(f))
	case <-time.After(time.Second):
		t.Fatal("no report received")
	}
	select {
	case f := <-d.Reports():
		is.True(IsVersionReport(f))
		is.Equal(Version(f), "GUI 4.2 OS 2.1")
	case <-time.After(time.Second):
		t.Fatal("no version received")
	}

	is.NoErr(d.Close())
	is.NoErr(d.Close()) // idempotent
}

func TestLogDisplay(t *testing.T) {
	is := is.New(t)

	table, err := dgus.BuildTable(dgus.DefaultFeatures())
	is.NoErr(err)

	var out bytes.Buffer
	l := NewLogDisplay(&out, table)

	is.NoErr(l.SwitchScreen(dgus.ScreenHome))
	is.NoErr(l.Write(dgus.AddrTempCurrentH0, []byte{0x00, 0xC8}))
	is.NoErr(l.Write(dgus.AddrTempCurrentH0, []byte{0x00, 0xC8})) // unchanged, not printed
	status := make([]byte, dgus.StatusLen)
	copy(status, "Busy")
	is.NoErr(l.Write(dgus.AddrMessageStatus, status))
	is.NoErr(l.Write(0x7FF0, []byte{1, 2, 3}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	is.Equal(len(lines), 4)
	is.Equal(lines[0], "[screen] HOME")
	is.True(strings.Contains(lines[1], "TEMP_Current_H0"))
	is.True(strings.HasSuffix(lines[1], " 200"))
	is.True(strings.HasSuffix(lines[2], `"Busy"`))
	is.True(strings.HasSuffix(lines[3], "01 02 03"))

	is.Equal(l.Screen(), dgus.ScreenHome)
	v, ok := l.Value(dgus.AddrTempCurrentH0)
	is.True(ok)
	is.Equal(v, []byte{0x00, 0xC8})
}
