package bridge

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"

	"dgusbridge/config"
	"dgusbridge/dgus"
	"dgusbridge/host/display"
	"dgusbridge/protocol"
)

func newBridge(t *testing.T) (*Bridge, *display.LogDisplay) {
	t.Helper()
	is := is.New(t)

	dir := t.TempDir()
	is.NoErr(os.MkdirAll(filepath.Join(dir, "media"), 0o755))
	is.NoErr(os.WriteFile(filepath.Join(dir, "media", "cube.gcode"), []byte("G28\n"), 0o644))

	cfg := config.Default()
	cfg.Machine.MediaRoot = filepath.Join(dir, "media")
	cfg.Machine.SettingsPath = filepath.Join(dir, "settings.yaml")
	cfg.Refresh.IntervalMs = 10
	is.NoErr(config.Validate(cfg))
	config.Normalize(cfg)

	disp := display.NewLogDisplay(io.Discard, nil)
	b, err := New(cfg, disp, log.New(io.Discard, "", 0))
	is.NoErr(err)
	disp.SetTable(b.Dispatcher.Table())
	return b, disp
}

func report(addr dgus.Addr, data ...byte) protocol.Frame {
	return protocol.Frame{Command: protocol.CmdReadVar, Addr: uint16(addr), Words: uint8(len(data) / 2), Data: data}
}

func TestBridgeHomeFromMovePage(t *testing.T) {
	is := is.New(t)
	b, disp := newBridge(t)

	is.NoErr(b.Start())
	b.Step(0)
	is.Equal(disp.Screen(), dgus.ScreenHome)

	b.HandleReport(report(dgus.AddrScreenChange, 0x00, byte(dgus.ScreenMove)))
	b.Step(10 * time.Millisecond)
	is.Equal(disp.Screen(), dgus.ScreenMove)

	b.HandleReport(report(dgus.AddrMoveHome, 0x00, byte(dgus.HomeXYZ)))
	b.Step(10 * time.Millisecond)
	is.Equal(disp.Screen(), dgus.ScreenWait)
	is.True(b.Printer.PositionKnown())

	b.Step(time.Second)
	is.Equal(disp.Screen(), dgus.ScreenWait) // still homing

	b.Step(2 * time.Second)
	is.Equal(disp.Screen(), dgus.ScreenMove)
}

func TestBridgeIgnoresNonReports(t *testing.T) {
	is := is.New(t)
	b, _ := newBridge(t)

	dgus.ClearTrace()
	b.HandleReport(protocol.Frame{Ack: true})
	b.HandleReport(protocol.Frame{Command: protocol.CmdWriteVar, Addr: uint16(dgus.AddrScreenChange), Data: []byte{0, 1}})
	is.Equal(len(dgus.Trace()), 0)
}

func TestBridgeScreenVersion(t *testing.T) {
	is := is.New(t)
	b, _ := newBridge(t)

	b.HandleReport(report(protocol.RegVersion, 42, 21))

	ui := b.Dispatcher.UI()
	got := string(bytes.TrimRight(ui.ScreenVersion[:], "\x00"))
	is.Equal(got, "GUI 4.2 OS 2.1")
}

func TestBridgeRejectionIsNotLogged(t *testing.T) {
	is := is.New(t)
	b, _ := newBridge(t)

	var logs bytes.Buffer
	b.logger = log.New(&logs, "", 0)

	// moves need homing: a status message, not a log line
	b.HandleReport(report(dgus.AddrMoveSetX, 0x03, 0xE8))
	is.Equal(b.Dispatcher.Screens().StatusMessage(), dgus.MsgHomingRequired)
	is.Equal(logs.Len(), 0)

	// a failed settings save is an error worth logging
	is.NoErr(os.RemoveAll(filepath.Dir(b.Store.Path())))
	b.HandleReport(report(dgus.AddrXMaxSpeed, 0x01, 0x2C))
	is.True(strings.Contains(logs.String(), "X_Max_Speed"))
	is.Equal(b.Dispatcher.Screens().StatusMessage(), dgus.MsgEEPROMError)
}

func TestBridgeRunStopsOnCancel(t *testing.T) {
	is := is.New(t)
	b, disp := newBridge(t)

	ctx, cancel := context.WithCancel(context.Background())
	reports := make(chan protocol.Frame, 1)
	reports <- report(dgus.AddrVolumeLevel, 0x00, 30)

	done := make(chan error, 1)
	go func() { done <- b.Run(ctx, reports) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		is.NoErr(err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
	is.Equal(disp.Screen(), dgus.ScreenHome)

	// the volume change was saved on the way out
	data, err := os.ReadFile(b.Store.Path())
	is.NoErr(err)
	is.True(strings.Contains(string(data), "volume: 30"))
}

func TestBridgeRunDisconnect(t *testing.T) {
	is := is.New(t)
	b, _ := newBridge(t)

	reports := make(chan protocol.Frame)
	close(reports)

	err := b.Run(context.Background(), reports)
	is.True(errors.Is(err, ErrDisconnected))
}

func TestBridgeDisconnectReportsFailedSave(t *testing.T) {
	is := is.New(t)
	b, _ := newBridge(t)

	// a deferred save is pending when the display goes away
	b.HandleReport(report(dgus.AddrVolumeLevel, 0x00, 30))
	is.NoErr(os.RemoveAll(filepath.Dir(b.Store.Path())))

	reports := make(chan protocol.Frame)
	close(reports)

	err := b.Run(context.Background(), reports)
	is.True(errors.Is(err, ErrDisconnected))
	is.True(errors.Is(err, fs.ErrNotExist))
}
