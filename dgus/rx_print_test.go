package dgus

import (
	"testing"
	"time"

	"dgusbridge/protocol"
)

func newMedia() *fakeMedia {
	root := []Entry{{Name: "sub", Path: "/sub", Dir: true}}
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		root = append(root, Entry{Name: name + ".gcode", Path: "/" + name + ".gcode"})
	}
	return &fakeMedia{
		cwd: "/",
		tree: map[string][]Entry{
			"/":    root,
			"/sub": {{Name: "deep.gcode", Path: "/sub/deep.gcode"}},
		},
	}
}

func TestSDBrowse(t *testing.T) {
	h := newHarness(t, DefaultFeatures())
	media := newMedia()
	h.d.env.Media = media
	ui := h.d.UI()

	h.d.Dispatch(AddrSDScroll, selector(uint8(ScrollDown)))
	if ui.FileOffset != FileCount {
		t.Errorf("Expected offset %d, got %d", FileCount, ui.FileOffset)
	}
	// no further page
	h.d.Dispatch(AddrSDScroll, selector(uint8(ScrollDown)))
	if ui.FileOffset != FileCount {
		t.Errorf("Expected offset to stay %d, got %d", FileCount, ui.FileOffset)
	}
	h.d.Dispatch(AddrSDScroll, selector(uint8(ScrollUp)))
	if ui.FileOffset != 0 {
		t.Errorf("Expected offset 0, got %d", ui.FileOffset)
	}

	if err := h.d.Dispatch(AddrSDScroll, selector(uint8(ScrollGoBack))); err != nil {
		t.Errorf("Expected go back at the root ignored, got %v", err)
	}

	h.d.Dispatch(AddrSDSelectFile, selector(0))
	if media.cwd != "/sub" || ui.FileSelected != -1 {
		t.Errorf("Expected to enter /sub with nothing selected, got %s %d", media.cwd, ui.FileSelected)
	}
	h.d.Dispatch(AddrSDScroll, selector(uint8(ScrollGoBack)))
	if media.cwd != "/" {
		t.Errorf("Expected back at the root, got %s", media.cwd)
	}

	h.d.Dispatch(AddrSDSelectFile, selector(4))
	h.d.Dispatch(AddrSDScroll, selector(uint8(ScrollDown)))
	// past the end of the listing
	h.d.Dispatch(AddrSDSelectFile, selector(4))
	if ui.FileSelected != 4 {
		t.Errorf("Expected selection to stay 4, got %d", ui.FileSelected)
	}
}

func TestSDPrint(t *testing.T) {
	h := newHarness(t, DefaultFeatures())
	h.d.env.Media = newMedia()
	h.settle(t)

	err := h.d.Dispatch(AddrSDPrint, selector(1))
	if statusKind(t, err) != KindPrecondition || h.d.Screens().StatusMessage() != MsgNoFileSelected {
		t.Errorf("Expected %q, got %v", MsgNoFileSelected, err)
	}

	h.d.Dispatch(AddrSDSelectFile, selector(2))
	h.machine.idle = false
	if statusKind(t, h.d.Dispatch(AddrSDPrint, selector(1))) != KindBusy {
		t.Errorf("Expected busy rejection")
	}
	h.machine.idle = true

	if err := h.d.Dispatch(AddrSDPrint, selector(1)); err != nil {
		t.Fatalf("print: %v", err)
	}
	h.loop(t)
	if len(h.machine.started) != 1 || h.machine.started[0] != "/b.gcode" {
		t.Errorf("Expected /b.gcode started, got %v", h.machine.started)
	}
	if h.display.screen() != ScreenPrintStatus {
		t.Errorf("Expected %s, got %s", ScreenPrintStatus, h.display.screen())
	}
}

func TestAdjustRates(t *testing.T) {
	h := newHarness(t, DefaultFeatures())

	h.d.Dispatch(AddrAdjustSetFeedrate, word(150))
	if h.machine.feedrate != 150 {
		t.Errorf("Expected feedrate 150, got %d", h.machine.feedrate)
	}
	h.d.Dispatch(AddrAdjustSetFlowrateCur, word(95))
	if h.machine.flow[ExtruderE0] != 95 {
		t.Errorf("Expected E0 flowrate 95, got %d", h.machine.flow[ExtruderE0])
	}
	// the per-extruder VP needs a second extruder
	if _, ok := h.d.Table().Resolve(AddrAdjustSetFlowrateE1); ok {
		t.Errorf("Expected no E1 flowrate VP with one extruder")
	}
}

func TestBabystep(t *testing.T) {
	h := newHarness(t, DefaultFeatures())
	h.settle(t)

	h.d.Dispatch(AddrAdjustSetBabystep, protocol.EncodeFixed(-0.15, protocol.Width16, 2))
	if h.machine.zOffset != -0.15 {
		t.Errorf("Expected Z offset -0.15, got %v", h.machine.zOffset)
	}
	h.d.Dispatch(AddrAdjustBabystep, selector(uint8(AdjustIncrement)))
	h.d.Dispatch(AddrAdjustBabystep, selector(uint8(AdjustIncrement)))
	h.d.Dispatch(AddrAdjustBabystep, selector(uint8(AdjustDecrement)))
	if got := h.machine.zOffset; got < -0.1401 || got > -0.1399 {
		t.Errorf("Expected Z offset -0.14, got %v", got)
	}

	h.loop(t)
	if h.settings.saves != 0 {
		t.Errorf("Expected the save deferred")
	}
	h.clock.advance(2 * time.Second)
	h.loop(t)
	if h.settings.saves != 1 {
		t.Errorf("Expected one coalesced save, got %d", h.settings.saves)
	}
}

func TestMachineToggles(t *testing.T) {
	h := newHarness(t, DefaultFeatures())

	h.d.Dispatch(AddrStepperControl, selector(uint8(ControlDisable)))
	h.d.Dispatch(AddrStepperControl, selector(uint8(ControlEnable)))
	if len(h.machine.steppers) != 2 || h.machine.steppers[0] || !h.machine.steppers[1] {
		t.Errorf("Expected disable then enable, got %v", h.machine.steppers)
	}

	h.d.Dispatch(AddrRunoutControl, selector(uint8(ControlDisable)))
	if h.machine.runout {
		t.Errorf("Expected runout sensor disabled")
	}

	h.d.Dispatch(AddrFan0Speed, []byte{0, 150})
	if h.machine.fan != 100 {
		t.Errorf("Expected fan clamped to 100, got %d", h.machine.fan)
	}

	h.machine.awaiting = true
	h.d.Dispatch(AddrWaitContinue, selector(1))
	if h.machine.awaiting || h.machine.confirmed != 1 {
		t.Errorf("Expected the wait confirmed")
	}
}
