package dgus

import (
	"fmt"
	"time"

	"dgusbridge/protocol"
)

func u16(v uint16) []byte {
	return protocol.EncodeUint(uint32(v), protocol.Width16)
}

func txFileType(env *Env, vp *VP) ([]byte, error) {
	out := make([]byte, 0, FileCount*2)
	for i := 0; i < FileCount; i++ {
		t := SDTypeNone
		if env.Media != nil {
			if e, ok := env.Media.Entry(int(env.UI.FileOffset) + i); ok {
				t = SDTypeFile
				if e.Dir {
					t = SDTypeDirectory
				}
			}
		}
		out = append(out, u16(uint16(t))...)
	}
	return out, nil
}

func txFileName(row int) TxHandler {
	return func(env *Env, vp *VP) ([]byte, error) {
		name := ""
		if env.Media != nil {
			if e, ok := env.Media.Entry(int(env.UI.FileOffset) + row); ok {
				name = e.Name
			}
		}
		return padString(name, int(vp.Size)), nil
	}
}

func txScrollIcons(env *Env, vp *VP) ([]byte, error) {
	var icons uint16
	if env.Media != nil {
		if !env.Media.AtRoot() {
			icons |= ScrollIconGoBack
		}
		if env.UI.FileOffset > 0 {
			icons |= ScrollIconUp
		}
		if int(env.UI.FileOffset)+FileCount < env.Media.Count() {
			icons |= ScrollIconDown
		}
	}
	return u16(icons), nil
}

func txSelectedFileName(env *Env, vp *VP) ([]byte, error) {
	name := ""
	if env.Media != nil && env.UI.FileSelected >= 0 {
		if e, ok := env.Media.Entry(int(env.UI.FileSelected)); ok {
			name = e.Name
		}
	}
	return padString(name, int(vp.Size)), nil
}

func txEllapsed(env *Env, vp *VP) ([]byte, error) {
	return padString(formatElapsed(env.Machine.Elapsed()), int(vp.Size)), nil
}

func txFlowrate(env *Env, vp *VP) ([]byte, error) {
	var e Extruder
	switch vp.Addr {
	case AddrAdjustFlowrateCur:
		e = env.activeExtruder(ExtruderCurrent)
	case AddrAdjustFlowrateE0:
		e = ExtruderE0
	case AddrAdjustFlowrateE1:
		e = ExtruderE1
	default:
		return nil, ErrIgnored
	}
	return protocol.EncodeInt(int32(env.Machine.Flowrate(e)), protocol.Width16), nil
}

func txTempMax(h Heater) TxHandler {
	return func(env *Env, vp *VP) ([]byte, error) {
		return u16(uint16(env.maxTarget(h))), nil
	}
}

func txOffsetStepIcons(env *Env, vp *VP) ([]byte, error) {
	return u16(env.UI.OffsetStep.Icon()), nil
}

func txMoveStepIcons(env *Env, vp *VP) ([]byte, error) {
	return u16(env.UI.MoveStep.Icon()), nil
}

// txABLGrid writes the probed mesh row by row, 3 decimals.
func txABLGrid(env *Env, vp *VP) ([]byte, error) {
	out := make([]byte, 0, LevelGridSize*2)
	for y := 0; y < GridPointsX; y++ {
		for x := 0; x < GridPointsX; x++ {
			out = append(out, protocol.EncodeFixed(env.Machine.MeshZ(x, y), protocol.Width16, 3)...)
		}
	}
	return out, nil
}

func txFilamentIcons(env *Env, vp *VP) ([]byte, error) {
	var icons uint16
	switch env.activeExtruder(env.UI.FilamentExtruder) {
	case ExtruderE0:
		icons = ExtruderIconE0
	case ExtruderE1:
		icons = ExtruderIconE1
	}
	return u16(icons), nil
}

func txBLTouch(env *Env, vp *VP) ([]byte, error) {
	status := StatusDisabled
	if env.Features.BLTouch {
		status = StatusEnabled
	}
	return u16(uint16(status)), nil
}

func txPIDIcons(env *Env, vp *VP) ([]byte, error) {
	var icons uint16
	switch env.UI.PIDHeater {
	case HeaterBed:
		icons = HeaterIconBed
	case HeaterH0:
		icons = HeaterIconH0
	case HeaterH1:
		icons = HeaterIconH1
	}
	return u16(icons), nil
}

// txPID writes one of Kp, Ki, Kd (0, 1, 2) of the staged heater.
func txPID(term int) TxHandler {
	return func(env *Env, vp *VP) ([]byte, error) {
		kp, ki, kd := env.Machine.PIDValues(env.UI.PIDHeater)
		v := [3]float64{kp, ki, kd}[term]
		return protocol.EncodeFixed(v, protocol.Width32, 2), nil
	}
}

func txBuildVolume(env *Env, vp *VP) ([]byte, error) {
	x, y, z := env.Machine.BuildVolume()
	s := fmt.Sprintf("%.0fx%.0fx%.0f", x, y, z)
	return padString(s, int(vp.Size)), nil
}

func txWaitIcons(env *Env, vp *VP) ([]byte, error) {
	var icons uint16
	didPause := !env.Features.AdvancedPause || env.Machine.DidPause()
	if env.Machine.IsPaused() && didPause {
		icons |= WaitIconAbort
	}
	if env.Machine.AwaitingUserConfirm() {
		icons |= WaitIconContinue
	}
	return u16(icons), nil
}

func txPauseResumeIcon(env *Env, vp *VP) ([]byte, error) {
	var icon uint16
	if env.Machine.IsPrinting() {
		icon = 1
	}
	return u16(icon), nil
}

func txLine(n int) TxHandler {
	return ExtraToString(Value(func(env *Env) string { return env.Screens.MessageLine(n) }))
}

// formatElapsed renders a print time for the status page: "01h 02m 03s",
// or "2d 01h 02m" past a day.
func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	days := int(d / (24 * time.Hour))
	h := int(d/time.Hour) % 24
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %02dh %02dm", days, h, m)
	}
	return fmt.Sprintf("%02dh %02dm %02ds", h, m, s)
}

// formatDuration renders a statistics duration: "3d 4h 5m".
func formatDuration(d time.Duration) string {
	days := int(d / (24 * time.Hour))
	h := int(d/time.Hour) % 24
	m := int(d/time.Minute) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, h, m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// formatFilament renders millimetres as metres: "12.34m".
func formatFilament(mm float64) string {
	return fmt.Sprintf("%.2fm", mm/1000)
}
