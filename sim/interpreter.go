package sim

import (
	"fmt"
	"math"
	"time"

	"dgusbridge/dgus"
	"dgusbridge/sim/gcode"
)

// execute runs one queued command. Long running commands set busyFor and
// hold the queue until Tick has consumed it.
func (p *Printer) execute(cmd *gcode.Command) error {
	dgus.DebugPrintln("sim: exec " + cmd.String())

	switch cmd.Type {
	case 'G':
		return p.executeG(cmd)
	case 'M':
		return p.executeM(cmd)
	case 'T':
		return p.executeT(cmd)
	}
	return nil
}

// executeG handles G-codes
func (p *Printer) executeG(cmd *gcode.Command) error {
	switch cmd.Number {
	case 0, 1: // G0/G1 - Linear move
		return p.doMove(cmd)
	case 28: // G28 - Home
		p.doHome(cmd)
	case 29: // G29 - Probe the bed mesh
		return p.doProbe()
	case 90: // G90 - Absolute positioning
		p.absolute = true
	case 91: // G91 - Relative positioning
		p.absolute = false
	case 92: // G92 - Set position
		p.doSetPosition(cmd)
	}
	return nil
}

// executeM handles M-codes
func (p *Printer) executeM(cmd *gcode.Command) error {
	switch cmd.Number {
	case 17: // M17 - Enable steppers
		p.SetSteppersEnabled(true)
	case 18, 84: // M18/M84 - Disable steppers
		p.SetSteppersEnabled(false)
	case 104, 109: // M104/M109 - Set extruder temperature
		if cmd.Has('S') {
			e := dgus.Heater(cmd.Get('T', float64(p.active)))
			p.SetTargetTemp(e, cmd.Get('S', 0))
		}
	case 106: // M106 - Fan on, S0-255
		p.SetFanPercent(0, uint8(math.Round(cmd.Get('S', 255)*100/255)))
	case 107: // M107 - Fan off
		p.SetFanPercent(0, 0)
	case 140, 190: // M140/M190 - Set bed temperature
		if cmd.Has('S') {
			p.SetTargetTemp(dgus.HeaterBed, cmd.Get('S', 0))
		}
	case 220: // M220 - Feedrate percentage
		if cmd.Has('S') {
			p.SetFeedrate(int16(cmd.Get('S', 100)))
		}
	case 221: // M221 - Flowrate percentage
		if cmd.Has('S') {
			p.SetFlowrate(dgus.Extruder(cmd.Get('T', float64(p.active))), int16(cmd.Get('S', 100)))
		}
	case 280: // M280 - Servo position (BLTouch reset)
		dgus.DebugPrintln(fmt.Sprintf("sim: servo %.0f -> %.0f", cmd.Get('P', 0), cmd.Get('S', 0)))
	case 290: // M290 - Babystep
		p.BabystepZ(cmd.Get('Z', 0))
	case 303: // M303 - PID autotune
		return p.doAutotune(cmd)
	case 500: // M500 - Save settings
		return p.withSettings(func(s dgus.Settings) error { return s.Save() })
	case 501: // M501 - Load settings
		return p.withSettings(func(s dgus.Settings) error { return s.Load() })
	case 502: // M502 - Factory reset
		return p.withSettings(func(s dgus.Settings) error { return s.Reset() })
	case 600: // M600 - Filament change
		if p.job == nil {
			return fmt.Errorf("sim: M600 without a job")
		}
		p.job.paused = true
		p.didPause = true
		p.awaiting = true
	case 1000: // M1000 - Power-loss recovery, C cancels
		return p.doRecovery(cmd.Has('C'))
	}
	return nil
}

// executeT handles tool changes
func (p *Printer) executeT(cmd *gcode.Command) error {
	if cmd.Number < 0 || cmd.Number >= p.cfg.Extruders {
		return fmt.Errorf("sim: invalid extruder T%d", cmd.Number)
	}
	p.active = dgus.Extruder(cmd.Number)
	return nil
}

// doMove executes a linear move (G0/G1)
func (p *Printer) doMove(cmd *gcode.Command) error {
	current := p.pos
	target := current

	if cmd.Has('F') {
		p.feed = cmd.Get('F', 0) / 60.0 // mm/min to mm/s
	}

	axis := func(letter byte, cur float64) float64 {
		if !cmd.Has(letter) {
			return cur
		}
		if p.absolute {
			return cmd.Get(letter, cur)
		}
		return cur + cmd.Get(letter, 0)
	}
	target.X = axis('X', current.X)
	target.Y = axis('Y', current.Y)
	target.Z = axis('Z', current.Z)
	target.E = axis('E', current.E)

	for a, moved := range [3]bool{target.X != current.X, target.Y != current.Y, target.Z != current.Z} {
		if moved && !p.homed[a] {
			return fmt.Errorf("%w: %s", ErrNotHomed, dgus.Axis(a))
		}
	}

	target = p.softLimits(target)
	move := p.planMove(Position{
		X: target.X - current.X,
		Y: target.Y - current.Y,
		Z: target.Z - current.Z,
		E: target.E - current.E,
	}, p.feed)

	p.pos = target
	if move.Duration <= 0 {
		return nil
	}
	p.speed = move.CruiseVel
	p.busyFor = move.Duration
	return nil
}

// doHome executes homing (G28). Without axis letters all axes home.
func (p *Printer) doHome(cmd *gcode.Command) {
	all := !cmd.Has('X') && !cmd.Has('Y') && !cmd.Has('Z')
	if all || cmd.Has('X') {
		p.homed[dgus.AxisX] = true
		p.pos.X = 0
	}
	if all || cmd.Has('Y') {
		p.homed[dgus.AxisY] = true
		p.pos.Y = 0
	}
	if all || cmd.Has('Z') {
		p.homed[dgus.AxisZ] = true
		p.pos.Z = p.zOffset
	}
	p.steppers = true
	p.busyFor = p.cfg.HomingTime
}

// doSetPosition sets the current position (G92)
func (p *Printer) doSetPosition(cmd *gcode.Command) {
	p.pos.X = cmd.Get('X', p.pos.X)
	p.pos.Y = cmd.Get('Y', p.pos.Y)
	p.pos.Z = cmd.Get('Z', p.pos.Z)
	p.pos.E = cmd.Get('E', p.pos.E)
}

// doProbe fills the mesh with a tilted, slightly warped bed.
func (p *Printer) doProbe() error {
	if !p.PositionKnown() {
		return fmt.Errorf("%w: G29", ErrNotHomed)
	}
	const n = dgus.GridPointsX
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			fx := float64(x)/(n-1) - 0.5
			fy := float64(y)/(n-1) - 0.5
			z := 0.08*fx - 0.05*fy + 0.06*(fx*fx+fy*fy)
			p.mesh[y][x] = math.Round(z*1000) / 1000
		}
	}
	p.busyFor = p.cfg.ProbeTime * n * n
	return nil
}

// doAutotune heats to S for C cycles and then settles the gains.
func (p *Printer) doAutotune(cmd *gcode.Command) error {
	h, ok := heaterIndex(dgus.Heater(cmd.Get('E', 0)))
	if !ok {
		return fmt.Errorf("sim: M303 invalid heater E%.0f", cmd.Get('E', 0))
	}
	target := cmd.Get('S', 150)
	if target > p.heaters[h].maxTemp {
		return fmt.Errorf("sim: M303 target %.0f above max", target)
	}
	cycles := math.Max(3, math.Min(cmd.Get('C', 5), 20))

	p.heaters[h].target = target
	p.autotune = &autotune{heater: h, target: target}
	p.busyFor = time.Duration(cycles * p.heaters[h].tau * float64(time.Second))
	return nil
}

func (p *Printer) finishAutotune() {
	at := p.autotune
	if at == nil {
		return
	}
	p.autotune = nil

	h := &p.heaters[at.heater]
	scale := at.target / 200
	h.pid = [3]float64{
		math.Round(h.pid[0]*(0.9+0.1*scale)*100) / 100,
		math.Round(h.pid[1]*(0.9+0.1*scale)*100) / 100,
		math.Round(h.pid[2]*(0.9+0.1*scale)*100) / 100,
	}
	h.target = 0
	dgus.DebugPrintln(fmt.Sprintf("sim: autotune %s Kp=%.2f Ki=%.2f Kd=%.2f",
		heaterNames[at.heater], h.pid[0], h.pid[1], h.pid[2]))
}

// doRecovery resumes or discards the power-loss record.
func (p *Printer) doRecovery(cancel bool) error {
	rec := p.recovery
	if rec == nil {
		return fmt.Errorf("sim: no power-loss record")
	}
	p.recovery = nil
	if cancel {
		return nil
	}
	if p.job != nil {
		return ErrJobActive
	}
	p.job = &job{path: rec.Path, elapsed: rec.Elapsed}
	p.progress = 100 * rec.Elapsed.Seconds() / p.cfg.JobDuration.Seconds()
	p.homed = [4]bool{true, true, true, false}
	return nil
}

func (p *Printer) withSettings(fn func(s dgus.Settings) error) error {
	if p.settings == nil {
		return nil
	}
	return fn(p.settings)
}

// Recovery returns the power-loss record, nil when there is none.
func (p *Printer) Recovery() *Recovery {
	return p.recovery
}

// SetRecovery installs a power-loss record, as read back from storage.
func (p *Printer) SetRecovery(r *Recovery) {
	p.recovery = r
}
