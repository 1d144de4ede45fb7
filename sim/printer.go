package sim

import (
	"errors"
	"fmt"
	"math"
	"time"

	"dgusbridge/dgus"
	"dgusbridge/sim/gcode"
)

var (
	ErrQueueFull     = errors.New("sim: command queue full")
	ErrNotHomed      = errors.New("sim: axis not homed")
	ErrColdExtrusion = errors.New("sim: cold extrusion prevented")
	ErrJobActive     = errors.New("sim: a job is already running")
)

// QueueSize is the depth of the G-code queue
const QueueSize = 16

// MinExtrudeTemp is the cold extrusion limit
const MinExtrudeTemp = 170.0

var _ dgus.Machine = (*Printer)(nil)

const (
	heaterBed = 0
	heaterH0  = 1
	heaterH1  = 2
	numHeater = 3
)

var heaterNames = [numHeater]string{"bed", "h0", "h1"}

func heaterIndex(h dgus.Heater) (int, bool) {
	i := int(h) + 1
	if i < 0 || i >= numHeater {
		return 0, false
	}
	return i, true
}

type heater struct {
	current float64
	target  float64
	pid     [3]float64
	maxTemp float64
	tau     float64
}

// job is the running print
type job struct {
	path    string
	elapsed time.Duration
	paused  bool
}

// Recovery is a power-loss record: the job that was running.
type Recovery struct {
	Path    string        `yaml:"path"`
	Elapsed time.Duration `yaml:"elapsed"`
}

// Printer is a simulated printer implementing dgus.Machine. It is driven
// by Tick and, like the display handlers, is used from one goroutine.
type Printer struct {
	cfg    MachineConfig
	parser *gcode.Parser

	queue   []*gcode.Command
	busyFor time.Duration // remaining time of the executing command
	speed   float64       // mm/s of the executing move

	pos      Position
	homed    [4]bool
	absolute bool
	feed     float64 // mm/s for G0/G1 without F
	steppers bool
	active   dgus.Extruder

	heaters [numHeater]heater
	fan     uint8

	feedrate int16
	flowrate [2]int16
	zOffset  float64
	runout   bool
	mesh     [dgus.GridPointsX][dgus.GridPointsX]float64
	params   [dgus.NumParams]float64

	job      *job
	progress float64
	didPause bool
	awaiting bool
	recovery *Recovery
	stats    dgus.PrintStats
	autotune *autotune
	settings dgus.Settings
}

type autotune struct {
	heater int
	target float64
}

// NewPrinter creates a homed-nothing, cold printer.
func NewPrinter(cfg MachineConfig) *Printer {
	cfg.ApplyDefaults()
	p := &Printer{
		cfg:      cfg,
		parser:   gcode.NewParser(),
		absolute: true,
		feed:     cfg.DefaultVelocity,
		runout:   true,
	}
	for i, name := range heaterNames {
		hc := cfg.Heaters[name]
		p.heaters[i] = heater{
			current: cfg.Ambient,
			pid:     hc.PID,
			maxTemp: hc.MaxTemp,
			tau:     hc.TimeConstant,
		}
	}
	p.ResetParams()
	return p
}

// ResetParams restores the configured defaults of every tunable.
func (p *Printer) ResetParams() {
	ax := p.cfg.Axes
	p.params = [dgus.NumParams]float64{
		dgus.ParamStepsPerMMX:       ax["x"].StepsPerMM,
		dgus.ParamStepsPerMMY:       ax["y"].StepsPerMM,
		dgus.ParamStepsPerMMZ:       ax["z"].StepsPerMM,
		dgus.ParamStepsPerMME:       ax["e"].StepsPerMM,
		dgus.ParamJerkX:             ax["x"].Jerk,
		dgus.ParamJerkY:             ax["y"].Jerk,
		dgus.ParamJerkZ:             ax["z"].Jerk,
		dgus.ParamJerkE:             ax["e"].Jerk,
		dgus.ParamAccelX:            ax["x"].MaxAccel,
		dgus.ParamAccelY:            ax["y"].MaxAccel,
		dgus.ParamAccelZ:            ax["z"].MaxAccel,
		dgus.ParamAccelE:            ax["e"].MaxAccel,
		dgus.ParamAccelPrint:        p.cfg.DefaultAccel,
		dgus.ParamAccelRetract:      p.cfg.DefaultAccel,
		dgus.ParamAccelTravel:       p.cfg.DefaultAccel,
		dgus.ParamMaxFeedrateX:      ax["x"].MaxVelocity,
		dgus.ParamMaxFeedrateY:      ax["y"].MaxVelocity,
		dgus.ParamMaxFeedrateZ:      ax["z"].MaxVelocity,
		dgus.ParamMaxFeedrateE:      ax["e"].MaxVelocity,
		dgus.ParamMinFeedrate:       0,
		dgus.ParamMinTravelFeedrate: 0,
		dgus.ParamJunctionDeviation: p.cfg.JunctionDeviation,
		dgus.ParamLinearAdvance:     p.cfg.LinearAdvance,
	}
	p.zOffset = 0
	p.feedrate = 100
	p.flowrate = [2]int16{100, 100}
	for i, name := range heaterNames {
		p.heaters[i].pid = p.cfg.Heaters[name].PID
	}
}

// SetSettings connects M500/M501/M502 to a settings store.
func (p *Printer) SetSettings(s dgus.Settings) {
	p.settings = s
}

// Tick advances the simulation by dt: heaters, the print job and the
// command queue.
func (p *Printer) Tick(dt time.Duration) {
	p.tickHeaters(dt)
	p.tickJob(dt)

	if p.busyFor > 0 {
		p.busyFor -= dt
		if p.busyFor > 0 {
			return
		}
		p.busyFor = 0
		p.speed = 0
		p.finishAutotune()
	}

	for p.busyFor == 0 && len(p.queue) > 0 {
		cmd := p.queue[0]
		p.queue = p.queue[1:]
		if err := p.execute(cmd); err != nil {
			dgus.DebugPrintln("sim: " + cmd.Code() + ": " + err.Error())
		}
	}
}

func (p *Printer) tickHeaters(dt time.Duration) {
	for i := range p.heaters {
		h := &p.heaters[i]
		goal := p.cfg.Ambient
		if h.target > 0 {
			goal = h.target
		}
		k := 1.0
		if h.tau > 0 {
			k = 1 - math.Exp(-dt.Seconds()/h.tau)
		}
		h.current += (goal - h.current) * k
	}
}

func (p *Printer) tickJob(dt time.Duration) {
	if p.job == nil || p.job.paused {
		return
	}
	p.job.elapsed += dt
	p.progress = 100 * p.job.elapsed.Seconds() / p.cfg.JobDuration.Seconds()
	if p.progress < 100 {
		return
	}

	p.progress = 100
	p.stats.FinishedPrints++
	p.stats.PrintTime += p.job.elapsed
	if p.job.elapsed > p.stats.LongestPrint {
		p.stats.LongestPrint = p.job.elapsed
	}
	p.stats.FilamentUsed += p.cfg.JobFilament * float64(p.flowrate[0]) / 100
	dgus.DebugPrintln("sim: job finished " + p.job.path)
	p.job = nil
}

// Enqueue parses and queues a G-code line.
func (p *Printer) Enqueue(line string) error {
	cmd, err := p.parser.ParseLine(line)
	if err != nil {
		return err
	}
	if cmd == nil || cmd.Type == 0 {
		return nil
	}
	if len(p.queue) >= QueueSize {
		return ErrQueueFull
	}
	p.queue = append(p.queue, cmd)
	return nil
}

// Queued returns the number of waiting commands
func (p *Printer) Queued() int {
	return len(p.queue)
}

// PowerLoss drops the running job into a power-loss record, as after an
// outage mid-print.
func (p *Printer) PowerLoss() bool {
	if p.job == nil {
		return false
	}
	p.recovery = &Recovery{Path: p.job.path, Elapsed: p.job.elapsed}
	p.job = nil
	p.queue = nil
	p.busyFor = 0
	p.homed = [4]bool{}
	for i := range p.heaters {
		p.heaters[i].target = 0
	}
	return true
}

// FilamentRunout parks the running job until the user confirms.
func (p *Printer) FilamentRunout() bool {
	if !p.runout || p.job == nil || p.job.paused {
		return false
	}
	p.job.paused = true
	p.didPause = true
	p.awaiting = true
	return true
}

// Activity

func (p *Printer) IsPrinting() bool          { return p.job != nil && !p.job.paused }
func (p *Printer) IsPaused() bool            { return p.job != nil && p.job.paused }
func (p *Printer) JobRunning() bool          { return p.job != nil }
func (p *Printer) DidPause() bool            { return p.didPause }
func (p *Printer) ClearDidPause()            { p.didPause = false }
func (p *Printer) AwaitingUserConfirm() bool { return p.awaiting }
func (p *Printer) SetUserConfirmed()         { p.awaiting = false }
func (p *Printer) RecoveryValid() bool       { return p.recovery != nil }
func (p *Printer) Progress() uint8           { return uint8(p.progress) }
func (p *Printer) Stats() dgus.PrintStats    { return p.stats }

// IsIdle reports an empty queue, no command executing and no job moving.
func (p *Printer) IsIdle() bool {
	return len(p.queue) == 0 && p.busyFor == 0 && !p.IsPrinting()
}

func (p *Printer) Elapsed() time.Duration {
	if p.job == nil {
		return 0
	}
	return p.job.elapsed
}

func (p *Printer) StartPrint(path string) error {
	if p.job != nil {
		return ErrJobActive
	}
	p.job = &job{path: path}
	p.progress = 0
	p.stats.TotalPrints++
	dgus.DebugPrintln("sim: job started " + path)
	return nil
}

func (p *Printer) StopPrint() {
	if p.job == nil {
		return
	}
	dgus.DebugPrintln("sim: job aborted " + p.job.path)
	p.stats.PrintTime += p.job.elapsed
	p.job = nil
	p.progress = 0
	p.queue = nil
	p.didPause = false
	p.awaiting = false
}

func (p *Printer) PausePrint() {
	if p.job == nil {
		return
	}
	p.job.paused = true
	p.didPause = true
}

func (p *Printer) ResumePrint() {
	if p.job == nil {
		return
	}
	p.job.paused = false
	p.didPause = false
	p.awaiting = false
}

// Motion

func (p *Printer) AxisHomed(a dgus.Axis) bool {
	return int(a) < len(p.homed) && p.homed[a]
}

func (p *Printer) PositionKnown() bool {
	return p.homed[dgus.AxisX] && p.homed[dgus.AxisY] && p.homed[dgus.AxisZ]
}

func (p *Printer) AxisPosition(a dgus.Axis) float64 {
	switch a {
	case dgus.AxisX:
		return p.pos.X
	case dgus.AxisY:
		return p.pos.Y
	case dgus.AxisZ:
		return p.pos.Z
	case dgus.AxisE:
		return p.pos.E
	}
	return 0
}

// SetAxisPosition queues a move of one axis, clamped to its travel.
func (p *Printer) SetAxisPosition(a dgus.Axis, mm float64) error {
	if a == dgus.AxisE || !p.AxisHomed(a) {
		return ErrNotHomed
	}
	limits := p.cfg.Axes[axisKey(a)]
	mm = math.Max(limits.MinPosition, math.Min(limits.MaxPosition, mm))
	return p.Enqueue(fmt.Sprintf("G0F%.0f%s%.2f", limits.MaxVelocity*60/2, a, mm))
}

// MoveExtruder queues a relative extruder move.
func (p *Printer) MoveExtruder(e dgus.Extruder, mm float64) error {
	h, ok := heaterIndex(dgus.Heater(e))
	if !ok || h == heaterBed {
		return fmt.Errorf("sim: no extruder %d", e)
	}
	if p.heaters[h].current < MinExtrudeTemp {
		return ErrColdExtrusion
	}
	for _, line := range []string{fmt.Sprintf("T%d", e), "G91", fmt.Sprintf("G1E%.2fF300", mm), "G90"} {
		if err := p.Enqueue(line); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) ActiveExtruder() dgus.Extruder { return p.active }

func (p *Printer) SetSteppersEnabled(on bool) {
	p.steppers = on
	if !on {
		p.homed = [4]bool{}
	}
}

func (p *Printer) CurrentSpeed() float64 {
	if p.IsPrinting() {
		return p.cfg.DefaultVelocity * float64(p.feedrate) / 100
	}
	return p.speed
}

// Thermal

func (p *Printer) CurrentTemp(h dgus.Heater) float64 {
	if i, ok := heaterIndex(h); ok {
		return p.heaters[i].current
	}
	return 0
}

func (p *Printer) TargetTemp(h dgus.Heater) float64 {
	if i, ok := heaterIndex(h); ok {
		return p.heaters[i].target
	}
	return 0
}

func (p *Printer) SetTargetTemp(h dgus.Heater, celsius float64) {
	i, ok := heaterIndex(h)
	if !ok {
		return
	}
	p.heaters[i].target = math.Max(0, math.Min(celsius, p.heaters[i].maxTemp))
}

func (p *Printer) MaxTemp(h dgus.Heater) float64 {
	if i, ok := heaterIndex(h); ok {
		return p.heaters[i].maxTemp
	}
	return 0
}

func (p *Printer) FanPercent(fan int) uint8 {
	if fan != 0 {
		return 0
	}
	return p.fan
}

func (p *Printer) SetFanPercent(fan int, percent uint8) {
	if fan == 0 {
		p.fan = min(percent, 100)
	}
}

func (p *Printer) PIDValues(h dgus.Heater) (kp, ki, kd float64) {
	i, ok := heaterIndex(h)
	if !ok {
		return 0, 0, 0
	}
	pid := p.heaters[i].pid
	return pid[0], pid[1], pid[2]
}

// Tuning

func (p *Printer) Feedrate() int16 { return p.feedrate }

func (p *Printer) SetFeedrate(percent int16) {
	p.feedrate = max(10, min(percent, 999))
}

func (p *Printer) Flowrate(e dgus.Extruder) int16 {
	if e < 0 || int(e) >= len(p.flowrate) {
		return 0
	}
	return p.flowrate[e]
}

func (p *Printer) SetFlowrate(e dgus.Extruder, percent int16) {
	if e < 0 || int(e) >= len(p.flowrate) {
		return
	}
	p.flowrate[e] = max(10, min(percent, 999))
}

func (p *Printer) ZOffset() float64 { return p.zOffset }

func (p *Printer) BabystepZ(mm float64) {
	p.zOffset += mm
	p.pos.Z += mm
}

func (p *Printer) RunoutEnabled() bool      { return p.runout }
func (p *Printer) SetRunoutEnabled(on bool) { p.runout = on }

func (p *Printer) MeshZ(x, y int) float64 {
	if x < 0 || y < 0 || x >= dgus.GridPointsX || y >= dgus.GridPointsX {
		return 0
	}
	return p.mesh[y][x]
}

func (p *Printer) Param(param dgus.Param) float64 {
	if param >= dgus.NumParams {
		return 0
	}
	return p.params[param]
}

func (p *Printer) SetParam(param dgus.Param, v float64) {
	if param < dgus.NumParams {
		p.params[param] = v
	}
}

// Info

func (p *Printer) MachineName() string     { return p.cfg.Name }
func (p *Printer) FirmwareVersion() string { return p.cfg.Version }

func (p *Printer) BuildVolume() (x, y, z float64) {
	ax := p.cfg.Axes
	return ax["x"].MaxPosition - ax["x"].MinPosition,
		ax["y"].MaxPosition - ax["y"].MinPosition,
		ax["z"].MaxPosition - ax["z"].MinPosition
}

func axisKey(a dgus.Axis) string {
	switch a {
	case dgus.AxisX:
		return "x"
	case dgus.AxisY:
		return "y"
	case dgus.AxisZ:
		return "z"
	}
	return "e"
}
