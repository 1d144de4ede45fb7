package dgus

import "time"

// Axis is a machine axis.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	AxisE
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	case AxisE:
		return "E"
	}
	return "?"
}

// Param is a persisted motion calibration value.
type Param uint8

const (
	ParamStepsPerMMX Param = iota
	ParamStepsPerMMY
	ParamStepsPerMMZ
	ParamStepsPerMME
	ParamJerkX
	ParamJerkY
	ParamJerkZ
	ParamJerkE
	ParamAccelX
	ParamAccelY
	ParamAccelZ
	ParamAccelE
	ParamAccelPrint
	ParamAccelRetract
	ParamAccelTravel
	ParamMaxFeedrateX
	ParamMaxFeedrateY
	ParamMaxFeedrateZ
	ParamMaxFeedrateE
	ParamMinFeedrate
	ParamMinTravelFeedrate
	ParamJunctionDeviation
	ParamLinearAdvance

	NumParams
)

var paramNames = [NumParams]string{
	"steps_per_mm_x", "steps_per_mm_y", "steps_per_mm_z", "steps_per_mm_e",
	"jerk_x", "jerk_y", "jerk_z", "jerk_e",
	"accel_x", "accel_y", "accel_z", "accel_e",
	"accel_print", "accel_retract", "accel_travel",
	"max_feedrate_x", "max_feedrate_y", "max_feedrate_z", "max_feedrate_e",
	"min_feedrate", "min_travel_feedrate",
	"junction_deviation", "linear_advance",
}

func (p Param) String() string {
	if p < NumParams {
		return paramNames[p]
	}
	return "unknown"
}

// ParseParam looks a parameter up by its name.
func ParseParam(name string) (Param, bool) {
	for i, n := range paramNames {
		if n == name {
			return Param(i), true
		}
	}
	return 0, false
}

// PrintStats are the lifetime job counters.
type PrintStats struct {
	TotalPrints    uint16
	FinishedPrints uint16
	PrintTime      time.Duration
	LongestPrint   time.Duration
	FilamentUsed   float64 // mm
}

// Activity is the print job state. All reads are point-in-time.
type Activity interface {
	IsPrinting() bool
	IsPaused() bool
	// JobRunning reports whether the print job timer runs.
	JobRunning() bool
	// IsIdle reports an empty command queue and no motion.
	IsIdle() bool
	DidPause() bool
	ClearDidPause()
	AwaitingUserConfirm() bool
	SetUserConfirmed()

	StartPrint(path string) error
	StopPrint()
	PausePrint()
	ResumePrint()
	RecoveryValid() bool

	Progress() uint8
	Elapsed() time.Duration
	Stats() PrintStats
}

type Motion interface {
	AxisHomed(a Axis) bool
	// PositionKnown reports X, Y and Z homed.
	PositionKnown() bool
	AxisPosition(a Axis) float64
	SetAxisPosition(a Axis, mm float64) error
	MoveExtruder(e Extruder, mm float64) error
	ActiveExtruder() Extruder
	SetSteppersEnabled(on bool)
	// Feedrate of the current move in mm/s
	CurrentSpeed() float64
}

type Thermal interface {
	CurrentTemp(h Heater) float64
	TargetTemp(h Heater) float64
	SetTargetTemp(h Heater, celsius float64)
	MaxTemp(h Heater) float64
	FanPercent(fan int) uint8
	SetFanPercent(fan int, percent uint8)
	PIDValues(h Heater) (kp, ki, kd float64)
}

type Tuning interface {
	Feedrate() int16
	SetFeedrate(percent int16)
	Flowrate(e Extruder) int16
	SetFlowrate(e Extruder, percent int16)
	ZOffset() float64
	// BabystepZ nudges Z by mm and adds it to the Z offset.
	BabystepZ(mm float64)
	RunoutEnabled() bool
	SetRunoutEnabled(on bool)
	MeshZ(x, y int) float64
	Param(p Param) float64
	SetParam(p Param, v float64)
}

// Queue accepts G-code for background execution.
type Queue interface {
	Enqueue(line string) error
}

type Info interface {
	MachineName() string
	BuildVolume() (x, y, z float64)
	FirmwareVersion() string
}

// Machine is the printer as seen by the display handlers.
type Machine interface {
	Activity
	Motion
	Thermal
	Tuning
	Queue
	Info
}

// Settings is durable storage for the machine settings.
type Settings interface {
	Reset() error
	Load() error
	Save() error
}

// Entry is one row of a media directory listing.
type Entry struct {
	Name string
	Path string
	Dir  bool
}

// Media browses removable storage.
type Media interface {
	// Mount attaches the media if present and reports whether it is.
	Mount() bool
	Root() error
	Up() error
	Cd(name string) error
	AtRoot() bool
	Count() int
	Entry(index int) (Entry, bool)
}

// Display is the write side of the display link.
type Display interface {
	Write(addr Addr, data []byte) error
	SwitchScreen(s Screen) error
	SetVolume(percent uint8) error
	SetBrightness(percent uint8) error
}
