package dgus

// Features are the machine capabilities that decide which commands are
// accepted and which VPs exist.
type Features struct {
	SDSupport         bool
	Leveling          bool
	MeshBedLeveling   bool
	BLTouch           bool
	PIDTemp           bool
	PIDTempBed        bool
	PowerLossRecovery bool
	AdvancedPause     bool
	ClassicJerk       bool
	JunctionDeviation bool
	LinearAdvance     bool
	Extruders         int
	Hotends           int
}

// DefaultFeatures matches a single extruder printer with SD and ABL.
func DefaultFeatures() Features {
	return Features{
		SDSupport:         true,
		Leveling:          true,
		BLTouch:           true,
		PIDTemp:           true,
		PIDTempBed:        true,
		PowerLossRecovery: true,
		AdvancedPause:     true,
		JunctionDeviation: true,
		LinearAdvance:     true,
		Extruders:         1,
		Hotends:           1,
	}
}

// TempPair is a hotend/bed temperature preset.
type TempPair struct {
	Hotend int16
	Bed    int16
}

type Presets struct {
	PLA  TempPair
	ABS  TempPair
	PETG TempPair
}

func DefaultPresets() Presets {
	return Presets{
		PLA:  TempPair{Hotend: 200, Bed: 60},
		ABS:  TempPair{Hotend: 240, Bed: 100},
		PETG: TempPair{Hotend: 230, Bed: 80},
	}
}

// Limits clamp numeric input from the display.
type Limits struct {
	ExtrudeMinTemp   float64
	ExtrudeMaxLength uint16
	BedMinTemp       int16
	BedMaxTarget     int16
	HotendMinTemp    int16
	HotendMaxTemp    int16
	HotendOvershoot  int16
	BabystepMM       float64
}

func DefaultLimits() Limits {
	return Limits{
		ExtrudeMinTemp:   170,
		ExtrudeMaxLength: 200,
		BedMinTemp:       5,
		BedMaxTarget:     110,
		HotendMinTemp:    5,
		HotendMaxTemp:    275,
		HotendOvershoot:  15,
		BabystepMM:       0.01,
	}
}

// PID autotune cycle bounds
const (
	PIDCyclesMin     = 3
	PIDCyclesMax     = 10
	PIDCyclesDefault = 5
)

// Point is a bed position in millimetres.
type Point struct {
	X float64
	Y float64
}

// Leveling describes the manual leveling points (1-5 on the display).
type Leveling struct {
	Points      [5]Point
	ZTravel     float64 // lift between points
	ZPoint      float64 // height at a point
	TravelSpeed float64 // mm/min
	ZSpeed      float64 // mm/min
}

// DefaultLeveling uses the corners and centre of a 220x220 bed.
func DefaultLeveling() Leveling {
	return Leveling{
		Points: [5]Point{
			{X: 30, Y: 30},
			{X: 190, Y: 30},
			{X: 190, Y: 190},
			{X: 30, Y: 190},
			{X: 110, Y: 110},
		},
		ZTravel:     5,
		ZPoint:      0,
		TravelSpeed: 3000,
		ZSpeed:      600,
	}
}
