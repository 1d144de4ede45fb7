package dgus

// UIContext is the state the handlers keep between frames: selections and
// values staged on one screen and used by a later command.
type UIContext struct {
	FileOffset   int16
	FileSelected int16 // -1 when nothing is selected

	FilamentExtruder Extruder
	FilamentLength   uint16

	MoveStep   StepSize
	OffsetStep StepSize

	PIDHeater Heater
	PIDTemp   uint16
	PIDCycles uint16

	Gcode [GcodeLen]byte

	LevelingPoint uint8 // 1-5, 0 when none is staged

	Volume     uint8 // percent
	Brightness uint8 // percent

	ScreenVersion [VersionLen]byte
	DebugCount    uint8
}

// Default filament move length in mm
const DefaultFilamentLength = 10

// NewUIContext returns the start-up state.
func NewUIContext(presets Presets) *UIContext {
	return &UIContext{
		FileSelected:     -1,
		FilamentExtruder: ExtruderCurrent,
		FilamentLength:   DefaultFilamentLength,
		MoveStep:         StepSizeMM10,
		OffsetStep:       StepSizeMMP1,
		PIDHeater:        HeaterH0,
		PIDTemp:          uint16(presets.PLA.Hotend),
		PIDCycles:        PIDCyclesDefault,
		Volume:           50,
		Brightness:       100,
	}
}

// GcodeLine returns the staged G-code buffer as text.
func (ui *UIContext) GcodeLine() string {
	return string(trimString(ui.Gcode[:]))
}

// ResetFiles clears the browse position after a directory change.
func (ui *UIContext) ResetFiles() {
	ui.FileOffset = 0
	ui.FileSelected = -1
}
