package dgus

// Selector and bitmask values shared with the screen definitions.

type Scroll uint8

const (
	ScrollGoBack Scroll = 0
	ScrollUp     Scroll = 1
	ScrollDown   Scroll = 2
)

type SDType uint16

const (
	SDTypeNone      SDType = 0
	SDTypeFile      SDType = 1
	SDTypeDirectory SDType = 2
)

// ScrollIcon bits
const (
	ScrollIconGoBack uint16 = 1 << 0
	ScrollIconUp     uint16 = 1 << 1
	ScrollIconDown   uint16 = 1 << 2
)

type Popup uint8

const (
	PopupCancelled Popup = 0
	PopupConfirmed Popup = 1
)

type Adjust uint8

const (
	AdjustIncrement Adjust = 0
	AdjustDecrement Adjust = 1
)

type TempPreset uint8

const (
	TempPresetPLA  TempPreset = 1
	TempPresetABS  TempPreset = 2
	TempPresetPETG TempPreset = 3
)

// Extruder is an extruder index as sent by the display. ExtruderCurrent
// resolves to the active tool.
type Extruder int16

const (
	ExtruderCurrent Extruder = -1
	ExtruderE0      Extruder = 0
	ExtruderE1      Extruder = 1
)

// Heater is a heater index as sent by the display.
type Heater int16

const (
	HeaterAll Heater = -2
	HeaterBed Heater = -1
	HeaterH0  Heater = 0
	HeaterH1  Heater = 1
)

// HeaterIcon bits
const (
	HeaterIconBed uint16 = 1 << 0
	HeaterIconH0  uint16 = 1 << 1
	HeaterIconH1  uint16 = 1 << 2
)

type Control uint8

const (
	ControlEnable  Control = 1
	ControlDisable Control = 2
)

type StepSize uint8

const (
	StepSizeMM10  StepSize = 0
	StepSizeMM1   StepSize = 1
	StepSizeMMP1  StepSize = 2
	StepSizeMMP01 StepSize = 3
)

// StepIcon bits, one per StepSize
const (
	StepIconMM10  uint16 = 1 << 0
	StepIconMM1   uint16 = 1 << 1
	StepIconMMP1  uint16 = 1 << 2
	StepIconMMP01 uint16 = 1 << 3
)

// ExtruderIcon bits
const (
	ExtruderIconE0 uint16 = 1 << 0
	ExtruderIconE1 uint16 = 1 << 1
)

type FilamentMove uint8

const (
	FilamentRetract FilamentMove = 0
	FilamentExtrude FilamentMove = 1
	FilamentUnload  FilamentMove = 2
	FilamentLoad    FilamentMove = 3
)

// HomeAxis selects the axes of a homing request.
type HomeAxis uint8

const (
	HomeXYZ HomeAxis = 0
	HomeXY  HomeAxis = 1
	HomeZ   HomeAxis = 2
)

type MoveDirection uint8

const (
	MoveXPlus  MoveDirection = 0
	MoveXMinus MoveDirection = 1
	MoveYPlus  MoveDirection = 2
	MoveYMinus MoveDirection = 3
	MoveZPlus  MoveDirection = 4
	MoveZMinus MoveDirection = 5
)

type Extra uint8

const (
	ExtraButton1 Extra = 0
	ExtraButton2 Extra = 1
)

type Status uint16

const (
	StatusDisabled Status = 0
	StatusEnabled  Status = 1
)

// WaitIcon bits
const (
	WaitIconAbort    uint16 = 1 << 0
	WaitIconContinue uint16 = 1 << 1
)

type EEPROMAction uint8

const (
	EEPROMReset EEPROMAction = 0
	EEPROMLoad  EEPROMAction = 1
	EEPROMSave  EEPROMAction = 2
)

// StepMM returns the distance of a step size in millimetres.
func (s StepSize) StepMM() float64 {
	switch s {
	case StepSizeMM10:
		return 10
	case StepSizeMM1:
		return 1
	case StepSizeMMP1:
		return 0.1
	case StepSizeMMP01:
		return 0.01
	}
	return 0
}

// Icon returns the StepIcon bit of s.
func (s StepSize) Icon() uint16 {
	if s > StepSizeMMP01 {
		return 0
	}
	return 1 << s
}
