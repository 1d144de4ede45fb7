package dgus

import "fmt"

// Addr is a word address in the display's VP space (0x0000-0x6FFF).
type Addr uint16

// Fixed VP lengths in bytes
const (
	LineLen         = 32
	StatusLen       = 32
	FileCount       = 5
	FilenameLen     = 32
	EllapsedLen     = 15
	GridPointsX     = 5
	LevelGridSize   = GridPointsX * GridPointsX
	MachineLen      = 24
	BuildVolumeLen  = 24
	VersionLen      = 16
	PrintTimeLen    = 24
	LongestPrintLen = 24
	FilamentUsedLen = 24
	GcodeLen        = 32
)

const (
	AddrMessageLine1 Addr = 0x1100 // 0x1100 - 0x111F
	AddrMessageLine2 Addr = 0x1120 // 0x1120 - 0x113F
	AddrMessageLine3 Addr = 0x1140 // 0x1140 - 0x115F
	AddrMessageLine4 Addr = 0x1160 // 0x1160 - 0x117F

	// Written by the display

	AddrScreenChange         Addr = 0x2000 // target screen in byte 1
	AddrScreenChangeSD       Addr = 0x2001 // only with media present
	AddrScreenChangeIdle     Addr = 0x2002 // only while not printing
	AddrScreenChangePrinting Addr = 0x2003 // only while printing
	AddrSDSelectFile         Addr = 0x2004 // file index 0-4
	AddrSDScroll             Addr = 0x2005 // Scroll
	AddrSDPrint              Addr = 0x2006
	AddrStatusAbort          Addr = 0x2007 // Popup
	AddrStatusPause          Addr = 0x2008 // Popup
	AddrStatusResume         Addr = 0x2009 // Popup
	AddrAdjustSetFeedrate    Addr = 0x200A // int16
	AddrAdjustSetFlowrateCur Addr = 0x200B // int16
	AddrAdjustSetFlowrateE0  Addr = 0x200C // int16, two extruders only
	AddrAdjustSetFlowrateE1  Addr = 0x200D // int16, two extruders only
	AddrAdjustSetBabystep    Addr = 0x200E // fixed int16, 2 decimals
	AddrAdjustBabystep       Addr = 0x200F // Adjust
	AddrTempPreset           Addr = 0x2010 // TempPreset
	AddrTempSetTargetBed     Addr = 0x2011 // int16
	AddrTempSetTargetH0      Addr = 0x2012 // int16
	AddrTempSetTargetH1      Addr = 0x2013 // int16, two hotends only
	AddrTempCool             Addr = 0x2014 // Heater
	AddrStepperControl       Addr = 0x2015 // Control
	AddrLevelOffsetSet       Addr = 0x2016 // fixed int16, 2 decimals
	AddrLevelOffsetStep      Addr = 0x2017 // Adjust
	AddrLevelOffsetSetStep   Addr = 0x2018 // StepSize
	AddrLevelManualPoint     Addr = 0x2019 // point index 1-5
	AddrLevelAutoProbe       Addr = 0x201A
	AddrFilamentSelect       Addr = 0x201C // Extruder
	AddrFilamentSetLength    Addr = 0x201D // uint16
	AddrFilamentMove         Addr = 0x201E // FilamentMove
	AddrMoveHome             Addr = 0x201F // HomeAxis
	AddrMoveSetX             Addr = 0x2020 // fixed int16, 1 decimal
	AddrMoveSetY             Addr = 0x2021 // fixed int16, 1 decimal
	AddrMoveSetZ             Addr = 0x2022 // fixed int16, 1 decimal
	AddrMoveStep             Addr = 0x2023 // MoveDirection
	AddrMoveSetStep          Addr = 0x2024 // StepSize
	AddrGcodeClear           Addr = 0x2025
	AddrGcodeExecute         Addr = 0x2026
	AddrEEPROMControl        Addr = 0x2027 // EEPROMAction
	AddrSettings2Extra       Addr = 0x2028 // Extra
	AddrPIDSelect            Addr = 0x2029 // Heater
	AddrPIDSetTemp           Addr = 0x202A // uint16
	AddrPIDRun               Addr = 0x202B
	AddrPowerLossAbort       Addr = 0x202C // Popup
	AddrPowerLossResume      Addr = 0x202D // Popup
	AddrWaitAbort            Addr = 0x202E // Popup
	AddrWaitContinue         Addr = 0x202F
	AddrInfosScreenVersion   Addr = 0x2030 // VersionLen chars
	AddrFilamentLoadUnload   Addr = 0x2040 // FilamentMove
	AddrRunoutControl        Addr = 0x2041 // Control
	AddrStatusPrintPause     Addr = 0x2042

	// Written by the controller

	AddrMessageStatus         Addr = 0x3000 // 0x3000 - 0x301F
	AddrSDType                Addr = 0x3020 // 0x3020 - 0x3024, SDType per row
	AddrSDFileName0           Addr = 0x3025 // 0x3025 - 0x3044
	AddrSDFileName1           Addr = 0x3045 // 0x3045 - 0x3064
	AddrSDFileName2           Addr = 0x3065 // 0x3065 - 0x3084
	AddrSDFileName3           Addr = 0x3085 // 0x3085 - 0x30A4
	AddrSDFileName4           Addr = 0x30A5 // 0x30A5 - 0x30C4
	AddrSDScrollIcons         Addr = 0x30C5 // ScrollIcon bits
	AddrSDSelectedFileName    Addr = 0x30C6 // 0x30C6 - 0x30E5
	AddrStatusEllapsed        Addr = 0x30E7 // 0x30E7 - 0x30F5
	AddrStatusPercent         Addr = 0x30F6 // uint16
	AddrAdjustFeedrate        Addr = 0x30F8 // int16
	AddrAdjustFlowrateCur     Addr = 0x30F9 // int16
	AddrAdjustFlowrateE0      Addr = 0x30FA // int16, two extruders only
	AddrAdjustFlowrateE1      Addr = 0x30FB // int16, two extruders only
	AddrTempCurrentBed        Addr = 0x30FC // int16
	AddrTempTargetBed         Addr = 0x30FD // int16
	AddrTempMaxBed            Addr = 0x30FE // uint16
	AddrTempCurrentH0         Addr = 0x30FF // int16
	AddrTempTargetH0          Addr = 0x3100 // int16
	AddrTempMaxH0             Addr = 0x3101 // uint16
	AddrTempCurrentH1         Addr = 0x3102 // int16, two hotends only
	AddrTempTargetH1          Addr = 0x3103 // int16, two hotends only
	AddrTempMaxH1             Addr = 0x3104 // uint16, two hotends only
	AddrLevelOffsetCurrent    Addr = 0x3106 // fixed int16, 2 decimals
	AddrLevelOffsetStepIcons  Addr = 0x3107 // StepIcon bits
	AddrStatusPositionZ       Addr = 0x3108 // fixed int32, 2 decimals
	AddrFilamentExtruderIcons Addr = 0x3124 // ExtruderIcon bits
	AddrFilamentLength        Addr = 0x3125 // uint16
	AddrMoveCurrentX          Addr = 0x3126 // fixed int16, 1 decimal
	AddrMoveCurrentY          Addr = 0x3127 // fixed int16, 1 decimal
	AddrMoveCurrentZ          Addr = 0x3128 // fixed int16, 1 decimal
	AddrMoveStepIcons         Addr = 0x3129 // StepIcon bits
	AddrSettings2BLTouch      Addr = 0x312A // Status
	AddrPIDHeaterIcons        Addr = 0x312B // HeaterIcon bits
	AddrPIDTemp               Addr = 0x312C // uint16
	AddrPIDKp                 Addr = 0x312D // fixed int32, 2 decimals
	AddrPIDKi                 Addr = 0x312F // fixed int32, 2 decimals
	AddrPIDKd                 Addr = 0x3131 // fixed int32, 2 decimals
	AddrInfosMachine          Addr = 0x3133 // 0x3133 - 0x314A
	AddrInfosBuildVolume      Addr = 0x314B // 0x314B - 0x3162
	AddrInfosVersion          Addr = 0x3163 // 0x3163 - 0x3172
	AddrInfosTotalPrints      Addr = 0x3173 // uint16
	AddrInfosFinishedPrints   Addr = 0x3174 // uint16
	AddrInfosPrintTime        Addr = 0x3175 // 0x3175 - 0x318C
	AddrInfosLongestPrint     Addr = 0x318D // 0x318D - 0x31A4
	AddrInfosFilamentUsed     Addr = 0x31A5 // 0x31A5 - 0x31BC
	AddrWaitIcons             Addr = 0x31BD // WaitIcon bits
	AddrStatusFeedrateMMS     Addr = 0x31BF // int16
	AddrFan0SpeedCur          Addr = 0x31C1 // uint16
	AddrMoveCurrentE          Addr = 0x31C3 // fixed int16, 1 decimal
	AddrStatusPauseResumeIcon Addr = 0x31C5 // 0 resume, 1 pause
	AddrLevelAutoGrid         Addr = 0x31C6 // 0x31C6 - 0x31DE, fixed int16, 3 decimals

	// Read-write

	AddrFan0Speed           Addr = 0x4000 // percent in byte 1
	AddrGcodeData           Addr = 0x4001 // 0x4001 - 0x4020
	AddrPIDCycles           Addr = 0x4021 // uint16
	AddrVolumeLevel         Addr = 0x4022 // percent in byte 1
	AddrBrightnessLevel     Addr = 0x4023 // percent in byte 1
	AddrXStepsMM            Addr = 0x4025 // fixed int32, 2 decimals
	AddrYStepsMM            Addr = 0x4029 // fixed int32, 2 decimals
	AddrXJerk               Addr = 0x402D // fixed int16, 1 decimal
	AddrYJerk               Addr = 0x402F // fixed int16, 1 decimal
	AddrZJerk               Addr = 0x4031 // fixed int16, 1 decimal
	AddrEJerk               Addr = 0x4033 // fixed int16, 1 decimal
	AddrJunctionDeviation   Addr = 0x4035 // fixed int16, 3 decimals
	AddrLinearAdvance       Addr = 0x4037 // fixed int16, 2 decimals
	AddrXAcceleration       Addr = 0x4039 // int16
	AddrYAcceleration       Addr = 0x403B // int16
	AddrZAcceleration       Addr = 0x403D // int16
	AddrEAcceleration       Addr = 0x403F // int16
	AddrPrintAcceleration   Addr = 0x4041 // int16
	AddrRetractAcceleration Addr = 0x4043 // int16
	AddrTravelAcceleration  Addr = 0x4045 // int16
	AddrXMaxSpeed           Addr = 0x4047 // int16
	AddrYMaxSpeed           Addr = 0x4049 // int16
	AddrZMaxSpeed           Addr = 0x404B // int16
	AddrEMaxSpeed           Addr = 0x404D // int16
	AddrMinSpeed            Addr = 0x404F // fixed int16, 1 decimal
	AddrMinTravelSpeed      Addr = 0x4051 // fixed int16, 1 decimal
	AddrZStepsMM            Addr = 0x4053 // fixed int32, 2 decimals
	AddrEStepsMM            Addr = 0x4057 // fixed int32, 2 decimals

	// Special

	AddrStatusPercentComplete Addr = 0x5000 // STATUS_Percent pinned at 100
	AddrInfosDebug            Addr = 0x5001

	// Display properties (SP). Not VPs: the display stores the drawing
	// attributes of a control here.

	AddrSPLevelAutoGrid  Addr = 0x6000 // 8 * 25 words
	AddrSPSDFileName0    Addr = 0x60C8 // 13 * 5 words
	AddrSPStatusFilename Addr = 0x6109 // 13 words
	AddrSPMessageLine1   Addr = 0x6116 // 13 words
	AddrSPMessageLine2   Addr = 0x6123
	AddrSPMessageLine3   Addr = 0x6130
	AddrSPMessageLine4   Addr = 0x613D
)

// Display property offsets
const (
	SPVariableX     = 0x01
	SPVariableY     = 0x02
	SPVariableColor = 0x03
	SPVariableLen   = 0x08

	SPTextX     = 0x01
	SPTextY     = 0x02
	SPTextColor = 0x03
	SPTextBox   = 0x04
	SPTextLen   = 0x0D

	ColorWhite = 0xFFFF
	ColorGreen = 0x07E0
)

// Address ranges
const (
	MessageRangeStart Addr = 0x1100
	CommandRangeStart Addr = 0x2000
	OutputRangeStart  Addr = 0x3000
	SettingRangeStart Addr = 0x4000
	SpecialRangeStart Addr = 0x5000
	SPRangeStart      Addr = 0x6000
)

func (a Addr) String() string {
	return fmt.Sprintf("0x%04X", uint16(a))
}

// lineAddr returns the VP of message line n (1-4)
func lineAddr(n int) Addr {
	return AddrMessageLine1 + Addr(n-1)*0x20
}

// fileNameAddr returns the VP of file row i (0-4)
func fileNameAddr(i int) Addr {
	return AddrSDFileName0 + Addr(i)*0x20
}
