package dgus

// Status and message line texts
const (
	MsgBusy              = "Busy"
	MsgHomingRequired    = "Homing required"
	MsgHoming            = "Homing..."
	MsgNoMedia           = "No media"
	MsgNotWhilePrinting  = "Impossible while printing"
	MsgNotWhileIdle      = "Impossible while idle"
	MsgNoFileSelected    = "No file selected"
	MsgCooling           = "Cooling..."
	MsgTempTooLow        = "Temperature too low"
	MsgExecutingCommand  = "Executing command..."
	MsgBedPIDDisabled    = "Bed PID disabled"
	MsgExtPIDDisabled    = "Extruder PID disabled"
	MsgFeatureNotEnabled = "Feature is not enabled"
	MsgPIDAutotune       = "PID autotune"
	MsgPIDAutotuneStart  = "starting..."
	MsgABLRequired       = "ABL required"
	MsgInvalidRecovery   = "Invalid recovery data"
	MsgEEPROMError       = "EEPROM error"
	MsgProbing           = "Probing..."
	MsgSettingsSaved     = "Settings saved"
	MsgSettingsLoaded    = "Settings loaded"
	MsgSettingsReset     = "Settings reset"
)

// G-code issued by the handlers
const (
	CmdHome          = "G28"
	CmdProbe         = "G29"
	CmdPowerLossDo   = "M1000"
	CmdPowerLossUndo = "M1000C"
	CmdResetBLTouch  = "M280P0S160"
)
