package dgus

// action adapts a selector-less command VP: the payload is ignored.
func action(h SelectorHandler) RxHandler {
	return func(env *Env, vp *VP, data []byte) error {
		return h(env, vp)
	}
}

func rxVP(addr Addr, name string, size uint8, rx RxHandler) VP {
	return VP{Addr: addr, Name: name, Size: size, Rx: rx}
}

func txVP(addr Addr, name string, size uint8, tx TxHandler) VP {
	return VP{Addr: addr, Name: name, Size: size, Tx: tx}
}

func txAuto(addr Addr, name string, size uint8, tx TxHandler) VP {
	return VP{Addr: addr, Name: name, Size: size, Flags: FlagAutoUpdate, Tx: tx}
}

func selVP(addr Addr, name string) VP {
	return VP{Addr: addr, Name: name, Size: 2, Flags: FlagSelector}
}

func temp(get func(m Machine) float64) TxHandler {
	return ExtraToFixedPoint(Value(func(env *Env) float64 { return get(env.Machine) }), 0)
}

func position(a Axis) TxHandler {
	return ExtraToFixedPoint(Value(func(env *Env) float64 { return env.Machine.AxisPosition(a) }), 1)
}

// BuildTable assembles the VP table for a machine with the given features.
func BuildTable(f Features) (*Table, error) {
	var vps []VP
	var sels []Selector

	add := func(v ...VP) { vps = append(vps, v...) }
	sel := func(addr Addr, value uint8, name string, h SelectorHandler) {
		sels = append(sels, Selector{Addr: addr, Value: value, Name: name, Handler: h})
	}

	// Message surface
	for n := 1; n <= 4; n++ {
		add(txVP(lineAddr(n), "MESSAGE_Line"+string(rune('0'+n)), LineLen, txLine(n)))
	}
	add(txVP(AddrMessageStatus, "MESSAGE_Status", StatusLen,
		ExtraToString(Value(func(env *Env) string { return env.Screens.StatusMessage() }))))

	// Navigation
	add(
		rxVP(AddrScreenChange, "SCREENCHANGE", 2, rxScreenChange),
		rxVP(AddrScreenChangeSD, "SCREENCHANGE_SD", 2, rxScreenChange),
		rxVP(AddrScreenChangeIdle, "SCREENCHANGE_Idle", 2, rxScreenChange),
		rxVP(AddrScreenChangePrinting, "SCREENCHANGE_Printing", 2, rxScreenChange),
	)

	// Media
	if f.SDSupport {
		add(
			rxVP(AddrSDSelectFile, "SD_SelectFile", 2, rxSelectFile),
			selVP(AddrSDScroll, "SD_Scroll"),
			rxVP(AddrSDPrint, "SD_Print", 2, action(sdPrint)),
			txVP(AddrSDType, "SD_Type", FileCount*2, txFileType),
			txVP(AddrSDScrollIcons, "SD_ScrollIcons", 2, txScrollIcons),
			txVP(AddrSDSelectedFileName, "SD_SelectedFileName", FilenameLen, txSelectedFileName),
		)
		for i := 0; i < FileCount; i++ {
			add(txVP(fileNameAddr(i), "SD_FileName"+string(rune('0'+i)), FilenameLen, txFileName(i)))
		}
		sel(AddrSDScroll, uint8(ScrollGoBack), "go_back", sdScroll(ScrollGoBack))
		sel(AddrSDScroll, uint8(ScrollUp), "up", sdScroll(ScrollUp))
		sel(AddrSDScroll, uint8(ScrollDown), "down", sdScroll(ScrollDown))
	}

	// Print control
	add(
		selVP(AddrStatusAbort, "STATUS_Abort"),
		selVP(AddrStatusPause, "STATUS_Pause"),
		selVP(AddrStatusResume, "STATUS_Resume"),
		rxVP(AddrStatusPrintPause, "STATUS_PrintPause", 2, rxPrintPauseResume),
		rxVP(AddrAdjustSetFeedrate, "ADJUST_SetFeedrate", 2, rxFeedrate),
		rxVP(AddrAdjustSetFlowrateCur, "ADJUST_SetFlowrate_CUR", 2, rxFlowrate),
		rxVP(AddrAdjustSetBabystep, "ADJUST_SetBabystep", 2, rxBabystepSet),
		selVP(AddrAdjustBabystep, "ADJUST_Babystep"),
	)
	sel(AddrStatusAbort, uint8(PopupConfirmed), "confirmed", printAbort)
	sel(AddrStatusPause, uint8(PopupConfirmed), "confirmed", printPause)
	sel(AddrStatusResume, uint8(PopupConfirmed), "confirmed", printResume)
	sel(AddrAdjustBabystep, uint8(AdjustIncrement), "increment", babystep(AdjustIncrement))
	sel(AddrAdjustBabystep, uint8(AdjustDecrement), "decrement", babystep(AdjustDecrement))

	if f.Extruders > 1 {
		add(
			rxVP(AddrAdjustSetFlowrateE0, "ADJUST_SetFlowrate_E0", 2, rxFlowrate),
			rxVP(AddrAdjustSetFlowrateE1, "ADJUST_SetFlowrate_E1", 2, rxFlowrate),
			txVP(AddrAdjustFlowrateE0, "ADJUST_Flowrate_E0", 2, txFlowrate),
			txVP(AddrAdjustFlowrateE1, "ADJUST_Flowrate_E1", 2, txFlowrate),
		)
	}

	// Temperatures
	add(
		selVP(AddrTempPreset, "TEMP_Preset"),
		rxVP(AddrTempSetTargetBed, "TEMP_SetTarget_Bed", 2, rxTempTarget),
		rxVP(AddrTempSetTargetH0, "TEMP_SetTarget_H0", 2, rxTempTarget),
		rxVP(AddrTempCool, "TEMP_Cool", 2, rxTempCool),
		txAuto(AddrTempCurrentBed, "TEMP_Current_Bed", 2, temp(func(m Machine) float64 { return m.CurrentTemp(HeaterBed) })),
		txAuto(AddrTempTargetBed, "TEMP_Target_Bed", 2, temp(func(m Machine) float64 { return m.TargetTemp(HeaterBed) })),
		txVP(AddrTempMaxBed, "TEMP_Max_Bed", 2, txTempMax(HeaterBed)),
		txAuto(AddrTempCurrentH0, "TEMP_Current_H0", 2, temp(func(m Machine) float64 { return m.CurrentTemp(HeaterH0) })),
		txAuto(AddrTempTargetH0, "TEMP_Target_H0", 2, temp(func(m Machine) float64 { return m.TargetTemp(HeaterH0) })),
		txVP(AddrTempMaxH0, "TEMP_Max_H0", 2, txTempMax(HeaterH0)),
	)
	sel(AddrTempPreset, uint8(TempPresetPLA), "pla", tempPreset(TempPresetPLA))
	sel(AddrTempPreset, uint8(TempPresetABS), "abs", tempPreset(TempPresetABS))
	sel(AddrTempPreset, uint8(TempPresetPETG), "petg", tempPreset(TempPresetPETG))

	if f.Hotends > 1 {
		add(
			rxVP(AddrTempSetTargetH1, "TEMP_SetTarget_H1", 2, rxTempTarget),
			txAuto(AddrTempCurrentH1, "TEMP_Current_H1", 2, temp(func(m Machine) float64 { return m.CurrentTemp(HeaterH1) })),
			txAuto(AddrTempTargetH1, "TEMP_Target_H1", 2, temp(func(m Machine) float64 { return m.TargetTemp(HeaterH1) })),
			txVP(AddrTempMaxH1, "TEMP_Max_H1", 2, txTempMax(HeaterH1)),
		)
	}

	// Steppers and runout sensor
	add(selVP(AddrStepperControl, "STEPPER_Control"), selVP(AddrRunoutControl, "RUNOUT_Control"))
	sel(AddrStepperControl, uint8(ControlEnable), "enable", steppers(true))
	sel(AddrStepperControl, uint8(ControlDisable), "disable", steppers(false))
	sel(AddrRunoutControl, uint8(ControlEnable), "enable", runout(true))
	sel(AddrRunoutControl, uint8(ControlDisable), "disable", runout(false))

	// Leveling
	add(
		rxVP(AddrLevelOffsetSet, "LEVEL_OFFSET_Set", 2, rxZOffset),
		selVP(AddrLevelOffsetStep, "LEVEL_OFFSET_Step"),
		selVP(AddrLevelOffsetSetStep, "LEVEL_OFFSET_SetStep"),
		rxVP(AddrLevelManualPoint, "LEVEL_MANUAL_Point", 2, rxMoveToPoint),
		rxVP(AddrLevelAutoProbe, "LEVEL_AUTO_Probe", 2, rxProbe),
		txAuto(AddrLevelOffsetCurrent, "LEVEL_OFFSET_Current", 2,
			ExtraToFixedPoint(Value(func(env *Env) float64 { return env.Machine.ZOffset() }), 2)),
		txVP(AddrLevelOffsetStepIcons, "LEVEL_OFFSET_StepIcons", 2, txOffsetStepIcons),
		txVP(AddrLevelAutoGrid, "LEVEL_AUTO_Grid", LevelGridSize*2, txABLGrid),
	)
	sel(AddrLevelOffsetStep, uint8(AdjustIncrement), "increment", zOffsetStep(AdjustIncrement))
	sel(AddrLevelOffsetStep, uint8(AdjustDecrement), "decrement", zOffsetStep(AdjustDecrement))
	sel(AddrLevelOffsetSetStep, uint8(StepSizeMMP1), "0.1mm", zOffsetSetStep(StepSizeMMP1))
	sel(AddrLevelOffsetSetStep, uint8(StepSizeMMP01), "0.01mm", zOffsetSetStep(StepSizeMMP01))

	// Filament
	add(
		rxVP(AddrFilamentSelect, "FILAMENT_Select", 2, rxFilamentSelect),
		rxVP(AddrFilamentSetLength, "FILAMENT_SetLength", 2, rxFilamentLength),
		selVP(AddrFilamentMove, "FILAMENT_Move"),
		selVP(AddrFilamentLoadUnload, "FILAMENT_Load_Unload"),
		txVP(AddrFilamentExtruderIcons, "FILAMENT_ExtruderIcons", 2, txFilamentIcons),
		txVP(AddrFilamentLength, "FILAMENT_Length", 2, ExtraToInteger(Field(func(ui *UIContext) *uint16 { return &ui.FilamentLength }))),
	)
	for _, m := range []struct {
		move FilamentMove
		name string
	}{
		{FilamentRetract, "retract"}, {FilamentExtrude, "extrude"},
		{FilamentUnload, "unload"}, {FilamentLoad, "load"},
	} {
		sel(AddrFilamentMove, uint8(m.move), m.name, filamentMove(m.move))
		sel(AddrFilamentLoadUnload, uint8(m.move), m.name, filamentMove(m.move))
	}

	// Motion
	add(
		selVP(AddrMoveHome, "MOVE_Home"),
		rxVP(AddrMoveSetX, "MOVE_SetX", 2, rxMove),
		rxVP(AddrMoveSetY, "MOVE_SetY", 2, rxMove),
		rxVP(AddrMoveSetZ, "MOVE_SetZ", 2, rxMove),
		selVP(AddrMoveStep, "MOVE_Step"),
		selVP(AddrMoveSetStep, "MOVE_SetStep"),
		txAuto(AddrMoveCurrentX, "MOVE_CurrentX", 2, position(AxisX)),
		txAuto(AddrMoveCurrentY, "MOVE_CurrentY", 2, position(AxisY)),
		txAuto(AddrMoveCurrentZ, "MOVE_CurrentZ", 2, position(AxisZ)),
		txAuto(AddrMoveCurrentE, "MOVE_CurrentE", 2, position(AxisE)),
		txVP(AddrMoveStepIcons, "MOVE_StepIcons", 2, txMoveStepIcons),
		txAuto(AddrStatusPositionZ, "STATUS_PositionZ", 4,
			ExtraToFixedPoint(Value(func(env *Env) float64 { return env.Machine.AxisPosition(AxisZ) }), 2)),
	)
	sel(AddrMoveHome, uint8(HomeXYZ), "xyz", home(HomeXYZ))
	sel(AddrMoveHome, uint8(HomeXY), "xy", home(HomeXY))
	sel(AddrMoveHome, uint8(HomeZ), "z", home(HomeZ))
	for d, name := range []string{"x+", "x-", "y+", "y-", "z+", "z-"} {
		sel(AddrMoveStep, uint8(d), name, moveStep(MoveDirection(d)))
	}
	sel(AddrMoveSetStep, uint8(StepSizeMM10), "10mm", moveSetStep(StepSizeMM10))
	sel(AddrMoveSetStep, uint8(StepSizeMM1), "1mm", moveSetStep(StepSizeMM1))
	sel(AddrMoveSetStep, uint8(StepSizeMMP1), "0.1mm", moveSetStep(StepSizeMMP1))

	// G-code
	gcode := Cell[[]byte]{Get: func(env *Env) []byte { return env.UI.Gcode[:] }}
	add(
		rxVP(AddrGcodeClear, "GCODE_Clear", 2, action(gcodeClear)),
		rxVP(AddrGcodeExecute, "GCODE_Execute", 2, rxGcodeExecute),
		VP{Addr: AddrGcodeData, Name: "GCODE_Data", Size: GcodeLen, Flags: FlagRxString,
			Rx: StringToExtra(gcode),
			Tx: ExtraToString(Value(func(env *Env) string { return env.UI.GcodeLine() }))},
	)

	// Settings
	add(
		selVP(AddrEEPROMControl, "EEPROM_Control"),
		selVP(AddrSettings2Extra, "SETTINGS2_Extra"),
		txVP(AddrSettings2BLTouch, "SETTINGS2_BLTouch", 2, txBLTouch),
		VP{Addr: AddrFan0Speed, Name: "FAN0_Speed", Size: 2, Rx: rxFanSpeed,
			Tx: ExtraToInteger(Value(func(env *Env) uint8 { return env.Machine.FanPercent(0) }))},
		txAuto(AddrFan0SpeedCur, "FAN0_Speed_CUR", 2, ExtraToInteger(Value(func(env *Env) uint8 { return env.Machine.FanPercent(0) }))),
		VP{Addr: AddrVolumeLevel, Name: "VOLUME_Level", Size: 2, Rx: rxVolume,
			Tx: ExtraToInteger(Field(func(ui *UIContext) *uint8 { return &ui.Volume }))},
		VP{Addr: AddrBrightnessLevel, Name: "BRIGHTNESS_Level", Size: 2, Rx: rxBrightness,
			Tx: ExtraToInteger(Field(func(ui *UIContext) *uint8 { return &ui.Brightness }))},
	)
	sel(AddrEEPROMControl, uint8(EEPROMReset), "reset", eepromControl(EEPROMReset))
	sel(AddrEEPROMControl, uint8(EEPROMLoad), "load", eepromControl(EEPROMLoad))
	sel(AddrEEPROMControl, uint8(EEPROMSave), "save", eepromControl(EEPROMSave))
	sel(AddrSettings2Extra, uint8(ExtraButton1), "button1", settingsExtra(ExtraButton1))
	sel(AddrSettings2Extra, uint8(ExtraButton2), "button2", settingsExtra(ExtraButton2))

	for _, c := range calibrations {
		add(VP{Addr: c.addr, Name: c.name, Size: c.size, Rx: c.rx, Tx: c.tx})
	}

	// PID
	pidCycles := Field(func(ui *UIContext) *uint16 { return &ui.PIDCycles })
	add(
		rxVP(AddrPIDSelect, "PID_Select", 2, rxPIDSelect),
		rxVP(AddrPIDSetTemp, "PID_SetTemp", 2, rxPIDSetTemp),
		rxVP(AddrPIDRun, "PID_Run", 2, rxPIDRun),
		VP{Addr: AddrPIDCycles, Name: "PID_Cycles", Size: 2, Rx: IntegerToExtra(pidCycles), Tx: ExtraToInteger(pidCycles)},
		txVP(AddrPIDHeaterIcons, "PID_HeaterIcons", 2, txPIDIcons),
		txVP(AddrPIDTemp, "PID_Temp", 2, ExtraToInteger(Field(func(ui *UIContext) *uint16 { return &ui.PIDTemp }))),
		txVP(AddrPIDKp, "PID_Kp", 4, txPID(0)),
		txVP(AddrPIDKi, "PID_Ki", 4, txPID(1)),
		txVP(AddrPIDKd, "PID_Kd", 4, txPID(2)),
	)

	// Power loss recovery
	if f.PowerLossRecovery {
		add(selVP(AddrPowerLossAbort, "POWERLOSS_Abort"), selVP(AddrPowerLossResume, "POWERLOSS_Resume"))
		sel(AddrPowerLossAbort, uint8(PopupConfirmed), "confirmed", powerLossAbort)
		sel(AddrPowerLossResume, uint8(PopupConfirmed), "confirmed", powerLossResume)
	}

	// Wait page
	add(
		selVP(AddrWaitAbort, "WAIT_Abort"),
		rxVP(AddrWaitContinue, "WAIT_Continue", 2, rxWaitContinue),
		txAuto(AddrWaitIcons, "WAIT_Icons", 2, txWaitIcons),
	)
	sel(AddrWaitAbort, uint8(PopupConfirmed), "confirmed", waitAbort)

	// Print status
	add(
		txAuto(AddrStatusEllapsed, "STATUS_Ellapsed", EllapsedLen, txEllapsed),
		txAuto(AddrStatusPercent, "STATUS_Percent", 2, ExtraToInteger(Value(func(env *Env) uint8 { return env.Machine.Progress() }))),
		txVP(AddrStatusPercentComplete, "STATUS_Percent_Complete", 2, ExtraToInteger(Value(func(env *Env) uint16 { return 100 }))),
		txAuto(AddrStatusFeedrateMMS, "STATUS_Feedrate_MMS", 2,
			ExtraToFixedPoint(Value(func(env *Env) float64 { return env.Machine.CurrentSpeed() }), 0)),
		txAuto(AddrStatusPauseResumeIcon, "STATUS_Pause_Resume_Icon", 2, txPauseResumeIcon),
		txAuto(AddrAdjustFeedrate, "ADJUST_Feedrate", 2, ExtraToInteger(Value(func(env *Env) int16 { return env.Machine.Feedrate() }))),
		txAuto(AddrAdjustFlowrateCur, "ADJUST_Flowrate_CUR", 2, txFlowrate),
	)

	// Infos
	stats := func(get func(s PrintStats) string) TxHandler {
		return ExtraToString(Value(func(env *Env) string { return get(env.Machine.Stats()) }))
	}
	add(
		VP{Addr: AddrInfosScreenVersion, Name: "INFOS_Screen_Version", Size: VersionLen, Flags: FlagRxString,
			Rx: StringToExtra(Cell[[]byte]{Get: func(env *Env) []byte { return env.UI.ScreenVersion[:] }})},
		txVP(AddrInfosMachine, "INFOS_Machine", MachineLen, ExtraToString(Value(func(env *Env) string { return env.Machine.MachineName() }))),
		txVP(AddrInfosBuildVolume, "INFOS_BuildVolume", BuildVolumeLen, txBuildVolume),
		txVP(AddrInfosVersion, "INFOS_Version", VersionLen, ExtraToString(Value(func(env *Env) string { return env.Machine.FirmwareVersion() }))),
		txVP(AddrInfosTotalPrints, "INFOS_TotalPrints", 2, ExtraToInteger(Value(func(env *Env) uint16 { return env.Machine.Stats().TotalPrints }))),
		txVP(AddrInfosFinishedPrints, "INFOS_FinishedPrints", 2, ExtraToInteger(Value(func(env *Env) uint16 { return env.Machine.Stats().FinishedPrints }))),
		txVP(AddrInfosPrintTime, "INFOS_PrintTime", PrintTimeLen, stats(func(s PrintStats) string { return formatDuration(s.PrintTime) })),
		txVP(AddrInfosLongestPrint, "INFOS_LongestPrint", LongestPrintLen, stats(func(s PrintStats) string { return formatDuration(s.LongestPrint) })),
		txVP(AddrInfosFilamentUsed, "INFOS_FilamentUsed", FilamentUsedLen, stats(func(s PrintStats) string { return formatFilament(s.FilamentUsed) })),
		rxVP(AddrInfosDebug, "INFOS_Debug", 2, rxDebug),
	)

	return NewTable(vps, sels)
}

// screenVPs lists the VPs refreshed on each page. Addresses missing from
// the table (features off) are skipped.
var screenVPs = map[Screen][]Addr{
	ScreenHome: {
		AddrMessageStatus,
		AddrTempCurrentH0, AddrTempTargetH0,
		AddrTempCurrentBed, AddrTempTargetBed,
	},
	ScreenPrint: {
		AddrMessageStatus,
		AddrSDType,
		AddrSDFileName0, AddrSDFileName1, AddrSDFileName2, AddrSDFileName3, AddrSDFileName4,
		AddrSDScrollIcons, AddrSDSelectedFileName,
	},
	ScreenPrintStatus: {
		AddrMessageStatus,
		AddrSDSelectedFileName,
		AddrStatusEllapsed, AddrStatusPercent, AddrStatusPositionZ, AddrStatusFeedrateMMS,
		AddrStatusPauseResumeIcon, AddrFan0SpeedCur,
		AddrTempCurrentH0, AddrTempTargetH0, AddrTempCurrentBed, AddrTempTargetBed,
	},
	ScreenPrintAdjust: {
		AddrMessageStatus,
		AddrTempTargetH0, AddrTempTargetH1, AddrTempTargetBed,
		AddrAdjustFeedrate, AddrAdjustFlowrateCur, AddrAdjustFlowrateE0, AddrAdjustFlowrateE1,
		AddrLevelOffsetCurrent, AddrFan0Speed,
	},
	ScreenPrintFinished: {
		AddrMessageStatus,
		AddrSDSelectedFileName, AddrStatusEllapsed, AddrStatusPercentComplete, AddrStatusPositionZ,
	},
	ScreenTempMenu: {
		AddrMessageStatus,
		AddrTempCurrentH0, AddrTempTargetH0, AddrTempCurrentH1, AddrTempTargetH1,
		AddrTempCurrentBed, AddrTempTargetBed,
	},
	ScreenTempManual: {
		AddrMessageStatus,
		AddrTempCurrentH0, AddrTempTargetH0, AddrTempMaxH0,
		AddrTempCurrentH1, AddrTempTargetH1, AddrTempMaxH1,
		AddrTempCurrentBed, AddrTempTargetBed, AddrTempMaxBed,
	},
	ScreenFan: {
		AddrMessageStatus,
		AddrFan0Speed,
	},
	ScreenSettingsMenu: {
		AddrMessageStatus,
	},
	ScreenLevelingOffset: {
		AddrMessageStatus,
		AddrLevelOffsetCurrent, AddrLevelOffsetStepIcons, AddrMoveCurrentZ,
	},
	ScreenLevelingManual: {
		AddrMessageStatus,
		AddrMoveCurrentZ,
	},
	ScreenLevelingAutomatic: {
		AddrMessageStatus,
		AddrLevelOffsetCurrent, AddrLevelAutoGrid,
	},
	ScreenLevelingProbing: {
		AddrMessageStatus,
		AddrMessageLine2,
		AddrLevelAutoGrid,
	},
	ScreenFilament: {
		AddrMessageStatus,
		AddrTempCurrentH0, AddrTempTargetH0, AddrTempCurrentH1, AddrTempTargetH1,
		AddrFilamentExtruderIcons, AddrFilamentLength, AddrMoveCurrentE,
	},
	ScreenMove: {
		AddrMessageStatus,
		AddrMoveCurrentX, AddrMoveCurrentY, AddrMoveCurrentZ, AddrMoveStepIcons,
	},
	ScreenGcode: {
		AddrMessageStatus,
		AddrGcodeData,
	},
	ScreenSettingsMenu2: {
		AddrMessageStatus,
		AddrSettings2BLTouch, AddrVolumeLevel, AddrBrightnessLevel,
	},
	ScreenInfos: {
		AddrMessageStatus,
		AddrInfosMachine, AddrInfosBuildVolume, AddrInfosVersion,
		AddrInfosTotalPrints, AddrInfosFinishedPrints,
		AddrInfosPrintTime, AddrInfosLongestPrint, AddrInfosFilamentUsed,
	},
	ScreenPID: {
		AddrMessageStatus,
		AddrPIDHeaterIcons, AddrPIDTemp, AddrPIDCycles, AddrPIDKp, AddrPIDKi, AddrPIDKd,
	},
	ScreenPowerLoss: {
		AddrMessageStatus,
		AddrSDSelectedFileName,
	},
	ScreenWait: {
		AddrMessageLine1, AddrMessageLine2, AddrMessageLine3, AddrMessageLine4,
		AddrWaitIcons,
	},
	ScreenAbortConfirm:  {AddrMessageStatus},
	ScreenPauseConfirm:  {AddrMessageStatus},
	ScreenResumeConfirm: {AddrMessageStatus},
	ScreenDebug: {
		AddrMessageStatus,
		AddrXStepsMM, AddrYStepsMM, AddrZStepsMM, AddrEStepsMM,
		AddrXJerk, AddrYJerk, AddrZJerk, AddrEJerk,
		AddrJunctionDeviation, AddrLinearAdvance,
		AddrXAcceleration, AddrYAcceleration, AddrZAcceleration, AddrEAcceleration,
		AddrPrintAcceleration, AddrRetractAcceleration, AddrTravelAcceleration,
		AddrXMaxSpeed, AddrYMaxSpeed, AddrZMaxSpeed, AddrEMaxSpeed,
		AddrMinSpeed, AddrMinTravelSpeed,
	},
}

// ScreenVPs returns the addresses refreshed on screen s
func ScreenVPs(s Screen) []Addr {
	return screenVPs[s]
}
