package dgus

import (
	"fmt"

	"dgusbridge/protocol"
)

func gcodeClear(env *Env, vp *VP) error {
	clear(env.UI.Gcode[:])
	env.Screens.TriggerFullUpdate()
	return nil
}

func rxGcodeExecute(env *Env, vp *VP, data []byte) error {
	line := env.UI.GcodeLine()
	if line == "" {
		return ErrIgnored
	}
	if err := env.requireIdle(); err != nil {
		return err
	}
	if err := env.enqueue(line); err != nil {
		return err
	}

	env.Screens.SetMessageLines("", MsgExecutingCommand, "", "")
	env.Screens.ShowWaitScreen(ScreenGcode)
	return nil
}

func eepromControl(action EEPROMAction) SelectorHandler {
	return func(env *Env, vp *VP) error {
		if err := env.requireIdle(); err != nil {
			return err
		}
		if env.Settings == nil {
			return errFeature(MsgFeatureNotEnabled)
		}

		var (
			err error
			msg string
		)
		switch action {
		case EEPROMReset:
			err, msg = env.Settings.Reset(), MsgSettingsReset
		case EEPROMLoad:
			err, msg = env.Settings.Load(), MsgSettingsLoaded
		case EEPROMSave:
			err, msg = env.Settings.Save(), MsgSettingsSaved
		}
		if err != nil {
			msg = MsgEEPROMError
		}

		env.Screens.SetStatusMessage(msg)
		env.Screens.TriggerScreenChange(ScreenSettingsMenu2)
		if err != nil {
			return fmt.Errorf("settings %d: %w", action, err)
		}
		return nil
	}
}

// settingsExtra: button 1 resets the BLTouch when there is one, otherwise
// it opens the info page like button 2.
func settingsExtra(extra Extra) SelectorHandler {
	return func(env *Env, vp *VP) error {
		switch extra {
		case ExtraButton1:
			if !env.Features.BLTouch {
				env.Screens.TriggerScreenChange(ScreenInfos)
				return nil
			}
			if err := env.requireIdle(); err != nil {
				return err
			}
			return env.enqueue(CmdResetBLTouch)
		case ExtraButton2:
			if !env.Features.BLTouch {
				return ErrIgnored
			}
			env.Screens.TriggerScreenChange(ScreenInfos)
			return nil
		}
		return ErrIgnored
	}
}

func powerLossAbort(env *Env, vp *VP) error {
	if err := env.requireIdle(); err != nil {
		return err
	}
	if err := env.requireFeature(env.Features.PowerLossRecovery, MsgFeatureNotEnabled); err != nil {
		return err
	}
	if err := env.enqueue(CmdPowerLossUndo); err != nil {
		return err
	}
	env.Screens.TriggerScreenChange(ScreenHome)
	return nil
}

func powerLossResume(env *Env, vp *VP) error {
	if err := env.requireIdle(); err != nil {
		return err
	}
	if !env.Machine.RecoveryValid() {
		return errPrecondition(MsgInvalidRecovery)
	}
	if err := env.requireFeature(env.Features.PowerLossRecovery, MsgFeatureNotEnabled); err != nil {
		return err
	}
	if err := env.enqueue(CmdPowerLossDo); err != nil {
		return err
	}
	env.Screens.TriggerScreenChange(ScreenPrintStatus)
	return nil
}

// waitAbort stops a print parked by a filament change.
func waitAbort(env *Env, vp *VP) error {
	didPause := !env.Features.AdvancedPause || env.Machine.DidPause()
	if !env.Machine.IsPaused() || !didPause {
		env.Screens.TriggerFullUpdate()
		return nil
	}

	if env.Features.AdvancedPause {
		env.Machine.ClearDidPause()
	}
	env.Machine.SetUserConfirmed()
	env.Machine.StopPrint()

	env.Screens.TriggerFullUpdate()
	return nil
}

func rxWaitContinue(env *Env, vp *VP, data []byte) error {
	env.Machine.SetUserConfirmed()
	env.Screens.TriggerFullUpdate()
	return nil
}

func rxVolume(env *Env, vp *VP, data []byte) error {
	volume := clamp(data[1], 0, 100)
	if err := env.Display.SetVolume(volume); err != nil {
		return err
	}
	env.UI.Volume = volume
	env.Screens.TriggerEEPROMSave()
	return nil
}

func rxBrightness(env *Env, vp *VP, data []byte) error {
	brightness := clamp(data[1], 0, 100)
	if err := env.Display.SetBrightness(brightness); err != nil {
		return err
	}
	env.UI.Brightness = brightness
	env.Screens.TriggerEEPROMSave()
	return nil
}

// Calibration value of a settings VP
type calibration struct {
	addr     Addr
	name     string
	param    Param
	size     uint8
	decimals uint8
	// feature gate; nil means always available
	enabled func(f Features) bool
}

var calibrations = []calibration{
	{AddrXStepsMM, "X_Steps_mm", ParamStepsPerMMX, 4, 2, nil},
	{AddrYStepsMM, "Y_Steps_mm", ParamStepsPerMMY, 4, 2, nil},
	{AddrZStepsMM, "Z_Steps_mm", ParamStepsPerMMZ, 4, 2, nil},
	{AddrEStepsMM, "E_Steps_mm", ParamStepsPerMME, 4, 2, nil},
	{AddrXJerk, "X_Jerk_Steps_mm", ParamJerkX, 2, 1, classicJerk},
	{AddrYJerk, "Y_Jerk_Steps_mm", ParamJerkY, 2, 1, classicJerk},
	{AddrZJerk, "Z_Jerk_Steps_mm", ParamJerkZ, 2, 1, classicJerk},
	{AddrEJerk, "E_Jerk_Steps_mm", ParamJerkE, 2, 1, classicJerk},
	{AddrJunctionDeviation, "JunctionDeviation", ParamJunctionDeviation, 2, 3, func(f Features) bool { return f.JunctionDeviation }},
	{AddrLinearAdvance, "Linear_Advance", ParamLinearAdvance, 2, 2, func(f Features) bool { return f.LinearAdvance }},
	{AddrXAcceleration, "X_Acceleration", ParamAccelX, 2, 0, nil},
	{AddrYAcceleration, "Y_Acceleration", ParamAccelY, 2, 0, nil},
	{AddrZAcceleration, "Z_Acceleration", ParamAccelZ, 2, 0, nil},
	{AddrEAcceleration, "E_Acceleration", ParamAccelE, 2, 0, nil},
	{AddrPrintAcceleration, "Print_Acceleration", ParamAccelPrint, 2, 0, nil},
	{AddrRetractAcceleration, "Retract_Acceleration", ParamAccelRetract, 2, 0, nil},
	{AddrTravelAcceleration, "Travel_Acceleration", ParamAccelTravel, 2, 0, nil},
	{AddrXMaxSpeed, "X_Max_Speed", ParamMaxFeedrateX, 2, 0, nil},
	{AddrYMaxSpeed, "Y_Max_Speed", ParamMaxFeedrateY, 2, 0, nil},
	{AddrZMaxSpeed, "Z_Max_Speed", ParamMaxFeedrateZ, 2, 0, nil},
	{AddrEMaxSpeed, "E_Max_Speed", ParamMaxFeedrateE, 2, 0, nil},
	{AddrMinSpeed, "Min_Speed", ParamMinFeedrate, 2, 1, nil},
	{AddrMinTravelSpeed, "Min_Travel_Speed", ParamMinTravelFeedrate, 2, 1, nil},
}

func classicJerk(f Features) bool { return f.ClassicJerk }

// rx decodes the signed fixed-point value, applies it and saves.
func (c calibration) rx(env *Env, vp *VP, data []byte) error {
	if c.enabled != nil && !c.enabled(env.Features) {
		return errFeature(MsgFeatureNotEnabled)
	}
	value := protocol.DecodeFixed(data, vp.Width(), c.decimals, true)
	env.Machine.SetParam(c.param, value)
	return env.save()
}

func (c calibration) tx(env *Env, vp *VP) ([]byte, error) {
	return protocol.EncodeFixed(env.Machine.Param(c.param), vp.Width(), c.decimals), nil
}

// rxDebug counts taps on the hidden debug area.
func rxDebug(env *Env, vp *VP, data []byte) error {
	if env.UI.DebugCount < 255 {
		env.UI.DebugCount++
	}
	if env.UI.DebugCount >= 10 {
		env.Screens.TriggerScreenChange(ScreenDebug)
	}
	return nil
}
