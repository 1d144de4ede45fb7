package dgus

import "dgusbridge/protocol"

func int16At(data []byte) int16 {
	return int16(protocol.DecodeInt(data, protocol.Width16))
}

func uint16At(data []byte) uint16 {
	return uint16(protocol.DecodeUint(data, protocol.Width16))
}

// rxScreenChange remaps the requested page against machine activity.
func rxScreenChange(env *Env, vp *VP, data []byte) error {
	screen := Screen(data[1])

	DebugPrintln("screen change vp " + vp.Addr.String() + " screen " + screen.String())

	if vp.Addr == AddrScreenChangeSD {
		if !env.Features.SDSupport || env.Media == nil || !env.Media.Mount() {
			return errPrecondition(MsgNoMedia)
		}
		if err := env.Media.Root(); err != nil {
			return errPrecondition(MsgNoMedia)
		}
		env.UI.ResetFiles()
	}

	if vp.Addr == AddrScreenChangeIdle && env.printingOrPaused() {
		return &StatusError{Kind: KindBusy, Message: MsgNotWhilePrinting}
	}
	if vp.Addr == AddrScreenChangePrinting && !env.printingOrPaused() {
		return &StatusError{Kind: KindPrecondition, Message: MsgNotWhileIdle}
	}

	job := env.Machine.JobRunning()
	if screen == ScreenHome && job {
		screen = ScreenPrintStatus
	} else if screen == ScreenPrintStatus && !job {
		screen = ScreenHome
	}

	// Without probe hardware the leveling menu has nothing to offer
	if !env.Features.Leveling && screen == ScreenLevelingMenu {
		if env.Screens.Current() == ScreenSettingsMenu {
			screen = ScreenLevelingManual
		} else {
			screen = ScreenSettingsMenu
		}
	}

	env.Screens.TriggerScreenChange(screen)
	return nil
}

func sdScroll(dir Scroll) SelectorHandler {
	return func(env *Env, vp *VP) error {
		if env.Media == nil {
			return errPrecondition(MsgNoMedia)
		}
		ui := env.UI

		switch dir {
		case ScrollGoBack:
			if env.Media.AtRoot() {
				return ErrIgnored
			}
			if err := env.Media.Up(); err != nil {
				return errPrecondition(MsgNoMedia)
			}
			ui.ResetFiles()
		case ScrollUp:
			step := int16(FileCount)
			if ui.FileOffset < step {
				step = ui.FileOffset
			}
			ui.FileOffset -= step
		case ScrollDown:
			if int(ui.FileOffset)+FileCount < env.Media.Count() {
				ui.FileOffset += FileCount
			}
		}

		env.Screens.TriggerFullUpdate()
		return nil
	}
}

func rxSelectFile(env *Env, vp *VP, data []byte) error {
	if env.Media == nil {
		return errPrecondition(MsgNoMedia)
	}
	index := int(env.UI.FileOffset) + int(data[1])

	entry, ok := env.Media.Entry(index)
	if !ok {
		return ErrIgnored
	}

	if entry.Dir {
		if err := env.Media.Cd(entry.Name); err != nil {
			return errPrecondition(MsgNoMedia)
		}
		env.UI.ResetFiles()
	} else {
		env.UI.FileSelected = int16(index)
	}

	env.Screens.TriggerFullUpdate()
	return nil
}

func sdPrint(env *Env, vp *VP) error {
	if env.Media == nil {
		return errPrecondition(MsgNoMedia)
	}
	if env.UI.FileSelected < 0 {
		return errPrecondition(MsgNoFileSelected)
	}
	entry, ok := env.Media.Entry(int(env.UI.FileSelected))
	if !ok || entry.Dir {
		return ErrIgnored
	}
	if err := env.requireIdle(); err != nil {
		return err
	}

	if err := env.Machine.StartPrint(entry.Path); err != nil {
		return errPrecondition(err.Error())
	}
	env.Screens.TriggerScreenChange(ScreenPrintStatus)
	return nil
}

// Popups. Only the CONFIRMED selector is registered, anything else is a
// no-op.

func printAbort(env *Env, vp *VP) error {
	if !env.printingOrPaused() {
		env.Screens.TriggerFullUpdate()
		return nil
	}
	env.Machine.StopPrint()
	return nil
}

func printPause(env *Env, vp *VP) error {
	env.Screens.TriggerScreenChange(ScreenPrintStatus)
	if !env.Machine.IsPrinting() {
		env.Screens.TriggerFullUpdate()
		return nil
	}
	env.Machine.PausePrint()
	return nil
}

func printResume(env *Env, vp *VP) error {
	if !env.Machine.IsPaused() {
		env.Screens.TriggerScreenChange(ScreenPrintStatus)
		env.Screens.TriggerFullUpdate()
		return nil
	}
	if err := env.requireIdle(); err != nil {
		return err
	}
	env.Screens.TriggerScreenChange(ScreenPrintStatus)
	env.Machine.ResumePrint()
	return nil
}

// rxPrintPauseResume asks for confirmation of whichever action applies.
func rxPrintPauseResume(env *Env, vp *VP, data []byte) error {
	if env.Machine.IsPrinting() {
		env.Screens.TriggerScreenChange(ScreenPauseConfirm)
	} else {
		env.Screens.TriggerScreenChange(ScreenResumeConfirm)
	}
	return nil
}

func rxFeedrate(env *Env, vp *VP, data []byte) error {
	env.Machine.SetFeedrate(int16At(data))
	env.Screens.TriggerFullUpdate()
	return nil
}

func rxFlowrate(env *Env, vp *VP, data []byte) error {
	flowrate := int16At(data)

	var e Extruder
	switch vp.Addr {
	case AddrAdjustSetFlowrateCur:
		e = env.activeExtruder(ExtruderCurrent)
	case AddrAdjustSetFlowrateE0:
		e = ExtruderE0
	case AddrAdjustSetFlowrateE1:
		e = ExtruderE1
	default:
		return ErrIgnored
	}

	env.Machine.SetFlowrate(e, flowrate)
	env.Screens.TriggerFullUpdate()
	return nil
}

// rxBabystepSet moves Z so the offset becomes the requested value.
func rxBabystepSet(env *Env, vp *VP, data []byte) error {
	offset := protocol.DecodeFixed(data, protocol.Width16, 2, true)
	env.Machine.BabystepZ(offset - env.Machine.ZOffset())

	env.Screens.TriggerEEPROMSave()
	env.Screens.TriggerFullUpdate()
	return nil
}

func babystep(adjust Adjust) SelectorHandler {
	return func(env *Env, vp *VP) error {
		mm := env.Limits.BabystepMM
		if adjust == AdjustDecrement {
			mm = -mm
		}
		env.Machine.BabystepZ(mm)

		env.Screens.TriggerEEPROMSave()
		env.Screens.TriggerFullUpdate()
		return nil
	}
}
