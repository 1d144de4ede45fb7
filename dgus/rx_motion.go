package dgus

import "dgusbridge/protocol"

func steppers(on bool) SelectorHandler {
	return func(env *Env, vp *VP) error {
		env.Machine.SetSteppersEnabled(on)
		env.Screens.TriggerFullUpdate()
		return nil
	}
}

func runout(on bool) SelectorHandler {
	return func(env *Env, vp *VP) error {
		env.Machine.SetRunoutEnabled(on)
		env.Screens.TriggerFullUpdate()
		return nil
	}
}

// zOffsetGuard: idle, Z homed, leveling present.
func (env *Env) zOffsetGuard() error {
	if err := env.requireIdle(); err != nil {
		return err
	}
	if err := env.requireHomed(AxisZ); err != nil {
		return err
	}
	return env.requireFeature(env.Features.Leveling, MsgFeatureNotEnabled)
}

func rxZOffset(env *Env, vp *VP, data []byte) error {
	if err := env.zOffsetGuard(); err != nil {
		return err
	}

	offset := protocol.DecodeFixed(data, protocol.Width16, 2, true)
	env.Machine.BabystepZ(offset - env.Machine.ZOffset())

	if err := env.save(); err != nil {
		return err
	}
	env.Screens.TriggerFullUpdate()
	return nil
}

func zOffsetStep(adjust Adjust) SelectorHandler {
	return func(env *Env, vp *VP) error {
		if err := env.zOffsetGuard(); err != nil {
			return err
		}

		var mm float64
		switch env.UI.OffsetStep {
		case StepSizeMMP1, StepSizeMMP01:
			mm = env.UI.OffsetStep.StepMM()
		default:
			return ErrIgnored
		}
		if adjust == AdjustDecrement {
			mm = -mm
		}
		env.Machine.BabystepZ(mm)

		if err := env.save(); err != nil {
			return err
		}
		env.Screens.TriggerFullUpdate()
		return nil
	}
}

func zOffsetSetStep(size StepSize) SelectorHandler {
	return func(env *Env, vp *VP) error {
		env.UI.OffsetStep = size
		env.Screens.TriggerFullUpdate()
		return nil
	}
}

// showHoming puts "Homing..." on the wait page.
func (env *Env) showHoming(ret Screen) {
	env.Screens.SetMessageLines("", MsgHoming, "", "")
	env.Screens.ShowWaitScreen(ret)
}

// rxMoveToPoint stages a manual leveling point and moves there, homing
// first when the position is unknown. The move then happens when the
// wait page returns.
func rxMoveToPoint(env *Env, vp *VP, data []byte) error {
	if err := env.requireIdle(); err != nil {
		return err
	}
	point := data[1]
	if point < 1 || int(point) > len(env.Leveling.Points) {
		return ErrIgnored
	}

	if !env.Machine.PositionKnown() {
		if err := env.enqueue(CmdHome); err != nil {
			return err
		}
		env.UI.LevelingPoint = point
		env.showHoming(ScreenLevelingManual)
		return nil
	}

	env.UI.LevelingPoint = point
	return env.MoveToLevelPoint()
}

func rxProbe(env *Env, vp *VP, data []byte) error {
	if env.Features.MeshBedLeveling {
		return errPrecondition(MsgABLRequired)
	}
	if err := env.requireIdle(); err != nil {
		return err
	}
	if err := env.requireFeature(env.Features.Leveling, MsgFeatureNotEnabled); err != nil {
		return err
	}

	if !env.Machine.PositionKnown() {
		if err := env.enqueue(CmdHome); err != nil {
			return err
		}
		if err := env.enqueue(CmdProbe); err != nil {
			return err
		}
		env.showHoming(ScreenLevelingProbing)
		return nil
	}

	if err := env.enqueue(CmdProbe); err != nil {
		return err
	}
	env.Screens.SetMessageLines("", MsgProbing, "", "")
	env.Screens.TriggerScreenChange(ScreenLevelingProbing)
	return nil
}

func rxFilamentSelect(env *Env, vp *VP, data []byte) error {
	e := Extruder(int16At(data))

	switch e {
	case ExtruderCurrent, ExtruderE0:
	case ExtruderE1:
		if env.Features.Extruders < 2 {
			return ErrIgnored
		}
	default:
		return ErrIgnored
	}
	env.UI.FilamentExtruder = e

	env.Screens.TriggerFullUpdate()
	return nil
}

func rxFilamentLength(env *Env, vp *VP, data []byte) error {
	env.UI.FilamentLength = clamp(uint16At(data), 0, env.Limits.ExtrudeMaxLength)
	env.Screens.TriggerFullUpdate()
	return nil
}

// filamentMove extrudes or retracts the staged length. Load and unload
// pass the same checks and do not move.
func filamentMove(move FilamentMove) SelectorHandler {
	return func(env *Env, vp *VP) error {
		if err := env.requireIdle(); err != nil {
			return err
		}

		e := env.UI.FilamentExtruder
		if e == ExtruderCurrent {
			if env.Features.Extruders > 1 {
				e = env.Machine.ActiveExtruder()
			} else {
				e = ExtruderE0
			}
		}

		if env.Machine.CurrentTemp(Heater(e)) < env.Limits.ExtrudeMinTemp {
			return errPrecondition(MsgTempTooLow)
		}

		length := float64(env.UI.FilamentLength)
		switch move {
		case FilamentRetract:
			return env.Machine.MoveExtruder(e, -length)
		case FilamentExtrude:
			return env.Machine.MoveExtruder(e, length)
		}
		return nil
	}
}

func home(axes HomeAxis) SelectorHandler {
	return func(env *Env, vp *VP) error {
		if err := env.requireIdle(); err != nil {
			return err
		}

		var line string
		switch axes {
		case HomeXYZ:
			line = "G28XYZ"
		case HomeXY:
			line = "G28XY"
		case HomeZ:
			line = "G28Z"
		default:
			return ErrIgnored
		}
		if err := env.enqueue(line); err != nil {
			return err
		}

		env.showHoming(env.Screens.Current())
		return nil
	}
}

func rxMove(env *Env, vp *VP, data []byte) error {
	position := protocol.DecodeFixed(data, protocol.Width16, 1, true)

	var axis Axis
	switch vp.Addr {
	case AddrMoveSetX:
		axis = AxisX
	case AddrMoveSetY:
		axis = AxisY
	case AddrMoveSetZ:
		axis = AxisZ
	default:
		return ErrIgnored
	}

	if err := env.requireHomed(axis); err != nil {
		return err
	}
	if err := env.Machine.SetAxisPosition(axis, position); err != nil {
		return err
	}

	env.Screens.TriggerFullUpdate()
	return nil
}

func moveStep(dir MoveDirection) SelectorHandler {
	return func(env *Env, vp *VP) error {
		var offset float64
		switch env.UI.MoveStep {
		case StepSizeMM10, StepSizeMM1, StepSizeMMP1:
			offset = env.UI.MoveStep.StepMM()
		default:
			return ErrIgnored
		}

		var axis Axis
		switch dir {
		case MoveXPlus, MoveXMinus:
			axis = AxisX
		case MoveYPlus, MoveYMinus:
			axis = AxisY
		case MoveZPlus, MoveZMinus:
			axis = AxisZ
		default:
			return ErrIgnored
		}
		if dir == MoveXMinus || dir == MoveYMinus || dir == MoveZMinus {
			offset = -offset
		}

		if err := env.requireHomed(axis); err != nil {
			return err
		}
		if err := env.Machine.SetAxisPosition(axis, env.Machine.AxisPosition(axis)+offset); err != nil {
			return err
		}

		env.Screens.TriggerFullUpdate()
		return nil
	}
}

func moveSetStep(size StepSize) SelectorHandler {
	return func(env *Env, vp *VP) error {
		env.UI.MoveStep = size
		env.Screens.TriggerFullUpdate()
		return nil
	}
}
