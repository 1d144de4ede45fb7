package dgus

import "fmt"

func tempPreset(preset TempPreset) SelectorHandler {
	return func(env *Env, vp *VP) error {
		var p TempPair
		switch preset {
		case TempPresetPLA:
			p = env.Presets.PLA
		case TempPresetABS:
			p = env.Presets.ABS
		case TempPresetPETG:
			p = env.Presets.PETG
		default:
			return ErrIgnored
		}

		hotend := HeaterH0
		if env.Features.Hotends > 1 {
			hotend = Heater(env.Machine.ActiveExtruder())
		}
		env.Machine.SetTargetTemp(hotend, float64(p.Hotend))
		env.Machine.SetTargetTemp(HeaterBed, float64(p.Bed))

		env.Screens.TriggerFullUpdate()
		return nil
	}
}

// maxTarget is the highest target the display may request for h.
func (env *Env) maxTarget(h Heater) int16 {
	if h == HeaterBed {
		return env.Limits.BedMaxTarget
	}
	limit := env.Limits.HotendMaxTemp
	if t := int16(env.Machine.MaxTemp(h)); t > 0 && t < limit {
		limit = t
	}
	return limit - env.Limits.HotendOvershoot
}

func rxTempTarget(env *Env, vp *VP, data []byte) error {
	var h Heater
	switch vp.Addr {
	case AddrTempSetTargetBed:
		h = HeaterBed
	case AddrTempSetTargetH0:
		h = HeaterH0
	case AddrTempSetTargetH1:
		h = HeaterH1
	default:
		return ErrIgnored
	}

	temp := clamp(int16At(data), 0, env.maxTarget(h))
	env.Machine.SetTargetTemp(h, float64(temp))

	env.Screens.TriggerFullUpdate()
	return nil
}

func rxTempCool(env *Env, vp *VP, data []byte) error {
	heater := Heater(int16At(data))

	switch heater {
	case HeaterAll:
		env.Machine.SetTargetTemp(HeaterBed, 0)
		env.Machine.SetTargetTemp(HeaterH0, 0)
		if env.Features.Hotends > 1 {
			env.Machine.SetTargetTemp(HeaterH1, 0)
		}
	case HeaterBed, HeaterH0:
		env.Machine.SetTargetTemp(heater, 0)
	case HeaterH1:
		if env.Features.Hotends < 2 {
			return ErrIgnored
		}
		env.Machine.SetTargetTemp(heater, 0)
	default:
		return ErrIgnored
	}

	env.Screens.SetStatusMessage(MsgCooling)
	env.Screens.TriggerFullUpdate()
	return nil
}

func rxPIDSelect(env *Env, vp *VP, data []byte) error {
	heater := Heater(int16At(data))

	switch heater {
	case HeaterBed:
		env.UI.PIDTemp = uint16(env.Presets.PLA.Bed)
	case HeaterH0:
		env.UI.PIDTemp = uint16(env.Presets.PLA.Hotend)
	case HeaterH1:
		if env.Features.Hotends < 2 {
			return ErrIgnored
		}
		env.UI.PIDTemp = uint16(env.Presets.PLA.Hotend)
	default:
		return ErrIgnored
	}
	env.UI.PIDHeater = heater
	env.UI.PIDCycles = PIDCyclesDefault

	env.Screens.TriggerFullUpdate()
	return nil
}

func rxPIDSetTemp(env *Env, vp *VP, data []byte) error {
	if err := env.requireIdle(); err != nil {
		return err
	}

	// unsigned on the wire, clamped before narrowing
	temp := int(uint16At(data))
	switch env.UI.PIDHeater {
	case HeaterBed:
		temp = clamp(temp, int(env.Limits.BedMinTemp), int(env.Limits.BedMaxTarget))
	case HeaterH0, HeaterH1:
		temp = clamp(temp, int(env.Limits.HotendMinTemp), int(env.maxTarget(env.UI.PIDHeater)))
	default:
		return ErrIgnored
	}
	env.UI.PIDTemp = uint16(temp)

	env.Screens.TriggerFullUpdate()
	return nil
}

// rxPIDRun queues an autotune of the staged heater and waits on the PID page.
func rxPIDRun(env *Env, vp *VP, data []byte) error {
	if err := env.requireIdle(); err != nil {
		return err
	}

	cycles := clamp(env.UI.PIDCycles, PIDCyclesMin, PIDCyclesMax)

	var heater int
	switch env.UI.PIDHeater {
	case HeaterBed:
		if err := env.requireFeature(env.Features.PIDTempBed, MsgBedPIDDisabled); err != nil {
			return err
		}
		heater = -1
	case HeaterH0, HeaterH1:
		if err := env.requireFeature(env.Features.PIDTemp, MsgExtPIDDisabled); err != nil {
			return err
		}
		heater = int(env.UI.PIDHeater)
	default:
		return ErrIgnored
	}

	line := fmt.Sprintf("M303C%dE%dS%dU1", cycles, heater, env.UI.PIDTemp)
	if err := env.enqueue(line); err != nil {
		return err
	}

	env.Screens.SetMessageLines("", MsgPIDAutotune, MsgPIDAutotuneStart, "")
	env.Screens.ShowWaitScreen(ScreenPID)
	return nil
}

// rxFanSpeed takes the percentage from byte 1
func rxFanSpeed(env *Env, vp *VP, data []byte) error {
	if vp.Addr != AddrFan0Speed {
		return ErrIgnored
	}
	env.Machine.SetFanPercent(0, clamp(data[1], 0, 100))
	return nil
}

func clamp[T int16 | uint16 | uint8 | int | float64](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
