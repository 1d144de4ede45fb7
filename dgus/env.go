package dgus

import "fmt"

// Env is handed to every handler: the external capabilities plus the
// state owned by the dispatch layer.
type Env struct {
	Machine  Machine
	Settings Settings
	Media    Media // nil without SD support
	Display  Display

	Features Features
	Presets  Presets
	Limits   Limits
	Leveling Leveling

	Screens *Screens
	UI      *UIContext
}

// printingOrPaused reports an active or paused job
func (env *Env) printingOrPaused() bool {
	return env.Machine.IsPrinting() || env.Machine.IsPaused()
}

func (env *Env) requireIdle() error {
	if !env.Machine.IsIdle() {
		return errBusy()
	}
	return nil
}

func (env *Env) requireHomed(axes ...Axis) error {
	for _, a := range axes {
		if !env.Machine.AxisHomed(a) {
			return errPrecondition(MsgHomingRequired)
		}
	}
	return nil
}

func (env *Env) requireFeature(enabled bool, msg string) error {
	if !enabled {
		return errFeature(msg)
	}
	return nil
}

// enqueue submits a line to the machine queue
func (env *Env) enqueue(line string) error {
	if err := env.Machine.Enqueue(line); err != nil {
		return fmt.Errorf("enqueue %q: %w", line, err)
	}
	return nil
}

// save persists settings right away
func (env *Env) save() error {
	if env.Settings == nil {
		return nil
	}
	if err := env.Settings.Save(); err != nil {
		env.Screens.SetStatusMessage(MsgEEPROMError)
		return fmt.Errorf("settings save: %w", err)
	}
	return nil
}

// activeExtruder resolves ExtruderCurrent to the active tool
func (env *Env) activeExtruder(e Extruder) Extruder {
	if e == ExtruderCurrent {
		return env.Machine.ActiveExtruder()
	}
	return e
}

// MoveToLevelPoint queues the moves to the staged manual leveling point:
// lift, travel, then lower to the point height.
func (env *Env) MoveToLevelPoint() error {
	p := env.UI.LevelingPoint
	if p < 1 || int(p) > len(env.Leveling.Points) {
		return ErrIgnored
	}
	pt := env.Leveling.Points[p-1]
	lv := env.Leveling

	lines := []string{
		fmt.Sprintf("G0F%.0fZ%.2f", lv.ZSpeed, lv.ZTravel),
		fmt.Sprintf("G0F%.0fX%.2fY%.2f", lv.TravelSpeed, pt.X, pt.Y),
		fmt.Sprintf("G0F%.0fZ%.2f", lv.ZSpeed, lv.ZPoint),
	}
	for _, line := range lines {
		if err := env.enqueue(line); err != nil {
			return err
		}
	}
	return nil
}
