package dgus

import (
	"errors"
	"fmt"
	"time"
)

// Options configure a Dispatcher. Machine and Display are required;
// zero Presets, Limits and Leveling take their defaults.
type Options struct {
	Machine  Machine
	Settings Settings
	Media    Media
	Display  Display

	Features Features
	Presets  Presets
	Limits   Limits
	Leveling Leveling

	StatusTimeout time.Duration
	SaveDelay     time.Duration

	Now func() time.Time
}

// Dispatcher routes display writes to handlers and refreshes the VPs of
// the shown page. It is not safe for concurrent use: Dispatch and Loop
// must run on the same goroutine.
type Dispatcher struct {
	env   *Env
	table *Table
	now   func() time.Time

	jobRunning bool
}

// New builds the VP table for opts.Features and the dispatch state.
func New(opts Options) (*Dispatcher, error) {
	if opts.Machine == nil {
		return nil, errors.New("dgus: machine is required")
	}
	if opts.Display == nil {
		return nil, errors.New("dgus: display is required")
	}
	if opts.Features.Extruders < 1 {
		opts.Features.Extruders = 1
	}
	if opts.Features.Hotends < 1 {
		opts.Features.Hotends = 1
	}
	if opts.Presets == (Presets{}) {
		opts.Presets = DefaultPresets()
	}
	if opts.Limits == (Limits{}) {
		opts.Limits = DefaultLimits()
	}
	if opts.Leveling == (Leveling{}) {
		opts.Leveling = DefaultLeveling()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	table, err := BuildTable(opts.Features)
	if err != nil {
		return nil, fmt.Errorf("dgus: %w", err)
	}

	d := &Dispatcher{
		table: table,
		now:   opts.Now,
		env: &Env{
			Machine:  opts.Machine,
			Settings: opts.Settings,
			Media:    opts.Media,
			Display:  opts.Display,
			Features: opts.Features,
			Presets:  opts.Presets,
			Limits:   opts.Limits,
			Leveling: opts.Leveling,
			Screens:  NewScreens(opts.StatusTimeout, opts.SaveDelay, opts.Now),
			UI:       NewUIContext(opts.Presets),
		},
	}
	return d, nil
}

func (d *Dispatcher) Env() *Env         { return d.env }
func (d *Dispatcher) Table() *Table     { return d.table }
func (d *Dispatcher) Screens() *Screens { return d.env.Screens }
func (d *Dispatcher) UI() *UIContext    { return d.env.UI }

// Init pushes the display settings and leaves the boot screen.
func (d *Dispatcher) Init() error {
	ui := d.env.UI
	if err := d.env.Display.SetVolume(ui.Volume); err != nil {
		return fmt.Errorf("dgus: set volume: %w", err)
	}
	if err := d.env.Display.SetBrightness(ui.Brightness); err != nil {
		return fmt.Errorf("dgus: set brightness: %w", err)
	}

	if d.env.Features.PowerLossRecovery && d.env.Machine.RecoveryValid() {
		d.env.Screens.TriggerScreenChange(ScreenPowerLoss)
	} else {
		d.env.Screens.TriggerScreenChange(ScreenHome)
	}
	d.jobRunning = d.env.Machine.JobRunning()
	return nil
}

// Dispatch handles one display write of data to addr. Unknown addresses,
// unregistered selectors and short payloads are dropped silently. Guard
// failures are shown in the status slot and returned as *StatusError.
func (d *Dispatcher) Dispatch(addr Addr, data []byte) error {
	vp, ok := d.table.Resolve(addr)
	if !ok || (vp.Rx == nil && vp.Flags&FlagSelector == 0) {
		recordTrace(addr, data, TraceUnknown)
		DebugPrintln("dispatch: no handler for vp " + addr.String())
		return nil
	}

	if vp.Flags&FlagRxString != 0 {
		data = trimString(data)
	} else if len(data) < int(vp.Size) {
		recordTrace(addr, data, TraceIgnored)
		DebugPrintln(fmt.Sprintf("dispatch: short payload for %s: %d bytes", vp.Name, len(data)))
		return nil
	}

	var err error
	if vp.Flags&FlagSelector != 0 {
		sel, ok := d.table.Selector(addr, data[1])
		if !ok {
			recordTrace(addr, data, TraceNoSelector)
			DebugPrintln(fmt.Sprintf("dispatch: %s selector %d not registered", vp.Name, data[1]))
			return nil
		}
		DebugPrintln("dispatch: " + vp.Name + " " + sel.Name)
		err = sel.Handler(d.env, vp)
	} else {
		DebugPrintln("dispatch: " + vp.Name)
		err = vp.Rx(d.env, vp, data)
	}

	var statusErr *StatusError
	switch {
	case err == nil:
		recordTrace(addr, data, TraceHandled)
		return nil
	case errors.Is(err, ErrIgnored):
		recordTrace(addr, data, TraceIgnored)
		return nil
	case errors.As(err, &statusErr):
		recordTrace(addr, data, TraceRejected)
		d.env.Screens.SetStatusMessage(statusErr.Message)
		return err
	default:
		recordTrace(addr, data, TraceFailed)
		return fmt.Errorf("dgus: %s: %w", vp.Name, err)
	}
}

// Loop runs one refresh cycle: expire the status message, run a due
// settings save, observe finished background work, switch pages and
// push the visible VPs.
func (d *Dispatcher) Loop() error {
	s := d.env.Screens
	now := d.now()

	s.expireStatus(now)

	var errs []error
	if s.saveDue(now) {
		if err := d.env.save(); err != nil {
			errs = append(errs, err)
		}
	}

	if err := d.observe(); err != nil {
		errs = append(errs, err)
	}

	if s.applyChange() {
		if err := d.env.Display.SwitchScreen(s.Current()); err != nil {
			return errors.Join(append(errs, fmt.Errorf("dgus: switch to %s: %w", s.Current(), err))...)
		}
	}

	full := s.takeFullUpdate()
	if err := d.refreshScreen(full); err != nil {
		errs = append(errs, err)
	}
	if err := d.flushMessages(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// observe reacts to machine state that background work leaves behind.
func (d *Dispatcher) observe() error {
	s := d.env.Screens
	m := d.env.Machine

	job := m.JobRunning()
	started, stopped := job && !d.jobRunning, !job && d.jobRunning
	d.jobRunning = job

	// a page change requested by a handler wins
	if s.Next() != s.Current() {
		return nil
	}

	switch {
	case s.Current() == ScreenWait:
		if !m.IsIdle() || m.AwaitingUserConfirm() {
			return nil
		}
		ret := s.WaitReturn()
		s.TriggerScreenChange(ret)
		if ret == ScreenLevelingManual && d.env.UI.LevelingPoint > 0 {
			if err := d.env.MoveToLevelPoint(); err != nil && !errors.Is(err, ErrIgnored) {
				return err
			}
		}
	case s.Current() == ScreenLevelingProbing:
		if m.IsIdle() {
			s.TriggerScreenChange(ScreenLevelingAutomatic)
		}
	case stopped:
		switch s.Current() {
		case ScreenPrintStatus, ScreenPrintAdjust, ScreenAbortConfirm, ScreenPauseConfirm, ScreenResumeConfirm:
			if m.Progress() >= 100 {
				s.TriggerScreenChange(ScreenPrintFinished)
			} else {
				s.TriggerScreenChange(ScreenHome)
			}
		}
	case started:
		if s.Current() == ScreenHome || s.Current() == ScreenPowerLoss {
			s.TriggerScreenChange(ScreenPrintStatus)
		}
	}
	return nil
}

func (d *Dispatcher) refreshScreen(full bool) error {
	for _, addr := range ScreenVPs(d.env.Screens.Current()) {
		vp, ok := d.table.Resolve(addr)
		if !ok || vp.Tx == nil {
			continue
		}
		if !full && vp.Flags&FlagAutoUpdate == 0 {
			continue
		}
		if err := d.refresh(vp); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) flushMessages() error {
	s := d.env.Screens
	if s.takeLinesDirty() {
		for n := 1; n <= 4; n++ {
			if err := d.Refresh(lineAddr(n)); err != nil {
				return err
			}
		}
	}
	if s.takeStatusDirty() {
		return d.Refresh(AddrMessageStatus)
	}
	return nil
}

// Refresh encodes the VP at addr and writes it to the display.
func (d *Dispatcher) Refresh(addr Addr) error {
	vp, ok := d.table.Resolve(addr)
	if !ok || vp.Tx == nil {
		return fmt.Errorf("dgus: vp %s is not readable", addr)
	}
	return d.refresh(vp)
}

func (d *Dispatcher) refresh(vp *VP) error {
	data, err := vp.Tx(d.env, vp)
	if err != nil {
		return fmt.Errorf("dgus: %s: %w", vp.Name, err)
	}
	if err := d.env.Display.Write(vp.Addr, data); err != nil {
		return fmt.Errorf("dgus: write %s: %w", vp.Name, err)
	}
	return nil
}

// Flush runs a deferred settings save now, if one is pending.
func (d *Dispatcher) Flush() error {
	if !d.env.Screens.cancelSave() {
		return nil
	}
	return d.env.save()
}
