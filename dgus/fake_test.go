package dgus

import (
	"errors"
	"testing"
	"time"
)

// fakeMachine is a scriptable Machine. Tests set the state fields and
// inspect the recorded calls.
type fakeMachine struct {
	printing, paused, job bool
	idle                  bool
	didPause, awaiting    bool
	recovery              bool
	progress              uint8
	elapsed               time.Duration
	stats                 PrintStats

	homed   [4]bool
	pos     [4]float64
	temps   map[Heater]float64
	targets map[Heater]float64
	fan     uint8
	active  Extruder

	feedrate int16
	flow     [2]int16
	zOffset  float64
	runout   bool
	params   [NumParams]float64
	mesh     [GridPointsX][GridPointsX]float64

	queue      []string
	enqueueErr error

	started   []string
	stops     int
	pauses    int
	resumes   int
	confirmed int
	extruded  []float64
	steppers  []bool
}

func newFakeMachine() *fakeMachine {
	return &fakeMachine{
		idle:     true,
		temps:    map[Heater]float64{HeaterBed: 25, HeaterH0: 25, HeaterH1: 25},
		targets:  map[Heater]float64{},
		feedrate: 100,
		flow:     [2]int16{100, 100},
		runout:   true,
	}
}

func (m *fakeMachine) home() {
	m.homed = [4]bool{true, true, true, false}
}

func (m *fakeMachine) IsPrinting() bool          { return m.printing }
func (m *fakeMachine) IsPaused() bool            { return m.paused }
func (m *fakeMachine) JobRunning() bool          { return m.job }
func (m *fakeMachine) IsIdle() bool              { return m.idle }
func (m *fakeMachine) DidPause() bool            { return m.didPause }
func (m *fakeMachine) ClearDidPause()            { m.didPause = false }
func (m *fakeMachine) AwaitingUserConfirm() bool { return m.awaiting }
func (m *fakeMachine) SetUserConfirmed()         { m.awaiting = false; m.confirmed++ }
func (m *fakeMachine) StartPrint(path string) error {
	m.started = append(m.started, path)
	m.job, m.printing = true, true
	return nil
}
func (m *fakeMachine) StopPrint()             { m.stops++; m.job, m.printing, m.paused = false, false, false }
func (m *fakeMachine) PausePrint()            { m.pauses++; m.printing, m.paused = false, true }
func (m *fakeMachine) ResumePrint()           { m.resumes++; m.printing, m.paused = true, false }
func (m *fakeMachine) RecoveryValid() bool    { return m.recovery }
func (m *fakeMachine) Progress() uint8        { return m.progress }
func (m *fakeMachine) Elapsed() time.Duration { return m.elapsed }
func (m *fakeMachine) Stats() PrintStats      { return m.stats }

func (m *fakeMachine) AxisHomed(a Axis) bool { return m.homed[a] }
func (m *fakeMachine) PositionKnown() bool {
	return m.homed[AxisX] && m.homed[AxisY] && m.homed[AxisZ]
}
func (m *fakeMachine) AxisPosition(a Axis) float64 { return m.pos[a] }
func (m *fakeMachine) SetAxisPosition(a Axis, mm float64) error {
	m.pos[a] = mm
	return nil
}
func (m *fakeMachine) MoveExtruder(e Extruder, mm float64) error {
	m.extruded = append(m.extruded, mm)
	return nil
}
func (m *fakeMachine) ActiveExtruder() Extruder   { return m.active }
func (m *fakeMachine) SetSteppersEnabled(on bool) { m.steppers = append(m.steppers, on) }
func (m *fakeMachine) CurrentSpeed() float64      { return 0 }

func (m *fakeMachine) CurrentTemp(h Heater) float64 { return m.temps[h] }
func (m *fakeMachine) TargetTemp(h Heater) float64  { return m.targets[h] }
func (m *fakeMachine) SetTargetTemp(h Heater, c float64) {
	m.targets[h] = c
}
func (m *fakeMachine) MaxTemp(h Heater) float64 {
	if h == HeaterBed {
		return 120
	}
	return 300
}
func (m *fakeMachine) FanPercent(fan int) uint8       { return m.fan }
func (m *fakeMachine) SetFanPercent(fan int, p uint8) { m.fan = p }
func (m *fakeMachine) PIDValues(h Heater) (float64, float64, float64) {
	return 21.73, 1.54, 76.55
}

func (m *fakeMachine) Feedrate() int16                 { return m.feedrate }
func (m *fakeMachine) SetFeedrate(p int16)             { m.feedrate = p }
func (m *fakeMachine) Flowrate(e Extruder) int16       { return m.flow[e] }
func (m *fakeMachine) SetFlowrate(e Extruder, p int16) { m.flow[e] = p }
func (m *fakeMachine) ZOffset() float64                { return m.zOffset }
func (m *fakeMachine) BabystepZ(mm float64)            { m.zOffset += mm }
func (m *fakeMachine) RunoutEnabled() bool             { return m.runout }
func (m *fakeMachine) SetRunoutEnabled(on bool)        { m.runout = on }
func (m *fakeMachine) MeshZ(x, y int) float64          { return m.mesh[y][x] }
func (m *fakeMachine) Param(p Param) float64           { return m.params[p] }
func (m *fakeMachine) SetParam(p Param, v float64)     { m.params[p] = v }

func (m *fakeMachine) Enqueue(line string) error {
	if m.enqueueErr != nil {
		return m.enqueueErr
	}
	m.queue = append(m.queue, line)
	return nil
}

func (m *fakeMachine) MachineName() string                      { return "Test Printer" }
func (m *fakeMachine) BuildVolume() (float64, float64, float64) { return 220, 220, 250 }
func (m *fakeMachine) FirmwareVersion() string                  { return "1.0.0" }

type write struct {
	addr Addr
	data []byte
}

// fakeDisplay records everything sent to the display.
type fakeDisplay struct {
	writes     []write
	screens    []Screen
	volume     uint8
	brightness uint8
	err        error
}

func (d *fakeDisplay) Write(addr Addr, data []byte) error {
	if d.err != nil {
		return d.err
	}
	d.writes = append(d.writes, write{addr, append([]byte(nil), data...)})
	return nil
}

func (d *fakeDisplay) SwitchScreen(s Screen) error {
	if d.err != nil {
		return d.err
	}
	d.screens = append(d.screens, s)
	return nil
}

func (d *fakeDisplay) SetVolume(p uint8) error     { d.volume = p; return d.err }
func (d *fakeDisplay) SetBrightness(p uint8) error { d.brightness = p; return d.err }

// last returns the last data written to addr
func (d *fakeDisplay) last(addr Addr) ([]byte, bool) {
	for i := len(d.writes) - 1; i >= 0; i-- {
		if d.writes[i].addr == addr {
			return d.writes[i].data, true
		}
	}
	return nil, false
}

func (d *fakeDisplay) screen() Screen {
	if len(d.screens) == 0 {
		return ScreenBoot
	}
	return d.screens[len(d.screens)-1]
}

type fakeSettings struct {
	resets, loads, saves int
	err                  error
}

func (s *fakeSettings) Reset() error { s.resets++; return s.err }
func (s *fakeSettings) Load() error  { s.loads++; return s.err }
func (s *fakeSettings) Save() error  { s.saves++; return s.err }

var errFake = errors.New("fake failure")

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type harness struct {
	d        *Dispatcher
	machine  *fakeMachine
	display  *fakeDisplay
	settings *fakeSettings
	clock    *clock
}

func newHarness(t *testing.T, f Features) *harness {
	t.Helper()
	h := &harness{
		machine:  newFakeMachine(),
		display:  &fakeDisplay{},
		settings: &fakeSettings{},
		clock:    &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
	}
	d, err := New(Options{
		Machine:       h.machine,
		Settings:      h.settings,
		Display:       h.display,
		Features:      f,
		StatusTimeout: 5 * time.Second,
		SaveDelay:     2 * time.Second,
		Now:           h.clock.now,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.d = d
	ClearTrace()
	return h
}

// settle runs Init and one cycle so the display shows HOME.
func (h *harness) settle(t *testing.T) {
	t.Helper()
	if err := h.d.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := h.d.Loop(); err != nil {
		t.Fatalf("Loop: %v", err)
	}
	h.display.writes = nil
}

func (h *harness) loop(t *testing.T) {
	t.Helper()
	if err := h.d.Loop(); err != nil {
		t.Fatalf("Loop: %v", err)
	}
}

func word(v uint16) []byte {
	return []byte{byte(v >> 8), byte(v)}
}

func selector(v uint8) []byte {
	return []byte{0, v}
}

// fakeMedia is an in-memory directory tree keyed by path.
type fakeMedia struct {
	tree map[string][]Entry
	cwd  string
}

func (m *fakeMedia) Mount() bool  { return true }
func (m *fakeMedia) Root() error  { m.cwd = "/"; return nil }
func (m *fakeMedia) AtRoot() bool { return m.cwd == "/" }
func (m *fakeMedia) Count() int   { return len(m.tree[m.cwd]) }

func (m *fakeMedia) Up() error {
	if m.cwd == "/" {
		return errFake
	}
	m.cwd = "/"
	return nil
}

func (m *fakeMedia) Cd(name string) error {
	dir := m.cwd + name
	if _, ok := m.tree[dir]; !ok {
		return errFake
	}
	m.cwd = dir
	return nil
}

func (m *fakeMedia) Entry(index int) (Entry, bool) {
	entries := m.tree[m.cwd]
	if index < 0 || index >= len(entries) {
		return Entry{}, false
	}
	return entries[index], true
}
