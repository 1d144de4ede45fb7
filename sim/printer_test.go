package sim

import (
	"errors"
	"testing"
	"time"

	"dgusbridge/dgus"
)

func run(p *Printer, d time.Duration) {
	const step = 100 * time.Millisecond
	for t := time.Duration(0); t < d; t += step {
		p.Tick(step)
	}
}

func TestHomeThenMove(t *testing.T) {
	p := NewPrinter(DefaultMachineConfig())

	if p.PositionKnown() {
		t.Fatalf("Expected unknown position at start")
	}
	if err := p.SetAxisPosition(dgus.AxisX, 10); !errors.Is(err, ErrNotHomed) {
		t.Errorf("Expected ErrNotHomed, got %v", err)
	}

	if err := p.Enqueue("G28"); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if p.IsIdle() {
		t.Errorf("Expected busy with a queued command")
	}
	p.Tick(100 * time.Millisecond)
	if p.IsIdle() {
		t.Errorf("Expected busy while homing")
	}
	run(p, 3*time.Second)
	if !p.IsIdle() || !p.PositionKnown() {
		t.Fatalf("Expected idle and homed, idle=%v known=%v", p.IsIdle(), p.PositionKnown())
	}

	if err := p.SetAxisPosition(dgus.AxisX, 500); err != nil {
		t.Fatalf("move: %v", err)
	}
	run(p, 5*time.Second)
	if got := p.AxisPosition(dgus.AxisX); got != 220 {
		t.Errorf("Expected X clamped to 220, got %.2f", got)
	}
}

func TestHomeSingleAxis(t *testing.T) {
	p := NewPrinter(DefaultMachineConfig())
	p.Enqueue("G28Z")
	run(p, 3*time.Second)

	if !p.AxisHomed(dgus.AxisZ) || p.AxisHomed(dgus.AxisX) {
		t.Errorf("Expected only Z homed, got %v", p.homed)
	}
}

func TestMoveRequiresHoming(t *testing.T) {
	p := NewPrinter(DefaultMachineConfig())
	p.Enqueue("G0F600Z5.00")
	run(p, time.Second)
	if p.AxisPosition(dgus.AxisZ) != 0 {
		t.Errorf("Expected no Z move before homing, got %.2f", p.AxisPosition(dgus.AxisZ))
	}
}

func TestHeatersApproachTarget(t *testing.T) {
	p := NewPrinter(DefaultMachineConfig())
	p.SetTargetTemp(dgus.HeaterH0, 200)
	p.SetTargetTemp(dgus.HeaterBed, 500)

	if got := p.TargetTemp(dgus.HeaterBed); got != 125 {
		t.Errorf("Expected bed target clamped to 125, got %.0f", got)
	}

	run(p, 60*time.Second)
	if got := p.CurrentTemp(dgus.HeaterH0); got < 199 || got > 200 {
		t.Errorf("Expected hotend near 200, got %.1f", got)
	}

	p.SetTargetTemp(dgus.HeaterH0, 0)
	run(p, 120*time.Second)
	if got := p.CurrentTemp(dgus.HeaterH0); got > 30 {
		t.Errorf("Expected hotend back near ambient, got %.1f", got)
	}
}

func TestMoveExtruderCold(t *testing.T) {
	p := NewPrinter(DefaultMachineConfig())
	if err := p.MoveExtruder(dgus.ExtruderE0, 10); !errors.Is(err, ErrColdExtrusion) {
		t.Errorf("Expected ErrColdExtrusion, got %v", err)
	}

	p.SetTargetTemp(dgus.HeaterH0, 210)
	run(p, 60*time.Second)
	if err := p.MoveExtruder(dgus.ExtruderE0, 10); err != nil {
		t.Fatalf("extrude: %v", err)
	}
	run(p, 2*time.Second)
	if got := p.AxisPosition(dgus.AxisE); got != 10 {
		t.Errorf("Expected E=10, got %.2f", got)
	}
}

func TestProbeFillsMesh(t *testing.T) {
	p := NewPrinter(DefaultMachineConfig())
	p.Enqueue("G28")
	p.Enqueue("G29")
	run(p, 20*time.Second)

	if !p.IsIdle() {
		t.Fatalf("Expected idle after probing")
	}
	if p.MeshZ(0, 0) == 0 && p.MeshZ(4, 4) == 0 {
		t.Errorf("Expected a probed mesh")
	}
	if p.MeshZ(5, 0) != 0 {
		t.Errorf("Expected 0 outside the grid")
	}
}

func TestAutotuneUpdatesGains(t *testing.T) {
	p := NewPrinter(DefaultMachineConfig())
	kp, _, _ := p.PIDValues(dgus.HeaterBed)

	if err := p.Enqueue("M303C3E-1S60U1"); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	run(p, time.Second)
	if p.IsIdle() {
		t.Errorf("Expected busy while tuning")
	}
	run(p, 90*time.Second)
	if !p.IsIdle() {
		t.Fatalf("Expected idle after tuning")
	}
	if got, _, _ := p.PIDValues(dgus.HeaterBed); got == kp {
		t.Errorf("Expected Kp to change from %.2f", kp)
	}
	if p.TargetTemp(dgus.HeaterBed) != 0 {
		t.Errorf("Expected heater off after tuning")
	}
}

func TestJobLifecycle(t *testing.T) {
	cfg := DefaultMachineConfig()
	cfg.JobDuration = 10 * time.Second
	p := NewPrinter(cfg)

	if err := p.StartPrint("/media/cube.gcode"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := p.StartPrint("/media/other.gcode"); !errors.Is(err, ErrJobActive) {
		t.Errorf("Expected ErrJobActive, got %v", err)
	}
	run(p, 5*time.Second)
	if !p.IsPrinting() || p.IsIdle() {
		t.Errorf("Expected printing and not idle")
	}
	if got := p.Progress(); got < 45 || got > 55 {
		t.Errorf("Expected progress near 50, got %d", got)
	}

	p.PausePrint()
	if !p.IsPaused() || !p.JobRunning() || !p.DidPause() {
		t.Errorf("Expected paused job")
	}
	run(p, 20*time.Second)
	if !p.JobRunning() {
		t.Fatalf("Expected the paused job to stay")
	}

	p.ResumePrint()
	run(p, 6*time.Second)
	if p.JobRunning() {
		t.Fatalf("Expected the job to finish")
	}
	st := p.Stats()
	if st.TotalPrints != 1 || st.FinishedPrints != 1 {
		t.Errorf("Expected 1/1 prints, got %d/%d", st.TotalPrints, st.FinishedPrints)
	}
	if st.FilamentUsed == 0 || st.LongestPrint == 0 {
		t.Errorf("Expected statistics, got %+v", st)
	}
}

func TestFilamentChangeAwaitsUser(t *testing.T) {
	p := NewPrinter(DefaultMachineConfig())
	p.StartPrint("/media/cube.gcode")
	p.Enqueue("M600")
	p.Tick(100 * time.Millisecond)

	if !p.IsPaused() || !p.AwaitingUserConfirm() {
		t.Fatalf("Expected parked job awaiting the user")
	}
	p.SetUserConfirmed()
	if p.AwaitingUserConfirm() {
		t.Errorf("Expected confirmation cleared")
	}
}

func TestPowerLossRecovery(t *testing.T) {
	p := NewPrinter(DefaultMachineConfig())
	if p.PowerLoss() {
		t.Errorf("Expected no record without a job")
	}

	p.StartPrint("/media/cube.gcode")
	run(p, time.Minute)
	if !p.PowerLoss() {
		t.Fatalf("Expected a power-loss record")
	}
	if !p.RecoveryValid() || p.JobRunning() {
		t.Fatalf("Expected a valid record and no job")
	}

	p.Enqueue("M1000")
	p.Tick(100 * time.Millisecond)
	if !p.JobRunning() || p.RecoveryValid() {
		t.Fatalf("Expected the job resumed from the record")
	}
	if p.Elapsed() < time.Minute {
		t.Errorf("Expected elapsed carried over, got %v", p.Elapsed())
	}
}

func TestPowerLossCancel(t *testing.T) {
	p := NewPrinter(DefaultMachineConfig())
	p.SetRecovery(&Recovery{Path: "/media/cube.gcode", Elapsed: time.Minute})
	p.Enqueue("M1000C")
	p.Tick(100 * time.Millisecond)
	if p.RecoveryValid() || p.JobRunning() {
		t.Errorf("Expected the record discarded")
	}
}

func TestEnqueueLimits(t *testing.T) {
	p := NewPrinter(DefaultMachineConfig())
	for i := 0; i < QueueSize; i++ {
		if err := p.Enqueue("G4"); err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
	}
	if err := p.Enqueue("G4"); !errors.Is(err, ErrQueueFull) {
		t.Errorf("Expected ErrQueueFull, got %v", err)
	}
	if err := p.Enqueue("; comment"); err != nil {
		t.Errorf("Expected comments accepted, got %v", err)
	}
	if p.Queued() != QueueSize {
		t.Errorf("Expected %d queued, got %d", QueueSize, p.Queued())
	}
}

func TestTuningClamps(t *testing.T) {
	p := NewPrinter(DefaultMachineConfig())
	p.SetFeedrate(5)
	if p.Feedrate() != 10 {
		t.Errorf("Expected feedrate 10, got %d", p.Feedrate())
	}
	p.SetFlowrate(dgus.ExtruderE0, 2000)
	if p.Flowrate(dgus.ExtruderE0) != 999 {
		t.Errorf("Expected flowrate 999, got %d", p.Flowrate(dgus.ExtruderE0))
	}
	p.SetFanPercent(0, 150)
	if p.FanPercent(0) != 100 {
		t.Errorf("Expected fan 100, got %d", p.FanPercent(0))
	}
	p.BabystepZ(0.05)
	p.BabystepZ(-0.02)
	if got := p.ZOffset(); got < 0.0299 || got > 0.0301 {
		t.Errorf("Expected offset 0.03, got %f", got)
	}
}
