package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dgusbridge/dgus"
)

const sample = `
serial:
  device: /dev/ttyAMA0
  baud: 250000
  crc: true
refresh:
  interval_ms: 100
features:
  extruders: 2
  hotends: 2
  pid_temp_bed: false
presets:
  abs:
    hotend: 245
    bed: 105
machine:
  name: Voron Zero
  media_root: /srv/gcode
  homing_time: 3s
  heaters:
    bed:
      max_temp: 110
`

func TestParse_OverDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Serial.Device != "/dev/ttyAMA0" || cfg.Serial.Baud != 250000 || !cfg.Serial.CRC {
		t.Errorf("serial not decoded: %+v", cfg.Serial)
	}
	if cfg.Serial.ReadTimeoutMs != 100 {
		t.Errorf("expected default read timeout, got %d", cfg.Serial.ReadTimeoutMs)
	}
	if cfg.Features.Extruders != 2 || cfg.Features.PIDTempBed {
		t.Errorf("features not decoded: %+v", cfg.Features)
	}
	if !cfg.Features.PIDTemp || !cfg.Features.SDSupport {
		t.Errorf("expected default features kept: %+v", cfg.Features)
	}
	if cfg.Presets.ABS != (TempPreset{Hotend: 245, Bed: 105}) {
		t.Errorf("abs preset: %+v", cfg.Presets.ABS)
	}
	if cfg.Presets.PLA != (TempPreset{Hotend: 200, Bed: 60}) {
		t.Errorf("expected default pla, got %+v", cfg.Presets.PLA)
	}
	if cfg.Machine.Name != "Voron Zero" || cfg.Machine.MediaRoot != "/srv/gcode" {
		t.Errorf("machine not decoded: %q %q", cfg.Machine.Name, cfg.Machine.MediaRoot)
	}
	if cfg.Machine.HomingTime != 3*time.Second {
		t.Errorf("expected 3s homing, got %v", cfg.Machine.HomingTime)
	}
	if got := cfg.Machine.Heaters["bed"].MaxTemp; got != 110 {
		t.Errorf("expected bed max 110, got %g", got)
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse([]byte("\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("serial:\n  baudrate: 9600\n"))
	if err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bridge.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.HasPrefix(err.Error(), "config:") {
		t.Errorf("expected prefixed error, got %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"no device", func(c *Config) { c.Serial.Device = "" }, "device"},
		{"zero baud", func(c *Config) { c.Serial.Baud = 0 }, "baud"},
		{"zero interval", func(c *Config) { c.Refresh.IntervalMs = 0 }, "interval_ms"},
		{"three extruders", func(c *Config) { c.Features.Extruders = 3 }, "extruders"},
		{"hotends over extruders", func(c *Config) { c.Features.Hotends = 2 }, "hotends"},
		{"bltouch without leveling", func(c *Config) { c.Features.Leveling = false }, "bltouch"},
		{"jerk and junction", func(c *Config) { c.Features.ClassicJerk = true }, "exclusive"},
		{"bed range", func(c *Config) { c.Limits.BedMinTemp = 120 }, "bed_min_temp"},
		{"babystep", func(c *Config) { c.Limits.BabystepMM = 0 }, "babystep_mm"},
		{"hot preset", func(c *Config) { c.Presets.PETG.Hotend = 270 }, "petg hotend"},
		{"hot bed preset", func(c *Config) { c.Presets.PLA.Bed = 200 }, "pla bed"},
		{"four points", func(c *Config) { c.Leveling.Points = c.Leveling.Points[:4] }, "5 points"},
		{"point off bed", func(c *Config) { c.Leveling.Points[2].X = 400 }, "point 3"},
		{"unknown heater", func(c *Config) { c.Machine.Heaters["chamber"] = c.Machine.Heaters["bed"] }, "chamber"},
		{"no settings path", func(c *Config) { c.Machine.SettingsPath = "" }, "settings_path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in %q", tt.want, err.Error())
			}
		})
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	cfg := Default()
	cfg.Machine.Name = strings.Repeat("x", 40)
	cfg.Refresh.IntervalMs = 1

	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Machine.Name) != 40 || cfg.Refresh.IntervalMs != 1 {
		t.Fatalf("Validate mutated the configuration")
	}

	Normalize(cfg)
	if len(cfg.Machine.Name) != dgus.MachineLen {
		t.Errorf("expected name truncated to %d, got %d", dgus.MachineLen, len(cfg.Machine.Name))
	}
	if cfg.Refresh.IntervalMs != minIntervalMs {
		t.Errorf("expected interval raised to %d, got %d", minIntervalMs, cfg.Refresh.IntervalMs)
	}
}

func TestNormalize_MachineFollowsFeatures(t *testing.T) {
	cfg := Default()
	cfg.Features.Extruders = 2
	cfg.Machine.Axes = nil

	Normalize(cfg)

	if cfg.Machine.Extruders != 2 {
		t.Errorf("expected 2 extruders, got %d", cfg.Machine.Extruders)
	}
	if cfg.Machine.Axes["x"].StepsPerMM != 80 {
		t.Errorf("expected default axes applied, got %+v", cfg.Machine.Axes)
	}
}

func TestDispatchOptions(t *testing.T) {
	cfg := Default()
	cfg.Refresh.StatusTimeoutMs = 1500
	cfg.Leveling.Points[4] = PointConfig{X: 100, Y: 120}

	opts := cfg.DispatchOptions()

	if opts.Features != dgus.DefaultFeatures() {
		t.Errorf("features: %+v", opts.Features)
	}
	if opts.Presets != dgus.DefaultPresets() || opts.Limits != dgus.DefaultLimits() {
		t.Errorf("presets or limits differ from the defaults")
	}
	if opts.Leveling.Points[4] != (dgus.Point{X: 100, Y: 120}) {
		t.Errorf("point 5: %+v", opts.Leveling.Points[4])
	}
	if opts.StatusTimeout != 1500*time.Millisecond || opts.SaveDelay != time.Second {
		t.Errorf("timeouts: %v %v", opts.StatusTimeout, opts.SaveDelay)
	}
	if cfg.Interval() != 250*time.Millisecond {
		t.Errorf("interval: %v", cfg.Interval())
	}
}
