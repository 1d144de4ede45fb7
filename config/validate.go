package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	// ------------------------------------------------------------
	// SERIAL LINK
	// ------------------------------------------------------------

	if cfg.Serial.Device == "" {
		return fmt.Errorf("serial: device is required")
	}
	if cfg.Serial.Baud <= 0 {
		return fmt.Errorf("serial: baud must be positive, got %d", cfg.Serial.Baud)
	}
	if cfg.Serial.ReadTimeoutMs < 0 {
		return fmt.Errorf("serial: read_timeout_ms must not be negative")
	}

	// ------------------------------------------------------------
	// REFRESH CYCLE
	// ------------------------------------------------------------

	if cfg.Refresh.IntervalMs <= 0 {
		return fmt.Errorf("refresh: interval_ms must be positive, got %d", cfg.Refresh.IntervalMs)
	}
	if cfg.Refresh.StatusTimeoutMs < 0 || cfg.Refresh.SaveDelayMs < 0 {
		return fmt.Errorf("refresh: timeouts must not be negative")
	}

	// ------------------------------------------------------------
	// FEATURES
	// ------------------------------------------------------------

	f := cfg.Features
	if f.Extruders < 1 || f.Extruders > 2 {
		return fmt.Errorf("features: extruders must be 1 or 2, got %d", f.Extruders)
	}
	if f.Hotends < 1 || f.Hotends > f.Extruders {
		return fmt.Errorf("features: hotends must be between 1 and extruders (%d), got %d", f.Extruders, f.Hotends)
	}
	if f.BLTouch && !f.Leveling {
		return fmt.Errorf("features: bltouch requires leveling")
	}
	if f.ClassicJerk && f.JunctionDeviation {
		return fmt.Errorf("features: classic_jerk and junction_deviation are exclusive")
	}

	// ------------------------------------------------------------
	// LIMITS
	// ------------------------------------------------------------

	l := cfg.Limits
	if l.BedMinTemp < 0 || l.BedMinTemp >= l.BedMaxTarget {
		return fmt.Errorf("limits: bed_min_temp %d must be below bed_max_target %d", l.BedMinTemp, l.BedMaxTarget)
	}
	if l.HotendMinTemp < 0 || l.HotendMinTemp >= l.HotendMaxTemp-l.HotendOvershoot {
		return fmt.Errorf(
			"limits: hotend_min_temp %d must be below hotend_max_temp %d minus hotend_overshoot %d",
			l.HotendMinTemp,
			l.HotendMaxTemp,
			l.HotendOvershoot,
		)
	}
	if l.HotendOvershoot < 0 {
		return fmt.Errorf("limits: hotend_overshoot must not be negative")
	}
	if l.ExtrudeMinTemp < 0 || l.ExtrudeMaxLength == 0 {
		return fmt.Errorf("limits: extrude_min_temp must not be negative and extrude_max_length must be positive")
	}
	if l.BabystepMM <= 0 || l.BabystepMM > 1 {
		return fmt.Errorf("limits: babystep_mm must be in (0, 1], got %g", l.BabystepMM)
	}

	// ------------------------------------------------------------
	// PRESETS (within limits)
	// ------------------------------------------------------------

	presets := []struct {
		name string
		p    TempPreset
	}{
		{"pla", cfg.Presets.PLA},
		{"abs", cfg.Presets.ABS},
		{"petg", cfg.Presets.PETG},
	}
	for _, ps := range presets {
		if ps.p.Hotend < 0 || ps.p.Hotend > l.HotendMaxTemp-l.HotendOvershoot {
			return fmt.Errorf("presets: %s hotend %d exceeds %d", ps.name, ps.p.Hotend, l.HotendMaxTemp-l.HotendOvershoot)
		}
		if ps.p.Bed < 0 || ps.p.Bed > l.BedMaxTarget {
			return fmt.Errorf("presets: %s bed %d exceeds %d", ps.name, ps.p.Bed, l.BedMaxTarget)
		}
	}

	// ------------------------------------------------------------
	// LEVELING POINTS (inside the bed when the axes are configured)
	// ------------------------------------------------------------

	lv := cfg.Leveling
	if len(lv.Points) != 5 {
		return fmt.Errorf("leveling: exactly 5 points are required, got %d", len(lv.Points))
	}
	if lv.TravelSpeed <= 0 || lv.ZSpeed <= 0 {
		return fmt.Errorf("leveling: travel_speed and z_speed must be positive")
	}
	if lv.ZTravel < lv.ZPoint {
		return fmt.Errorf("leveling: z_travel %g is below z_point %g", lv.ZTravel, lv.ZPoint)
	}
	xAxis, hasX := cfg.Machine.Axes["x"]
	yAxis, hasY := cfg.Machine.Axes["y"]
	for i, p := range lv.Points {
		if p.X < 0 || p.Y < 0 {
			return fmt.Errorf("leveling: point %d (%g, %g) is negative", i+1, p.X, p.Y)
		}
		if hasX && xAxis.MaxPosition > 0 && p.X > xAxis.MaxPosition {
			return fmt.Errorf("leveling: point %d x %g is outside the bed (%g)", i+1, p.X, xAxis.MaxPosition)
		}
		if hasY && yAxis.MaxPosition > 0 && p.Y > yAxis.MaxPosition {
			return fmt.Errorf("leveling: point %d y %g is outside the bed (%g)", i+1, p.Y, yAxis.MaxPosition)
		}
	}

	// ------------------------------------------------------------
	// SIMULATED MACHINE
	// ------------------------------------------------------------

	for name := range cfg.Machine.Axes {
		switch name {
		case "x", "y", "z", "e":
		default:
			return fmt.Errorf("machine: unknown axis %q", name)
		}
	}
	for name, h := range cfg.Machine.Heaters {
		switch name {
		case "bed", "h0", "h1":
		default:
			return fmt.Errorf("machine: unknown heater %q", name)
		}
		if h.MaxTemp < 0 || h.TimeConstant < 0 {
			return fmt.Errorf("machine: heater %q: max_temp and time_constant must not be negative", name)
		}
	}
	if cfg.Machine.SettingsPath == "" {
		return fmt.Errorf("machine: settings_path is required")
	}

	return nil
}
