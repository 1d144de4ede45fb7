// Package config loads the bridge configuration: the serial link, the
// refresh cycle, the printer features the display may use and the
// simulated machine behind it.
package config

import (
	"time"

	"dgusbridge/dgus"
	"dgusbridge/sim"
)

type Config struct {
	Serial   SerialConfig   `yaml:"serial"`
	Refresh  RefreshConfig  `yaml:"refresh"`
	Features FeaturesConfig `yaml:"features"`
	Presets  PresetsConfig  `yaml:"presets"`
	Limits   LimitsConfig   `yaml:"limits"`
	Leveling LevelingConfig `yaml:"leveling"`
	Machine  MachineConfig  `yaml:"machine"`
}

// ---- SERIAL ----

type SerialConfig struct {
	Device        string `yaml:"device"`
	Baud          int    `yaml:"baud"`
	ReadTimeoutMs int    `yaml:"read_timeout_ms"`
	CRC           bool   `yaml:"crc"` // display firmware built with CRC checking
}

// ---- REFRESH ----

type RefreshConfig struct {
	IntervalMs      int `yaml:"interval_ms"`
	StatusTimeoutMs int `yaml:"status_timeout_ms"`
	SaveDelayMs     int `yaml:"save_delay_ms"`
}

// ---- FEATURES ----

type FeaturesConfig struct {
	SDSupport         bool `yaml:"sd_support"`
	Leveling          bool `yaml:"leveling"`
	MeshBedLeveling   bool `yaml:"mesh_bed_leveling"`
	BLTouch           bool `yaml:"bltouch"`
	PIDTemp           bool `yaml:"pid_temp"`
	PIDTempBed        bool `yaml:"pid_temp_bed"`
	PowerLossRecovery bool `yaml:"power_loss_recovery"`
	AdvancedPause     bool `yaml:"advanced_pause"`
	ClassicJerk       bool `yaml:"classic_jerk"`
	JunctionDeviation bool `yaml:"junction_deviation"`
	LinearAdvance     bool `yaml:"linear_advance"`
	Extruders         int  `yaml:"extruders"`
	Hotends           int  `yaml:"hotends"`
}

// ---- PRESETS ----

type TempPreset struct {
	Hotend int16 `yaml:"hotend"`
	Bed    int16 `yaml:"bed"`
}

type PresetsConfig struct {
	PLA  TempPreset `yaml:"pla"`
	ABS  TempPreset `yaml:"abs"`
	PETG TempPreset `yaml:"petg"`
}

// ---- LIMITS ----

type LimitsConfig struct {
	ExtrudeMinTemp   float64 `yaml:"extrude_min_temp"`
	ExtrudeMaxLength uint16  `yaml:"extrude_max_length"`
	BedMinTemp       int16   `yaml:"bed_min_temp"`
	BedMaxTarget     int16   `yaml:"bed_max_target"`
	HotendMinTemp    int16   `yaml:"hotend_min_temp"`
	HotendMaxTemp    int16   `yaml:"hotend_max_temp"`
	HotendOvershoot  int16   `yaml:"hotend_overshoot"`
	BabystepMM       float64 `yaml:"babystep_mm"`
}

// ---- LEVELING ----

type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type LevelingConfig struct {
	Points      []PointConfig `yaml:"points"` // manual leveling points 1-5
	ZTravel     float64       `yaml:"z_travel"`
	ZPoint      float64       `yaml:"z_point"`
	TravelSpeed float64       `yaml:"travel_speed"` // mm/min
	ZSpeed      float64       `yaml:"z_speed"`      // mm/min
}

// ---- MACHINE ----

// MachineConfig is the simulated printer plus where it keeps its files.
type MachineConfig struct {
	MediaRoot         string `yaml:"media_root"`
	SettingsPath      string `yaml:"settings_path"`
	sim.MachineConfig `yaml:",inline"`
}

// Default returns a configuration for a single extruder printer with SD,
// a BLTouch and power-loss recovery, on /dev/ttyUSB0 at 115200.
func Default() *Config {
	f := dgus.DefaultFeatures()
	p := dgus.DefaultPresets()
	l := dgus.DefaultLimits()
	lv := dgus.DefaultLeveling()

	points := make([]PointConfig, len(lv.Points))
	for i, pt := range lv.Points {
		points[i] = PointConfig{X: pt.X, Y: pt.Y}
	}

	return &Config{
		Serial: SerialConfig{
			Device:        "/dev/ttyUSB0",
			Baud:          115200,
			ReadTimeoutMs: 100,
		},
		Refresh: RefreshConfig{
			IntervalMs:      250,
			StatusTimeoutMs: 3000,
			SaveDelayMs:     1000,
		},
		Features: FeaturesConfig{
			SDSupport:         f.SDSupport,
			Leveling:          f.Leveling,
			MeshBedLeveling:   f.MeshBedLeveling,
			BLTouch:           f.BLTouch,
			PIDTemp:           f.PIDTemp,
			PIDTempBed:        f.PIDTempBed,
			PowerLossRecovery: f.PowerLossRecovery,
			AdvancedPause:     f.AdvancedPause,
			ClassicJerk:       f.ClassicJerk,
			JunctionDeviation: f.JunctionDeviation,
			LinearAdvance:     f.LinearAdvance,
			Extruders:         f.Extruders,
			Hotends:           f.Hotends,
		},
		Presets: PresetsConfig{
			PLA:  TempPreset(p.PLA),
			ABS:  TempPreset(p.ABS),
			PETG: TempPreset(p.PETG),
		},
		Limits: LimitsConfig(l),
		Leveling: LevelingConfig{
			Points:      points,
			ZTravel:     lv.ZTravel,
			ZPoint:      lv.ZPoint,
			TravelSpeed: lv.TravelSpeed,
			ZSpeed:      lv.ZSpeed,
		},
		Machine: MachineConfig{
			MediaRoot:     "media",
			SettingsPath:  "settings.yaml",
			MachineConfig: sim.DefaultMachineConfig(),
		},
	}
}

// DgusFeatures converts the features section.
func (c *Config) DgusFeatures() dgus.Features {
	f := c.Features
	return dgus.Features{
		SDSupport:         f.SDSupport,
		Leveling:          f.Leveling,
		MeshBedLeveling:   f.MeshBedLeveling,
		BLTouch:           f.BLTouch,
		PIDTemp:           f.PIDTemp,
		PIDTempBed:        f.PIDTempBed,
		PowerLossRecovery: f.PowerLossRecovery,
		AdvancedPause:     f.AdvancedPause,
		ClassicJerk:       f.ClassicJerk,
		JunctionDeviation: f.JunctionDeviation,
		LinearAdvance:     f.LinearAdvance,
		Extruders:         f.Extruders,
		Hotends:           f.Hotends,
	}
}

// DispatchOptions returns the dispatcher options the configuration
// decides. The caller supplies the machine, display, settings and media.
func (c *Config) DispatchOptions() dgus.Options {
	var leveling dgus.Leveling
	for i := 0; i < len(leveling.Points) && i < len(c.Leveling.Points); i++ {
		leveling.Points[i] = dgus.Point(c.Leveling.Points[i])
	}
	leveling.ZTravel = c.Leveling.ZTravel
	leveling.ZPoint = c.Leveling.ZPoint
	leveling.TravelSpeed = c.Leveling.TravelSpeed
	leveling.ZSpeed = c.Leveling.ZSpeed

	return dgus.Options{
		Features: c.DgusFeatures(),
		Presets: dgus.Presets{
			PLA:  dgus.TempPair(c.Presets.PLA),
			ABS:  dgus.TempPair(c.Presets.ABS),
			PETG: dgus.TempPair(c.Presets.PETG),
		},
		Limits:        dgus.Limits(c.Limits),
		Leveling:      leveling,
		StatusTimeout: c.StatusTimeout(),
		SaveDelay:     time.Duration(c.Refresh.SaveDelayMs) * time.Millisecond,
	}
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.Refresh.IntervalMs) * time.Millisecond
}

func (c *Config) StatusTimeout() time.Duration {
	return time.Duration(c.Refresh.StatusTimeoutMs) * time.Millisecond
}

func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Serial.ReadTimeoutMs) * time.Millisecond
}
