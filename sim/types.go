// Package sim is a simulated printer behind the display handlers: a
// G-code queue executed over time, heaters, a print job and a media
// directory.
package sim

import "time"

// Position represents a position in machine coordinates
type Position struct {
	X float64
	Y float64
	Z float64
	E float64 // Extruder
}

// AxisConfig represents configuration for a single axis
type AxisConfig struct {
	StepsPerMM  float64 `yaml:"steps_per_mm"`
	MaxVelocity float64 `yaml:"max_velocity"` // mm/s
	MaxAccel    float64 `yaml:"max_accel"`    // mm/s^2
	Jerk        float64 `yaml:"jerk"`         // mm/s
	MinPosition float64 `yaml:"min_position"`
	MaxPosition float64 `yaml:"max_position"`
}

// HeaterConfig represents configuration for a heater
type HeaterConfig struct {
	PID     [3]float64 `yaml:"pid"` // Kp, Ki, Kd
	MaxTemp float64    `yaml:"max_temp"`
	// Seconds to close 63% of the gap to the target
	TimeConstant float64 `yaml:"time_constant"`
}

// MachineConfig represents the simulated machine
type MachineConfig struct {
	Name      string                  `yaml:"name"`
	Version   string                  `yaml:"version"`
	Axes      map[string]AxisConfig   `yaml:"axes"`    // "x", "y", "z", "e"
	Heaters   map[string]HeaterConfig `yaml:"heaters"` // "bed", "h0", "h1"
	Extruders int                     `yaml:"extruders"`

	DefaultVelocity   float64 `yaml:"default_velocity"` // mm/s
	DefaultAccel      float64 `yaml:"default_accel"`    // mm/s^2
	JunctionDeviation float64 `yaml:"junction_deviation"`
	LinearAdvance     float64 `yaml:"linear_advance"`
	Ambient           float64 `yaml:"ambient"` // °C

	HomingTime  time.Duration `yaml:"homing_time"`
	ProbeTime   time.Duration `yaml:"probe_time"` // per point
	JobDuration time.Duration `yaml:"job_duration"`
	JobFilament float64       `yaml:"job_filament"` // mm per finished job
}

// ApplyDefaults fills in missing configuration values
func (c *MachineConfig) ApplyDefaults() {
	def := DefaultMachineConfig()

	if c.Name == "" {
		c.Name = def.Name
	}
	if c.Version == "" {
		c.Version = def.Version
	}
	if c.Extruders < 1 {
		c.Extruders = 1
	}
	if c.DefaultVelocity == 0 {
		c.DefaultVelocity = def.DefaultVelocity
	}
	if c.DefaultAccel == 0 {
		c.DefaultAccel = def.DefaultAccel
	}
	if c.JunctionDeviation == 0 {
		c.JunctionDeviation = def.JunctionDeviation
	}
	if c.Ambient == 0 {
		c.Ambient = def.Ambient
	}
	if c.HomingTime == 0 {
		c.HomingTime = def.HomingTime
	}
	if c.ProbeTime == 0 {
		c.ProbeTime = def.ProbeTime
	}
	if c.JobDuration == 0 {
		c.JobDuration = def.JobDuration
	}
	if c.JobFilament == 0 {
		c.JobFilament = def.JobFilament
	}

	if c.Axes == nil {
		c.Axes = make(map[string]AxisConfig)
	}
	for name, d := range def.Axes {
		axis, ok := c.Axes[name]
		if !ok {
			c.Axes[name] = d
			continue
		}
		if axis.StepsPerMM == 0 {
			axis.StepsPerMM = d.StepsPerMM
		}
		if axis.MaxVelocity == 0 {
			axis.MaxVelocity = d.MaxVelocity
		}
		if axis.MaxAccel == 0 {
			axis.MaxAccel = d.MaxAccel
		}
		if axis.Jerk == 0 {
			axis.Jerk = d.Jerk
		}
		if axis.MaxPosition == 0 {
			axis.MaxPosition = d.MaxPosition
		}
		c.Axes[name] = axis
	}

	if c.Heaters == nil {
		c.Heaters = make(map[string]HeaterConfig)
	}
	for name, d := range def.Heaters {
		heater, ok := c.Heaters[name]
		if !ok {
			c.Heaters[name] = d
			continue
		}
		if heater.PID == [3]float64{} {
			heater.PID = d.PID
		}
		if heater.MaxTemp == 0 {
			heater.MaxTemp = d.MaxTemp
		}
		if heater.TimeConstant == 0 {
			heater.TimeConstant = d.TimeConstant
		}
		c.Heaters[name] = heater
	}
}

// DefaultMachineConfig returns a 220x220x250 single extruder cartesian printer
func DefaultMachineConfig() MachineConfig {
	return MachineConfig{
		Name:    "Gopher i3",
		Version: "2.1.2-sim",
		Axes: map[string]AxisConfig{
			"x": {StepsPerMM: 80, MaxVelocity: 300, MaxAccel: 3000, Jerk: 10, MaxPosition: 220},
			"y": {StepsPerMM: 80, MaxVelocity: 300, MaxAccel: 3000, Jerk: 10, MaxPosition: 220},
			"z": {StepsPerMM: 400, MaxVelocity: 10, MaxAccel: 100, Jerk: 0.4, MaxPosition: 250},
			"e": {StepsPerMM: 93, MaxVelocity: 50, MaxAccel: 5000, Jerk: 5, MaxPosition: 0},
		},
		Heaters: map[string]HeaterConfig{
			"bed": {PID: [3]float64{97.1, 1.41, 1675.16}, MaxTemp: 125, TimeConstant: 20},
			"h0":  {PID: [3]float64{21.73, 1.54, 76.55}, MaxTemp: 290, TimeConstant: 6},
			"h1":  {PID: [3]float64{21.73, 1.54, 76.55}, MaxTemp: 290, TimeConstant: 6},
		},
		Extruders:         1,
		DefaultVelocity:   50,
		DefaultAccel:      500,
		JunctionDeviation: 0.013,
		LinearAdvance:     0,
		Ambient:           25,
		HomingTime:        2 * time.Second,
		ProbeTime:         500 * time.Millisecond,
		JobDuration:       10 * time.Minute,
		JobFilament:       4200,
	}
}
