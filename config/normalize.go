package config

import "dgusbridge/dgus"

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// The simulated machine carries exactly the extruders the display
	// is configured for.
	cfg.Machine.Extruders = cfg.Features.Extruders
	cfg.Machine.ApplyDefaults()

	// Identity strings are fixed-width fields on the info page
	if len(cfg.Machine.Name) > dgus.MachineLen {
		cfg.Machine.Name = cfg.Machine.Name[:dgus.MachineLen]
	}
	if len(cfg.Machine.Version) > dgus.VersionLen {
		cfg.Machine.Version = cfg.Machine.Version[:dgus.VersionLen]
	}

	// The display cannot keep up with refresh faster than this
	if cfg.Refresh.IntervalMs < minIntervalMs {
		cfg.Refresh.IntervalMs = minIntervalMs
	}
}

const minIntervalMs = 20
