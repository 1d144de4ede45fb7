package sim

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"dgusbridge/dgus"
)

// settingsFile is the on-disk form of the persisted settings
type settingsFile struct {
	Params   map[string]float64    `yaml:"params"`
	ZOffset  float64               `yaml:"z_offset"`
	Runout   bool                  `yaml:"runout"`
	PID      map[string][3]float64 `yaml:"pid,omitempty"`
	Mesh     [][]float64           `yaml:"mesh,omitempty"`
	Display  displaySettings       `yaml:"display"`
	Stats    statsFile             `yaml:"stats"`
	Recovery *Recovery             `yaml:"recovery,omitempty"`
}

type displaySettings struct {
	Volume     uint8 `yaml:"volume"`
	Brightness uint8 `yaml:"brightness"`
}

type statsFile struct {
	TotalPrints    uint16        `yaml:"total_prints"`
	FinishedPrints uint16        `yaml:"finished_prints"`
	PrintTime      time.Duration `yaml:"print_time"`
	LongestPrint   time.Duration `yaml:"longest_print"`
	FilamentUsed   float64       `yaml:"filament_used"`
}

// Store persists the printer tunables and the display settings to a YAML
// file. It implements dgus.Settings.
type Store struct {
	path    string
	printer *Printer
	ui      *dgus.UIContext
}

var _ dgus.Settings = (*Store)(nil)

// NewStore binds a store at path to p and connects p's M500-M502.
func NewStore(path string, p *Printer) *Store {
	s := &Store{path: path, printer: p}
	p.SetSettings(s)
	return s
}

// AttachUI includes the display volume and brightness in the settings.
func (s *Store) AttachUI(ui *dgus.UIContext) {
	s.ui = ui
}

// Path returns the settings file
func (s *Store) Path() string {
	return s.path
}

// Reset restores the defaults in memory; the file is unchanged until Save.
func (s *Store) Reset() error {
	s.printer.ResetParams()
	s.printer.runout = true
	if s.ui != nil {
		s.ui.Volume = 50
		s.ui.Brightness = 100
	}
	return nil
}

// Load reads the settings file. A missing file resets to defaults.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.Reset()
	}
	if err != nil {
		return fmt.Errorf("settings load: %w", err)
	}

	var f settingsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("settings load %s: %w", s.path, err)
	}
	s.apply(&f)
	return nil
}

// Save writes the settings atomically (temp file + rename).
func (s *Store) Save() error {
	data, err := yaml.Marshal(s.snapshot())
	if err != nil {
		return fmt.Errorf("settings save: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".settings-*")
	if err != nil {
		return fmt.Errorf("settings save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("settings save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("settings save: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("settings save: %w", err)
	}
	return nil
}

func (s *Store) snapshot() *settingsFile {
	p := s.printer
	f := &settingsFile{
		Params:   make(map[string]float64, dgus.NumParams),
		ZOffset:  p.zOffset,
		Runout:   p.runout,
		PID:      make(map[string][3]float64, numHeater),
		Recovery: p.recovery,
		Stats: statsFile{
			TotalPrints:    p.stats.TotalPrints,
			FinishedPrints: p.stats.FinishedPrints,
			PrintTime:      p.stats.PrintTime,
			LongestPrint:   p.stats.LongestPrint,
			FilamentUsed:   p.stats.FilamentUsed,
		},
	}
	for i := dgus.Param(0); i < dgus.NumParams; i++ {
		f.Params[i.String()] = p.params[i]
	}
	for i, name := range heaterNames {
		f.PID[name] = p.heaters[i].pid
	}
	for _, row := range p.mesh {
		f.Mesh = append(f.Mesh, append([]float64(nil), row[:]...))
	}
	if s.ui != nil {
		f.Display = displaySettings{Volume: s.ui.Volume, Brightness: s.ui.Brightness}
	}
	return f
}

func (s *Store) apply(f *settingsFile) {
	p := s.printer
	for name, v := range f.Params {
		if param, ok := dgus.ParseParam(name); ok {
			p.params[param] = v
		}
	}
	p.zOffset = f.ZOffset
	p.runout = f.Runout
	for i, name := range heaterNames {
		if pid, ok := f.PID[name]; ok {
			p.heaters[i].pid = pid
		}
	}
	for y := 0; y < len(f.Mesh) && y < dgus.GridPointsX; y++ {
		copy(p.mesh[y][:], f.Mesh[y])
	}
	p.stats = dgus.PrintStats{
		TotalPrints:    f.Stats.TotalPrints,
		FinishedPrints: f.Stats.FinishedPrints,
		PrintTime:      f.Stats.PrintTime,
		LongestPrint:   f.Stats.LongestPrint,
		FilamentUsed:   f.Stats.FilamentUsed,
	}
	p.recovery = f.Recovery
	if s.ui != nil && f.Display.Brightness > 0 {
		s.ui.Volume = min(f.Display.Volume, 100)
		s.ui.Brightness = min(f.Display.Brightness, 100)
	}
}
