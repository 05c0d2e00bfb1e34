package config

import (
	"math"
	"sort"

	"github.com/san-kum/vlasov/internal/loading"
)

var Presets = map[string]*Config{
	"free-streaming": DefaultConfig(),
	"fine": {
		Grid:      GridConfig{Cells: 256, XMin: 0, XMax: 2 * math.Pi},
		Time:      TimeConfig{Dt: 0.025, Steps: 400, PrintEvery: 40},
		Loading:   loading.Params{PerCell: 128, VThermal: 1.0, Epsilon: 0.1, K: 1.0},
		Execution: ExecutionConfig{Workers: 0},
	},
	"strong": {
		Grid:      GridConfig{Cells: 64, XMin: 0, XMax: 2 * math.Pi},
		Time:      TimeConfig{Dt: 0.1, Steps: 200, PrintEvery: 20},
		Loading:   loading.Params{PerCell: 32, VThermal: 1.0, Epsilon: 0.5, K: 2.0},
		Execution: ExecutionConfig{Workers: 1},
	},
	"cold": {
		Grid:      GridConfig{Cells: 64, XMin: 0, XMax: 2 * math.Pi},
		Time:      TimeConfig{Dt: 0.1, Steps: 300, PrintEvery: 30},
		Loading:   loading.Params{PerCell: 16, VThermal: 0.2, Epsilon: 0.3, K: 1.0},
		Execution: ExecutionConfig{Workers: 1},
	},
	"drift": {
		Grid:         GridConfig{Cells: 64, XMin: -math.Pi, XMax: math.Pi},
		Time:         TimeConfig{Dt: 0.05, Steps: 200, PrintEvery: 20},
		Loading:      loading.Params{PerCell: 32, VThermal: 1.0, Epsilon: 0.1, K: 1.0},
		Acceleration: 0.5,
		Execution:    ExecutionConfig{Workers: 1},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
