package config

import "sort"

var Presets = map[string]GridConfig{
	"default": DefaultGrid(),
	"calm": {
		CellSize: 16, MaxPixelRatio: 2, Radius: 45, Decay: 0.96,
		ScrambleChance: 0.05, FlickerChance: 0.0002, FlickerFloor: 0.25, Threshold: 0.05,
		Charset: "0123456789ABCDEF",
	},
	"storm": {
		CellSize: 12, MaxPixelRatio: 2, Radius: 90, Decay: 0.85,
		ScrambleChance: 0.4, FlickerChance: 0.004, FlickerFloor: 0.5, Threshold: 0.05,
		Charset: "0123456789ABCDEF<>/\\|{}[]()=+-*#$%&;:@!?^~",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *GridConfig {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
