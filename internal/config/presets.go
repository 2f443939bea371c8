package config

import "sort"

var Presets = map[string]*Config{
	"clock": {
		Charset: "numeric", MinWidth: 4, PadDirection: "left", StepMs: 120,
		Theme: "amber", FPS: 30,
	},
	"counter": {
		Charset: "numeric", MinWidth: 8, PadDirection: "left", StepMs: 60,
		Theme: "classic", FPS: 30,
	},
	"departures": {
		Charset: "departures", MinWidth: 12, PadDirection: "right", StepMs: 80,
		InitialValue: "ON TIME", Theme: "classic", FPS: 30,
	},
	"scoreboard": {
		Symbols: " 0123456789-:", MinWidth: 5, PadDirection: "left", StepMs: 150,
		InitialValue: "00-00", Theme: "retro", FPS: 30,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
