package config

import (
	"sort"

	"github.com/san-kum/limbshift/internal/trial"
)

// Preset is a ready-made trial with its target selection.
type Preset struct {
	Selection trial.Selection
	Trial     trial.Trial
}

var Presets = map[string]Preset{
	"congruent": {
		Selection: trial.Selection{Hand: trial.HandMM, Elbow: trial.ElbowMMMP},
		Trial:     trial.Trial{Condition: trial.Congruent},
	},
	"shorten-proximal": {
		Selection: trial.Selection{Hand: trial.HandPP, Elbow: trial.ElbowPMPP},
		Trial:     trial.Trial{Condition: trial.Shortened, ShoulderAngleOffset: 10, ElbowAngleOffset: 15},
	},
	"shorten-distal": {
		Selection: trial.Selection{Hand: trial.HandMP, Elbow: trial.ElbowMMMP},
		Trial:     trial.Trial{Condition: trial.Shortened, ShoulderAngleOffset: 10, ElbowAngleOffset: 15},
	},
	"lengthen-distal": {
		Selection: trial.Selection{Hand: trial.HandMM, Elbow: trial.ElbowMMMP},
		Trial:     trial.Trial{Condition: trial.Lengthened, ShoulderAngleOffset: 10, ElbowAngleOffset: 15},
	},
	"lengthen-proximal": {
		Selection: trial.Selection{Hand: trial.HandPM, Elbow: trial.ElbowPMPP},
		Trial:     trial.Trial{Condition: trial.Lengthened, ShoulderAngleOffset: 10, ElbowAngleOffset: 15},
	},
	"large-shorten": {
		Selection: trial.Selection{Hand: trial.HandPP, Elbow: trial.ElbowPMPP},
		Trial:     trial.Trial{Condition: trial.Shortened, ShoulderAngleOffset: 25, ElbowAngleOffset: 30},
	},
	"right-only": {
		Selection: trial.Selection{Hand: trial.HandPM, Elbow: trial.ElbowR},
		Trial:     trial.Trial{Condition: trial.Lengthened, ShoulderAngleOffset: 10, ElbowAngleOffset: 15},
	},
}

func GetPreset(name string) (Preset, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
