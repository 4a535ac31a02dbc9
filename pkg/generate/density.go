package generate

import "github.com/ChicagoDave/roadgen/pkg/config"

// Density presets. Pickups run inverse to difficulty.
var presets = map[config.Difficulty]config.Densities{
	config.DifficultyLow:    {Obstacle: 0.25, Pickup: 0.6, Decor: 0.5},
	config.DifficultyMedium: {Obstacle: 0.55, Pickup: 0.4, Decor: 0.7},
	config.DifficultyHigh:   {Obstacle: 0.85, Pickup: 0.25, Decor: 0.9},
}

// DensitiesFor returns the fixed preset for d. Unknown values use Medium.
func DensitiesFor(d config.Difficulty) config.Densities {
	if p, ok := presets[d]; ok {
		return p
	}
	return presets[config.DifficultyMedium]
}

// densities returns the override when configured, else the preset.
func (g *Generator) densities() config.Densities {
	if g.cfg.Densities != nil {
		return *g.cfg.Densities
	}
	return DensitiesFor(g.cfg.Difficulty)
}
