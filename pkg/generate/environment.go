package generate

import (
	"math"

	"github.com/ChicagoDave/roadgen/pkg/geo"
	"github.com/ChicagoDave/roadgen/pkg/placement"
	"github.com/ChicagoDave/roadgen/pkg/prefab"
	"github.com/ChicagoDave/roadgen/pkg/scene"
)

const minEnvSpacing = 0.5

// placeEnvironment scatters decor in a band beyond each road edge and,
// optionally, hangs pieces below the road surface. It draws from the decor
// pool and goes through the same gate as every other spawnable.
func (g *Generator) placeEnvironment() {
	if len(g.pools.Decor) == 0 {
		return
	}
	length := g.curve.Length()
	halfW := g.cfg.HalfWidth()
	step := math.Max(minEnvSpacing, g.env.Spacing)

	placed := 0
	for d := 0.0; d <= length; d += step {
		center, tangent, right := g.frame(d)
		for _, sign := range []float64{-1, 1} {
			g.stats.trial(prefab.Decor)
			if !g.chance(g.env.Density) {
				continue
			}
			g.stats.attempt(prefab.Decor)
			tpl := g.pools.Pick(g.rng, prefab.Decor)
			r := prefab.FootprintRadius(tpl, g.cfg.DecorRadius)
			lateral := sign * (halfW + r + g.env.BandOffset + g.uniform(0, g.env.BandWidth))
			pos := center.Add(right.Mul(lateral))
			pos = geo.WithY(pos, g.groundY(pos)+groundSkin)

			if reason := g.gate.Check(pos, r); reason != placement.ReasonNone {
				g.stats.reject(prefab.Decor, reason)
				continue
			}
			rot := geo.LookRotation(tangent, geo.Up).Mul(geo.YawRotation(g.uniform(-180, 180)))
			g.commit(&Placement{
				Template: tpl,
				Category: prefab.Decor,
				Distance: d,
				Position: pos,
				Rotation: rot.Normalize(),
				Radius:   r,
				Lateral:  lateral,
			}, scene.Decor)
			g.stats.placed(prefab.Decor)
			placed++
		}
	}

	if g.env.UnderRoad {
		placed += g.placeUnderRoad(length)
	}
	g.log.Debug("environment placed", "count", placed)
}

// placeUnderRoad hangs decor below the road centre line. These pieces sit
// beneath the drivable surface so they bypass the spacing registry.
func (g *Generator) placeUnderRoad(length float64) int {
	step := math.Max(minEnvSpacing, g.env.UnderRoadSpacing)
	n := 0
	for d := 0.0; d <= length; d += step {
		center, tangent, _ := g.frame(d)
		tpl := g.pools.Pick(g.rng, prefab.Decor)
		pos := center.Sub(geo.Up.Mul(g.env.UnderRoadDepth))
		node := nodeFor(tpl, prefab.Decor, pos, geo.LookRotation(tangent, geo.Up), d)
		g.backend.Instantiate(g.graph, scene.Decor, node)
		n++
	}
	return n
}
