package generate

import (
	"math"

	"github.com/ChicagoDave/roadgen/pkg/geo"
	"github.com/ChicagoDave/roadgen/pkg/prefab"
)

// obstacleOffsetFrac bounds the per-trial offset of obstacles within a segment.
const obstacleOffsetFrac = 0.45

// segmentCount returns how many segments the road is split into.
func (g *Generator) segmentCount(length float64) int {
	if g.cfg.SegmentsCount > 0 {
		return g.cfg.SegmentsCount
	}
	return max(1, int(math.Floor(length/math.Max(1e-4, g.cfg.SegmentLength))))
}

// segmentCenter returns the jittered centre distance of segment i.
func (g *Generator) segmentCenter(i, steps int, length float64) float64 {
	var base float64
	if g.cfg.SegmentsCount > 0 {
		base = float64(i) / float64(steps) * length
	} else {
		base = float64(i) * g.cfg.SegmentLength
	}
	jitter := g.cfg.SegmentJitter
	return geo.Clamp(base+g.uniform(-jitter, jitter), 0, length)
}

// obstacleTrials is the number of obstacle draws per segment.
func obstacleTrials(density float64) int {
	return 1 + int(math.Floor(1+density*2))
}

// placeSpawnables walks the road segment by segment and draws obstacles,
// pickup groups and decor by the active densities. Empty pools skip their
// category without consuming draws.
func (g *Generator) placeSpawnables() {
	length := g.curve.Length()
	steps := g.segmentCount(length)
	dens := g.densities()
	g.stats.Segments = steps

	hasObstacles := len(g.pools.Obstacles) > 0
	hasPickups := len(g.pools.Pickups) > 0
	hasDecor := len(g.pools.Decor) > 0

	for i := 0; i < steps; i++ {
		center := g.segmentCenter(i, steps, length)

		if hasObstacles {
			spread := g.cfg.SegmentLength * obstacleOffsetFrac
			for a := 0; a < obstacleTrials(dens.Obstacle); a++ {
				g.stats.trial(prefab.Obstacle)
				if !g.chance(dens.Obstacle) {
					continue
				}
				d := geo.Clamp(center+g.uniform(-spread, spread), 0, length)
				g.Resolve(d, prefab.Obstacle)
			}
		}

		if hasPickups {
			g.stats.trial(prefab.Pickup)
			if g.chance(dens.Pickup) {
				g.spawnCoinGroup(center)
			}
		}

		if hasDecor {
			g.stats.trial(prefab.Decor)
			if g.chance(dens.Decor) {
				g.Resolve(center, prefab.Decor)
			}
		}
	}
	g.log.Debug("spawnables placed", "segments", steps, "placed", g.stats.TotalPlaced())
}
