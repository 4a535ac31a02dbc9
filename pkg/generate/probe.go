package generate

import (
	"math"

	"github.com/ChicagoDave/roadgen/pkg/geo"
)

const (
	groundRayLift  = 10.0
	groundRayRange = 50.0
	alignRayLift   = 1.5
	alignRayRange  = 5.0
)

var down = geo.V3(0, -1, 0)

// groundY returns the surface height under p. Without a hit it falls back to
// the road's own elevation at the nearest point.
func (g *Generator) groundY(p geo.Vec3) float64 {
	if g.ground != nil {
		from := p.Add(geo.V3(0, groundRayLift, 0))
		if hit, ok := g.ground.Raycast(from, down, groundRayRange); ok {
			return hit.Point.Y()
		}
	}
	d := geo.NearestDistance(g.curve, p, g.cfg.SegmentLength)
	return g.curve.PointAt(d).Y()
}

// surfaceNormal casts a short ray down from above a pickup and returns the
// normal of whatever it hits.
func (g *Generator) surfaceNormal(p geo.Vec3, halfHeight float64) (geo.Vec3, bool) {
	if g.ground == nil {
		return geo.Vec3{}, false
	}
	from := p.Add(geo.V3(0, alignRayLift+halfHeight, 0))
	hit, ok := g.ground.Raycast(from, down, alignRayRange)
	if !ok {
		return geo.Vec3{}, false
	}
	return hit.Normal, true
}

// uniform draws from [lo, hi).
func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// chance is a Bernoulli trial succeeding with probability p.
func (g *Generator) chance(p float64) bool {
	return g.rng.Float64() < p
}

// frame returns the curve point, tangent and right vector at d.
func (g *Generator) frame(d float64) (center, tangent, right geo.Vec3) {
	center = g.curve.PointAt(d)
	tangent = geo.SafeNormalize(g.curve.TangentAt(d))
	right = geo.RightOf(tangent)
	return center, tangent, right
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
