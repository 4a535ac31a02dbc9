package generate

import (
	"math"

	"github.com/ChicagoDave/roadgen/pkg/config"
	"github.com/ChicagoDave/roadgen/pkg/geo"
	"github.com/ChicagoDave/roadgen/pkg/prefab"
)

const (
	arcMinRadius  = 1.0
	arcRadiusFrac = 0.25
	arcSpanDeg    = 60.0
)

// CoinDistances returns the curve distances a coin group anchored at anchor
// expands to. Arc members are projected back onto the curve.
func (g *Generator) CoinDistances(anchor float64) []float64 {
	length := g.curve.Length()
	spacing := math.Max(1e-4, g.cfg.CoinSpacing)

	switch g.cfg.CoinPattern {
	case config.CoinLine:
		n := max(2, int(math.Floor(g.cfg.CoinLength/spacing)))
		out := make([]float64, n)
		mid := float64(n-1) / 2
		for k := range out {
			out[k] = geo.Clamp(anchor+(float64(k)-mid)*spacing, 0, length)
		}
		return out

	case config.CoinArc:
		n := max(3, int(math.Floor(g.cfg.CoinLength/spacing)))
		radius := math.Max(arcMinRadius, g.cfg.CoinLength*arcRadiusFrac)
		p := g.curve.PointAt(anchor)
		tangent := geo.SafeNormalize(g.curve.TangentAt(anchor))
		out := make([]float64, n)
		for k := range out {
			angle := geo.Lerp(-arcSpanDeg, arcSpanDeg, float64(k)/float64(n-1))
			dir := geo.YawRotation(angle).Rotate(tangent)
			out[k] = geo.NearestDistance(g.curve, p.Add(dir.Mul(radius)), g.cfg.SegmentLength)
		}
		return out

	default:
		return []float64{anchor}
	}
}

// spawnCoinGroup resolves every member of a coin group independently.
func (g *Generator) spawnCoinGroup(anchor float64) int {
	placed := 0
	for _, d := range g.CoinDistances(anchor) {
		if _, _, ok := g.Resolve(d, prefab.Pickup); ok {
			placed++
		}
	}
	return placed
}
