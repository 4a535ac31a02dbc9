package geo

import (
	"math"
	"sort"
)

// Curve is an arc-length parametrized road path.
type Curve interface {
	// Length returns the total arc length.
	Length() float64
	// PointAt returns the point at distance d along the curve, d in [0, Length].
	PointAt(d float64) Vec3
	// TangentAt returns the unit direction of travel at distance d.
	TangentAt(d float64) Vec3
}

// Polyline3 is an ordered sequence of 3D points forming a path.
type Polyline3 struct {
	Points []Vec3
	cum    []float64
}

// NewPolyline3 creates a polyline from a list of points, dropping consecutive
// duplicates so every segment has non-zero length.
func NewPolyline3(pts ...Vec3) *Polyline3 {
	clean := make([]Vec3, 0, len(pts))
	for _, p := range pts {
		if len(clean) > 0 && clean[len(clean)-1].Sub(p).Len() < 1e-9 {
			continue
		}
		clean = append(clean, p)
	}
	pl := &Polyline3{Points: clean, cum: make([]float64, len(clean))}
	for i := 1; i < len(clean); i++ {
		pl.cum[i] = pl.cum[i-1] + clean[i].Sub(clean[i-1]).Len()
	}
	return pl
}

// Length returns the total arc length of the polyline.
func (pl *Polyline3) Length() float64 {
	if len(pl.cum) == 0 {
		return 0
	}
	return pl.cum[len(pl.cum)-1]
}

// segmentAt returns the index i of the segment [i, i+1] containing distance d
// and the fraction along it.
func (pl *Polyline3) segmentAt(d float64) (int, float64) {
	n := len(pl.Points)
	d = Clamp(d, 0, pl.Length())
	i := sort.SearchFloat64s(pl.cum, d)
	if i >= n {
		i = n - 1
	}
	if i > 0 {
		i--
	}
	if i >= n-1 {
		i = n - 2
	}
	segLen := pl.cum[i+1] - pl.cum[i]
	frac := 0.0
	if segLen > 0 {
		frac = (d - pl.cum[i]) / segLen
	}
	return i, Clamp(frac, 0, 1)
}

// PointAt returns the point at distance d along the polyline.
func (pl *Polyline3) PointAt(d float64) Vec3 {
	switch len(pl.Points) {
	case 0:
		return Vec3{}
	case 1:
		return pl.Points[0]
	}
	i, frac := pl.segmentAt(d)
	a, b := pl.Points[i], pl.Points[i+1]
	return a.Add(b.Sub(a).Mul(frac))
}

// TangentAt returns the unit direction of the segment containing d.
func (pl *Polyline3) TangentAt(d float64) Vec3 {
	if len(pl.Points) < 2 {
		return Vec3{0, 0, 1}
	}
	i, _ := pl.segmentAt(d)
	return SafeNormalize(pl.Points[i+1].Sub(pl.Points[i]))
}

// CatmullRom3 evaluates a Catmull-Rom spline through the given control
// points. It generates samplesPerSegment intermediate points per segment.
// Tension controls tightness (0.5 = centripetal, 0.0 = uniform).
func CatmullRom3(controlPoints []Vec3, samplesPerSegment int, tension float64) *Polyline3 {
	n := len(controlPoints)
	if n < 2 {
		return NewPolyline3(controlPoints...)
	}
	if samplesPerSegment < 1 {
		samplesPerSegment = 1
	}
	if n == 2 {
		// Degenerate: linear interpolation.
		pts := make([]Vec3, samplesPerSegment+1)
		for i := 0; i <= samplesPerSegment; i++ {
			t := float64(i) / float64(samplesPerSegment)
			pts[i] = controlPoints[0].Add(controlPoints[1].Sub(controlPoints[0]).Mul(t))
		}
		return NewPolyline3(pts...)
	}

	// Phantom endpoints reflect the first and last segments.
	extended := make([]Vec3, n+2)
	extended[0] = controlPoints[0].Add(controlPoints[0].Sub(controlPoints[1]))
	copy(extended[1:], controlPoints)
	extended[n+1] = controlPoints[n-1].Add(controlPoints[n-1].Sub(controlPoints[n-2]))

	var pts []Vec3
	for i := 1; i < n; i++ {
		p0, p1, p2, p3 := extended[i-1], extended[i], extended[i+1], extended[i+2]
		for j := 0; j < samplesPerSegment; j++ {
			t := float64(j) / float64(samplesPerSegment)
			pts = append(pts, catmullRomPoint(p0, p1, p2, p3, t, tension))
		}
	}
	pts = append(pts, controlPoints[n-1])

	return NewPolyline3(pts...)
}

// catmullRomPoint evaluates a single point on a Catmull-Rom spline segment.
func catmullRomPoint(p0, p1, p2, p3 Vec3, t, s float64) Vec3 {
	t2 := t * t
	t3 := t2 * t
	var out Vec3
	for k := 0; k < 3; k++ {
		out[k] = 0.5 * ((-s*p0[k]+(2-s)*p1[k]+(s-2)*p2[k]+s*p3[k])*t3 +
			(2*s*p0[k]+(s-3)*p1[k]+(3-2*s)*p2[k]-s*p3[k])*t2 +
			(-s*p0[k]+s*p2[k])*t +
			2*p1[k])
	}
	return out
}

// nearestRefineRounds is the number of ternary-search rounds after the coarse scan.
const nearestRefineRounds = 6

// NearestDistance returns the distance along c whose point is closest to p.
// A coarse scan at step resolution (at least 0.5) brackets the minimum, then
// ternary search refines it.
func NearestDistance(c Curve, p Vec3, step float64) float64 {
	length := c.Length()
	if length <= 0 {
		return 0
	}
	step = math.Max(0.5, step)

	best := 0.0
	bestSqr := p.Sub(c.PointAt(0)).LenSqr()
	for d := step; d <= length; d += step {
		if sq := p.Sub(c.PointAt(d)).LenSqr(); sq < bestSqr {
			bestSqr, best = sq, d
		}
	}
	if sq := p.Sub(c.PointAt(length)).LenSqr(); sq < bestSqr {
		best = length
	}

	low := math.Max(0, best-step)
	high := math.Min(length, best+step)
	for i := 0; i < nearestRefineRounds; i++ {
		m1 := Lerp(low, high, 0.33)
		m2 := Lerp(low, high, 0.66)
		s1 := p.Sub(c.PointAt(m1)).LenSqr()
		s2 := p.Sub(c.PointAt(m2)).LenSqr()
		if s1 < s2 {
			high = m2
		} else {
			low = m1
		}
	}
	return Clamp((low+high)*0.5, 0, length)
}

// LateralOffset returns the signed distance of p from the curve centre at d,
// measured along the right vector (positive = right of travel).
func LateralOffset(c Curve, d float64, p Vec3) float64 {
	center := c.PointAt(d)
	return p.Sub(center).Dot(RightOf(c.TangentAt(d)))
}
