// Package collide provides the ground-height and spatial-overlap queries the
// level generator consumes, plus an in-memory World implementing both.
package collide

import (
	"math"

	"github.com/ChicagoDave/roadgen/pkg/geo"
)

// LayerMask selects collider layers (bit i = layer i).
type LayerMask uint32

// AllLayers matches every layer.
const AllLayers LayerMask = ^LayerMask(0)

// Has reports whether layer is selected by the mask.
func (m LayerMask) Has(layer int) bool {
	if layer < 0 || layer > 31 {
		return false
	}
	return m&(1<<uint(layer)) != 0
}

// Hit is the result of a successful raycast.
type Hit struct {
	Point    geo.Vec3
	Normal   geo.Vec3
	Distance float64
}

// Raycaster answers "what surface is along this ray".
type Raycaster interface {
	Raycast(origin, dir geo.Vec3, maxDist float64) (Hit, bool)
}

// Overlapper answers "is this volume occupied". It returns the number of
// non-trigger colliders on mask layers intersecting the sphere.
type Overlapper interface {
	OverlapSphere(center geo.Vec3, radius float64, mask LayerMask) int
}

// Plane is a ground surface. When Bounds is set the plane only exists inside
// its XZ rectangle.
type Plane struct {
	Point  geo.Vec3
	Normal geo.Vec3
	// Bounds limits the surface in XZ; Y is ignored. Zero value = infinite.
	Bounds geo.AABB
}

// ShapeKind identifies a collider shape.
type ShapeKind string

const (
	ShapeBox    ShapeKind = "box"
	ShapeSphere ShapeKind = "sphere"
)

// Collider is a static volume the overlap query can see.
type Collider struct {
	Name    string
	Shape   ShapeKind
	Box     geo.AABB
	Center  geo.Vec3
	Radius  float64
	Layer   int
	Trigger bool
}

// World is a static collection of ground surfaces and colliders.
type World struct {
	Planes    []Plane
	Colliders []Collider
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{}
}

// FlatGround returns a world with a single infinite horizontal plane at height y.
func FlatGround(y float64) *World {
	w := NewWorld()
	w.AddPlane(Plane{Point: geo.V3(0, y, 0), Normal: geo.Up})
	return w
}

// AddPlane appends a surface. The normal is normalized.
func (w *World) AddPlane(p Plane) {
	p.Normal = geo.SafeNormalize(p.Normal)
	if p.Normal.Len() == 0 {
		p.Normal = geo.Up
	}
	w.Planes = append(w.Planes, p)
}

// AddCollider appends a static collider.
func (w *World) AddCollider(c Collider) {
	if c.Shape == "" {
		c.Shape = ShapeBox
	}
	w.Colliders = append(w.Colliders, c)
}

// Raycast returns the nearest plane hit along the ray within maxDist. Box
// colliders that are not triggers also block rays via their top face.
func (w *World) Raycast(origin, dir geo.Vec3, maxDist float64) (Hit, bool) {
	dir = geo.SafeNormalize(dir)
	if dir.Len() == 0 || maxDist <= 0 {
		return Hit{}, false
	}

	best := Hit{Distance: math.Inf(1)}
	found := false

	for _, p := range w.Planes {
		denom := p.Normal.Dot(dir)
		if math.Abs(denom) < 1e-9 {
			continue
		}
		t := p.Point.Sub(origin).Dot(p.Normal) / denom
		if t < 0 || t > maxDist || t >= best.Distance {
			continue
		}
		pt := origin.Add(dir.Mul(t))
		if !p.Bounds.IsZero() && !insideXZ(p.Bounds, pt) {
			continue
		}
		normal := p.Normal
		if denom > 0 {
			normal = normal.Mul(-1)
		}
		best = Hit{Point: pt, Normal: normal, Distance: t}
		found = true
	}

	for _, c := range w.Colliders {
		if c.Trigger || c.Shape != ShapeBox {
			continue
		}
		if t, n, ok := rayBox(origin, dir, c.Box); ok && t <= maxDist && t < best.Distance {
			best = Hit{Point: origin.Add(dir.Mul(t)), Normal: n, Distance: t}
			found = true
		}
	}
	return best, found
}

// OverlapSphere counts non-trigger colliders on mask layers touching the sphere.
func (w *World) OverlapSphere(center geo.Vec3, radius float64, mask LayerMask) int {
	n := 0
	for _, c := range w.Colliders {
		if c.Trigger || !mask.Has(c.Layer) {
			continue
		}
		switch c.Shape {
		case ShapeSphere:
			if c.Center.Sub(center).Len() <= c.Radius+radius {
				n++
			}
		default:
			if boxSphereDistance(c.Box, center) <= radius {
				n++
			}
		}
	}
	return n
}

func insideXZ(b geo.AABB, p geo.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] && p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

func boxSphereDistance(b geo.AABB, p geo.Vec3) float64 {
	var sq float64
	for k := 0; k < 3; k++ {
		v := p[k]
		if v < b.Min[k] {
			sq += (b.Min[k] - v) * (b.Min[k] - v)
		} else if v > b.Max[k] {
			sq += (v - b.Max[k]) * (v - b.Max[k])
		}
	}
	return math.Sqrt(sq)
}

// rayBox is the slab test; it returns the entry distance and face normal.
func rayBox(origin, dir geo.Vec3, b geo.AABB) (float64, geo.Vec3, bool) {
	tmin, tmax := math.Inf(-1), math.Inf(1)
	var normal geo.Vec3
	for k := 0; k < 3; k++ {
		if math.Abs(dir[k]) < 1e-12 {
			if origin[k] < b.Min[k] || origin[k] > b.Max[k] {
				return 0, geo.Vec3{}, false
			}
			continue
		}
		t1 := (b.Min[k] - origin[k]) / dir[k]
		t2 := (b.Max[k] - origin[k]) / dir[k]
		n := geo.Vec3{}
		n[k] = -1
		if t1 > t2 {
			t1, t2 = t2, t1
			n[k] = 1
		}
		if t1 > tmin {
			tmin = t1
			normal = n
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, geo.Vec3{}, false
		}
	}
	if tmin < 0 {
		// Origin inside the box.
		return 0, geo.Vec3{}, false
	}
	return tmin, normal, true
}
