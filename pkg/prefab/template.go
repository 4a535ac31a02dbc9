// Package prefab describes placeable object templates, estimates their size
// from mesh bounds, and buckets them into per-category pools.
package prefab

import (
	"math"

	"github.com/ChicagoDave/roadgen/pkg/geo"
)

// Category identifies what role a placed object plays in the level.
type Category string

const (
	Obstacle       Category = "obstacle"
	Pickup         Category = "pickup"
	Decor          Category = "decor"
	MountainLeft   Category = "mountain_left"
	MountainRight  Category = "mountain_right"
	Gate           Category = "gate"
	Checkpoint     Category = "checkpoint"
	MovingObstacle Category = "moving_obstacle"
	Wall           Category = "wall"
)

// noiseFloor is the smallest footprint treated as real geometry.
const noiseFloor = 0.01

// Template is a placeable object: a name, the bounds of each visible mesh in
// template-local space, and whether it carries a collider.
type Template struct {
	Name        string     `yaml:"name" json:"name"`
	Meshes      []geo.AABB `yaml:"meshes" json:"meshes,omitempty"`
	HasCollider bool       `yaml:"collider" json:"collider"`
}

// Bounds returns the union of all mesh bounds. ok is false when the template
// has no geometry.
func (t *Template) Bounds() (geo.AABB, bool) {
	if t == nil {
		return geo.AABB{}, false
	}
	return geo.Union(t.Meshes)
}

// FootprintRadius returns the horizontal radius of the template: the larger
// of the X and Z half-extents. Missing or sub-noise geometry yields fallback.
func FootprintRadius(t *Template, fallback float64) float64 {
	b, ok := t.Bounds()
	if !ok {
		return fallback
	}
	ext := b.Extents()
	r := math.Max(ext.X(), ext.Z())
	if r > noiseFloor {
		return math.Max(r, fallback*0.5)
	}
	return fallback
}

// HalfHeight returns the vertical half-extent, or 0 without geometry.
func HalfHeight(t *Template) float64 {
	b, ok := t.Bounds()
	if !ok {
		return 0
	}
	return b.Extents().Y()
}

// BoundsHeight returns the full vertical size, or 0 without geometry.
func BoundsHeight(t *Template) float64 {
	b, ok := t.Bounds()
	if !ok {
		return 0
	}
	return b.Size().Y()
}

// Placeholders returns stand-in templates for smoke-testing a level that has
// no templates of its own: a 0.8 unit cube obstacle and a 0.4 unit coin.
func Placeholders() []*Template {
	return []*Template{
		{
			Name:        "Placeholder_Obstacle",
			Meshes:      []geo.AABB{geo.Box(geo.V3(0, 0, 0), geo.V3(0.8, 0.8, 0.8))},
			HasCollider: true,
		},
		{
			Name:        "Placeholder_Coin",
			Meshes:      []geo.AABB{geo.Box(geo.V3(0, 0, 0), geo.V3(0.4, 0.4, 0.4))},
			HasCollider: true,
		},
	}
}
