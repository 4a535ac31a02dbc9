// Package placement tracks committed placements for one generation pass and
// decides whether a new candidate may be placed.
package placement

import (
	"github.com/ChicagoDave/roadgen/pkg/collide"
	"github.com/ChicagoDave/roadgen/pkg/geo"
)

// Padding is the extra gap required between two placements.
const Padding = 0.12

// Record is one committed placement.
type Record struct {
	Position geo.Vec3 `json:"position"`
	Radius   float64  `json:"radius"`
}

// Registry is the append-only set of placements made in the current pass.
type Registry struct {
	records []Record
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add records a committed placement.
func (r *Registry) Add(pos geo.Vec3, radius float64) {
	r.records = append(r.records, Record{Position: pos, Radius: radius})
}

// CanPlace reports whether a circle at pos with radius keeps clear of every
// recorded placement by at least Padding.
func (r *Registry) CanPlace(pos geo.Vec3, radius float64) bool {
	for _, rec := range r.records {
		if pos.Sub(rec.Position).Len() < radius+rec.Radius+Padding {
			return false
		}
	}
	return true
}

// Reset drops every record.
func (r *Registry) Reset() {
	r.records = r.records[:0]
}

// Len returns the number of records.
func (r *Registry) Len() int {
	return len(r.records)
}

// Records returns a copy of all records.
func (r *Registry) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// Reason explains why the gate rejected a candidate.
type Reason string

const (
	ReasonNone    Reason = ""
	ReasonSpacing Reason = "spacing"
	ReasonOverlap Reason = "overlap"
)

// minPhysicsRadius is the smallest radius worth an overlap query.
const minPhysicsRadius = 0.01

// Gate combines the registry spacing test with an optional physics overlap
// query. Force bypasses both.
type Gate struct {
	Registry   *Registry
	Overlap    collide.Overlapper
	Mask       collide.LayerMask
	UsePhysics bool
	Force      bool
}

// Check returns ReasonNone when a candidate at pos with radius may be placed.
func (g *Gate) Check(pos geo.Vec3, radius float64) Reason {
	if g.Force {
		return ReasonNone
	}
	if g.Registry != nil && !g.Registry.CanPlace(pos, radius) {
		return ReasonSpacing
	}
	if g.UsePhysics && g.Overlap != nil && radius > minPhysicsRadius {
		if g.Overlap.OverlapSphere(pos, radius, g.Mask) > 0 {
			return ReasonOverlap
		}
	}
	return ReasonNone
}
