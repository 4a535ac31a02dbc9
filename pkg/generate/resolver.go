package generate

import (
	"math"

	"github.com/ChicagoDave/roadgen/pkg/config"
	"github.com/ChicagoDave/roadgen/pkg/geo"
	"github.com/ChicagoDave/roadgen/pkg/placement"
	"github.com/ChicagoDave/roadgen/pkg/prefab"
	"github.com/ChicagoDave/roadgen/pkg/scene"
)

const (
	// roadMargin keeps on-road placements inside the road edge.
	roadMargin = 0.4
	// minEffectiveHalf is the floor for the usable half-width.
	minEffectiveHalf = 0.01
	// groundSkin lifts non-pickups off the surface.
	groundSkin = 0.01
	// negligibleHalfHeight treats flatter pickups as having no height.
	negligibleHalfHeight = 0.001
	// alignBlend is how far pickups turn toward the surface normal.
	alignBlend = 0.6
	// spawnYaw is the random yaw range in degrees applied to spawnables.
	spawnYaw = 30.0
)

// Placement is the resolved transform of an accepted spawn.
type Placement struct {
	Template *prefab.Template
	Category prefab.Category
	Distance float64
	Position geo.Vec3
	Rotation geo.Quat
	Radius   float64
	// Lateral is the signed offset from the road centre (positive = right).
	Lateral float64
	OnRoad  bool
}

// effectiveHalfWidth is the usable half-width inside the road margin.
func (g *Generator) effectiveHalfWidth() float64 {
	return math.Max(minEffectiveHalf, g.cfg.HalfWidth()-roadMargin)
}

func (g *Generator) fallbackRadius(cat prefab.Category) float64 {
	switch cat {
	case prefab.Obstacle:
		return g.cfg.ObstacleRadius
	case prefab.Pickup:
		return g.cfg.PickupRadius
	default:
		return g.cfg.DecorRadius
	}
}

// sideFor returns +1 (right) or -1 (left) for a placement. The sign of the
// drawn lateral offset picks the side unless an enemy-side constraint
// applies to obstacles.
func (g *Generator) sideFor(cat prefab.Category, lateralOffset float64) float64 {
	if cat == prefab.Obstacle {
		switch g.cfg.EnemySide {
		case config.SideLeft:
			return -1
		case config.SideRight:
			return 1
		}
	}
	return geo.Sign(lateralOffset)
}

// Resolve computes the final transform for a spawn of cat at distance d and
// commits it when the gate accepts. Rejections never mutate the scene.
func (g *Generator) Resolve(d float64, cat prefab.Category) (*Placement, placement.Reason, bool) {
	g.stats.attempt(cat)
	p, reason, ok := g.resolve(d, cat)
	if !ok {
		g.stats.reject(cat, reason)
		g.log.Debug("skip spawn", "category", cat, "distance", d, "reason", reason)
		return nil, reason, false
	}
	g.commit(p, scene.ContainerFor(cat))
	g.stats.placed(cat)
	return p, placement.ReasonNone, true
}

func (g *Generator) resolve(d float64, cat prefab.Category) (*Placement, placement.Reason, bool) {
	length := g.curve.Length()
	d = geo.Clamp(d, 0, length)
	center, tangent, right := g.frame(d)

	halfW := g.cfg.HalfWidth()
	effHalf := g.effectiveHalfWidth()
	lateralOffset := g.uniform(-g.cfg.LateralRange, g.cfg.LateralRange) * effHalf

	tpl := g.pools.Pick(g.rng, cat)
	if tpl == nil {
		return nil, RejectNoTemplate, false
	}
	radius := prefab.FootprintRadius(tpl, g.fallbackRadius(cat))

	if cat == prefab.Obstacle {
		if h := prefab.BoundsHeight(tpl); h > g.cfg.MaxObstacleHeight {
			return nil, RejectHeight, false
		}
	}

	side := g.sideFor(cat, lateralOffset)
	onRoad := true
	lateral := lateralOffset
	switch {
	case cat == prefab.Decor, cat == prefab.Obstacle && !g.cfg.ObstaclesOnRoad:
		lateral = side * (halfW + radius + placement.Padding)
		onRoad = false
	case cat == prefab.Obstacle:
		lateral = side * math.Abs(lateralOffset)
	}
	pos := center.Add(right.Mul(lateral))

	look := geo.LookRotation(tangent, geo.Up)
	rot := look
	ground := g.groundY(pos)
	if cat == prefab.Pickup {
		halfH := prefab.HalfHeight(tpl)
		if halfH > negligibleHalfHeight {
			pos[1] = ground + halfH + g.cfg.HoverHeight
		} else {
			pos[1] = ground + g.cfg.HoverHeight
		}
		if g.cfg.AlignPickups {
			if n, ok := g.surfaceNormal(pos, halfH); ok {
				aligned := geo.FromToRotation(geo.Up, n).Mul(look)
				rot = geo.Blend(look, aligned, alignBlend)
			}
		}
	} else {
		pos[1] = ground + groundSkin
	}

	if cat == prefab.Obstacle && math.Abs(lateral) < g.cfg.MinCenterClearance {
		lateral = geo.Clamp(side*g.cfg.MinCenterClearance, -effHalf, effHalf)
		pos = center.Add(right.Mul(lateral))
		pos = geo.WithY(pos, g.groundY(pos)+groundSkin)
	}

	if reason := g.gate.Check(pos, radius); reason != placement.ReasonNone {
		return nil, reason, false
	}

	rot = rot.Mul(geo.YawRotation(g.uniform(-spawnYaw, spawnYaw)))
	return &Placement{
		Template: tpl,
		Category: cat,
		Distance: d,
		Position: pos,
		Rotation: rot.Normalize(),
		Radius:   radius,
		Lateral:  lateral,
		OnRoad:   onRoad,
	}, placement.ReasonNone, true
}

// commit instantiates p and records it in the registry.
func (g *Generator) commit(p *Placement, container string) *scene.Node {
	n := g.backend.Instantiate(g.graph, container, nodeFor(p.Template, p.Category, p.Position, p.Rotation, p.Distance))
	g.registry.Add(p.Position, p.Radius)
	return n
}

// nodeFor builds a scene node for a template placed at pos.
func nodeFor(tpl *prefab.Template, cat prefab.Category, pos geo.Vec3, rot geo.Quat, d float64) *scene.Node {
	n := &scene.Node{
		Category: cat,
		Position: pos,
		Rotation: geo.QuatArray(rot),
		Distance: d,
	}
	if tpl == nil {
		return n
	}
	n.Template = tpl.Name
	if b, ok := tpl.Bounds(); ok {
		n.Bounds = b.Rotated(rot).Translate(pos)
		if tpl.HasCollider {
			n.Collider = &scene.BoxCollider{Size: b.Size()}
		}
	}
	return n
}
