package generate

import (
	"fmt"
	"math"

	"github.com/ChicagoDave/roadgen/pkg/geo"
	"github.com/ChicagoDave/roadgen/pkg/placement"
	"github.com/ChicagoDave/roadgen/pkg/prefab"
	"github.com/ChicagoDave/roadgen/pkg/scene"
)

const (
	minWallStep        = 0.5
	mountainFallbackR  = 0.5
	mountainYaw        = 10.0
	movingSkin         = 0.02
	movingLateralScale = 0.6
	checkpointLift     = 0.5
	// CheckpointCount is fixed; it does not scale with road length.
	CheckpointCount = 3
)

// Gate names.
const (
	GateStart = "Gate_Start"
	GateEnd   = "Gate_End"
)

func (g *Generator) wallStep() float64 {
	return math.Max(minWallStep, g.cfg.WallSegmentLength)
}

// placeMountainWalls lines both road edges with mountain templates at fixed
// intervals. A side with an empty pool is left open.
func (g *Generator) placeMountainWalls() {
	length := g.curve.Length()
	halfW := g.cfg.HalfWidth()
	step := g.wallStep()

	n := 0
	for d := 0.0; d <= length; d += step {
		center, tangent, right := g.frame(d)
		for _, side := range []struct {
			cat  prefab.Category
			sign float64
		}{{prefab.MountainLeft, -1}, {prefab.MountainRight, 1}} {
			tpl := g.pools.Pick(g.rng, side.cat)
			if tpl == nil {
				continue
			}
			r := prefab.FootprintRadius(tpl, mountainFallbackR)
			pos := center.Add(right.Mul(side.sign * (halfW + r + placement.Padding)))
			pos = geo.WithY(pos, g.groundY(pos))
			rot := geo.LookRotation(tangent, geo.Up).Mul(geo.YawRotation(g.uniform(-mountainYaw, mountainYaw)))

			g.backend.Instantiate(g.graph, scene.Walls, nodeFor(tpl, side.cat, pos, rot.Normalize(), d))
			n++
		}
	}
	g.log.Debug("mountain walls placed", "count", n)
}

// placeBoxWalls synthesizes collider-only wall pieces on both edges. Each
// piece spans one interval plus the configured overlap so neighbours meet.
func (g *Generator) placeBoxWalls() {
	length := g.curve.Length()
	halfW := g.cfg.HalfWidth()
	step := g.wallStep()

	n := 0
	for d := 0.0; d <= length; d += step {
		center, tangent, right := g.frame(d)
		piece := step + g.cfg.WallSegmentOverlap
		if remaining := length - d; remaining < step {
			piece = remaining + g.cfg.WallSegmentOverlap
		}
		for _, sign := range []float64{-1, 1} {
			g.placeBoxWallPiece(center, tangent, right, sign, halfW, piece, d)
			n++
		}
	}
	g.log.Debug("box walls placed", "count", n)
}

func (g *Generator) placeBoxWallPiece(center, tangent, right geo.Vec3, sign, halfW, piece, d float64) {
	lateral := (halfW + g.cfg.WallThickness*0.5) * sign
	pos := center.Add(right.Mul(lateral))
	pos[1] += g.cfg.WallHeight * 0.5
	rot := geo.LookRotation(tangent, geo.Up)
	size := geo.V3(g.cfg.WallThickness, g.cfg.WallHeight, math.Max(0.01, piece))

	label := "R"
	if sign < 0 {
		label = "L"
	}
	walls := g.graph.FindOrCreate(scene.Walls)
	g.backend.Instantiate(g.graph, scene.Walls, &scene.Node{
		Name:     fmt.Sprintf("Wall_%s_%d", label, len(walls.Nodes)),
		Category: prefab.Wall,
		Position: pos,
		Rotation: geo.QuatArray(rot),
		Distance: d,
		Bounds:   geo.Box(geo.Vec3{}, size).Rotated(rot).Translate(pos),
		Collider: &scene.BoxCollider{Size: size},
		Tag:      g.cfg.WallTag,
	})
}

// placeGates puts one gate at each end of the road.
func (g *Generator) placeGates() {
	if len(g.pools.Gates) == 0 {
		return
	}
	length := g.curve.Length()
	for _, end := range []struct {
		name string
		d    float64
	}{{GateStart, 0}, {GateEnd, length}} {
		center, tangent, _ := g.frame(end.d)
		tpl := g.pools.Pick(g.rng, prefab.Gate)
		n := nodeFor(tpl, prefab.Gate, center, geo.LookRotation(tangent, geo.Up), end.d)
		n.Name = end.name
		g.backend.Instantiate(g.graph, scene.Gates, n)
	}
}

// placeMovingObstacles spreads the moving template evenly along the road at
// segment midpoints. Each instance ping-pongs along its own right axis and
// goes through the gate like any other spawnable; a blocked slot is skipped.
func (g *Generator) placeMovingObstacles() {
	tpl := g.pools.Moving
	if tpl == nil {
		return
	}
	length := g.curve.Length()
	halfW := g.cfg.HalfWidth()
	steps := max(1, g.cfg.MovingCount)
	radius := prefab.FootprintRadius(tpl, g.cfg.ObstacleRadius)

	for i := 0; i < steps; i++ {
		d := geo.Clamp((float64(i)+0.5)/float64(steps)*length, 0, length)
		center, tangent, right := g.frame(d)
		lateral := g.uniform(-g.cfg.LateralRange, g.cfg.LateralRange) * halfW * movingLateralScale
		pos := center.Add(right.Mul(lateral))
		pos = geo.WithY(pos, g.groundY(pos)+movingSkin)

		g.stats.trial(prefab.MovingObstacle)
		g.stats.attempt(prefab.MovingObstacle)
		if reason := g.gate.Check(pos, radius); reason != placement.ReasonNone {
			g.stats.reject(prefab.MovingObstacle, reason)
			g.log.Debug("skip moving obstacle", "distance", d, "reason", reason)
			continue
		}
		rot := geo.LookRotation(tangent, geo.Up)

		n := nodeFor(tpl, prefab.MovingObstacle, pos, rot, d)
		n.Mover = &scene.Mover{
			Axis:     geo.RightAxis(rot),
			Distance: g.cfg.MovingDistance,
			Speed:    g.cfg.MovingSpeed,
			Phase:    g.rng.Float64(),
		}
		g.backend.Instantiate(g.graph, scene.Moving, n)
		g.registry.Add(pos, radius)
		g.stats.placed(prefab.MovingObstacle)
	}
}

// placeCheckpoints places CheckpointCount trigger volumes at even fractions
// of the road length.
func (g *Generator) placeCheckpoints() {
	tpl := g.pools.Checkpoint
	if tpl == nil {
		return
	}
	length := g.curve.Length()
	for i := 0; i < CheckpointCount; i++ {
		d := float64(i+1) / float64(CheckpointCount+1) * length
		center, tangent, _ := g.frame(d)
		pos := center.Add(geo.Up.Mul(checkpointLift))

		n := nodeFor(tpl, prefab.Checkpoint, pos, geo.LookRotation(tangent, geo.Up), d)
		n.Name = fmt.Sprintf("Checkpoint_%d", i+1)
		if n.Collider == nil {
			n.Collider = &scene.BoxCollider{Size: geo.V3(g.cfg.RoadWidth*0.8, 2, 1)}
		}
		n.Collider.Trigger = true
		g.backend.Instantiate(g.graph, scene.Checkpoints, n)
		g.stats.placed(prefab.Checkpoint)
	}
}
