package generate

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChicagoDave/roadgen/pkg/collide"
	"github.com/ChicagoDave/roadgen/pkg/config"
	"github.com/ChicagoDave/roadgen/pkg/geo"
	"github.com/ChicagoDave/roadgen/pkg/placement"
	"github.com/ChicagoDave/roadgen/pkg/prefab"
	"github.com/ChicagoDave/roadgen/pkg/scene"
)

func nodesIn(g *Generator, name string) []*scene.Node {
	c := g.Scene().Container(name)
	if c == nil {
		return nil
	}
	return c.Nodes
}

func TestCheckpointsAtQuarters(t *testing.T) {
	for _, length := range []float64{10, 60, 250} {
		g := newGen(t, nil, withCurve(straightRoad(length)))
		require.NoError(t, g.GenerateAll())

		cps := nodesIn(g, scene.Checkpoints)
		require.Len(t, cps, CheckpointCount, "length %.0f", length)
		for i, n := range cps {
			assert.Equal(t, fmt.Sprintf("Checkpoint_%d", i+1), n.Name)
			assert.InDelta(t, float64(i+1)/4*length, n.Distance, 1e-9)
			assert.InDelta(t, 0.5, n.Position.Y(), 1e-9)
			require.NotNil(t, n.Collider)
			assert.True(t, n.Collider.Trigger)
			assert.InDelta(t, g.Config().RoadWidth*0.8, n.Collider.Size.X(), 1e-9)
		}
	}
}

func TestCheckpointsKeepTemplateCollider(t *testing.T) {
	pools := testPools()
	pools.Checkpoint = standing("Checkpoint_Arch", 3, 2.5, 0.4)
	g := newGen(t, nil, withPools(pools))
	require.NoError(t, g.GenerateAll())

	for _, n := range nodesIn(g, scene.Checkpoints) {
		require.NotNil(t, n.Collider)
		assert.True(t, n.Collider.Trigger, "template colliders become triggers")
		assert.InDelta(t, 3, n.Collider.Size.X(), 1e-9)
	}
}

func TestNoCheckpointTemplateSkips(t *testing.T) {
	pools := testPools()
	pools.Checkpoint = nil
	g := newGen(t, nil, withPools(pools))
	require.NoError(t, g.GenerateAll())
	assert.Empty(t, nodesIn(g, scene.Checkpoints))
}

func TestGatesAtBothEnds(t *testing.T) {
	g := newGen(t, nil)
	require.NoError(t, g.GenerateAll())

	gates := nodesIn(g, scene.Gates)
	require.Len(t, gates, 2)
	assert.Equal(t, GateStart, gates[0].Name)
	assert.Equal(t, GateEnd, gates[1].Name)
	assert.InDelta(t, 0, gates[0].Distance, 1e-9)
	assert.InDelta(t, roadLen, gates[1].Distance, 1e-9)
	assert.InDelta(t, roadLen, gates[1].Position.Z(), 1e-9)
	assert.InDelta(t, 0, geo.Forward(geo.QuatFromArray(gates[0].Rotation)).Sub(geo.V3(0, 0, 1)).Len(), 1e-6)
}

func TestMovingObstacles(t *testing.T) {
	pools := testPools()
	pools.Moving = standing("Enemy_Bat", 0.6, 0.6, 0.6)
	g := newGen(t, func(c *config.GenerationConfig) {
		c.MovingCount = 4
		c.Densities = allDensities(0)
	}, withPools(pools))
	require.NoError(t, g.GenerateAll())

	movers := nodesIn(g, scene.Moving)
	require.Len(t, movers, 4)
	phases := map[float64]bool{}
	for i, n := range movers {
		assert.InDelta(t, (float64(i)+0.5)/4*roadLen, n.Distance, 1e-9)
		assert.InDelta(t, 0.02, n.Position.Y(), 1e-9)
		assert.LessOrEqual(t, math.Abs(n.Position.X()), g.Config().HalfWidth()*0.6*g.Config().LateralRange+1e-9)

		require.NotNil(t, n.Mover)
		assert.InDelta(t, 0, n.Mover.Axis.Sub(geo.V3(1, 0, 0)).Len(), 1e-6, "moves along local right")
		assert.Equal(t, 2.0, n.Mover.Distance)
		assert.Equal(t, 1.5, n.Mover.Speed)
		phases[n.Mover.Phase] = true
	}
	assert.Len(t, phases, 4, "phases are randomized")
	assert.Equal(t, 4, g.Stats().For(prefab.MovingObstacle).Placed)
}

func TestMovingCountFloorsAtOne(t *testing.T) {
	pools := testPools()
	pools.Moving = standing("Enemy_Bat", 0.6, 0.6, 0.6)
	g := newGen(t, func(c *config.GenerationConfig) {
		c.MovingCount = 0
		c.Densities = allDensities(0)
	}, withPools(pools))
	require.NoError(t, g.GenerateAll())
	assert.Len(t, nodesIn(g, scene.Moving), 1)
}

func TestMovingObstacleBlockedByGate(t *testing.T) {
	pools := testPools()
	pools.Moving = standing("Enemy_Bat", 0.6, 0.6, 0.6)
	blocked := collide.FlatGround(0)
	blocked.AddCollider(collide.Collider{Name: "boulder", Box: geo.Box(geo.V3(0, 0, 30), geo.V3(20, 4, 4))})

	g := newGen(t, func(c *config.GenerationConfig) {
		c.MovingCount = 1
		c.Densities = allDensities(0)
	}, withPools(pools))
	g.gate.Overlap = blocked
	require.NoError(t, g.GenerateAll())

	assert.Empty(t, nodesIn(g, scene.Moving))
	cs := g.Stats().For(prefab.MovingObstacle)
	assert.Equal(t, 1, cs.Trials)
	assert.Equal(t, 1, cs.Rejected[placement.ReasonOverlap])
	assert.Zero(t, cs.Placed)

	g = newGen(t, func(c *config.GenerationConfig) {
		c.MovingCount = 1
		c.Densities = allDensities(0)
		c.ForceSpawn = true
	}, withPools(pools))
	g.gate.Overlap = blocked
	require.NoError(t, g.GenerateAll())
	assert.Len(t, nodesIn(g, scene.Moving), 1, "force spawn bypasses the gate")
}

func TestBoxWalls(t *testing.T) {
	g := newGen(t, func(c *config.GenerationConfig) { c.FallbackWalls = true })
	require.NoError(t, g.GenerateAll())

	walls := nodesIn(g, scene.Walls)
	// Intervals of 2 from 0 through 60 inclusive, both sides.
	require.Len(t, walls, 62)

	cfg := g.Config()
	wantX := cfg.HalfWidth() + cfg.WallThickness*0.5
	for _, n := range walls {
		assert.Equal(t, prefab.Wall, n.Category)
		assert.Equal(t, "RoadWall", n.Tag)
		assert.InDelta(t, cfg.WallHeight*0.5, n.Position.Y(), 1e-9)
		assert.InDelta(t, wantX, math.Abs(n.Position.X()), 1e-9)
		require.NotNil(t, n.Collider)
		assert.False(t, n.Collider.Trigger)
		if strings.HasPrefix(n.Name, "Wall_L_") {
			assert.Negative(t, n.Position.X())
		} else {
			assert.True(t, strings.HasPrefix(n.Name, "Wall_R_"), n.Name)
			assert.Positive(t, n.Position.X())
		}
	}
	assert.InDelta(t, 2.2, walls[0].Collider.Size.Z(), 1e-9, "interval plus overlap")
	assert.InDelta(t, 0.2, walls[len(walls)-1].Collider.Size.Z(), 1e-9, "last piece covers the remainder")
}

func TestMountainsReplaceBoxWalls(t *testing.T) {
	pools := testPools()
	pools.MountainLeft = []*prefab.Template{standing("Cliff_Left", 2, 6, 2)}
	pools.MountainRight = []*prefab.Template{standing("Ridge_Right", 2, 6, 2)}
	g := newGen(t, func(c *config.GenerationConfig) { c.FallbackWalls = true }, withPools(pools))
	require.NoError(t, g.GenerateAll())

	walls := nodesIn(g, scene.Walls)
	require.Len(t, walls, 62)
	halfW := g.Config().HalfWidth()
	for _, n := range walls {
		assert.Empty(t, n.Tag, "no synthesized pieces when mountains exist")
		assert.InDelta(t, 0, n.Position.Y(), 1e-9)
		switch n.Category {
		case prefab.MountainLeft:
			assert.InDelta(t, -(halfW + 1 + 0.12), n.Position.X(), 1e-9)
		case prefab.MountainRight:
			assert.InDelta(t, halfW+1+0.12, n.Position.X(), 1e-9)
		default:
			t.Errorf("unexpected category %s in walls", n.Category)
		}
	}
}

func TestEnvironmentPass(t *testing.T) {
	g := newGen(t, nil)
	g.env = config.EnvironmentConfig{
		Enabled:          true,
		Spacing:          4,
		Density:          1,
		BandOffset:       1.5,
		BandWidth:        4,
		UnderRoad:        true,
		UnderRoadDepth:   2,
		UnderRoadSpacing: 10,
	}
	g.cfg.Densities = allDensities(0)
	require.NoError(t, g.GenerateAll())

	halfW := g.Config().HalfWidth()
	under, band := 0, 0
	for _, n := range nodesIn(g, scene.Decor) {
		if n.Position.Y() < 0 {
			under++
			assert.InDelta(t, -2, n.Position.Y(), 1e-9)
			continue
		}
		band++
		assert.GreaterOrEqual(t, math.Abs(n.Position.X()), halfW+1.5)
	}
	assert.Equal(t, 7, under, "every 10 units from 0 through 60")
	assert.Positive(t, band)
	assert.Equal(t, 10+32, g.Stats().For(prefab.Decor).Trials, "segment draws plus 16 rows by 2 sides")
}
