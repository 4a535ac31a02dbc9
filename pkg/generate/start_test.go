package generate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChicagoDave/roadgen/pkg/collide"
	"github.com/ChicagoDave/roadgen/pkg/config"
	"github.com/ChicagoDave/roadgen/pkg/prefab"
	"github.com/ChicagoDave/roadgen/pkg/scene"
)

func bundleTemplates() []*prefab.Template {
	return []*prefab.Template{
		standing("Coin_Gold", 0.4, 0.4, 0.1),
		standing("Enemy_Bat", 0.6, 0.6, 0.6),
		standing("Rock_Small", 0.8, 0.8, 0.8),
		standing("Tree_Pine", 1, 3, 1),
	}
}

func newStartGen(cfg config.GenerationConfig, loader func() ([]*prefab.Template, error)) *Generator {
	world := collide.FlatGround(0)
	return New(Options{
		Curve:   straightRoad(roadLen),
		Ground:  world,
		Overlap: world,
		Config:  cfg,
		Seed:    3,
		Loader:  loader,
	})
}

func TestStartAutoLoadsAndGenerates(t *testing.T) {
	cfg := config.DefaultGeneration()
	cfg.Mode = config.ModeRuntime
	cfg.StartDelay = time.Millisecond
	g := newStartGen(cfg, func() ([]*prefab.Template, error) { return bundleTemplates(), nil })

	require.NoError(t, g.Start(context.Background()))
	assert.Equal(t, StateRegenerated, g.Outcome())
	assert.Len(t, g.Pools().Pickups, 1)
	require.NotNil(t, g.Pools().Moving)
	assert.Equal(t, "Enemy_Bat", g.Pools().Moving.Name)
	moving := g.Stats().For(prefab.MovingObstacle)
	assert.Equal(t, cfg.MovingCount, moving.Trials)
	assert.Len(t, nodesIn(g, scene.Moving), moving.Placed)
}

func TestStartDisabledSkipsPass(t *testing.T) {
	cfg := config.DefaultGeneration()
	cfg.Mode = config.ModeRuntime
	cfg.AutoStart = false
	called := false
	g := newStartGen(cfg, func() ([]*prefab.Template, error) {
		called = true
		return bundleTemplates(), nil
	})

	require.NoError(t, g.Start(context.Background()))
	assert.False(t, called, "loader runs only when the pass does")
	assert.Equal(t, StateUninitialized, g.State())
	assert.Zero(t, g.Scene().Len())
}

func TestStartKeepsConfiguredPools(t *testing.T) {
	called := false
	g := newGen(t, nil)
	g.loader = func() ([]*prefab.Template, error) {
		called = true
		return nil, nil
	}
	filled, err := g.LoadTemplates()
	require.NoError(t, err)
	assert.False(t, filled)
	assert.False(t, called, "loader only runs when every pool is empty")
}

func TestStartLoaderErrorIsNotFatal(t *testing.T) {
	cfg := config.DefaultGeneration()
	cfg.StartDelay = 0
	g := newStartGen(cfg, func() ([]*prefab.Template, error) { return nil, errors.New("bundle missing") })

	require.NoError(t, g.Start(context.Background()))
	assert.Equal(t, StateDone, g.State())
}

func TestStartCancelledDuringDelay(t *testing.T) {
	cfg := config.DefaultGeneration()
	cfg.StartDelay = time.Hour
	g := newStartGen(cfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := g.Start(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, g.Scene().Len())
	assert.Equal(t, StateUninitialized, g.State())
}

func TestRunDebugUsesPlaceholders(t *testing.T) {
	cfg := config.DefaultGeneration()
	cfg.SegmentLength = 0
	cfg.SegmentsCount = 0
	g := newStartGen(cfg, nil)

	require.NoError(t, g.RunDebug())
	assert.Equal(t, debugSegmentLength, g.Config().SegmentLength)
	assert.False(t, g.Config().ForceSpawn, "force spawn is restored")
	assert.False(t, g.gate.Force)
	assert.Equal(t, 10, g.Stats().Segments)

	require.Len(t, g.Pools().Obstacles, 1)
	assert.Equal(t, "Placeholder_Obstacle", g.Pools().Obstacles[0].Name)
	assert.Equal(t, "Placeholder_Coin", g.Pools().Pickups[0].Name)
	assert.Positive(t, g.Stats().TotalPlaced())
}

func TestRunDebugReportsCurveError(t *testing.T) {
	g := New(Options{Config: config.DefaultGeneration()})
	require.ErrorIs(t, g.RunDebug(), ErrNoCurve)
}
