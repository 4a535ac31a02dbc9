package generate

import (
	"log/slog"

	"github.com/ChicagoDave/roadgen/pkg/config"
	"github.com/ChicagoDave/roadgen/pkg/prefab"
	"github.com/ChicagoDave/roadgen/pkg/scene"
)

// FromProject wires a Generator to a loaded level project: the road spline,
// the terrain world for both ground and overlap queries, the configured
// pools and a loader over the project's template bundle. sc may be nil.
func FromProject(p *config.Project, sc *scene.Graph, seed int64, log *slog.Logger) *Generator {
	world := p.Terrain.World()
	pools := p.Templates.Pools
	bundle := p.BundlePath()

	opts := Options{
		Ground:      world,
		Overlap:     world,
		Pools:       &pools,
		Config:      p.Generation,
		Environment: p.Environment,
		Scene:       sc,
		Seed:        seed,
		Loader:      func() ([]*prefab.Template, error) { return prefab.LoadBundle(bundle) },
		Logger:      log,
	}
	// Leave Curve unset rather than holding a typed nil.
	if c := p.Road.Curve(); c != nil {
		opts.Curve = c
	}
	return New(opts)
}
