// Package config loads level project files and supplies the default tunables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ChicagoDave/roadgen/pkg/collide"
	"github.com/ChicagoDave/roadgen/pkg/geo"
	"github.com/ChicagoDave/roadgen/pkg/prefab"
)

// ProjectFile is the level description inside a project directory.
const ProjectFile = "level.yaml"

// DefaultGeneration returns the stock generation tunables.
func DefaultGeneration() GenerationConfig {
	return GenerationConfig{
		Mode:       ModeAuthoring,
		Preserve:   true,
		AutoStart:  true,
		StartDelay: 50 * time.Millisecond,

		RoadWidth:     2.5,
		SegmentLength: 6,
		SegmentJitter: 1.2,
		MinSpacing:    1.2,
		LateralRange:  0.9,

		PhysicsOverlap: true,
		OverlapLayers:  uint32(collide.AllLayers),

		ObstacleRadius:     1.0,
		PickupRadius:       0.4,
		DecorRadius:        0.6,
		MinCenterClearance: 0.6,

		MaxObstacleHeight: 8,
		EnemySide:         SideBoth,

		HoverHeight:  0.12,
		AlignPickups: true,
		CoinPattern:  CoinSingle,
		CoinLength:   6,
		CoinSpacing:  0.6,

		WallHeight:         2,
		WallThickness:      0.3,
		WallSegmentLength:  2,
		WallSegmentOverlap: 0.2,
		WallTag:            "RoadWall",

		MovingCount:    4,
		MovingSpeed:    1.5,
		MovingDistance: 2,

		Difficulty: DifficultyMedium,
	}
}

// Default returns a project with every field at its default value and no road.
func Default() *Project {
	return &Project{
		Version: "0.1.0",
		Road: RoadDef{
			SamplesPerSegment: 16,
			Tension:           0.5,
		},
		Templates:  TemplatesDef{Bundle: prefab.BundleDir},
		Generation: DefaultGeneration(),
		Environment: EnvironmentConfig{
			Spacing:          4,
			Density:          0.6,
			BandOffset:       1.5,
			BandWidth:        4,
			UnderRoadDepth:   2,
			UnderRoadSpacing: 10,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Bake:    BakeConfig{AppName: "roadgen", LevelID: "level"},
	}
}

// Load reads a level project from a YAML file. Fields absent from the file
// keep their default values.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}

	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing project YAML: %w", err)
	}
	p.Dir = filepath.Dir(path)

	return p, nil
}

// LoadProject loads a level project from a project directory.
// It looks for level.yaml in the given directory.
func LoadProject(projectDir string) (*Project, error) {
	return Load(filepath.Join(projectDir, ProjectFile))
}

// LogLevel returns the configured log level, raised to debug when the
// generation debug flag is set.
func (p *Project) LogLevel() string {
	if p.Generation.Debug {
		return "debug"
	}
	return p.Logging.Level
}

// BundlePath returns the template bundle directory, resolved against the
// project directory when relative.
func (p *Project) BundlePath() string {
	b := p.Templates.Bundle
	if b == "" {
		b = prefab.BundleDir
	}
	if filepath.IsAbs(b) || p.Dir == "" {
		return b
	}
	return filepath.Join(p.Dir, b)
}

// Curve builds the road spline. It returns nil when fewer than two control
// points are configured.
func (r RoadDef) Curve() *geo.Polyline3 {
	if len(r.ControlPoints) < 2 {
		return nil
	}
	return geo.CatmullRom3(r.ControlPoints, r.SamplesPerSegment, r.Tension)
}

// World builds the collision world for ground and overlap queries.
func (t TerrainDef) World() *collide.World {
	w := collide.NewWorld()
	for _, pd := range t.Planes {
		pl := collide.Plane{Point: pd.Point, Normal: pd.Normal}
		if pd.Bounds != nil {
			pl.Bounds = *pd.Bounds
		}
		w.AddPlane(pl)
	}
	for _, cd := range t.Colliders {
		c := collide.Collider{
			Name:    cd.Name,
			Shape:   collide.ShapeKind(cd.Shape),
			Center:  cd.Center,
			Radius:  cd.Radius,
			Layer:   cd.Layer,
			Trigger: cd.Trigger,
		}
		if c.Shape != collide.ShapeSphere {
			c.Box = geo.Box(cd.Center, cd.Size)
		}
		w.AddCollider(c)
	}
	return w
}
