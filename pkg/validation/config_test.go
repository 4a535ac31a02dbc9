package validation

import (
	"testing"

	"github.com/ChicagoDave/roadgen/pkg/config"
	"github.com/ChicagoDave/roadgen/pkg/geo"
	"github.com/ChicagoDave/roadgen/pkg/prefab"
)

func validProject() *config.Project {
	p := config.Default()
	p.Road.ControlPoints = []geo.Vec3{{0, 0, 0}, {0, 0, 60}}
	p.Templates.Pools.Obstacles = []*prefab.Template{{
		Name:   "rock",
		Meshes: []geo.AABB{geo.Box(geo.V3(0, 0.5, 0), geo.V3(1, 1, 1))},
	}}
	return p
}

func TestValidateConfigValid(t *testing.T) {
	r := ValidateConfig(validProject())
	if !r.Valid {
		t.Errorf("expected valid report, got %d errors: %v", len(r.Errors), r.Errors)
	}
}

func TestValidateConfigNil(t *testing.T) {
	if ValidateConfig(nil).Valid {
		t.Error("expected invalid for nil project")
	}
}

func TestValidateConfigRoadPoints(t *testing.T) {
	p := validProject()
	p.Road.ControlPoints = p.Road.ControlPoints[:1]
	assertHasError(t, ValidateConfig(p), "road.control_points")
}

func TestValidateConfigRoadWidth(t *testing.T) {
	p := validProject()
	p.Generation.RoadWidth = 0
	assertHasError(t, ValidateConfig(p), "generation.road_width")
}

func TestValidateConfigNarrowRoadWarns(t *testing.T) {
	p := validProject()
	p.Generation.RoadWidth = 0.6
	r := ValidateConfig(p)
	if !r.Valid {
		t.Errorf("narrow road should only warn, got errors: %v", r.Errors)
	}
	assertHasWarning(t, r, "generation.road_width")
}

func TestValidateConfigSegmentLength(t *testing.T) {
	p := validProject()
	p.Generation.SegmentLength = 0
	assertHasError(t, ValidateConfig(p), "generation.segment_length")

	// An explicit segment count makes segment length irrelevant.
	p.Generation.SegmentsCount = 5
	if r := ValidateConfig(p); !r.Valid {
		t.Errorf("expected valid with segments_count set, got %v", r.Errors)
	}
}

func TestValidateConfigLateralRange(t *testing.T) {
	p := validProject()
	p.Generation.LateralRange = 1.5
	assertHasError(t, ValidateConfig(p), "generation.lateral_range")
}

func TestValidateConfigDensities(t *testing.T) {
	p := validProject()
	p.Generation.Densities = &config.Densities{Obstacle: 1.2, Pickup: 0.5, Decor: -0.1}
	r := ValidateConfig(p)
	assertHasError(t, r, "generation.densities.obstacle")
	assertHasError(t, r, "generation.densities.decor")
	if len(r.Errors) != 2 {
		t.Errorf("expected 2 errors, got %d", len(r.Errors))
	}
}

func TestValidateConfigEnums(t *testing.T) {
	p := validProject()
	p.Generation.Difficulty = "nightmare"
	p.Generation.CoinPattern = "zigzag"
	r := ValidateConfig(p)
	assertHasError(t, r, "generation.difficulty")
	assertHasError(t, r, "generation.coin_pattern")
}

func TestValidateConfigCoinSpacing(t *testing.T) {
	p := validProject()
	p.Generation.CoinSpacing = 0
	if r := ValidateConfig(p); !r.Valid {
		t.Error("single pattern ignores coin spacing")
	}
	p.Generation.CoinPattern = config.CoinArc
	assertHasError(t, ValidateConfig(p), "generation.coin_spacing")
}

func TestValidateConfigTallObstacleWarns(t *testing.T) {
	p := validProject()
	p.Templates.Pools.Obstacles = append(p.Templates.Pools.Obstacles, &prefab.Template{
		Name:   "tower",
		Meshes: []geo.AABB{geo.Box(geo.V3(0, 4.5, 0), geo.V3(1, 9, 1))},
	})
	r := ValidateConfig(p)
	assertHasWarning(t, r, "templates.pools.obstacles[1]")
}

func TestValidateConfigEmptyPoolsInfo(t *testing.T) {
	p := validProject()
	p.Templates.Pools = prefab.Pools{}
	r := ValidateConfig(p)
	if !r.Valid {
		t.Errorf("empty pools are not an error: %v", r.Errors)
	}
	if r.Count(LevelConfig) == 0 || len(r.Info) != 1 {
		t.Errorf("expected one info finding, got %d", len(r.Info))
	}
}

func assertHasError(t *testing.T, r *Report, path string) {
	t.Helper()
	for _, e := range r.Errors {
		if e.Path == path {
			return
		}
	}
	t.Errorf("expected error with path %q, got errors: %v", path, r.Errors)
}

func assertHasWarning(t *testing.T, r *Report, path string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Path == path {
			return
		}
	}
	t.Errorf("expected warning with path %q, got warnings: %v", path, r.Warnings)
}
