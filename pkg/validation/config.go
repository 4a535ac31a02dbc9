package validation

import (
	"fmt"

	"github.com/ChicagoDave/roadgen/pkg/config"
	"github.com/ChicagoDave/roadgen/pkg/prefab"
)

// roadMargin is the inset from the road edge that on-road placements keep.
const roadMargin = 0.4

// ValidateConfig checks a parsed level project before any generation runs.
func ValidateConfig(p *config.Project) *Report {
	r := NewReport()

	if p == nil {
		r.AddError(Result{
			Level:   LevelConfig,
			Message: "project is nil",
		})
		return r
	}

	validateRoad(p, r)
	validateEnums(p, r)
	validateSpacing(p, r)
	validateDensities(p, r)
	validatePickups(p, r)
	validateStructures(p, r)
	validateEnvironment(p, r)
	validateTemplates(p, r)

	return r
}

func validateRoad(p *config.Project, r *Report) {
	if n := len(p.Road.ControlPoints); n < 2 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "road needs at least two control points",
			Path:        "road.control_points",
			ActualValue: n,
			Expected:    ">= 2",
		})
	}
	if p.Road.SamplesPerSegment < 1 {
		r.AddWarning(Result{
			Level:       LevelConfig,
			Message:     "samples_per_segment < 1 is treated as 1",
			Path:        "road.samples_per_segment",
			ActualValue: p.Road.SamplesPerSegment,
			Expected:    ">= 1",
		})
	}
}

func validateEnums(p *config.Project, r *Report) {
	g := p.Generation
	check := func(path string, ok bool, actual any, expected string) {
		if !ok {
			r.AddError(Result{
				Level:       LevelConfig,
				Message:     fmt.Sprintf("%s has unknown value %v", path, actual),
				Path:        path,
				ActualValue: actual,
				Expected:    expected,
			})
		}
	}
	check("generation.mode", g.Mode.Valid(), g.Mode, "authoring | runtime")
	check("generation.difficulty", g.Difficulty.Valid(), g.Difficulty, "low | medium | high")
	check("generation.coin_pattern", g.CoinPattern.Valid(), g.CoinPattern, "single | line | arc")
	check("generation.enemy_side", g.EnemySide.Valid(), g.EnemySide, "both | left | right")
}

func validateSpacing(p *config.Project, r *Report) {
	g := p.Generation

	if g.RoadWidth <= 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "road_width must be > 0",
			Path:        "generation.road_width",
			ActualValue: g.RoadWidth,
			Expected:    "> 0",
		})
	} else if g.HalfWidth() <= roadMargin {
		r.AddWarning(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("road half-width %.2f leaves no room inside the %.1f margin; on-road placements collapse to the centre line", g.HalfWidth(), roadMargin),
			Path:        "generation.road_width",
			ActualValue: g.RoadWidth,
			Suggestions: []string{fmt.Sprintf("Use a road_width above %.1f", 2*roadMargin)},
		})
	}

	if g.SegmentsCount < 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "segments_count must be >= 0",
			Path:        "generation.segments_count",
			ActualValue: g.SegmentsCount,
			Expected:    ">= 0",
		})
	}
	if g.SegmentsCount == 0 && g.SegmentLength <= 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "segment_length must be > 0 when segments_count is 0",
			Path:        "generation.segment_length",
			ActualValue: g.SegmentLength,
			Expected:    "> 0",
		})
	}
	if g.SegmentJitter < 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "segment_jitter must be >= 0",
			Path:        "generation.segment_jitter",
			ActualValue: g.SegmentJitter,
			Expected:    ">= 0",
		})
	}
	if g.LateralRange < 0 || g.LateralRange > 1 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("lateral_range %.2f must be in [0, 1]", g.LateralRange),
			Path:        "generation.lateral_range",
			ActualValue: g.LateralRange,
			Expected:    "0 <= lateral_range <= 1",
		})
	}
	if g.MinSpacing < 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "min_spacing must be >= 0",
			Path:        "generation.min_spacing",
			ActualValue: g.MinSpacing,
			Expected:    ">= 0",
		})
	}

	radii := []struct {
		name string
		v    float64
	}{
		{"obstacle_radius", g.ObstacleRadius},
		{"pickup_radius", g.PickupRadius},
		{"decor_radius", g.DecorRadius},
	}
	for _, rd := range radii {
		if rd.v <= 0 {
			r.AddError(Result{
				Level:       LevelConfig,
				Message:     fmt.Sprintf("%s must be > 0", rd.name),
				Path:        "generation." + rd.name,
				ActualValue: rd.v,
				Expected:    "> 0",
			})
		}
	}

	eff := g.HalfWidth() - roadMargin
	if g.MinCenterClearance > eff && eff > 0 {
		r.AddWarning(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("min_center_clearance %.2f exceeds usable half-width %.2f; on-road obstacles are clamped to the lane edge", g.MinCenterClearance, eff),
			Path:        "generation.min_center_clearance",
			ActualValue: g.MinCenterClearance,
		})
	}

	if g.MaxObstacleHeight <= 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "max_obstacle_height must be > 0",
			Path:        "generation.max_obstacle_height",
			ActualValue: g.MaxObstacleHeight,
			Expected:    "> 0",
		})
	}
}

func validateDensities(p *config.Project, r *Report) {
	d := p.Generation.Densities
	if d == nil {
		return
	}
	values := []struct {
		name string
		v    float64
	}{
		{"obstacle", d.Obstacle},
		{"pickup", d.Pickup},
		{"decor", d.Decor},
	}
	for _, dv := range values {
		if dv.v < 0 || dv.v > 1 {
			r.AddError(Result{
				Level:       LevelConfig,
				Message:     fmt.Sprintf("densities.%s %.2f is not a probability", dv.name, dv.v),
				Path:        "generation.densities." + dv.name,
				ActualValue: dv.v,
				Expected:    "0 <= density <= 1",
			})
		}
	}
	r.AddInfo(Result{
		Level:   LevelConfig,
		Message: fmt.Sprintf("density override in effect; difficulty %q preset ignored", p.Generation.Difficulty),
		Path:    "generation.densities",
	})
}

func validatePickups(p *config.Project, r *Report) {
	g := p.Generation
	if g.HoverHeight < 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "pickup_hover_height must be >= 0",
			Path:        "generation.pickup_hover_height",
			ActualValue: g.HoverHeight,
			Expected:    ">= 0",
		})
	}
	if g.CoinPattern == config.CoinLine || g.CoinPattern == config.CoinArc {
		if g.CoinSpacing <= 0 {
			r.AddError(Result{
				Level:       LevelConfig,
				Message:     fmt.Sprintf("coin_spacing must be > 0 for the %s pattern", g.CoinPattern),
				Path:        "generation.coin_spacing",
				ActualValue: g.CoinSpacing,
				Expected:    "> 0",
			})
		}
		if g.CoinLength <= 0 {
			r.AddWarning(Result{
				Level:       LevelConfig,
				Message:     "coin_line_length <= 0 yields the minimum group size",
				Path:        "generation.coin_line_length",
				ActualValue: g.CoinLength,
			})
		}
	}
}

func validateStructures(p *config.Project, r *Report) {
	g := p.Generation
	if g.FallbackWalls {
		if g.WallHeight <= 0 || g.WallThickness <= 0 {
			r.AddError(Result{
				Level:       LevelConfig,
				Message:     "fallback walls need positive wall_height and wall_thickness",
				Path:        "generation.wall_height",
				ActualValue: fmt.Sprintf("%.2f x %.2f", g.WallHeight, g.WallThickness),
				Expected:    "> 0",
			})
		}
		if g.WallSegmentOverlap < 0 {
			r.AddError(Result{
				Level:       LevelConfig,
				Message:     "wall_segment_overlap must be >= 0",
				Path:        "generation.wall_segment_overlap",
				ActualValue: g.WallSegmentOverlap,
				Expected:    ">= 0",
			})
		}
	}
	if g.MovingCount < 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "moving_count must be >= 0",
			Path:        "generation.moving_count",
			ActualValue: g.MovingCount,
			Expected:    ">= 0",
		})
	}
	if g.StartDelay < 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "start_delay must not be negative",
			Path:        "generation.start_delay",
			ActualValue: g.StartDelay.String(),
			Expected:    ">= 0",
		})
	}
}

func validateEnvironment(p *config.Project, r *Report) {
	e := p.Environment
	if !e.Enabled {
		return
	}
	if e.Spacing <= 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "environment.spacing must be > 0",
			Path:        "environment.spacing",
			ActualValue: e.Spacing,
			Expected:    "> 0",
		})
	}
	if e.Density < 0 || e.Density > 1 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("environment.density %.2f is not a probability", e.Density),
			Path:        "environment.density",
			ActualValue: e.Density,
			Expected:    "0 <= density <= 1",
		})
	}
	if e.BandWidth < 0 || e.BandOffset < 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "environment band_offset and band_width must be >= 0",
			Path:        "environment.band_width",
			ActualValue: fmt.Sprintf("%.2f / %.2f", e.BandOffset, e.BandWidth),
			Expected:    ">= 0",
		})
	}
	if e.UnderRoad && e.UnderRoadSpacing <= 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "environment.under_road_spacing must be > 0",
			Path:        "environment.under_road_spacing",
			ActualValue: e.UnderRoadSpacing,
			Expected:    "> 0",
		})
	}
}

func validateTemplates(p *config.Project, r *Report) {
	pools := p.Templates.Pools
	if pools.Empty() {
		r.AddInfo(Result{
			Level:   LevelConfig,
			Message: fmt.Sprintf("no template pools configured; templates will be loaded from %s", p.BundlePath()),
			Path:    "templates.pools",
		})
		return
	}
	if len(pools.Obstacles) == 0 && len(pools.Pickups) == 0 && len(pools.Decor) == 0 {
		r.AddWarning(Result{
			Level:       LevelConfig,
			Message:     "no obstacle, pickup or decor templates; the spawn pass will place nothing",
			Path:        "templates.pools",
			Suggestions: []string{"Add templates to at least one spawnable pool"},
		})
	}
	for i, t := range pools.Obstacles {
		if t == nil {
			continue
		}
		if h := prefab.BoundsHeight(t); h > p.Generation.MaxObstacleHeight {
			r.AddWarning(Result{
				Level:       LevelConfig,
				Message:     fmt.Sprintf("obstacle %q is %.1f tall and will always be skipped (max %.1f)", t.Name, h, p.Generation.MaxObstacleHeight),
				Path:        fmt.Sprintf("templates.pools.obstacles[%d]", i),
				ActualValue: h,
			})
		}
	}
}
