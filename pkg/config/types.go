package config

import (
	"time"

	"github.com/ChicagoDave/roadgen/pkg/geo"
	"github.com/ChicagoDave/roadgen/pkg/prefab"
)

// Difficulty selects one of three fixed density presets.
type Difficulty string

const (
	DifficultyLow    Difficulty = "low"
	DifficultyMedium Difficulty = "medium"
	DifficultyHigh   Difficulty = "high"
)

// Valid reports whether d names a known preset.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyLow, DifficultyMedium, DifficultyHigh:
		return true
	}
	return false
}

// CoinPattern is the shape a triggered pickup group takes.
type CoinPattern string

const (
	CoinSingle CoinPattern = "single"
	CoinLine   CoinPattern = "line"
	CoinArc    CoinPattern = "arc"
)

// Valid reports whether p names a known pattern.
func (p CoinPattern) Valid() bool {
	switch p {
	case CoinSingle, CoinLine, CoinArc:
		return true
	}
	return false
}

// EnemySide constrains which side of the road obstacles may use.
type EnemySide string

const (
	SideBoth  EnemySide = "both"
	SideLeft  EnemySide = "left"
	SideRight EnemySide = "right"
)

// Valid reports whether s names a known side.
func (s EnemySide) Valid() bool {
	switch s {
	case SideBoth, SideLeft, SideRight:
		return true
	}
	return false
}

// Mode is the execution context a generation pass runs in.
type Mode string

const (
	ModeAuthoring Mode = "authoring"
	ModeRuntime   Mode = "runtime"
)

// Valid reports whether m names a known mode.
func (m Mode) Valid() bool {
	return m == ModeAuthoring || m == ModeRuntime
}

// Project is the top-level level description loaded from level.yaml.
type Project struct {
	Version     string            `yaml:"version" json:"version"`
	Road        RoadDef           `yaml:"road" json:"road"`
	Terrain     TerrainDef        `yaml:"terrain" json:"terrain"`
	Templates   TemplatesDef      `yaml:"templates" json:"templates"`
	Generation  GenerationConfig  `yaml:"generation" json:"generation"`
	Environment EnvironmentConfig `yaml:"environment" json:"environment"`
	Logging     LoggingConfig     `yaml:"logging" json:"logging"`
	Bake        BakeConfig        `yaml:"bake" json:"bake"`

	// Dir is the project directory the file was loaded from.
	Dir string `yaml:"-" json:"-"`
}

// RoadDef is the spline the road follows.
type RoadDef struct {
	ControlPoints     []geo.Vec3 `yaml:"control_points" json:"control_points"`
	SamplesPerSegment int        `yaml:"samples_per_segment" json:"samples_per_segment"`
	Tension           float64    `yaml:"tension" json:"tension"`
}

// TerrainDef lists the static ground surfaces and colliders of the level.
type TerrainDef struct {
	Planes    []PlaneDef    `yaml:"planes" json:"planes"`
	Colliders []ColliderDef `yaml:"colliders" json:"colliders"`
}

type PlaneDef struct {
	Point  geo.Vec3  `yaml:"point" json:"point"`
	Normal geo.Vec3  `yaml:"normal" json:"normal"`
	Bounds *geo.AABB `yaml:"bounds,omitempty" json:"bounds,omitempty"`
}

type ColliderDef struct {
	Name    string   `yaml:"name" json:"name"`
	Shape   string   `yaml:"shape" json:"shape"`
	Center  geo.Vec3 `yaml:"center" json:"center"`
	Size    geo.Vec3 `yaml:"size" json:"size"`
	Radius  float64  `yaml:"radius" json:"radius"`
	Layer   int      `yaml:"layer" json:"layer"`
	Trigger bool     `yaml:"trigger" json:"trigger"`
}

// TemplatesDef configures template pools. When Pools is empty the bundle
// directory is scanned and classified by name.
type TemplatesDef struct {
	Bundle string       `yaml:"bundle" json:"bundle"`
	Pools  prefab.Pools `yaml:"pools" json:"pools"`
}

// Densities are per-category spawn probabilities in [0,1].
type Densities struct {
	Obstacle float64 `yaml:"obstacle" json:"obstacle"`
	Pickup   float64 `yaml:"pickup" json:"pickup"`
	Decor    float64 `yaml:"decor" json:"decor"`
}

// GenerationConfig holds every tunable of a generation pass.
type GenerationConfig struct {
	Mode       Mode          `yaml:"mode" json:"mode"`
	Debug      bool          `yaml:"debug" json:"debug"`
	ForceSpawn bool          `yaml:"force_spawn" json:"force_spawn"`
	Preserve   bool          `yaml:"preserve_generated" json:"preserve_generated"`
	AutoStart  bool          `yaml:"auto_start" json:"auto_start"`
	StartDelay time.Duration `yaml:"start_delay" json:"start_delay"`

	RoadWidth     float64 `yaml:"road_width" json:"road_width"`
	SegmentsCount int     `yaml:"segments_count" json:"segments_count"`
	SegmentLength float64 `yaml:"segment_length" json:"segment_length"`
	SegmentJitter float64 `yaml:"segment_jitter" json:"segment_jitter"`
	MinSpacing    float64 `yaml:"min_spacing" json:"min_spacing"`
	LateralRange  float64 `yaml:"lateral_range" json:"lateral_range"`

	PhysicsOverlap bool   `yaml:"physics_overlap" json:"physics_overlap"`
	OverlapLayers  uint32 `yaml:"overlap_layers" json:"overlap_layers"`

	ObstacleRadius     float64 `yaml:"obstacle_radius" json:"obstacle_radius"`
	PickupRadius       float64 `yaml:"pickup_radius" json:"pickup_radius"`
	DecorRadius        float64 `yaml:"decor_radius" json:"decor_radius"`
	MinCenterClearance float64 `yaml:"min_center_clearance" json:"min_center_clearance"`

	ObstaclesOnRoad   bool      `yaml:"obstacles_on_road" json:"obstacles_on_road"`
	MaxObstacleHeight float64   `yaml:"max_obstacle_height" json:"max_obstacle_height"`
	EnemySide         EnemySide `yaml:"enemy_side" json:"enemy_side"`

	HoverHeight  float64     `yaml:"pickup_hover_height" json:"pickup_hover_height"`
	AlignPickups bool        `yaml:"align_pickups" json:"align_pickups"`
	CoinPattern  CoinPattern `yaml:"coin_pattern" json:"coin_pattern"`
	CoinLength   float64     `yaml:"coin_line_length" json:"coin_line_length"`
	CoinSpacing  float64     `yaml:"coin_spacing" json:"coin_spacing"`

	FallbackWalls      bool    `yaml:"fallback_walls" json:"fallback_walls"`
	WallHeight         float64 `yaml:"wall_height" json:"wall_height"`
	WallThickness      float64 `yaml:"wall_thickness" json:"wall_thickness"`
	WallSegmentLength  float64 `yaml:"wall_segment_length" json:"wall_segment_length"`
	WallSegmentOverlap float64 `yaml:"wall_segment_overlap" json:"wall_segment_overlap"`
	WallTag            string  `yaml:"wall_tag" json:"wall_tag"`

	MovingCount    int     `yaml:"moving_count" json:"moving_count"`
	MovingSpeed    float64 `yaml:"moving_speed" json:"moving_speed"`
	MovingDistance float64 `yaml:"moving_distance" json:"moving_distance"`

	Difficulty Difficulty `yaml:"difficulty" json:"difficulty"`
	// Densities overrides the difficulty preset when set.
	Densities *Densities `yaml:"densities,omitempty" json:"densities,omitempty"`
}

// HalfWidth returns half the road width.
func (g GenerationConfig) HalfWidth() float64 {
	return g.RoadWidth * 0.5
}

// EnvironmentConfig controls the decorative scatter pass beyond the road.
type EnvironmentConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	// Spacing is the step along the road between scatter rows.
	Spacing float64 `yaml:"spacing" json:"spacing"`
	// Density is the chance of a piece per side per row.
	Density float64 `yaml:"density" json:"density"`
	// BandOffset is the gap between the road edge and the scatter band.
	BandOffset float64 `yaml:"band_offset" json:"band_offset"`
	BandWidth  float64 `yaml:"band_width" json:"band_width"`

	UnderRoad        bool    `yaml:"under_road" json:"under_road"`
	UnderRoadDepth   float64 `yaml:"under_road_depth" json:"under_road_depth"`
	UnderRoadSpacing float64 `yaml:"under_road_spacing" json:"under_road_spacing"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// BakeConfig names where an authored level is persisted.
type BakeConfig struct {
	AppName string `yaml:"app_name" json:"app_name"`
	LevelID string `yaml:"level_id" json:"level_id"`
}
