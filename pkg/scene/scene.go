package scene

import (
	"math"

	"github.com/ChicagoDave/roadgen/pkg/geo"
	"github.com/ChicagoDave/roadgen/pkg/prefab"
)

// Prefix marks containers owned by the generator.
const Prefix = "Generated_"

// Container names, one per placement category.
const (
	Walls       = Prefix + "RoadWalls"
	Obstacles   = Prefix + "Obstacles"
	Pickups     = Prefix + "Pickups"
	Moving      = Prefix + "Moving"
	Decor       = Prefix + "Decor"
	Checkpoints = Prefix + "Checkpoints"
	Gates       = Prefix + "Gates"
)

// ContainerNames lists every generator container in creation order.
var ContainerNames = []string{Walls, Obstacles, Pickups, Moving, Decor, Checkpoints, Gates}

// ContainerFor returns the container that holds objects of cat.
func ContainerFor(cat prefab.Category) string {
	switch cat {
	case prefab.Wall, prefab.MountainLeft, prefab.MountainRight:
		return Walls
	case prefab.Obstacle:
		return Obstacles
	case prefab.Pickup:
		return Pickups
	case prefab.MovingObstacle:
		return Moving
	case prefab.Checkpoint:
		return Checkpoints
	case prefab.Gate:
		return Gates
	default:
		return Decor
	}
}

// BoxCollider is a box volume centred on its node.
type BoxCollider struct {
	Size    geo.Vec3 `yaml:"size" json:"size"`
	Trigger bool     `yaml:"trigger" json:"trigger"`
}

// Mover ping-pongs a node along Axis, Distance/2 either side of its origin.
type Mover struct {
	Axis     geo.Vec3 `yaml:"axis" json:"axis"`
	Distance float64  `yaml:"distance" json:"distance"`
	Speed    float64  `yaml:"speed" json:"speed"`
	// Phase is the starting point of the cycle in [0,1).
	Phase float64 `yaml:"phase" json:"phase"`
}

// Offset returns the displacement from the origin at time t seconds.
func (m Mover) Offset(t float64) geo.Vec3 {
	if m.Distance <= 0.001 {
		return geo.Vec3{}
	}
	s := (math.Sin((m.Phase+t*m.Speed)*2*math.Pi) + 1) * 0.5
	return m.Axis.Mul((s - 0.5) * m.Distance)
}

// Node is one placed object.
type Node struct {
	ID       string          `yaml:"id" json:"id"`
	Name     string          `yaml:"name" json:"name"`
	Template string          `yaml:"template,omitempty" json:"template,omitempty"`
	Category prefab.Category `yaml:"category" json:"category"`
	Position geo.Vec3        `yaml:"position" json:"position"`
	Rotation [4]float64      `yaml:"rotation" json:"rotation"` // quaternion [x, y, z, w]
	// Distance is where along the road the node was placed.
	Distance float64 `yaml:"distance" json:"distance"`
	// Bounds is the world-space box of the node's visual geometry, zero if none.
	Bounds   geo.AABB     `yaml:"bounds" json:"bounds"`
	Collider *BoxCollider `yaml:"collider,omitempty" json:"collider,omitempty"`
	Mover    *Mover       `yaml:"mover,omitempty" json:"mover,omitempty"`
	Tag      string       `yaml:"tag,omitempty" json:"tag,omitempty"`
}

// Container is a named group of nodes under the generator root.
type Container struct {
	Name  string  `yaml:"name" json:"name"`
	Nodes []*Node `yaml:"nodes" json:"nodes"`
}

// Graph is the generated scene: a root with named containers.
type Graph struct {
	Metadata   Metadata     `yaml:"metadata" json:"metadata"`
	Root       string       `yaml:"root" json:"root"`
	Containers []*Container `yaml:"containers" json:"containers"`
	// Seq feeds node IDs; it only grows so IDs stay unique across passes.
	Seq int `yaml:"seq" json:"seq"`
}

// Metadata holds scene-level information.
type Metadata struct {
	GenerationID string   `yaml:"generation_id" json:"generation_id"`
	Mode         string   `yaml:"mode" json:"mode"`
	Seed         int64    `yaml:"seed" json:"seed"`
	GeneratedAt  string   `yaml:"generated_at" json:"generated_at"`
	RoadLength   float64  `yaml:"road_length" json:"road_length"`
	Bounds       geo.AABB `yaml:"bounds" json:"bounds"`
}

// NewGraph creates an empty scene graph with the given root name.
func NewGraph(root string) *Graph {
	return &Graph{
		Root:       root,
		Containers: []*Container{},
	}
}
