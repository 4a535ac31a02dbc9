// Package generate places obstacles, pickups, decor and structural pieces
// along a road curve and maintains the generated scene across passes.
package generate

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/ChicagoDave/roadgen/pkg/collide"
	"github.com/ChicagoDave/roadgen/pkg/config"
	"github.com/ChicagoDave/roadgen/pkg/geo"
	"github.com/ChicagoDave/roadgen/pkg/placement"
	"github.com/ChicagoDave/roadgen/pkg/prefab"
	"github.com/ChicagoDave/roadgen/pkg/scene"
	"github.com/ChicagoDave/roadgen/pkg/validation"
)

var (
	// ErrNoCurve means no road curve was supplied.
	ErrNoCurve = errors.New("no road curve assigned")
	// ErrEmptyCurve means the road curve has non-positive length.
	ErrEmptyCurve = errors.New("road curve has zero length")
)

// DefaultRoot is the scene root name used when no graph is supplied.
const DefaultRoot = "LevelBuilder"

// State is the orchestrator's position in a generation pass.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateValidated     State = "validated"
	StatePreserved     State = "preserved"
	StateRegenerated   State = "regenerated"
	StateDone          State = "done"
)

// Options wires a Generator to its collaborators. Curve and Pools are
// required for a useful pass; everything else has a default.
type Options struct {
	Curve       geo.Curve
	Ground      collide.Raycaster
	Overlap     collide.Overlapper
	Pools       *prefab.Pools
	Config      config.GenerationConfig
	Environment config.EnvironmentConfig

	// Scene receives the generated nodes. A new graph is created when nil.
	Scene *scene.Graph
	// Backend creates and destroys nodes. Chosen from Config.Mode when nil.
	Backend Backend
	// Rand is the random source for the whole pass. Seeded from Seed when nil.
	Rand *rand.Rand
	Seed int64
	// Loader supplies templates for the auto-loader when Pools is empty.
	Loader func() ([]*prefab.Template, error)
	Logger *slog.Logger
}

// Generator runs generation passes for one level. It is not safe for
// concurrent use; one Generator owns one scene.
type Generator struct {
	cfg     config.GenerationConfig
	env     config.EnvironmentConfig
	curve   geo.Curve
	ground  collide.Raycaster
	pools   *prefab.Pools
	graph   *scene.Graph
	backend Backend
	rng     *rand.Rand
	seed    int64
	loader  func() ([]*prefab.Template, error)
	log     *slog.Logger

	registry *placement.Registry
	gate     *placement.Gate

	state   State
	outcome State
	stats   *Stats
	report  *validation.Report
}

// New creates a Generator from opts.
func New(opts Options) *Generator {
	g := &Generator{
		cfg:     opts.Config,
		env:     opts.Environment,
		curve:   opts.Curve,
		ground:  opts.Ground,
		pools:   opts.Pools,
		graph:   opts.Scene,
		backend: opts.Backend,
		rng:     opts.Rand,
		seed:    opts.Seed,
		loader:  opts.Loader,
		log:     opts.Logger,
		state:   StateUninitialized,
		stats:   newStats(),
		report:  validation.NewReport(),
	}
	if g.pools == nil {
		g.pools = &prefab.Pools{}
	}
	if g.graph == nil {
		g.graph = scene.NewGraph(DefaultRoot)
	}
	if g.backend == nil {
		if g.cfg.Mode == config.ModeRuntime {
			g.backend = RuntimeBackend{}
		} else {
			g.backend = NewAuthoringBackend()
		}
	}
	if g.rng == nil {
		if g.seed == 0 {
			g.seed = time.Now().UnixNano()
		}
		g.rng = rand.New(rand.NewSource(g.seed))
	}
	if g.log == nil {
		g.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	g.registry = placement.NewRegistry()
	g.gate = &placement.Gate{
		Registry:   g.registry,
		Overlap:    opts.Overlap,
		Mask:       collide.LayerMask(g.cfg.OverlapLayers),
		UsePhysics: g.cfg.PhysicsOverlap,
		Force:      g.cfg.ForceSpawn,
	}
	return g
}

// Scene returns the graph the generator writes to.
func (g *Generator) Scene() *scene.Graph { return g.graph }

// Registry returns the placement registry of the current pass.
func (g *Generator) Registry() *placement.Registry { return g.registry }

// Stats returns counters for the most recent pass.
func (g *Generator) Stats() *Stats { return g.stats }

// Report returns the placement findings of the most recent pass.
func (g *Generator) Report() *validation.Report { return g.report }

// State returns the current orchestrator state.
func (g *Generator) State() State { return g.state }

// Outcome returns StatePreserved or StateRegenerated for the last completed
// pass, or StateUninitialized before any pass finished.
func (g *Generator) Outcome() State {
	if g.outcome == "" {
		return StateUninitialized
	}
	return g.outcome
}

// Config returns the generation tunables in effect.
func (g *Generator) Config() config.GenerationConfig { return g.cfg }

// Curve returns the road curve.
func (g *Generator) Curve() geo.Curve { return g.curve }

// Backend returns the node-creation backend.
func (g *Generator) Backend() Backend { return g.backend }

// Pools returns the template pools in use.
func (g *Generator) Pools() *prefab.Pools { return g.pools }

// GenerateAll runs one full generation pass. In runtime mode existing
// content is kept when the preserve flag is set; authoring passes always
// regenerate. A missing or empty curve aborts before anything is touched.
func (g *Generator) GenerateAll() error {
	if err := g.validateCurve(); err != nil {
		g.log.Error("generation aborted", "error", err)
		return err
	}
	g.state = StateValidated
	g.prepareContainers()

	if g.cfg.Mode == config.ModeRuntime && g.cfg.Preserve && g.hasGenerated() {
		n := g.cacheExisting()
		g.log.Debug("preserving existing generated objects", "cached", n)
		g.finish(StatePreserved)
		return nil
	}

	g.backend.Begin(fmt.Sprintf("generate %s", g.cfg.Mode))
	g.clear()
	g.stats = newStats()
	g.report = validation.NewReport()

	if g.pools.HasMountains() {
		g.placeMountainWalls()
	} else if g.cfg.FallbackWalls {
		g.placeBoxWalls()
	}
	g.placeGates()
	g.placeSpawnables()
	g.placeMovingObstacles()
	g.placeCheckpoints()
	if g.env.Enabled {
		g.placeEnvironment()
	}

	g.stampMetadata()
	g.summarize()
	g.log.Debug("generation finished", "mode", g.cfg.Mode, "nodes", g.graph.Len(), "placed", g.registry.Len())
	g.finish(StateRegenerated)
	return nil
}

// ClearAll removes every generated node and resets the registry. Calling it
// on an already empty scene is a no-op.
func (g *Generator) ClearAll() {
	g.prepareContainers()
	if g.hasGenerated() {
		g.backend.Begin("clear")
	}
	g.clear()
	g.state = StateUninitialized
}

// SafeGenerate calls GenerateAll and converts a panic into an error so a
// driver loop never sees one.
func SafeGenerate(g *Generator) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generation panicked: %v", r)
			g.log.Error("generation panicked", "panic", r)
		}
	}()
	return g.GenerateAll()
}

func (g *Generator) validateCurve() error {
	if g.curve == nil {
		return ErrNoCurve
	}
	if l := g.curve.Length(); l <= 0 || !isFinite(l) {
		return fmt.Errorf("%w (length %v)", ErrEmptyCurve, l)
	}
	return nil
}

func (g *Generator) prepareContainers() {
	for _, name := range scene.ContainerNames {
		g.graph.FindOrCreate(name)
	}
}

func (g *Generator) clear() {
	for _, name := range scene.ContainerNames {
		c := g.graph.Container(name)
		if c == nil {
			continue
		}
		// Iterate over a snapshot since Destroy mutates the container.
		nodes := append([]*scene.Node(nil), c.Nodes...)
		for i := len(nodes) - 1; i >= 0; i-- {
			g.backend.Destroy(g.graph, name, nodes[i])
		}
	}
	g.registry.Reset()
}

func (g *Generator) hasGenerated() bool {
	for _, name := range scene.ContainerNames {
		if c := g.graph.Container(name); c != nil && len(c.Nodes) > 0 {
			return true
		}
	}
	return false
}

func (g *Generator) stampMetadata() {
	g.graph.Metadata = scene.Metadata{
		GenerationID: uuid.NewString(),
		Mode:         string(g.cfg.Mode),
		Seed:         g.seed,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		RoadLength:   g.curve.Length(),
		Bounds:       g.graph.ComputeBounds(),
	}
}

func (g *Generator) finish(outcome State) {
	g.outcome = outcome
	g.state = StateDone
}
