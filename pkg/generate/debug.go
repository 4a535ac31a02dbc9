package generate

import "github.com/ChicagoDave/roadgen/pkg/prefab"

// debugSegmentLength is used when neither segment setting is configured.
const debugSegmentLength = 6.0

// RunDebug is a smoke test for a level: it substitutes placeholder
// templates when no spawnable pool is populated, forces spawning for the
// duration of one pass and reports the pass error, if any.
func (g *Generator) RunDebug() error {
	g.log.Info("debug run",
		"road_length", g.roadLength(),
		"segment_length", g.cfg.SegmentLength,
		"segments_count", g.cfg.SegmentsCount,
		"obstacles", len(g.pools.Obstacles),
		"pickups", len(g.pools.Pickups),
		"decor", len(g.pools.Decor),
		"force_spawn", g.cfg.ForceSpawn)

	if len(g.pools.Obstacles) == 0 && len(g.pools.Pickups) == 0 && len(g.pools.Decor) == 0 {
		g.log.Warn("no templates assigned, using placeholders")
		ph := prefab.Placeholders()
		g.pools.Obstacles = append(g.pools.Obstacles, ph[0])
		g.pools.Pickups = append(g.pools.Pickups, ph[1])
	}

	if g.cfg.SegmentsCount <= 0 && g.cfg.SegmentLength <= 0.001 {
		g.log.Warn("segment settings are zero, using default length", "segment_length", debugSegmentLength)
		g.cfg.SegmentLength = debugSegmentLength
	}

	oldForce := g.cfg.ForceSpawn
	g.setForce(true)
	defer g.setForce(oldForce)

	if err := SafeGenerate(g); err != nil {
		g.log.Error("debug run failed", "error", err)
		return err
	}
	g.log.Info("debug run finished", "nodes", g.graph.Len(), "placed", g.stats.TotalPlaced())
	return nil
}

func (g *Generator) setForce(on bool) {
	g.cfg.ForceSpawn = on
	g.gate.Force = on
}

func (g *Generator) roadLength() float64 {
	if g.curve == nil {
		return 0
	}
	return g.curve.Length()
}
