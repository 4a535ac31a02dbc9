package generate

import (
	"math"

	"github.com/ChicagoDave/roadgen/pkg/scene"
)

const minCachedRadius = 0.01

// cacheExisting records every node already under the generator containers in
// the registry so later placements keep their distance. It returns the number
// of nodes recorded.
func (g *Generator) cacheExisting() int {
	g.registry.Reset()
	n := 0
	for _, name := range scene.ContainerNames {
		c := g.graph.Container(name)
		if c == nil {
			continue
		}
		for _, node := range c.Nodes {
			g.registry.Add(node.Position, g.cachedRadius(node))
			n++
		}
	}
	g.stats = newStats()
	g.stats.Preserved = n
	return n
}

// cachedRadius estimates a footprint from the node's own bounds, falling
// back to half the minimum spacing.
func (g *Generator) cachedRadius(n *scene.Node) float64 {
	if !n.Bounds.IsZero() {
		ext := n.Bounds.Extents()
		if r := math.Max(ext.X(), ext.Z()); r >= minCachedRadius {
			return r
		}
	}
	return g.cfg.MinSpacing * 0.5
}
