package scene

import (
	"fmt"
	"strings"

	"github.com/ChicagoDave/roadgen/pkg/geo"
)

// FindOrCreate returns the container called name, creating it if needed.
func (g *Graph) FindOrCreate(name string) *Container {
	if c := g.Container(name); c != nil {
		return c
	}
	c := &Container{Name: name, Nodes: []*Node{}}
	g.Containers = append(g.Containers, c)
	return c
}

// Container returns the container called name, or nil.
func (g *Graph) Container(name string) *Container {
	for _, c := range g.Containers {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Add appends n to the named container, creating the container if needed.
// Nodes without an ID get one derived from the container name.
func (g *Graph) Add(container string, n *Node) *Node {
	c := g.FindOrCreate(container)
	if n.ID == "" {
		n.ID = fmt.Sprintf("%s_%05d", strings.ToLower(strings.TrimPrefix(container, Prefix)), g.Seq)
		g.Seq++
	}
	if n.Name == "" {
		n.Name = n.Template
	}
	c.Nodes = append(c.Nodes, n)
	return n
}

// Remove deletes the node with the given ID. It reports whether it was found.
func (g *Graph) Remove(id string) bool {
	for _, c := range g.Containers {
		for i, n := range c.Nodes {
			if n.ID == id {
				c.Nodes = append(c.Nodes[:i], c.Nodes[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Len returns the number of nodes across all containers.
func (g *Graph) Len() int {
	n := 0
	for _, c := range g.Containers {
		n += len(c.Nodes)
	}
	return n
}

// Nodes returns every node in container order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, g.Len())
	for _, c := range g.Containers {
		out = append(out, c.Nodes...)
	}
	return out
}

// Counts returns the number of nodes per container.
func (g *Graph) Counts() map[string]int {
	out := make(map[string]int, len(g.Containers))
	for _, c := range g.Containers {
		out[c.Name] = len(c.Nodes)
	}
	return out
}

// ComputeBounds returns the box enclosing every node position and bounds.
func (g *Graph) ComputeBounds() geo.AABB {
	var b geo.AABB
	first := true
	for _, n := range g.Nodes() {
		nb := geo.AABB{Min: n.Position, Max: n.Position}
		if !n.Bounds.IsZero() {
			nb = nb.Encapsulate(n.Bounds)
		}
		if first {
			b = nb
			first = false
			continue
		}
		b = b.Encapsulate(nb)
	}
	return b
}
