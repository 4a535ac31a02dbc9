package scene

import (
	"fmt"
	"math"

	"github.com/ChicagoDave/roadgen/pkg/geo"
	"github.com/ChicagoDave/roadgen/pkg/validation"
)

// ValidateGraph performs structural validation on a generated scene graph.
// It checks node identity, container membership, and transform sanity.
func ValidateGraph(g *Graph) *validation.Report {
	r := validation.NewReport()

	if g == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelScene,
			Message: "scene graph is nil",
		})
		return r
	}

	validateNodeIDs(g, r)
	validateContainers(g, r)
	validateMembership(g, r)
	validateTransforms(g, r)
	validateBoundsEnclosure(g, r)

	return r
}

func validateNodeIDs(g *Graph, r *validation.Report) {
	seen := make(map[string]string)

	for _, c := range g.Containers {
		for i, n := range c.Nodes {
			path := fmt.Sprintf("%s[%d].id", c.Name, i)
			if n.ID == "" {
				r.AddError(validation.Result{
					Level:       validation.LevelScene,
					Message:     fmt.Sprintf("node at %s[%d] has empty ID", c.Name, i),
					Path:        path,
					ActualValue: "",
					Expected:    "non-empty string",
				})
				continue
			}
			if prev, exists := seen[n.ID]; exists {
				r.AddError(validation.Result{
					Level:       validation.LevelScene,
					Message:     fmt.Sprintf("duplicate node ID %q in %s and %s", n.ID, prev, c.Name),
					Path:        path,
					ActualValue: n.ID,
				})
			}
			seen[n.ID] = c.Name
		}
	}
}

func validateContainers(g *Graph, r *validation.Report) {
	known := make(map[string]bool, len(ContainerNames))
	for _, name := range ContainerNames {
		known[name] = true
	}

	seen := make(map[string]bool, len(g.Containers))
	for i, c := range g.Containers {
		if seen[c.Name] {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("container %q appears more than once", c.Name),
				Path:        fmt.Sprintf("containers[%d].name", i),
				ActualValue: c.Name,
			})
		}
		seen[c.Name] = true

		if !known[c.Name] {
			r.AddWarning(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("container %q is not a generator container", c.Name),
				Path:        fmt.Sprintf("containers[%d].name", i),
				ActualValue: c.Name,
			})
		}
	}
}

func validateMembership(g *Graph, r *validation.Report) {
	for _, c := range g.Containers {
		for i, n := range c.Nodes {
			if n.Category == "" {
				continue
			}
			if want := ContainerFor(n.Category); want != c.Name {
				r.AddError(validation.Result{
					Level:       validation.LevelScene,
					Message:     fmt.Sprintf("node %q has category %q but sits in %s", n.ID, n.Category, c.Name),
					Path:        fmt.Sprintf("%s[%d].category", c.Name, i),
					ActualValue: string(n.Category),
					Expected:    want,
				})
			}
		}
	}
}

func validateTransforms(g *Graph, r *validation.Report) {
	for _, c := range g.Containers {
		for i, n := range c.Nodes {
			if !geo.IsFinite(n.Position) {
				r.AddError(validation.Result{
					Level:       validation.LevelScene,
					Message:     fmt.Sprintf("node %q has a non-finite position", n.ID),
					Path:        fmt.Sprintf("%s[%d].position", c.Name, i),
					ActualValue: fmt.Sprintf("%v", n.Position),
				})
			}

			q := n.Rotation
			norm := math.Sqrt(q[0]*q[0] + q[1]*q[1] + q[2]*q[2] + q[3]*q[3])
			if math.Abs(norm-1) > 1e-3 {
				r.AddWarning(validation.Result{
					Level:       validation.LevelScene,
					Message:     fmt.Sprintf("node %q rotation is not a unit quaternion (|q| = %.4f)", n.ID, norm),
					Path:        fmt.Sprintf("%s[%d].rotation", c.Name, i),
					ActualValue: norm,
					Expected:    "1.0",
				})
			}

			if n.Collider != nil {
				s := n.Collider.Size
				if s.X() <= 0 || s.Y() <= 0 || s.Z() <= 0 {
					r.AddWarning(validation.Result{
						Level:       validation.LevelScene,
						Message:     fmt.Sprintf("node %q collider has zero or negative size (%.2f, %.2f, %.2f)", n.ID, s.X(), s.Y(), s.Z()),
						Path:        fmt.Sprintf("%s[%d].collider.size", c.Name, i),
						ActualValue: fmt.Sprintf("%.2f x %.2f x %.2f", s.X(), s.Y(), s.Z()),
						Expected:    "all dimensions > 0",
					})
				}
			}
		}
	}
}

func validateBoundsEnclosure(g *Graph, r *validation.Report) {
	bounds := g.Metadata.Bounds
	if bounds.IsZero() {
		return
	}
	tolerance := 1.0
	grown := geo.AABB{
		Min: bounds.Min.Sub(geo.V3(tolerance, tolerance, tolerance)),
		Max: bounds.Max.Add(geo.V3(tolerance, tolerance, tolerance)),
	}

	for _, n := range g.Nodes() {
		if !grown.Contains(n.Position) {
			r.AddWarning(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("node %q at (%.1f, %.1f, %.1f) lies outside the scene bounds", n.ID, n.Position.X(), n.Position.Y(), n.Position.Z()),
				Path:        "metadata.bounds",
				ActualValue: fmt.Sprintf("%v", n.Position),
			})
			break
		}
	}
}
