package scene

import (
	"math"
	"testing"

	"github.com/ChicagoDave/roadgen/pkg/geo"
	"github.com/ChicagoDave/roadgen/pkg/prefab"
)

func TestFindOrCreateIdempotent(t *testing.T) {
	g := NewGraph("Level")
	a := g.FindOrCreate(Pickups)
	b := g.FindOrCreate(Pickups)
	if a != b {
		t.Error("FindOrCreate should return the existing container")
	}
	if len(g.Containers) != 1 {
		t.Errorf("expected 1 container, got %d", len(g.Containers))
	}
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	g := NewGraph("Level")
	n1 := g.Add(Obstacles, &Node{Template: "rock"})
	n2 := g.Add(Pickups, &Node{Template: "coin"})
	if n1.ID == "" || n2.ID == "" || n1.ID == n2.ID {
		t.Errorf("expected distinct IDs, got %q and %q", n1.ID, n2.ID)
	}
	if n1.ID != "obstacles_00000" {
		t.Errorf("unexpected ID format %q", n1.ID)
	}
	if n1.Name != "rock" {
		t.Errorf("name should default to template, got %q", n1.Name)
	}

	// IDs keep growing after a removal.
	g.Remove(n1.ID)
	n3 := g.Add(Obstacles, &Node{Template: "rock"})
	if n3.ID == n1.ID {
		t.Error("IDs must not be reused after removal")
	}
}

func TestRemove(t *testing.T) {
	g := NewGraph("Level")
	g.Add(Decor, &Node{Template: "bush"})
	keep := g.Add(Decor, &Node{Template: "tree"})
	gone := g.Add(Gates, &Node{Template: "gate"})

	if !g.Remove(gone.ID) {
		t.Fatal("Remove should find the gate")
	}
	if g.Remove(gone.ID) {
		t.Error("second Remove should report false")
	}
	if g.Len() != 2 {
		t.Errorf("expected 2 nodes, got %d", g.Len())
	}

	if !g.Remove(keep.ID) {
		t.Fatal("Remove should find the tree")
	}
	if got := g.Container(Decor).Nodes; len(got) != 1 || got[0].Template != "bush" {
		t.Errorf("expected only the bush to remain, got %d nodes", len(got))
	}
	if g.Remove("missing") {
		t.Error("removing an unknown ID should report false")
	}
}

func TestContainerFor(t *testing.T) {
	cases := map[prefab.Category]string{
		prefab.Obstacle:       Obstacles,
		prefab.Pickup:         Pickups,
		prefab.Decor:          Decor,
		prefab.MountainLeft:   Walls,
		prefab.MountainRight:  Walls,
		prefab.Wall:           Walls,
		prefab.Gate:           Gates,
		prefab.Checkpoint:     Checkpoints,
		prefab.MovingObstacle: Moving,
	}
	for cat, want := range cases {
		if got := ContainerFor(cat); got != want {
			t.Errorf("ContainerFor(%s) = %s, want %s", cat, got, want)
		}
	}
}

func TestMoverOffset(t *testing.T) {
	m := Mover{Axis: geo.V3(1, 0, 0), Distance: 2, Speed: 1}

	// Phase 0 starts at the midpoint and peaks a quarter cycle later.
	if off := m.Offset(0); off.Len() > 1e-9 {
		t.Errorf("expected zero offset at t=0, got %v", off)
	}
	if off := m.Offset(0.25); math.Abs(off.X()-1) > 1e-9 {
		t.Errorf("expected +1 at quarter cycle, got %v", off)
	}
	if off := m.Offset(0.75); math.Abs(off.X()+1) > 1e-9 {
		t.Errorf("expected -1 at three-quarter cycle, got %v", off)
	}

	for tt := 0.0; tt < 3; tt += 0.1 {
		if off := m.Offset(tt); off.Len() > m.Distance/2+1e-9 {
			t.Fatalf("offset %v exceeds half distance at t=%.1f", off, tt)
		}
	}

	still := Mover{Axis: geo.V3(1, 0, 0), Distance: 0, Speed: 1}
	if off := still.Offset(0.25); off.Len() != 0 {
		t.Error("zero-distance mover should not move")
	}
}

func TestComputeBounds(t *testing.T) {
	g := NewGraph("Level")
	g.Add(Decor, &Node{Position: geo.V3(-3, 0, 0)})
	g.Add(Decor, &Node{
		Position: geo.V3(4, 0, 10),
		Bounds:   geo.Box(geo.V3(4, 1, 10), geo.V3(2, 2, 2)),
	})
	b := g.ComputeBounds()
	if b.Min.X() != -3 || b.Max.X() != 5 || b.Max.Y() != 2 || b.Max.Z() != 11 {
		t.Errorf("unexpected bounds %v", b)
	}
}
