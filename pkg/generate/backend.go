package generate

import "github.com/ChicagoDave/roadgen/pkg/scene"

// Backend creates and destroys scene nodes. The same placement algorithm
// runs over either backend; only bookkeeping differs.
type Backend interface {
	// Begin opens a new group of operations, labelled for undo.
	Begin(label string)
	Instantiate(g *scene.Graph, container string, n *scene.Node) *scene.Node
	Destroy(g *scene.Graph, container string, n *scene.Node)
}

// RuntimeBackend mutates the scene directly with no history.
type RuntimeBackend struct{}

func (RuntimeBackend) Begin(string) {}

func (RuntimeBackend) Instantiate(g *scene.Graph, container string, n *scene.Node) *scene.Node {
	return g.Add(container, n)
}

func (RuntimeBackend) Destroy(g *scene.Graph, _ string, n *scene.Node) {
	g.Remove(n.ID)
}

type opKind int

const (
	opCreate opKind = iota
	opDestroy
)

type journalEntry struct {
	kind      opKind
	container string
	node      *scene.Node
}

type undoGroup struct {
	label   string
	entries []journalEntry
}

// AuthoringBackend records every operation so a whole pass can be undone.
type AuthoringBackend struct {
	groups []undoGroup
}

// NewAuthoringBackend creates a backend with an empty journal.
func NewAuthoringBackend() *AuthoringBackend {
	return &AuthoringBackend{}
}

func (b *AuthoringBackend) Begin(label string) {
	b.groups = append(b.groups, undoGroup{label: label})
}

func (b *AuthoringBackend) Instantiate(g *scene.Graph, container string, n *scene.Node) *scene.Node {
	n = g.Add(container, n)
	b.record(journalEntry{kind: opCreate, container: container, node: n})
	return n
}

func (b *AuthoringBackend) Destroy(g *scene.Graph, container string, n *scene.Node) {
	if g.Remove(n.ID) {
		b.record(journalEntry{kind: opDestroy, container: container, node: n})
	}
}

func (b *AuthoringBackend) record(e journalEntry) {
	if len(b.groups) == 0 {
		b.groups = append(b.groups, undoGroup{})
	}
	last := &b.groups[len(b.groups)-1]
	last.entries = append(last.entries, e)
}

// Undo reverts the most recent group and returns its label. ok is false when
// the journal is empty.
func (b *AuthoringBackend) Undo(g *scene.Graph) (label string, ok bool) {
	if len(b.groups) == 0 {
		return "", false
	}
	grp := b.groups[len(b.groups)-1]
	b.groups = b.groups[:len(b.groups)-1]

	for i := len(grp.entries) - 1; i >= 0; i-- {
		e := grp.entries[i]
		switch e.kind {
		case opCreate:
			g.Remove(e.node.ID)
		case opDestroy:
			g.Add(e.container, e.node)
		}
	}
	return grp.label, true
}

// Depth returns the number of undoable groups.
func (b *AuthoringBackend) Depth() int {
	return len(b.groups)
}
