package generate

import (
	"fmt"
	"sort"

	"github.com/ChicagoDave/roadgen/pkg/placement"
	"github.com/ChicagoDave/roadgen/pkg/prefab"
	"github.com/ChicagoDave/roadgen/pkg/validation"
)

// Rejection reasons beyond the gate's own.
const (
	RejectHeight     placement.Reason = "height"
	RejectNoTemplate placement.Reason = "no_template"
)

// CategoryStats counts what happened to one category during a pass.
type CategoryStats struct {
	// Trials is the number of density draws made.
	Trials int `json:"trials"`
	// Attempts is the number of resolver calls.
	Attempts int                      `json:"attempts"`
	Placed   int                      `json:"placed"`
	Rejected map[placement.Reason]int `json:"rejected,omitempty"`
}

// Stats collects per-category counters for one pass.
type Stats struct {
	Categories map[prefab.Category]*CategoryStats `json:"categories"`
	Segments   int                                `json:"segments"`
	Preserved  int                                `json:"preserved"`
}

func newStats() *Stats {
	return &Stats{Categories: make(map[prefab.Category]*CategoryStats)}
}

// For returns the counters for cat, creating them on first use.
func (s *Stats) For(cat prefab.Category) *CategoryStats {
	cs, ok := s.Categories[cat]
	if !ok {
		cs = &CategoryStats{Rejected: make(map[placement.Reason]int)}
		s.Categories[cat] = cs
	}
	return cs
}

func (s *Stats) trial(cat prefab.Category) { s.For(cat).Trials++ }

func (s *Stats) attempt(cat prefab.Category) { s.For(cat).Attempts++ }

func (s *Stats) placed(cat prefab.Category) { s.For(cat).Placed++ }

func (s *Stats) reject(cat prefab.Category, r placement.Reason) { s.For(cat).Rejected[r]++ }

// TotalPlaced sums placements across categories.
func (s *Stats) TotalPlaced() int {
	n := 0
	for _, cs := range s.Categories {
		n += cs.Placed
	}
	return n
}

// summarize turns the pass counters into report findings.
func (g *Generator) summarize() {
	cats := make([]string, 0, len(g.stats.Categories))
	for c := range g.stats.Categories {
		cats = append(cats, string(c))
	}
	sort.Strings(cats)

	for _, c := range cats {
		cs := g.stats.Categories[prefab.Category(c)]
		g.report.AddInfo(validation.Result{
			Level:   validation.LevelPlacement,
			Message: fmt.Sprintf("%s: %d trials, %d attempts, %d placed", c, cs.Trials, cs.Attempts, cs.Placed),
			Path:    c,
		})
		if n := cs.Rejected[RejectHeight]; n > 0 {
			g.report.AddWarning(validation.Result{
				Level:       validation.LevelPlacement,
				Message:     fmt.Sprintf("%s: %d placements skipped for exceeding max height %.1f", c, n, g.cfg.MaxObstacleHeight),
				Path:        c,
				ActualValue: n,
			})
		}
	}

	if g.stats.TotalPlaced() == 0 {
		g.report.AddWarning(validation.Result{
			Level:       validation.LevelPlacement,
			Message:     "pass placed nothing",
			Suggestions: []string{"Check that template pools are populated", "Lower min_spacing or enable force_spawn"},
		})
	}
}
