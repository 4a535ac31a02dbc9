package main

import (
	"fmt"
	"sort"

	"github.com/ChicagoDave/roadgen/pkg/generate"
	"github.com/ChicagoDave/roadgen/pkg/prefab"
	"github.com/ChicagoDave/roadgen/pkg/scene"
	"github.com/ChicagoDave/roadgen/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.Path != "" {
				fmt.Printf("    -> %s = %v\n", e.Path, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
			for _, s := range e.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.Path != "" {
				fmt.Printf("    -> %s = %v\n", w.Path, w.ActualValue)
			}
			if w.Expected != "" {
				fmt.Printf("    expected: %s\n", w.Expected)
			}
			for _, s := range w.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
	fmt.Printf("By stage: config %d, placement %d, scene %d\n",
		r.Count(validation.LevelConfig), r.Count(validation.LevelPlacement), r.Count(validation.LevelScene))
}

func printPlaySummary(g *generate.Generator) {
	fmt.Printf("Outcome: %s\n", g.Outcome())
	if g.Outcome() == generate.StatePreserved {
		fmt.Printf("Preserved %d existing objects\n", g.Stats().Preserved)
	}
	fmt.Println()

	counts := g.Scene().Counts()
	fmt.Printf("%-24s %8s\n", "Container", "Nodes")
	fmt.Printf("%-24s %8s\n", "------------------------", "--------")
	for _, name := range scene.ContainerNames {
		fmt.Printf("%-24s %8d\n", name, counts[name])
	}

	if len(g.Stats().Categories) == 0 {
		return
	}
	fmt.Println()
	printStatsTable(g.Stats())
}

func printStatsTable(st *generate.Stats) {
	cats := make([]string, 0, len(st.Categories))
	for c := range st.Categories {
		cats = append(cats, string(c))
	}
	sort.Strings(cats)

	fmt.Printf("%-16s %8s %8s %8s %8s\n", "Category", "Trials", "Attempts", "Placed", "Rejected")
	fmt.Printf("%-16s %8s %8s %8s %8s\n", "----------------", "--------", "--------", "--------", "--------")
	for _, c := range cats {
		cs := st.Categories[prefab.Category(c)]
		rejected := 0
		for _, n := range cs.Rejected {
			rejected += n
		}
		fmt.Printf("%-16s %8d %8d %8d %8d\n", c, cs.Trials, cs.Attempts, cs.Placed, rejected)
	}
	fmt.Printf("\nSegments: %d\n", st.Segments)
}
