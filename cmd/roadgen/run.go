package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ChicagoDave/roadgen/pkg/bake"
	"github.com/ChicagoDave/roadgen/pkg/config"
	"github.com/ChicagoDave/roadgen/pkg/generate"
	"github.com/ChicagoDave/roadgen/pkg/scene"
	"github.com/ChicagoDave/roadgen/pkg/validation"
)

// loadProject loads the level project and installs the logger it asks for.
func loadProject(projectPath string) (*config.Project, *slog.Logger, error) {
	p, err := config.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading project: %w", err)
	}
	lc := p.Logging
	lc.Level = p.LogLevel()
	return p, setupLogger(lc), nil
}

// openStore opens the bake store, degrading to memory when the data
// directory is unavailable.
func openStore(p *config.Project, log *slog.Logger) *bake.Store {
	s, err := bake.Open(p.Bake.AppName, log)
	if err != nil {
		log.Warn("bake store unavailable, scenes will not persist", "error", err)
		return bake.NewStore(nil, log)
	}
	return s
}

func runValidate(projectPath string) error {
	p, _, err := loadProject(projectPath)
	if err != nil {
		return err
	}
	report := validation.ValidateConfig(p)
	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runGenerate(projectPath string, seed int64, doBake, debugRun bool) error {
	p, log, err := loadProject(projectPath)
	if err != nil {
		return err
	}
	report := validation.ValidateConfig(p)
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("project has validation errors")
	}

	p.Generation.Mode = config.ModeAuthoring
	g := generate.FromProject(p, nil, seed, log)
	if _, err := g.LoadTemplates(); err != nil {
		log.Warn("template bundle not loaded", "error", err)
	}

	if debugRun {
		err = g.RunDebug()
	} else {
		err = g.GenerateAll()
	}
	if err != nil {
		return err
	}
	report.Merge(g.Report())
	report.Merge(scene.ValidateGraph(g.Scene()))

	if doBake {
		if err := openStore(p, log).Save(p.Bake.LevelID, g.Scene()); err != nil {
			return err
		}
	}

	output := map[string]any{
		"seed":        g.Scene().Metadata.Seed,
		"stats":       g.Stats(),
		"validation":  report,
		"scene_graph": g.Scene(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func runPlay(ctx context.Context, projectPath string, seed int64) error {
	p, log, err := loadProject(projectPath)
	if err != nil {
		return err
	}
	p.Generation.Mode = config.ModeRuntime

	var baked *scene.Graph
	g, found, err := openStore(p, log).Load(p.Bake.LevelID)
	switch {
	case err != nil:
		log.Warn("baked scene unreadable, generating fresh", "level", p.Bake.LevelID, "error", err)
	case found:
		log.Info("baked scene loaded", "level", p.Bake.LevelID, "nodes", g.Len())
		baked = g
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	gen := generate.FromProject(p, baked, seed, log)
	if err := gen.Start(ctx); err != nil {
		return err
	}
	printPlaySummary(gen)
	return nil
}
