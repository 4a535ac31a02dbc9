package generate

import (
	"context"
	"fmt"
	"time"
)

// LoadTemplates runs the auto-loader when every pool is empty. It reports
// whether the pools were filled.
func (g *Generator) LoadTemplates() (bool, error) {
	if g.loader == nil || !g.pools.Empty() {
		return false, nil
	}
	templates, err := g.loader()
	if err != nil {
		return false, fmt.Errorf("loading templates: %w", err)
	}
	filled := g.pools.Fill(templates)
	g.log.Info("templates auto-loaded", "found", len(templates), "pooled", g.pools.Count())
	return filled, nil
}

// Start is the runtime entry point. It fills empty pools from the loader,
// waits the configured start delay so the rest of the level can settle, then
// runs one generation pass. Cancelling ctx during the delay skips the pass,
// and so does a config with auto start turned off.
func (g *Generator) Start(ctx context.Context) error {
	if !g.cfg.AutoStart {
		g.log.Info("auto start disabled, skipping generation")
		return nil
	}
	if _, err := g.LoadTemplates(); err != nil {
		g.log.Warn("auto-load failed", "error", err)
	}

	if g.cfg.StartDelay > 0 {
		timer := time.NewTimer(g.cfg.StartDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}
	return SafeGenerate(g)
}
