package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/seagull/model"
	"github.com/sheikhrachel/seagull/rules"
	"github.com/sheikhrachel/seagull/utils"
)

// game drives one engine through the restart and injection policy of the
// run loop. It must only be used from one goroutine at a time.
type game struct {
	config utils.Config
	engine *model.Engine
	stats  *utils.Stats

	history        model.History
	stagnantCount  int
	total          uint64 // generations across restarts
	lastRestartGen uint64
	restarts       int64
}

// frameReport is what the simulation goroutine hands to the presenter.
// It never references engine memory.
type frameReport struct {
	frame     model.Frame
	alive     int
	glowing   int
	density   float64
	status    string
	total     uint64
	restarted string
	stats     utils.Stats
}

// initializeGame sets up the engine and seeds the first board
func initializeGame(config utils.Config) (*game, error) {
	rule, err := rules.Lookup(config.Rule)
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame]")
	}
	engine := model.NewEngine(model.WithRule(rule))
	if err = engine.Init(config.Width, config.Height); err != nil {
		return nil, errors.Wrap(err, "[initializeGame]")
	}

	g := &game{
		config: config,
		engine: engine,
		stats:  utils.NewStats(),
	}
	if err = g.reseed(); err != nil {
		engine.Cleanup()
		return nil, err
	}
	return g, nil
}

// reseed applies the configured seeder. Random seeders get a fresh seed
// per restart so that consecutive boards differ.
func (g *game) reseed() error {
	seeder, err := model.NewSeeder(g.config.Seeder, g.config.RandomDensity, g.config.RandomSeed+g.restarts)
	if err != nil {
		return errors.Wrap(err, "[game.reseed]")
	}
	g.engine.Seed(seeder)
	g.history.Reset()
	g.stagnantCount = 0
	return nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(w io.Writer, g *game) {
	fmt.Fprintf(w, "Rule: %s | Seeder: %s | Steps per frame: %d\n",
		g.config.Rule, g.config.Seeder, g.config.StepsPerFrame)
	fmt.Fprintf(w, "Grid: %dx%d | Initial living cells: %d\n",
		g.engine.Width(), g.engine.Height(), g.engine.CountAlive())
	fmt.Fprintln(w, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(w)
}

// checkRestartConditions determines if the board should be reseeded
func checkRestartConditions(alive, glowing, stagnantCount int, generation uint64, config utils.Config) (bool, string) {
	if alive == 0 && glowing == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	if config.RefreshInterval > 0 && generation >= config.RefreshInterval {
		return true, "periodic refresh"
	}
	return false, ""
}

// finished reports whether the generation limit has been reached
func (g *game) finished() bool {
	return g.config.MaxGenerations > 0 && g.total >= g.config.MaxGenerations
}

// update checks for stagnation, restarts or injects life when needed,
// advances one frame and reports the new state
func (g *game) update() frameReport {
	var (
		e          = g.engine
		frameStart = time.Now()
		hash       = e.Hash()
		report     frameReport
	)

	// Compare before recording, otherwise the state always matches itself.
	if g.history.IsStagnant(hash) {
		g.stagnantCount++
	} else {
		g.stagnantCount = 0
	}
	g.history.Update(hash)

	restart, reason := checkRestartConditions(e.CountAlive(), e.CountGlowing(), g.stagnantCount, e.Generation(), g.config)
	switch {
	case restart && g.config.AutoRestart:
		g.restarts++
		if err := g.reseed(); err == nil {
			g.lastRestartGen = g.total
			report.restarted = reason
		}
	case g.stagnantCount >= 2 && g.stagnantCount < g.config.StagnationThreshold:
		// Inject some life to try to break the stagnation
		e.Inject(model.RandomPoints(e.Width(), e.Height(), g.config.InjectionCount, g.config.RandomSeed+int64(g.total)))
	}

	e.Step(g.config.StepsPerFrame)
	g.total += uint64(g.config.StepsPerFrame)

	alive, glowing := e.CountAlive(), e.CountGlowing()
	g.stats.Update(g.total, g.config.StepsPerFrame, alive, glowing, time.Since(frameStart))

	report.frame = e.GridView().Frame()
	report.alive = alive
	report.glowing = glowing
	report.density = float64(alive) / float64((e.Width()-2)*(e.Height()-2)) * 100
	report.total = g.total
	report.stats = *g.stats
	report.status = "Active"
	switch {
	case alive == 0:
		report.status = "Extinct"
	case g.stagnantCount > 0:
		report.status = fmt.Sprintf("Stagnant (%d)", g.stagnantCount)
	}
	return report
}

// displayGameStatus shows the current game status
func displayGameStatus(w io.Writer, au aurora.Aurora, r frameReport, lastRestartGen uint64) {
	fmt.Fprintf(w, "%s %d | %s %d | %s %d | Density: %.1f%% | Status: %s\n",
		au.Green("Gen:"), r.frame.Generation,
		au.Green("Living:"), r.alive,
		au.Green("Glowing:"), r.glowing,
		r.density, r.status)
	fmt.Fprintf(w, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		r.stats.GenerationsPerSecond, r.stats.AveragePopulation, time.Since(r.stats.StartTime).Seconds())

	// Show time since last restart
	if r.total > lastRestartGen {
		fmt.Fprintf(w, "Generations since restart: %d\n", r.total-lastRestartGen)
	}
	fmt.Fprintln(w)
}

// simulate owns the engine: it advances frames until the generation limit
// or cancellation and sends a copy of every frame to reports
func (g *game) simulate(ctx context.Context, reports chan<- frameReport) error {
	for !g.finished() {
		report := g.update()
		select {
		case reports <- report:
		case <-ctx.Done():
			return nil
		}

		if g.config.FrameRate <= 0 {
			continue
		}
		timer := time.NewTimer(g.config.FrameRate)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil
		}
	}
	return nil
}

// present consumes frame reports; in terminal mode it draws them, in
// headless mode it only logs progress
func present(w io.Writer, config utils.Config, reports <-chan frameReport) error {
	var (
		renderer       = model.NewTerminalRenderer(config.Colors)
		au             = aurora.NewAurora(config.Colors)
		lastRestartGen uint64
		last           frameReport
		frames         int
	)
	for r := range reports {
		frames++
		last = r
		if r.restarted != "" {
			lastRestartGen = r.total - uint64(config.StepsPerFrame)
			model.Logger().Info("restarted", "reason", r.restarted, "total", r.total)
		}

		if config.Mode == utils.ModeHeadless {
			if frames%50 == 0 {
				model.Logger().Info("progress", "total", r.total, "alive", r.alive, "gen_per_sec", r.stats.GenerationsPerSecond)
			}
			continue
		}

		if err := renderer.Clear(w); err != nil {
			return err
		}
		displayGameStatus(w, au, r, lastRestartGen)
		if err := renderer.Display(w, r.frame); err != nil {
			return err
		}
	}
	if frames > 0 {
		fmt.Fprintf(w, "Final stats: %d generations in %.1f seconds\n",
			last.total, time.Since(last.stats.StartTime).Seconds())
		fmt.Fprintf(w, "Average: %.1f gen/sec, %.1f avg population\n",
			last.stats.GenerationsPerSecond, last.stats.AveragePopulation)
	}
	return nil
}

// runLoop runs the simulation and the presenter side by side. The engine
// never leaves the simulation goroutine; only copied frames cross over.
func runLoop(ctx context.Context, g *game, w io.Writer) error {
	var (
		eg, egCtx = errgroup.WithContext(ctx)
		reports   = make(chan frameReport, 1)
	)
	eg.Go(func() error {
		defer close(reports)
		return g.simulate(egCtx, reports)
	})
	eg.Go(func() error {
		return present(w, g.config, reports)
	})
	return eg.Wait()
}
