package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/seagull/model"
	"github.com/sheikhrachel/seagull/utils"
)

func testConfig() utils.Config {
	c := utils.DefaultConfig()
	c.Width, c.Height = 12, 12
	c.FrameRate = 0
	c.Mode = utils.ModeHeadless
	c.Colors = false
	return c
}

func newTestGame(t *testing.T, c utils.Config) *game {
	t.Helper()
	g, err := initializeGame(c)
	if err != nil {
		t.Fatalf("initializeGame error: %v", err)
	}
	t.Cleanup(g.engine.Cleanup)
	return g
}

func TestCheckRestartConditions(t *testing.T) {
	c := testConfig()
	c.StagnationThreshold = 3
	c.RefreshInterval = 100

	tests := []struct {
		name       string
		alive      int
		glowing    int
		stagnant   int
		generation uint64
		restart    bool
		reason     string
	}{
		{"active", 10, 2, 0, 5, false, ""},
		{"extinction", 0, 0, 0, 5, true, "extinction"},
		{"afterglow keeps board alive", 0, 3, 0, 5, false, ""},
		{"stagnation", 10, 0, 3, 5, true, "stagnation detected"},
		{"below threshold", 10, 0, 2, 5, false, ""},
		{"periodic refresh", 10, 0, 0, 100, true, "periodic refresh"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restart, reason := checkRestartConditions(tt.alive, tt.glowing, tt.stagnant, tt.generation, c)
			if restart != tt.restart || reason != tt.reason {
				t.Fatalf("got (%v, %q), want (%v, %q)", restart, reason, tt.restart, tt.reason)
			}
		})
	}

	c.RefreshInterval = 0
	if restart, _ := checkRestartConditions(10, 0, 0, 1_000_000, c); restart {
		t.Fatalf("refresh interval 0 must disable periodic restarts")
	}
}

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{
		"--width", "40", "-y", "20", "--interval", "50ms", "--rule", "classic",
		"--pattern", "glider", "--seed", "7", "--no-color", "--mode", "headless",
	})
	if err != nil {
		t.Fatalf("parseFlags error: %v", err)
	}
	if o.width != 40 || o.height != 20 || o.frameRate != 50*time.Millisecond {
		t.Fatalf("parsed %+v", o)
	}
	if o.rule != "classic" || o.seeder != "glider" || o.seed != 7 || !o.noColor || o.mode != "headless" {
		t.Fatalf("parsed %+v", o)
	}
	if o.configPath != defaultConfigPath {
		t.Fatalf("config path %q, want default", o.configPath)
	}
}

func TestCliOptionsApply(t *testing.T) {
	c := utils.DefaultConfig()
	o := &cliOptions{width: 20, steps: 3, maxGenerations: 9, scale: 2, noRestart: true, noColor: true}
	o.apply(&c)

	if c.Width != 20 || c.StepsPerFrame != 3 || c.MaxGenerations != 9 {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.Scale != 2 || c.SnapshotScale != 2 || c.AutoRestart || c.Colors {
		t.Fatalf("overrides not applied: %+v", c)
	}
	// zero values leave the config alone
	if c.Height != utils.DefaultConfig().Height || c.Rule != utils.DefaultConfig().Rule {
		t.Fatalf("unset options changed the config: %+v", c)
	}
}

func TestLoadConfig_Fallback(t *testing.T) {
	o := &cliOptions{configPath: filepath.Join(t.TempDir(), "missing.json"), width: 30}
	c, err := loadConfig(o)
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if c.Width != 30 || c.Height != utils.DefaultConfig().Height {
		t.Fatalf("got %dx%d", c.Width, c.Height)
	}

	o = &cliOptions{configPath: filepath.Join(t.TempDir(), "missing.json"), mode: "bogus"}
	if _, err = loadConfig(o); !errors.Is(err, utils.ErrInvalidConfig) {
		t.Fatalf("bad mode error = %v, want ErrInvalidConfig", err)
	}
}

func TestInitializeGame_Errors(t *testing.T) {
	c := testConfig()
	c.Rule = "bogus"
	if _, err := initializeGame(c); err == nil {
		t.Fatalf("unknown rule accepted")
	}

	c = testConfig()
	c.Width = 1
	if _, err := initializeGame(c); !errors.Is(err, model.ErrInvalidDimensions) {
		t.Fatalf("error = %v, want ErrInvalidDimensions", err)
	}
}

func TestGameUpdate_Advances(t *testing.T) {
	c := testConfig()
	c.Seeder = "glider"
	c.StepsPerFrame = 2
	g := newTestGame(t, c)

	r := g.update()
	if r.total != 2 || r.frame.Generation != 2 || g.engine.Generation() != 2 {
		t.Fatalf("total=%d frame gen=%d engine gen=%d", r.total, r.frame.Generation, g.engine.Generation())
	}
	if r.alive != 5 || r.alive != r.frame.CountAlive() {
		t.Fatalf("alive=%d frame alive=%d, want 5", r.alive, r.frame.CountAlive())
	}
	if r.restarted != "" || r.status != "Active" {
		t.Fatalf("restarted=%q status=%q", r.restarted, r.status)
	}

	// the report is a copy and does not follow the engine
	before := r.frame.Age(1, 1)
	g.engine.SetCell(1, 1, 77)
	if r.frame.Age(1, 1) != before {
		t.Fatalf("frame report shares engine memory")
	}
}

func TestGameUpdate_RestartsOnExtinction(t *testing.T) {
	c := testConfig()
	c.Seeder = "empty"
	g := newTestGame(t, c)

	r := g.update()
	if r.restarted != "extinction" || g.restarts != 1 {
		t.Fatalf("restarted=%q restarts=%d", r.restarted, g.restarts)
	}

	c.AutoRestart = false
	g = newTestGame(t, c)
	if r = g.update(); r.restarted != "" || g.restarts != 0 || r.status != "Extinct" {
		t.Fatalf("restart with auto restart off: %q, status %q", r.restarted, r.status)
	}
}

func TestGameUpdate_Stagnation(t *testing.T) {
	c := testConfig()
	c.Seeder = "block"
	c.StagnationThreshold = 2
	c.InjectionCount = 0
	g := newTestGame(t, c)

	var r frameReport
	for i := 0; i < 4; i++ {
		if r = g.update(); r.restarted != "" {
			t.Fatalf("frame %d restarted early: %q", i+1, r.restarted)
		}
	}
	if g.stagnantCount != 1 {
		t.Fatalf("stagnant count %d after 4 static frames, want 1", g.stagnantCount)
	}
	if r = g.update(); r.restarted != "stagnation detected" {
		t.Fatalf("restarted=%q, want stagnation detected", r.restarted)
	}
	if g.stagnantCount != 0 || g.restarts != 1 {
		t.Fatalf("after restart: stagnant=%d restarts=%d", g.stagnantCount, g.restarts)
	}
}

func TestGameUpdate_InjectsBeforeRestart(t *testing.T) {
	c := testConfig()
	c.Seeder = "block"
	c.InjectionCount = 1
	c.AutoRestart = false
	g := newTestGame(t, c)

	for i := 0; i < 5; i++ {
		g.update()
	}
	if g.stagnantCount != 2 || g.restarts != 0 {
		t.Fatalf("stagnant=%d restarts=%d", g.stagnantCount, g.restarts)
	}
	if g.total != 5 {
		t.Fatalf("total %d, want 5", g.total)
	}
}

func TestRunLoop_Headless(t *testing.T) {
	c := testConfig()
	c.MaxGenerations = 20
	g := newTestGame(t, c)

	var out bytes.Buffer
	if err := runLoop(context.Background(), g, &out); err != nil {
		t.Fatalf("runLoop error: %v", err)
	}
	if g.total != 20 {
		t.Fatalf("total %d, want 20", g.total)
	}
	if !strings.Contains(out.String(), "Final stats: 20 generations") {
		t.Fatalf("missing final stats in %q", out.String())
	}
}

func TestRunLoop_Terminal(t *testing.T) {
	c := testConfig()
	c.Mode = utils.ModeTerminal
	c.MaxGenerations = 3
	g := newTestGame(t, c)

	var out bytes.Buffer
	if err := runLoop(context.Background(), g, &out); err != nil {
		t.Fatalf("runLoop error: %v", err)
	}
	if n := strings.Count(out.String(), "Gen: "); n != 3 {
		t.Fatalf("drew %d frames, want 3", n)
	}
}

func TestRunLoop_Cancelled(t *testing.T) {
	c := testConfig()
	c.MaxGenerations = 0
	c.FrameRate = time.Hour
	g := newTestGame(t, c)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runLoop(ctx, g, &bytes.Buffer{}) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runLoop error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("runLoop did not stop on cancel")
	}
}
