package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/seagull/model"
	"github.com/sheikhrachel/seagull/snapshot"
	"github.com/sheikhrachel/seagull/utils"
)

const defaultConfigPath = "config.json"

// cliOptions holds command line overrides. Zero values mean "not given".
type cliOptions struct {
	configPath     string
	width          int
	height         int
	frameRate      time.Duration
	steps          int
	maxGenerations int
	rule           string
	seeder         string
	density        float64
	seed           int64
	mode           string
	scale          int
	snapshotPath   string
	logLevel       string
	noColor        bool
	noRestart      bool
}

func parseFlags(args []string) (*cliOptions, error) {
	o := &cliOptions{configPath: defaultConfigPath}

	p := flaggy.NewParser("seagull")
	p.Description = "Aging Game of Life with afterglow"
	p.ShowHelpOnUnexpected = true
	p.String(&o.configPath, "c", "config", "Path to a JSON config file")
	p.Int(&o.width, "x", "width", "Grid width including the border")
	p.Int(&o.height, "y", "height", "Grid height including the border")
	p.Duration(&o.frameRate, "i", "interval", "Delay between frames, for example 150ms")
	p.Int(&o.steps, "s", "steps", "Generations per frame")
	p.Int(&o.maxGenerations, "g", "generations", "Stop after this many generations")
	p.String(&o.rule, "r", "rule", "Transition rule [decay|classic]")
	p.String(&o.seeder, "p", "pattern", "Seeder ["+strings.Join(model.SeederNames, "|")+"]")
	p.Float64(&o.density, "d", "density", "Live rate for random seeding")
	p.Int64(&o.seed, "", "seed", "Random seed")
	p.String(&o.mode, "m", "mode", "Front-end ["+strings.Join(utils.Modes, "|")+"]")
	p.Int(&o.scale, "", "scale", "Pixels per cell in gui mode and snapshots")
	p.String(&o.snapshotPath, "o", "snapshot", "Write a PNG of the last frame to this path")
	p.String(&o.logLevel, "l", "log-level", "Log level [debug|info|warn|error]")
	p.Bool(&o.noColor, "", "no-color", "Disable ANSI colours")
	p.Bool(&o.noRestart, "", "no-restart", "Do not reseed on extinction or stagnation")

	if err := p.ParseArgs(args); err != nil {
		return nil, errors.Wrap(err, "[parseFlags]")
	}
	return o, nil
}

// apply copies every given override into config
func (o *cliOptions) apply(config *utils.Config) {
	if o.width > 0 {
		config.Width = o.width
	}
	if o.height > 0 {
		config.Height = o.height
	}
	if o.frameRate > 0 {
		config.FrameRate = o.frameRate
	}
	if o.steps > 0 {
		config.StepsPerFrame = o.steps
	}
	if o.maxGenerations > 0 {
		config.MaxGenerations = uint64(o.maxGenerations)
	}
	if o.rule != "" {
		config.Rule = o.rule
	}
	if o.seeder != "" {
		config.Seeder = o.seeder
	}
	if o.density > 0 {
		config.RandomDensity = o.density
	}
	if o.seed != 0 {
		config.RandomSeed = o.seed
	}
	if o.mode != "" {
		config.Mode = o.mode
	}
	if o.scale > 0 {
		config.Scale = o.scale
		config.SnapshotScale = o.scale
	}
	if o.snapshotPath != "" {
		config.SnapshotPath = o.snapshotPath
	}
	if o.logLevel != "" {
		config.LogLevel = o.logLevel
	}
	if o.noColor {
		config.Colors = false
	}
	if o.noRestart {
		config.AutoRestart = false
	}
}

// loadConfig reads the config file, falling back to defaults when it does
// not exist, then applies the command line overrides
func loadConfig(o *cliOptions) (utils.Config, error) {
	config, err := utils.LoadConfig(o.configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return config, err
		}
		config = utils.DefaultConfig()
	}
	o.apply(&config)
	return config, config.Validate()
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	config, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := utils.NewLogger(config.LogLevel, os.Stderr)
	if err != nil {
		return err
	}
	model.SetLogger(logger)

	g, err := initializeGame(config)
	if err != nil {
		return err
	}
	defer g.engine.Cleanup()

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch config.Mode {
	case utils.ModeTUI:
		err = runTUI(ctx, g)
	case utils.ModeGUI:
		err = runGUI(g)
	default:
		if config.Mode == utils.ModeTerminal {
			displayGameInfo(os.Stdout, g)
		}
		err = runLoop(ctx, g, os.Stdout)
	}
	if err != nil {
		return err
	}

	if config.SnapshotPath != "" {
		if err = snapshot.Save(config.SnapshotPath, g.engine.BitmapView(), config.SnapshotScale); err != nil {
			return err
		}
		fmt.Printf("Snapshot written to %s\n", config.SnapshotPath)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "seagull: %v\n", err)
		os.Exit(1)
	}
}
