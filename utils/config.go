package utils

import (
	"encoding/json"
	"os"
	"slices"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/seagull/model"
	"github.com/sheikhrachel/seagull/rules"
)

// Run modes understood by the CLI
const (
	ModeHeadless = "headless"
	ModeTerminal = "terminal"
	ModeTUI      = "tui"
	ModeGUI      = "gui"
)

var Modes = []string{ModeHeadless, ModeTerminal, ModeTUI, ModeGUI}

var ErrInvalidConfig = errors.New("invalid config")

// Config holds the configuration for a simulation run
type Config struct {
	Width               int           `json:"width"`
	Height              int           `json:"height"`
	FrameRate           time.Duration `json:"frame_rate"`
	StepsPerFrame       int           `json:"steps_per_frame"`
	MaxGenerations      uint64        `json:"max_generations"`
	Rule                string        `json:"rule"`
	Seeder              string        `json:"seeder"`
	RandomDensity       float64       `json:"random_density"`
	RandomSeed          int64         `json:"random_seed"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	RefreshInterval     uint64        `json:"refresh_interval"`
	InjectionCount      int           `json:"injection_count"`
	Mode                string        `json:"mode"`
	Colors              bool          `json:"colors"`
	Scale               int           `json:"scale"`
	SnapshotPath        string        `json:"snapshot_path"`
	SnapshotScale       int           `json:"snapshot_scale"`
	LogLevel            string        `json:"log_level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               62,
		Height:              32,
		FrameRate:           100 * time.Millisecond,
		StepsPerFrame:       1,
		MaxGenerations:      1000,
		Rule:                rules.DecayRuleName,
		Seeder:              "interesting",
		RandomDensity:       0.15,
		RandomSeed:          1,
		AutoRestart:         true,
		StagnationThreshold: 5,
		RefreshInterval:     0, // periodic restarts off
		InjectionCount:      3,
		Mode:                ModeTerminal,
		Colors:              true,
		Scale:               4,
		SnapshotScale:       4,
		LogLevel:            "warn",
	}
}

// LoadConfig loads configuration from JSON file, on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate rejects values the engine or the front-ends cannot work with
func (c Config) Validate() error {
	switch {
	case c.Width < model.MinDimension || c.Height < model.MinDimension:
		return errors.Wrapf(ErrInvalidConfig, "[Config.Validate] grid %dx%d smaller than %d", c.Width, c.Height, model.MinDimension)
	case c.StepsPerFrame < 1:
		return errors.Wrapf(ErrInvalidConfig, "[Config.Validate] steps_per_frame %d", c.StepsPerFrame)
	case c.FrameRate < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Config.Validate] negative frame_rate %v", c.FrameRate)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "[Config.Validate] random_density %v outside [0,1]", c.RandomDensity)
	case c.Scale < 1 || c.SnapshotScale < 1:
		return errors.Wrapf(ErrInvalidConfig, "[Config.Validate] scale %d / snapshot_scale %d", c.Scale, c.SnapshotScale)
	case c.StagnationThreshold < 1:
		return errors.Wrapf(ErrInvalidConfig, "[Config.Validate] stagnation_threshold %d", c.StagnationThreshold)
	case c.InjectionCount < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Config.Validate] injection_count %d", c.InjectionCount)
	case !slices.Contains(Modes, c.Mode):
		return errors.Wrapf(ErrInvalidConfig, "[Config.Validate] unknown mode %q", c.Mode)
	}
	if _, err := rules.Lookup(c.Rule); err != nil {
		return errors.Wrap(err, "[Config.Validate]")
	}
	if _, err := model.NewSeeder(c.Seeder, c.RandomDensity, c.RandomSeed); err != nil {
		return errors.Wrap(err, "[Config.Validate]")
	}
	return nil
}
