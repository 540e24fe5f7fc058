package model

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/seagull/rules"
)

// Engine owns one simulation: the double-buffered grid, the bitmap derived
// from it and the generation counter.
//
// An Engine is not safe for concurrent use. Every method runs to completion
// on the caller's goroutine. Calling anything other than Init, Ready or
// Cleanup before a successful Init panics with ErrNotReady.
type Engine struct {
	grid       *Grid
	bitmap     *Bitmap
	generation uint64

	// epoch is bumped whenever buffers are replaced or released so that
	// views taken earlier can detect they are stale.
	epoch uint64

	rule   rules.Rule
	pool   *BufferPool
	logger *slog.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithRule replaces the default decay rule
func WithRule(r rules.Rule) Option {
	return func(e *Engine) {
		if r != nil {
			e.rule = r
		}
	}
}

// WithBufferPool shares a buffer pool between engines
func WithBufferPool(p *BufferPool) Option {
	return func(e *Engine) {
		if p != nil {
			e.pool = p
		}
	}
}

// WithLogger overrides the package logger for this engine
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine returns an uninitialized engine. Call Init before use.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rule: rules.ApplyDecayRule,
		pool: NewBufferPool(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return Logger()
}

// Init sizes the engine to a width x height grid, zero-filled, with the
// generation reset to 0 and a fully transparent bitmap.
//
// On error the engine is left exactly as it was before the call: dimensions,
// buffers, generation and outstanding views are untouched.
func (e *Engine) Init(width, height int) error {
	if width < MinDimension || height < MinDimension {
		e.log().Warn("init rejected", "width", width, "height", height, "reason", "too small")
		return errors.Wrapf(ErrInvalidDimensions, "[Engine.Init] %dx%d, minimum is %dx%d",
			width, height, MinDimension, MinDimension)
	}
	// Divide rather than multiply so huge requests cannot overflow.
	if width > MaxCells/height {
		e.log().Warn("init rejected", "width", width, "height", height, "reason", "size limit")
		return errors.Wrapf(ErrResourceLimitExceeded, "[Engine.Init] %dx%d exceeds %d cells",
			width, height, MaxCells)
	}

	grid, err := newGrid(width, height, e.pool)
	if err != nil {
		e.log().Warn("init failed", "width", width, "height", height, "err", err)
		return errors.Wrapf(err, "[Engine.Init] grid %dx%d", width, height)
	}
	bitmap, err := newBitmap(width, height)
	if err != nil {
		grid.release(e.pool)
		e.log().Warn("init failed", "width", width, "height", height, "err", err)
		return errors.Wrapf(err, "[Engine.Init] bitmap %dx%d", width-2, height-2)
	}

	if e.grid != nil {
		e.grid.release(e.pool)
	}
	e.grid = grid
	e.bitmap = bitmap
	e.generation = 0
	e.epoch++
	e.bitmap.Recompute(e.grid)

	e.log().Info("initialized",
		"width", width,
		"height", height,
		"grid_bytes", width*height,
		"bitmap_bytes", len(bitmap.pixels)*4,
	)
	return nil
}

// Cleanup releases the buffers. The engine may be initialized again.
func (e *Engine) Cleanup() {
	if e.grid == nil {
		return
	}
	e.grid.release(e.pool)
	e.grid = nil
	e.bitmap = nil
	e.generation = 0
	e.epoch++
	e.log().Debug("cleaned up")
}

// Ready reports whether Init has succeeded since the last Cleanup
func (e *Engine) Ready() bool {
	return e.grid != nil
}

func (e *Engine) mustBeReady(op string) {
	if e.grid == nil {
		panic(errors.Wrapf(ErrNotReady, "[Engine.%s]", op))
	}
}

// Width returns the grid width including the border
func (e *Engine) Width() int {
	e.mustBeReady("Width")
	return e.grid.width
}

// Height returns the grid height including the border
func (e *Engine) Height() int {
	e.mustBeReady("Height")
	return e.grid.height
}

// Generation returns the number of generations since the last Init,
// unless overridden by SetGeneration
func (e *Engine) Generation() uint64 {
	e.mustBeReady("Generation")
	return e.generation
}

// SetGeneration overwrites the generation counter. The grid is not touched.
func (e *Engine) SetGeneration(value uint64) {
	e.mustBeReady("SetGeneration")
	e.generation = value
}

// Cell returns the age at (x, y). Border coordinates are valid and read 0.
func (e *Engine) Cell(x, y int) uint8 {
	e.mustBeReady("Cell")
	return e.grid.Get(x, y)
}

// SetCell writes one interior cell and recomputes the whole bitmap.
// That costs O(interior cells) per call; use Inject or Seed for bulk writes.
func (e *Engine) SetCell(x, y int, age uint8) {
	e.mustBeReady("SetCell")
	e.grid.Set(x, y, age)
	e.bitmap.Recompute(e.grid)
}

// Step advances the simulation by iterations generations and recomputes the
// bitmap once at the end. It cannot be interrupted; callers wanting to stay
// responsive should pass small batches. iterations <= 0 only refreshes the
// bitmap.
func (e *Engine) Step(iterations int) {
	e.mustBeReady("Step")
	for range iterations {
		e.advance()
	}
	e.bitmap.Recompute(e.grid)
}

// advance computes one generation into the previous buffer, then swaps.
func (e *Engine) advance() {
	var (
		g    = e.grid
		w    = g.width
		cur  = g.current()
		next = g.previous()
	)
	for y := 1; y < g.height-1; y++ {
		for i := y*w + 1; i < (y+1)*w-1; i++ {
			next[i] = e.rule(countAliveNeighbors(cur, i, w), cur[i])
		}
	}
	g.Swap()
	e.generation++
}

// Seed overwrites the interior with a seeder's pattern, resets the
// generation to 0 and recomputes the bitmap once.
func (e *Engine) Seed(s Seeder) {
	e.mustBeReady("Seed")
	e.grid.Clear()
	s.Seed(e.grid)
	e.generation = 0
	e.bitmap.Recompute(e.grid)
	e.log().Debug("seeded", "seeder", s.Name(), "alive", e.grid.CountAlive())
}

// Inject sets every listed interior point to AgeAlive, skipping points on or
// outside the border, and recomputes the bitmap once. The generation is kept.
func (e *Engine) Inject(points [][2]int) {
	e.mustBeReady("Inject")
	n := 0
	for _, p := range points {
		if e.grid.Interior(p[0], p[1]) {
			e.grid.Set(p[0], p[1], AgeAlive)
			n++
		}
	}
	e.bitmap.Recompute(e.grid)
	e.log().Debug("injected", "requested", len(points), "placed", n)
}

// CountAlive returns the number of fully alive cells
func (e *Engine) CountAlive() int {
	e.mustBeReady("CountAlive")
	return e.grid.CountAlive()
}

// CountGlowing returns the number of cells in afterglow
func (e *Engine) CountGlowing() int {
	e.mustBeReady("CountGlowing")
	return e.grid.CountGlowing()
}

// Hash returns a digest of the current grid, for cycle detection
func (e *Engine) Hash() string {
	e.mustBeReady("Hash")
	return e.grid.Hash()
}

// GridView returns a read-only view of the current grid. The view follows
// buffer swaps made by Step and becomes stale on the next Init or Cleanup.
func (e *Engine) GridView() GridView {
	e.mustBeReady("GridView")
	return GridView{e: e, epoch: e.epoch}
}

// BitmapView returns a read-only view of the bitmap, valid until the next
// Init or Cleanup.
func (e *Engine) BitmapView() BitmapView {
	e.mustBeReady("BitmapView")
	return BitmapView{e: e, epoch: e.epoch}
}
