package model

import (
	"math/rand/v2"

	"github.com/pkg/errors"
)

// Seeder fills the interior of a freshly cleared grid.
type Seeder interface {
	Name() string
	Seed(g *Grid)
}

// Pattern places live cells at offsets relative to an origin
type Pattern struct {
	Label string
	Cells [][2]int
}

var (
	// Glider travels diagonally towards +x,+y
	Glider = Pattern{"glider", [][2]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}}
	// Blinker is a period-2 oscillator
	Blinker = Pattern{"blinker", [][2]int{{0, 0}, {1, 0}, {2, 0}}}
	// Block is a still life
	Block = Pattern{"block", [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}}
)

// Place writes the pattern alive at (originX, originY), skipping any cell
// that would land on or beyond the border.
func (p Pattern) Place(g *Grid, originX, originY int) {
	for _, c := range p.Cells {
		x, y := originX+c[0], originY+c[1]
		if g.Interior(x, y) {
			g.Set(x, y, AgeAlive)
		}
	}
}

// size returns the bounding box of the pattern
func (p Pattern) size() (w, h int) {
	for _, c := range p.Cells {
		w = max(w, c[0]+1)
		h = max(h, c[1]+1)
	}
	return
}

// PatternSeeder places a single pattern centered in the interior
type PatternSeeder struct {
	Pattern Pattern
}

func (s PatternSeeder) Name() string { return s.Pattern.Label }

func (s PatternSeeder) Seed(g *Grid) {
	w, h := s.Pattern.size()
	s.Pattern.Place(g, (g.width-w)/2, (g.height-h)/2)
}

// EmptySeeder leaves the grid cleared
type EmptySeeder struct{}

func (EmptySeeder) Name() string { return "empty" }
func (EmptySeeder) Seed(*Grid)   {}

// RandomSeeder makes each interior cell alive with probability LiveRate.
// The same RandSeed always yields the same board.
type RandomSeeder struct {
	LiveRate float64
	RandSeed int64
}

func (s RandomSeeder) Name() string { return "random" }

func (s RandomSeeder) Seed(g *Grid) {
	rng := newRand(s.RandSeed)
	for y := 1; y < g.height-1; y++ {
		for x := 1; x < g.width-1; x++ {
			if rng.Float64() < s.LiveRate {
				g.Set(x, y, AgeAlive)
			}
		}
	}
}

// CheckerboardSeeder makes every interior cell with even x+y alive
type CheckerboardSeeder struct{}

func (CheckerboardSeeder) Name() string { return "checkerboard" }

func (CheckerboardSeeder) Seed(g *Grid) {
	for y := 1; y < g.height-1; y++ {
		for x := 1; x < g.width-1; x++ {
			if (x+y)%2 == 0 {
				g.Set(x, y, AgeAlive)
			}
		}
	}
}

// InterestingSeeder drops a few gliders and blinkers and then sprinkles
// random life over the board
type InterestingSeeder struct {
	Density  float64
	RandSeed int64
}

func (s InterestingSeeder) Name() string { return "interesting" }

func (s InterestingSeeder) Seed(g *Grid) {
	if g.width >= 10 && g.height >= 10 {
		Glider.Place(g, 5, 5)
		if g.width >= 20 && g.height >= 15 {
			Glider.Place(g, g.width-8, 5)
		}

		Blinker.Place(g, g.width/4, g.height/4)
		if g.width >= 30 {
			Blinker.Place(g, 3*g.width/4, 3*g.height/4)
		}
	}
	RandomSeeder{LiveRate: s.Density, RandSeed: s.RandSeed}.Seed(g)
}

// SeederNames lists the names accepted by NewSeeder
var SeederNames = []string{"empty", "random", "checkerboard", "glider", "blinker", "block", "interesting"}

// NewSeeder builds a seeder by name. density and seed are used by the
// random and interesting seeders only.
func NewSeeder(name string, density float64, seed int64) (Seeder, error) {
	switch name {
	case "empty":
		return EmptySeeder{}, nil
	case "random":
		return RandomSeeder{LiveRate: density, RandSeed: seed}, nil
	case "checkerboard":
		return CheckerboardSeeder{}, nil
	case "glider":
		return PatternSeeder{Glider}, nil
	case "blinker":
		return PatternSeeder{Blinker}, nil
	case "block":
		return PatternSeeder{Block}, nil
	case "interesting":
		return InterestingSeeder{Density: density, RandSeed: seed}, nil
	}
	return nil, errors.Wrapf(ErrUnknownSeeder, "[NewSeeder] %q", name)
}

// RandomPoints returns count interior coordinates of a width x height grid
func RandomPoints(width, height, count int, seed int64) [][2]int {
	if width < MinDimension || height < MinDimension {
		return nil
	}
	rng := newRand(seed)
	points := make([][2]int, count)
	for i := range points {
		points[i] = [2]int{1 + rng.IntN(width-2), 1 + rng.IntN(height-2)}
	}
	return points
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}
