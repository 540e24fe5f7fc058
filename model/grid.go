package model

import (
	"crypto/md5"
	"fmt"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/seagull/rules"
)

const (
	// AgeAlive is the age of a fully alive cell.
	AgeAlive = rules.AgeAlive
	// AgeAfterglow is the age a cell is left with on the tick it dies.
	AgeAfterglow = rules.AgeAfterglow

	// MinDimension is the smallest width or height that still has an interior.
	MinDimension = 3
	// MaxCells caps width*height for a single grid.
	MaxCells = 5_000_000
)

// Grid is a double-buffered board of cell ages with a permanent zero border.
//
// Both buffers are row-major width*height slices. Only the buffer selected by
// active is readable from outside; the other one receives the next generation.
type Grid struct {
	width   int
	height  int
	buffers [2][]uint8
	active  int
}

// newGrid takes two zeroed buffers from the pool
func newGrid(width, height int, pool *BufferPool) (*Grid, error) {
	size := width * height
	first, err := pool.Get(size)
	if err != nil {
		return nil, err
	}
	second, err := pool.Get(size)
	if err != nil {
		pool.Put(first)
		return nil, err
	}
	return &Grid{
		width:   width,
		height:  height,
		buffers: [2][]uint8{first, second},
	}, nil
}

// GetWidth returns the width of the grid including the border
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid including the border
func (g *Grid) GetHeight() int {
	return g.height
}

// current returns the authoritative buffer
func (g *Grid) current() []uint8 {
	return g.buffers[g.active]
}

// previous returns the buffer the next generation is written into
func (g *Grid) previous() []uint8 {
	return g.buffers[1-g.active]
}

// Swap exchanges the current and previous roles without copying.
func (g *Grid) Swap() {
	g.active = 1 - g.active
}

// Get returns the age of a cell. Border cells always read 0.
func (g *Grid) Get(x, y int) uint8 {
	if !g.InBounds(x, y) {
		panic(errors.Wrapf(ErrOutOfBounds, "[Grid.Get] (%d,%d) outside %dx%d", x, y, g.width, g.height))
	}
	return g.buffers[g.active][y*g.width+x]
}

// Set writes the age of an interior cell.
func (g *Grid) Set(x, y int, age uint8) {
	if !g.Interior(x, y) {
		panic(errors.Wrapf(ErrOutOfBounds, "[Grid.Set] (%d,%d) outside interior of %dx%d", x, y, g.width, g.height))
	}
	if age > AgeAlive {
		panic(errors.Wrapf(ErrOutOfBounds, "[Grid.Set] age %d above %d", age, AgeAlive))
	}
	g.buffers[g.active][y*g.width+x] = age
}

// InBounds reports whether (x, y) addresses any cell, border included
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Interior reports whether (x, y) addresses a non-border cell
func (g *Grid) Interior(x, y int) bool {
	return x >= 1 && x < g.width-1 && y >= 1 && y < g.height-1
}

// Clear zeroes the interior of the current buffer
func (g *Grid) Clear() {
	cells := g.current()
	for y := 1; y < g.height-1; y++ {
		clear(cells[y*g.width+1 : (y+1)*g.width-1])
	}
}

// CountAlive returns the number of cells at AgeAlive
func (g *Grid) CountAlive() (count int) {
	for _, age := range g.current() {
		if age == AgeAlive {
			count++
		}
	}
	return
}

// CountGlowing returns the number of cells in afterglow (ages 1..99)
func (g *Grid) CountGlowing() (count int) {
	for _, age := range g.current() {
		if age > 0 && age < AgeAlive {
			count++
		}
	}
	return
}

// Hash returns an MD5 hash of the current cell ages
func (g *Grid) Hash() string {
	return fmt.Sprintf("%x", md5.Sum(g.current()))
}

// release hands both buffers back to the pool. The grid is unusable afterwards.
func (g *Grid) release(pool *BufferPool) {
	for i, buf := range g.buffers {
		pool.Put(buf)
		g.buffers[i] = nil
	}
}

// countAliveNeighbors counts the Moore neighbours of cells[i] at AgeAlive.
// i must be an interior index; the zero border keeps every lookup in range.
func countAliveNeighbors(cells []uint8, i, width int) int {
	n := 0
	for _, j := range [8]int{
		i - width - 1, i - width, i - width + 1,
		i - 1, i + 1,
		i + width - 1, i + width, i + width + 1,
	} {
		if cells[j] == AgeAlive {
			n++
		}
	}
	return n
}
