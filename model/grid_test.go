package model

import (
	"testing"

	"github.com/pkg/errors"
)

func TestGrid_SwapExchangesRoles(t *testing.T) {
	g, err := newGrid(4, 4, NewBufferPool())
	if err != nil {
		t.Fatalf("newGrid error: %v", err)
	}
	first := &g.current()[0]
	g.Set(1, 1, 7)
	g.Swap()
	if &g.current()[0] == first {
		t.Fatalf("Swap did not change the current buffer")
	}
	if g.Get(1, 1) != 0 {
		t.Fatalf("previous buffer not independent: %d", g.Get(1, 1))
	}
	g.Swap()
	if g.Get(1, 1) != 7 {
		t.Fatalf("double swap lost data: %d", g.Get(1, 1))
	}
}

func TestGrid_ClearKeepsBorder(t *testing.T) {
	g, err := newGrid(5, 4, NewBufferPool())
	if err != nil {
		t.Fatalf("newGrid error: %v", err)
	}
	CheckerboardSeeder{}.Seed(g)
	if g.CountAlive() == 0 {
		t.Fatalf("seeder wrote nothing")
	}
	g.Clear()
	if g.CountAlive() != 0 || g.CountGlowing() != 0 {
		t.Fatalf("Clear left alive=%d glowing=%d", g.CountAlive(), g.CountGlowing())
	}
}

func TestGrid_Counts(t *testing.T) {
	g, err := newGrid(6, 6, NewBufferPool())
	if err != nil {
		t.Fatalf("newGrid error: %v", err)
	}
	g.Set(1, 1, AgeAlive)
	g.Set(2, 1, AgeAlive)
	g.Set(3, 1, 99)
	g.Set(4, 4, 1)
	if got := g.CountAlive(); got != 2 {
		t.Fatalf("CountAlive = %d, want 2", got)
	}
	if got := g.CountGlowing(); got != 2 {
		t.Fatalf("CountGlowing = %d, want 2", got)
	}
}

func TestGrid_Hash(t *testing.T) {
	pool := NewBufferPool()
	a, _ := newGrid(6, 6, pool)
	b, _ := newGrid(6, 6, pool)
	if a.Hash() != b.Hash() {
		t.Fatalf("empty grids hash differently")
	}
	a.Set(2, 3, 40)
	if a.Hash() == b.Hash() {
		t.Fatalf("hash ignores ages")
	}
	b.Set(2, 3, 40)
	if a.Hash() != b.Hash() {
		t.Fatalf("equal grids hash differently")
	}
}

func TestCountAliveNeighbors(t *testing.T) {
	g, _ := newGrid(5, 5, NewBufferPool())
	for y := 1; y < 4; y++ {
		for x := 1; x < 4; x++ {
			g.Set(x, y, AgeAlive)
		}
	}
	g.Set(1, 1, 99)
	cells := g.current()
	if got := countAliveNeighbors(cells, 2*5+2, 5); got != 7 {
		t.Fatalf("center neighbours = %d, want 7", got)
	}
	if got := countAliveNeighbors(cells, 1*5+3, 5); got != 3 {
		t.Fatalf("edge neighbours = %d, want 3", got)
	}
}

func TestBufferPool(t *testing.T) {
	p := NewBufferPool()
	buf, err := p.Get(10)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if len(buf) != 10 {
		t.Fatalf("len %d, want 10", len(buf))
	}
	for i := range buf {
		buf[i] = 9
	}
	p.Put(buf)
	p.Put(nil)

	again, err := p.Get(8)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if len(again) != 8 {
		t.Fatalf("len %d, want 8", len(again))
	}
	for i, v := range again {
		if v != 0 {
			t.Fatalf("recycled buffer not zeroed at %d: %d", i, v)
		}
	}

	p.alloc = func(int) ([]uint8, error) { return nil, errors.WithStack(ErrAllocationFailure) }
	if _, err = p.Get(1 << 20); !errors.Is(err, ErrAllocationFailure) {
		t.Fatalf("Get error = %v, want ErrAllocationFailure", err)
	}
}

func TestAllocateRecoversFromMakePanic(t *testing.T) {
	n := -1
	buf, err := allocate[uint32](n)
	if !errors.Is(err, ErrAllocationFailure) {
		t.Fatalf("allocate(-1) error = %v, want ErrAllocationFailure", err)
	}
	if buf != nil {
		t.Fatalf("allocate(-1) returned a buffer")
	}
}
