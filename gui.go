//go:build ebiten

package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/seagull/model"
)

// window adapts a game to the ebiten.Game interface. Update and Draw are
// never called concurrently, so the engine stays single-threaded.
type window struct {
	g        *game
	img      *ebiten.Image
	pixels   []byte
	scale    int
	paused   bool
	tickOnce bool
}

func newWindow(g *game) *window {
	w, h := g.engine.Width()-2, g.engine.Height()-2
	return &window{
		g:      g,
		img:    ebiten.NewImage(w, h),
		pixels: make([]byte, w*h*4),
		scale:  max(g.config.Scale, 1),
	}
}

// Update handles input and advances the simulation by one frame.
func (w *window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		w.paused = !w.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		w.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		w.g.restarts++
		if err := w.g.reseed(); err != nil {
			return err
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		x, y := mx/w.scale+1, my/w.scale+1
		e := w.g.engine
		if x >= 1 && y >= 1 && x < e.Width()-1 && y < e.Height()-1 {
			e.SetCell(x, y, model.AgeAlive)
		}
	}

	if w.g.finished() {
		return nil
	}
	if !w.paused || w.tickOnce {
		w.g.update()
		w.tickOnce = false
	}
	return nil
}

// Draw blits the engine bitmap, scaled up, onto the screen.
func (w *window) Draw(screen *ebiten.Image) {
	w.g.engine.BitmapView().WriteRGBA(w.pixels, true)
	w.img.WritePixels(w.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.img, op)
}

// Layout returns the logical screen size.
func (w *window) Layout(_, _ int) (int, int) {
	return (w.g.engine.Width() - 2) * w.scale, (w.g.engine.Height() - 2) * w.scale
}

func runGUI(g *game) error {
	win := newWindow(g)
	tps := ebiten.DefaultTPS
	if g.config.FrameRate > 0 {
		tps = max(int(time.Second/g.config.FrameRate), 1)
	}

	ebiten.SetWindowTitle("seagull")
	ebiten.SetTPS(tps)
	ebiten.SetWindowSize((g.engine.Width()-2)*win.scale, (g.engine.Height()-2)*win.scale)

	if err := ebiten.RunGame(win); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "[runGUI]")
	}
	return nil
}
