package main

import (
	"bytes"
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/seagull/model"
	"github.com/sheikhrachel/seagull/snapshot"
)

const (
	viewHeader = "header"
	viewField  = "field"
	viewStatus = "status"
	viewHelp   = "help"

	statusColumnWidth = 30
	minTick           = 10 * time.Millisecond
)

type keyBinding struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

// consoleUI is an interactive front-end. Every engine call happens on the
// gocui main loop goroutine, either from a key handler or from a function
// queued with Gui.Update.
type consoleUI struct {
	g        *game
	gui      *gocui.Gui
	renderer *model.TerminalRenderer
	au       aurora.Aurora
	keys     []keyBinding
	running  atomic.Bool
	message  string
}

func runTUI(ctx context.Context, g *game) error {
	gui, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return errors.Wrap(err, "[runTUI] failed to open terminal")
	}
	defer gui.Close()

	t := &consoleUI{
		g:        g,
		gui:      gui,
		renderer: model.NewTerminalRenderer(g.config.Colors),
		au:       aurora.NewAurora(g.config.Colors),
	}
	gui.Mouse = true
	gui.SetManagerFunc(t.layout)
	t.keys = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'q', "Q", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdStep(1), ""},
		{'t', "T", "Ten steps", t.cmdStep(10), ""},
		{gocui.KeySpace, "SPACE", "Run/Stop", t.cmdToggleRun, ""},
		{'w', "W", "Reseed", t.cmdReseed, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'p', "P", "Snapshot", t.cmdSnapshot, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle cell", t.cmdMouseClick, viewField},
	}
	for _, kb := range t.keys {
		h := kb.handler
		if err = gui.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error { return h(v) }); err != nil {
			return errors.Wrapf(err, "[runTUI] binding %s", kb.name)
		}
	}

	done := make(chan struct{})
	defer close(done)
	go t.ticker(ctx, done)

	if err = gui.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) {
		return errors.Wrap(err, "[runTUI] main loop")
	}
	return nil
}

// ticker queues a frame on the main loop while running, and quits the
// main loop when ctx is cancelled
func (t *consoleUI) ticker(ctx context.Context, done <-chan struct{}) {
	tick := time.NewTicker(max(t.g.config.FrameRate, minTick))
	defer tick.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			t.gui.Update(func(*gocui.Gui) error { return gocui.ErrQuit })
			return
		case <-tick.C:
			if !t.running.Load() {
				continue
			}
			t.gui.Update(func(*gocui.Gui) error {
				if t.g.finished() {
					t.running.Store(false)
					t.message = "generation limit reached"
				} else {
					t.g.update()
				}
				return t.refresh()
			})
		}
	}
}

func (t *consoleUI) layout(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()

	if v, err := gui.SetView(viewHeader, -1, -1, maxX, 1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorCyan
		v.FgColor = gocui.ColorBlack
		fmt.Fprintln(v, " seagull: aging Game of Life")
	}

	if v, err := gui.SetView(viewStatus, 0, 1, statusColumnWidth, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
	}

	if v, err := gui.SetView(viewField, statusColumnWidth+1, 1, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = fmt.Sprintf("Grid %dx%d", t.g.engine.Width(), t.g.engine.Height())
	}

	if v, err := gui.SetView(viewHelp, -1, maxY-3, maxX, maxY); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		var b bytes.Buffer
		b.WriteString("KEYS: ")
		for i, k := range t.keys {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(t.au.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		fmt.Fprintln(v, b.String())
	}

	return t.refresh()
}

// refresh redraws the field and status views from the engine
func (t *consoleUI) refresh() error {
	field, err := t.gui.View(viewField)
	if err != nil {
		return err
	}
	field.Clear()
	fmt.Fprint(field, t.renderer.Render(t.g.engine.GridView()))

	status, err := t.gui.View(viewStatus)
	if err != nil {
		return err
	}
	status.Clear()
	e := t.g.engine
	mode := t.au.Blue("waiting").String()
	if t.running.Load() {
		mode = t.au.Cyan("running").String()
	}
	fmt.Fprintln(status, t.prop("Generation", "%d", e.Generation()))
	fmt.Fprintln(status, t.prop("Total", "%d", t.g.total))
	fmt.Fprintln(status, t.prop("Alive", "%d", e.CountAlive()))
	fmt.Fprintln(status, t.prop("Glowing", "%d", e.CountGlowing()))
	fmt.Fprintln(status, t.prop("Restarts", "%d", t.g.restarts))
	fmt.Fprintln(status, t.prop("Gen/sec", "%.1f", t.g.stats.GenerationsPerSecond))
	fmt.Fprintln(status, t.prop("Mode", "%s", mode))
	if t.message != "" {
		fmt.Fprintln(status)
		fmt.Fprintln(status, " "+t.message)
	}
	return nil
}

func (t *consoleUI) prop(name, format string, values ...interface{}) string {
	return fmt.Sprintf(" "+t.au.Green(name).String()+": "+format, values...)
}

func (t *consoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *consoleUI) cmdStep(n int) func(*gocui.View) error {
	return func(_ *gocui.View) error {
		t.g.engine.Step(n)
		t.g.total += uint64(n)
		return t.refresh()
	}
}

func (t *consoleUI) cmdToggleRun(_ *gocui.View) error {
	t.running.Store(!t.running.Load())
	t.message = ""
	return t.refresh()
}

func (t *consoleUI) cmdReseed(_ *gocui.View) error {
	t.g.restarts++
	if err := t.g.reseed(); err != nil {
		return err
	}
	return t.refresh()
}

func (t *consoleUI) cmdClear(_ *gocui.View) error {
	t.g.engine.Seed(model.EmptySeeder{})
	return t.refresh()
}

func (t *consoleUI) cmdSnapshot(_ *gocui.View) error {
	path := t.g.config.SnapshotPath
	if path == "" {
		path = fmt.Sprintf("seagull-%d.png", t.g.total)
	}
	if err := snapshot.Save(path, t.g.engine.BitmapView(), t.g.config.SnapshotScale); err != nil {
		t.message = err.Error()
	} else {
		t.message = "saved " + path
	}
	return t.refresh()
}

// cmdMouseClick toggles the clicked cell; each cell is two columns wide
func (t *consoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	ox, oy := v.Origin()
	x, y := (cx+ox)/2+1, cy+oy+1
	e := t.g.engine
	if x >= e.Width()-1 || y >= e.Height()-1 {
		return nil
	}
	age := model.AgeAlive
	if e.Cell(x, y) == model.AgeAlive {
		age = 0
	}
	e.SetCell(x, y, age)
	return t.refresh()
}
