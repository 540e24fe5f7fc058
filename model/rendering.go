package model

import (
	"io"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
)

const (
	gridPosAlive = "██"
	gridPosHigh  = "▓▓"
	gridPosMid   = "▒▒"
	gridPosLow   = "░░"
	gridPosEmpty = "  "

	// clearScreen homes the cursor and erases the display
	clearScreen = "\033[H\033[2J"
)

// TerminalRenderer draws the interior of a grid with two characters per
// cell. Afterglow is shaded by glyph and, with colours on, by grey level.
type TerminalRenderer struct {
	au aurora.Aurora
}

// NewTerminalRenderer returns a renderer; colors toggles ANSI escapes
func NewTerminalRenderer(colors bool) *TerminalRenderer {
	return &TerminalRenderer{au: aurora.NewAurora(colors)}
}

// Cell returns the two-column string for one age
func (r *TerminalRenderer) Cell(age uint8) string {
	switch {
	case age == AgeAlive:
		return r.au.White(gridPosAlive).String()
	case age == 0:
		return gridPosEmpty
	}
	glyph := gridPosLow
	if age >= AgeAfterglow {
		glyph = gridPosHigh
	} else if age >= AgeAfterglow/2 {
		glyph = gridPosMid
	}
	// aurora greys run 0..23, dark to light
	return r.au.Gray(uint8(int(age)*23/int(AgeAlive)), glyph).String()
}

// Render returns the interior of src, one line per row
func (r *TerminalRenderer) Render(src AgeSource) string {
	var b strings.Builder
	for y := 1; y < src.Height()-1; y++ {
		for x := 1; x < src.Width()-1; x++ {
			b.WriteString(r.Cell(src.Age(x, y)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Display writes the rendered grid to w
func (r *TerminalRenderer) Display(w io.Writer, src AgeSource) error {
	if _, err := io.WriteString(w, r.Render(src)); err != nil {
		return errors.Wrap(err, "[TerminalRenderer.Display] write failed")
	}
	return nil
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear(w io.Writer) error {
	if _, err := io.WriteString(w, clearScreen); err != nil {
		return errors.Wrap(err, "[TerminalRenderer.Clear] write failed")
	}
	return nil
}
