package model

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// AgeSource is anything that can report cell ages on a bordered grid.
// GridView and Frame implement it.
type AgeSource interface {
	Width() int
	Height() int
	Age(x, y int) uint8
}

// GridView is a read-only window onto an engine's current grid.
type GridView struct {
	e     *Engine
	epoch uint64
}

// Valid reports whether the view still refers to the engine's live buffers
func (v GridView) Valid() bool {
	return v.e != nil && v.e.grid != nil && v.e.epoch == v.epoch
}

func (v GridView) grid() *Grid {
	if !v.Valid() {
		panic(errors.WithStack(ErrStaleView))
	}
	return v.e.grid
}

// Width returns the grid width including the border
func (v GridView) Width() int { return v.grid().width }

// Height returns the grid height including the border
func (v GridView) Height() int { return v.grid().height }

// Len returns width*height
func (v GridView) Len() int { return len(v.grid().current()) }

// Age returns the age at (x, y)
func (v GridView) Age(x, y int) uint8 { return v.grid().Get(x, y) }

// Bytes returns a copy of the current row-major cell ages
func (v GridView) Bytes() []uint8 {
	return append([]uint8(nil), v.grid().current()...)
}

// Frame returns a detached snapshot that can be handed to another goroutine
func (v GridView) Frame() Frame {
	g := v.grid()
	return Frame{
		Generation: v.e.generation,
		W:          g.width,
		H:          g.height,
		Cells:      v.Bytes(),
	}
}

// Frame is a copied grid snapshot; it never aliases engine memory.
type Frame struct {
	Generation uint64
	W, H       int
	Cells      []uint8
}

func (f Frame) Width() int         { return f.W }
func (f Frame) Height() int        { return f.H }
func (f Frame) Age(x, y int) uint8 { return f.Cells[y*f.W+x] }

// CountAlive returns the number of fully alive cells in the frame
func (f Frame) CountAlive() (count int) {
	for _, age := range f.Cells {
		if age == AgeAlive {
			count++
		}
	}
	return
}

// BitmapView is a read-only window onto an engine's bitmap. It also
// satisfies image.Image, with (0,0) mapping to interior cell (1,1).
type BitmapView struct {
	e     *Engine
	epoch uint64
}

// Valid reports whether the view still refers to the engine's live bitmap
func (v BitmapView) Valid() bool {
	return v.e != nil && v.e.bitmap != nil && v.e.epoch == v.epoch
}

func (v BitmapView) bitmap() *Bitmap {
	if !v.Valid() {
		panic(errors.WithStack(ErrStaleView))
	}
	return v.e.bitmap
}

// Width returns the bitmap width, the grid width minus 2
func (v BitmapView) Width() int { return v.bitmap().width }

// Height returns the bitmap height, the grid height minus 2
func (v BitmapView) Height() int { return v.bitmap().height }

// Pixel returns the 0xAARRGGBB pixel at bitmap coordinates (x, y)
func (v BitmapView) Pixel(x, y int) uint32 {
	b := v.bitmap()
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		panic(errors.Wrapf(ErrOutOfBounds, "[BitmapView.Pixel] (%d,%d) outside %dx%d", x, y, b.width, b.height))
	}
	return b.pixels[y*b.width+x]
}

// Pixels returns a copy of the row-major pixel buffer
func (v BitmapView) Pixels() []uint32 {
	return append([]uint32(nil), v.bitmap().pixels...)
}

// WriteRGBA fills dst, which must hold 4*Width*Height bytes, with RGBA
// bytes. premultiply selects premultiplied alpha.
func (v BitmapView) WriteRGBA(dst []byte, premultiply bool) {
	b := v.bitmap()
	if len(dst) < len(b.pixels)*4 {
		panic(errors.Wrapf(ErrOutOfBounds, "[BitmapView.WriteRGBA] buffer %d bytes, need %d", len(dst), len(b.pixels)*4))
	}
	b.writeRGBA(dst, premultiply)
}

func (v BitmapView) ColorModel() color.Model { return color.NRGBAModel }

func (v BitmapView) Bounds() image.Rectangle {
	b := v.bitmap()
	return image.Rect(0, 0, b.width, b.height)
}

func (v BitmapView) At(x, y int) color.Color {
	b := v.bitmap()
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return color.NRGBA{}
	}
	p := b.pixels[y*b.width+x]
	return color.NRGBA{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: uint8(p >> 24)}
}
