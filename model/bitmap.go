package model

// whiteRGB is the fixed colour part of every bitmap pixel (0xAARRGGBB).
const whiteRGB uint32 = 0x00FFFFFF

// Bitmap holds one 0xAARRGGBB pixel per interior cell of a grid.
// It is derived state: only Recompute writes it.
type Bitmap struct {
	width  int
	height int
	pixels []uint32
}

// newBitmap sizes a bitmap for the interior of a width x height grid
func newBitmap(gridWidth, gridHeight int) (*Bitmap, error) {
	w, h := gridWidth-2, gridHeight-2
	pixels, err := allocate[uint32](w * h)
	if err != nil {
		return nil, err
	}
	return &Bitmap{width: w, height: h, pixels: pixels}, nil
}

// PixelForAge returns a white pixel whose alpha is floor(age*255/100)
func PixelForAge(age uint8) uint32 {
	alpha := uint32(age) * 255 / uint32(AgeAlive)
	return alpha<<24 | whiteRGB
}

// Recompute rebuilds every pixel from the current buffer of g.
func (b *Bitmap) Recompute(g *Grid) {
	cells := g.current()
	for y := 1; y < g.height-1; y++ {
		row := cells[y*g.width+1 : (y+1)*g.width-1]
		out := b.pixels[(y-1)*b.width : y*b.width]
		for x, age := range row {
			out[x] = PixelForAge(age)
		}
	}
}

// writeRGBA expands the pixels into 4-byte RGBA. With premultiply set the
// colour channels are scaled by alpha, which is what GPU-backed surfaces
// expect.
func (b *Bitmap) writeRGBA(dst []byte, premultiply bool) {
	for i, p := range b.pixels {
		a := uint8(p >> 24)
		r, g, bl := uint8(p>>16), uint8(p>>8), uint8(p)
		if premultiply {
			r = uint8(uint32(r) * uint32(a) / 0xFF)
			g = uint8(uint32(g) * uint32(a) / 0xFF)
			bl = uint8(uint32(bl) * uint32(a) / 0xFF)
		}
		o := i * 4
		dst[o+0] = r
		dst[o+1] = g
		dst[o+2] = bl
		dst[o+3] = a
	}
}
