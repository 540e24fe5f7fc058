// Package snapshot writes rendered frames to PNG files.
package snapshot

import (
	"image"
	"image/png"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Scale upscales src by an integer factor with nearest-neighbour sampling so
// that every cell stays a crisp square.
func Scale(src image.Image, factor int) *image.NRGBA {
	factor = max(factor, 1)
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Encode writes src, scaled by factor, as PNG to w
func Encode(w io.Writer, src image.Image, factor int) error {
	if err := png.Encode(w, Scale(src, factor)); err != nil {
		return errors.Wrap(err, "[Encode] png encode failed")
	}
	return nil
}

// Save writes src, scaled by factor, to a PNG file at path
func Save(path string, src image.Image, factor int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "[Save] failed to create file: %+v", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "[Save] failed to close file: %+v", path)
		}
	}()
	return Encode(f, src, factor)
}
