package sprite

import (
	"fmt"
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

const (
	MinSpinFrames = 20
	MaxSpinFrames = 180

	// minSpinScale keeps the edge-on frames from collapsing to zero width.
	minSpinScale = 0.01
)

// Spin simulates one full rotation of src about a vertical axis by
// horizontal foreshortening: frame i is src resized to
// round(W*|cos(2*pi*i/n)|) wide, mirrored on the back half of the turn.
func Spin(src image.Image, frames int) (Sequence, error) {
	if frames < MinSpinFrames || frames > MaxSpinFrames {
		return nil, fmt.Errorf("frame count must be between %d and %d: %d", MinSpinFrames, MaxSpinFrames, frames)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 1 || h < 1 {
		return nil, ErrBadDimensions
	}

	seq := make(Sequence, 0, frames)
	for i := 0; i < frames; i++ {
		angle := 2 * math.Pi * float64(i) / float64(frames)
		scale := math.Cos(angle)

		nw := int(math.Round(float64(w) * math.Max(math.Abs(scale), minSpinScale)))
		if nw < 1 {
			nw = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, nw, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)

		// back side of the coin
		if scale < 0 {
			dst = mirror(dst)
		}

		seq = append(seq, Frame{Index: i, Image: dst})
	}

	return seq, nil
}

func mirror(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		for x := 0; x < w; x++ {
			copy(out[x*4:x*4+4], row[(w-1-x)*4:(w-1-x)*4+4])
		}
	}
	return dst
}
