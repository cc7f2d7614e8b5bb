package encoder

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/byteKnight2010/spriteToolKit/src/sprite"
)

// SheetGrid returns the near-square packing for n frames.
func SheetGrid(n int) (cols int, rows int) {
	if n < 1 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = (n + cols - 1) / cols
	return cols, rows
}

// Sheet packs seq into a near-square spritesheet PNG. Cell size is the
// max frame dimensions; each frame is centered within its row-major cell
// on one transparent canvas.
func Sheet(w io.Writer, seq sprite.Sequence) error {
	n := len(seq)
	if n == 0 {
		return sprite.ErrNoFrames
	}

	cols, rows := SheetGrid(n)
	maxW, maxH := seq.Bounds()

	canvas := image.NewNRGBA(image.Rect(0, 0, cols*maxW, rows*maxH))
	for i, f := range seq {
		b := f.Image.Bounds()
		x := (i%cols)*maxW + (maxW-b.Dx())/2
		y := (i/cols)*maxH + (maxH-b.Dy())/2
		draw.Draw(canvas, image.Rect(x, y, x+b.Dx(), y+b.Dy()), f.Image, b.Min, draw.Over)
	}

	return png.Encode(w, canvas)
}
