package encoder

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"

	"github.com/byteKnight2010/spriteToolKit/src/sprite"
)

// GIF writes seq as an infinitely looping animated GIF. Frames of varying
// sizes are centered onto one shared canvas of the max dimensions; every
// frame restores to background before the next is drawn, so the
// size-varying frames never ghost into each other.
//
// delayMS is the exact per-frame duration in milliseconds. No frame
// merging or timing optimization is applied.
func GIF(w io.Writer, seq sprite.Sequence, delayMS int) error {
	if len(seq) == 0 {
		return sprite.ErrNoFrames
	}
	if delayMS < 1 {
		return fmt.Errorf("frame duration must be at least 1ms: %d", delayMS)
	}

	maxW, maxH := seq.Bounds()
	canvases := make([]*image.NRGBA, len(seq))
	for i, f := range seq {
		canvases[i] = center(f.Image, maxW, maxH)
	}

	pal, opaque := adaptivePalette(canvases)

	out := &gif.GIF{
		LoopCount: 0,
		Config: image.Config{
			ColorModel: pal,
			Width:      maxW,
			Height:     maxH,
		},
		BackgroundIndex: TransparentIndex,
	}

	// GIF stores delays in hundredths of a second.
	delay := delayMS / 10
	for _, c := range canvases {
		out.Image = append(out.Image, palettize(c, pal, opaque))
		out.Delay = append(out.Delay, delay)
		out.Disposal = append(out.Disposal, gif.DisposalBackground)
	}

	return gif.EncodeAll(w, out)
}

// center composites img onto a transparent canvas of the given size,
// offset by truncating integer division.
func center(img image.Image, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	b := img.Bounds()
	x := (w - b.Dx()) / 2
	y := (h - b.Dy()) / 2
	draw.Draw(dst, image.Rect(x, y, x+b.Dx(), y+b.Dy()), img, b.Min, draw.Over)
	return dst
}
