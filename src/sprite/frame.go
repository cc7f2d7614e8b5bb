package sprite

import (
	"fmt"
	"image"
	"image/draw"
)

var (
	ErrBadDimensions = fmt.Errorf("frame dimensions must be positive")
	ErrFrameTooLarge = fmt.Errorf("frame dimensions exceed source size")
	ErrNoFrames      = fmt.Errorf("no frames")
)

// Frame is one still image at a 0-based position within an animation or
// grid. Frames own their pixel buffer; nothing is shared with the source.
type Frame struct {
	Index int
	Image image.Image
}

// Sequence is an ordered list of frames. Order is playback/encode order.
type Sequence []Frame

// Bounds returns the max width and height across all frames.
func (s Sequence) Bounds() (w int, h int) {
	for _, f := range s {
		b := f.Image.Bounds()
		if b.Dx() > w {
			w = b.Dx()
		}
		if b.Dy() > h {
			h = b.Dy()
		}
	}
	return w, h
}

// Crop copies the region r of src into a new, independently owned image.
// r is in src's coordinate space.
func Crop(src image.Image, r image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)
	return dst
}
