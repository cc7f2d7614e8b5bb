package sprite

import (
	"image"
)

const (
	// alphaVisible and visibleRatio are the emptiness thresholds: a cell
	// is background noise unless more than 1% of its pixels have alpha
	// above 10. Intentional magic numbers, not tunable.
	alphaVisible = 10
	visibleRatio = 0.01
)

// GridStats counts every cell examined, including dropped ones.
type GridStats struct {
	Cells int
	Empty int
}

// Grid partitions src into a row-major grid of fw x fh cells. Remainder
// pixels at the right and bottom edges are discarded. Empty cells are
// skipped and counted; surviving frames are indexed densely in the order
// they are emitted.
func Grid(src image.Image, fw, fh int) (Sequence, GridStats, error) {
	stats := GridStats{}
	if fw <= 0 || fh <= 0 {
		return nil, stats, ErrBadDimensions
	}

	b := src.Bounds()
	cols := b.Dx() / fw
	rows := b.Dy() / fh
	if cols*rows == 0 {
		return nil, stats, ErrFrameTooLarge
	}

	seq := make(Sequence, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			r := image.Rect(
				b.Min.X+col*fw,
				b.Min.Y+row*fh,
				b.Min.X+(col+1)*fw,
				b.Min.Y+(row+1)*fh,
			)
			cell := Crop(src, r)
			stats.Cells++

			if Empty(cell) {
				stats.Empty++
				continue
			}

			seq = append(seq, Frame{Index: len(seq), Image: cell})
		}
	}

	return seq, stats, nil
}

// Empty reports whether a cell is background: fully transparent, or with
// fewer than 1% of its pixels visibly opaque.
func Empty(img image.Image) bool {
	b := img.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return true
	}

	maxAlpha := uint32(0)
	visible := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			a >>= 8
			if a > maxAlpha {
				maxAlpha = a
			}
			if a > alphaVisible {
				visible++
			}
		}
	}

	if maxAlpha == 0 {
		return true
	}
	if visible == 0 {
		return true
	}
	return float64(visible) < float64(total)*visibleRatio
}
