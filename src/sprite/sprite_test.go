package sprite

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

var (
	red  = color.NRGBA{R: 0xFF, A: 0xFF}
	blue = color.NRGBA{B: 0xFF, A: 0xFF}
)

func TestSpinFrameCount(t *testing.T) {
	src := solid(100, 40, red)
	for _, n := range []int{MinSpinFrames, 60, MaxSpinFrames} {
		seq, err := Spin(src, n)
		require.NoError(t, err)
		assert.Len(t, seq, n)
		for i, f := range seq {
			assert.Equal(t, i, f.Index)
			assert.Equal(t, 40, f.Image.Bounds().Dy())
		}
	}
}

func TestSpinWidths(t *testing.T) {
	src := solid(200, 50, red)
	seq, err := Spin(src, 20)
	require.NoError(t, err)

	// full width when facing the viewer, front and back
	assert.Equal(t, 200, seq[0].Image.Bounds().Dx())
	assert.Equal(t, 200, seq[10].Image.Bounds().Dx())

	// edge-on frames bottom out at the 1% floor, never zero
	assert.Equal(t, 2, seq[5].Image.Bounds().Dx())
	assert.Equal(t, 2, seq[15].Image.Bounds().Dx())

	for _, f := range seq {
		assert.GreaterOrEqual(t, f.Image.Bounds().Dx(), 1)
	}
}

func TestSpinWidthFollowsCosine(t *testing.T) {
	src := solid(100, 10, red)
	n := 40
	seq, err := Spin(src, n)
	require.NoError(t, err)

	for i, f := range seq {
		angle := 2 * math.Pi * float64(i) / float64(n)
		want := int(math.Round(100 * math.Max(math.Abs(math.Cos(angle)), 0.01)))
		if want < 1 {
			want = 1
		}
		assert.Equal(t, want, f.Image.Bounds().Dx(), "frame %d", i)
	}
}

func TestSpinMirrorsBackFace(t *testing.T) {
	// left half red, right half blue
	src := image.NewNRGBA(image.Rect(0, 0, 100, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 100; x++ {
			if x < 50 {
				src.SetNRGBA(x, y, red)
			} else {
				src.SetNRGBA(x, y, blue)
			}
		}
	}

	seq, err := Spin(src, 20)
	require.NoError(t, err)

	// frame 10 is the back face at full width: red ends up on the right
	front := seq[0].Image.(*image.RGBA)
	back := seq[10].Image.(*image.RGBA)
	assert.Equal(t, front.RGBAAt(0, 5), back.RGBAAt(99, 5))
	assert.Equal(t, front.RGBAAt(99, 5), back.RGBAAt(0, 5))
}

func TestSpinRejectsBadFrameCounts(t *testing.T) {
	src := solid(10, 10, red)
	for _, n := range []int{0, -1, MinSpinFrames - 1, MaxSpinFrames + 1} {
		_, err := Spin(src, n)
		assert.Error(t, err, "frame count %d", n)
	}
}

func TestSpinRejectsEmptySource(t *testing.T) {
	_, err := Spin(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 60)
	assert.ErrorIs(t, err, ErrBadDimensions)
}

func TestInfer(t *testing.T) {
	cases := []struct {
		w, h         int
		wantW, wantH int
	}{
		{256, 256, 256, 256},
		{512, 512, 512, 512},
		{128, 64, 64, 64},
		{96, 96, 96, 96},
		// square scan lands on the 32x32 default, so the rectangular
		// fallback promotes the width to its largest divisor
		{64, 32, 64, 32},
		{512, 32, 512, 32},
		// nothing divides: default, clamped to the sheet
		{100, 100, 32, 32},
		{20, 20, 20, 20},
		{7, 500, 7, 32},
	}

	for _, c := range cases {
		fw, fh := Infer(c.w, c.h)
		assert.Equal(t, c.wantW, fw, "width for %dx%d", c.w, c.h)
		assert.Equal(t, c.wantH, fh, "height for %dx%d", c.w, c.h)
		assert.LessOrEqual(t, fw, c.w)
		assert.LessOrEqual(t, fh, c.h)
	}
}

// sheet builds a transparent 64x64 image and paints an opaque blob into
// the given 32x32 cells.
func sheet(cells ...image.Point) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for _, c := range cells {
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				img.SetNRGBA(c.X*32+8+x, c.Y*32+8+y, red)
			}
		}
	}
	return img
}

func TestGridDropsEmptyCells(t *testing.T) {
	src := sheet(image.Pt(0, 0), image.Pt(1, 1))

	seq, stats, err := Grid(src, 32, 32)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Cells)
	assert.Equal(t, 2, stats.Empty)
	require.Len(t, seq, 2)

	// dense indices over emitted frames only
	assert.Equal(t, 0, seq[0].Index)
	assert.Equal(t, 1, seq[1].Index)
	for _, f := range seq {
		b := f.Image.Bounds()
		assert.Equal(t, 32, b.Dx())
		assert.Equal(t, 32, b.Dy())
	}
}

func TestGridDiscardsRemainderPixels(t *testing.T) {
	src := solid(70, 70, red)
	seq, stats, err := Grid(src, 32, 32)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Cells)
	assert.Len(t, seq, 4)
}

func TestGridFrameTooLarge(t *testing.T) {
	src := solid(64, 64, red)
	_, _, err := Grid(src, 100, 100)
	assert.ErrorIs(t, err, ErrFrameTooLarge)
}

func TestGridBadDimensions(t *testing.T) {
	src := solid(64, 64, red)
	_, _, err := Grid(src, 0, 32)
	assert.ErrorIs(t, err, ErrBadDimensions)
}

func blobCell(pixels int, alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for i := 0; i < pixels; i++ {
		img.SetNRGBA(i%32, i/32, color.NRGBA{R: 0xFF, A: alpha})
	}
	return img
}

func TestEmpty(t *testing.T) {
	// 32x32 = 1024 pixels, 1% threshold = 10.24
	assert.True(t, Empty(blobCell(0, 0)), "fully transparent")
	assert.True(t, Empty(blobCell(10, 0xFF)), "below 1% visible")
	assert.False(t, Empty(blobCell(11, 0xFF)), "at 1% visible")
	assert.False(t, Empty(blobCell(1024, 0xFF)), "fully opaque")

	// alpha at the threshold does not count as visible
	assert.True(t, Empty(blobCell(1024, 10)))
	assert.False(t, Empty(blobCell(1024, 11)))
}

func TestCropIsIndependent(t *testing.T) {
	src := solid(64, 64, red)
	c := Crop(src, image.Rect(0, 0, 32, 32))

	src.SetNRGBA(0, 0, blue)
	assert.Equal(t, color.RGBA{R: 0xFF, A: 0xFF}, c.RGBAAt(0, 0))
}
