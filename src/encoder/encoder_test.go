package encoder

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byteKnight2010/spriteToolKit/src/sprite"
)

func solidFrame(index, w, h int, c color.NRGBA) sprite.Frame {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return sprite.Frame{Index: index, Image: img}
}

var red = color.NRGBA{R: 0xFF, A: 0xFF}

func TestGIFRoundTrip(t *testing.T) {
	seq := sprite.Sequence{
		solidFrame(0, 100, 100, red),
		solidFrame(1, 80, 100, red),
		solidFrame(2, 100, 80, red),
	}

	buf := bytes.Buffer{}
	require.NoError(t, GIF(&buf, seq, 50))

	decoded, err := gif.DecodeAll(&buf)
	require.NoError(t, err)

	require.Len(t, decoded.Image, 3)
	assert.Equal(t, 0, decoded.LoopCount, "loops forever")
	assert.Equal(t, 100, decoded.Config.Width)
	assert.Equal(t, 100, decoded.Config.Height)

	for i, frame := range decoded.Image {
		assert.Equal(t, 50/10, decoded.Delay[i], "delay is the exact requested duration")
		assert.Equal(t, uint8(gif.DisposalBackground), decoded.Disposal[i])
		assert.Equal(t, 100, frame.Bounds().Dx(), "unified canvas")
		assert.Equal(t, 100, frame.Bounds().Dy(), "unified canvas")
	}
}

func TestGIFTransparency(t *testing.T) {
	// 80-wide frame centered on a 100-wide canvas leaves transparent bars
	seq := sprite.Sequence{
		solidFrame(0, 100, 100, red),
		solidFrame(1, 80, 100, red),
	}

	buf := bytes.Buffer{}
	require.NoError(t, GIF(&buf, seq, 40))

	decoded, err := gif.DecodeAll(&buf)
	require.NoError(t, err)

	narrow := decoded.Image[1]
	_, _, _, a := narrow.At(0, 50).RGBA()
	assert.Zero(t, a, "margin maps to the transparent index")
	assert.Equal(t, uint8(TransparentIndex), narrow.ColorIndexAt(0, 50))

	// the sprite body never maps to the transparent slot
	assert.NotEqual(t, uint8(TransparentIndex), narrow.ColorIndexAt(50, 50))
	r, _, _, a := narrow.At(50, 50).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	assert.Equal(t, uint32(0xFFFF), a)
}

func TestGIFCenteringOffsets(t *testing.T) {
	seq := sprite.Sequence{
		solidFrame(0, 100, 100, red),
		solidFrame(1, 80, 100, red),
	}

	buf := bytes.Buffer{}
	require.NoError(t, GIF(&buf, seq, 40))

	decoded, err := gif.DecodeAll(&buf)
	require.NoError(t, err)

	// (100-80)/2 = 10: columns [10,90) carry the sprite
	narrow := decoded.Image[1]
	assert.Equal(t, uint8(TransparentIndex), narrow.ColorIndexAt(9, 50))
	assert.NotEqual(t, uint8(TransparentIndex), narrow.ColorIndexAt(10, 50))
	assert.NotEqual(t, uint8(TransparentIndex), narrow.ColorIndexAt(89, 50))
	assert.Equal(t, uint8(TransparentIndex), narrow.ColorIndexAt(90, 50))
}

func TestGIFRejectsBadInputs(t *testing.T) {
	buf := bytes.Buffer{}
	assert.ErrorIs(t, GIF(&buf, sprite.Sequence{}, 50), sprite.ErrNoFrames)
	assert.Error(t, GIF(&buf, sprite.Sequence{solidFrame(0, 10, 10, red)}, 0))
}

func TestSheetGrid(t *testing.T) {
	cols, rows := SheetGrid(5)
	assert.Equal(t, 3, cols)
	assert.Equal(t, 2, rows)

	cols, rows = SheetGrid(1)
	assert.Equal(t, 1, cols)
	assert.Equal(t, 1, rows)

	cols, rows = SheetGrid(9)
	assert.Equal(t, 3, cols)
	assert.Equal(t, 3, rows)
}

func TestSheetPacking(t *testing.T) {
	seq := sprite.Sequence{}
	for i := 0; i < 5; i++ {
		seq = append(seq, solidFrame(i, 10, 10, red))
	}

	buf := bytes.Buffer{}
	require.NoError(t, Sheet(&buf, seq))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 30, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())

	// frame 3 sits at row 1, col 0
	r, _, _, a := img.At(5, 15).RGBA()
	assert.Equal(t, uint32(0xFFFF), r)
	assert.Equal(t, uint32(0xFFFF), a)

	// last cell of the grid stays empty
	_, _, _, a = img.At(25, 15).RGBA()
	assert.Zero(t, a)
}

func TestSheetCentersSmallFrames(t *testing.T) {
	seq := sprite.Sequence{
		solidFrame(0, 10, 10, red),
		solidFrame(1, 4, 10, red),
	}

	buf := bytes.Buffer{}
	require.NoError(t, Sheet(&buf, seq))

	img, err := png.Decode(&buf)
	require.NoError(t, err)

	// second cell: (10-4)/2 = 3 pixels of margin either side
	_, _, _, a := img.At(12, 5).RGBA()
	assert.Zero(t, a)
	_, _, _, a = img.At(14, 5).RGBA()
	assert.Equal(t, uint32(0xFFFF), a)
}

func TestSheetRejectsEmptySequence(t *testing.T) {
	assert.ErrorIs(t, Sheet(&bytes.Buffer{}, sprite.Sequence{}), sprite.ErrNoFrames)
}

func TestExportWritesNothingOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.gif")

	require.Error(t, ExportGIF(path, sprite.Sequence{}, 50))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no partial file on disk")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no leftover temp files")
}

func TestExportGIF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.gif")

	seq := sprite.Sequence{solidFrame(0, 10, 10, red), solidFrame(1, 10, 10, red)}
	require.NoError(t, ExportGIF(path, seq, 100))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	decoded, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, decoded.Image, 2)
	assert.Equal(t, 10, decoded.Delay[0])
}

func TestEstimateGIFSize(t *testing.T) {
	assert.Zero(t, EstimateGIFSize(sprite.Sequence{}))

	seq := sprite.Sequence{solidFrame(0, 100, 100, red)}
	got := EstimateGIFSize(seq)
	assert.InDelta(t, (100*100*0.4+2048)/(1024*1024), got, 1e-9)
}
