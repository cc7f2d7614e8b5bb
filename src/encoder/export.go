package encoder

import (
	"bytes"

	"github.com/byteKnight2010/spriteToolKit/src/sprite"
	"github.com/byteKnight2010/spriteToolKit/src/utils"
)

// ExportGIF composes the full GIF in memory and only then writes path,
// so a failed encode never leaves a partial file on disk.
func ExportGIF(path string, seq sprite.Sequence, delayMS int) error {
	buf := bytes.Buffer{}
	if err := GIF(&buf, seq, delayMS); err != nil {
		return err
	}
	return utils.WriteFileAtomic(path, buf.Bytes(), 0o600)
}

// ExportSheet is the packed-spritesheet counterpart of ExportGIF.
func ExportSheet(path string, seq sprite.Sequence) error {
	buf := bytes.Buffer{}
	if err := Sheet(&buf, seq); err != nil {
		return err
	}
	return utils.WriteFileAtomic(path, buf.Bytes(), 0o600)
}

// EstimateGIFSize gives a rough output size in MB. Palette frames with
// LZW compression land around 40% of raw size for sprite animations.
func EstimateGIFSize(seq sprite.Sequence) float64 {
	if len(seq) == 0 {
		return 0
	}
	maxW, maxH := seq.Bounds()
	total := float64(maxW*maxH)*0.4*float64(len(seq)) + 2048
	return total / (1024 * 1024)
}
