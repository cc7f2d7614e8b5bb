package extract

import (
	"fmt"
	"image"

	"github.com/byteKnight2010/spriteToolKit/src/sprite"
)

// Job holds everything needed to split one spritesheet to disk. The
// source image is passed separately and is only ever read.
type Job struct {
	FrameWidth  int    `json:"frame_width"`
	FrameHeight int    `json:"frame_height"`
	OutputDir   string `json:"output_dir"`
	Prefix      string `json:"prefix"`
	StartIndex  int    `json:"start_index"`
	Padding     int    `json:"padding"`
}

// Validate reports parameter errors before any work starts.
func (j Job) Validate(src image.Image) error {
	if j.FrameWidth <= 0 || j.FrameHeight <= 0 {
		return sprite.ErrBadDimensions
	}
	b := src.Bounds()
	if j.FrameWidth > b.Dx() || j.FrameHeight > b.Dy() {
		return sprite.ErrFrameTooLarge
	}
	if j.Prefix == "" {
		return fmt.Errorf("filename prefix cannot be empty")
	}
	if j.Padding < 1 {
		return fmt.Errorf("zero padding must be at least 1: %d", j.Padding)
	}
	return nil
}

// Filename builds the persisted name for one emitted frame.
func (j Job) Filename(index int) string {
	return fmt.Sprintf("%s_%0*d.png", j.Prefix, j.Padding, index)
}
