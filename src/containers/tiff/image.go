package tiff

import (
	"bytes"
	"image"

	"golang.org/x/image/tiff"
)

func Test(data []byte) bool {
	if len(data) < 4 {
		return false
	}

	// TIFF Magic Numbers, little and big endian
	// https://www.garykessler.net/library/file_sigs.html
	return (data[0] == 'I' && data[1] == 'I' && data[2] == '*' && data[3] == 0x00) ||
		(data[0] == 'M' && data[1] == 'M' && data[2] == 0x00 && data[3] == '*')
}

func Decode(data []byte) (image.Image, error) {
	return tiff.Decode(bytes.NewReader(data))
}
