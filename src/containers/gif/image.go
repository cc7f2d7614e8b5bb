package gif

import (
	"bytes"
	"image"
	"image/gif"
)

func Test(data []byte) bool {
	if len(data) < 6 {
		return false
	}

	// GIF Magic Numbers
	// https://www.garykessler.net/library/file_sigs.html
	return data[0] == 'G' &&
		data[1] == 'I' &&
		data[2] == 'F' &&
		data[3] == '8' &&
		(data[4] == '7' || data[4] == '9') &&
		data[5] == 'a'
}

// Decode returns the first frame. Animated inputs are treated as a still
// image, matching how the splitter loads its source sheet.
func Decode(data []byte) (image.Image, error) {
	return gif.Decode(bytes.NewReader(data))
}
