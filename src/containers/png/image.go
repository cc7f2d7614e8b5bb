package png

import (
	"bytes"
	"image"
	"image/png"
)

func Test(data []byte) bool {
	if len(data) < 8 {
		return false
	}

	// PNG Magic Numbers
	// https://www.garykessler.net/library/file_sigs.html
	return data[0] == 0x89 &&
		data[1] == 'P' &&
		data[2] == 'N' &&
		data[3] == 'G' &&
		data[4] == 0x0D &&
		data[5] == 0x0A &&
		data[6] == 0x1A &&
		data[7] == 0x0A
}

func Decode(data []byte) (image.Image, error) {
	return png.Decode(bytes.NewReader(data))
}

func Encode(img image.Image) ([]byte, error) {
	buf := bytes.Buffer{}
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
