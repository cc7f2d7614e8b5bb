package containers

import (
	"fmt"
	"image"

	"github.com/byteKnight2010/spriteToolKit/src/containers/bmp"
	"github.com/byteKnight2010/spriteToolKit/src/containers/gif"
	"github.com/byteKnight2010/spriteToolKit/src/containers/jpeg"
	"github.com/byteKnight2010/spriteToolKit/src/containers/png"
	"github.com/byteKnight2010/spriteToolKit/src/containers/tiff"
	"github.com/byteKnight2010/spriteToolKit/src/imagemeta"
)

var ErrUnknownFormat = fmt.Errorf("unknown image format")

func ToType(data []byte) (imagemeta.Type, error) {
	if gif.Test(data) {
		return imagemeta.GIF, nil
	} else if jpeg.Test(data) {
		return imagemeta.JPEG, nil
	} else if png.Test(data) {
		return imagemeta.PNG, nil
	} else if tiff.Test(data) {
		return imagemeta.TIFF, nil
	} else if bmp.Test(data) {
		return imagemeta.BMP, nil
	}

	return "", ErrUnknownFormat
}

// Decode sniffs the format and decodes in-process. All decoders preserve
// per-pixel alpha where the format carries it.
func Decode(data []byte) (image.Image, imagemeta.Type, error) {
	t, err := ToType(data)
	if err != nil {
		return nil, "", err
	}

	var img image.Image
	switch t {
	case imagemeta.BMP:
		img, err = bmp.Decode(data)
	case imagemeta.GIF:
		img, err = gif.Decode(data)
	case imagemeta.JPEG:
		img, err = jpeg.Decode(data)
	case imagemeta.PNG:
		img, err = png.Decode(data)
	case imagemeta.TIFF:
		img, err = tiff.Decode(data)
	default:
		return nil, "", ErrUnknownFormat
	}
	if err != nil {
		return nil, t, fmt.Errorf("decode %s failed: %s", t, err.Error())
	}

	return img, t, nil
}
