package imagemeta

type Meta struct {
	Width  int
	Height int
	Frames int
}

type Type string

const (
	BMP  Type = "bmp"
	GIF  Type = "gif"
	JPEG Type = "jpeg"
	PNG  Type = "png"
	TIFF Type = "tiff"
)
