package encoder

import (
	"image"
	"image/color"
	"sort"
)

const (
	// TransparentIndex is the palette slot reserved for fully transparent
	// pixels in every exported GIF.
	TransparentIndex = 255

	// maxOpaqueColors leaves exactly one slot for TransparentIndex.
	maxOpaqueColors = 255

	// opaqueCutoff: source pixels below this alpha are treated as
	// transparent and map to TransparentIndex, never to an opaque color.
	opaqueCutoff = 0x80
)

type colorCount struct {
	r, g, b uint8
	n       int
}

// adaptivePalette builds a median-cut palette over the opaque pixels of
// all frames. It returns a 256-entry palette with the transparent color
// at TransparentIndex, and the number of real opaque entries.
func adaptivePalette(frames []*image.NRGBA) (color.Palette, int) {
	hist := make(map[[3]uint8]int)
	for _, f := range frames {
		for i := 0; i < len(f.Pix); i += 4 {
			if f.Pix[i+3] < opaqueCutoff {
				continue
			}
			hist[[3]uint8{f.Pix[i], f.Pix[i+1], f.Pix[i+2]}]++
		}
	}

	entries := make([]colorCount, 0, len(hist))
	for k, n := range hist {
		entries = append(entries, colorCount{k[0], k[1], k[2], n})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.r != b.r {
			return a.r < b.r
		}
		if a.g != b.g {
			return a.g < b.g
		}
		return a.b < b.b
	})

	boxes := [][]colorCount{}
	if len(entries) > 0 {
		boxes = append(boxes, entries)
	}
	for len(boxes) < maxOpaqueColors {
		idx := widestBox(boxes)
		if idx < 0 {
			break
		}
		left, right := splitBox(boxes[idx])
		boxes[idx] = left
		boxes = append(boxes, right)
	}

	pal := make(color.Palette, 256)
	opaque := len(boxes)
	for i, b := range boxes {
		pal[i] = averageColor(b)
	}
	for i := opaque; i < TransparentIndex; i++ {
		pal[i] = color.NRGBA{A: 0xFF}
	}
	pal[TransparentIndex] = color.NRGBA{}

	return pal, opaque
}

// widestBox picks the splittable box with the largest channel range.
func widestBox(boxes [][]colorCount) int {
	best, bestRange := -1, 0
	for i, b := range boxes {
		if len(b) < 2 {
			continue
		}
		_, r := widestChannel(b)
		if r > bestRange {
			best, bestRange = i, r
		}
	}
	return best
}

func widestChannel(b []colorCount) (ch int, rng int) {
	var lo, hi [3]int
	for i := range lo {
		lo[i] = 256
		hi[i] = -1
	}
	for _, e := range b {
		for i, v := range [3]int{int(e.r), int(e.g), int(e.b)} {
			if v < lo[i] {
				lo[i] = v
			}
			if v > hi[i] {
				hi[i] = v
			}
		}
	}
	for i := range lo {
		if hi[i]-lo[i] > rng {
			ch, rng = i, hi[i]-lo[i]
		}
	}
	return ch, rng
}

// splitBox sorts by the widest channel and cuts at the weighted median.
func splitBox(b []colorCount) ([]colorCount, []colorCount) {
	ch, _ := widestChannel(b)
	sort.Slice(b, func(i, j int) bool {
		return channel(b[i], ch) < channel(b[j], ch)
	})

	total := 0
	for _, e := range b {
		total += e.n
	}
	acc := 0
	for i, e := range b {
		acc += e.n
		if acc*2 >= total && i+1 < len(b) {
			return b[:i+1], b[i+1:]
		}
	}
	return b[:len(b)-1], b[len(b)-1:]
}

func channel(e colorCount, ch int) uint8 {
	switch ch {
	case 0:
		return e.r
	case 1:
		return e.g
	default:
		return e.b
	}
}

func averageColor(b []colorCount) color.NRGBA {
	var r, g, bl, n uint64
	for _, e := range b {
		w := uint64(e.n)
		r += uint64(e.r) * w
		g += uint64(e.g) * w
		bl += uint64(e.b) * w
		n += w
	}
	if n == 0 {
		return color.NRGBA{A: 0xFF}
	}
	return color.NRGBA{
		R: uint8(r / n),
		G: uint8(g / n),
		B: uint8(bl / n),
		A: 0xFF,
	}
}

// palettize maps a unified canvas onto the palette. Transparent source
// pixels always land on TransparentIndex, never on a visually similar
// opaque entry.
func palettize(c *image.NRGBA, pal color.Palette, opaque int) *image.Paletted {
	p := image.NewPaletted(c.Bounds(), pal)
	lookup := pal[:opaque]
	cache := make(map[[3]uint8]uint8)

	w, h := c.Bounds().Dx(), c.Bounds().Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*c.Stride + x*4
			if c.Pix[i+3] < opaqueCutoff {
				p.Pix[y*p.Stride+x] = TransparentIndex
				continue
			}
			key := [3]uint8{c.Pix[i], c.Pix[i+1], c.Pix[i+2]}
			idx, ok := cache[key]
			if !ok {
				idx = uint8(lookup.Index(color.NRGBA{R: key[0], G: key[1], B: key[2], A: 0xFF}))
				cache[key] = idx
			}
			p.Pix[y*p.Stride+x] = idx
		}
	}
	return p
}
