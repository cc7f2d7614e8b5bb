package sprite

// commonSizes is scanned largest-first when guessing frame dimensions.
var commonSizes = []int{512, 384, 256, 192, 128, 96, 64, 48, 32, 24, 16, 8}

// Infer guesses a plausible uniform frame size for an unlabeled
// spritesheet. Square frames are preferred; otherwise the largest
// width-divisor and height-divisor are combined. The guess is advisory
// and always clamped to the sheet bounds; 32x32 is the fallback.
func Infer(width, height int) (int, int) {
	bestW, bestH := 32, 32

	for _, size := range commonSizes {
		if width%size == 0 && height%size == 0 {
			bestW, bestH = size, size
			break
		}
	}

	// No square match (or the match was the 32x32 default itself): try
	// rectangular frames from independent divisors.
	if bestW == 32 && bestH == 32 {
		for _, size := range commonSizes {
			if width%size == 0 {
				bestW = size
				for _, hSize := range commonSizes {
					if height%hSize == 0 {
						bestH = hSize
						break
					}
				}
				break
			}
		}
	}

	if bestW > width {
		bestW = width
	}
	if bestH > height {
		bestH = height
	}

	return bestW, bestH
}
