package lfl

// DecodeStrip decodes one 8-pixel-wide column of an image from an RLE
// opcode stream (§4.C). The output is height rows tall, filled
// column-major: column 0 top-to-bottom, then column 1, and so on.
// Source exhaustion is not an error — whatever was decoded by that
// point is returned, with untouched cells left at color 0.
func DecodeStrip(src []byte, height int) [][]byte {
	grid := make([][]byte, height)
	for i := range grid {
		grid[i] = make([]byte, 8)
	}
	if height <= 0 {
		return grid
	}

	x, y := 0, 0
	pos := 0

	readByte := func() (byte, bool) {
		if pos >= len(src) {
			return 0, false
		}
		b := src[pos]
		pos++
		return b, true
	}

	emit := func(color byte) {
		if x < 8 {
			grid[y][x] = color
		}
		y++
		if y == height {
			y = 0
			x++
		}
	}

	for x < 8 {
		b, ok := readByte()
		if !ok {
			break
		}

		switch {
		case b&0x80 == 0:
			// single-color run
			color := b & 0x0F
			run := int(b >> 4)
			if run == 0 {
				nb, ok := readByte()
				if !ok {
					return grid
				}
				run = int(nb)
			}
			for i := 0; i < run && x < 8; i++ {
				emit(color)
			}

		case b&0xC0 == 0x80:
			// repeat-previous run
			run := int(b & 0x3F)
			if run == 0 {
				nb, ok := readByte()
				if !ok {
					return grid
				}
				run = int(nb)
			}
			for i := 0; i < run && x < 8; i++ {
				var prev byte
				if x > 0 {
					prev = grid[y][x-1]
				}
				emit(prev)
			}

		default:
			// two-color dither run
			run := int(b & 0x3F)
			c, ok := readByte()
			if !ok {
				return grid
			}
			if run == 0 {
				nb, ok := readByte()
				if !ok {
					return grid
				}
				run = int(nb)
			}
			hi, lo := c>>4, c&0x0F
			for i := 0; i < run && x < 8; i++ {
				if i%2 == 0 {
					emit(hi)
				} else {
					emit(lo)
				}
			}
		}
	}

	return grid
}
