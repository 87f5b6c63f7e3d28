package lfl

import (
	"encoding/binary"
	"image"
)

// OffsetBase selects how a StripOffsetTable's entries are translated
// into absolute positions within the enclosing region (§9 "Absolute vs.
// relative offsets").
type OffsetBase int

const (
	// OffsetAbsoluteInRegion: table entries are already absolute
	// positions within the region (used for object images).
	OffsetAbsoluteInRegion OffsetBase = iota
	// OffsetRelativeToPtr0: table entries are relative to ptr0 (used
	// for the background/SMAP strip table).
	OffsetRelativeToPtr0
)

// StripOffsetTable is an ordered, strictly-increasing sequence of
// strip start positions (§3).
type StripOffsetTable []int

// ReadStripOffsetTable reads up to maxStrips little-endian u16 entries
// from region starting at ts, applying the termination rules from §3:
// a zero entry, an entry past region end, an entry <= the previous
// entry, or an entry inside the header area (before minOffset) all
// terminate the table.
func ReadStripOffsetTable(region []byte, ts int, maxStrips int, base OffsetBase, ptr0 int, minOffset int) StripOffsetTable {
	var table StripOffsetTable
	prev := -1
	for i := 0; i < maxStrips; i++ {
		pos := ts + i*2
		if pos+2 > len(region) {
			break
		}
		raw := int(binary.LittleEndian.Uint16(region[pos : pos+2]))
		if raw == 0 {
			break
		}

		var abs int
		switch base {
		case OffsetRelativeToPtr0:
			abs = ptr0 + raw
		default:
			abs = raw
		}

		if abs >= len(region) {
			break
		}
		if abs <= prev {
			break
		}
		if abs < minOffset {
			break
		}
		table = append(table, abs)
		prev = abs
	}
	return table
}

// Image is a decoded indexed-color bitmap: width is always a multiple
// of 8 (strip granularity), each sample in [0,15].
type Image struct {
	Width  int
	Height int
	// Strips holds one 8xHeight grid (column-major as produced by
	// DecodeStrip) per strip, left to right.
	Strips [][][]byte
}

// ToPaletted renders the decoded strips into a stdlib image.Paletted
// using the fixed 16-color Palette (§4.B).
func (img *Image) ToPaletted() *image.Paletted {
	pal := ColorPalette()
	out := image.NewPaletted(image.Rect(0, 0, img.Width, img.Height), pal)
	for s, strip := range img.Strips {
		baseX := s * 8
		for col := 0; col < 8; col++ {
			x := baseX + col
			if x >= img.Width {
				break
			}
			for y := 0; y < img.Height; y++ {
				out.SetColorIndex(x, y, strip[y][col])
			}
		}
	}
	return out
}

// SliceStrips implements step 1-2 of §4.D: parse the strip offset table
// inside region starting at ts (interpreted under base/ptr0), and slice
// out each strip's raw (still RLE-encoded) byte range, the last strip
// running to the region end. widthHint bounds how many strip-table
// entries are read (ceil(widthHint/8)); pass 0 to read the maximum the
// table supports (640/8 = 80 strips).
func SliceStrips(region []byte, ptr0 int, ts int, base OffsetBase, widthHint int, minOffset int) ([][]byte, bool) {
	maxStrips := 80
	if widthHint > 0 {
		maxStrips = (widthHint + 7) / 8
	}

	table := ReadStripOffsetTable(region, ts, maxStrips, base, ptr0, minOffset)
	if len(table) < 1 {
		return nil, false
	}

	slices := make([][]byte, len(table))
	for i, start := range table {
		end := len(region)
		if i+1 < len(table) {
			end = table[i+1]
		}
		if start > end {
			start = end
		}
		slices[i] = region[start:end]
	}
	return slices, true
}

// DecodeStripTableImage implements §4.D fully: slice the strips with
// SliceStrips, then decode each with DecodeStrip to assemble the
// resulting width = n*8 image.
func DecodeStripTableImage(region []byte, ptr0 int, ts int, base OffsetBase, widthHint int, height int, minOffset int) (*Image, bool) {
	slices, ok := SliceStrips(region, ptr0, ts, base, widthHint, minOffset)
	if !ok {
		return nil, false
	}

	img := &Image{
		Width:  len(slices) * 8,
		Height: height,
		Strips: make([][][]byte, len(slices)),
	}
	for i, s := range slices {
		img.Strips[i] = DecodeStrip(s, height)
	}
	return img, true
}

// RoomImage is the normalized, self-describing relocatable blob emitted
// by the background reconstructor (§3): a u16 width, u16 height, a strip
// offset table relative to the start of this blob, and the packed strip
// bytes.
type RoomImage struct {
	Width         int
	Height        int
	StripOffsets  []int
	StripPayloads [][]byte
}

// Encode serializes a RoomImage to its wire format (§6): u16 width, u16
// height, n u16 strip offsets, then the concatenated strip bytes.
func (ri *RoomImage) Encode() []byte {
	n := len(ri.StripOffsets)
	headerLen := 4 + n*2
	total := headerLen
	for _, p := range ri.StripPayloads {
		total += len(p)
	}

	out := make([]byte, total)
	binary.LittleEndian.PutUint16(out[0:2], uint16(ri.Width))
	binary.LittleEndian.PutUint16(out[2:4], uint16(ri.Height))
	for i, off := range ri.StripOffsets {
		binary.LittleEndian.PutUint16(out[4+i*2:6+i*2], uint16(off))
	}
	pos := headerLen
	for _, p := range ri.StripPayloads {
		copy(out[pos:], p)
		pos += len(p)
	}
	return out
}

// DecodeRoomImage parses a blob previously produced by Encode, validating
// the §8 round-trip invariant that consecutive strip offsets account for
// every byte of strip payload.
func DecodeRoomImage(blob []byte) (*RoomImage, bool) {
	if len(blob) < 4 {
		return nil, false
	}
	width := int(binary.LittleEndian.Uint16(blob[0:2]))
	height := int(binary.LittleEndian.Uint16(blob[2:4]))
	n := width / 8
	headerLen := 4 + n*2
	if n == 0 || headerLen > len(blob) {
		return nil, false
	}

	offsets := make([]int, n)
	for i := 0; i < n; i++ {
		offsets[i] = int(binary.LittleEndian.Uint16(blob[4+i*2 : 6+i*2]))
	}

	payloads := make([][]byte, n)
	for i := 0; i < n; i++ {
		end := len(blob)
		if i+1 < n {
			end = offsets[i+1]
		}
		if offsets[i] > end || end > len(blob) {
			return nil, false
		}
		payloads[i] = blob[offsets[i]:end]
	}

	return &RoomImage{Width: width, Height: height, StripOffsets: offsets, StripPayloads: payloads}, true
}
