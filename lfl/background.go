package lfl

// ReconstructBackground implements §4.K: decode the background image at
// directory slot 0 (SMAP) and normalize it into a self-relative
// RoomImage blob. Its strip table lives at smap_ptr+2 with entries
// relative to smap_ptr. Failure is non-fatal — callers record the
// background as missing rather than aborting the room.
func ReconstructBackground(room *Room) (*RoomImage, bool) {
	if len(room.Directory) == 0 {
		return nil, false
	}
	smapPtr := room.Directory[0].Offset
	if smapPtr+2 > len(room.Blob) {
		return nil, false
	}

	slices, ok := SliceStrips(room.Blob, smapPtr, smapPtr+2, OffsetRelativeToPtr0, room.Header.Width, smapPtr)
	if !ok {
		return nil, false
	}

	n := len(slices)
	headerLen := 4 + n*2
	offsets := make([]int, n)
	pos := headerLen
	for i, s := range slices {
		offsets[i] = pos
		pos += len(s)
	}

	return &RoomImage{
		Width:         n * 8,
		Height:        room.Header.Height,
		StripOffsets:  offsets,
		StripPayloads: slices,
	}, true
}
