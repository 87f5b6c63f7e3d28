package lfl

import (
	"encoding/binary"
	"fmt"

	"github.com/dirmich/loom/lflerr"
)

// Object is one room object's sliced OBIM (image) and OBCD (code)
// payloads (§3 ObjectTable, §4.F).
type Object struct {
	Index     int
	OBIMStart int
	OBCDStart int
	OBIM      []byte
	OBCD      []byte
}

// ParseObjectTable reads the OBIM offset table (count entries, starting
// at byte 29), immediately followed by the OBCD offset table (count
// entries), and slices each object's image and code payloads (§4.F).
// count comes from the room header's object count byte; unlike the
// resource directory, the two fixed-length tables are not
// self-terminating, so the boundary between them must be known up
// front rather than discovered by scanning for a sentinel value.
func ParseObjectTable(room int, count int, blob []byte) ([]Object, error) {
	obim, obimOK := readOffsetTable(blob, objectTableOff, count)
	obcdStart := objectTableOff + count*2
	obcd, obcdOK := readOffsetTable(blob, obcdStart, count)

	if !obimOK || !obcdOK {
		return nil, lflerr.New(lflerr.InvalidObjectTable, room,
			fmt.Errorf("object table truncated: want %d OBIM/OBCD pairs", count))
	}

	n := len(obim)
	objs := make([]Object, n)
	for i := 0; i < n; i++ {
		obimEnd := len(blob)
		if i+1 < n {
			obimEnd = obim[i+1]
		} else if n > 0 {
			obimEnd = obcd[0]
		}
		obcdEnd := len(blob)
		if i+1 < n {
			obcdEnd = obcd[i+1]
		}

		if obim[i] > obimEnd || obim[i] > len(blob) || obcd[i] > obcdEnd || obcd[i] > len(blob) {
			return nil, lflerr.New(lflerr.InvalidObjectTable, room,
				fmt.Errorf("object %d offsets cross or exceed blob bounds", i))
		}

		objs[i] = Object{
			Index:     i,
			OBIMStart: obim[i],
			OBCDStart: obcd[i],
			OBIM:      blob[obim[i]:obimEnd],
			OBCD:      blob[obcd[i]:obcdEnd],
		}
	}
	return objs, nil
}

// readOffsetTable reads exactly n consecutive little-endian u16 offsets
// starting at start. It reports ok=false if the blob is too short to
// hold them or any entry is zero or falls outside the blob, since a
// fixed-length table (unlike the resource directory) has no sentinel of
// its own to signal corruption.
func readOffsetTable(blob []byte, start int, n int) ([]int, bool) {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		pos := start + i*2
		if pos+2 > len(blob) {
			return nil, false
		}
		v := int(binary.LittleEndian.Uint16(blob[pos : pos+2]))
		if v == 0 || v >= len(blob) {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
