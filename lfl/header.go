package lfl

import (
	"encoding/binary"
	"fmt"

	"github.com/dirmich/loom/lflerr"
)

// Header is the fixed-layout room prefix (§3 RoomHeader).
type Header struct {
	Reserved [4]byte
	Width    int
	Height   int
	Objects  int
}

// DirEntry is one deduplicated resource-directory slot: an offset and
// every directory index (alias) that pointed at it.
type DirEntry struct {
	Offset  int
	Aliases []int
}

// Room is a parsed room blob: its header and resource directory.
type Room struct {
	Number    int
	Blob      []byte
	Header    Header
	Directory []DirEntry
}

const (
	headerDirStart = 10
	objectTableOff = 29
)

// ParseHeader parses the room header and resource directory out of a
// decrypted room blob (§4.E). The first directory entry is the
// background image's SMAP pointer.
func ParseHeader(room int, blob []byte) (*Room, error) {
	if len(blob) < headerDirStart+2 {
		return nil, lflerr.New(lflerr.InvalidRoom, room, fmt.Errorf("blob too short (%d bytes)", len(blob)))
	}

	var h Header
	copy(h.Reserved[:], blob[0:4])
	h.Width = int(binary.LittleEndian.Uint16(blob[4:6]))
	h.Height = int(binary.LittleEndian.Uint16(blob[6:8]))
	h.Objects = int(blob[8])

	if h.Width < 1 || h.Width > 640 || h.Height < 1 || h.Height > 480 {
		return nil, lflerr.New(lflerr.InvalidRoom, room, fmt.Errorf("width/height out of range: %dx%d", h.Width, h.Height))
	}

	dir := parseDirectory(blob)
	if len(dir) == 0 {
		return nil, lflerr.New(lflerr.InvalidRoom, room, fmt.Errorf("empty resource directory"))
	}

	return &Room{Number: room, Blob: blob, Header: h, Directory: dir}, nil
}

// parseDirectory reads the little-endian u16 offset list starting at
// byte 10, stopping at the first zero entry, the first offset that
// falls outside the blob, or the boundary of the object table at byte
// 29 (§3: "resource directory ... terminated by ... the first offset
// that would index outside the blob" never extends into the fixed
// object table region that starts right after it), deduplicating
// aliased offsets in order of first appearance.
func parseDirectory(blob []byte) []DirEntry {
	var dir []DirEntry
	byOffset := make(map[int]int) // offset -> index into dir

	for idx := 0; ; idx++ {
		pos := headerDirStart + idx*2
		if pos+2 > objectTableOff || pos+2 > len(blob) {
			break
		}
		off := int(binary.LittleEndian.Uint16(blob[pos : pos+2]))
		if off == 0 || off >= len(blob) {
			break
		}
		if existing, ok := byOffset[off]; ok {
			dir[existing].Aliases = append(dir[existing].Aliases, idx)
			continue
		}
		byOffset[off] = len(dir)
		dir = append(dir, DirEntry{Offset: off, Aliases: []int{idx}})
	}
	return dir
}
