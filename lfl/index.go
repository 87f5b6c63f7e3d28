package lfl

import (
	"encoding/binary"
	"fmt"

	"github.com/dirmich/loom/lflerr"
)

// ResourceRef is one master-index routing entry: the room that owns the
// resource and its offset within that room. Room 0 or offset 0xFFFF
// marks "absent" per §4.H.
type ResourceRef struct {
	Room   int
	Offset int
}

// Absent reports whether this ref denotes "no resource" (§4.H: a room
// number of 0 or an offset of 0xFFFF).
func (r ResourceRef) Absent() bool {
	return r.Room == 0 || r.Offset == 0xFFFF
}

// MasterIndex is the parsed 00.LFL master index (§4.H, §3 ResourceIndex).
type MasterIndex struct {
	VersionMagic uint16
	GlobalFlags  []byte // one class-flag byte per global object id
	Room         []ResourceRef
	Costume      []ResourceRef
	Script       []ResourceRef
	Sound        []ResourceRef
}

// ParseMasterIndex parses a decrypted 00.LFL blob (§4.H): version magic,
// global object flags, then the four resource-type sections in the
// fixed order Room, Costume, Script, Sound.
func ParseMasterIndex(blob []byte) (*MasterIndex, error) {
	if len(blob) < 3 {
		return nil, lflerr.New(lflerr.CorruptContainer, -1, fmt.Errorf("master index too short"))
	}

	mi := &MasterIndex{
		VersionMagic: binary.LittleEndian.Uint16(blob[0:2]),
	}

	pos := 2
	g := int(blob[pos])
	pos++
	if pos+g > len(blob) {
		return nil, lflerr.New(lflerr.CorruptContainer, -1, fmt.Errorf("global object flags truncated"))
	}
	mi.GlobalFlags = append([]byte(nil), blob[pos:pos+g]...)
	pos += g

	sections := []*[]ResourceRef{&mi.Room, &mi.Costume, &mi.Script, &mi.Sound}
	names := []string{"room", "costume", "script", "sound"}
	for i, dst := range sections {
		refs, next, err := parseIndexSection(blob, pos)
		if err != nil {
			return nil, lflerr.New(lflerr.CorruptContainer, -1, fmt.Errorf("%s section: %w", names[i], err))
		}
		*dst = refs
		pos = next
	}

	return mi, nil
}

// parseIndexSection reads one fixed-order section: a count byte K, K
// room-number bytes, then K little-endian u16 offsets.
func parseIndexSection(blob []byte, pos int) ([]ResourceRef, int, error) {
	if pos >= len(blob) {
		return nil, pos, fmt.Errorf("missing count byte")
	}
	k := int(blob[pos])
	pos++

	if pos+k > len(blob) {
		return nil, pos, fmt.Errorf("room-number list truncated")
	}
	rooms := blob[pos : pos+k]
	pos += k

	if pos+k*2 > len(blob) {
		return nil, pos, fmt.Errorf("offset list truncated")
	}
	refs := make([]ResourceRef, k)
	for i := 0; i < k; i++ {
		off := int(binary.LittleEndian.Uint16(blob[pos+i*2 : pos+i*2+2]))
		refs[i] = ResourceRef{Room: int(rooms[i]), Offset: off}
	}
	pos += k * 2

	return refs, pos, nil
}
