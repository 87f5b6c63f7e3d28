package lfl

import (
	"encoding/binary"
	"testing"
)

// buildRoomBlob constructs a minimal decrypted room blob: a header with
// the given width/height/object count, and a resource directory
// starting at byte 10.
func buildRoomBlob(width, height, objects int, dirOffsets []int, size int) []byte {
	blob := make([]byte, size)
	binary.LittleEndian.PutUint16(blob[4:6], uint16(width))
	binary.LittleEndian.PutUint16(blob[6:8], uint16(height))
	blob[8] = byte(objects)
	for i, off := range dirOffsets {
		binary.LittleEndian.PutUint16(blob[10+i*2:12+i*2], uint16(off))
	}
	return blob
}

func TestParseHeaderBasic(t *testing.T) {
	blob := buildRoomBlob(320, 200, 0, []int{40, 80}, 100)
	room, err := ParseHeader(1, blob)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if room.Header.Width != 320 || room.Header.Height != 200 {
		t.Fatalf("got %dx%d, want 320x200", room.Header.Width, room.Header.Height)
	}
	if len(room.Directory) != 2 {
		t.Fatalf("got %d directory entries, want 2", len(room.Directory))
	}
	if room.Directory[0].Offset != 40 || room.Directory[1].Offset != 80 {
		t.Fatalf("unexpected directory offsets: %+v", room.Directory)
	}
}

func TestParseHeaderRejectsOutOfRangeDimensions(t *testing.T) {
	blob := buildRoomBlob(0, 200, 0, []int{40}, 100)
	if _, err := ParseHeader(1, blob); err == nil {
		t.Fatal("expected error for width=0")
	}

	blob = buildRoomBlob(320, 481, 0, []int{40}, 100)
	if _, err := ParseHeader(1, blob); err == nil {
		t.Fatal("expected error for height=481")
	}
}

func TestParseHeaderEmptyDirectoryFails(t *testing.T) {
	blob := buildRoomBlob(320, 200, 0, nil, 100)
	if _, err := ParseHeader(1, blob); err == nil {
		t.Fatal("expected error for empty resource directory")
	}
}

func TestParseHeaderDirectoryTerminatesAtBlobLength(t *testing.T) {
	size := 50
	blob := buildRoomBlob(320, 200, 0, []int{40, size}, size)
	room, err := ParseHeader(1, blob)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if len(room.Directory) != 1 {
		t.Fatalf("entry equal to blob length must terminate, got %d entries", len(room.Directory))
	}
}

func TestParseDirectoryStopsBeforeObjectTable(t *testing.T) {
	// Fill every directory slot from byte 10 up through the object
	// table's start at byte 29 with distinct, in-range, non-zero
	// offsets. The last slot that fits entirely below byte 29 is at
	// pos 26 (idx 8); a slot at pos 28 (idx 9) would read bytes 28-29,
	// straddling the object table, and must not be parsed as a
	// directory entry.
	const size = 200
	blob := make([]byte, size)
	binary.LittleEndian.PutUint16(blob[4:6], 320)
	binary.LittleEndian.PutUint16(blob[6:8], 200)

	offsets := make([]int, 0, 10)
	for i := 0; i < 10; i++ {
		offsets = append(offsets, 100+i) // distinct in-range offsets
	}
	for i, off := range offsets {
		pos := 10 + i*2
		if pos+2 > size {
			break
		}
		binary.LittleEndian.PutUint16(blob[pos:pos+2], uint16(off))
	}

	room, err := ParseHeader(1, blob)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if len(room.Directory) > 9 {
		t.Fatalf("directory walk absorbed an entry at or past the object table: got %d entries, want <= 9 (%+v)", len(room.Directory), room.Directory)
	}
	for _, d := range room.Directory {
		if d.Offset == 100+9 {
			t.Fatalf("directory entry 9 (pos 28, straddling object table at byte 29) must not be parsed, got %+v", room.Directory)
		}
	}
}

func TestParseHeaderAliasedOffsets(t *testing.T) {
	blob := buildRoomBlob(320, 200, 0, []int{40, 40, 80}, 100)
	room, err := ParseHeader(1, blob)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if len(room.Directory) != 2 {
		t.Fatalf("got %d directory entries, want 2 (one aliased pair)", len(room.Directory))
	}
	if len(room.Directory[0].Aliases) != 2 {
		t.Fatalf("expected 2 aliases for offset 40, got %v", room.Directory[0].Aliases)
	}
}
