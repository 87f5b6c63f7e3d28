// Package extract drives the per-room extraction state machine (spec
// §4.K state machine, §5 concurrency, §6 output layout) on top of the
// pure lfl/classify/manifest/midi packages.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dirmich/loom/classify"
	"github.com/dirmich/loom/lfl"
	"github.com/dirmich/loom/lflerr"
	"github.com/dirmich/loom/manifest"
	"github.com/dirmich/loom/midi"
)

// RoomResult is the outcome of extracting one room: either a set of
// manifest resources (on success) or a failure reason (§4.K
// RoomFailed(reason), which never aborts other rooms).
type RoomResult struct {
	RoomNumber int
	Width      int
	Height     int
	Reserved   string
	Resources  []manifest.Resource
	Err        error
}

// Room decrypts, parses, and emits every artifact for one room into
// outDir/room_<NN>/, returning the manifest resources it produced. A
// non-nil Err means the room was abandoned (RoomFailed) and produced no
// partial output — "partial rooms are either fully emitted or omitted"
// (§7).
func Room(roomNumber int, raw []byte, outDir string) RoomResult {
	fail := func(err error) RoomResult {
		return RoomResult{RoomNumber: roomNumber, Err: err}
	}

	blob := lfl.Decrypt(raw)

	room, err := lfl.ParseHeader(roomNumber, blob)
	if err != nil {
		return fail(err)
	}

	objs, err := lfl.ParseObjectTable(roomNumber, room.Header.Objects, blob)
	if err != nil {
		return fail(err)
	}

	roomDir := filepath.Join(outDir, fmt.Sprintf("room_%02d", roomNumber))
	written := make(map[string]bool) // output path -> written, for §5 PathCollision detection

	writeFile := func(rel string, data []byte) (string, error) {
		full := filepath.Join(roomDir, rel)
		if written[full] {
			return "", lflerr.New(lflerr.PathCollision, roomNumber, fmt.Errorf("%s", rel))
		}
		written[full] = true
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return "", lflerr.New(lflerr.IoError, roomNumber, err)
		}
		if err := os.WriteFile(full, data, 0o644); err != nil {
			return "", lflerr.New(lflerr.IoError, roomNumber, err)
		}
		return rel, nil
	}

	// discard removes every file this room wrote (and the directories
	// left empty by that) before reporting the failure, so a failed room
	// leaves no partial output behind.
	discard := func(err error) RoomResult {
		for full := range written {
			os.Remove(full)
			os.Remove(filepath.Dir(full))
		}
		os.Remove(roomDir)
		return fail(err)
	}

	var resources []manifest.Resource
	nextID := 0
	allocID := func() int {
		id := nextID
		nextID++
		return id
	}

	// Background (directory slot 0, §4.K). Non-fatal on failure.
	if bg, ok := lfl.ReconstructBackground(room); ok {
		data := bg.Encode()
		rel, err := writeFile(filepath.Join("background", "background.bin"), data)
		if err != nil {
			return discard(err)
		}
		id := allocID()
		resources = append(resources, manifest.Resource{
			ID:       id,
			Type:     string(classify.Background),
			Filename: filepath.Base(rel),
			Path:     filepath.Join(fmt.Sprintf("room_%02d", roomNumber), rel),
			Size:     len(data),
			Aliases:  aliasesAfterPrimary(room.Directory[0].Aliases),
		})
	}

	// Remaining directory entries (§4.I classifier).
	boundaries := collectBoundaries(room.Blob, room.Directory, objs)
	for _, entry := range room.Directory[1:] {
		end := nextBoundary(boundaries, entry.Offset, len(room.Blob))
		if entry.Offset > end {
			continue
		}
		slice := room.Blob[entry.Offset:end]
		typ := classify.Classify(slice)
		id := allocID()

		var rel string
		var data []byte
		switch typ {
		case classify.Script:
			data = slice
			rel, err = writeFile(filepath.Join("scripts", fmt.Sprintf("%02d_%d.bin", roomNumber, id)), data)
		case classify.Sound:
			data = midi.Wrap(slice)
			rel, err = writeFile(filepath.Join("sounds", fmt.Sprintf("%02d_%d.bin", roomNumber, id)), data)
		default:
			// Palette/Unknown/Graphic (non-object) resources have no
			// dedicated folder in §6; they're raw payloads like object
			// images, so they share graphics/.
			data = slice
			rel, err = writeFile(filepath.Join("graphics", fmt.Sprintf("dir%02d.bin", id)), data)
		}
		if err != nil {
			return discard(err)
		}

		resources = append(resources, manifest.Resource{
			ID:       id,
			Type:     string(typ),
			Filename: filepath.Base(rel),
			Path:     filepath.Join(fmt.Sprintf("room_%02d", roomNumber), rel),
			Size:     len(data),
			Aliases:  aliasesAfterPrimary(entry.Aliases),
		})
	}

	// Objects (§4.F, §4.G).
	for _, obj := range objs {
		id := allocID()
		objType := objectType(obj.OBIM)

		if len(obj.OBIM) > 0 {
			rel, err := writeFile(filepath.Join("graphics", fmt.Sprintf("obj%02d.bin", obj.Index)), obj.OBIM)
			if err != nil {
				return discard(err)
			}
			resources = append(resources, manifest.Resource{
				ID:       id,
				Type:     objType,
				Filename: filepath.Base(rel),
				Path:     filepath.Join(fmt.Sprintf("room_%02d", roomNumber), rel),
				Size:     len(obj.OBIM),
				Aliases:  []int{},
			})
		}

		if len(obj.OBCD) > 0 {
			scriptID := allocID()
			rel, err := writeFile(filepath.Join("scripts", fmt.Sprintf("%02d_%d.bin", roomNumber, scriptID)), obj.OBCD)
			if err != nil {
				return discard(err)
			}
			resources = append(resources, manifest.Resource{
				ID:       scriptID,
				Type:     string(classify.Script),
				Filename: filepath.Base(rel),
				Path:     filepath.Join(fmt.Sprintf("room_%02d", roomNumber), rel),
				Size:     len(obj.OBCD),
				Aliases:  []int{},
			})
		}
	}

	return RoomResult{
		RoomNumber: roomNumber,
		Width:      room.Header.Width,
		Height:     room.Header.Height,
		Reserved:   fmt.Sprintf("%x", room.Header.Reserved),
		Resources:  resources,
	}
}

// objectType classifies an object image payload per §4.F/§4.G: exactly
// 19 bytes is metadata-only, 0 bytes is absent, everything else is fed
// to the dual-layout detector.
func objectType(payload []byte) string {
	switch {
	case len(payload) == 0:
		return "absent"
	case len(payload) == 19:
		return "metadata"
	}
	if _, _, ok := lfl.DetectObjectImage(payload, nil); ok {
		return "image"
	}
	return "unknown"
}

func aliasesAfterPrimary(aliases []int) []int {
	if len(aliases) <= 1 {
		return []int{}
	}
	return append([]int(nil), aliases[1:]...)
}

// collectBoundaries gathers every known offset inside the room blob —
// directory entries and object table offsets — so a generic directory
// resource's end can be resolved as "the next known boundary", the same
// technique §4.F uses for OBIM/OBCD slicing.
func collectBoundaries(blob []byte, dir []lfl.DirEntry, objs []lfl.Object) []int {
	seen := make(map[int]bool)
	var out []int
	add := func(v int) {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, d := range dir {
		add(d.Offset)
	}
	for _, o := range objs {
		add(o.OBIMStart)
		add(o.OBCDStart)
	}
	add(len(blob))
	sort.Ints(out)
	return out
}

func nextBoundary(boundaries []int, after int, blobLen int) int {
	for _, b := range boundaries {
		if b > after {
			return b
		}
	}
	return blobLen
}
