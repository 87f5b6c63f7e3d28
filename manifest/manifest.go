// Package manifest builds and serializes the extraction catalog (spec
// §4.J, §6). encoding/json is the idiomatic choice here — no repo in
// the reference pack reaches for a third-party JSON library for a flat
// schema like this one.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Resource is one catalogued resource entry (§6 schema, §12.2 aliases).
type Resource struct {
	Aliases  []int  `json:"aliases"`
	Filename string `json:"filename"`
	ID       int    `json:"id"`
	Path     string `json:"path"`
	Size     int    `json:"size"`
	Type     string `json:"type"`
}

// Room is one room's catalog entry (§6 schema).
type Room struct {
	Height    int        `json:"height"`
	Reserved  string     `json:"reserved"`
	Resources []Resource `json:"resources"`
	Room      string     `json:"room"`
	Width     int        `json:"width"`
}

// RoutingEntry is one master-index routing record (§4.H ResourceIndex):
// a global resource id and the room/offset that owns it. Entries whose
// ResourceRef was Absent (§4.H: room 0 or offset 0xFFFF) are omitted by
// the caller before these are built, since "absent" carries no routing
// information to publish.
type RoutingEntry struct {
	ID     int `json:"id"`
	Offset int `json:"offset"`
	Room   int `json:"room"`
}

// Manifest is the top-level catalog (§3, §6, §12.1 by_type rollup).
// Field order is alphabetical by JSON key so the zero-effort struct
// marshal already satisfies "sorted keys at the top level" (§4.J).
type Manifest struct {
	ByType         map[string]int            `json:"by_type"`
	Game           string                    `json:"game"`
	Rooms          []Room                    `json:"rooms"`
	Routing        map[string][]RoutingEntry `json:"routing,omitempty"`
	TotalResources int                       `json:"total_resources"`
	TotalRooms     int                       `json:"total_rooms"`
	Version        string                    `json:"version"`
}

// Builder accumulates rooms in arrival order and produces a Manifest
// with the stable ordering §4.J requires: rooms ascending by number,
// resources ascending by primary id within a room.
type Builder struct {
	game, version string
	rooms         []Room
	routing       map[string][]RoutingEntry
}

func NewBuilder(game, version string) *Builder {
	return &Builder{game: game, version: version}
}

// AddRoom appends one room's resources. roomNumber formats as the
// two-digit "NN" the schema requires. reserved is the room header's
// opaque 4-byte prefix (§9 Open Questions: captured verbatim for
// diagnostics, never interpreted), hex-encoded.
func (b *Builder) AddRoom(roomNumber, width, height int, reserved string, resources []Resource) {
	sorted := append([]Resource(nil), resources...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	b.rooms = append(b.rooms, Room{
		Room:      fmt.Sprintf("%02d", roomNumber),
		Width:     width,
		Height:    height,
		Reserved:  reserved,
		Resources: sorted,
	})
}

// SetRouting attaches the master index's cross-room routing tables
// (§4.H ResourceIndex) to the manifest under construction: one entry
// list per resource-type name ("room", "costume", "script", "sound").
// This is the only place the parsed MasterIndex reaches an output —
// without it §4.H's routing tables would be parsed and discarded.
func (b *Builder) SetRouting(routing map[string][]RoutingEntry) {
	b.routing = routing
}

// Build assembles the final Manifest, sorting rooms ascending by number
// and computing the by_type rollup.
func (b *Builder) Build() Manifest {
	rooms := append([]Room(nil), b.rooms...)
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Room < rooms[j].Room })

	byType := make(map[string]int)
	total := 0
	for _, r := range rooms {
		for _, res := range r.Resources {
			byType[res.Type]++
			total++
		}
	}

	return Manifest{
		Game:           b.game,
		Version:        b.version,
		TotalRooms:     len(rooms),
		TotalResources: total,
		Rooms:          rooms,
		Routing:        b.routing,
		ByType:         byType,
	}
}

// WriteAtomic marshals m as 2-space-indented JSON and writes it to path
// by first writing a temp file in the same directory, then renaming it
// into place (§5 ordering guarantee: the manifest is atomically
// replaced at the end).
func WriteAtomic(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".manifest-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
