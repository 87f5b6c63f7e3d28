// Package midi wraps a raw Roland MT-32 sound byte stream in a Standard
// MIDI File container (spec §6). This is the "external collaborator"
// writer named in spec §1 — it only produces the wrapping bytes around
// an already-decoded payload, nothing more.
package midi

import "encoding/binary"

const ticksPerQuarterNote = 480

var endOfTrack = []byte{0x00, 0xFF, 0x2F, 0x00}

// Wrap produces a complete Standard MIDI File (format 0, one track, 480
// ticks/quarter note) whose track payload is raw appended with the
// end-of-track meta event. All multi-byte integers in the wrapper are
// big-endian (spec §9), the opposite of the little-endian LFL
// containers the payload came from.
func Wrap(raw []byte) []byte {
	trackData := make([]byte, 0, len(raw)+len(endOfTrack))
	trackData = append(trackData, raw...)
	trackData = append(trackData, endOfTrack...)

	out := make([]byte, 0, 14+8+len(trackData))

	// MThd chunk: "MThd", length=6, format=0, ntrks=1, division=480.
	out = append(out, 'M', 'T', 'h', 'd')
	out = appendUint32(out, 6)
	out = appendUint16(out, 0)
	out = appendUint16(out, 1)
	out = appendUint16(out, ticksPerQuarterNote)

	// MTrk chunk: "MTrk", length, payload.
	out = append(out, 'M', 'T', 'r', 'k')
	out = appendUint32(out, uint32(len(trackData)))
	out = append(out, trackData...)

	return out
}

func appendUint32(b []byte, v uint32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return append(b, buf[:]...)
}

func appendUint16(b []byte, v uint16) []byte {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	return append(b, buf[:]...)
}
