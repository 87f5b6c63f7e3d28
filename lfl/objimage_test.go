package lfl

import (
	"encoding/binary"
	"testing"
)

// buildHeader8Payload builds an object image payload using the
// LayoutHeader8 strip table position (offset 8), n strips of equal
// length payloadPerStrip bytes each.
func buildHeader8Payload(n, payloadPerStrip int) []byte {
	tableLen := n * 2
	total := 8 + tableLen + n*payloadPerStrip
	payload := make([]byte, total)
	pos := 8
	start := 8 + tableLen
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(payload[pos:pos+2], uint16(start))
		pos += 2
		start += payloadPerStrip
	}
	return payload
}

func TestDetectObjectImageHeader8Layout(t *testing.T) {
	payload := buildHeader8Payload(2, 4)
	img, layout, ok := DetectObjectImage(payload, nil)
	if !ok {
		t.Fatal("DetectObjectImage failed to decode a well-formed header-8 payload")
	}
	if layout != LayoutHeader8 {
		t.Fatalf("got layout %v, want LayoutHeader8", layout)
	}
	if img.Width != 16 {
		t.Fatalf("got width %d, want 16", img.Width)
	}
}

func TestDetectObjectImageEmptyPayload(t *testing.T) {
	if _, _, ok := DetectObjectImage(nil, nil); ok {
		t.Fatal("expected failure on empty payload")
	}
	if _, _, ok := DetectObjectImage([]byte{}, nil); ok {
		t.Fatal("expected failure on zero-length payload")
	}
}

func TestDetectObjectImageMetadataPayloadRejected(t *testing.T) {
	// 32 bytes of printable ASCII text, no part of which looks like a
	// plausible strip offset table.
	text := []byte("this is an object name string!!!")
	if len(text) != 32 {
		t.Fatalf("test fixture must be exactly 32 bytes, got %d", len(text))
	}
	if _, _, ok := DetectObjectImage(text, nil); ok {
		t.Fatal("expected metadata-looking payload to be rejected as an image")
	}
}

func TestDetectObjectImageHeightPolicyOverride(t *testing.T) {
	payload := buildHeader8Payload(1, 4)
	calledWith := -1
	policy := func(n int) int {
		calledWith = n
		return 99
	}
	img, _, ok := DetectObjectImage(payload, policy)
	if !ok {
		t.Fatal("DetectObjectImage failed with custom height policy")
	}
	if calledWith != len(payload) {
		t.Fatalf("policy called with %d, want %d", calledWith, len(payload))
	}
	if img.Height != 99 {
		t.Fatalf("got height %d, want 99 (from override policy)", img.Height)
	}
}

func TestDetectObjectImageFallbackLayout(t *testing.T) {
	// The 8-byte payload is too short for a table at offset 8
	// (LayoutHeader8 is skipped) and is zero at offset 0
	// (LayoutBareBundle finds no strip), but has a usable table at
	// offset 2 (LayoutFallback2).
	n, payloadPerStrip := 1, 4
	tableLen := n * 2
	start := 2 + tableLen
	total := start + n*payloadPerStrip
	payload := make([]byte, total)
	binary.LittleEndian.PutUint16(payload[2:4], uint16(start))

	img, layout, ok := DetectObjectImage(payload, nil)
	if !ok {
		t.Fatal("DetectObjectImage failed to fall back to LayoutFallback2")
	}
	if layout != LayoutFallback2 {
		t.Fatalf("got layout %v, want LayoutFallback2", layout)
	}
	if img.Width != 8 {
		t.Fatalf("got width %d, want 8", img.Width)
	}
}

func TestDefaultHeightPolicyTiers(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{10, 32},
		{500, 32},
		{501, 48},
		{2000, 48},
		{2001, 64},
	}
	for _, c := range cases {
		if got := DefaultHeightPolicy(c.n); got != c.want {
			t.Fatalf("DefaultHeightPolicy(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}
