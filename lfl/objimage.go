package lfl

// Layout tags which of the two recognized object-image byte layouts was
// used to decode a payload (§4.G, §9 "two-layout object images ... a
// tagged decision").
type Layout int

const (
	LayoutNone Layout = iota
	LayoutHeader8
	LayoutBareBundle
	LayoutFallback2
	LayoutFallback4
	LayoutFallback6
)

// candidate describes one layout to try: where its strip table starts
// and the minimum valid offset value for that layout.
type candidate struct {
	layout    Layout
	tableAt   int
	minOffset int
}

var candidateOrder = []candidate{
	{LayoutHeader8, 8, 10},
	{LayoutBareBundle, 0, 2},
	{LayoutFallback2, 2, 4},
	{LayoutFallback4, 4, 6},
	{LayoutFallback6, 6, 8},
}

// HeightPolicy picks the decode height for an object image payload based
// on its size (§4.G, §9 design note: exposed so a caller can override it,
// e.g. from a disassembled script that knows the real height).
type HeightPolicy func(payloadLen int) int

// DefaultHeightPolicy implements the documented tiering: >2000 -> 64,
// >500 -> 48, else 32.
func DefaultHeightPolicy(payloadLen int) int {
	switch {
	case payloadLen > 2000:
		return 64
	case payloadLen > 500:
		return 48
	default:
		return 32
	}
}

// looksLikeMetadata reports whether the first 32 bytes (or fewer, if the
// payload is shorter) of payload are at least 75% printable ASCII,
// marking it as text/metadata rather than an image (§4.G).
func looksLikeMetadata(payload []byte) bool {
	n := len(payload)
	if n > 32 {
		n = 32
	}
	if n == 0 {
		return false
	}
	printable := 0
	for _, b := range payload[:n] {
		if b >= 0x20 && b < 0x7F {
			printable++
		}
	}
	return float64(printable)/float64(n) >= 0.75
}

// DetectObjectImage auto-detects the layout of an object image payload
// and decodes it (§4.G). It tries layouts in priority order, accepting
// the first whose strip offset table parses to >=1 strictly-monotone,
// in-range strip, and returns both the image and the layout tag so
// callers can reject ambiguous results.
func DetectObjectImage(payload []byte, policy HeightPolicy) (*Image, Layout, bool) {
	if len(payload) == 0 {
		return nil, LayoutNone, false
	}
	if looksLikeMetadata(payload) {
		return nil, LayoutNone, false
	}
	if policy == nil {
		policy = DefaultHeightPolicy
	}
	height := policy(len(payload))
	if height <= 0 {
		return nil, LayoutNone, false
	}

	for _, c := range candidateOrder {
		if c.tableAt >= len(payload) {
			continue
		}
		img, ok := DecodeStripTableImage(payload, 0, c.tableAt, OffsetAbsoluteInRegion, 0, height, c.minOffset)
		if ok {
			return img, c.layout, true
		}
	}
	return nil, LayoutNone, false
}
