// Package lfl decodes the LFL container format used by the room (NN.LFL)
// and master index (00.LFL) files: the XOR obfuscation layer, the room
// resource directory, the object table, the dual-layout object image
// parser, and the strip-based RLE image codec.
package lfl

// Decrypt reverses the per-byte XOR-0xFF obfuscation applied to every
// LFL file on disk. It is its own inverse: Decrypt(Decrypt(x)) == x.
func Decrypt(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ 0xFF
	}
	return out
}
