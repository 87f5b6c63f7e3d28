// Package classify implements the heuristic resource-type classifier
// (spec §4.I). Classification is advisory only — consumers may override
// by slot index (slot 0 is always "background").
package classify

import "math"

// Type is the heuristic resource type label.
type Type string

const (
	Background Type = "background"
	Palette    Type = "palette"
	Script     Type = "script"
	Graphic    Type = "graphic"
	Sound      Type = "sound"
	Unknown    Type = "unknown"
)

// Entropy computes Shannon entropy over the byte-value histogram of s,
// normalized to [0,1] by dividing by 8 (the max possible bits/byte).
func Entropy(s []byte) float64 {
	if len(s) == 0 {
		return 0
	}
	var freq [256]int
	for _, b := range s {
		freq[b]++
	}
	n := float64(len(s))
	var h float64
	for _, c := range freq {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h / 8
}

// Classify applies the §4.I heuristic to a non-background resource
// slice.
func Classify(s []byte) Type {
	size := len(s)
	switch {
	case size < 100:
		return Palette
	case size >= 100 && Entropy(s) < 0.3:
		return Script
	case size > 1000 && Entropy(s) > 0.7:
		return Graphic
	case size < 2000 && Entropy(s) > 0.6:
		return Sound
	default:
		return Unknown
	}
}
