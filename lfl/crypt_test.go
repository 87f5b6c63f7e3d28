package lfl

import "testing"

func TestDecryptInvolution(t *testing.T) {
	in := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	want := []byte{0x55, 0x44, 0x33, 0x22}

	got := Decrypt(in)
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("Decrypt(%v)[%d] = %#02x, want %#02x", in, i, got[i], want[i])
		}
	}

	roundTrip := Decrypt(got)
	for i := range roundTrip {
		if roundTrip[i] != in[i] {
			t.Fatalf("Decrypt(Decrypt(x))[%d] = %#02x, want %#02x", i, roundTrip[i], in[i])
		}
	}
}

func TestDecryptEmpty(t *testing.T) {
	if got := Decrypt(nil); len(got) != 0 {
		t.Fatalf("Decrypt(nil) = %v, want empty", got)
	}
}
