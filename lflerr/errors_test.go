package lflerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessageIncludesRoom(t *testing.T) {
	err := New(InvalidRoom, 7, fmt.Errorf("width out of range"))
	got := err.Error()
	want := "room 07: InvalidRoom: width out of range"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestErrorMessageOmitsRoomWhenNegative(t *testing.T) {
	err := New(CorruptContainer, -1, fmt.Errorf("too short"))
	got := err.Error()
	want := "CorruptContainer: too short"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestIsMatchesKind(t *testing.T) {
	err := New(PathCollision, 3, fmt.Errorf("dup"))
	if !Is(err, PathCollision) {
		t.Fatal("Is(err, PathCollision) = false, want true")
	}
	if Is(err, IoError) {
		t.Fatal("Is(err, IoError) = true, want false")
	}
}

func TestIsUnwrapsWrappedErrors(t *testing.T) {
	inner := New(UndecodableImage, 1, fmt.Errorf("both layouts rejected"))
	wrapped := fmt.Errorf("extracting object 2: %w", inner)
	if !Is(wrapped, UndecodableImage) {
		t.Fatal("Is should see through fmt.Errorf %w wrapping")
	}
}

func TestIsFalseForPlainError(t *testing.T) {
	if Is(errors.New("plain"), InvalidRoom) {
		t.Fatal("Is(plain error, ...) = true, want false")
	}
}

func TestUnwrap(t *testing.T) {
	inner := fmt.Errorf("root cause")
	err := New(IoError, 1, inner)
	if errors.Unwrap(err) != inner {
		t.Fatal("Unwrap did not return the wrapped error")
	}
}
