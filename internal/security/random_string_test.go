package security

import (
	"strings"
	"testing"
)

func TestRandomStringLengthAndAlphabet(t *testing.T) {
	value, err := RandomString(64, AlphabetInviteCode)
	if err != nil {
		t.Fatalf("random string: %v", err)
	}
	if len(value) != 64 {
		t.Fatalf("expected 64 characters, got %d", len(value))
	}
	for _, char := range value {
		if !strings.ContainsRune(AlphabetInviteCode, char) {
			t.Fatalf("character %q outside the alphabet", char)
		}
	}
}

func TestRandomStringZeroLength(t *testing.T) {
	value, err := RandomString(0, AlphabetInviteCode)
	if err != nil || value != "" {
		t.Fatalf("expected empty string, got %q err=%v", value, err)
	}
}

func TestRandomStringInvalidInput(t *testing.T) {
	if _, err := RandomString(-1, AlphabetInviteCode); err == nil {
		t.Fatal("expected error for negative length")
	}
	if _, err := RandomString(8, ""); err == nil {
		t.Fatal("expected error for empty alphabet")
	}
}

func TestRandomStringValuesDiffer(t *testing.T) {
	first, err := RandomString(32, AlphabetSessionID)
	if err != nil {
		t.Fatalf("random string: %v", err)
	}
	second, err := RandomString(32, AlphabetSessionID)
	if err != nil {
		t.Fatalf("random string: %v", err)
	}
	if first == second {
		t.Fatal("two generated values collided")
	}
}
