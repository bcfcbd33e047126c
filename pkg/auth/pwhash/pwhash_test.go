package pwhash

import (
	"strings"
	"testing"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("unexpected hash format: %s", hash)
	}

	match, err := ComparePasswordWithHash(hash, "correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !match {
		t.Error("correct password did not match")
	}

	match, err = ComparePasswordWithHash(hash, "wrong password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if match {
		t.Error("wrong password matched")
	}
}

func TestCompareWithInvalidHash(t *testing.T) {
	tests := []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=4,p=2$c2FsdA$aGFzaA",
	}

	for _, encoded := range tests {
		if _, err := ComparePasswordWithHash(encoded, "pw"); err == nil {
			t.Errorf("expected error for hash %q, but got nil", encoded)
		}
	}
}
