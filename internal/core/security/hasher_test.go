package security

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashThenVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	for _, pwd := range []string{"testpassword", "p", "ünïcødé-pässwörd", strings.Repeat("x", 72)} {
		hash, err := h.Hash(pwd)
		if err != nil {
			t.Fatalf("hash %q: %v", pwd, err)
		}
		ok, err := h.Verify(pwd, hash)
		if err != nil {
			t.Fatalf("verify %q: %v", pwd, err)
		}
		if !ok {
			t.Fatalf("expected %q to verify against its own hash", pwd)
		}
	}
}

func TestHasher_Salted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatalf("expected two hashes of the same password to differ")
	}
	if first == "secret" {
		t.Fatalf("hash must not equal the plaintext")
	}
}

func TestHasher_WrongPassword(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, _ := h.Hash("correct horse")
	ok, err := h.Verify("battery staple", hash)
	if err != nil {
		t.Fatalf("mismatch must not be an error, got %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch")
	}
}

func TestHasher_MalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	ok, err := h.Verify("secret", "not-a-bcrypt-hash")
	if err == nil {
		t.Fatalf("expected error for malformed stored hash")
	}
	if ok {
		t.Fatalf("malformed hash must never verify")
	}
}

func TestNewHasher_CostOutOfRangeFallsBack(t *testing.T) {
	if got := NewHasher(0).cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", got)
	}
	if got := NewHasher(99).cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", got)
	}
}
