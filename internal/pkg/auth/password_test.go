package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasher_Cost(t *testing.T) {
	if hasher := NewBcryptHasher(0); hasher.cost != bcrypt.DefaultCost {
		t.Fatalf("unexpected default cost: %d", hasher.cost)
	}
	if hasher := NewBcryptHasher(bcrypt.MinCost); hasher.cost != bcrypt.MinCost {
		t.Fatalf("unexpected cost: %d", hasher.cost)
	}
}

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", hash)
	}
	if err := hasher.Compare(hash, "correct horse"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := hasher.Compare(hash, "battery staple"); err == nil {
		t.Fatal("expected compare error for wrong password")
	}
}

func TestBcryptHasher_PasswordLength(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	limit := strings.Repeat("p", MaxPasswordBytes)
	hash, err := hasher.Hash(limit)
	if err != nil {
		t.Fatalf("expected %d byte password accepted, got %v", MaxPasswordBytes, err)
	}
	if _, err := hasher.Hash(limit + "x"); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}
	if err := hasher.Compare(hash, limit+"x"); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong on compare, got %v", err)
	}
}

func TestBcryptHasher_HashError(t *testing.T) {
	hasher := &BcryptHasher{cost: bcrypt.MaxCost + 1}
	if _, err := hasher.Hash("password"); err == nil {
		t.Fatal("expected hash error for invalid cost")
	}
}
