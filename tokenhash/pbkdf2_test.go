package tokenhash

import (
	"strings"
	"testing"
)

func testHasher(t *testing.T) *PBKDF2 {
	t.Helper()

	// Low cost keeps the test matrix fast; parameter floors are covered
	// separately.
	h, err := NewPBKDF2(Config{Iterations: 10_000, SaltLength: 16, KeyLength: 32})
	if err != nil {
		t.Fatalf("NewPBKDF2 failed: %v", err)
	}
	return h
}

func TestHashAndMatches(t *testing.T) {
	h := testHasher(t)

	encoded, err := h.Hash("some-refresh-token-secret")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if !strings.HasPrefix(encoded, "$pbkdf2-sha256$i=10000$") {
		t.Fatalf("unexpected encoding: %s", encoded)
	}

	if !h.Matches("some-refresh-token-secret", encoded) {
		t.Fatal("expected secret to match its own hash")
	}
	if h.Matches("a-different-secret", encoded) {
		t.Fatal("expected different secret to mismatch")
	}
}

func TestMatchesEmptyStoredHashIsAlwaysFalse(t *testing.T) {
	h := testHasher(t)

	// "No stored token" must never be treated as a match.
	if h.Matches("anything", "") {
		t.Fatal("empty stored hash must not match")
	}
	if h.Matches("", "") {
		t.Fatal("empty secret against empty hash must not match")
	}
}

func TestMatchesMalformedHashIsFalse(t *testing.T) {
	h := testHasher(t)

	malformed := []string{
		"not-a-hash",
		"$pbkdf2-sha256$i=10000$salt",
		"$argon2id$i=10000$c2FsdHNhbHRzYWx0c2FsdA==$aGFzaA==",
		"$pbkdf2-sha256$i=1$c2FsdHNhbHRzYWx0c2FsdA==$aGFzaGhhc2hoYXNoaGFzaA==",
		"$pbkdf2-sha256$i=10000$!!!$aGFzaGhhc2hoYXNoaGFzaA==",
	}
	for _, enc := range malformed {
		if h.Matches("secret", enc) {
			t.Fatalf("malformed hash %q must not match", enc)
		}
	}
}

func TestHashesAreSalted(t *testing.T) {
	h := testHasher(t)

	first, err := h.Hash("same-secret")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	second, err := h.Hash("same-secret")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if first == second {
		t.Fatal("expected per-hash random salts")
	}

	if !h.Matches("same-secret", first) || !h.Matches("same-secret", second) {
		t.Fatal("both salted hashes must still match the secret")
	}
}

func TestHashRejectsEmptySecret(t *testing.T) {
	h := testHasher(t)

	if _, err := h.Hash(""); err == nil {
		t.Fatal("expected empty secret to be rejected")
	}
}

func TestNewPBKDF2Defaults(t *testing.T) {
	h, err := NewPBKDF2(Config{})
	if err != nil {
		t.Fatalf("NewPBKDF2 with defaults failed: %v", err)
	}
	if h.config.Iterations != defaultIterations {
		t.Fatalf("expected default iterations %d, got %d", defaultIterations, h.config.Iterations)
	}
}

func TestNewPBKDF2EnforcesMinimums(t *testing.T) {
	cases := map[string]Config{
		"low iterations": {Iterations: 100, SaltLength: 16, KeyLength: 32},
		"short salt":     {Iterations: 10_000, SaltLength: 4, KeyLength: 32},
		"short key":      {Iterations: 10_000, SaltLength: 16, KeyLength: 8},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := NewPBKDF2(cfg); err == nil {
				t.Fatal("expected NewPBKDF2 to fail")
			}
		})
	}
}
