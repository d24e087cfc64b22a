package password

import (
	"strings"
	"testing"
)

func testHasher(t *testing.T) *Argon2 {
	t.Helper()

	h, err := NewArgon2(Config{
		Memory:      8192,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	})
	if err != nil {
		t.Fatalf("NewArgon2 failed: %v", err)
	}
	return h
}

func TestNewArgon2RejectsWeakParams(t *testing.T) {
	cases := []Config{
		{Memory: 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 16},
		{Memory: 8192, Time: 0, Parallelism: 1, SaltLength: 16, KeyLength: 16},
		{Memory: 8192, Time: 1, Parallelism: 0, SaltLength: 16, KeyLength: 16},
		{Memory: 8192, Time: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16},
		{Memory: 8192, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 8},
	}

	for i, cfg := range cases {
		if _, err := NewArgon2(cfg); err == nil {
			t.Fatalf("case %d: expected parameter rejection", i)
		}
	}
}

func TestHashAndVerify(t *testing.T) {
	h := testHasher(t)

	hash, err := h.Hash("secret-password-123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("expected PHC argon2id format, got %q", hash)
	}

	ok, err := h.Verify("secret-password-123", hash)
	if err != nil || !ok {
		t.Fatalf("expected verify success, ok=%v err=%v", ok, err)
	}

	ok, err = h.Verify("wrong-password", hash)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if ok {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	h := testHasher(t)

	if _, err := h.Hash(""); err == nil {
		t.Fatal("expected empty password rejection")
	}
}

func TestHashesAreSalted(t *testing.T) {
	h := testHasher(t)

	first, err := h.Hash("secret-password-123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	second, err := h.Hash("secret-password-123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct hashes for the same password")
	}
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	h := testHasher(t)

	malformed := []string{
		"",
		"plain-text",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8192,t=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaA",
	}

	for i, hash := range malformed {
		if _, err := h.Verify("whatever", hash); err == nil {
			t.Fatalf("case %d: expected parse error for %q", i, hash)
		}
	}
}
