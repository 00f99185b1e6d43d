package pkg

import (
	"strings"
	"testing"
)

func TestCrypto_RoundTrip(t *testing.T) {
	c, err := NewCrypto(strings.Repeat("k", 32))
	if err != nil {
		t.Fatalf("NewCrypto: %v", err)
	}

	sealed, err := c.Encrypt("+91 98765 43210")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if strings.Contains(sealed, "98765") {
		t.Error("ciphertext should not contain the plaintext")
	}

	plain, err := c.Decrypt(sealed)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if plain != "+91 98765 43210" {
		t.Errorf("Decrypt = %q", plain)
	}
}

func TestCrypto_EmptyPassesThrough(t *testing.T) {
	c, _ := NewCrypto(strings.Repeat("k", 16))
	if s, err := c.Encrypt(""); err != nil || s != "" {
		t.Errorf("Encrypt(\"\") = %q, %v", s, err)
	}
}

func TestCrypto_RejectsTamperedInput(t *testing.T) {
	c, _ := NewCrypto(strings.Repeat("k", 24))
	sealed, _ := c.Encrypt("secret")
	other, _ := NewCrypto(strings.Repeat("x", 24))
	if _, err := other.Decrypt(sealed); err == nil {
		t.Error("Decrypt with the wrong key should fail")
	}
}

func TestNewCrypto_KeySize(t *testing.T) {
	if _, err := NewCrypto("short"); err == nil {
		t.Error("NewCrypto with a 5 byte key should fail")
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := ComparePassword(hash, "hunter22"); err != nil {
		t.Errorf("ComparePassword with the right password: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Error("ComparePassword with the wrong password should fail")
	}
}
