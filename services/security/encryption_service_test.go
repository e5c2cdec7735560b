package security

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"
)

func testKey(t *testing.T, seed byte) []byte {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = seed + byte(i)
	}
	return key
}

func TestNewEncryptionServiceRejectsBadKeySizes(t *testing.T) {
	for _, size := range []int{0, 16, 24, 31, 33, 64} {
		if _, err := NewEncryptionService(make([]byte, size)); err != ErrBadKeySize {
			t.Errorf("key size %d: expected ErrBadKeySize, got %v", size, err)
		}
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	service, err := NewEncryptionService(testKey(t, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	plaintexts := []string{
		"41e9ac55fbb9f12bfa4a6a321c0a49a7a62f1e6e3b1a8e0a8d2f8f0c7d6e5a4b",
		"short",
		"",
	}

	for _, plaintext := range plaintexts {
		envelope, err := service.Encrypt([]byte(plaintext))
		if err != nil {
			t.Fatalf("encrypt %q: %v", plaintext, err)
		}

		if _, err := hex.DecodeString(envelope); err != nil {
			t.Errorf("envelope is not hex: %v", err)
		}
		if len(envelope) < 2*(12+16) {
			t.Errorf("envelope too short for nonce and tag: %d chars", len(envelope))
		}

		recovered, err := service.Decrypt(envelope)
		if err != nil {
			t.Fatalf("decrypt %q: %v", plaintext, err)
		}
		if !bytes.Equal(recovered, []byte(plaintext)) {
			t.Errorf("round trip mismatch: got %q, want %q", recovered, plaintext)
		}
	}
}

func TestEncryptProducesFreshNonces(t *testing.T) {
	service, err := NewEncryptionService(testKey(t, 1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		envelope, err := service.Encrypt([]byte("same plaintext"))
		if err != nil {
			t.Fatalf("encrypt: %v", err)
		}
		nonce := envelope[:24]
		if seen[nonce] {
			t.Fatal("nonce repeated across encryptions")
		}
		seen[nonce] = true
	}
}

func TestDecryptWithWrongKeyFailsAuthentication(t *testing.T) {
	service, _ := NewEncryptionService(testKey(t, 1))
	other, _ := NewEncryptionService(testKey(t, 99))

	envelope, err := service.Encrypt([]byte("wallet signing key"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	if _, err := other.Decrypt(envelope); err != ErrAuthenticationFailure {
		t.Errorf("expected ErrAuthenticationFailure, got %v", err)
	}
}

func TestDecryptRejectsTamperedEnvelopes(t *testing.T) {
	service, _ := NewEncryptionService(testKey(t, 1))

	envelope, err := service.Encrypt([]byte("wallet signing key"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	// Flip one hex digit in the ciphertext portion
	flipped := []byte(envelope)
	last := len(flipped) - 1
	if flipped[last] == '0' {
		flipped[last] = '1'
	} else {
		flipped[last] = '0'
	}

	if _, err := service.Decrypt(string(flipped)); err != ErrAuthenticationFailure {
		t.Errorf("expected ErrAuthenticationFailure for tampered envelope, got %v", err)
	}
}

func TestDecryptRejectsMalformedEnvelopes(t *testing.T) {
	service, _ := NewEncryptionService(testKey(t, 1))

	cases := map[string]string{
		"not hex":   "zzzz",
		"too short": strings.Repeat("ab", 10),
		"empty":     "",
	}

	for name, envelope := range cases {
		if _, err := service.Decrypt(envelope); err != ErrInvalidEnvelope {
			t.Errorf("%s: expected ErrInvalidEnvelope, got %v", name, err)
		}
	}
}

func TestWipeZeroesBuffer(t *testing.T) {
	buf := []byte("sensitive")
	Wipe(buf)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d not zeroed", i)
		}
	}
}
