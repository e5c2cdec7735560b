package security

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/GenPay/GenPay-Backend/utils"
)

func TestMasterKeyFromBase64(t *testing.T) {
	raw := bytes.Repeat([]byte{0xab}, 32)
	config := &utils.Config{EncryptionMasterKey: base64.StdEncoding.EncodeToString(raw)}

	key, err := MasterKeyFromConfig(config)
	if err != nil {
		t.Fatalf("resolve key: %v", err)
	}
	if !bytes.Equal(key, raw) {
		t.Error("decoded key does not match configured key")
	}
}

func TestMasterKeyRejectsBadBase64(t *testing.T) {
	config := &utils.Config{EncryptionMasterKey: "not base64!!!"}
	if _, err := MasterKeyFromConfig(config); err == nil {
		t.Fatal("malformed base64 accepted")
	}
}

func TestMasterKeyRejectsWrongSize(t *testing.T) {
	config := &utils.Config{
		EncryptionMasterKey: base64.StdEncoding.EncodeToString([]byte("short")),
	}
	if _, err := MasterKeyFromConfig(config); !errors.Is(err, ErrBadKeySize) {
		t.Fatalf("expected ErrBadKeySize, got %v", err)
	}
}

func TestMasterKeyDerivation(t *testing.T) {
	config := &utils.Config{
		EncryptionPassphrase: "correct horse battery staple",
		EncryptionSalt:       "per-deployment-salt",
	}

	first, err := MasterKeyFromConfig(config)
	if err != nil {
		t.Fatalf("derive key: %v", err)
	}
	if len(first) != 32 {
		t.Fatalf("derived key is %d bytes, want 32", len(first))
	}

	// derivation must be deterministic so restarts can decrypt old envelopes
	second, err := MasterKeyFromConfig(config)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("derivation is not deterministic")
	}

	other, err := MasterKeyFromConfig(&utils.Config{
		EncryptionPassphrase: "correct horse battery staple",
		EncryptionSalt:       "different-salt",
	})
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(first, other) {
		t.Error("different salts derived the same key")
	}
}

func TestMasterKeyDerivationRequiresSalt(t *testing.T) {
	config := &utils.Config{EncryptionPassphrase: "passphrase only"}
	if _, err := MasterKeyFromConfig(config); err == nil {
		t.Fatal("passphrase without salt accepted")
	}
}

func TestMasterKeyMissing(t *testing.T) {
	if _, err := MasterKeyFromConfig(&utils.Config{}); !errors.Is(err, ErrMissingMasterKey) {
		t.Fatalf("expected ErrMissingMasterKey, got %v", err)
	}
}
