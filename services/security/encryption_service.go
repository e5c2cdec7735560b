package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"io"
)

const (
	keySize   = 32 // AES-256
	nonceSize = 12
	tagSize   = 16
)

// EncryptionService seals and opens private key material with AES-256-GCM
// under a single process-wide master key. Envelopes are hex strings laid out
// as nonce | auth tag | ciphertext so decryption is unambiguous.
type EncryptionService struct {
	masterKey []byte
}

func NewEncryptionService(masterKey []byte) (*EncryptionService, error) {
	if len(masterKey) != keySize {
		return nil, ErrBadKeySize
	}
	key := make([]byte, keySize)
	copy(key, masterKey)
	return &EncryptionService{masterKey: key}, nil
}

func (e *EncryptionService) Encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(e.masterKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	// A fresh nonce per call; reuse under the same key breaks GCM
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	ciphertext := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	return hex.EncodeToString(nonce) + hex.EncodeToString(tag) + hex.EncodeToString(ciphertext), nil
}

func (e *EncryptionService) Decrypt(envelope string) ([]byte, error) {
	raw, err := hex.DecodeString(envelope)
	if err != nil {
		return nil, ErrInvalidEnvelope
	}
	if len(raw) < nonceSize+tagSize {
		return nil, ErrInvalidEnvelope
	}

	nonce := raw[:nonceSize]
	tag := raw[nonceSize : nonceSize+tagSize]
	ciphertext := raw[nonceSize+tagSize:]

	block, err := aes.NewCipher(e.masterKey)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		// Tag mismatch: tampered or corrupted envelope, or the wrong key.
		// Never hand back garbage plaintext.
		return nil, ErrAuthenticationFailure
	}

	return plaintext, nil
}

// Wipe zeroes a decrypted key buffer. Callers defer this on every exit path.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
