package security

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/GenPay/GenPay-Backend/utils"
	"golang.org/x/crypto/pbkdf2"
)

const pbkdf2Iterations = 600_000

// MasterKeyFromConfig resolves the 32-byte envelope master key at boot.
// A raw base64 key wins; otherwise the key is derived from a passphrase and
// salt. Absence of both is a fatal configuration error handled by the caller.
func MasterKeyFromConfig(c *utils.Config) ([]byte, error) {
	if c.EncryptionMasterKey != "" {
		key, err := base64.StdEncoding.DecodeString(c.EncryptionMasterKey)
		if err != nil {
			return nil, fmt.Errorf("master key is not valid base64: %w", err)
		}
		if len(key) != keySize {
			return nil, ErrBadKeySize
		}
		return key, nil
	}

	if c.EncryptionPassphrase != "" {
		if c.EncryptionSalt == "" {
			return nil, fmt.Errorf("encryption passphrase requires a salt")
		}
		return pbkdf2.Key([]byte(c.EncryptionPassphrase), []byte(c.EncryptionSalt), pbkdf2Iterations, keySize, sha256.New), nil
	}

	return nil, ErrMissingMasterKey
}
