package utils

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/speps/go-hashids/v2"
)

const (
	accountNumberPrefix = "GEN"

	// Uppercase alphanumerics without I and O, which read like 1 and 0.
	// hashids needs at least 16 distinct characters.
	accountNumberAlphabet = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"
)

// AccountNumberGenerator produces human-readable, non-sequential account
// numbers. The hashid keeps them unique per (salt, nonce) while hiding how
// many accounts exist.
type AccountNumberGenerator struct {
	h  *hashids.HashID
	mu sync.Mutex
	r  *rand.Rand
}

func NewAccountNumberGenerator(salt string) (*AccountNumberGenerator, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 10
	hd.Alphabet = accountNumberAlphabet

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("unable to initialise account number generator: %w", err)
	}

	return &AccountNumberGenerator{
		h: h,
		r: rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func (g *AccountNumberGenerator) Generate() (string, error) {
	g.mu.Lock()
	nonce := g.r.Int63n(1 << 40)
	g.mu.Unlock()

	encoded, err := g.h.EncodeInt64([]int64{time.Now().UnixMilli(), nonce})
	if err != nil {
		return "", fmt.Errorf("unable to generate account number: %w", err)
	}
	return accountNumberPrefix + encoded, nil
}
