package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
)

func testTokenConfig(key string) *Config {
	return &Config{SigningKey: key}
}

func TestTokenRoundTrip(t *testing.T) {
	j := NewJWTToken(testTokenConfig("test-signing-key"))

	issued := TokenObject{UserID: 42, Role: "customer", Verified: true}
	token, err := j.CreateToken(issued)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	got, err := j.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if got != issued {
		t.Errorf("verified identity %+v, want %+v", got, issued)
	}
}

func TestVerifyTokenWrongKey(t *testing.T) {
	token, err := NewJWTToken(testTokenConfig("key-one")).CreateToken(TokenObject{UserID: 1})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewJWTToken(testTokenConfig("key-two")).VerifyToken(token); err == nil {
		t.Error("token signed with a different key verified")
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	config := testTokenConfig("test-signing-key")
	claims := jwtClaim{
		UserID: 7,
		Exp:    time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.SigningKey))
	if err != nil {
		t.Fatal(err)
	}

	_, err = NewJWTToken(config).VerifyToken(token)
	if err == nil {
		t.Fatal("expired token verified")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Errorf("expiry error = %v", err)
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	if _, err := NewJWTToken(testTokenConfig("test-signing-key")).VerifyToken("not-a-token"); err == nil {
		t.Error("malformed token verified")
	}
}
