package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// tokenLifetime bounds how long an issued session stays valid.
const tokenLifetime = 30 * 24 * time.Hour

// JWTToken signs and verifies the HS256 session tokens carried on the
// Authorization header.
type JWTToken struct {
	config *Config
}

func NewJWTToken(config *Config) *JWTToken {
	return &JWTToken{config: config}
}

type jwtClaim struct {
	jwt.StandardClaims
	UserID   int64  `json:"user_id"`
	Role     string `json:"user_role"`
	Verified bool   `json:"user_verified"`
	Exp      int64  `json:"exp"`
}

// TokenObject is the authenticated identity handlers read off the request
// context.
type TokenObject struct {
	UserID   int64  `json:"user_id"`
	Role     string `json:"user_role"`
	Verified bool   `json:"user_verified"`
}

func (j *JWTToken) CreateToken(user TokenObject) (string, error) {
	claims := jwtClaim{
		UserID:   user.UserID,
		Role:     user.Role,
		Verified: user.Verified,
		Exp:      time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.config.SigningKey))
}

// VerifyToken checks the signature, signing method, and expiry, and returns
// the identity the token carries.
func (j *JWTToken) VerifyToken(tokenString string) (TokenObject, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaim{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(j.config.SigningKey), nil
	})
	if err != nil {
		return TokenObject{}, fmt.Errorf("invalid authentication token: %v", err)
	}

	claims, ok := token.Claims.(*jwtClaim)
	if !ok {
		return TokenObject{}, fmt.Errorf("invalid authentication token: malformed claims")
	}
	if claims.Exp < time.Now().Unix() {
		return TokenObject{}, fmt.Errorf("authentication token expired")
	}

	return TokenObject{
		UserID:   claims.UserID,
		Role:     claims.Role,
		Verified: claims.Verified,
	}, nil
}
