// Package auth issues and verifies signed identity tokens.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is the fixed lifetime of an identity token. Tokens carry no
// revocation state; identity claims are trusted verbatim until expiry.
const TokenTTL = 24 * time.Hour

// Identity is the caller identity embedded in a token.
type Identity struct {
	UserID   uint
	Username string
	IsAdmin  bool
}

// Claims is the JWT payload for an identity token.
type Claims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies identity tokens with an HMAC secret.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

// NewIssuer creates an Issuer for the given signing secret.
func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret), now: time.Now}
}

// Issue produces a signed token embedding the identity with a 24-hour expiry.
func (i *Issuer) Issue(id Identity) (string, error) {
	if len(i.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := i.now()
	claims := Claims{
		Username: id.Username,
		IsAdmin:  id.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(id.UserID), 10),
			Issuer:    "inkwell-api",
			Audience:  jwt.ClaimStrings{"inkwell-client"},
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses and validates a token, returning the embedded identity.
// It fails on a bad signature, a malformed token, a non-HMAC signing
// method, or an expired token. The identity is returned as issued; it is
// not re-checked against the credential store.
func (i *Issuer) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return i.now() }))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid token subject: %w", err)
	}

	return &Identity{
		UserID:   uint(userID),
		Username: claims.Username,
		IsAdmin:  claims.IsAdmin,
	}, nil
}
