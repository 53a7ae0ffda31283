// Package auth issues and verifies the server's credentials: HS256 access
// tokens carrying the user's identity, and opaque refresh tokens backed by
// 512 bits of entropy.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lotfi029/FreelancerAssignment/internal/apperrors"
)

// RefreshTokenValidity is the fixed lifetime of a refresh token. This is a
// policy constant, not configuration.
const RefreshTokenValidity = 14 * 24 * time.Hour

// refreshTokenBytes is the entropy of an opaque refresh token value.
const refreshTokenBytes = 64

// Claims are the access-token claims: registered sub/jti/exp plus the user's
// email and display name.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Issuer signs and verifies access tokens with a shared HMAC secret.
type Issuer struct {
	secret              []byte
	accessTokenValidity time.Duration
}

func NewIssuer(secret []byte, accessTokenValidity time.Duration) *Issuer {
	return &Issuer{secret: secret, accessTokenValidity: accessTokenValidity}
}

// GenerateAccessToken signs a new access token for the user and returns it
// together with its validity in seconds. Every token gets a fresh UUIDv7 jti
// so two issuances for the same user are never byte-identical.
func (i *Issuer) GenerateAccessToken(userID, email, username string) (string, int, error) {
	jti, err := uuid.NewV7()
	if err != nil {
		return "", 0, fmt.Errorf("error generating token id: %w", err)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        jti.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTokenValidity)),
		},
		Email: email,
		Name:  username,
	})

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", 0, err
	}

	return tokenString, int(i.accessTokenValidity.Seconds()), nil
}

// Subject verifies the token signature and returns the subject user id.
// Expiry, issuer, and audience are deliberately NOT checked here: this is
// the refresh-flow validation, where the caller has already proven
// possession of a still-active refresh token and a dead access token's
// subject is still accepted. Kept as-is pending product-owner confirmation
// of the long-refresh-window behavior; the API guard uses Validate instead.
// Any parse or signature failure maps to ErrInvalidToken, never a raw error.
func (i *Issuer) Subject(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, i.keyFunc,
		jwt.WithoutClaimsValidation(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", apperrors.ErrInvalidToken
	}

	return claims.Subject, nil
}

// Validate verifies the token signature AND its time claims, returning the
// subject user id. Used by the HTTP guard middleware for API requests.
func (i *Issuer) Validate(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, i.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", apperrors.ErrInvalidToken
	}

	return claims.Subject, nil
}

func (i *Issuer) keyFunc(t *jwt.Token) (interface{}, error) {
	return i.secret, nil
}

// NewRefreshToken returns a new opaque refresh-token value and its expiry:
// 64 bytes of cryptographically secure randomness, base64-encoded, valid for
// RefreshTokenValidity from now.
func NewRefreshToken(now time.Time) (string, time.Time, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", time.Time{}, err
	}
	return base64.StdEncoding.EncodeToString(b), now.Add(RefreshTokenValidity), nil
}
