// Package token implements the session token codec: compact signed JWTs
// carrying a user identifier, an expiry, and a class tag distinguishing
// short-lived access tokens from long-lived refresh tokens. Tokens are
// self-contained and never persisted; expiry is the only server-side
// invalidation mechanism.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Class tags a token as access or refresh. Only the refresh endpoint cares
// about the distinction; ordinary request authentication accepts either.
type Class string

const (
	ClassAccess  Class = "access"
	ClassRefresh Class = "refresh"
)

var (
	// ErrExpired is returned by Decode when the embedded expiry has passed.
	ErrExpired = errors.New("token expired")
	// ErrInvalid is returned for any other decode failure: bad signature,
	// unexpected algorithm, malformed payload.
	ErrInvalid = errors.New("token invalid")
	// ErrWrongClass is returned by DecodeClass when a well-formed token
	// carries the other class tag.
	ErrWrongClass = errors.New("wrong token class")
)

// Claims is the payload carried by every token.
type Claims struct {
	UserID uint   `json:"user_id"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with a process-wide HS256 key,
// loaded once at startup and never rotated within a process lifetime.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Encode mints a token for userID with the given class and time-to-live.
func (c *Codec) Encode(userID uint, class Class, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		Type:   string(class),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and expiry and returns the embedded claims.
// Fails with ErrExpired or ErrInvalid; callers at the API boundary collapse
// both into a 401.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if !tkn.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}

// DecodeClass decodes the token and additionally checks its class tag,
// keeping a class mismatch (ErrWrongClass) distinct from a token that does
// not verify at all.
func (c *Codec) DecodeClass(tokenString string, class Class) (*Claims, error) {
	claims, err := c.Decode(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Type != string(class) {
		return nil, ErrWrongClass
	}
	return claims, nil
}
