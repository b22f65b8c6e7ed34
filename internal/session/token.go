// Package session issues and verifies the signed bearer tokens handed out at login.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/odyssey-erp/odyssey-admin/internal/shared"
)

// Payload is the claim set carried by a token.
type Payload struct {
	Subject   int64
	ExpiresAt int64 // unix seconds
}

// Expiry returns ExpiresAt as a time.
func (p Payload) Expiry() time.Time {
	return time.Unix(p.ExpiresAt, 0).UTC()
}

// Codec signs payloads with HMAC-SHA256 under a single secret.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// NewCodec constructs a codec. The secret must not be empty.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("session: secret required")
	}
	return &Codec{secret: []byte(secret), now: time.Now}, nil
}

// WithClock returns a copy of the codec that reads time from now.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	clone := *c
	clone.now = now
	return &clone
}

// Encode signs the payload. Equal payloads under the same secret yield equal tokens.
func (c *Codec) Encode(p Payload) (string, error) {
	if p.Subject <= 0 {
		return "", errors.New("session: subject required")
	}
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(p.Subject, 10),
		ExpiresAt: jwt.NewNumericDate(time.Unix(p.ExpiresAt, 0)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("session: sign: %w", err)
	}
	return token, nil
}

// Decode verifies the signature and expiry and returns the payload.
// Every failure wraps shared.ErrInvalidToken.
func (c *Codec) Decode(token string) (Payload, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", shared.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return Payload{}, shared.ErrInvalidToken
	}
	subject, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || subject <= 0 {
		return Payload{}, fmt.Errorf("%w: bad subject", shared.ErrInvalidToken)
	}
	return Payload{Subject: subject, ExpiresAt: claims.ExpiresAt.Unix()}, nil
}
