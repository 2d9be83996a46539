// Package auth verifies bearer tokens and resolves the authenticated user id.
package auth

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthenticated is returned when no valid identity can be resolved.
var ErrUnauthenticated = errors.New("unauthenticated")

// Verifier resolves a user id from a bearer token.
type Verifier interface {
	Verify(token string) (int64, error)
}

// JWT signs and verifies HS256 tokens whose "sub" claim carries the numeric user id.
type JWT struct {
	secret []byte
	now    func() time.Time
}

// NewJWT creates an HS256 signer/verifier. The secret must not be empty.
func NewJWT(secret string) (*JWT, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	return &JWT{secret: []byte(secret), now: time.Now}, nil
}

var _ Verifier = (*JWT)(nil)

// Issue signs a token for userID that expires after ttl.
func (j *JWT) Issue(userID int64, ttl time.Duration) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString(j.secret)
}

// Verify checks signature, algorithm and expiry, and returns the user id from "sub".
func (j *JWT) Verify(token string) (int64, error) {
	if token == "" {
		return 0, ErrUnauthenticated
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	id, err := subjectID(claims["sub"])
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	return id, nil
}

// subjectID accepts "sub" as a decimal string or a JSON number.
func subjectID(sub any) (int64, error) {
	var id int64
	switch v := sub.(type) {
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid subject %q", v)
		}
		id = n
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("invalid subject %v", v)
		}
		id = int64(v)
	default:
		return 0, errors.New("missing subject")
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid subject %d", id)
	}
	return id, nil
}
