// Package auth implements the access-token signer: compact HS256 JWTs
// carrying a subject and expiry, verifiable without a store lookup.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gamecatalog/authservice/internal/common"
)

// Signer issues and verifies access tokens with a shared symmetric key and a
// fixed TTL. Both are set at construction and never mutated afterwards.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

func NewSigner(secret []byte, ttl time.Duration) *Signer {
	return &Signer{secret: secret, ttl: ttl}
}

// Issue creates a signed token for subject with iat=now and exp=now+ttl.
// Extra claims are merged in first, so they cannot shadow the registered
// claims.
func (s *Signer) Issue(subject string, extra map[string]any) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{}
	for k, v := range extra {
		claims[k] = v
	}
	claims["sub"] = subject
	claims["iat"] = jwt.NewNumericDate(now)
	claims["exp"] = jwt.NewNumericDate(now.Add(s.ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ExtractSubject verifies the token and returns its subject claim.
func (s *Signer) ExtractSubject(tokenString string) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return "", common.ErrTokenMalformed
	}
	return sub, nil
}

// ExtractExpiresAt verifies the token and returns its expiry instant.
func (s *Signer) ExtractExpiresAt(tokenString string) (time.Time, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, common.ErrTokenMalformed
	}
	return exp.Time, nil
}

// ExtractClaim verifies the token and returns the named claim's raw value.
func (s *Signer) ExtractClaim(tokenString, name string) (any, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}
	v, ok := claims[name]
	if !ok {
		return nil, fmt.Errorf("claim %q: %w", name, common.ErrorNotFound)
	}
	return v, nil
}

// IsValid reports whether the token verifies and carries expectedSubject.
// Any verification failure, including expiry, is returned as an error;
// (false, nil) means only that the subject does not match.
func (s *Signer) IsValid(tokenString, expectedSubject string) (bool, error) {
	sub, err := s.ExtractSubject(tokenString)
	if err != nil {
		return false, err
	}
	return sub == expectedSubject, nil
}

// parse verifies the signature and registered claims (including expiry) and
// maps library failures onto the service's sentinel errors.
func (s *Signer) parse(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, common.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, common.ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, common.ErrTokenMalformed
	default:
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	if !token.Valid {
		return nil, common.ErrTokenSignatureInvalid
	}
	return claims, nil
}
