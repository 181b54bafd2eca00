// Package token issues and verifies the signed identity assertions that the
// access-control middleware consumes. Tokens carry caller-supplied claims plus
// iat/exp; expiry is the only invalidation mechanism.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers malformed tokens, bad signatures and wrong
	// signing methods.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken indicates a structurally valid token past its expiry.
	ErrExpiredToken = errors.New("token expired")
)

// DefaultTTL is the fixed token lifetime when none is configured.
const DefaultTTL = 4 * time.Hour

// Service signs and verifies HS256 identity tokens with a shared secret.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// New builds a token service. A zero ttl falls back to DefaultTTL.
func New(secret string, ttl time.Duration) *Service {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue signs the caller-supplied claims into a compact JWT. Claims are passed
// through untouched; iat and exp are stamped on top.
func (s *Service) Issue(claims map[string]any) (string, error) {
	mc := make(jwt.MapClaims, len(claims)+2)
	for k, v := range claims {
		mc[k] = v
	}
	now := time.Now()
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(s.ttl).Unix()

	return jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(s.secret)
}

// Verify checks signature and expiry and returns the decoded claims. It is a
// pure function of the token, the secret and the current time.
func (s *Service) Verify(tokenStr string) (map[string]any, error) {
	parsed, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
