package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HeaderName is the request header carrying the order session token.
const HeaderName = "X-Session-Token"

var (
	ErrExpired = errors.New("order session has expired")
	ErrInvalid = errors.New("invalid session token")
)

// Manager signs and verifies short-lived order session tokens. A token is
// bound to one order; mutating endpoints reject requests whose token does
// not resolve to the order they target.
type Manager struct {
	signingKey []byte
	ttl        time.Duration
}

func NewManager(signingKey string, ttl time.Duration) *Manager {
	return &Manager{signingKey: []byte(signingKey), ttl: ttl}
}

// Issue creates a signed token for the given order and returns it with its
// expiry time.
func (m *Manager) Issue(orderID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(m.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   orderID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature and expiry and returns the order ID the token was
// issued for.
func (m *Manager) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrInvalid
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrInvalid
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalid
	}
	return claims.Subject, nil
}

// FromRequest extracts the session token header, returning ErrInvalid when
// it is absent.
func FromRequest(r *http.Request) (string, error) {
	token := r.Header.Get(HeaderName)
	if token == "" {
		return "", ErrInvalid
	}
	return token, nil
}
