// Package session wraps the remote access token and API key in a signed JWT
// so the browser holds one opaque credential and the raw remote pair never
// leaves the backend contract.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSession indicates a missing, malformed, or expired session token.
var ErrInvalidSession = errors.New("invalid or expired session")

// Session is the authenticated state carried by a session token.
type Session struct {
	Name         string
	Email        string
	VenueManager bool
	AccessToken  string
	APIKey       string
}

type claims struct {
	jwt.RegisteredClaims
	Email        string `json:"email"`
	VenueManager bool   `json:"venueManager"`
	AccessToken  string `json:"accessToken"`
	APIKey       string `json:"apiKey"`
}

// Manager signs and verifies session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager builds a Manager. ttl bounds how long a login survives without
// re-authenticating against the remote service.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a session token for s.
func (m *Manager) Issue(s Session) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.Name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Email:        s.Email,
		VenueManager: s.VenueManager,
		AccessToken:  s.AccessToken,
		APIKey:       s.APIKey,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies a session token and returns its session state.
func (m *Manager) Parse(tokenString string) (*Session, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	return &Session{
		Name:         c.Subject,
		Email:        c.Email,
		VenueManager: c.VenueManager,
		AccessToken:  c.AccessToken,
		APIKey:       c.APIKey,
	}, nil
}
