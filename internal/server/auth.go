package server

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims carries the player identity inside a session token.
type SessionClaims struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies HS256 session tokens. A session token is
// created when a player first registers and presented on the websocket
// handshake, so reconnecting clients keep their player identity.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates an issuer. The server generates a random secret
// at startup when none is configured.
func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: secret, ttl: ttl}
}

// Issue creates a session token for a new player identity and returns the
// token along with the generated player id.
func (ti *TokenIssuer) Issue(name string) (token, playerID string, err error) {
	playerID = uuid.New().String()
	now := time.Now()
	claims := SessionClaims{
		PlayerID: playerID,
		Name:     name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   playerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = t.SignedString(ti.secret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, playerID, nil
}

// Parse verifies a session token and returns its claims.
func (ti *TokenIssuer) Parse(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ti.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	if claims.PlayerID == "" {
		return nil, fmt.Errorf("session token missing player id")
	}
	return claims, nil
}
