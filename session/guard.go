// Package session implements the admin bearer-session guard: a single shared
// password buys a signed, revocable token gating every mutation endpoint.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("session expired or invalid")
	ErrNotAdmin        = errors.New("not authorized")
)

// Guard issues and validates admin bearer tokens. A token must both carry a
// valid signature and still be present in the session store; logout only
// touches the store, so a logged-out token is dead before its expiry.
type Guard struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	sessions     Store
}

func NewGuard(adminPassword, tokenSecret string, ttl time.Duration, sessions Store) (*Guard, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	return &Guard{
		passwordHash: hash,
		secret:       []byte(tokenSecret),
		ttl:          ttl,
		sessions:     sessions,
	}, nil
}

// Login checks the shared admin password and, on success, issues a signed
// token registered in the session store.
func (g *Guard) Login(password string) (string, error) {
	err := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password))
	if err != nil {
		return "", ErrInvalidPassword
	}

	now := time.Now()
	expires := now.Add(g.ttl)

	claims := jwt.MapClaims{
		"admin": true,
		"iat":   jwt.NewNumericDate(now),
		"exp":   jwt.NewNumericDate(expires),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	g.sessions.Put(token, expires)
	return token, nil
}

// Verify checks that the token belongs to an active session and is a valid,
// unexpired admin token. Returns ErrInvalidToken for dead or malformed
// tokens and ErrNotAdmin for valid tokens without the admin claim.
func (g *Guard) Verify(token string) error {
	if !g.sessions.Has(token) {
		return ErrInvalidToken
	}

	parsed, err := jwt.Parse(token,
		func(t *jwt.Token) (any, error) { return g.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			g.sessions.Delete(token)
		}
		return ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || claims["admin"] != true {
		return ErrNotAdmin
	}
	return nil
}

// Logout revokes the token. Revoking an unknown token is a no-op.
func (g *Guard) Logout(token string) {
	g.sessions.Delete(token)
}

// TTL is the lifetime of issued tokens.
func (g *Guard) TTL() time.Duration {
	return g.ttl
}
