// Package session holds the authentication token and decides whether a
// request may proceed or the user must log in again.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/remote"
)

// ErrLoginRequired is the redirect signal: no usable token is held and the
// caller must send the user to the login flow instead of issuing a request.
var ErrLoginRequired = errors.New("login required")

// Store persists the token between process runs.
type Store interface {
	LoadToken(ctx context.Context) (string, bool, error)
	SaveToken(ctx context.Context, token string) error
	DeleteToken(ctx context.Context) error
}

type Gate struct {
	store   Store
	token   string
	present bool
	now     func() time.Time
}

// Open loads the persisted token from store.
func Open(ctx context.Context, store Store) (*Gate, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	g := &Gate{store: store, now: time.Now}
	token, ok, err := store.LoadToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session token: %w", err)
	}
	if ok && strings.TrimSpace(token) != "" {
		g.token = token
		g.present = true
	}
	return g, nil
}

// SetClock overrides the clock used for token expiry checks.
func (g *Gate) SetClock(now func() time.Time) {
	if now != nil {
		g.now = now
	}
}

// Present reports whether a token is held, expired or not.
func (g *Gate) Present() bool {
	return g.present
}

// RequireToken returns the current token, or ErrLoginRequired when none is
// held or the token is a JWT whose exp claim has passed.
func (g *Gate) RequireToken() (string, error) {
	if !g.present {
		return "", ErrLoginRequired
	}
	if expired(g.token, g.now()) {
		return "", ErrLoginRequired
	}
	return g.token, nil
}

func (g *Gate) Set(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("session token is empty")
	}
	if err := g.store.SaveToken(ctx, token); err != nil {
		return fmt.Errorf("save session token: %w", err)
	}
	g.token = token
	g.present = true
	return nil
}

// Clear forgets the token in memory even when the store fails to delete it.
func (g *Gate) Clear(ctx context.Context) error {
	g.token = ""
	g.present = false
	if err := g.store.DeleteToken(ctx); err != nil {
		return fmt.Errorf("delete session token: %w", err)
	}
	return nil
}

// Check translates an authentication rejection from the repository into the
// redirect signal, clearing the session on the way. Other errors pass through.
func (g *Gate) Check(ctx context.Context, err error) error {
	if err == nil || !errors.Is(err, remote.ErrUnauthorized) {
		return err
	}
	if clearErr := g.Clear(ctx); clearErr != nil {
		return errors.Join(ErrLoginRequired, clearErr)
	}
	return ErrLoginRequired
}

// Login authenticates with email and password and stores the returned token.
func (g *Gate) Login(ctx context.Context, auth remote.Authenticator, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return fmt.Errorf("email and password are required")
	}
	token, err := auth.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return g.Set(ctx, token)
}

// expired reports whether token is a JWT with an exp claim before now. Opaque
// tokens never expire client-side; the server stays authoritative.
func expired(token string, now time.Time) bool {
	if strings.Count(token, ".") != 2 {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}
