// Package session stores OpenCGA access tokens between CLI invocations.
//
// A session is a named profile holding the server host and a bearer token
// obtained elsewhere (the web UI, a login script, an admin). Profiles let one
// user keep tokens for several servers or accounts side by side:
//
//	store, err := session.NewCLIStore("prod")
//	if err != nil {
//	    return err
//	}
//	sess, err := session.New("prod", "https://ws.opencb.org/opencga-prod", token, 0)
//	if err != nil {
//	    return err
//	}
//	store.SaveSession(ctx, sess)
//
// When the token is a JWT, [New] reads the user and expiry from its claims.
// The signature is not verified: the server does that on every request.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt"

	apierrors "github.com/matzehuels/opencga/pkg/errors"
)

// DefaultProfile is the profile used when none is named.
const DefaultProfile = "default"

// ErrExpired is returned when a stored session has passed its expiry.
var ErrExpired = errors.New("session expired")

// Session stores one token profile.
type Session struct {
	ID        string    `json:"id"` // Profile name, also the file name
	Host      string    `json:"host,omitempty"`
	User      string    `json:"user,omitempty"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at,omitzero"` // Zero means unknown
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired returns true if the session has a known expiry in the past.
func (s *Session) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by profile.
	// Returns nil, nil if the session doesn't exist.
	Get(ctx context.Context, profile string) (*Session, error)

	// Set stores a session under its ID.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, profile string) error

	// List returns the stored profile names in lexical order.
	List(ctx context.Context) ([]string, error)

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
}

// New creates a session for profile. User and expiry are taken from the
// token's claims when it is a JWT. A positive ttl caps the expiry.
func New(profile, host, token string, ttl time.Duration) (*Session, error) {
	if profile == "" {
		profile = DefaultProfile
	}
	if err := apierrors.ValidateProfileName(profile); err != nil {
		return nil, err
	}
	if token == "" {
		return nil, apierrors.New(apierrors.ErrCodeInvalidInput, "token is empty")
	}

	now := time.Now()
	sess := &Session{
		ID:        profile,
		Host:      host,
		Token:     token,
		CreatedAt: now,
	}
	if claims, ok := ParseClaims(token); ok {
		sess.User = claims.Subject
		if claims.ExpiresAt > 0 {
			sess.ExpiresAt = time.Unix(claims.ExpiresAt, 0)
		}
	}
	if ttl > 0 {
		if limit := now.Add(ttl); sess.ExpiresAt.IsZero() || limit.Before(sess.ExpiresAt) {
			sess.ExpiresAt = limit
		}
	}
	return sess, nil
}

// ParseClaims decodes the standard claims of a JWT without verifying it.
// It reports false for tokens that are not JWTs.
func ParseClaims(token string) (*jwt.StandardClaims, bool) {
	claims := &jwt.StandardClaims{}
	if _, _, err := (&jwt.Parser{}).ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims, true
}
