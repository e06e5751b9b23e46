// Package auth manages the admin login session used to authorize content
// writes. Tokens are opaque, stored server-side, and presented as bearer
// credentials.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taehan09/studio/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a bad username or password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNotAuthenticated is returned when a request carries no valid session.
var ErrNotAuthenticated = errors.New("must be logged in to perform this action")

// Service authenticates the configured admin account and manages sessions.
type Service struct {
	sessions     storage.SessionStore
	username     string
	passwordHash string
	ttl          time.Duration
	logger       *slog.Logger
}

func NewService(sessions storage.SessionStore, username, passwordHash string, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		sessions:     sessions,
		username:     username,
		passwordHash: passwordHash,
		ttl:          ttl,
		logger:       logger,
	}
}

// Login verifies credentials and creates a session.
func (s *Service) Login(ctx context.Context, username, password string) (*storage.Session, error) {
	if username != s.username {
		// Burn a comparison anyway so the two failure paths take similar time.
		_ = bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	sess, err := s.sessions.CreateSession(ctx, username, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.logger.Info("admin logged in", "username", username)
	return sess, nil
}

// Logout deletes the session for token. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.DeleteSession(ctx, token)
}

// Authenticate resolves a bearer token to its session.
func (s *Service) Authenticate(ctx context.Context, token string) (*storage.Session, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	sess, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// TokenFromRequest extracts the bearer token from the Authorization header.
func TokenFromRequest(r *http.Request) string {
	return TokenFromHeader(r.Header.Get("Authorization"))
}

// TokenFromHeader extracts the bearer token from an Authorization header
// value.
func TokenFromHeader(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}
