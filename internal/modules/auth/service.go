// README: Token issuance, bearer extraction, and sliding-window rate limiting.
package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"waypoint/internal/config"
)

// Service issues opaque session tokens and enforces a per-token sliding-window
// quota. Credentials are checked against a configured bypass identity, a
// placeholder for a real identity provider.
type Service struct {
	store    *Store
	username string
	password string
	limit    int
	window   time.Duration
}

func NewService(store *Store, cfg config.AuthConfig) *Service {
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	window := cfg.RateWindow
	if window <= 0 {
		window = DefaultRateWindow
	}
	return &Service{
		store:    store,
		username: cfg.Username,
		password: cfg.Password,
		limit:    limit,
		window:   window,
	}
}

// Authenticate returns a fresh token when the credentials match the bypass
// identity, ErrUnauthorized otherwise.
func (s *Service) Authenticate(username, password string) (string, error) {
	if username != s.username || password != s.password {
		return "", ErrUnauthorized
	}
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	s.store.create(token, time.Now())
	return token, nil
}

// ExtractToken pulls the session token out of an Authorization header.
// Missing headers, non-bearer values, and unknown tokens all map to
// ErrUnauthorized.
func (s *Service) ExtractToken(header string) (string, error) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", ErrUnauthorized
	}
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", ErrUnauthorized
	}
	if _, ok := s.store.get(token); !ok {
		return "", ErrUnauthorized
	}
	return token, nil
}

// CheckAndRecord admits the request at now or rejects it with ErrRateLimited.
// Prune, check, and append happen under the session's own lock: two concurrent
// requests can never both take the last slot in the window.
func (s *Service) CheckAndRecord(token string, now time.Time) error {
	sess, ok := s.store.get(token)
	if !ok {
		return ErrUnauthorized
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	cutoff := now.Add(-s.window)
	recent := sess.window[:0]
	for _, t := range sess.window {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	sess.window = recent

	if len(sess.window) >= s.limit {
		return ErrRateLimited
	}
	sess.window = append(sess.window, now)
	return nil
}

// Revoke removes the token. Revoking an unknown token is a no-op.
func (s *Service) Revoke(token string) {
	s.store.delete(token)
}
