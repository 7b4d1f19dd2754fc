package auth

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrUnauthorized covers bad credentials and missing/malformed/unknown tokens.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRateLimited is returned when a token exhausts its sliding window.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// Defaults for the per-token sliding window.
const (
	DefaultRateLimit  = 10
	DefaultRateWindow = 30 * time.Minute
)

// session is the in-memory state for one issued token. The mutex guards the
// request window so check-and-append is atomic per token.
type session struct {
	mu        sync.Mutex
	createdAt time.Time
	window    []time.Time
}
