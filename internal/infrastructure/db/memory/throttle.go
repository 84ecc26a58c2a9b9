package memory

import (
	"context"
	"sync"
	"time"
)

type attemptState struct {
	firstAttempt time.Time
	count        int
}

// LoginThrottle counts failed logins per username inside this process. It is
// used when no Redis is configured.
type LoginThrottle struct {
	mu          sync.Mutex
	attempts    map[string]*attemptState
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

func NewLoginThrottle(maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginThrottle{
		attempts:    make(map[string]*attemptState),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

// WithClock replaces the time source.
func (t *LoginThrottle) WithClock(now func() time.Time) *LoginThrottle {
	t.now = now
	return t
}

// state returns the live entry for username, dropping it once the window has lapsed.
// Keys are exact usernames, matching the case-sensitive unique index on users.
func (t *LoginThrottle) state(username string) *attemptState {
	s, ok := t.attempts[username]
	if ok && t.now().Sub(s.firstAttempt) > t.window {
		delete(t.attempts, username)
		return nil
	}
	return s
}

func (t *LoginThrottle) Blocked(_ context.Context, username string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.state(username)
	return s != nil && s.count >= t.maxAttempts, nil
}

func (t *LoginThrottle) RecordFailure(_ context.Context, username string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.state(username)
	if s == nil {
		s = &attemptState{firstAttempt: t.now()}
		t.attempts[username] = s
	}
	s.count++
	return nil
}

func (t *LoginThrottle) Reset(_ context.Context, username string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.attempts, username)
	return nil
}
