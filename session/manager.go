// Package session manages the time-boxed vault access grant: a single
// absolute expiration instant persisted in the store.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"facevault/storage"
)

// DefaultDuration is how long a session opened by a successful face
// verification stays valid. Sessions are never extended while open.
const DefaultDuration = 5 * time.Minute

// Decision is the outcome of a session check.
type Decision struct {
	Granted   bool
	ExpiresAt time.Time
	Remaining time.Duration
}

// Manager owns the stored session expiration. The countdown shown to the
// user is presentational: it is recomputed from the stored instant, never
// trusted from a running timer.
type Manager struct {
	store storage.Store
	clock Clock
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock sets the time source. Default: SystemClock.
func WithClock(c Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// NewManager creates a session Manager over the given store.
func NewManager(store storage.Store, opts ...Option) *Manager {
	m := &Manager{store: store, clock: SystemClock()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open stamps a new session expiring duration from now, overwriting any
// existing session, and returns the expiration instant.
func (m *Manager) Open(duration time.Duration) (time.Time, error) {
	if duration <= 0 {
		return time.Time{}, fmt.Errorf("session duration must be positive, got %v", duration)
	}
	expiresAt := m.clock.Now().Add(duration)
	err := m.store.Set(storage.KeySessionExpiry, strconv.FormatInt(expiresAt.UnixMilli(), 10))
	if err != nil {
		return time.Time{}, err
	}
	return expiresAt, nil
}

// Check reports whether a valid session exists. A session that is absent,
// unreadable, or past its expiration is deleted on the spot and denied;
// a stale session is never silently resurrected.
func (m *Manager) Check() (Decision, error) {
	raw, err := m.store.Get(storage.KeySessionExpiry)
	if errors.Is(err, storage.ErrNotFound) {
		return Decision{}, nil
	}
	if err != nil {
		return Decision{}, err
	}

	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Corrupt stamp counts as no session.
		if err := m.store.Delete(storage.KeySessionExpiry); err != nil {
			return Decision{}, err
		}
		return Decision{}, nil
	}

	expiresAt := time.UnixMilli(millis)
	now := m.clock.Now()
	if !now.Before(expiresAt) {
		if err := m.store.Delete(storage.KeySessionExpiry); err != nil {
			return Decision{}, err
		}
		return Decision{}, nil
	}

	return Decision{
		Granted:   true,
		ExpiresAt: expiresAt,
		Remaining: Remaining(expiresAt, now),
	}, nil
}

// Logout unconditionally deletes the stored session.
func (m *Manager) Logout() error {
	return m.store.Delete(storage.KeySessionExpiry)
}

// Remaining returns the time left until expiresAt, clamped at zero. The
// presentation layer drives its once-per-second countdown from this.
func Remaining(expiresAt, now time.Time) time.Duration {
	d := expiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
