package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facevault/storage"
	"facevault/storage/memory"
)

// fakeClock is a settable Clock for tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestManager(t *testing.T) (*Manager, *memory.Store, *fakeClock) {
	t.Helper()
	store := memory.NewStore()
	clock := &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
	return NewManager(store, WithClock(clock)), store, clock
}

func TestOpenThenCheck(t *testing.T) {
	m, _, clock := newTestManager(t)

	expiresAt, err := m.Open(5 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(5*time.Minute), expiresAt)

	d, err := m.Check()
	require.NoError(t, err)
	assert.True(t, d.Granted)
	assert.InDelta(t, (5 * time.Minute).Milliseconds(), d.Remaining.Milliseconds(), 1)
}

func TestCheck_NoSession(t *testing.T) {
	m, _, _ := newTestManager(t)

	d, err := m.Check()
	require.NoError(t, err)
	assert.False(t, d.Granted)
}

func TestCheck_ExpiredSessionIsDeleted(t *testing.T) {
	m, store, clock := newTestManager(t)

	_, err := m.Open(5 * time.Minute)
	require.NoError(t, err)

	clock.Advance(5 * time.Minute) // now == expiresAt counts as expired

	d, err := m.Check()
	require.NoError(t, err)
	assert.False(t, d.Granted)

	_, err = store.Get(storage.KeySessionExpiry)
	assert.ErrorIs(t, err, storage.ErrNotFound, "expired session must leave no key behind")
}

func TestCheck_CorruptStampIsDeleted(t *testing.T) {
	m, store, _ := newTestManager(t)
	require.NoError(t, store.Set(storage.KeySessionExpiry, "not-a-number"))

	d, err := m.Check()
	require.NoError(t, err)
	assert.False(t, d.Granted)

	_, err = store.Get(storage.KeySessionExpiry)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestOpen_RejectsNonPositiveDuration(t *testing.T) {
	m, _, _ := newTestManager(t)
	_, err := m.Open(0)
	assert.Error(t, err)
	_, err = m.Open(-time.Second)
	assert.Error(t, err)
}

func TestLogout(t *testing.T) {
	m, store, _ := newTestManager(t)

	_, err := m.Open(5 * time.Minute)
	require.NoError(t, err)
	require.NoError(t, m.Logout())

	_, err = store.Get(storage.KeySessionExpiry)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Logging out without a session is fine.
	assert.NoError(t, m.Logout())
}

func TestNoSlidingExpiration(t *testing.T) {
	m, _, clock := newTestManager(t)

	expiresAt, err := m.Open(5 * time.Minute)
	require.NoError(t, err)

	// Repeated checks must not push the expiration out.
	clock.Advance(2 * time.Minute)
	d, err := m.Check()
	require.NoError(t, err)
	require.True(t, d.Granted)
	assert.Equal(t, expiresAt.UnixMilli(), d.ExpiresAt.UnixMilli())
	assert.Equal(t, (3 * time.Minute).Milliseconds(), d.Remaining.Milliseconds())
}

func TestRemaining(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	assert.Equal(t, 90*time.Second, Remaining(now.Add(90*time.Second), now))
	assert.Equal(t, time.Duration(0), Remaining(now, now))
	assert.Equal(t, time.Duration(0), Remaining(now.Add(-time.Second), now))
}
