package vault

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/claudia-app/claudia-vault/internal/crypto"
	"github.com/claudia-app/claudia-vault/internal/logger"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var testHasherParams = crypto.Params{Time: 1, Memory: 64, Threads: 1}

// newTestSession returns a locked, not yet set up session over a temp
// workspace with a controllable clock.
func newTestSession(t *testing.T, idle time.Duration) (*Session, *fakeClock, string) {
	t.Helper()

	workspace := t.TempDir()
	clock := newFakeClock()
	s := NewSession(
		NewFileCredentialStore(workspace),
		crypto.NewCredentialHasher(testHasherParams),
		SessionConfig{IdleTimeout: idle},
		logger.Nop(),
	)
	s.now = clock.Now
	return s, clock, workspace
}

// gatedHasher blocks the first successful Verify until release is closed,
// after the result has been computed.
type gatedHasher struct {
	crypto.CredentialHasher

	paused  atomic.Bool
	checked chan struct{}
	release chan struct{}
}

func newGatedHasher() *gatedHasher {
	return &gatedHasher{
		CredentialHasher: crypto.NewCredentialHasher(testHasherParams),
		checked:          make(chan struct{}),
		release:          make(chan struct{}),
	}
}

func (h *gatedHasher) Verify(password []byte, encoded string) bool {
	ok := h.CredentialHasher.Verify(password, encoded)
	if ok && h.paused.CompareAndSwap(false, true) {
		close(h.checked)
		<-h.release
	}
	return ok
}
