package vault

import (
	"sync"
	"time"
)

// DefaultPasswordsTimeout is how long the passwords sub-session stays open
// without activity.
const DefaultPasswordsTimeout = 10 * time.Minute

// PasswordsGate is a second, shorter-lived unlock that password records
// require on top of an unlocked [Session]. Opening it needs the master
// password again. Any lock, unlock or re-key of the parent session closes
// the gate.
type PasswordsGate struct {
	session *Session
	ttl     time.Duration

	mu        sync.Mutex
	open      bool
	expiresAt time.Time
	epoch     uint64
}

// NewPasswordsGate binds a gate to session. ttl <= 0 selects
// DefaultPasswordsTimeout.
func NewPasswordsGate(session *Session, ttl time.Duration) *PasswordsGate {
	if ttl <= 0 {
		ttl = DefaultPasswordsTimeout
	}
	return &PasswordsGate{
		session: session,
		ttl:     ttl,
	}
}

// TTL returns the configured expiry window.
func (g *PasswordsGate) TTL() time.Duration {
	return g.ttl
}

// Unlock re-verifies the master password and opens the gate. It returns
// ErrVaultLocked while the parent session is locked and (false, nil) for a
// wrong password.
//
// The gate binds to the parent epoch observed before the check. If the
// parent was re-keyed or re-unlocked meanwhile, the check is repeated.
func (g *PasswordsGate) Unlock(password []byte) (bool, error) {
	for {
		if !g.session.IsUnlocked() {
			return false, ErrVaultLocked
		}
		epoch := g.session.Epoch()

		ok, err := g.session.Verify(password)
		if err != nil || !ok {
			if err == nil {
				g.session.log.Warn().Msg("passwords unlock rejected: incorrect password")
			}
			return false, err
		}

		if err := g.session.TouchActivity(); err != nil {
			return false, err
		}
		if g.session.Epoch() != epoch {
			continue
		}

		g.mu.Lock()
		g.open = true
		g.epoch = epoch
		g.expiresAt = g.session.now().Add(g.ttl)
		g.mu.Unlock()

		g.session.log.Info().Dur("ttl", g.ttl).Msg("passwords unlocked")
		return true, nil
	}
}

// IsUnlocked reports whether the gate is open, unexpired and still bound
// to the parent's current unlock.
func (g *PasswordsGate) IsUnlocked() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.openLocked()
}

// Touch extends the gate expiry. It returns ErrPasswordsLocked when the
// gate is closed.
func (g *PasswordsGate) Touch() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.openLocked() {
		return ErrPasswordsLocked
	}
	g.expiresAt = g.session.now().Add(g.ttl)
	return nil
}

// Remaining returns the time left before the gate expires, zero when
// closed.
func (g *PasswordsGate) Remaining() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.openLocked() {
		return 0
	}
	return g.expiresAt.Sub(g.session.now())
}

// Lock closes the gate. The parent session is unaffected.
func (g *PasswordsGate) Lock() {
	g.mu.Lock()
	wasOpen := g.open
	g.closeLocked()
	g.mu.Unlock()

	if wasOpen {
		g.session.log.Info().Msg("passwords locked")
	}
}

// CheckIdle closes an expired gate and reports whether it did so.
func (g *PasswordsGate) CheckIdle() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.open {
		return false
	}
	if g.openLocked() {
		return false
	}
	g.session.log.Info().Msg("passwords auto-locked")
	return true
}

func (g *PasswordsGate) openLocked() bool {
	if !g.open {
		return false
	}
	if !g.session.now().Before(g.expiresAt) || !g.session.IsUnlocked() || g.session.Epoch() != g.epoch {
		g.closeLocked()
		return false
	}
	return true
}

func (g *PasswordsGate) closeLocked() {
	g.open = false
	g.expiresAt = time.Time{}
	g.epoch = 0
}
