// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package vault holds the in-memory unlock state of a workspace: the
// master password session, the stricter passwords sub-session and the
// verifier file that backs both.
package vault

import (
	"bytes"
	"sync"
	"time"

	"github.com/claudia-app/claudia-vault/internal/crypto"
	"github.com/claudia-app/claudia-vault/internal/logger"
)

// DefaultIdleTimeout locks an unlocked session after this much inactivity.
const DefaultIdleTimeout = 15 * time.Minute

// SessionConfig tunes a [Session].
type SessionConfig struct {
	// IdleTimeout is the inactivity window after which the session locks
	// itself. Zero selects DefaultIdleTimeout.
	IdleTimeout time.Duration
}

// Session is the single owner of the resident master password for one
// workspace. All methods are safe for concurrent use.
//
// Password hashing and verification run outside the mutex on copies of
// their inputs, so an unlock attempt never blocks readers for the duration
// of an Argon2id computation.
type Session struct {
	store       CredentialStore
	hasher      crypto.CredentialHasher
	log         *logger.Logger
	idleTimeout time.Duration
	now         func() time.Time

	mu           sync.RWMutex
	password     *crypto.Secret
	lastActivity time.Time
	// epoch changes on every unlock, lock and re-key.
	epoch uint64
	// generation changes whenever the stored verifier is written.
	generation uint64
}

// NewSession constructs a locked Session.
func NewSession(store CredentialStore, hasher crypto.CredentialHasher, cfg SessionConfig, log *logger.Logger) *Session {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	return &Session{
		store:       store,
		hasher:      hasher,
		log:         log.WithComponent("session"),
		idleTimeout: cfg.IdleTimeout,
		now:         time.Now,
	}
}

// IdleTimeout returns the configured inactivity window.
func (s *Session) IdleTimeout() time.Duration {
	return s.idleTimeout
}

// State reports the current lifecycle state. An idle session is locked
// before its state is reported.
func (s *Session) State() (State, error) {
	if s.IsUnlocked() {
		return StateUnlocked, nil
	}

	exists, err := s.store.Exists()
	if err != nil {
		return StateLocked, err
	}
	if !exists {
		return StateUninitialized, nil
	}
	return StateLocked, nil
}

// IsSetUp reports whether a verifier exists.
func (s *Session) IsSetUp() (bool, error) {
	return s.store.Exists()
}

// Setup creates the verifier for password and leaves the session
// unlocked. It fails with ErrAlreadySetUp when a verifier exists.
func (s *Session) Setup(password []byte) error {
	if len(password) == 0 {
		return ErrEmptyPassword
	}

	exists, err := s.store.Exists()
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadySetUp
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	if err := s.store.Create(hash); err != nil {
		return err
	}

	s.mu.Lock()
	s.generation++
	s.setPasswordLocked(password)
	s.mu.Unlock()

	s.log.Info().Msg("vault set up and unlocked")
	return nil
}

// Unlock verifies password against the stored verifier. A wrong password
// is reported as (false, nil) so callers can simply re-prompt.
//
// If the verifier is replaced while the check runs, the password is checked
// again against the new verifier before it is installed.
func (s *Session) Unlock(password []byte) (bool, error) {
	for {
		generation := s.credentialGeneration()

		ok, err := s.Verify(password)
		if err != nil || !ok {
			if err == nil {
				s.log.Warn().Msg("unlock rejected: incorrect password")
			}
			return false, err
		}

		s.mu.Lock()
		if s.generation != generation {
			s.mu.Unlock()
			s.log.Debug().Msg("verifier replaced during unlock, checking again")
			continue
		}
		s.setPasswordLocked(password)
		s.mu.Unlock()

		s.log.Info().Msg("vault unlocked")
		return true, nil
	}
}

// Verify checks password against the stored verifier without changing the
// session.
func (s *Session) Verify(password []byte) (bool, error) {
	hash, err := s.store.Load()
	if err != nil {
		return false, err
	}
	return s.hasher.Verify(password, hash), nil
}

// Lock drops the resident password. It is valid in every state.
func (s *Session) Lock() {
	s.mu.Lock()
	wasUnlocked := s.password != nil
	s.lockLocked()
	s.mu.Unlock()

	if wasUnlocked {
		s.log.Info().Msg("vault locked")
	}
}

// IsUnlocked reports whether a password is resident and the session has
// not been idle for longer than the timeout.
func (s *Session) IsUnlocked() bool {
	s.mu.RLock()
	unlocked, expired := s.statusLocked()
	s.mu.RUnlock()

	if expired {
		s.CheckIdle()
	}
	return unlocked
}

// TouchActivity records activity and postpones the idle lock. It returns
// ErrVaultLocked when the session is locked or has just expired.
func (s *Session) TouchActivity() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.activeLocked() {
		return ErrVaultLocked
	}
	s.lastActivity = s.now()
	return nil
}

// CurrentPassword returns a copy of the resident password without
// recording activity. The caller must Destroy the copy.
func (s *Session) CurrentPassword() (*crypto.Secret, error) {
	s.mu.RLock()
	unlocked, expired := s.statusLocked()
	var pw *crypto.Secret
	if unlocked {
		pw = s.password.Clone()
	}
	s.mu.RUnlock()

	if expired {
		s.CheckIdle()
	}
	if !unlocked {
		return nil, ErrVaultLocked
	}
	return pw, nil
}

// Acquire is the gate every record operation passes: it checks the lock
// state, records activity and returns a copy of the password that the
// caller must Destroy.
func (s *Session) Acquire() (*crypto.Secret, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.activeLocked() {
		return nil, ErrVaultLocked
	}
	s.lastActivity = s.now()
	return s.password.Clone(), nil
}

// Commit persists hash as the new verifier and re-keys the session to
// password. Used when the master password is changed.
//
// since is the Epoch observed when the change started. An active session
// is always re-keyed. A locked session is unlocked with password only if it
// has not moved since then, so an explicit or idle lock that happened while
// files were being rewritten survives the commit.
func (s *Session) Commit(hash string, password []byte, since uint64) error {
	if len(password) == 0 {
		return ErrEmptyPassword
	}
	if err := s.store.Replace(hash); err != nil {
		return err
	}

	s.mu.Lock()
	s.generation++
	rekey := s.activeLocked() || s.epoch == since
	if rekey {
		s.setPasswordLocked(password)
	}
	s.mu.Unlock()

	if !rekey {
		s.log.Info().Msg("master password replaced, session stays locked")
		return nil
	}
	s.log.Info().Msg("master password replaced")
	return nil
}

// CheckIdle locks the session when it has been idle for longer than the
// timeout and reports whether it did so.
func (s *Session) CheckIdle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.password == nil || !s.idleLocked() {
		return false
	}
	s.lockLocked()
	s.log.Info().Dur("idle_timeout", s.idleTimeout).Msg("vault auto-locked after inactivity")
	return true
}

// Epoch identifies the current unlock. Any lock, unlock or re-key moves
// it forward.
func (s *Session) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

func (s *Session) credentialGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// LastActivity returns the time of the last recorded activity, or the zero
// time while locked.
func (s *Session) LastActivity() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.password == nil {
		return time.Time{}
	}
	return s.lastActivity
}

// statusLocked requires at least a read lock.
func (s *Session) statusLocked() (unlocked, expired bool) {
	if s.password == nil {
		return false, false
	}
	if s.idleLocked() {
		return false, true
	}
	return true, false
}

// activeLocked requires the write lock and locks an idle session.
func (s *Session) activeLocked() bool {
	if s.password == nil {
		return false
	}
	if s.idleLocked() {
		s.lockLocked()
		s.log.Info().Dur("idle_timeout", s.idleTimeout).Msg("vault auto-locked after inactivity")
		return false
	}
	return true
}

func (s *Session) idleLocked() bool {
	return s.now().Sub(s.lastActivity) >= s.idleTimeout
}

func (s *Session) setPasswordLocked(password []byte) {
	s.password.Destroy()
	s.password = crypto.NewSecret(bytes.Clone(password))
	s.lastActivity = s.now()
	s.epoch++
}

func (s *Session) lockLocked() {
	if s.password == nil {
		return
	}
	s.password.Destroy()
	s.password = nil
	s.lastActivity = time.Time{}
	s.epoch++
}
