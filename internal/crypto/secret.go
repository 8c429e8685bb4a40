// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"sync"

	"github.com/awnumar/memguard"
)

// Secret holds sensitive bytes (a master password or a derived key) in a
// memguard locked buffer. The memory is excluded from swap, guarded by
// canary pages and overwritten when the Secret is destroyed.
//
// A zero-length Secret is valid and behaves like an empty, alive value.
type Secret struct {
	mu        sync.Mutex
	buf       *memguard.LockedBuffer
	destroyed bool
}

// NewSecret moves b into protected memory. b is wiped before NewSecret
// returns and must not be used afterwards.
func NewSecret(b []byte) *Secret {
	if len(b) == 0 {
		return &Secret{}
	}
	return &Secret{buf: memguard.NewBufferFromBytes(b)}
}

// NewSecretFromString copies s into protected memory. The string itself is
// immutable and cannot be wiped, so callers should prefer NewSecret when
// they control the source bytes.
func NewSecretFromString(s string) *Secret {
	return NewSecret([]byte(s))
}

// Bytes exposes the protected bytes. The slice is read-only and becomes
// invalid after Destroy.
func (s *Secret) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed || s.buf == nil {
		return nil
	}
	return s.buf.Bytes()
}

// Len returns the number of protected bytes, or 0 once destroyed.
func (s *Secret) Len() int {
	return len(s.Bytes())
}

// Clone returns an independent copy that must be destroyed separately.
func (s *Secret) Clone() *Secret {
	src := s.Bytes()
	if len(src) == 0 {
		return &Secret{destroyed: !s.IsAlive()}
	}

	tmp := make([]byte, len(src))
	copy(tmp, src)
	return NewSecret(tmp)
}

// Equal compares the protected bytes with b in constant time.
func (s *Secret) Equal(b []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return false
	}
	if s.buf == nil {
		return len(b) == 0
	}
	return s.buf.EqualTo(b)
}

// IsAlive reports whether Destroy has not been called yet.
func (s *Secret) IsAlive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.destroyed
}

// Destroy wipes and releases the protected memory. It is safe to call more
// than once and on a nil Secret.
func (s *Secret) Destroy() {
	if s == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return
	}
	if s.buf != nil {
		s.buf.Destroy()
		s.buf = nil
	}
	s.destroyed = true
}

// Wipe overwrites b with zeroes. Use it for transient copies of secrets
// that never made it into a Secret.
func Wipe(b []byte) {
	memguard.WipeBytes(b)
}
