// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"
)

const (
	// SaltSize is the length of the per-blob Argon2id salt.
	SaltSize = 16
	// NonceSize is the AES-GCM nonce length.
	NonceSize = 12
	// KeySize is the AES-256 key length.
	KeySize = 32

	// minBlobSize is salt + nonce + at least one byte of sealed data.
	minBlobSize = SaltSize + NonceSize + 1

	defaultMaxConcurrentDerivations = 4
)

// Params are the Argon2id cost parameters. Memory is expressed in KiB.
type Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
}

// DefaultParams returns Argon2id v19 with m=19456 KiB, t=2, p=1 and a
// 32-byte output. Blobs and hashes written by the desktop application use
// exactly these values, so changing them breaks existing vaults.
func DefaultParams() Params {
	return Params{
		Time:    2,
		Memory:  19 * 1024,
		Threads: 1,
		KeyLen:  KeySize,
	}
}

// CipherOption customises a Cipher built by NewCipher.
type CipherOption func(*aesGCMCipher)

// WithMaxConcurrentDerivations limits how many Argon2id derivations may run
// at the same time. Each derivation allocates Params.Memory KiB.
func WithMaxConcurrentDerivations(n int) CipherOption {
	return func(c *aesGCMCipher) {
		if n > 0 {
			c.slots = semaphore.NewWeighted(int64(n))
		}
	}
}

// aesGCMCipher is the private implementation of [Cipher].
type aesGCMCipher struct {
	params Params
	slots  *semaphore.Weighted
}

// NewCipher constructs a [Cipher] that derives keys with params. A zero
// KeyLen is replaced by KeySize.
func NewCipher(params Params, opts ...CipherOption) Cipher {
	if params.KeyLen == 0 {
		params.KeyLen = KeySize
	}

	c := &aesGCMCipher{
		params: params,
		slots:  semaphore.NewWeighted(defaultMaxConcurrentDerivations),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DeriveKey implements [Cipher].
func (c *aesGCMCipher) DeriveKey(ctx context.Context, password, salt []byte) (*Secret, error) {
	if err := c.slots.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("wait for key derivation slot: %w", err)
	}
	defer c.slots.Release(1)

	key := argon2.IDKey(password, salt, c.params.Time, c.params.Memory, c.params.Threads, c.params.KeyLen)
	return NewSecret(key), nil
}

// Encrypt implements [Cipher].
func (c *aesGCMCipher) Encrypt(ctx context.Context, plaintext, password []byte) (string, error) {
	// 1. Fresh salt and nonce for every blob
	header := make([]byte, SaltSize+NonceSize)
	if _, err := io.ReadFull(rand.Reader, header); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRandomSource, err)
	}
	salt, nonce := header[:SaltSize], header[SaltSize:]

	// 2. Derive the blob key
	key, err := c.DeriveKey(ctx, password, salt)
	if err != nil {
		return "", err
	}
	defer key.Destroy()

	gcm, err := newGCM(key.Bytes())
	if err != nil {
		return "", err
	}

	// 3. salt || nonce || ciphertext || tag
	blob := gcm.Seal(header, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [Cipher].
func (c *aesGCMCipher) Decrypt(ctx context.Context, blob string, password []byte) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil || len(raw) < minBlobSize {
		return nil, ErrDecryptionFailed
	}
	salt, nonce, sealed := raw[:SaltSize], raw[SaltSize:SaltSize+NonceSize], raw[SaltSize+NonceSize:]

	key, err := c.DeriveKey(ctx, password, salt)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	gcm, err := newGCM(key.Bytes())
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// IsCipherBlob reports whether s has the shape of a CipherBlob: standard
// base64 long enough to hold a salt, a nonce and sealed data. It does not
// authenticate anything.
func IsCipherBlob(s string) bool {
	raw, err := base64.StdEncoding.DecodeString(s)
	return err == nil && len(raw) >= minBlobSize
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
