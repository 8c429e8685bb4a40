// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package record

import (
	"context"
	"fmt"

	"github.com/claudia-app/claudia-vault/internal/crypto"
)

// Plain is a decrypted (or never encrypted) record.
type Plain struct {
	// Metadata is the YAML metadata block.
	Metadata string
	// Body is the markdown body.
	Body string
	// Encrypted is false for legacy frontmatter files.
	Encrypted bool
}

// Codec encrypts and decrypts records with a [crypto.Cipher]. Metadata and
// body are sealed as two independent CipherBlobs so listings can decrypt
// metadata without touching the body.
type Codec struct {
	cipher crypto.Cipher
}

// NewCodec constructs a Codec around cipher.
func NewCodec(cipher crypto.Cipher) *Codec {
	return &Codec{cipher: cipher}
}

// CreateEncryptedFile seals metadata and body under password and returns
// the serialized record.
func (c *Codec) CreateEncryptedFile(ctx context.Context, metadata, body string, password []byte) (string, error) {
	metadataBlob, err := c.cipher.Encrypt(ctx, []byte(metadata), password)
	if err != nil {
		return "", fmt.Errorf("encrypt metadata: %w", err)
	}
	contentBlob, err := c.cipher.Encrypt(ctx, []byte(body), password)
	if err != nil {
		return "", fmt.Errorf("encrypt content: %w", err)
	}
	return Serialize(metadataBlob, contentBlob), nil
}

// DecryptMetadata opens the metadata blob of file.
func (c *Codec) DecryptMetadata(ctx context.Context, file EncryptedFile, password []byte) (string, error) {
	plain, err := c.cipher.Decrypt(ctx, file.Metadata, password)
	if err != nil {
		return "", fmt.Errorf("decrypt metadata: %w", err)
	}
	return string(plain), nil
}

// DecryptContent opens the content blob of file.
func (c *Codec) DecryptContent(ctx context.Context, file EncryptedFile, password []byte) (string, error) {
	plain, err := c.cipher.Decrypt(ctx, file.Content, password)
	if err != nil {
		return "", fmt.Errorf("decrypt content: %w", err)
	}
	return string(plain), nil
}

// Decrypt reads raw in either format. Encrypted records are parsed and
// both sections opened; legacy frontmatter files are returned as-is with
// Encrypted set to false.
func (c *Codec) Decrypt(ctx context.Context, raw string, password []byte) (Plain, error) {
	if !IsEncryptedFormat(raw) {
		return ReadLegacy(raw)
	}

	file, err := Parse(raw)
	if err != nil {
		return Plain{}, err
	}
	metadata, err := c.DecryptMetadata(ctx, file, password)
	if err != nil {
		return Plain{}, err
	}
	body, err := c.DecryptContent(ctx, file, password)
	if err != nil {
		return Plain{}, err
	}
	return Plain{Metadata: metadata, Body: body, Encrypted: true}, nil
}

// Reencrypt opens an encrypted record with oldPassword and seals it again
// under newPassword with fresh salts and nonces.
func (c *Codec) Reencrypt(ctx context.Context, raw string, oldPassword, newPassword []byte) (string, error) {
	file, err := Parse(raw)
	if err != nil {
		return "", err
	}
	metadata, err := c.DecryptMetadata(ctx, file, oldPassword)
	if err != nil {
		return "", err
	}
	body, err := c.DecryptContent(ctx, file, oldPassword)
	if err != nil {
		return "", err
	}
	return c.CreateEncryptedFile(ctx, metadata, body, newPassword)
}

// OpenSealedBody reads a legacy password record: plaintext frontmatter
// followed by a body that is a single CipherBlob.
func (c *Codec) OpenSealedBody(ctx context.Context, raw string, password []byte) (Plain, error) {
	metadata, blob, ok := SplitFrontmatter(raw)
	if !ok || blob == "" {
		return Plain{}, ErrNotLegacyRecord
	}

	body, err := c.cipher.Decrypt(ctx, blob, password)
	if err != nil {
		return Plain{}, fmt.Errorf("decrypt content: %w", err)
	}
	return Plain{Metadata: metadata, Body: string(body)}, nil
}

// ReencryptSealedBody rotates the body blob of a legacy password record
// and leaves its frontmatter untouched.
func (c *Codec) ReencryptSealedBody(ctx context.Context, raw string, oldPassword, newPassword []byte) (string, error) {
	plain, err := c.OpenSealedBody(ctx, raw, oldPassword)
	if err != nil {
		return "", err
	}
	blob, err := c.cipher.Encrypt(ctx, []byte(plain.Body), newPassword)
	if err != nil {
		return "", fmt.Errorf("encrypt content: %w", err)
	}
	return JoinFrontmatter(plain.Metadata, blob), nil
}

// Upgrade converts a legacy frontmatter file into an encrypted record.
// Records that are already encrypted are returned unchanged.
func (c *Codec) Upgrade(ctx context.Context, raw string, password []byte) (string, error) {
	if IsEncryptedFormat(raw) {
		if _, err := Parse(raw); err != nil {
			return "", err
		}
		return raw, nil
	}

	plain, err := ReadLegacy(raw)
	if err != nil {
		return "", err
	}
	return c.CreateEncryptedFile(ctx, plain.Metadata, plain.Body, password)
}

// IsSealedRecord reports whether raw is a legacy password record, i.e. a
// frontmatter file whose body is a single CipherBlob.
func IsSealedRecord(raw string) bool {
	if IsEncryptedFormat(raw) {
		return false
	}
	_, body, ok := SplitFrontmatter(raw)
	return ok && crypto.IsCipherBlob(body)
}

// ReadLegacy returns the frontmatter and body of an unencrypted file.
func ReadLegacy(raw string) (Plain, error) {
	metadata, body, ok := SplitFrontmatter(raw)
	if !ok {
		return Plain{}, ErrNotLegacyRecord
	}
	return Plain{Metadata: metadata, Body: body}, nil
}
