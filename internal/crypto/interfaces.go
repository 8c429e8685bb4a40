package crypto

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// Cipher turns a master password into per-blob AES-256-GCM keys and
// seals/opens self-describing CipherBlobs.
//
// Blob layout (before base64): salt(16) ‖ nonce(12) ‖ ciphertext ‖ tag(16).
// Every call to Encrypt draws a fresh salt and nonce, so encrypting the
// same plaintext twice yields different blobs.
type Cipher interface {
	// DeriveKey runs Argon2id over password and salt. The same inputs
	// always produce the same key. The caller owns the returned Secret
	// and must Destroy it.
	DeriveKey(ctx context.Context, password, salt []byte) (*Secret, error)

	// Encrypt seals plaintext under a key derived from password and returns
	// the base64 (standard alphabet, padded) blob.
	Encrypt(ctx context.Context, plaintext, password []byte) (string, error)

	// Decrypt opens a blob produced by Encrypt. Any failure to decode,
	// parse or authenticate the blob yields ErrDecryptionFailed.
	Decrypt(ctx context.Context, blob string, password []byte) ([]byte, error)
}

// CredentialHasher produces and checks the master password verifier that
// is stored on disk.
type CredentialHasher interface {
	// Hash returns a self-describing PHC string with a random salt.
	Hash(password []byte) (string, error)

	// Verify reports whether password matches encoded. Malformed or
	// unsupported hash strings simply do not match.
	Verify(password []byte, encoded string) bool
}
