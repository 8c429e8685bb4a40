package crypto

import "errors"

var (
	// ErrDecryptionFailed is returned for every blob that cannot be opened:
	// bad base64, truncated input, wrong password or tampered ciphertext.
	ErrDecryptionFailed = errors.New("decryption failed")
	// ErrRandomSource is returned when the OS CSPRNG cannot supply bytes.
	ErrRandomSource = errors.New("random source unavailable")
)
