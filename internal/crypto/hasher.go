package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	hashSaltSize = 16
	hashOutSize  = 32
)

var errMalformedHash = errors.New("malformed password hash")

// argon2Hasher is the private implementation of [CredentialHasher].
type argon2Hasher struct {
	params Params
}

// NewCredentialHasher constructs a [CredentialHasher] that writes Argon2id
// PHC strings with params. Verification always uses the parameters
// embedded in the stored string, so older hashes keep verifying after the
// defaults change.
func NewCredentialHasher(params Params) CredentialHasher {
	if params.KeyLen == 0 {
		params.KeyLen = hashOutSize
	}
	return &argon2Hasher{params: params}
}

// Hash implements [CredentialHasher].
//
// Format: $argon2id$v=19$m=<KiB>,t=<iterations>,p=<lanes>$<salt>$<digest>
// with salt and digest in unpadded standard base64.
func (h *argon2Hasher) Hash(password []byte) (string, error) {
	salt := make([]byte, hashSaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRandomSource, err)
	}

	digest := argon2.IDKey(password, salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)
	defer Wipe(digest)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory, h.params.Time, h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	), nil
}

// Verify implements [CredentialHasher].
func (h *argon2Hasher) Verify(password []byte, encoded string) bool {
	phc, err := parsePHC(strings.TrimSpace(encoded))
	if err != nil {
		return false
	}

	var got []byte
	switch phc.algorithm {
	case "argon2id":
		got = argon2.IDKey(password, phc.salt, phc.params.Time, phc.params.Memory, phc.params.Threads, phc.params.KeyLen)
	case "argon2i":
		got = argon2.Key(password, phc.salt, phc.params.Time, phc.params.Memory, phc.params.Threads, phc.params.KeyLen)
	default:
		return false
	}
	defer Wipe(got)

	return subtle.ConstantTimeCompare(got, phc.digest) == 1
}

type phcHash struct {
	algorithm string
	params    Params
	salt      []byte
	digest    []byte
}

func parsePHC(encoded string) (*phcHash, error) {
	// "", algorithm, version, params, salt, digest
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, errMalformedHash
	}

	version, ok := strings.CutPrefix(parts[2], "v=")
	if !ok {
		return nil, errMalformedHash
	}
	if v, err := strconv.Atoi(version); err != nil || v != argon2.Version {
		return nil, errMalformedHash
	}

	params, err := parsePHCParams(parts[3])
	if err != nil {
		return nil, err
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return nil, errMalformedHash
	}
	digest, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(digest) == 0 {
		return nil, errMalformedHash
	}
	params.KeyLen = uint32(len(digest))

	return &phcHash{
		algorithm: parts[1],
		params:    params,
		salt:      salt,
		digest:    digest,
	}, nil
}

func parsePHCParams(s string) (Params, error) {
	var p Params
	var seen int

	for _, field := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return Params{}, errMalformedHash
		}
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return Params{}, errMalformedHash
		}

		switch key {
		case "m":
			p.Memory = uint32(n)
		case "t":
			p.Time = uint32(n)
		case "p":
			if n > 255 {
				return Params{}, errMalformedHash
			}
			p.Threads = uint8(n)
		default:
			return Params{}, errMalformedHash
		}
		seen++
	}

	if seen != 3 || p.Memory == 0 || p.Time == 0 || p.Threads == 0 {
		return Params{}, errMalformedHash
	}
	// Refuse absurd memory costs instead of letting a crafted file exhaust RAM.
	if p.Memory > 4*1024*1024 {
		return Params{}, errMalformedHash
	}
	return p, nil
}
