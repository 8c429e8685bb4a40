package record

import "errors"

var (
	// ErrMalformedRecord marks text that claims to be an encrypted record
	// but whose header or section markers are missing, out of order or
	// empty. It signals corruption and is never repaired automatically.
	ErrMalformedRecord = errors.New("malformed encrypted record")
	// ErrNotLegacyRecord is returned when text carries neither the
	// encrypted header nor a frontmatter block.
	ErrNotLegacyRecord = errors.New("not a frontmatter record")
	// ErrInvalidMetadata wraps YAML encoding and decoding failures.
	ErrInvalidMetadata = errors.New("invalid record metadata")
)
