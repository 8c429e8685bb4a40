package models

import "time"

// VaultStatus is a point-in-time view of the vault session.
type VaultStatus struct {
	// State is one of "uninitialized", "locked" or "unlocked".
	State string `json:"state" yaml:"state"`
	// SetUp reports whether a master password verifier exists.
	SetUp bool `json:"set_up" yaml:"set_up"`
	// Unlocked mirrors State == "unlocked".
	Unlocked bool `json:"unlocked" yaml:"unlocked"`
	// PasswordsUnlocked reports whether the passwords sub-session is open.
	PasswordsUnlocked bool `json:"passwords_unlocked" yaml:"passwords_unlocked"`
	// IdleTimeout is the configured inactivity window of the main session.
	IdleTimeout time.Duration `json:"idle_timeout" yaml:"idle_timeout"`
	// PasswordsRemaining is the time left on the passwords sub-session.
	PasswordsRemaining time.Duration `json:"passwords_remaining" yaml:"passwords_remaining"`
	// LastActivity is zero while locked.
	LastActivity time.Time `json:"last_activity,omitzero" yaml:"last_activity,omitempty"`
	// PendingRotation is set when a master password change was interrupted
	// and must be resumed before records can be trusted.
	PendingRotation *RotationRun `json:"pending_rotation,omitempty" yaml:"pending_rotation,omitempty"`
	// Version is the daemon build version.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}

// Record is a decrypted (or legacy plaintext) vault record.
type Record struct {
	// Metadata is the YAML metadata block.
	Metadata string `json:"metadata"`
	// Body is the markdown body.
	Body string `json:"body"`
	// Encrypted is false when the record was read from a legacy
	// frontmatter file.
	Encrypted bool `json:"encrypted"`
}
