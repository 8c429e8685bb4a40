package vault

import "errors"

// Errors returned by the session layer. Callers match them with errors.Is.
var (
	// ErrVaultLocked is returned by every gated operation while no master
	// password is resident. Callers must prompt for the password and never
	// fall back to empty results.
	ErrVaultLocked = errors.New("vault is locked")
	// ErrIncorrectPassword is returned when a supplied master password does
	// not match the stored verifier.
	ErrIncorrectPassword = errors.New("incorrect master password")
	// ErrAlreadySetUp is returned by Setup when a verifier already exists.
	ErrAlreadySetUp = errors.New("vault is already set up")
	// ErrNotSetUp is returned when no verifier exists yet.
	ErrNotSetUp = errors.New("vault is not set up")
	// ErrEmptyPassword rejects empty master passwords.
	ErrEmptyPassword = errors.New("master password must not be empty")
	// ErrPasswordsLocked is returned by password record operations while
	// the passwords sub-session is closed.
	ErrPasswordsLocked = errors.New("passwords are locked")
	// ErrIOFailure wraps filesystem errors. The underlying cause stays
	// available through errors.Is / errors.As.
	ErrIOFailure = errors.New("vault i/o failure")
)
