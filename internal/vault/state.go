package vault

// State is the lifecycle state of a [Session]. It is never persisted: every
// process starts Locked (or Uninitialized when no verifier exists).
type State int

const (
	// StateUninitialized means no master password verifier exists.
	StateUninitialized State = iota
	// StateLocked means a verifier exists but no password is resident.
	StateLocked
	// StateUnlocked means the master password is resident in memory.
	StateUnlocked
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}
