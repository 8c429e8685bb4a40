package rotation

// Session is the part of the vault session a rotation needs: checking a
// password against the stored verifier and installing the new one.
type Session interface {
	Verify(password []byte) (bool, error)
	// Epoch is taken when a run starts and handed back to Commit.
	Epoch() uint64
	Commit(hash string, password []byte, since uint64) error
}
