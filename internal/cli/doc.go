// Package cli implements vaultctl, the command-line client of the vault
// daemon.
//
// Commands are built with cobra by [NewRootCommand]. All of them except
// detect talk to the daemon through an [adapter.VaultAdapter]; master
// passwords are read from the terminal without echo and wiped after use.
package cli
