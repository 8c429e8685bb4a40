// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the vault
// daemon and CLI. It aggregates all sub-configurations and is populated by
// merging defaults, environment variables, command-line flags and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Vault holds the workspace location, auto-lock windows and key
	// derivation cost.
	Vault Vault `envPrefix:"VAULT_"`

	// Storage holds the rotation journal database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the loopback HTTP API settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the settings the CLI uses to reach the daemon.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background worker settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds logging settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Vault configures the vault session of one workspace.
type Vault struct {
	// WorkspacePath is the root directory holding the records and the
	// master password verifier.
	// Env: VAULT_WORKSPACE
	WorkspacePath string `env:"WORKSPACE"`

	// IdleTimeout locks the vault after this much inactivity.
	// Env: VAULT_IDLE_TIMEOUT
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT"`

	// PasswordsTimeout closes the passwords sub-session after this much
	// inactivity. It must be shorter than IdleTimeout.
	// Env: VAULT_PASSWORDS_TIMEOUT
	PasswordsTimeout time.Duration `env:"PASSWORDS_TIMEOUT"`

	// KDF is the Argon2id cost used for new blobs and verifiers.
	KDF KDF `envPrefix:"KDF_"`

	// MaxConcurrentDerivations bounds parallel Argon2id computations.
	// Env: VAULT_MAX_CONCURRENT_DERIVATIONS
	MaxConcurrentDerivations int `env:"MAX_CONCURRENT_DERIVATIONS"`
}

// KDF holds Argon2id parameters. Memory is in KiB.
type KDF struct {
	Time    uint32 `env:"TIME"`
	Memory  uint32 `env:"MEMORY"`
	Threads uint8  `env:"THREADS"`
}

// Storage groups the configuration for persistence backends.
type Storage struct {
	// Journal holds the rotation journal database settings.
	Journal Journal `envPrefix:"JOURNAL_"`
}

// Journal holds connection settings for the SQLite rotation journal.
type Journal struct {
	// DSN is the SQLite database file path. Defaults to
	// <workspace>/.vault/rotation.db.
	// Env: STORAGE_JOURNAL_DSN
	DSN string `env:"DSN"`
}

// Server holds network and timeout settings for the loopback API.
type Server struct {
	// HTTPAddress is the loopback address the API listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds ordinary API requests. Password rotation is
	// not subject to it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// UnlockRate is the sustained number of unlock attempts per second
	// accepted from one client.
	// Env: SERVER_UNLOCK_RATE
	UnlockRate float64 `env:"UNLOCK_RATE"`

	// UnlockBurst is the number of unlock attempts allowed in a burst.
	// Env: SERVER_UNLOCK_BURST
	UnlockBurst int `env:"UNLOCK_BURST"`
}

// Adapter holds the settings the CLI uses to reach the daemon.
type Adapter struct {
	// HTTPAddress is the daemon address in "host:port" format.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration of one call to the daemon.
	// Password rotation calls are not bounded by it.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// AutoLockInterval is how often idle sessions are swept.
	// Env: WORKERS_AUTOLOCK_INTERVAL
	AutoLockInterval time.Duration `env:"AUTOLOCK_INTERVAL"`
}

// Log holds logging settings.
type Log struct {
	// Level is a zerolog level name.
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// GetStructuredConfig loads, merges, and validates the daemon
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags parsed from args
//  4. JSON file (path resolved from sources 2 and 3)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
