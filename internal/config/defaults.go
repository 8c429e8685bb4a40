package config

import (
	"path/filepath"
	"time"

	"github.com/claudia-app/claudia-vault/internal/crypto"
)

const (
	DefaultIdleTimeout      = 15 * time.Minute
	DefaultPasswordsTimeout = 10 * time.Minute
	DefaultServerAddress    = "127.0.0.1:44056"
	DefaultRequestTimeout   = 30 * time.Second
	DefaultAdapterTimeout   = time.Minute
	DefaultAutoLockInterval = 30 * time.Second

	journalDir  = ".vault"
	journalFile = "rotation.db"
)

// Defaults returns the built-in configuration. The journal DSN is derived
// from the workspace path once all sources are merged.
func Defaults() *StructuredConfig {
	kdf := crypto.DefaultParams()

	return &StructuredConfig{
		Vault: Vault{
			IdleTimeout:      DefaultIdleTimeout,
			PasswordsTimeout: DefaultPasswordsTimeout,
			KDF: KDF{
				Time:    kdf.Time,
				Memory:  kdf.Memory,
				Threads: kdf.Threads,
			},
			MaxConcurrentDerivations: 4,
		},
		Server: Server{
			HTTPAddress:    DefaultServerAddress,
			RequestTimeout: DefaultRequestTimeout,
			UnlockRate:     1,
			UnlockBurst:    5,
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultServerAddress,
			RequestTimeout: DefaultAdapterTimeout,
		},
		Workers: Workers{
			AutoLockInterval: DefaultAutoLockInterval,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// CipherParams converts the KDF settings for the crypto package.
func (v Vault) CipherParams() crypto.Params {
	return crypto.Params{
		Time:    v.KDF.Time,
		Memory:  v.KDF.Memory,
		Threads: v.KDF.Threads,
		KeyLen:  crypto.KeySize,
	}
}

// resolve fills values derived from other fields.
func (cfg *StructuredConfig) resolve() {
	if cfg.Storage.Journal.DSN == "" && cfg.Vault.WorkspacePath != "" {
		cfg.Storage.Journal.DSN = filepath.Join(cfg.Vault.WorkspacePath, journalDir, journalFile)
	}
}
