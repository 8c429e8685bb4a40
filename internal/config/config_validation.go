// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net"
	"strings"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// daemon invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Vault.WorkspacePath == "" {
		return fmt.Errorf("%w: workspace path is required", ErrInvalidVaultConfigs)
	}
	if err := cfg.Vault.validate(); err != nil {
		return err
	}

	dsn := cfg.Storage.Journal.DSN
	if dsn == "" || strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return fmt.Errorf("%w: journal must be a file", ErrInvalidStorageConfigs)
	}

	if !isLoopback(cfg.Server.HTTPAddress) {
		return fmt.Errorf("%w: %q is not a loopback address", ErrInvalidServerConfigs, cfg.Server.HTTPAddress)
	}
	if cfg.Server.UnlockRate <= 0 || cfg.Server.UnlockBurst < 1 {
		return fmt.Errorf("%w: unlock rate limit must be positive", ErrInvalidServerConfigs)
	}

	if cfg.Workers.AutoLockInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (v Vault) validate() error {
	if v.IdleTimeout <= 0 || v.PasswordsTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidVaultConfigs)
	}
	if v.PasswordsTimeout >= v.IdleTimeout {
		return fmt.Errorf("%w: passwords timeout must be shorter than idle timeout", ErrInvalidVaultConfigs)
	}
	// Argon2 needs at least 8 KiB per lane.
	if v.KDF.Time < 1 || v.KDF.Threads < 1 || v.KDF.Memory < 8*uint32(v.KDF.Threads) {
		return fmt.Errorf("%w: unusable kdf parameters", ErrInvalidVaultConfigs)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Vault.KDF.Time < 1 || cfg.Vault.KDF.Threads < 1 || cfg.Vault.KDF.Memory < 8*uint32(cfg.Vault.KDF.Threads) {
		return fmt.Errorf("%w: unusable kdf parameters", ErrInvalidVaultConfigs)
	}
	return nil
}

func isLoopback(address string) bool {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return false
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
