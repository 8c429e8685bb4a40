package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *StructuredConfig {
	cfg := Defaults()
	cfg.Vault.WorkspacePath = "/ws"
	cfg.resolve()
	return cfg
}

func TestStructuredConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "defaults with workspace",
			mutate: func(cfg *StructuredConfig) {},
		},
		{
			name:    "missing workspace",
			mutate:  func(cfg *StructuredConfig) { cfg.Vault.WorkspacePath = "" },
			wantErr: ErrInvalidVaultConfigs,
		},
		{
			name:    "zero idle timeout",
			mutate:  func(cfg *StructuredConfig) { cfg.Vault.IdleTimeout = 0 },
			wantErr: ErrInvalidVaultConfigs,
		},
		{
			name: "passwords timeout not shorter than idle",
			mutate: func(cfg *StructuredConfig) {
				cfg.Vault.IdleTimeout = 10 * time.Minute
				cfg.Vault.PasswordsTimeout = 10 * time.Minute
			},
			wantErr: ErrInvalidVaultConfigs,
		},
		{
			name:    "kdf memory below lane minimum",
			mutate:  func(cfg *StructuredConfig) { cfg.Vault.KDF = KDF{Time: 1, Memory: 8, Threads: 4} },
			wantErr: ErrInvalidVaultConfigs,
		},
		{
			name:    "kdf zero passes",
			mutate:  func(cfg *StructuredConfig) { cfg.Vault.KDF.Time = 0 },
			wantErr: ErrInvalidVaultConfigs,
		},
		{
			name:    "in-memory journal",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Journal.DSN = ":memory:" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "shared memory journal",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Journal.DSN = "file:j?mode=memory&cache=shared" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "public listen address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "0.0.0.0:44056" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "address without port",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "127.0.0.1" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "zero unlock burst",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.UnlockBurst = 0 },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "zero autolock interval",
			mutate:  func(cfg *StructuredConfig) { cfg.Workers.AutoLockInterval = 0 },
			wantErr: ErrInvalidWorkerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClientConfig_Validate(t *testing.T) {
	valid := ClientConfig{Vault: Defaults().Vault, Adapter: Defaults().Adapter}
	assert.NoError(t, valid.validate())

	noAddress := valid
	noAddress.Adapter.HTTPAddress = ""
	assert.ErrorIs(t, noAddress.validate(), ErrInvalidAdapterConfigs)

	noTimeout := valid
	noTimeout.Adapter.RequestTimeout = 0
	assert.ErrorIs(t, noTimeout.validate(), ErrInvalidAdapterConfigs)

	badKDF := valid
	badKDF.Vault.KDF.Threads = 0
	assert.ErrorIs(t, badKDF.validate(), ErrInvalidVaultConfigs)
}

func TestIsLoopback(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{addr: "127.0.0.1:44056", want: true},
		{addr: "localhost:80", want: true},
		{addr: "[::1]:8080", want: true},
		{addr: "192.168.1.10:8080", want: false},
		{addr: "example.com:443", want: false},
		{addr: "garbage", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.want, isLoopback(tt.addr))
		})
	}
}
