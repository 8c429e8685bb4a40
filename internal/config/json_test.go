package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_AllSections(t *testing.T) {
	p := filepath.Join(t.TempDir(), "vaultd.json")

	jsonBody := `{
		"vault": {
			"workspace": "/home/me/notes",
			"idle_timeout": "20m",
			"passwords_timeout": "5m",
			"kdf": { "time": 3, "memory": 65536, "threads": 2 },
			"max_concurrent_derivations": 8
		},
		"storage": {
			"journal": { "dsn": "/var/lib/vault/rotation.db" }
		},
		"server": {
			"http_address": "127.0.0.1:8080",
			"request_timeout": "30s",
			"unlock_rate": 0.5,
			"unlock_burst": 3
		},
		"adapter": {
			"http_address": "127.0.0.1:8080",
			"request_timeout": "5m"
		},
		"workers": { "autolock_interval": "10s" },
		"log": { "level": "debug" }
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	cfg, err := parseJSON(p)
	require.NoError(t, err)

	assert.Equal(t, "/home/me/notes", cfg.Vault.WorkspacePath)
	assert.Equal(t, 20*time.Minute, cfg.Vault.IdleTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Vault.PasswordsTimeout)
	assert.Equal(t, KDF{Time: 3, Memory: 65536, Threads: 2}, cfg.Vault.KDF)
	assert.Equal(t, 8, cfg.Vault.MaxConcurrentDerivations)

	assert.Equal(t, "/var/lib/vault/rotation.db", cfg.Storage.Journal.DSN)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 0.5, cfg.Server.UnlockRate)
	assert.Equal(t, 3, cfg.Server.UnlockBurst)

	assert.Equal(t, "127.0.0.1:8080", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 5*time.Minute, cfg.Adapter.RequestTimeout)

	assert.Equal(t, 10*time.Second, cfg.Workers.AutoLockInterval)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		return p
	}

	tests := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{name: "missing file", path: filepath.Join(dir, "absent.json"), wantMsg: "error reading a json file"},
		{name: "not json", path: write("bad.json", `{ this is not json }`), wantMsg: "error decoding json configs"},
		{name: "bad duration", path: write("duration.json", `{"vault": {"idle_timeout": "forever"}}`), wantMsg: "error decoding json configs"},
		{name: "bad kdf type", path: write("kdf.json", `{"vault": {"kdf": {"memory": "lots"}}}`), wantMsg: "error decoding json configs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseJSON(tt.path)

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestParseJSON_PartialObject(t *testing.T) {
	p := filepath.Join(t.TempDir(), "partial.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"server": {"http_address": "127.0.0.1:8000"}}`), 0o600))

	cfg, err := parseJSON(p)
	require.NoError(t, err)

	assert.Equal(t, StructuredConfig{Server: Server{HTTPAddress: "127.0.0.1:8000"}}, *cfg)
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{in: `"15m"`, want: 15 * time.Minute},
		{in: `"1h30m"`, want: 90 * time.Minute},
		{in: `1500000000`, want: 1500 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Duration
			require.NoError(t, d.UnmarshalJSON([]byte(tt.in)))
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := Duration(10 * time.Minute).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"10m0s"`, string(b))
}
