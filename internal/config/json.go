package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	Vault struct {
		WorkspacePath    string   `json:"workspace"`
		IdleTimeout      Duration `json:"idle_timeout"`
		PasswordsTimeout Duration `json:"passwords_timeout"`
		KDF              struct {
			Time    uint32 `json:"time"`
			Memory  uint32 `json:"memory"`
			Threads uint8  `json:"threads"`
		} `json:"kdf,omitempty"`
		MaxConcurrentDerivations int `json:"max_concurrent_derivations"`
	} `json:"vault,omitempty"`

	Storage struct {
		Journal struct {
			DSN string `json:"dsn"`
		} `json:"journal,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		UnlockRate     float64  `json:"unlock_rate"`
		UnlockBurst    int      `json:"unlock_burst"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		AutoLockInterval Duration `json:"autolock_interval"`
	} `json:"workers,omitempty"`

	Log struct {
		Level string `json:"level"`
	} `json:"log,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Vault: Vault{
			WorkspacePath:    jsonCfg.Vault.WorkspacePath,
			IdleTimeout:      time.Duration(jsonCfg.Vault.IdleTimeout),
			PasswordsTimeout: time.Duration(jsonCfg.Vault.PasswordsTimeout),
			KDF: KDF{
				Time:    jsonCfg.Vault.KDF.Time,
				Memory:  jsonCfg.Vault.KDF.Memory,
				Threads: jsonCfg.Vault.KDF.Threads,
			},
			MaxConcurrentDerivations: jsonCfg.Vault.MaxConcurrentDerivations,
		},
		Storage: Storage{
			Journal: Journal{DSN: jsonCfg.Storage.Journal.DSN},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			UnlockRate:     jsonCfg.Server.UnlockRate,
			UnlockBurst:    jsonCfg.Server.UnlockBurst,
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			AutoLockInterval: time.Duration(jsonCfg.Workers.AutoLockInterval),
		},
		Log:          Log{Level: jsonCfg.Log.Level},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
