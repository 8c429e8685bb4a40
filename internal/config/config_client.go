package config

// ClientConfig is the configuration view used by the vaultctl CLI.
type ClientConfig struct {
	// Vault holds the workspace and KDF settings used by local commands.
	Vault Vault
	// Adapter holds the daemon address and call timeout.
	Adapter Adapter
	// Log holds logging settings.
	Log Log
}

// GetClientConfig builds and validates the CLI configuration. Sources are
// merged in the same order as [GetStructuredConfig], with overrides (usually
// the command-line flags) taking the place of parsed flags.
//
// Only the fields relevant to the CLI are validated, so commands that talk
// to the daemon work without a workspace path.
func GetClientConfig(overrides *StructuredConfig) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withOverrides(overrides).
		withJSON().
		merge()
	if err != nil {
		return nil, err
	}

	clientCfg := &ClientConfig{
		Vault:   cfg.Vault,
		Adapter: cfg.Adapter,
		Log:     cfg.Log,
	}
	return clientCfg, clientCfg.validate()
}
