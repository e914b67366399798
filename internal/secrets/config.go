package secrets

// Backend names accepted in secrets.backend.
const (
	BackendAWS   = "aws"
	BackendVault = "vault"
)

// Config holds the secrets store configuration.
type Config struct {
	Backend string      `mapstructure:"backend"` // "aws" (default) or "vault"
	AWS     AWSConfig   `mapstructure:"aws"`
	Vault   VaultConfig `mapstructure:"vault"`
}

// AWSConfig selects the shared-config profile and region for Secrets Manager.
type AWSConfig struct {
	Profile string `mapstructure:"profile"`
	Region  string `mapstructure:"region"`
}

// VaultConfig points at a Vault server with a KV v2 mount.
// Empty Address and Token fall back to VAULT_ADDR and VAULT_TOKEN.
type VaultConfig struct {
	Address string `mapstructure:"address"`
	Token   string `mapstructure:"token"`
	Mount   string `mapstructure:"mount"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend: BackendAWS,
		AWS: AWSConfig{
			Profile: "strln",
			Region:  "eu-central-1",
		},
		Vault: VaultConfig{
			Mount: "secret",
		},
	}
}
