package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	vault "github.com/hashicorp/vault/api"
)

// Compile-time interface guard.
var _ Store = (*VaultStore)(nil)

// VaultStore reads secrets from a Vault KV v2 mount.
type VaultStore struct {
	kv *vault.KVv2
}

// NewVaultStore creates a Vault-backed store. Address and token default to the
// VAULT_ADDR and VAULT_TOKEN environment variables read by the Vault client.
func NewVaultStore(cfg VaultConfig) (*VaultStore, error) {
	vcfg := vault.DefaultConfig()
	if vcfg.Error != nil {
		return nil, fmt.Errorf("vault config: %w", vcfg.Error)
	}
	if cfg.Address != "" {
		vcfg.Address = cfg.Address
	}

	client, err := vault.NewClient(vcfg)
	if err != nil {
		return nil, fmt.Errorf("create vault client: %w", err)
	}
	if cfg.Token != "" {
		client.SetToken(cfg.Token)
	}

	mount := cfg.Mount
	if mount == "" {
		mount = "secret"
	}
	return &VaultStore{kv: client.KVv2(mount)}, nil
}

// Get returns the secret data at id encoded as a JSON object, the same wrapped
// form Secrets Manager returns, so ExtractPassword handles both.
func (s *VaultStore) Get(ctx context.Context, id string) (string, error) {
	secret, err := s.kv.Get(ctx, id)
	if err != nil {
		if errors.Is(err, vault.ErrSecretNotFound) {
			return "", fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return "", fmt.Errorf("vault get %s: %w", id, err)
	}
	if secret == nil || len(secret.Data) == 0 {
		return "", fmt.Errorf("%s: %w", id, ErrNotFound)
	}

	data, err := json.Marshal(secret.Data)
	if err != nil {
		return "", fmt.Errorf("encode vault secret %s: %w", id, err)
	}
	return string(data), nil
}
