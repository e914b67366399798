// Package secrets fetches service credentials from an external secrets store
// and extracts bare passwords from the wrapped values those stores return.
package secrets

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when the store has no value for the requested id.
var ErrNotFound = errors.New("secret not found")

// Store is a keyed, read-only secrets lookup.
type Store interface {
	Get(ctx context.Context, id string) (string, error)
}

// New builds the Store selected by cfg.Backend.
func New(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendAWS, "":
		return NewAWSStore(ctx, cfg.AWS)
	case BackendVault:
		return NewVaultStore(cfg.Vault)
	default:
		return nil, fmt.Errorf("unknown secrets backend %q", cfg.Backend)
	}
}

// Password fetches id from store and extracts the bare password from it.
func Password(ctx context.Context, store Store, id string) (string, error) {
	raw, err := store.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get secret %s: %w", id, err)
	}
	pass, err := ExtractPassword(raw)
	if err != nil {
		return "", fmt.Errorf("secret %s: %w", id, err)
	}
	return pass, nil
}
