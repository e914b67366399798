package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecretsManager struct {
	values map[string]*string
	calls  []string
}

func (f *fakeSecretsManager) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	id := aws.ToString(in.SecretId)
	f.calls = append(f.calls, id)
	v, ok := f.values[id]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("no such secret")}
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: v}, nil
}

func TestAWSStore_Get(t *testing.T) {
	fake := &fakeSecretsManager{values: map[string]*string{
		"service_creds/zabbix_admin": aws.String(`{"zabbix_admin":"s3cret"}`),
		"binary/only":                nil,
	}}
	store := &AWSStore{client: fake}
	ctx := context.Background()

	raw, err := store.Get(ctx, "service_creds/zabbix_admin")
	require.NoError(t, err)
	assert.Equal(t, `{"zabbix_admin":"s3cret"}`, raw)

	_, err = store.Get(ctx, "service_creds/missing")
	assert.True(t, errors.Is(err, ErrNotFound), "missing secret should wrap ErrNotFound, got %v", err)

	_, err = store.Get(ctx, "binary/only")
	assert.True(t, errors.Is(err, ErrNotFound), "binary secret should wrap ErrNotFound, got %v", err)
}

func TestPassword(t *testing.T) {
	fake := &fakeSecretsManager{values: map[string]*string{
		"ucs/users/rdeviate": aws.String(`{"rdeviate":"hunter2"}`),
		"broken":             aws.String("nocolon"),
	}}
	store := &AWSStore{client: fake}

	pass, err := Password(context.Background(), store, "ucs/users/rdeviate")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", pass)

	_, err = Password(context.Background(), store, "broken")
	assert.ErrorIs(t, err, ErrMalformedSecret)
}

func TestVaultStore_Get(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/secret/data/service_creds/zabbix_admin", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Vault-Token") != "test-token" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"data":     map[string]any{"zabbix_admin": "s3cret"},
				"metadata": map[string]any{"version": 1},
			},
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store, err := NewVaultStore(VaultConfig{Address: srv.URL, Token: "test-token", Mount: "secret"})
	require.NoError(t, err)

	raw, err := store.Get(context.Background(), "service_creds/zabbix_admin")
	require.NoError(t, err)
	assert.JSONEq(t, `{"zabbix_admin":"s3cret"}`, raw)

	pass, err := ExtractPassword(raw)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pass)

	_, err = store.Get(context.Background(), "service_creds/missing")
	assert.Error(t, err)
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(context.Background(), Config{Backend: "keepass"})
	assert.Error(t, err)
}
