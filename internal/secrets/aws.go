package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
)

// Compile-time interface guard.
var _ Store = (*AWSStore)(nil)

// secretValueGetter is the subset of the Secrets Manager client used here.
type secretValueGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSStore reads secrets from AWS Secrets Manager.
type AWSStore struct {
	client secretValueGetter
}

// NewAWSStore loads the shared AWS configuration for cfg.Profile and cfg.Region.
// An empty profile uses the default credential chain.
func NewAWSStore(ctx context.Context, cfg AWSConfig) (*AWSStore, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config (profile %q): %w", cfg.Profile, err)
	}
	return &AWSStore{client: secretsmanager.NewFromConfig(awsCfg)}, nil
}

// Get returns the SecretString stored under id.
func (s *AWSStore) Get(ctx context.Context, id string) (string, error) {
	out, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		var nf *types.ResourceNotFoundException
		if errors.As(err, &nf) {
			return "", fmt.Errorf("%s: %w", id, ErrNotFound)
		}
		return "", fmt.Errorf("secretsmanager get %s: %w", id, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("%s has no SecretString: %w", id, ErrNotFound)
	}
	return aws.ToString(out.SecretString), nil
}
