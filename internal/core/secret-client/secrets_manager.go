package secretclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/rs/zerolog"

	"github.com/markdave123-py/speechkit/internal/core"
	"github.com/markdave123-py/speechkit/internal/infra/metrics"
)

// SecretsManagerAPI is the subset of *secretsmanager.Client the provider calls.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerClient reads secrets stored as a JSON object whose field has
// the same name as the secret itself.
type SecretsManagerClient struct {
	api     SecretsManagerAPI
	timeout time.Duration
	log     zerolog.Logger
}

var _ core.SecretProvider = (*SecretsManagerClient)(nil)

// NewSecretsManagerClient builds a provider from a loaded AWS config.
func NewSecretsManagerClient(awsCfg aws.Config, timeout time.Duration, log zerolog.Logger) *SecretsManagerClient {
	return New(secretsmanager.NewFromConfig(awsCfg), timeout, log)
}

func New(api SecretsManagerAPI, timeout time.Duration, log zerolog.Logger) *SecretsManagerClient {
	return &SecretsManagerClient{
		api:     api,
		timeout: timeout,
		log:     log.With().Str("component", "secrets").Logger(),
	}
}

// GetSecret fetches the secret called name and returns its name field.
// Values are never logged. Nothing is cached.
func (c *SecretsManagerClient) GetSecret(ctx context.Context, name string) (_ string, err error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty secret name", core.ErrInvalidInput)
	}

	defer metrics.ObserveCall("secretsmanager", "get_secret", time.Now(), &err)

	ctxGet, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.api.GetSecretValue(ctxGet, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		c.log.Warn().Err(err).Str("secret", name).Msg("get secret value failed")
		return "", fmt.Errorf("%w: %s: %w", core.ErrSecretUnavailable, name, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("%w: %s has no string value", core.ErrSecretFormat, name)
	}

	return lookupField(*out.SecretString, name)
}

func lookupField(payload, name string) (string, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return "", fmt.Errorf("%w: secret is not a JSON object: %w", core.ErrSecretFormat, err)
	}

	raw, ok := fields[name]
	if !ok {
		return "", fmt.Errorf("%w: key %q missing", core.ErrSecretFormat, name)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: key %q is not a string", core.ErrSecretFormat, name)
	}
	return value, nil
}
