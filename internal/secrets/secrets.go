// Package secrets reads JSON-encoded secrets from AWS Secrets Manager.
package secrets

import (
	"context"
	"math"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/EthM370/test-api-lambdas/internal/models"
	"github.com/EthM370/test-api-lambdas/internal/utils"
)

// SecretsManagerAPI is the subset of the Secrets Manager client used here.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Record is a decoded secret. Values are strings or float64 numbers.
type Record map[string]any

// String returns the value of key if it is a string.
func (r Record) String(key string) (string, bool) {
	v, ok := r[key].(string)
	return v, ok
}

// Int returns the value of key if it is a whole number.
func (r Record) Int(key string) (int, bool) {
	v, ok := r[key].(float64)
	if !ok || v != math.Trunc(v) {
		return 0, false
	}
	return int(v), true
}

// NewClient creates a Secrets Manager client from the default AWS config.
func NewClient(ctx context.Context, region string) (*secretsmanager.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load AWS config")
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

// Fetch retrieves the secret called name and decodes it as a JSON object.
// It makes a single attempt and returns nil on any failure, after logging why.
func Fetch(ctx context.Context, store SecretsManagerAPI, name string) Record {
	record, err := Load(ctx, store, name)
	if err == nil {
		return record
	}

	logger := utils.Unleveled(utils.LoggerFromContext(ctx)).With(utils.String("secret", name))
	switch {
	case errors.Is(err, models.ErrSecretNotFound):
		logger.Warn("Secret not found")
	case errors.Is(err, models.ErrSecretNotJSON):
		logger.Warn("Secret is not in valid JSON format")
	default:
		logger.Warn("Failed to fetch secret", utils.Error(err))
	}
	return nil
}

// Load is like Fetch but reports the failure instead of logging it.
func Load(ctx context.Context, store SecretsManagerAPI, name string) (Record, error) {
	out, err := store.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return nil, errors.Wrapf(models.ErrSecretNotFound, "secret %q", name)
		}
		return nil, errors.Wrapf(err, "failed to get secret %q", name)
	}

	if out == nil || out.SecretString == nil {
		return nil, errors.Wrapf(models.ErrSecretEmpty, "secret %q", name)
	}

	payload := *out.SecretString
	if !gjson.Valid(payload) {
		return nil, errors.Wrapf(models.ErrSecretNotJSON, "secret %q", name)
	}

	parsed := gjson.Parse(payload)
	if !parsed.IsObject() {
		return nil, errors.Wrapf(models.ErrSecretNotJSON, "secret %q", name)
	}

	record := Record{}
	parsed.ForEach(func(key, value gjson.Result) bool {
		record[key.String()] = value.Value()
		return true
	})
	return record, nil
}
