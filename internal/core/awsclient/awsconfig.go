// Package awsclient builds the shared aws.Config every AWS-backed client is
// constructed from, so region, credentials and retry policy are decided once.
package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	cfg "github.com/markdave123-py/speechkit/internal/config"
)

// Load resolves the AWS configuration for the process. Static keys are used
// when both are set; otherwise the default credential chain applies.
func Load(ctx context.Context, c *cfg.Config) (aws.Config, error) {
	if c.AwsRegion == "" {
		return aws.Config{}, fmt.Errorf("AWS_REGION not set")
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(c.AwsRegion),
		config.WithRetryer(func() aws.Retryer {
			return NewRetryer(c)
		}),
	}
	if c.AwsAccessKey != "" && c.AwsSecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AwsAccessKey, c.AwsSecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsCfg, nil
}

// NewRetryer is the bounded exponential-backoff policy applied to every AWS call.
func NewRetryer(c *cfg.Config) aws.Retryer {
	return retry.NewStandard(func(o *retry.StandardOptions) {
		if c.RetryMaxAttempts > 0 {
			o.MaxAttempts = c.RetryMaxAttempts
		}
		if c.RetryMaxBackoff > 0 {
			o.MaxBackoff = c.RetryMaxBackoff
		}
	})
}
