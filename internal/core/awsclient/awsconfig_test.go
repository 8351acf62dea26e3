package awsclient_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/speechkit/internal/config"
	"github.com/markdave123-py/speechkit/internal/core/awsclient"
)

func TestLoadUsesStaticCredentials(t *testing.T) {
	c := &config.Config{
		AwsRegion:        "us-west-2",
		AwsAccessKey:     "AKIDEXAMPLE",
		AwsSecretKey:     "secret",
		RetryMaxAttempts: 4,
		RetryMaxBackoff:  2 * time.Second,
	}

	awsCfg, err := awsclient.Load(context.Background(), c)
	require.NoError(t, err)

	assert.Equal(t, "us-west-2", awsCfg.Region)
	creds, err := awsCfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIDEXAMPLE", creds.AccessKeyID)
	assert.Equal(t, 4, awsCfg.Retryer().MaxAttempts())
}

func TestLoadRequiresRegion(t *testing.T) {
	_, err := awsclient.Load(context.Background(), &config.Config{})
	require.Error(t, err)
}

func TestNewRetryerKeepsSDKDefaultsWhenUnset(t *testing.T) {
	r := awsclient.NewRetryer(&config.Config{})
	assert.Equal(t, 3, r.MaxAttempts())
}
