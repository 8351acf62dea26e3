package core

import (
	"context"
	"time"

	"github.com/markdave123-py/speechkit/internal/models"
)

// ObjectClient defines interactions with S3 or any object storage.
// The bucket is fixed at construction so callers only deal in keys.
type ObjectClient interface {
	PutBytes(ctx context.Context, key string, data []byte, contentType string) error
	GetBytes(ctx context.Context, key string) ([]byte, error)

	// Presign mints a read link without checking the key exists.
	// ttl <= 0 means the client default.
	Presign(ctx context.Context, key string, ttl time.Duration) (models.PresignedURL, error)
}

// SecretProvider looks up one named field of the configured secret.
type SecretProvider interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// Fetcher downloads a remote resource in full.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*models.FetchedObject, error)
}
