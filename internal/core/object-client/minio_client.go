package objectclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"

	cfg "github.com/markdave123-py/speechkit/internal/config"
	"github.com/markdave123-py/speechkit/internal/core"
	"github.com/markdave123-py/speechkit/internal/infra/metrics"
	"github.com/markdave123-py/speechkit/internal/models"
)

// MinioClient stores objects on a MinIO (or other S3-compatible) server.
type MinioClient struct {
	client     *minio.Client
	bucket     string
	defaultTTL time.Duration
	timeout    time.Duration
	log        zerolog.Logger
}

var _ core.ObjectClient = (*MinioClient)(nil)

func NewMinioClient(c *cfg.Config, log zerolog.Logger) (*MinioClient, error) {
	if c.MinioEndpoint == "" {
		return nil, fmt.Errorf("MINIO_ENDPOINT not set")
	}
	if c.BucketName == "" {
		return nil, fmt.Errorf("bucket name not set")
	}

	// An explicit region keeps presigning offline; otherwise minio-go asks the
	// server for the bucket location first.
	client, err := minio.New(c.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AwsAccessKey, c.AwsSecretKey, ""),
		Secure: c.MinioUseSSL,
		Region: c.AwsRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	m := &MinioClient{
		client:     client,
		bucket:     c.BucketName,
		defaultTTL: c.PresignTTL,
		timeout:    c.CallTimeout,
		log:        log.With().Str("component", "minio").Logger(),
	}
	m.log.Info().Str("endpoint", c.MinioEndpoint).Str("bucket", c.BucketName).Msg("MinIO client ready")
	return m, nil
}

func (m *MinioClient) PutBytes(ctx context.Context, key string, data []byte, contentType string) (err error) {
	if key == "" {
		return fmt.Errorf("%w: empty key", core.ErrInvalidInput)
	}

	defer metrics.ObserveCall("minio", "put_object", time.Now(), &err)

	ctxPut, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	_, err = m.client.PutObject(ctxPut, m.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentTypeOrDefault(contentType),
	})
	if err != nil {
		m.log.Warn().Err(err).Str("key", key).Msg("minio upload failed")
		return fmt.Errorf("%w: %s/%s: %w", core.ErrStoreWrite, m.bucket, key, err)
	}
	return nil
}

func (m *MinioClient) GetBytes(ctx context.Context, key string) (_ []byte, err error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", core.ErrInvalidInput)
	}

	defer metrics.ObserveCall("minio", "get_object", time.Now(), &err)

	ctxGet, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	obj, err := m.client.GetObject(ctxGet, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, m.readErr(key, err)
	}
	defer obj.Close()

	// GetObject is lazy; Stat performs the request.
	if _, err := obj.Stat(); err != nil {
		return nil, m.readErr(key, err)
	}

	body, err := io.ReadAll(obj)
	if err != nil {
		return nil, m.readErr(key, err)
	}
	return body, nil
}

func (m *MinioClient) Presign(ctx context.Context, key string, ttl time.Duration) (_ models.PresignedURL, err error) {
	if key == "" {
		return models.PresignedURL{}, fmt.Errorf("%w: empty key", core.ErrInvalidInput)
	}

	defer metrics.ObserveCall("minio", "presign_get", time.Now(), &err)

	ttl = resolveTTL(ttl, m.defaultTTL)

	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, ttl, nil)
	if err != nil {
		return models.PresignedURL{}, fmt.Errorf("%w: presign %s/%s: %w", core.ErrStoreRead, m.bucket, key, err)
	}
	return models.PresignedURL{URL: u.String(), ExpiresAt: time.Now().Add(ttl)}, nil
}

func (m *MinioClient) readErr(key string, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w: %s/%s", core.ErrStoreRead, core.ErrObjectNotFound, m.bucket, key)
	}
	return fmt.Errorf("%w: %s/%s: %w", core.ErrStoreRead, m.bucket, key, err)
}
