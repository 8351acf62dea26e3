package objectclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"

	cfg "github.com/markdave123-py/speechkit/internal/config"
	"github.com/markdave123-py/speechkit/internal/core"
	"github.com/markdave123-py/speechkit/internal/infra/metrics"
	"github.com/markdave123-py/speechkit/internal/models"
)

// S3API is what the uploader and reads need from *s3.Client.
type S3API interface {
	manager.UploadAPIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Presigner is satisfied by *s3.PresignClient.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type S3Client struct {
	api        S3API
	uploader   *manager.Uploader
	presigner  Presigner
	bucket     string
	defaultTTL time.Duration
	timeout    time.Duration
	log        zerolog.Logger
}

var _ core.ObjectClient = (*S3Client)(nil)

// NewS3Client builds the bucket client from a loaded AWS config. S3_ENDPOINT
// points it at an S3-compatible service instead of AWS.
func NewS3Client(awsCfg aws.Config, c *cfg.Config, log zerolog.Logger) (*S3Client, error) {
	if c.BucketName == "" {
		return nil, fmt.Errorf("S3 bucket name not set")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if c.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(c.S3Endpoint)
		}
		o.UsePathStyle = c.S3UsePathStyle
	})

	s := New(client, s3.NewPresignClient(client), c.BucketName, c.PresignTTL, c.CallTimeout, log)
	s.log.Info().Str("bucket", c.BucketName).Str("region", awsCfg.Region).Msg("S3 client ready")
	return s, nil
}

// New wires the client around explicit API implementations.
func New(api S3API, presigner Presigner, bucket string, defaultTTL, timeout time.Duration, log zerolog.Logger) *S3Client {
	return &S3Client{
		api:        api,
		uploader:   manager.NewUploader(api),
		presigner:  presigner,
		bucket:     bucket,
		defaultTTL: defaultTTL,
		timeout:    timeout,
		log:        log.With().Str("component", "s3").Logger(),
	}
}

// PutBytes writes data under key, replacing any existing object.
func (c *S3Client) PutBytes(ctx context.Context, key string, data []byte, contentType string) (err error) {
	if key == "" {
		return fmt.Errorf("%w: empty key", core.ErrInvalidInput)
	}

	defer metrics.ObserveCall("s3", "put_object", time.Now(), &err)

	ctxUpload, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err = c.uploader.Upload(ctxUpload, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentTypeOrDefault(contentType)),
	})
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("s3 upload failed")
		return fmt.Errorf("%w: s3://%s/%s: %w", core.ErrStoreWrite, c.bucket, key, err)
	}

	c.log.Debug().Str("key", key).Int("bytes", len(data)).Msg("object stored")
	return nil
}

// GetBytes reads the whole object at key.
func (c *S3Client) GetBytes(ctx context.Context, key string) (_ []byte, err error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty key", core.ErrInvalidInput)
	}

	defer metrics.ObserveCall("s3", "get_object", time.Now(), &err)

	ctxGet, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.GetObject(ctxGet, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %w: s3://%s/%s", core.ErrStoreRead, core.ErrObjectNotFound, c.bucket, key)
		}
		return nil, fmt.Errorf("%w: s3://%s/%s: %w", core.ErrStoreRead, c.bucket, key, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", core.ErrStoreRead, err)
	}

	return body, nil
}

// Presign signs a GET for key locally. The object need not exist yet.
func (c *S3Client) Presign(ctx context.Context, key string, ttl time.Duration) (_ models.PresignedURL, err error) {
	if key == "" {
		return models.PresignedURL{}, fmt.Errorf("%w: empty key", core.ErrInvalidInput)
	}

	defer metrics.ObserveCall("s3", "presign_get", time.Now(), &err)

	ttl = resolveTTL(ttl, c.defaultTTL)

	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return models.PresignedURL{}, fmt.Errorf("%w: presign s3://%s/%s: %w", core.ErrStoreRead, c.bucket, key, err)
	}

	return models.PresignedURL{URL: req.URL, ExpiresAt: time.Now().Add(ttl)}, nil
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
