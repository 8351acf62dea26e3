package objectclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/markdave123-py/speechkit/internal/core"
	"github.com/markdave123-py/speechkit/internal/models"
)

const (
	// MaxPresignTTL is the longest validity SigV4 accepts.
	MaxPresignTTL = 7 * 24 * time.Hour

	DefaultContentType = "application/octet-stream"
	JSONContentType    = "application/json"
)

// PutJSON serializes v and stores it under key as application/json.
func PutJSON(ctx context.Context, store core.ObjectClient, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", core.ErrEncode, key, err)
	}
	return store.PutBytes(ctx, key, data, JSONContentType)
}

// GetJSON reads key and decodes it into out. Numbers decoded into interface
// values are json.Number so large integers survive a round trip.
func GetJSON(ctx context.Context, store core.ObjectClient, key string, out any) error {
	data, err := store.GetBytes(ctx, key)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %w", core.ErrDecode, key, err)
	}
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		return fmt.Errorf("%w: %s: trailing data after JSON value", core.ErrDecode, key)
	}
	return nil
}

// UploadAndPresign stores data and returns a read link for it. No link is
// minted when the write fails.
func UploadAndPresign(ctx context.Context, store core.ObjectClient, key string, data []byte, contentType string, ttl time.Duration) (models.PresignedURL, error) {
	if err := store.PutBytes(ctx, key, data, contentType); err != nil {
		return models.PresignedURL{}, err
	}
	return store.Presign(ctx, key, ttl)
}

func resolveTTL(ttl, def time.Duration) time.Duration {
	if ttl <= 0 {
		ttl = def
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	if ttl > MaxPresignTTL {
		ttl = MaxPresignTTL
	}
	return ttl
}

func contentTypeOrDefault(ct string) string {
	if ct == "" {
		return DefaultContentType
	}
	return ct
}
