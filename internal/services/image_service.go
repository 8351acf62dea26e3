package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/markdave123-py/speechkit/internal/core"
	objectclient "github.com/markdave123-py/speechkit/internal/core/object-client"
	"github.com/markdave123-py/speechkit/internal/models"
)

type ImageService struct {
	fetcher core.Fetcher
	storage core.ObjectClient
	ttl     time.Duration
	log     zerolog.Logger
}

// NewImageService mints links valid for ttl, normally seven days.
func NewImageService(fetcher core.Fetcher, storage core.ObjectClient, ttl time.Duration, log zerolog.Logger) *ImageService {
	return &ImageService{fetcher: fetcher, storage: storage, ttl: ttl, log: log}
}

// FetchAndStore copies the resource at sourceURL into the bucket under key.
// On any failure the returned link is zero, so its URL is empty.
func (s *ImageService) FetchAndStore(ctx context.Context, sourceURL, key string) (models.PresignedURL, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return models.PresignedURL{}, fmt.Errorf("%w: empty key", core.ErrInvalidInput)
	}

	obj, err := s.fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		s.log.Warn().Err(err).Str("source", sourceURL).Msg("image fetch failed")
		return models.PresignedURL{}, err
	}

	link, err := objectclient.UploadAndPresign(ctx, s.storage, key, obj.Body, obj.ContentType, s.ttl)
	if err != nil {
		s.log.Warn().Err(err).Str("source", sourceURL).Str("key", key).Msg("image store failed")
		return models.PresignedURL{}, err
	}

	s.log.Info().Str("source", sourceURL).Str("key", key).Str("content_type", obj.ContentType).Msg("image stored")
	return link, nil
}
