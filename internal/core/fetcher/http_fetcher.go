package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	cfg "github.com/markdave123-py/speechkit/internal/config"
	"github.com/markdave123-py/speechkit/internal/core"
	"github.com/markdave123-py/speechkit/internal/infra/metrics"
	"github.com/markdave123-py/speechkit/internal/models"
)

const userAgent = "speechkit-fetcher/1.0"

// HTTPFetcher downloads remote resources with bounded retries.
type HTTPFetcher struct {
	client *resty.Client
	log    zerolog.Logger
}

var _ core.Fetcher = (*HTTPFetcher)(nil)

func NewHTTPFetcher(c *cfg.Config, log zerolog.Logger) *HTTPFetcher {
	attempts := c.RetryMaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	client := resty.New().
		SetTimeout(c.CallTimeout).
		SetHeader("User-Agent", userAgent).
		SetRetryCount(attempts - 1).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(maxWait(c.RetryMaxBackoff)).
		AddRetryCondition(retryable)

	return &HTTPFetcher{
		client: client,
		log:    log.With().Str("component", "fetcher").Logger(),
	}
}

// Fetch GETs url and returns the full body. Any non-2xx answer is an error.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (_ *models.FetchedObject, err error) {
	if url == "" {
		return nil, fmt.Errorf("%w: %w: empty url", core.ErrFetch, core.ErrInvalidInput)
	}

	defer metrics.ObserveCall("http", "fetch", time.Now(), &err)

	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		f.log.Warn().Err(err).Str("url", url).Msg("fetch failed")
		return nil, fmt.Errorf("%w: %s: %w", core.ErrFetch, url, err)
	}
	if !resp.IsSuccess() {
		f.log.Warn().Int("status", resp.StatusCode()).Str("url", url).Msg("fetch returned non-success status")
		return nil, fmt.Errorf("%w: %s: status %d", core.ErrFetch, url, resp.StatusCode())
	}

	body := resp.Body()
	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	return &models.FetchedObject{
		Body:        body,
		ContentType: contentType,
		StatusCode:  resp.StatusCode(),
	}, nil
}

func retryable(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	code := r.StatusCode()
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func maxWait(d time.Duration) time.Duration {
	if d <= 0 {
		return 2 * time.Second
	}
	return d
}
