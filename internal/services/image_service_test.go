package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/speechkit/internal/core"
	"github.com/markdave123-py/speechkit/internal/models"
	"github.com/markdave123-py/speechkit/internal/services"
)

const week = 7 * 24 * time.Hour

func TestFetchAndStore(t *testing.T) {
	store := newMemStore()
	f := &fakeFetcher{obj: &models.FetchedObject{Body: []byte("png"), ContentType: "image/png", StatusCode: 200}}
	svc := services.NewImageService(f, store, week, zerolog.Nop())

	link, err := svc.FetchAndStore(context.Background(), "https://example.com/cat.png", "images/cat.png")
	require.NoError(t, err)
	assert.Contains(t, link.URL, "images/cat.png")
	assert.Contains(t, link.URL, "X-Amz-Expires=604800")

	require.Len(t, store.puts, 1)
	assert.Equal(t, "image/png", store.puts[0].contentType)
}

func TestFetchAndStoreNotFoundGivesEmptyURL(t *testing.T) {
	store := newMemStore()
	f := &fakeFetcher{err: fmt.Errorf("%w: status 404", core.ErrFetch)}
	svc := services.NewImageService(f, store, week, zerolog.Nop())

	link, err := svc.FetchAndStore(context.Background(), "https://example.com/missing.png", "images/missing.png")
	assert.ErrorIs(t, err, core.ErrFetch)
	assert.Equal(t, "", link.String())
	assert.Empty(t, store.puts)
}

func TestFetchAndStoreWriteFailure(t *testing.T) {
	store := newMemStore()
	store.FailPut = true
	f := &fakeFetcher{obj: &models.FetchedObject{Body: []byte("png"), ContentType: "image/png"}}
	svc := services.NewImageService(f, store, week, zerolog.Nop())

	link, err := svc.FetchAndStore(context.Background(), "https://example.com/cat.png", "images/cat.png")
	assert.ErrorIs(t, err, core.ErrStoreWrite)
	assert.Empty(t, link.URL)
}
