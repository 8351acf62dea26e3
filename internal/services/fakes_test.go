package services_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/markdave123-py/speechkit/internal/core"
	"github.com/markdave123-py/speechkit/internal/models"
)

const testBucket = "speechkit-test"

type putCall struct {
	key         string
	contentType string
	data        []byte
}

// memStore is an in-memory core.ObjectClient.
type memStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	puts      []putCall
	presigned []string
	FailPut   bool
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (m *memStore) PutBytes(_ context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailPut {
		return fmt.Errorf("%w: simulated", core.ErrStoreWrite)
	}
	m.objects[key] = append([]byte(nil), data...)
	m.puts = append(m.puts, putCall{key: key, contentType: contentType, data: data})
	return nil
}

func (m *memStore) GetBytes(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %w: %s", core.ErrStoreRead, core.ErrObjectNotFound, key)
	}
	return data, nil
}

func (m *memStore) Presign(_ context.Context, key string, ttl time.Duration) (models.PresignedURL, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ttl <= 0 {
		ttl = time.Hour
	}
	m.presigned = append(m.presigned, key)
	return models.PresignedURL{
		URL:       fmt.Sprintf("https://%s.s3.us-east-2.amazonaws.com/%s?X-Amz-Expires=%d", testBucket, key, int(ttl.Seconds())),
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

type synthCall struct {
	text, voice, language string
}

type fakeSynth struct {
	calls      []synthCall
	ShouldFail bool
}

func (f *fakeSynth) Synthesize(_ context.Context, text, voice, language string) (*models.AudioStream, error) {
	f.calls = append(f.calls, synthCall{text, voice, language})
	if f.ShouldFail {
		return nil, fmt.Errorf("%w: simulated", core.ErrSynthesis)
	}
	return models.NewAudioStream(io.NopCloser(bytes.NewReader([]byte("ID3"+text))), "audio/mpeg"), nil
}

type fakeFetcher struct {
	obj *models.FetchedObject
	err error
}

func (f *fakeFetcher) Fetch(context.Context, string) (*models.FetchedObject, error) {
	return f.obj, f.err
}

type fakeReader struct {
	text string
}

func (f fakeReader) Read(path string) (string, error) {
	if f.text == "" {
		return "", fmt.Errorf("%w: %s", core.ErrInvalidInput, path)
	}
	return f.text, nil
}
