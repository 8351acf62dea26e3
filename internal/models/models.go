package models

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// ErrStreamConsumed is returned when an AudioStream is read a second time.
var ErrStreamConsumed = errors.New("audio stream already consumed")

// PresignedURL is a time-limited GET capability for one stored object.
type PresignedURL struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// String returns the raw URL, empty when the link was never minted.
func (p PresignedURL) String() string {
	return p.URL
}

// AudioStream is synthesized speech handed from the synthesizer to its caller.
// It can be read exactly once.
type AudioStream struct {
	ContentType string

	mu       sync.Mutex
	body     io.ReadCloser
	consumed bool
}

// NewAudioStream wraps a backend response body.
func NewAudioStream(body io.ReadCloser, contentType string) *AudioStream {
	return &AudioStream{ContentType: contentType, body: body}
}

// ReadAll drains and closes the stream.
func (a *AudioStream) ReadAll() ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.consumed {
		return nil, ErrStreamConsumed
	}
	a.consumed = true

	if a.body == nil {
		return nil, nil
	}
	defer a.body.Close()

	data, err := io.ReadAll(a.body)
	if err != nil {
		return nil, fmt.Errorf("read audio stream: %w", err)
	}
	return data, nil
}

// FetchedObject is the body and declared type of a remote resource.
type FetchedObject struct {
	Body        []byte
	ContentType string
	StatusCode  int
}

// StoredObject describes where a payload landed and how to read it back.
type StoredObject struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewStoredObject pairs a key with the link minted for it.
func NewStoredObject(key string, link PresignedURL) StoredObject {
	return StoredObject{Key: key, URL: link.URL, ExpiresAt: link.ExpiresAt}
}
