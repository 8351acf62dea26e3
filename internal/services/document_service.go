package services

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/markdave123-py/speechkit/internal/core"
	objectclient "github.com/markdave123-py/speechkit/internal/core/object-client"
	"github.com/markdave123-py/speechkit/internal/models"
)

// DocumentService stores small JSON documents and hands out links to any key.
type DocumentService struct {
	storage core.ObjectClient
}

func NewDocumentService(storage core.ObjectClient) *DocumentService {
	return &DocumentService{storage: storage}
}

// Put validates doc as JSON and stores it under key.
func (s *DocumentService) Put(ctx context.Context, key string, doc json.RawMessage) error {
	key, err := ObjectKey(key)
	if err != nil {
		return err
	}
	if !json.Valid(doc) {
		return fmt.Errorf("%w: %s: body is not JSON", core.ErrDecode, key)
	}
	return objectclient.PutJSON(ctx, s.storage, key, doc)
}

func (s *DocumentService) Get(ctx context.Context, key string) (json.RawMessage, error) {
	key, err := ObjectKey(key)
	if err != nil {
		return nil, err
	}
	var doc json.RawMessage
	if err := objectclient.GetJSON(ctx, s.storage, key, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) Presign(ctx context.Context, key string, ttl time.Duration) (models.StoredObject, error) {
	key, err := ObjectKey(key)
	if err != nil {
		return models.StoredObject{}, err
	}
	link, err := s.storage.Presign(ctx, key, ttl)
	if err != nil {
		return models.StoredObject{}, err
	}
	return models.NewStoredObject(key, link), nil
}

// ObjectKey normalizes a caller-supplied key: no leading slash, no ".."
// segments, no empty key. Dots inside a name are fine.
func ObjectKey(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, seg := range strings.Split(raw, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: key %q has a .. segment", core.ErrInvalidInput, raw)
		}
	}
	key := strings.TrimPrefix(path.Clean("/"+raw), "/")
	if key == "" {
		return "", fmt.Errorf("%w: empty key", core.ErrInvalidInput)
	}
	return key, nil
}
