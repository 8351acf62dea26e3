package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/speechkit/internal/core"
	"github.com/markdave123-py/speechkit/internal/services"
)

func TestDocumentPutGet(t *testing.T) {
	store := newMemStore()
	svc := services.NewDocumentService(store)
	ctx := context.Background()

	require.NoError(t, svc.Put(ctx, "/settings/voices.json", json.RawMessage(`{"default": "Joanna", "rate": 1.1}`)))

	doc, err := svc.Get(ctx, "settings/voices.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"default":"Joanna","rate":1.1}`, string(doc))
	assert.Equal(t, "application/json", store.puts[0].contentType)
}

func TestDocumentPutRejectsInvalidJSON(t *testing.T) {
	store := newMemStore()
	svc := services.NewDocumentService(store)

	err := svc.Put(context.Background(), "a.json", json.RawMessage(`{oops`))
	assert.ErrorIs(t, err, core.ErrDecode)
	assert.Empty(t, store.puts)
}

func TestDocumentGetMissing(t *testing.T) {
	svc := services.NewDocumentService(newMemStore())

	_, err := svc.Get(context.Background(), "nope.json")
	assert.ErrorIs(t, err, core.ErrObjectNotFound)
}

func TestDocumentPresign(t *testing.T) {
	svc := services.NewDocumentService(newMemStore())

	obj, err := svc.Presign(context.Background(), "reports/q1.json", 5*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "reports/q1.json", obj.Key)
	assert.Contains(t, obj.URL, "reports/q1.json")
}

func TestObjectKey(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "audio/a.mp3", want: "audio/a.mp3"},
		{in: "/audio//a.mp3", want: "audio/a.mp3"},
		{in: " docs/x.json ", want: "docs/x.json"},
		{in: "", wantErr: true},
		{in: "/", wantErr: true},
		{in: "take..two.mp3", want: "take..two.mp3"},
		{in: "audio/..hidden/a.mp3", want: "audio/..hidden/a.mp3"},
		{in: "../etc/passwd", wantErr: true},
		{in: "audio/../../x", wantErr: true},
		{in: "audio/..", wantErr: true},
	}
	for _, tc := range cases {
		got, err := services.ObjectKey(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, core.ErrInvalidInput, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}
}

func TestDocumentGetPreservesNumbers(t *testing.T) {
	svc := services.NewDocumentService(newMemStore())
	ctx := context.Background()

	require.NoError(t, svc.Put(ctx, "ids.json", json.RawMessage(`{"id":12345678901234567890}`)))

	doc, err := svc.Get(ctx, "ids.json")
	require.NoError(t, err)
	assert.Equal(t, `{"id":12345678901234567890}`, string(doc))
}
