package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/markdave123-py/speechkit/internal/services"
)

const maxDocumentBytes = 4 << 20

type DocumentHandler struct {
	docs *services.DocumentService
	log  zerolog.Logger
}

func NewDocumentHandler(docs *services.DocumentService, log zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{docs: docs, log: log}
}

// PutDocument stores the JSON request body under the wildcard key.
func (h *DocumentHandler) PutDocument(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "document too large"})
			return
		}
		badRequest(w, "could not read body")
		return
	}

	if err := h.docs.Put(r.Context(), chi.URLParam(r, "*"), body); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.docs.Get(r.Context(), chi.URLParam(r, "*"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(doc)
}

// Presign returns a link for any key; the object does not have to exist.
func (h *DocumentHandler) Presign(w http.ResponseWriter, r *http.Request) {
	var ttl time.Duration
	if raw := r.URL.Query().Get("ttl_seconds"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs < 0 {
			badRequest(w, "ttl_seconds must be a non-negative integer")
			return
		}
		ttl = time.Duration(secs) * time.Second
	}

	obj, err := h.docs.Presign(r.Context(), chi.URLParam(r, "*"), ttl)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, obj)
}
