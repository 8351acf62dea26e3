package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/markdave123-py/speechkit/internal/models"
	"github.com/markdave123-py/speechkit/internal/services"
)

type ImageHandler struct {
	images *services.ImageService
	log    zerolog.Logger
}

func NewImageHandler(images *services.ImageService, log zerolog.Logger) *ImageHandler {
	return &ImageHandler{images: images, log: log}
}

type storeImageRequest struct {
	SourceURL string `json:"source_url"`
	Key       string `json:"key"`
}

func (h *ImageHandler) Store(w http.ResponseWriter, r *http.Request) {
	var req storeImageRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	u, err := url.Parse(req.SourceURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		badRequest(w, "source_url must be an absolute http(s) URL")
		return
	}

	key := req.Key
	if strings.TrimSpace(key) == "" {
		key = "images/" + uuid.NewString()
	}
	key, err = services.ObjectKey(key)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	link, err := h.images.FetchAndStore(r.Context(), req.SourceURL, key)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, models.NewStoredObject(key, link))
}
