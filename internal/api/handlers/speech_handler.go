package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/markdave123-py/speechkit/internal/models"
	"github.com/markdave123-py/speechkit/internal/services"
)

type SpeechHandler struct {
	speech *services.SpeechService
	log    zerolog.Logger
}

func NewSpeechHandler(speech *services.SpeechService, log zerolog.Logger) *SpeechHandler {
	return &SpeechHandler{speech: speech, log: log}
}

type speakRequest struct {
	Text       string `json:"text"`
	Key        string `json:"key"`
	Voice      string `json:"voice"`
	Language   string `json:"language"`
	TTLSeconds int    `json:"ttl_seconds"`
}

// Speak synthesizes the posted text and returns a link to the stored MP3.
func (h *SpeechHandler) Speak(w http.ResponseWriter, r *http.Request) {
	var req speakRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		badRequest(w, "text is required")
		return
	}
	if req.TTLSeconds < 0 {
		badRequest(w, "ttl_seconds must not be negative")
		return
	}

	key := req.Key
	if strings.TrimSpace(key) == "" {
		key = "audio/" + uuid.NewString() + ".mp3"
	}
	key, err := services.ObjectKey(key)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	link, err := h.speech.SpeakToURL(r.Context(), services.SpeakRequest{
		Text:     req.Text,
		Key:      key,
		Voice:    req.Voice,
		Language: req.Language,
		TTL:      time.Duration(req.TTLSeconds) * time.Second,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, models.NewStoredObject(key, link))
}
