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

const AudioContentType = "audio/mpeg"

// SpeakRequest describes one text-to-speech job. Empty voice and language use
// the synthesizer defaults; a zero TTL uses the store default.
type SpeakRequest struct {
	Text     string
	Key      string
	Voice    string
	Language string
	TTL      time.Duration
}

type SpeechService struct {
	synth   core.SpeechSynthesizer
	storage core.ObjectClient
	reader  core.TextReader
	log     zerolog.Logger
}

func NewSpeechService(synth core.SpeechSynthesizer, storage core.ObjectClient, reader core.TextReader, log zerolog.Logger) *SpeechService {
	return &SpeechService{synth: synth, storage: storage, reader: reader, log: log}
}

// SpeakToURL synthesizes req.Text, stores the MP3 under req.Key and returns a
// link to it. If the upload fails the audio is dropped.
func (s *SpeechService) SpeakToURL(ctx context.Context, req SpeakRequest) (models.PresignedURL, error) {
	key := strings.TrimSpace(req.Key)
	if key == "" {
		return models.PresignedURL{}, fmt.Errorf("%w: empty key", core.ErrInvalidInput)
	}

	audio, err := s.synth.Synthesize(ctx, req.Text, req.Voice, req.Language)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("speech synthesis failed")
		return models.PresignedURL{}, err
	}
	data, err := audio.ReadAll()
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("reading synthesized audio failed")
		return models.PresignedURL{}, fmt.Errorf("%w: %w", core.ErrSynthesis, err)
	}

	link, err := objectclient.UploadAndPresign(ctx, s.storage, key, data, AudioContentType, req.TTL)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("storing synthesized audio failed")
		return models.PresignedURL{}, err
	}

	s.log.Info().Str("key", key).Int("bytes", len(data)).Str("url", link.URL).Msg("speech ready")
	return link, nil
}

// SpeakFileToURL is SpeakToURL with the text read from path.
func (s *SpeechService) SpeakFileToURL(ctx context.Context, path string, req SpeakRequest) (models.PresignedURL, error) {
	text, err := s.reader.Read(path)
	if err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("reading script failed")
		return models.PresignedURL{}, err
	}
	req.Text = text
	return s.SpeakToURL(ctx, req)
}
