package core

import (
	"context"

	"github.com/markdave123-py/speechkit/internal/models"
)

// SpeechSynthesizer turns text into audio. Empty voice or language fall
// back to the synthesizer's configured defaults.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, voice, language string) (*models.AudioStream, error)
}
