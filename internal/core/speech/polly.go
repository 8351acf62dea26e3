package speech

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/rs/zerolog"

	cfg "github.com/markdave123-py/speechkit/internal/config"
	"github.com/markdave123-py/speechkit/internal/core"
	"github.com/markdave123-py/speechkit/internal/infra/metrics"
	"github.com/markdave123-py/speechkit/internal/models"
)

const mp3ContentType = "audio/mpeg"

// PollyAPI is the part of *polly.Client used here.
type PollyAPI interface {
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
}

type PollySynthesizer struct {
	api      PollyAPI
	voice    string
	language string
	engine   string
	timeout  time.Duration
	log      zerolog.Logger
}

var _ core.SpeechSynthesizer = (*PollySynthesizer)(nil)

func NewPollySynthesizer(awsCfg aws.Config, c *cfg.Config, log zerolog.Logger) *PollySynthesizer {
	return New(polly.NewFromConfig(awsCfg), c, log)
}

// New builds a synthesizer with voice, language and engine defaults taken from c.
func New(api PollyAPI, c *cfg.Config, log zerolog.Logger) *PollySynthesizer {
	return &PollySynthesizer{
		api:      api,
		voice:    c.SpeechVoice,
		language: c.SpeechLanguage,
		engine:   c.SpeechEngine,
		timeout:  c.CallTimeout,
		log:      log.With().Str("component", "polly").Logger(),
	}
}

// Synthesize requests MP3 speech for text. The returned stream must be read
// with ReadAll, which also releases the connection.
func (p *PollySynthesizer) Synthesize(ctx context.Context, text, voice, language string) (_ *models.AudioStream, err error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %w: empty text", core.ErrSynthesis, core.ErrInvalidInput)
	}

	defer metrics.ObserveCall("polly", "synthesize_speech", time.Now(), &err)

	if voice == "" {
		voice = p.voice
	}
	if language == "" {
		language = p.language
	}

	in := &polly.SynthesizeSpeechInput{
		Text:         aws.String(text),
		OutputFormat: types.OutputFormatMp3,
		VoiceId:      types.VoiceId(voice),
		LanguageCode: types.LanguageCode(language),
	}
	if p.engine != "" {
		in.Engine = types.Engine(p.engine)
	}

	// The timeout covers the request only; the body outlives it, so the
	// cancel is handed to the stream instead of deferred here.
	ctxCall, cancel := context.WithTimeout(ctx, p.timeout)
	out, err := p.api.SynthesizeSpeech(ctxCall, in)
	if err != nil {
		cancel()
		p.log.Warn().Err(err).Str("voice", voice).Str("language", language).Msg("synthesize speech failed")
		return nil, fmt.Errorf("%w: voice %s: %w", core.ErrSynthesis, voice, err)
	}

	contentType := aws.ToString(out.ContentType)
	if contentType == "" {
		contentType = mp3ContentType
	}
	p.log.Debug().Str("voice", voice).Int32("characters", out.RequestCharacters).Msg("speech synthesized")

	return models.NewAudioStream(&cancelOnClose{ReadCloser: out.AudioStream, cancel: cancel}, contentType), nil
}
