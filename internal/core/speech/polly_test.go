package speech_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/speechkit/internal/config"
	"github.com/markdave123-py/speechkit/internal/core"
	"github.com/markdave123-py/speechkit/internal/core/speech"
	"github.com/markdave123-py/speechkit/internal/infra/metrics"
	"github.com/markdave123-py/speechkit/internal/models"
)

type mockPolly struct {
	ShouldFail bool
	calls      int
	last       *polly.SynthesizeSpeechInput
}

func (m *mockPolly) SynthesizeSpeech(_ context.Context, in *polly.SynthesizeSpeechInput, _ ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error) {
	m.calls++
	m.last = in
	if m.ShouldFail {
		return nil, errors.New("ThrottlingException")
	}
	return &polly.SynthesizeSpeechOutput{
		AudioStream: io.NopCloser(bytes.NewReader([]byte("ID3fake-mp3"))),
		ContentType: aws.String("audio/mpeg"),
	}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		SpeechVoice:    "Matthew",
		SpeechLanguage: "en-US",
		SpeechEngine:   "neural",
		CallTimeout:    time.Second,
	}
}

func TestSynthesizeRequestsMP3(t *testing.T) {
	api := &mockPolly{}
	s := speech.New(api, testConfig(), zerolog.Nop())

	audio, err := s.Synthesize(context.Background(), "Hello", "Joanna", "en-GB")
	require.NoError(t, err)
	assert.Equal(t, "audio/mpeg", audio.ContentType)

	data, err := audio.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "ID3fake-mp3", string(data))

	require.Equal(t, 1, api.calls)
	assert.Equal(t, types.OutputFormatMp3, api.last.OutputFormat)
	assert.Equal(t, types.VoiceId("Joanna"), api.last.VoiceId)
	assert.Equal(t, types.LanguageCode("en-GB"), api.last.LanguageCode)
	assert.Equal(t, types.Engine("neural"), api.last.Engine)
	assert.Equal(t, "Hello", aws.ToString(api.last.Text))
}

func TestSynthesizeFallsBackToDefaults(t *testing.T) {
	api := &mockPolly{}
	s := speech.New(api, testConfig(), zerolog.Nop())

	_, err := s.Synthesize(context.Background(), "Hello", "", "")
	require.NoError(t, err)
	assert.Equal(t, types.VoiceId("Matthew"), api.last.VoiceId)
	assert.Equal(t, types.LanguageCode("en-US"), api.last.LanguageCode)
}

func TestSynthesizeStreamReadOnce(t *testing.T) {
	s := speech.New(&mockPolly{}, testConfig(), zerolog.Nop())

	audio, err := s.Synthesize(context.Background(), "Hi", "", "")
	require.NoError(t, err)
	_, err = audio.ReadAll()
	require.NoError(t, err)

	_, err = audio.ReadAll()
	assert.ErrorIs(t, err, models.ErrStreamConsumed)
}

func TestSynthesizeBackendFailure(t *testing.T) {
	s := speech.New(&mockPolly{ShouldFail: true}, testConfig(), zerolog.Nop())

	audio, err := s.Synthesize(context.Background(), "Hello", "", "")
	assert.Nil(t, audio)
	assert.ErrorIs(t, err, core.ErrSynthesis)
}

func TestSynthesizeEmptyText(t *testing.T) {
	api := &mockPolly{}
	s := speech.New(api, testConfig(), zerolog.Nop())

	failures := metrics.ExternalCallErrorsTotal.WithLabelValues("polly", "synthesize_speech")
	before := testutil.ToFloat64(failures)

	_, err := s.Synthesize(context.Background(), "   ", "", "")
	assert.ErrorIs(t, err, core.ErrSynthesis)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Zero(t, api.calls)
	assert.Equal(t, before, testutil.ToFloat64(failures))
}
