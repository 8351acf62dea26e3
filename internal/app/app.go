package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/markdave123-py/speechkit/internal/config"
	"github.com/markdave123-py/speechkit/internal/core"
	"github.com/markdave123-py/speechkit/internal/core/awsclient"
	"github.com/markdave123-py/speechkit/internal/core/fetcher"
	secretclient "github.com/markdave123-py/speechkit/internal/core/secret-client"
	"github.com/markdave123-py/speechkit/internal/core/speech"
	"github.com/markdave123-py/speechkit/internal/core/textfile"
	"github.com/markdave123-py/speechkit/internal/infra/metrics"
	"github.com/markdave123-py/speechkit/internal/services"
)

// App holds every long-lived client. All of them are safe for concurrent use.
type App struct {
	Config   *config.Config
	Log      zerolog.Logger
	Registry *prometheus.Registry

	Secrets core.SecretProvider
	Storage core.ObjectClient

	Speech    *services.SpeechService
	Images    *services.ImageService
	Documents *services.DocumentService

	Server *Server
}

func NewApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := metrics.Register(reg); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	awsCfg, err := awsclient.Load(ctx, cfg)
	if err != nil {
		return nil, err
	}

	storage, err := newObjectClient(awsCfg, cfg, log)
	if err != nil {
		return nil, err
	}
	log.Info().Str("backend", cfg.StoreBackend).Msg("object client initialized and ready")

	synth := speech.NewPollySynthesizer(awsCfg, cfg, log)
	httpFetcher := fetcher.NewHTTPFetcher(cfg, log)

	speechSvc := services.NewSpeechService(synth, storage, textfile.Reader{}, log)
	imageSvc := services.NewImageService(httpFetcher, storage, cfg.ImagePresignTTL, log)
	docSvc := services.NewDocumentService(storage)

	return &App{
		Config:    cfg,
		Log:       log,
		Registry:  reg,
		Secrets:   secretclient.NewSecretsManagerClient(awsCfg, cfg.CallTimeout, log),
		Storage:   storage,
		Speech:    speechSvc,
		Images:    imageSvc,
		Documents: docSvc,
		Server:    NewServer(cfg, log, reg, speechSvc, imageSvc, docSvc),
	}, nil
}
