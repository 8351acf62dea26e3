package app

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/rs/zerolog"

	"github.com/markdave123-py/speechkit/internal/config"
	"github.com/markdave123-py/speechkit/internal/core"
	objectclient "github.com/markdave123-py/speechkit/internal/core/object-client"
)

func newObjectClient(awsCfg aws.Config, cfg *config.Config, log zerolog.Logger) (core.ObjectClient, error) {
	switch cfg.StoreBackend {
	case config.BackendMinio:
		return objectclient.NewMinioClient(cfg, log)
	case config.BackendS3:
		return objectclient.NewS3Client(awsCfg, cfg, log)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
