package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendS3    = "s3"
	BackendMinio = "minio"
)

// Config is read once at startup and handed to every constructor.
// Nothing mutates it afterwards.
type Config struct {
	AwsAccessKey string
	AwsSecretKey string
	AwsRegion    string
	BucketName   string
	SecretName   string

	StoreBackend   string
	S3Endpoint     string
	S3UsePathStyle bool
	MinioEndpoint  string
	MinioUseSSL    bool

	SpeechVoice    string
	SpeechLanguage string
	SpeechEngine   string

	PresignTTL      time.Duration
	ImagePresignTTL time.Duration

	CallTimeout      time.Duration
	RetryMaxAttempts int
	RetryMaxBackoff  time.Duration

	Port      string
	LogLevel  string
	LogPretty bool
}

// LoadConfig loads the environment variables (and .env when present) and returns config
func LoadConfig() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("AWS_REGION", "us-east-2")
	v.SetDefault("BUCKET_NAME", "speechkit-assets")
	v.SetDefault("STORE_BACKEND", BackendS3)
	v.SetDefault("MINIO_USE_SSL", true)
	v.SetDefault("SPEECH_VOICE", "Matthew")
	v.SetDefault("SPEECH_LANGUAGE", "en-US")
	v.SetDefault("SPEECH_ENGINE", "standard")
	v.SetDefault("PRESIGN_TTL", time.Hour)
	v.SetDefault("IMAGE_PRESIGN_TTL", 7*24*time.Hour)
	v.SetDefault("CALL_TIMEOUT", 30*time.Second)
	v.SetDefault("RETRY_MAX_ATTEMPTS", 3)
	v.SetDefault("RETRY_MAX_BACKOFF", 5*time.Second)
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")

	// older deployments export the short names
	_ = v.BindEnv("AWS_REGION", "AWS_REGION", "REGION")
	_ = v.BindEnv("SECRET_NAME", "SECRET_NAME", "OPENAI_KEY_SECRET_NAME")
	v.AutomaticEnv()

	return &Config{
		AwsAccessKey:     v.GetString("AWS_ACCESS_KEY"),
		AwsSecretKey:     v.GetString("AWS_SECRET_KEY"),
		AwsRegion:        v.GetString("AWS_REGION"),
		BucketName:       v.GetString("BUCKET_NAME"),
		SecretName:       v.GetString("SECRET_NAME"),
		StoreBackend:     strings.ToLower(strings.TrimSpace(v.GetString("STORE_BACKEND"))),
		S3Endpoint:       v.GetString("S3_ENDPOINT"),
		S3UsePathStyle:   v.GetBool("S3_USE_PATH_STYLE"),
		MinioEndpoint:    v.GetString("MINIO_ENDPOINT"),
		MinioUseSSL:      v.GetBool("MINIO_USE_SSL"),
		SpeechVoice:      v.GetString("SPEECH_VOICE"),
		SpeechLanguage:   v.GetString("SPEECH_LANGUAGE"),
		SpeechEngine:     v.GetString("SPEECH_ENGINE"),
		PresignTTL:       v.GetDuration("PRESIGN_TTL"),
		ImagePresignTTL:  v.GetDuration("IMAGE_PRESIGN_TTL"),
		CallTimeout:      v.GetDuration("CALL_TIMEOUT"),
		RetryMaxAttempts: v.GetInt("RETRY_MAX_ATTEMPTS"),
		RetryMaxBackoff:  v.GetDuration("RETRY_MAX_BACKOFF"),
		Port:             v.GetString("PORT"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogPretty:        v.GetBool("LOG_PRETTY"),
	}
}

// Validate reports every setting the clients cannot start without.
func (c *Config) Validate() error {
	var errs []error

	if c.AwsRegion == "" {
		errs = append(errs, errors.New("AWS_REGION not set"))
	}
	if c.BucketName == "" {
		errs = append(errs, errors.New("BUCKET_NAME not set"))
	}
	switch c.StoreBackend {
	case BackendS3:
	case BackendMinio:
		if c.MinioEndpoint == "" {
			errs = append(errs, errors.New("MINIO_ENDPOINT not set"))
		}
		if c.AwsAccessKey == "" || c.AwsSecretKey == "" {
			errs = append(errs, errors.New("minio backend needs AWS_ACCESS_KEY and AWS_SECRET_KEY"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE_BACKEND %q is not one of %s, %s", c.StoreBackend, BackendS3, BackendMinio))
	}
	if c.CallTimeout <= 0 {
		errs = append(errs, fmt.Errorf("CALL_TIMEOUT must be positive, got %s", c.CallTimeout))
	}
	if c.RetryMaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("RETRY_MAX_ATTEMPTS must be at least 1, got %d", c.RetryMaxAttempts))
	}
	if c.PresignTTL <= 0 || c.ImagePresignTTL <= 0 {
		errs = append(errs, errors.New("presign TTLs must be positive"))
	}

	return errors.Join(errs...)
}
