package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/markdave123-py/speechkit/internal/app"
	"github.com/markdave123-py/speechkit/internal/config"
	applog "github.com/markdave123-py/speechkit/internal/infra/log"
	"github.com/markdave123-py/speechkit/internal/models"
	"github.com/markdave123-py/speechkit/internal/services"
)

type appKey struct{}

func initApp(c *cli.Context) error {
	cfg := config.LoadConfig()
	if c.IsSet("bucket") {
		cfg.BucketName = c.String("bucket")
	}
	logger := applog.NewLogger(cfg)
	if c.Bool("quiet") {
		logger = logger.Level(zerolog.WarnLevel)
	}

	a, err := app.NewApp(c.Context, cfg, logger)
	if err != nil {
		return err
	}
	c.Context = context.WithValue(c.Context, appKey{}, a)
	return nil
}

func fromContext(c *cli.Context) *app.App {
	return c.Context.Value(appKey{}).(*app.App)
}

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func ttlFlag(def time.Duration) *cli.DurationFlag {
	return &cli.DurationFlag{
		Name:  "ttl",
		Usage: "Validity of the presigned link (0 uses PRESIGN_TTL)",
		Value: def,
	}
}

func main() {
	application := &cli.App{
		Name:  "speechkit",
		Usage: "Speech, storage and secret utilities for the configured AWS account",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "bucket",
				Usage:   "Override BUCKET_NAME",
				EnvVars: []string{"SPEECHKIT_BUCKET"},
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Only log warnings and errors",
			},
		},
		Before: initApp,
		Commands: []*cli.Command{
			{
				Name:      "secret",
				Usage:     "Print a secret (defaults to SECRET_NAME)",
				ArgsUsage: "[name]",
				Action:    runSecret,
			},
			{
				Name:  "speak",
				Usage: "Synthesize text to MP3, upload it and print a link",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "text", Usage: "Text to speak"},
					&cli.StringFlag{Name: "file", Usage: "Read the text from a file (txt, md, pdf, docx, html)"},
					&cli.StringFlag{Name: "key", Usage: "Object key", Required: true},
					&cli.StringFlag{Name: "voice", Usage: "Voice id (default SPEECH_VOICE)"},
					&cli.StringFlag{Name: "language", Usage: "Language code (default SPEECH_LANGUAGE)"},
					ttlFlag(0),
				},
				Action: runSpeak,
			},
			{
				Name:      "put-json",
				Usage:     "Store a JSON file under a key",
				ArgsUsage: "<key> <file>",
				Action:    runPutJSON,
			},
			{
				Name:      "get-json",
				Usage:     "Print the JSON document stored under a key",
				ArgsUsage: "<key>",
				Action:    runGetJSON,
			},
			{
				Name:      "presign",
				Usage:     "Print a download link for a key",
				ArgsUsage: "<key>",
				Flags:     []cli.Flag{ttlFlag(0)},
				Action:    runPresign,
			},
			{
				Name:      "fetch-image",
				Usage:     "Copy a remote image into the bucket and print a 7 day link",
				ArgsUsage: "<url> <key>",
				Action:    runFetchImage,
			},
		},
	}

	if err := application.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runSecret(c *cli.Context) error {
	a := fromContext(c)
	name := c.Args().First()
	if name == "" {
		name = a.Config.SecretName
	}
	if name == "" {
		return fmt.Errorf("no secret name given and SECRET_NAME is not set")
	}
	v, err := a.Secrets.GetSecret(c.Context, name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, v)
	return err
}

func runSpeak(c *cli.Context) error {
	a := fromContext(c)
	req := services.SpeakRequest{
		Text:     c.String("text"),
		Key:      c.String("key"),
		Voice:    c.String("voice"),
		Language: c.String("language"),
		TTL:      c.Duration("ttl"),
	}

	var (
		link models.PresignedURL
		err  error
	)
	if path := c.String("file"); path != "" {
		link, err = a.Speech.SpeakFileToURL(c.Context, path, req)
	} else {
		link, err = a.Speech.SpeakToURL(c.Context, req)
	}
	if err != nil {
		return err
	}
	return printJSON(c, models.NewStoredObject(req.Key, link))
}

func runPutJSON(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.ShowSubcommandHelp(c)
	}
	data, err := os.ReadFile(c.Args().Get(1))
	if err != nil {
		return err
	}
	return fromContext(c).Documents.Put(c.Context, c.Args().Get(0), data)
}

func runGetJSON(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.ShowSubcommandHelp(c)
	}
	// raw bytes, so numbers print exactly as stored
	doc, err := fromContext(c).Documents.Get(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	return printJSON(c, doc)
}

func runPresign(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.ShowSubcommandHelp(c)
	}
	obj, err := fromContext(c).Documents.Presign(c.Context, c.Args().First(), c.Duration("ttl"))
	if err != nil {
		return err
	}
	return printJSON(c, obj)
}

func runFetchImage(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.ShowSubcommandHelp(c)
	}
	key := c.Args().Get(1)
	link, err := fromContext(c).Images.FetchAndStore(c.Context, c.Args().Get(0), key)
	if err != nil {
		return err
	}
	return printJSON(c, models.NewStoredObject(key, link))
}
