// Command stt-webhook receives asynchronous transcription results.
//
// Each signed delivery is archived to local disk or S3, optionally indexed
// in SQLite, published to Kafka and streamed to /events subscribers. Redis,
// when enabled, drops repeated deliveries.
//
// Configuration is read from cmd/stt-webhook/config.yml and the environment;
// WEBHOOK_SECRET is required. AUTH_SECRET guards the read API with bearer
// tokens and ENCRYPTION_KEY encrypts records at rest.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/kbukum/elevenlabs-stt/auth"
	"github.com/kbukum/elevenlabs-stt/bootstrap"
	"github.com/kbukum/elevenlabs-stt/config"
	"github.com/kbukum/elevenlabs-stt/logger"
)

func main() {
	issue := flag.String("issue-token", "", "print a read and stream token for this subject and exit")
	flag.Parse()

	var cfg appConfig
	err := config.LoadConfig("stt-webhook", &cfg,
		config.WithEnvBinding("webhook.secret", "WEBHOOK_SECRET"),
		config.WithEnvBinding("auth.secret", "AUTH_SECRET"),
		config.WithEnvBinding("encryption.key", "ENCRYPTION_KEY"),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *issue != "" {
		if err := printToken(cfg.Auth, *issue); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	r, err := newReceiver(app)
	if err != nil {
		app.Logger.Error("failed to set up receiver", logger.Fields(logger.FieldError, err.Error()))
		os.Exit(1)
	}
	app.OnStart(r.start)
	app.OnStop(r.stop)

	if err := app.Run(context.Background()); err != nil {
		app.Logger.Error("stt-webhook stopped with error", logger.Fields(logger.FieldError, err.Error()))
		os.Exit(1)
	}
}

func printToken(cfg auth.Config, subject string) error {
	tokens, err := auth.NewTokens(cfg)
	if err != nil {
		return err
	}
	token, err := tokens.Issue(subject, auth.ScopeRead, auth.ScopeStream)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
