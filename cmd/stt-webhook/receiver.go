package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/elevenlabs-stt/archive"
	"github.com/kbukum/elevenlabs-stt/auth"
	"github.com/kbukum/elevenlabs-stt/bootstrap"
	"github.com/kbukum/elevenlabs-stt/component"
	"github.com/kbukum/elevenlabs-stt/database"
	"github.com/kbukum/elevenlabs-stt/encryption"
	"github.com/kbukum/elevenlabs-stt/kafka"
	"github.com/kbukum/elevenlabs-stt/logger"
	"github.com/kbukum/elevenlabs-stt/redis"
	"github.com/kbukum/elevenlabs-stt/server"
	"github.com/kbukum/elevenlabs-stt/sse"
	"github.com/kbukum/elevenlabs-stt/storage"
	"github.com/kbukum/elevenlabs-stt/webhook"

	_ "github.com/kbukum/elevenlabs-stt/storage/local"
	_ "github.com/kbukum/elevenlabs-stt/storage/s3"
)

// receiver archives each delivery and fans it out to the optional sinks.
type receiver struct {
	app *bootstrap.App[*appConfig]
	log *logger.Logger

	db       *database.Component
	redis    *redis.Client
	producer *kafka.Producer
	hub      *sse.Hub
	tokens   *auth.Tokens
	sealer   encryption.Sealer

	archive *archive.Archive
	srv     *server.Server
}

// newReceiver registers the enabled components with app. The HTTP server is
// built in start, once the components it depends on are running.
func newReceiver(app *bootstrap.App[*appConfig]) (*receiver, error) {
	cfg := app.Cfg
	r := &receiver{app: app, log: app.Logger.WithComponent("receiver")}

	if cfg.Redis.Enabled {
		client, err := redis.New(cfg.Redis, app.Logger.WithComponent("redis"))
		if err != nil {
			return nil, err
		}
		r.redis = client
		if err := app.Register(&component.Func{
			ComponentName: "redis",
			StartFunc:     client.Ping,
			StopFunc:      func(context.Context) error { return client.Close() },
			HealthFunc:    client.CheckHealth,
			Description:   component.Description{Type: "redis", Details: cfg.Redis.Addr},
		}); err != nil {
			return nil, err
		}
	}

	if cfg.Database.Enabled {
		r.db = database.NewComponent(cfg.Database, app.Logger.WithComponent("database"))
		if err := app.Register(r.db); err != nil {
			return nil, err
		}
	}

	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(cfg.Kafka, app.Logger)
		if err != nil {
			return nil, err
		}
		r.producer = producer
		if err := app.Register(producer); err != nil {
			return nil, err
		}
	}

	if cfg.Events.Enabled {
		opts := []sse.Option{sse.WithLogger(app.Logger.WithComponent("sse"))}
		if cfg.Events.KeepAlive > 0 {
			opts = append(opts, sse.WithKeepAlive(cfg.Events.KeepAlive))
		}
		r.hub = sse.NewHub(opts...)
		if err := app.Register(r.hub); err != nil {
			return nil, err
		}
	}

	if cfg.Auth.Enabled {
		tokens, err := auth.NewTokens(cfg.Auth)
		if err != nil {
			return nil, err
		}
		r.tokens = tokens
	}
	if cfg.Encryption.Enabled {
		sealer, err := encryption.New(cfg.Encryption)
		if err != nil {
			return nil, err
		}
		r.sealer = sealer
	}

	return r, nil
}

// build wires storage, the index and the sinks into a webhook server.
func (r *receiver) build(ctx context.Context) error {
	cfg := r.app.Cfg

	store, err := storage.New(ctx, cfg.Storage, r.app.Logger.WithComponent("storage"))
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	arcOpts := []archive.Option{archive.WithLogger(r.app.Logger.WithComponent("archive"))}
	if r.db != nil {
		ix, err := archive.NewIndex(r.db.DB())
		if err != nil {
			return err
		}
		arcOpts = append(arcOpts, archive.WithIndex(ix))
	}
	if r.sealer != nil {
		arcOpts = append(arcOpts, archive.WithSealer(r.sealer))
	}
	r.archive = archive.New(store, arcOpts...)

	// The archive runs first so a failed save leaves the delivery unclaimed
	// and the sender retries it.
	handlers := []webhook.HandlerFunc{r.archive.Handler()}
	if r.producer != nil {
		handlers = append(handlers, r.producer.WebhookHandler())
	}
	if r.hub != nil {
		handlers = append(handlers, r.hub.WebhookHandler())
	}

	opts := []webhook.Option{
		webhook.WithLogger(r.app.Logger.WithComponent("webhook")),
		webhook.WithHealthCheckers(r.app.Components.Checkers()...),
	}
	if r.redis != nil {
		opts = append(opts, webhook.WithDeduplicator(redis.NewDeduplicator(r.redis, cfg.DedupTTL)))
	}

	srv, err := webhook.NewServer(cfg.Webhook, webhook.Chain(handlers...), opts...)
	if err != nil {
		return err
	}
	engine := srv.GinEngine()
	r.archive.RegisterRoutes(engine.Group("", r.guard(auth.ScopeRead)...))
	routes := []string{"/transcripts"}
	if r.hub != nil {
		engine.GET("/events", append(r.guard(auth.ScopeStream), r.hub.Handler())...)
		routes = append(routes, "/events")
	}
	if r.tokens == nil {
		r.log.Warn("read routes are served without authentication; set auth.enabled",
			logger.Fields("routes", routes, "addr", cfg.Webhook.Server.Addr()))
	}
	r.srv = srv
	return nil
}

// guard returns the token check for scope, or nothing when auth is off.
func (r *receiver) guard(scope string) []gin.HandlerFunc {
	if r.tokens == nil {
		return nil
	}
	return []gin.HandlerFunc{r.tokens.Middleware(scope)}
}

func (r *receiver) start(ctx context.Context) error {
	if err := r.build(ctx); err != nil {
		return err
	}
	return r.srv.Start(ctx)
}

func (r *receiver) stop(ctx context.Context) error {
	if r.srv == nil {
		return nil
	}
	return r.srv.Shutdown(ctx)
}
