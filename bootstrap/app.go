package bootstrap

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/elevenlabs-stt/component"
	"github.com/kbukum/elevenlabs-stt/config"
	"github.com/kbukum/elevenlabs-stt/logger"
	"github.com/kbukum/elevenlabs-stt/observability"
	"github.com/kbukum/elevenlabs-stt/version"
)

// App runs a program with uniform lifecycle management. C is the program's
// config type; any struct embedding config.ServiceConfig satisfies it.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.Register(redisComponent)
//	app.OnReady(func(ctx context.Context) error { ... })
//	err = app.Run(ctx)
type App[C config.Config] struct {
	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger

	gracefulTimeout time.Duration

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// NewApp applies defaults to cfg, validates it and initializes the logger.
func NewApp[C config.Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	base := cfg.GetServiceConfig()
	o := resolveOptions(opts)

	log := o.logger
	if log == nil {
		log = logger.Init(&base.Logging, base.Name)
	}

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		Components:      component.NewRegistry(log.WithComponent("component")),
		Logger:          log,
		gracefulTimeout: 15 * time.Second,
	}
	if app.Version == "" {
		app.Version = version.Short()
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	return app, nil
}

// Register adds a component. Components start in registration order.
func (a *App[C]) Register(c component.Component) error {
	return a.Components.Register(c)
}

// Run starts everything, blocks until SIGINT, SIGTERM or ctx is done, then
// shuts down gracefully.
func (a *App[C]) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.startup(ctx); err != nil {
		return err
	}

	a.Logger.Info("application ready")
	<-ctx.Done()
	a.Logger.Info("shutdown requested", logger.Fields("reason", context.Cause(ctx).Error()))

	return a.shutdown()
}

// RunTask starts everything, runs task and shuts down when it returns. A
// signal cancels the task's context. Use it for one-shot programs.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.startup(ctx); err != nil {
		return err
	}

	taskErr := task(ctx)
	if err := a.shutdown(); err != nil && taskErr == nil {
		return err
	}
	return taskErr
}

func (a *App[C]) startup(ctx context.Context) error {
	start := time.Now()
	a.Logger.Info("starting application", logger.Fields("name", a.Name, "version", a.Version))

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("start components: %w", err)
	}
	if err := runHooks(ctx, a.onStart); err != nil {
		_ = a.Components.StopAll(context.WithoutCancel(ctx))
		return fmt.Errorf("onStart: %w", err)
	}

	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status != observability.HealthStatusUp {
			a.Logger.Warn("component not healthy at startup", logger.Fields("component", h.Name, "status", h.Status, "message", h.Message))
		}
	}

	if err := runHooks(ctx, a.onReady); err != nil {
		_ = a.Components.StopAll(context.WithoutCancel(ctx))
		return fmt.Errorf("onReady: %w", err)
	}

	a.Logger.Info("startup complete", logger.Fields("duration_ms", time.Since(start).Milliseconds()))
	return nil
}

// shutdown runs OnStop hooks, then stops components, within the graceful
// timeout.
func (a *App[C]) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	hookErr := runHooks(ctx, a.onStop)
	if hookErr != nil {
		a.Logger.Error("onStop hook failed", logger.Fields(logger.FieldError, hookErr.Error()))
	}
	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("shutdown completed with errors", logger.Fields(logger.FieldError, err.Error()))
		return err
	}

	a.Logger.Info("application stopped")
	return hookErr
}
