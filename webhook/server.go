package webhook

import (
	"github.com/kbukum/elevenlabs-stt/logger"
	"github.com/kbukum/elevenlabs-stt/server"
	"github.com/kbukum/elevenlabs-stt/version"
)

const serviceName = "elevenlabs-webhook"

// NewServer builds a receiver serving fn at cfg.Path and health at /health.
// cfg gets its defaults applied and is validated first.
func NewServer(cfg Config, fn HandlerFunc, opts ...Option) (*server.Server, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := newOptions(opts)

	srv := server.New(cfg.Server, o.log)
	srv.ApplyMiddleware()
	srv.RegisterHealth(serviceName, version.Short(), o.checkers...)
	srv.GinEngine().POST(cfg.Path, newHandler(cfg, fn, o))

	o.log.Info("webhook receiver configured", logger.Fields(
		"addr", cfg.Server.Addr(),
		"path", cfg.Path,
		"tolerance", cfg.Tolerance.String(),
		"dedup", o.dedup != nil,
	))
	return srv, nil
}
