package transcription

import (
	"context"
	"fmt"

	"github.com/kbukum/elevenlabs-stt/provider"
)

// NewRegistry creates a provider registry for transcription backends.
func NewRegistry() *provider.Registry[Provider] {
	return provider.NewRegistry[Provider]()
}

// ManagerOption configures the transcription provider manager.
type ManagerOption func(*managerConfig)

type managerConfig struct {
	selector provider.Selector[Provider]
	registry *provider.Registry[Provider]
}

// WithSelector sets the provider selection strategy for the manager.
func WithSelector(s provider.Selector[Provider]) ManagerOption {
	return func(c *managerConfig) { c.selector = s }
}

// WithRegistry shares an existing registry with the manager.
func WithRegistry(r *provider.Registry[Provider]) ManagerOption {
	return func(c *managerConfig) { c.registry = r }
}

// NewManager creates a provider manager for transcription backends. The
// default selector picks the first available provider by name.
func NewManager(opts ...ManagerOption) *provider.Manager[Provider] {
	cfg := &managerConfig{
		selector: &provider.HealthCheckSelector[Provider]{},
	}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.registry == nil {
		cfg.registry = NewRegistry()
	}
	return provider.NewManager(cfg.registry, cfg.selector)
}

// Transcribe asks the manager for a provider and runs req on it.
func Transcribe(ctx context.Context, mgr *provider.Manager[Provider], req TranscriptionRequest) (*TranscriptionResponse, error) {
	p, err := mgr.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("select transcription provider: %w", err)
	}
	return p.Transcribe(ctx, req)
}
