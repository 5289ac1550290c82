package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/elevenlabs-stt/logger"
)

// Factory creates a backend from a validated Config.
type Factory func(ctx context.Context, cfg Config, log *logger.Logger) (Storage, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]Factory)
)

// RegisterFactory makes a backend available to New. Backend packages call it
// from init, so importing storage/local or storage/s3 is enough to enable it.
func RegisterFactory(provider string, f Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories[provider] = f
}

// New creates the backend selected by cfg.Provider.
func New(ctx context.Context, cfg Config, log *logger.Logger) (Storage, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Get("storage")
	}

	factoriesMu.RLock()
	f, ok := factories[cfg.Provider]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: provider %q is not registered; import storage/%s", cfg.Provider, cfg.Provider)
	}

	log.Info("initializing storage", logger.Fields("provider", cfg.Provider))
	return f(ctx, cfg, log)
}
