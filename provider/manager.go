package provider

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/kbukum/elevenlabs-stt/logger"
	"github.com/kbukum/elevenlabs-stt/observability"
)

// Manager combines a Registry with a Selector: callers initialize providers
// by name and then ask for one per request.
type Manager[T Provider] struct {
	mu          sync.RWMutex
	registry    *Registry[T]
	selector    Selector[T]
	providers   map[string]T
	defaultName string
	log         *logger.Logger
}

// NewManager creates a Manager backed by the given registry and selector.
func NewManager[T Provider](registry *Registry[T], selector Selector[T]) *Manager[T] {
	return &Manager[T]{
		registry:  registry,
		selector:  selector,
		providers: make(map[string]T),
		log:       logger.Get("provider"),
	}
}

// Register adds a factory to the underlying registry.
func (m *Manager[T]) Register(name string, factory Factory[T]) {
	m.registry.RegisterFactory(name, factory)
	m.log.Debug("factory registered", logger.Fields("provider", name))
}

// Initialize creates a provider from its factory and makes it selectable.
func (m *Manager[T]) Initialize(name string, cfg map[string]any) error {
	instance, err := m.registry.Create(name, cfg)
	if err != nil {
		return fmt.Errorf("initialize provider %q: %w", name, err)
	}
	m.mu.Lock()
	m.providers[name] = instance
	m.mu.Unlock()
	m.registry.Set(name, instance)
	m.log.Info("provider initialized", logger.Fields("provider", name))
	return nil
}

// snapshot copies the initialized providers so selection and health checks
// run without the lock.
func (m *Manager[T]) snapshot() (map[string]T, string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.providers), m.defaultName
}

// Get returns the pinned default if any, else the selector's choice.
func (m *Manager[T]) Get(ctx context.Context) (T, error) {
	providers, pinned := m.snapshot()
	if p, ok := providers[pinned]; ok {
		return p, nil
	}
	return m.selector.Select(ctx, providers)
}

func (m *Manager[T]) GetByName(name string) (T, error) {
	providers, _ := m.snapshot()
	p, ok := providers[name]
	if !ok {
		return p, fmt.Errorf("%w: %q", ErrNotInitialized, name)
	}
	return p, nil
}

// SetDefault pins Get to one initialized provider.
func (m *Manager[T]) SetDefault(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.providers[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotInitialized, name)
	}
	m.defaultName = name
	m.log.Info("default provider set", logger.Fields("provider", name))
	return nil
}

// Available lists initialized providers by name.
func (m *Manager[T]) Available() []string {
	providers, _ := m.snapshot()
	return slices.Sorted(maps.Keys(providers))
}

// CheckHealth reports each initialized provider as a component. The service
// is degraded when some providers are unavailable and down when all are.
func (m *Manager[T]) CheckHealth(ctx context.Context) observability.Health {
	providers, _ := m.snapshot()
	h := observability.Health{
		Name:    "providers",
		Status:  observability.HealthStatusUp,
		Details: make(map[string]string, len(providers)),
	}
	up := 0
	for name, p := range providers {
		status := observability.HealthStatusDown
		if p.IsAvailable(ctx) {
			status = observability.HealthStatusUp
			up++
		}
		h.Details[name] = string(status)
	}
	switch {
	case up == 0:
		h.Status = observability.HealthStatusDown
		h.Message = "no provider available"
	case up < len(providers):
		h.Status = observability.HealthStatusDegraded
	}
	return h
}

// Close closes every initialized provider that implements Closeable.
func (m *Manager[T]) Close(ctx context.Context) error {
	providers, _ := m.snapshot()
	var errs []error
	for name, p := range providers {
		c, ok := any(p).(Closeable)
		if !ok {
			continue
		}
		if err := c.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close provider %q: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
