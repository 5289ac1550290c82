package provider

import (
	"context"
	"errors"
)

// Provider is the base interface every backend implements.
type Provider interface {
	// Name returns the provider's registered name.
	Name() string
	// IsAvailable reports whether the provider can take requests. It must
	// not block on the network.
	IsAvailable(ctx context.Context) bool
}

// Closeable is implemented by providers that hold resources.
type Closeable interface {
	Close(ctx context.Context) error
}

// Factory creates a provider instance from a generic configuration map, as
// decoded from a config file section.
type Factory[T Provider] func(cfg map[string]any) (T, error)

var (
	// ErrNotRegistered is returned for an unknown factory name.
	ErrNotRegistered = errors.New("provider: factory not registered")
	// ErrNotInitialized is returned for a provider that was never created.
	ErrNotInitialized = errors.New("provider: not initialized")
	// ErrNoneAvailable is returned when a selector finds no usable provider.
	ErrNoneAvailable = errors.New("provider: none available")
)
