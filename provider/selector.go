package provider

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync/atomic"
)

// Selector picks one provider from the initialized set.
type Selector[T Provider] interface {
	Select(ctx context.Context, providers map[string]T) (T, error)
}

// PrioritySelector returns the first available provider in Priority order.
type PrioritySelector[T Provider] struct {
	Priority []string
}

func (s *PrioritySelector[T]) Select(ctx context.Context, providers map[string]T) (T, error) {
	for _, name := range s.Priority {
		if p, ok := providers[name]; ok && p.IsAvailable(ctx) {
			return p, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w in priority list %v", ErrNoneAvailable, s.Priority)
}

// RoundRobinSelector spreads calls across available providers, for example
// several API keys with separate quotas.
type RoundRobinSelector[T Provider] struct {
	counter atomic.Uint64
}

func (s *RoundRobinSelector[T]) Select(ctx context.Context, providers map[string]T) (T, error) {
	names := slices.Sorted(maps.Keys(providers))
	var zero T
	if len(names) == 0 {
		return zero, ErrNoneAvailable
	}

	start := int(s.counter.Add(1) - 1)
	for i := range names {
		p := providers[names[(start+i)%len(names)]]
		if p.IsAvailable(ctx) {
			return p, nil
		}
	}
	return zero, ErrNoneAvailable
}

// HealthCheckSelector returns the first available provider by name.
type HealthCheckSelector[T Provider] struct{}

func (s *HealthCheckSelector[T]) Select(ctx context.Context, providers map[string]T) (T, error) {
	for _, name := range slices.Sorted(maps.Keys(providers)) {
		if p := providers[name]; p.IsAvailable(ctx) {
			return p, nil
		}
	}
	var zero T
	return zero, ErrNoneAvailable
}
