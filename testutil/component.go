package testutil

import (
	"context"
	"testing"

	"github.com/kbukum/elevenlabs-stt/component"
	"github.com/kbukum/elevenlabs-stt/observability"
)

// Start starts each component in order and stops them in reverse order when
// the test ends. A failed start is fatal.
func Start(t testing.TB, components ...component.Component) {
	t.Helper()
	for _, c := range components {
		if err := c.Start(t.Context()); err != nil {
			t.Fatalf("failed to start component %s: %v", c.Name(), err)
		}
		t.Cleanup(func() {
			// t.Context is canceled before cleanups run.
			if err := c.Stop(context.Background()); err != nil {
				t.Errorf("failed to stop component %s: %v", c.Name(), err)
			}
		})
	}
}

// ExpectHealth fails the test unless c reports the given status.
func ExpectHealth(t testing.TB, c component.Component, want observability.HealthStatus) observability.Health {
	t.Helper()
	h := c.Health(t.Context())
	if h.Status != want {
		t.Errorf("component %s: expected %s, got %+v", c.Name(), want, h)
	}
	return h
}
