package component

import (
	"context"

	"github.com/kbukum/elevenlabs-stt/observability"
)

// Component is a lifecycle-managed piece of infrastructure: a server, a
// Redis pool, an event hub.
type Component interface {
	// Name returns the unique name used for registration and logs.
	Name() string

	Start(ctx context.Context) error

	// Stop releases resources. It is only called after a successful Start.
	Stop(ctx context.Context) error

	Health(ctx context.Context) observability.Health
}

// Description is what a component reports about itself at startup.
type Description struct {
	// Type categorizes the component: "server", "redis", "storage".
	Type string
	// Details is a one-liner such as "127.0.0.1:6379 db=0".
	Details string
}

// Describable is optionally implemented by components that want a line in
// the startup log.
type Describable interface {
	Describe() Description
}

// Func adapts plain functions to Component. Nil functions are no-ops and a
// nil health reports up.
type Func struct {
	ComponentName string
	StartFunc     func(ctx context.Context) error
	StopFunc      func(ctx context.Context) error
	HealthFunc    func(ctx context.Context) observability.Health
	Description   Description
}

var (
	_ Component   = (*Func)(nil)
	_ Describable = (*Func)(nil)
)

func (f *Func) Name() string { return f.ComponentName }

func (f *Func) Start(ctx context.Context) error {
	if f.StartFunc == nil {
		return nil
	}
	return f.StartFunc(ctx)
}

func (f *Func) Stop(ctx context.Context) error {
	if f.StopFunc == nil {
		return nil
	}
	return f.StopFunc(ctx)
}

func (f *Func) Health(ctx context.Context) observability.Health {
	if f.HealthFunc == nil {
		return observability.Health{Name: f.ComponentName, Status: observability.HealthStatusUp}
	}
	return f.HealthFunc(ctx)
}

func (f *Func) Describe() Description { return f.Description }
