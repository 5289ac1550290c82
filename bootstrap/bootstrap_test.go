package bootstrap

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/elevenlabs-stt/component"
	"github.com/kbukum/elevenlabs-stt/config"
	"github.com/kbukum/elevenlabs-stt/logger"
)

type testConfig struct {
	config.ServiceConfig `mapstructure:",squash"`
}

func newTestApp(t *testing.T, opts ...Option) *App[*testConfig] {
	t.Helper()
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "test-svc", Version: "1.0.0"}}
	app, err := NewApp(cfg, append([]Option{WithLogger(logger.NewNop())}, opts...)...)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app
}

func TestNewApp(t *testing.T) {
	app := newTestApp(t)
	if app.Name != "test-svc" || app.Version != "1.0.0" {
		t.Errorf("unexpected app identity %s %s", app.Name, app.Version)
	}
	if app.Cfg.Environment != "development" {
		t.Errorf("expected defaults applied, got %q", app.Cfg.Environment)
	}
}

func TestNewAppInvalidConfig(t *testing.T) {
	_, err := NewApp(&testConfig{}, WithLogger(logger.NewNop()))
	if err == nil || !strings.Contains(err.Error(), "config.name") {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestRunTaskLifecycle(t *testing.T) {
	app := newTestApp(t)
	var calls []string
	_ = app.Register(&component.Func{
		ComponentName: "store",
		StartFunc:     func(context.Context) error { calls = append(calls, "start"); return nil },
		StopFunc:      func(context.Context) error { calls = append(calls, "stop"); return nil },
	})
	app.OnStart(func(context.Context) error { calls = append(calls, "onStart"); return nil })
	app.OnReady(func(context.Context) error { calls = append(calls, "onReady"); return nil })
	app.OnStop(func(context.Context) error { calls = append(calls, "onStop"); return nil })

	err := app.RunTask(context.Background(), func(context.Context) error {
		calls = append(calls, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask failed: %v", err)
	}

	want := []string{"start", "onStart", "onReady", "task", "onStop", "stop"}
	if !slices.Equal(calls, want) {
		t.Errorf("expected %v, got %v", want, calls)
	}
}

func TestRunTaskError(t *testing.T) {
	app := newTestApp(t)
	stopped := false
	_ = app.Register(&component.Func{
		ComponentName: "store",
		StopFunc:      func(context.Context) error { stopped = true; return nil },
	})

	boom := errors.New("boom")
	if err := app.RunTask(context.Background(), func(context.Context) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("expected task error, got %v", err)
	}
	if !stopped {
		t.Error("expected components stopped after a failed task")
	}
}

func TestStartupHookFailureStopsComponents(t *testing.T) {
	app := newTestApp(t)
	stopped := false
	_ = app.Register(&component.Func{
		ComponentName: "store",
		StopFunc:      func(context.Context) error { stopped = true; return nil },
	})
	app.OnReady(func(context.Context) error { return errors.New("not ready") })

	ran := false
	err := app.RunTask(context.Background(), func(context.Context) error { ran = true; return nil })
	if err == nil || !strings.Contains(err.Error(), "onReady") {
		t.Errorf("expected onReady error, got %v", err)
	}
	if ran || !stopped {
		t.Errorf("expected task skipped and components stopped, ran=%v stopped=%v", ran, stopped)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	app := newTestApp(t, WithGracefulTimeout(time.Second))
	stopped := make(chan struct{})
	_ = app.Register(&component.Func{
		ComponentName: "server",
		StopFunc:      func(context.Context) error { close(stopped); return nil },
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	select {
	case <-stopped:
	default:
		t.Error("expected server stopped")
	}
}
