package logger

import (
	"context"
	"sync"
)

var (
	mu     sync.RWMutex
	global *Logger
	named  = map[string]*Logger{}
)

// Init builds the process logger from cfg and installs it as the global
// logger.
func Init(cfg *Config, service string) *Logger {
	cfg.ApplyDefaults()
	l := New(cfg, service)
	SetGlobalLogger(l)
	return l
}

func SetGlobalLogger(l *Logger) {
	mu.Lock()
	global = l
	mu.Unlock()
}

// GetGlobalLogger returns the global logger, installing NewDefault on first
// use when Init was never called.
func GetGlobalLogger() *Logger {
	mu.RLock()
	l := global
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		global = NewDefault("")
	}
	return global
}

// Register pins the logger returned by Get for name, for example to give
// one component a different level.
func Register(name string, l *Logger) {
	mu.Lock()
	named[name] = l
	mu.Unlock()
}

// Get returns the registered logger for name, or the global logger tagged
// with name as its component.
func Get(name string) *Logger {
	mu.RLock()
	l, ok := named[name]
	mu.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

type requestIDKey struct{}

// ContextWithRequestID stores a request id for WithContext.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

func Debug(msg string, fields ...map[string]any) { GetGlobalLogger().Debug(msg, fields...) }
func Info(msg string, fields ...map[string]any)  { GetGlobalLogger().Info(msg, fields...) }
func Warn(msg string, fields ...map[string]any)  { GetGlobalLogger().Warn(msg, fields...) }
func Error(msg string, fields ...map[string]any) { GetGlobalLogger().Error(msg, fields...) }
