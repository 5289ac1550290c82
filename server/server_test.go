package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/elevenlabs-stt/errors"
	"github.com/kbukum/elevenlabs-stt/logger"
	"github.com/kbukum/elevenlabs-stt/observability"
)

type staticChecker observability.Health

func (s staticChecker) CheckHealth(context.Context) observability.Health {
	return observability.Health(s)
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Port != 8080 || cfg.ReadTimeout != 15*time.Second || cfg.MaxBodySize != "10MB" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("unexpected addr %q", cfg.Addr())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Port: 8080}, false},
		{"ephemeral port", Config{Port: 0}, false},
		{"port too large", Config{Port: 70000}, true},
		{"negative timeout", Config{Port: 80, ReadTimeout: -time.Second}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	srv := New(Config{}, logger.NewNop())
	srv.ApplyMiddleware()
	srv.RegisterHealth("transcriber", "1.2.3",
		staticChecker{Name: "elevenlabs-stt", Status: observability.HealthStatusUp},
	)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body observability.ServiceHealth
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Service != "transcriber" || body.Version != "1.2.3" || len(body.Components) != 1 {
		t.Errorf("unexpected body %+v", body)
	}
	if rr.Header().Get("X-Request-Id") == "" {
		t.Error("expected request id middleware applied")
	}
}

func TestHealthDown(t *testing.T) {
	srv := New(Config{}, logger.NewNop())
	srv.RegisterHealth("transcriber", "",
		staticChecker{Name: "a", Status: observability.HealthStatusUp},
		staticChecker{Name: "b", Status: observability.HealthStatusDown},
	)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rr.Code)
	}
}

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   apperrors.ErrorCode
	}{
		{"app error", apperrors.InvalidSignature("bad signature"), http.StatusUnauthorized, apperrors.ErrCodeInvalidSignature},
		{"wrapped app error", fmt.Errorf("decode: %w", apperrors.InvalidFormat("event", nil)), http.StatusBadRequest, apperrors.ErrCodeInvalidFormat},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, apperrors.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			rr := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rr)
			RespondWithError(c, tt.err)

			if rr.Code != tt.status {
				t.Errorf("expected %d, got %d", tt.status, rr.Code)
			}
			var body apperrors.ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Error.Code != tt.code {
				t.Errorf("expected %s, got %s", tt.code, body.Error.Code)
			}
		})
	}
}

func TestStartShutdown(t *testing.T) {
	srv := New(Config{Host: "127.0.0.1", Port: 0}, logger.NewNop())
	srv.GinEngine().GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	resp, err := http.Get("http://" + srv.Addr() + "/ping")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if _, err := http.Get("http://" + srv.Addr() + "/ping"); err == nil {
		t.Error("expected connection refused after shutdown")
	}
}
