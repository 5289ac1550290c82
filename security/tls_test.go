package security

import (
	"crypto/tls"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/elevenlabs-stt/security/tlstest"
)

func TestBuildDisabled(t *testing.T) {
	cfg := TLSConfig{CAFile: "/nonexistent"}
	got, err := cfg.Build()
	if err != nil || got != nil {
		t.Errorf("expected nil config when disabled, got %v, %v", got, err)
	}
}

func TestBuildDefaults(t *testing.T) {
	cfg := TLSConfig{Enabled: true, ServerName: "redis.internal"}
	got, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got.MinVersion != tls.VersionTLS12 || got.ServerName != "redis.internal" || got.RootCAs != nil {
		t.Errorf("unexpected config %+v", got)
	}
}

func TestBuildWithFiles(t *testing.T) {
	certs := tlstest.Generate(t)
	cfg := TLSConfig{Enabled: true, CAFile: certs.CAFile, CertFile: certs.CertFile, KeyFile: certs.KeyFile}

	got, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got.RootCAs == nil || len(got.Certificates) != 1 {
		t.Errorf("expected CA pool and client certificate, got %+v", got)
	}
}

func TestBuildErrors(t *testing.T) {
	certs := tlstest.Generate(t)
	notPEM := filepath.Join(t.TempDir(), "ca.pem")
	if err := os.WriteFile(notPEM, []byte("not a certificate"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		cfg    TLSConfig
		errMsg string
	}{
		{name: "missing CA", cfg: TLSConfig{Enabled: true, CAFile: "/nonexistent/ca.pem"}, errMsg: "read CA file"},
		{name: "bad CA", cfg: TLSConfig{Enabled: true, CAFile: notPEM}, errMsg: "no certificates"},
		{name: "cert without key", cfg: TLSConfig{Enabled: true, CertFile: certs.CertFile}, errMsg: "together"},
		{name: "mismatched pair", cfg: TLSConfig{Enabled: true, CertFile: certs.CertFile, KeyFile: certs.CAFile}, errMsg: "client certificate"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.cfg.Build()
			if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %v", tc.errMsg, err)
			}
		})
	}
}
