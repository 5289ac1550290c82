package webhook

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSignRoundTrip(t *testing.T) {
	now := time.Unix(1739537297, 0)
	body := []byte(`{"type":"speech_to_text_transcription"}`)
	header := Sign("whsec", body, now)

	if !strings.HasPrefix(header, "t=1739537297,v0=") {
		t.Fatalf("unexpected header %q", header)
	}
	if err := VerifySignature("whsec", header, body, now, DefaultTolerance); err != nil {
		t.Errorf("expected valid signature, got %v", err)
	}
}

func TestVerifySignature(t *testing.T) {
	now := time.Unix(1739537297, 0)
	body := []byte(`{"a":1}`)
	valid := Sign("whsec", body, now)
	other := Sign("other", body, now)

	tests := []struct {
		name    string
		secret  string
		header  string
		body    []byte
		now     time.Time
		wantErr error
	}{
		{name: "valid", secret: "whsec", header: valid, body: body, now: now},
		{name: "rotated secret among several", secret: "whsec", header: other + "," + strings.Split(valid, ",")[1], body: body, now: now},
		{name: "within tolerance", secret: "whsec", header: valid, body: body, now: now.Add(29 * time.Minute)},
		{name: "no secret", header: valid, body: body, now: now, wantErr: ErrNoSecret},
		{name: "missing", secret: "whsec", body: body, now: now, wantErr: ErrMissingSignature},
		{name: "wrong secret", secret: "whsec", header: other, body: body, now: now, wantErr: ErrSignatureMismatch},
		{name: "tampered body", secret: "whsec", header: valid, body: []byte(`{"a":2}`), now: now, wantErr: ErrSignatureMismatch},
		{name: "stale", secret: "whsec", header: valid, body: body, now: now.Add(31 * time.Minute), wantErr: ErrTimestampExpired},
		{name: "future", secret: "whsec", header: valid, body: body, now: now.Add(-31 * time.Minute), wantErr: ErrTimestampExpired},
		{name: "no timestamp", secret: "whsec", header: "v0=abcd", body: body, now: now, wantErr: ErrMalformedSignature},
		{name: "no signature", secret: "whsec", header: "t=1739537297", body: body, now: now, wantErr: ErrMalformedSignature},
		{name: "bad hex", secret: "whsec", header: "t=1739537297,v0=zz", body: body, now: now, wantErr: ErrMalformedSignature},
		{name: "bad timestamp", secret: "whsec", header: "t=soon,v0=abcd", body: body, now: now, wantErr: ErrMalformedSignature},
		{name: "garbage", secret: "whsec", header: "garbage", body: body, now: now, wantErr: ErrMalformedSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifySignature(tt.secret, tt.header, tt.body, tt.now, DefaultTolerance)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestVerifySignatureZeroToleranceSkipsAge(t *testing.T) {
	body := []byte("x")
	header := Sign("whsec", body, time.Unix(0, 0))
	if err := VerifySignature("whsec", header, body, time.Now(), 0); err != nil {
		t.Errorf("expected age check disabled, got %v", err)
	}
}
