package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader carries "t=<unix>,v0=<hex hmac>".
const SignatureHeader = "ElevenLabs-Signature"

var (
	// ErrNoSecret is returned when no secret is configured.
	ErrNoSecret = errors.New("webhook: no signing secret configured")
	// ErrMissingSignature is returned when the header is absent.
	ErrMissingSignature = errors.New("webhook: missing signature header")
	// ErrMalformedSignature is returned when the header cannot be parsed.
	ErrMalformedSignature = errors.New("webhook: malformed signature header")
	// ErrSignatureMismatch is returned when no v0 value matches the body.
	ErrSignatureMismatch = errors.New("webhook: signature mismatch")
	// ErrTimestampExpired is returned for a timestamp outside the tolerance.
	ErrTimestampExpired = errors.New("webhook: signature timestamp outside tolerance")
)

// Sign returns the header value for body signed at ts.
func Sign(secret string, body []byte, ts time.Time) string {
	t := strconv.FormatInt(ts.Unix(), 10)
	return "t=" + t + ",v0=" + hex.EncodeToString(mac(secret, t, body))
}

// VerifySignature checks header against body. The timestamp must lie within
// tolerance of now in either direction; a zero tolerance disables the age
// check. Several v0 entries are accepted, any match passes.
func VerifySignature(secret, header string, body []byte, now time.Time, tolerance time.Duration) error {
	if secret == "" {
		return ErrNoSecret
	}
	if header == "" {
		return ErrMissingSignature
	}

	var ts string
	var sigs [][]byte
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return ErrMalformedSignature
		}
		switch k {
		case "t":
			ts = v
		case "v0":
			sig, err := hex.DecodeString(v)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrMalformedSignature, err)
			}
			sigs = append(sigs, sig)
		}
	}
	if ts == "" || len(sigs) == 0 {
		return ErrMalformedSignature
	}

	unix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad timestamp %q", ErrMalformedSignature, ts)
	}
	if tolerance > 0 {
		age := now.Sub(time.Unix(unix, 0))
		if age > tolerance || age < -tolerance {
			return ErrTimestampExpired
		}
	}

	expected := mac(secret, ts, body)
	for _, sig := range sigs {
		if hmac.Equal(sig, expected) {
			return nil
		}
	}
	return ErrSignatureMismatch
}

func mac(secret, ts string, body []byte) []byte {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(ts))
	h.Write([]byte("."))
	h.Write(body)
	return h.Sum(nil)
}
