package auth

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Scopes granted by tokens.
const (
	ScopeRead   = "transcripts:read"
	ScopeStream = "events:read"
)

// ErrDisabled is returned by NewTokens when auth is not enabled.
var ErrDisabled = errors.New("auth: disabled")

// Claims are the claims of an API token.
type Claims struct {
	gojwt.RegisteredClaims
	// Scope is a space separated list of granted scopes.
	Scope string `json:"scope,omitempty"`
}

// HasScope reports whether scope was granted.
func (c *Claims) HasScope(scope string) bool {
	return slices.Contains(strings.Fields(c.Scope), scope)
}

// Tokens issues and verifies API tokens.
type Tokens struct {
	cfg    Config
	method gojwt.SigningMethod
	now    func() time.Time
}

// NewTokens creates a token service from cfg.
func NewTokens(cfg Config) (*Tokens, error) {
	cfg.ApplyDefaults()
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Tokens{cfg: cfg, method: gojwt.GetSigningMethod(cfg.Method), now: time.Now}, nil
}

// Issue signs a token for subject carrying scopes.
func (t *Tokens) Issue(subject string, scopes ...string) (string, error) {
	now := t.now()
	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    t.cfg.Issuer,
			Audience:  t.cfg.Audience,
			IssuedAt:  gojwt.NewNumericDate(now),
			NotBefore: gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(t.cfg.TokenTTL)),
		},
		Scope: strings.Join(scopes, " "),
	}
	signed, err := gojwt.NewWithClaims(t.method, claims).SignedString([]byte(t.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and time claims of token and, when
// configured, its issuer and audience.
func (t *Tokens) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := gojwt.ParseWithClaims(token, claims, t.keyFunc, t.parserOptions()...)
	if err != nil {
		return nil, fmt.Errorf("auth: parse token: %w", err)
	}
	if !parsed.Valid {
		return nil, errors.New("auth: invalid token")
	}
	return claims, nil
}

func (t *Tokens) keyFunc(token *gojwt.Token) (any, error) {
	if token.Method.Alg() != t.method.Alg() {
		return nil, fmt.Errorf("auth: unexpected signing method %s", token.Method.Alg())
	}
	return []byte(t.cfg.Secret), nil
}

func (t *Tokens) parserOptions() []gojwt.ParserOption {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{t.method.Alg()}),
		gojwt.WithExpirationRequired(),
		gojwt.WithTimeFunc(t.now),
	}
	if t.cfg.Leeway > 0 {
		opts = append(opts, gojwt.WithLeeway(t.cfg.Leeway))
	}
	if t.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(t.cfg.Issuer))
	}
	if len(t.cfg.Audience) > 0 {
		opts = append(opts, gojwt.WithAudience(t.cfg.Audience[0]))
	}
	return opts
}
