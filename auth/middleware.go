package auth

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/elevenlabs-stt/errors"
	"github.com/kbukum/elevenlabs-stt/server"
)

// ContextKeyClaims is the gin context key holding the verified claims.
const ContextKeyClaims = "auth_claims"

type claimsKey struct{}

// ClaimsFromContext returns the claims stored by Middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok
}

// Middleware rejects requests without a valid bearer token granting every
// one of scopes. Browsers cannot set headers on an EventSource, so the
// access_token query parameter is accepted as well.
func (t *Tokens) Middleware(scopes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = c.Query("access_token")
		}
		if token == "" {
			c.Header("WWW-Authenticate", `Bearer realm="elevenlabs-stt"`)
			server.RespondWithError(c, apperrors.Unauthorized("missing bearer token"))
			return
		}

		claims, err := t.Verify(token)
		if err != nil {
			c.Header("WWW-Authenticate", `Bearer error="invalid_token"`)
			server.RespondWithError(c, apperrors.Unauthorized("invalid bearer token").WithCause(err))
			return
		}
		for _, s := range scopes {
			if !claims.HasScope(s) {
				c.Header("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+s+`"`)
				server.RespondWithError(c, apperrors.Forbidden("token lacks scope "+s))
				return
			}
		}

		c.Set(ContextKeyClaims, claims)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), claimsKey{}, claims))
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
