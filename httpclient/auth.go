package httpclient

import "net/http"

// DefaultAPIKeyHeader carries the key for APIKeyAuth.
const DefaultAPIKeyHeader = "X-API-Key"

// AuthConfig sets one credential header on every request.
type AuthConfig struct {
	Header string
	Value  string
}

// BearerAuth sends "Authorization: Bearer <token>".
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Header: "Authorization", Value: "Bearer " + token}
}

// APIKeyAuth sends the key in X-API-Key.
func APIKeyAuth(key string) *AuthConfig {
	return APIKeyAuthHeader(key, DefaultAPIKeyHeader)
}

// APIKeyAuthHeader sends the key in the named header. An empty key is still
// sent so the server answers 401 rather than treating the call as anonymous.
func APIKeyAuthHeader(key, header string) *AuthConfig {
	return &AuthConfig{Header: header, Value: key}
}

func (a *AuthConfig) apply(req *http.Request) {
	if a == nil || a.Header == "" {
		return
	}
	req.Header.Set(a.Header, a.Value)
}
