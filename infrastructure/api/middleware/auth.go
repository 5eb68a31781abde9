package middleware

import (
	"net/http"
	"strconv"

	"github.com/dialcoach/dialcoach/infrastructure/api/jsonapi"
)

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	apiKeys map[string]struct{}
	enabled bool
}

// NewAuthConfig creates an AuthConfig from a set of API keys. An empty set
// disables authentication.
func NewAuthConfig(apiKeys []string) AuthConfig {
	keys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			keys[k] = struct{}{}
		}
	}
	if len(keys) == 0 {
		return AuthConfig{enabled: false}
	}
	return AuthConfig{
		apiKeys: keys,
		enabled: true,
	}
}

// Enabled returns true if authentication is enabled.
func (c AuthConfig) Enabled() bool { return c.enabled }

func (c AuthConfig) authorized(r *http.Request) (status int, detail string) {
	apiKey := r.Header.Get("X-API-KEY")
	if apiKey == "" {
		return http.StatusUnauthorized, "X-API-KEY header is required"
	}
	if _, ok := c.apiKeys[apiKey]; !ok {
		return http.StatusUnauthorized, "Invalid API key"
	}
	return 0, ""
}

// APIKeyAuth returns a middleware that requires X-API-KEY header
// authentication on every request. With no keys configured, all requests
// pass through.
func APIKeyAuth(apiKeys []string) func(http.Handler) http.Handler {
	config := NewAuthConfig(apiKeys)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.enabled {
				next.ServeHTTP(w, r)
				return
			}

			if status, detail := config.authorized(r); status != 0 {
				writeAuthError(w, status, detail)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WriteProtectAuth returns a middleware that requires X-API-KEY header
// authentication on mutating methods (POST, PUT, PATCH, DELETE) only.
// Read-only requests pass through. With no keys configured, all requests
// pass through.
func WriteProtectAuth(apiKeys []string) func(http.Handler) http.Handler {
	config := NewAuthConfig(apiKeys)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.enabled || !isMutating(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			if status, detail := config.authorized(r); status != 0 {
				writeAuthError(w, status, detail)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func writeAuthError(w http.ResponseWriter, status int, detail string) {
	WriteJSON(w, status, jsonapi.NewErrorResponse(jsonapi.NewError(
		strconv.Itoa(status), http.StatusText(status), detail,
	)))
}
