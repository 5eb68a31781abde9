package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dialcoach/dialcoach/infrastructure/api/jsonapi"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAPIKeyAuth_NoKeysConfigured_PassesAll(t *testing.T) {
	handler := APIKeyAuth(nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("no keys configured: status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestAPIKeyAuth_MissingKey(t *testing.T) {
	handler := APIKeyAuth([]string{"secret"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing key: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAPIKeyAuth_InvalidKey(t *testing.T) {
	handler := APIKeyAuth([]string{"secret"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-API-KEY", "wrong")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("invalid key: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAPIKeyAuth_ValidKey(t *testing.T) {
	handler := APIKeyAuth([]string{"secret", "other"})(okHandler())

	for _, key := range []string{"secret", "other"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-API-KEY", key)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("key %q: status = %d, want %d", key, w.Code, http.StatusOK)
		}
	}
}

func TestWriteProtectAuth_ReadsPassWithoutKey(t *testing.T) {
	handler := WriteProtectAuth([]string{"secret"})(okHandler())

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		req := httptest.NewRequest(method, "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s without key: status = %d, want %d", method, w.Code, http.StatusOK)
		}
	}
}

func TestWriteProtectAuth_WritesRequireKey(t *testing.T) {
	handler := WriteProtectAuth([]string{"secret"})(okHandler())

	methods := []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}
	for _, method := range methods {
		req := httptest.NewRequest(method, "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s without key: status = %d, want %d", method, w.Code, http.StatusUnauthorized)
		}

		req = httptest.NewRequest(method, "/", nil)
		req.Header.Set("X-API-KEY", "secret")
		w = httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s with key: status = %d, want %d", method, w.Code, http.StatusOK)
		}
	}
}

func TestWriteAuthError_UsesGivenStatus(t *testing.T) {
	w := httptest.NewRecorder()
	writeAuthError(w, http.StatusForbidden, "key lacks write access")

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}

	var resp jsonapi.Document
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(resp.Errors))
	}
	if resp.Errors[0].Status != "403" {
		t.Errorf("error status = %q, want %q", resp.Errors[0].Status, "403")
	}
	if resp.Errors[0].Title != "Forbidden" {
		t.Errorf("error title = %q, want %q", resp.Errors[0].Title, "Forbidden")
	}
	if resp.Errors[0].Detail != "key lacks write access" {
		t.Errorf("error detail = %q", resp.Errors[0].Detail)
	}
}

func TestNewAuthConfig_IgnoresEmptyKeys(t *testing.T) {
	config := NewAuthConfig([]string{"", ""})
	if config.Enabled() {
		t.Error("blank keys should leave auth disabled")
	}

	config = NewAuthConfig([]string{"", "real"})
	if !config.Enabled() {
		t.Error("one real key should enable auth")
	}
}
