package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func corsHandler(cfg CORSConfig) http.Handler {
	return CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func doCORS(h http.Handler, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/v1/sneakers", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCORS_DevelopmentAllowsAnyOrigin(t *testing.T) {
	h := corsHandler(CORSConfig{
		AllowedOrigins: []string{"http://localhost:3000"},
		Environment:    "development",
	})

	rec := doCORS(h, http.MethodGet, "https://somewhere-else.example")

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS_ProductionAllowsListedOrigin(t *testing.T) {
	h := corsHandler(CORSConfig{
		AllowedOrigins: []string{"https://sneakopedia.in", "https://www.sneakopedia.in"},
		Environment:    "production",
	})

	rec := doCORS(h, http.MethodGet, "https://www.sneakopedia.in")

	assert.Equal(t, "https://www.sneakopedia.in", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))
}

func TestCORS_ProductionRejectsUnlistedOrigin(t *testing.T) {
	h := corsHandler(CORSConfig{
		AllowedOrigins: []string{"https://sneakopedia.in"},
		Environment:    "production",
	})

	rec := doCORS(h, http.MethodGet, "https://evil.example")

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS_ProductionExplicitWildcard(t *testing.T) {
	h := corsHandler(CORSConfig{
		AllowedOrigins: []string{"*"},
		Environment:    "production",
	})

	rec := doCORS(h, http.MethodGet, "https://anywhere.example")

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_NoOriginHeader(t *testing.T) {
	h := corsHandler(CORSConfig{
		AllowedOrigins: []string{"https://sneakopedia.in"},
		Environment:    "production",
	})

	rec := doCORS(h, http.MethodGet, "")

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	h := CORS(CORSConfig{
		AllowedOrigins: []string{"*"},
		Environment:    "development",
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for OPTIONS")
	}))

	rec := doCORS(h, http.MethodOptions, "https://sneakopedia.in")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestCORS_ReadOnlyDefaults(t *testing.T) {
	h := corsHandler(CORSConfig{
		AllowedOrigins: []string{"*"},
		Environment:    "development",
	})

	rec := doCORS(h, http.MethodGet, "")

	assert.Equal(t, "GET, HEAD, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Accept, Content-Type, X-Correlation-ID", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_ExplicitHeadersAndMaxAge(t *testing.T) {
	h := corsHandler(CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"Accept", "X-Custom"},
		ExposedHeaders: []string{"X-Correlation-ID"},
		MaxAge:         7200,
		Environment:    "development",
	})

	rec := doCORS(h, http.MethodGet, "")

	assert.Equal(t, "Accept, X-Custom", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "X-Correlation-ID", rec.Header().Get("Access-Control-Expose-Headers"))
	assert.Equal(t, "7200", rec.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_AllowCredentials(t *testing.T) {
	h := corsHandler(CORSConfig{
		AllowedOrigins:   []string{"https://sneakopedia.in"},
		AllowCredentials: true,
		Environment:      "production",
	})

	rec := doCORS(h, http.MethodGet, "https://sneakopedia.in")

	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
