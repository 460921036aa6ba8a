package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// corsDefaults for the catalog's public read-only API: browsers only ever GET
// it, and no endpoint needs credentials.
var (
	defaultAllowedMethods = []string{"GET", "HEAD", "OPTIONS"}
	defaultAllowedHeaders = []string{"Accept", "Content-Type", "X-Correlation-ID"}
)

const defaultPreflightMaxAge = 3600

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins lists origins permitted to read the API. "*" allows
	// everything and is only honored outside production via Environment.
	AllowedOrigins []string

	// AllowedMethods defaults to the read-only set.
	AllowedMethods []string

	// AllowedHeaders defaults to the catalog client's request headers.
	AllowedHeaders []string

	// ExposedHeaders lists response headers the browser may read.
	ExposedHeaders []string

	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int

	// AllowCredentials enables cookies/auth headers; the catalog never
	// needs it, but the knob is kept for parity with other services.
	AllowCredentials bool

	// Environment gates the wildcard: "development" treats any origin list
	// as open, production requires an explicit "*" entry.
	Environment string
}

// CORS returns middleware applying the configured cross-origin policy.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	if len(cfg.AllowedMethods) == 0 {
		cfg.AllowedMethods = defaultAllowedMethods
	}
	if len(cfg.AllowedHeaders) == 0 {
		cfg.AllowedHeaders = defaultAllowedHeaders
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = defaultPreflightMaxAge
	}

	allowAny := cfg.Environment == "development"
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			allowAny = true
		}
		allowed[origin] = struct{}{}
	}

	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	exposed := strings.Join(cfg.ExposedHeaders, ", ")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			switch {
			case allowAny:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "":
				if _, ok := allowed[origin]; ok {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Vary", "Origin")
				}
			}

			w.Header().Set("Access-Control-Allow-Methods", methods)
			w.Header().Set("Access-Control-Allow-Headers", headers)
			if exposed != "" {
				w.Header().Set("Access-Control-Expose-Headers", exposed)
			}
			w.Header().Set("Access-Control-Max-Age", maxAge)
			if cfg.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
