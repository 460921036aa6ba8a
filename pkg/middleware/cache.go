package middleware

import (
	"fmt"
	"net/http"
)

// CacheControl marks GET responses as cacheable by shared caches (the CDN in
// front of the catalog) for maxAge seconds, with a stale-while-revalidate
// window of twice that so the edge can refresh in the background. Catalog
// data only changes on scrape runs, so short shared caching is safe.
func CacheControl(maxAge int) func(http.Handler) http.Handler {
	value := fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate=%d", maxAge, 2*maxAge)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				w.Header().Set("Cache-Control", value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
