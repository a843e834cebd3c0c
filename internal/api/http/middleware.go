package httpapi

import (
	"net/http"
	"strings"
	"time"
)

// requireAuth guards manager routes: requests must carry the bearer token
// issued at sign-in, and the token must still be live in the store.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		if _, err := h.Verifier.Verify(r.Context(), token); err != nil {
			h.countError()
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// observe records request durations per route template.
func (h *Handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		if h.Metrics != nil {
			h.Metrics.RequestDuration.WithLabelValues(r.URL.Path).Observe(time.Since(start).Seconds())
		}
	})
}
