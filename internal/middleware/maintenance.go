package middleware

import (
	"net/http"

	"github.com/mannigfalter/rategrab/internal/obs"
)

// MaintenanceMiddleware short-circuits every route with 503 while the
// maintenance flag is set. It runs before any other logic.
func MaintenanceMiddleware(enabled bool, m *obs.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if enabled {
				m.IncMaintenanceReject()
				http.Error(w, "Service temporarily unavailable: maintenance in progress",
					http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}
