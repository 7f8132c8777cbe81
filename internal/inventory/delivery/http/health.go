package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

// RegisterHealthCheck registers health check endpoints. check may be nil
// when the store has nothing to ping.
func (h *InventoryHandler) RegisterHealthCheck(router *mux.Router, check HealthCheck) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				respondJSON(w, http.StatusServiceUnavailable, Response{
					Success: false,
					Error:   "Store unavailable",
				})
				return
			}
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "PedeDrink API is healthy",
			Data: map[string]interface{}{
				"timestamp": h.now().UTC(),
			},
		})
	}
	router.HandleFunc("/health", handler).Methods(http.MethodGet)
	router.HandleFunc("/api/health", handler).Methods(http.MethodGet)
}
