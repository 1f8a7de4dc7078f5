package controllers

import (
	"net/http"

	"github.com/avalosmendoza/wedding-backend/api/responses"
	"github.com/avalosmendoza/wedding-backend/pkg/logger"
)

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthCheck reports liveness. It intentionally skips dependency pings
// so a degraded database never flaps the load balancer.
func HealthCheck(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteJSON(r.Context(), w, logg, http.StatusOK, healthResponse{
			Status:  "healthy",
			Message: "Wedding API is running",
		})
	}
}
