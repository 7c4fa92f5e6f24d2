package handlers

import (
	"net/http"

	"github.com/EthM370/test-api-lambdas/internal/models"
)

// HealthzPattern is the only route served by this API.
const HealthzPattern = "GET /api/v1/healthz"

// Healthz reports that the service is up.
func Healthz(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, http.StatusOK, models.MessageResponse{Message: models.HealthyMessage})
}
