package handler

import (
	"net/http"
	"time"

	"github.com/BuzzLyutic/task-tracker-api/pkg/respond"
)

type HealthHandler struct {
	environment string
	version     string
}

func NewHealthHandler(environment, version string) *HealthHandler {
	return &HealthHandler{environment: environment, version: version}
}

type healthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, r, http.StatusOK, healthResponse{
		Status:      "OK",
		Timestamp:   time.Now().UTC().Format(time.RFC3339Nano),
		Environment: h.environment,
		Version:     h.version,
	})
}
