package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// Version is reported by the health endpoint
var Version = "1.0.0"

type snapshotter interface {
	Snapshot() (count int, fetchedAt time.Time)
}

// HealthHandler provides health check endpoint
type HealthHandler struct {
	catalog snapshotter
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(catalog snapshotter, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string     `json:"status"`
	Timestamp   time.Time  `json:"timestamp"`
	Version     string     `json:"version"`
	Products    int        `json:"products"`
	LastFetched *time.Time `json:"last_fetched,omitempty"`
}

// ServeHTTP handles health check requests. It reports the snapshot and
// does not call the products API.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	count, fetchedAt := h.catalog.Snapshot()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   Version,
		Products:  count,
	}
	if !fetchedAt.IsZero() {
		t := fetchedAt.UTC()
		response.LastFetched = &t
	}

	WriteJSON(w, http.StatusOK, response, h.logger)
}
