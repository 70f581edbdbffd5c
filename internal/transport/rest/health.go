package rest

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/internal/transport"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus `json:"status"`
	Message    string       `json:"message,omitempty"`
	CheckedAt  time.Time    `json:"checked_at"`
	DurationMs int64        `json:"duration_ms"`
}

// Pinger is satisfied by *sql.DB and *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

var _ Pinger = (*sql.DB)(nil)

type HealthHandler struct {
	*transport.BaseHandler
	db Pinger
}

func NewHealthHandler(base *transport.BaseHandler, db Pinger) *HealthHandler {
	return &HealthHandler{BaseHandler: base, db: db}
}

// Ping reports liveness only.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// Health reports readiness, checking the ledger database.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)

	entry := CheckEntry{
		Status:     HealthHealthy,
		CheckedAt:  time.Now().UTC(),
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		h.Logger.Warn("database health check failed", "error", err)
		entry.Status = HealthUnhealthy
		entry.Message = err.Error()
	}

	statusCode := http.StatusOK
	if entry.Status == HealthUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	h.WriteJSON(w, statusCode, HealthResponse{
		Status:     entry.Status,
		CheckedAt:  entry.CheckedAt,
		Components: map[string]CheckEntry{"database": entry},
	})
}
