package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"isafari/internal/services"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	DB    Pinger
	Redis *redis.Client
	Log   services.Logger
}

// Health reports 503 when PostgreSQL is unreachable. A Redis failure is
// reported but does not fail the check.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{"database": "ok", "redis": "ok"}
	code := http.StatusOK

	if err := h.DB.PingContext(ctx); err != nil {
		status["database"] = "unavailable"
		code = http.StatusServiceUnavailable
		if h.Log != nil {
			h.Log.Errorf("health: database: %v", err)
		}
	}
	switch {
	case h.Redis == nil:
		status["redis"] = "disabled"
	default:
		if err := h.Redis.Ping(ctx).Err(); err != nil {
			status["redis"] = "unavailable"
			if h.Log != nil {
				h.Log.Errorf("health: redis: %v", err)
			}
		}
	}

	if code != http.StatusOK {
		writeJSON(w, code, envelope{Success: false, Message: "Service degraded", Data: status})
		return
	}
	respond(w, code, "", status)
}
