package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/school-backend/internal/logger"
	"github.com/stemsi/school-backend/internal/response"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger, e.g. a Redis client's Ping.
type PingFunc func(ctx context.Context) error

// Ping calls f.
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// SystemHandler reports service health.
type SystemHandler struct {
	deps map[string]Pinger
	log  zerolog.Logger
}

// NewSystemHandler creates a SystemHandler checking the given dependencies.
func NewSystemHandler(deps map[string]Pinger, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{deps: deps, log: logger.Component(log, "system_handler")}
}

// Health godoc
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.deps))
	healthy := true
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			h.log.Warn().Err(err).Str("dependency", name).Msg("Health check failed")
			checks[name] = "down"
			healthy = false
			continue
		}
		checks[name] = "up"
	}

	status := http.StatusOK
	state := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}
	response.Success(c, status, gin.H{"status": state, "checks": checks})
}
