package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maksimryndin/superlists/internal/lists/domain"
)

// Store is what the health check needs from the list store.
type Store interface {
	Ping(ctx context.Context) error
	Stats(ctx context.Context) (domain.Stats, error)
}

type HealthResponse struct {
	Status    string        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Service   string        `json:"service"`
	Version   string        `json:"version"`
	DB        string        `json:"db,omitempty"`
	Stats     *domain.Stats `json:"stats,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	store       Store
}

func NewHealthHandler(serviceName, version string, store Store) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		store:       store,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        "disabled",
	}

	status := http.StatusOK
	if h.store != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.store.Ping(pingCtx); err != nil {
			resp.DB = "down"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		} else {
			resp.DB = "up"
			if stats, err := h.store.Stats(pingCtx); err == nil {
				resp.Stats = &stats
			}
		}
	}

	c.JSON(status, resp)
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
