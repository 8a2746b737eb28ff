package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rallyprotocol/rally-claim/pkg/kv"
)

const readyTimeout = 3 * time.Second

// HealthHandler handles health check endpoints
type HealthHandler struct {
	store kv.Store
	db    *sql.DB // nil when no MySQL-backed component is configured
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(store kv.Store, db *sql.DB) *HealthHandler {
	return &HealthHandler{
		store: store,
		db:    db,
	}
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// ReadyResponse represents readiness check response
type ReadyResponse struct {
	Status string `json:"status" example:"ok"`
	Store  string `json:"store" example:"ok"`
	DB     string `json:"db,omitempty" example:"ok"`
}

// Health godoc
// @Summary Health check
// @Description Returns server health status
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready godoc
// @Summary Readiness check
// @Description Returns server readiness including key-value store and MySQL connectivity
// @Tags health
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	response := ReadyResponse{
		Status: "ok",
		Store:  "ok",
	}
	statusCode := http.StatusOK

	if err := h.store.Ping(ctx); err != nil {
		response.Store = "error"
		response.Status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	if h.db != nil {
		response.DB = "ok"
		if err := h.db.PingContext(ctx); err != nil {
			response.DB = "error"
			response.Status = "degraded"
			statusCode = http.StatusServiceUnavailable
		}
	}

	c.JSON(statusCode, response)
}
