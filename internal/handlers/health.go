package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func (h *Handler) Health(c *gin.Context) {
	now := time.Now().UTC().Format(time.RFC3339)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("health check: database ping failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "error",
			"message":   "database unavailable",
			"timestamp": now,
			"version":   h.version,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": now,
		"version":   h.version,
	})
}
