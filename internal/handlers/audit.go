package handlers

import (
	"net/http"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/records"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListAuditLogs(c *gin.Context) {
	logs, err := h.svc.ListAudit(c.Request.Context(), records.AuditFilter{
		Table:  c.Query("table"),
		Action: c.Query("action"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
