package handlers

import (
	"net/http"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/records"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateStar(c *gin.Context) {
	var in records.StarInput
	if !bindJSON(c, &in) {
		return
	}

	star, created, err := h.svc.CreateStar(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, star)
}

// GetStar also serves the old GET /stars/:user_id listing: when no star has
// the id but a user does, the user's stars are returned.
func (h *Handler) GetStar(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	star, err := h.svc.GetStar(ctx, id)
	if err == nil {
		c.JSON(http.StatusOK, star)
		return
	}
	if records.IsNotFound(err) {
		if _, uerr := h.svc.GetUser(ctx, id); uerr == nil {
			h.ListUserStars(c)
			return
		}
	}
	respondError(c, err)
}

func (h *Handler) DeleteStar(c *gin.Context) {
	if err := h.svc.DeleteStar(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	ok(c, nil)
}

func (h *Handler) ListUserStars(c *gin.Context) {
	stars, err := h.svc.ListUserStars(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stars)
}

func (h *Handler) DeleteUserStars(c *gin.Context) {
	deleted, err := h.svc.DeleteUserStars(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, gin.H{"deleted": deleted})
}
