package handlers

import (
	"net/http"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/records"

	"github.com/gin-gonic/gin"
)

func (h *Handler) LinkTag(c *gin.Context) {
	var in records.TagInput
	if !bindJSON(c, &in) {
		return
	}

	tag, created, err := h.svc.LinkTag(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, tag)
}

// GetTag also serves the old GET /nfc/:user_id listing, same rule as GetStar.
func (h *Handler) GetTag(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	tag, err := h.svc.GetTag(ctx, id)
	if err == nil {
		c.JSON(http.StatusOK, tag)
		return
	}
	if records.IsNotFound(err) {
		if _, uerr := h.svc.GetUser(ctx, id); uerr == nil {
			h.ListUserTags(c)
			return
		}
	}
	respondError(c, err)
}

func (h *Handler) GetTagUser(c *gin.Context) {
	user, err := h.svc.GetUserByTag(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) UnlinkTag(c *gin.Context) {
	if err := h.svc.UnlinkTag(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	ok(c, nil)
}

func (h *Handler) ListUserTags(c *gin.Context) {
	tags, err := h.svc.ListUserTags(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}
