package handlers

import (
	"net/http"
	"strconv"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/records"

	"github.com/gin-gonic/gin"
)

func (h *Handler) MarkAttendance(c *gin.Context) {
	var in records.AttendanceInput
	if !bindJSON(c, &in) {
		return
	}

	rec, created, err := h.svc.MarkAttendance(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, rec)
}

func (h *Handler) ListAttendance(c *gin.Context) {
	h.listAttendance(c, records.AttendanceFilter{
		Date:   c.Query("date"),
		UserID: c.Query("user_id"),
		TagID:  c.Query("tag_id"),
	})
}

// ListUserAttendance is ListAttendance with user_id taken from the path.
func (h *Handler) ListUserAttendance(c *gin.Context) {
	h.listAttendance(c, records.AttendanceFilter{
		Date:   c.Query("date"),
		UserID: c.Param("id"),
		TagID:  c.Query("tag_id"),
	})
}

func (h *Handler) listAttendance(c *gin.Context, f records.AttendanceFilter) {
	list, err := h.svc.ListAttendance(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) DeleteAttendance(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, "Invalid attendance id")
		return
	}

	if err := h.svc.DeleteAttendance(c.Request.Context(), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	ok(c, nil)
}
