package handlers

import (
	"errors"
	"net/http"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/database"
	"github.com/The-UnknownHacker/daydream-sydney-db/internal/records"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	msgUnexpected       = "An unexpected error occurred"
	msgStoreUnavailable = "database is busy, please retry"
	msgNotFound         = "Resource not found"
	msgInvalidJSON      = "Request body must be valid JSON"
)

func ok(c *gin.Context, extra gin.H) {
	body := gin.H{"status": "ok"}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"status": "error", "message": msg})
}

// respondError is the single place where errors become HTTP responses.
// Only classified messages reach the client; everything else is logged and
// replaced by a generic message.
func respondError(c *gin.Context, err error) {
	logger := zerolog.Ctx(c.Request.Context())

	var status int
	switch records.KindOf(err) {
	case records.KindValidation, records.KindConflict:
		status = http.StatusBadRequest
	case records.KindNotFound:
		status = http.StatusNotFound
	}
	if status != 0 {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
		fail(c, status, records.MessageOf(err))
		return
	}

	if errors.Is(err, database.ErrStoreUnavailable) {
		logger.Error().Err(err).Msg("store unavailable")
		fail(c, http.StatusInternalServerError, msgStoreUnavailable)
		return
	}

	logger.Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("unexpected error")
	fail(c, http.StatusInternalServerError, msgUnexpected)
}

// bindJSON decodes the request body into dst, answering 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		zerolog.Ctx(c.Request.Context()).Debug().Err(err).Msg("invalid JSON body")
		fail(c, http.StatusBadRequest, msgInvalidJSON)
		return false
	}
	return true
}

// NotFound answers unknown routes with the JSON envelope.
func NotFound(c *gin.Context) {
	fail(c, http.StatusNotFound, msgNotFound)
}
